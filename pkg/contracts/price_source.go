package contracts

import (
	"context"

	"github.com/XavierBriggs/Midas/pkg/models"
)

// PriceSource defines the interface for pricing a single lookup key against
// an external price catalog. This keeps the fan-out engine independent of
// the concrete site being scraped.
type PriceSource interface {
	// FetchPrice performs exactly one retrieval of the document at url and
	// extracts its low/high price. Failures are returned as *models.FetchError.
	// Implementations must not retry.
	FetchPrice(ctx context.Context, url string) (models.PriceRange, error)
}
