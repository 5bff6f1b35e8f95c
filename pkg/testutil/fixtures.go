package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/XavierBriggs/Midas/pkg/models"
)

// NewTestItem creates an eligible test item
func NewTestItem(name string, slot models.Slot, paint models.Paint, edition models.SpecialEdition) models.Item {
	return models.Item{
		Name:           name,
		Slot:           slot,
		Paint:          paint,
		SpecialEdition: edition,
		Amount:         1,
		Tradeable:      true,
	}
}

// NewTestEntry creates a raw inventory entry
func NewTestEntry(name string, slot models.Slot, tradeable bool, blueprintItem string) models.InventoryEntry {
	return models.InventoryEntry{
		ProductID:     1,
		Name:          name,
		Slot:          slot,
		Amount:        1,
		BlueprintItem: blueprintItem,
		Tradeable:     models.Tradeable(tradeable),
	}
}

// PricePage renders a minimal catalog item page with the PC price element
func PricePage(priceText string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>Item</title></head>
<body>
  <div id="SteamPrice" class="priceRange">
    <span class="pfData">%s</span>
  </div>
  <div id="PS4Price"><span class="pfData">1 - 2</span></div>
</body></html>`, priceText)
}

// PageWithoutPrice renders a catalog page lacking the PC price element
func PageWithoutPrice() string {
	return `<!DOCTYPE html><html><body><div id="PS4Price"><span class="pfData">1 - 2</span></div></body></html>`
}

// StubResult is the canned answer of a StubPriceSource for one URL
type StubResult struct {
	Price models.PriceRange
	Err   error
	Delay time.Duration
}

// StubPriceSource is a test PriceSource answering from a fixed table.
// Unknown URLs fail with a not_found FetchError.
type StubPriceSource struct {
	Results map[string]StubResult

	calls    atomic.Int64
	inFlight atomic.Int64
	maxSeen  atomic.Int64

	mu   sync.Mutex
	seen []string
}

// FetchPrice implements contracts.PriceSource
func (s *StubPriceSource) FetchPrice(ctx context.Context, url string) (models.PriceRange, error) {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.maxSeen.Load()
		if n <= peak || s.maxSeen.CompareAndSwap(peak, n) {
			break
		}
	}

	s.mu.Lock()
	s.seen = append(s.seen, url)
	s.mu.Unlock()

	res, ok := s.Results[url]
	if !ok {
		return models.PriceRange{}, &models.FetchError{Kind: models.FetchErrorNotFound, URL: url, Detail: "no stub"}
	}

	if res.Delay > 0 {
		select {
		case <-time.After(res.Delay):
		case <-ctx.Done():
			return models.PriceRange{}, &models.FetchError{Kind: models.FetchErrorTransport, URL: url, Err: ctx.Err()}
		}
	}

	return res.Price, res.Err
}

// Calls returns how many fetches were made
func (s *StubPriceSource) Calls() int {
	return int(s.calls.Load())
}

// MaxInFlight returns the highest number of concurrent fetches observed
func (s *StubPriceSource) MaxInFlight() int {
	return int(s.maxSeen.Load())
}

// Seen returns the URLs fetched, in call order
func (s *StubPriceSource) Seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.seen))
	copy(out, s.seen)
	return out
}
