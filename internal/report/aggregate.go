// Package report aggregates priced items into a valuation and renders it.
package report

import (
	"sort"

	"github.com/XavierBriggs/Midas/pkg/models"
)

// Aggregate sorts priced items ascending by low bound and sums both bounds.
// Ties keep their input order. The input slice is not modified.
func Aggregate(priced []models.PricedItem) models.Valuation {
	lines := make([]models.PricedItem, len(priced))
	copy(lines, priced)

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Price.Low < lines[j].Price.Low
	})

	v := models.Valuation{Lines: lines}
	for _, line := range lines {
		v.TotalLow += line.Price.Low
		v.TotalHigh += line.Price.High
	}

	return v
}
