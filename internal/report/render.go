package report

import (
	"fmt"
	"io"

	"github.com/XavierBriggs/Midas/pkg/models"
)

// WriteValuation writes one "low,high,url" line per priced item followed by the totals line
func WriteValuation(w io.Writer, v models.Valuation) error {
	for _, line := range v.Lines {
		if _, err := fmt.Fprintf(w, "%d,%d,%s\n", line.Price.Low, line.Price.High, line.Key); err != nil {
			return fmt.Errorf("write valuation line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "total inventory is worth %d - %d\n", v.TotalLow, v.TotalHigh); err != nil {
		return fmt.Errorf("write valuation total: %w", err)
	}

	return nil
}

// WriteFailures writes one diagnostic line per item that could not be priced
func WriteFailures(w io.Writer, failed []models.FailedItem) error {
	for _, f := range failed {
		if _, err := fmt.Fprintf(w, "!%s: %v\n", f.Item, f.Err); err != nil {
			return fmt.Errorf("write failure line: %w", err)
		}
	}
	return nil
}
