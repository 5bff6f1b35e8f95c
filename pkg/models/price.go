package models

import "time"

// PriceRange is a low/high price pair in the price source's currency (credits).
// Low never exceeds High.
type PriceRange struct {
	Low  uint64
	High uint64
}

// FetchOutcome is the result of pricing one item: either Price is valid
// (Err == nil) or Err explains why the item could not be priced.
// Key is the lookup URL the item was priced under.
type FetchOutcome struct {
	Item  Item
	Key   string
	Price PriceRange
	Err   error
}

// Priced reports whether the outcome carries a price
func (o FetchOutcome) Priced() bool {
	return o.Err == nil
}

// PricedItem pairs a successfully fetched price with its item
type PricedItem struct {
	Item  Item
	Key   string
	Price PriceRange
}

// FailedItem pairs a fetch failure with its item
type FailedItem struct {
	Item Item
	Key  string
	Err  error
}

// Partition splits fetch outcomes into priced and failed items.
// len(Priced)+len(Failed) equals the number of items fed to the engine.
type Partition struct {
	Priced []PricedItem
	Failed []FailedItem
}

// Total returns the number of outcomes in the partition
func (p *Partition) Total() int {
	return len(p.Priced) + len(p.Failed)
}

// Valuation is the aggregated report of a run: priced items sorted
// ascending by low bound plus the summed bounds
type Valuation struct {
	Lines     []PricedItem
	TotalLow  uint64
	TotalHigh uint64
}

// RunStats counts the entries seen at each pipeline stage
type RunStats struct {
	RunID     string
	StartedAt time.Time
	Loaded    int
	Tradeable int
	Eligible  int
	Priced    int
	Failed    int
}
