// Package metrics instruments a valuation run with Prometheus collectors.
// A run is a one-shot process, so the registry is written to a
// node-exporter textfile at the end instead of being scraped.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/XavierBriggs/Midas/pkg/models"
)

// OutcomePriced labels a successful fetch; failures are labeled by error kind
const OutcomePriced = "priced"

// Recorder holds the collectors of one run. A nil *Recorder records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	stageEntries  *prometheus.GaugeVec
	valueLow      prometheus.Gauge
	valueHigh     prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "midas_price_fetches_total",
			Help: "Price fetches by outcome (priced or fetch error kind)",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "midas_price_fetch_duration_seconds",
			Help:    "Duration of single price page fetches",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		stageEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "midas_inventory_entries",
			Help: "Inventory entries remaining after each pipeline stage",
		}, []string{"stage"}),
		valueLow: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "midas_inventory_value_low_credits",
			Help: "Sum of low price bounds of priced items",
		}),
		valueHigh: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "midas_inventory_value_high_credits",
			Help: "Sum of high price bounds of priced items",
		}),
	}

	r.registry.MustRegister(r.fetches, r.fetchDuration, r.stageEntries, r.valueLow, r.valueHigh)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveFetch records one fetch outcome and its duration
func (r *Recorder) ObserveFetch(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(outcome).Inc()
	r.fetchDuration.Observe(d.Seconds())
}

// ObserveStats records the entry counts of every pipeline stage
func (r *Recorder) ObserveStats(stats models.RunStats) {
	if r == nil {
		return
	}
	r.stageEntries.WithLabelValues("loaded").Set(float64(stats.Loaded))
	r.stageEntries.WithLabelValues("tradeable").Set(float64(stats.Tradeable))
	r.stageEntries.WithLabelValues("eligible").Set(float64(stats.Eligible))
	r.stageEntries.WithLabelValues("priced").Set(float64(stats.Priced))
	r.stageEntries.WithLabelValues("failed").Set(float64(stats.Failed))
}

// ObserveValuation records the aggregated totals
func (r *Recorder) ObserveValuation(v models.Valuation) {
	if r == nil {
		return
	}
	r.valueLow.Set(float64(v.TotalLow))
	r.valueHigh.Set(float64(v.TotalHigh))
}

// WriteTextfile writes the registry in text exposition format to path
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
