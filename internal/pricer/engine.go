// Package pricer fans price lookups out over a bounded worker pool and
// partitions the outcomes into priced and failed items.
package pricer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/XavierBriggs/Midas/internal/metrics"
	"github.com/XavierBriggs/Midas/internal/querykey"
	"github.com/XavierBriggs/Midas/pkg/contracts"
	"github.com/XavierBriggs/Midas/pkg/models"
)

// Options tunes the engine. Zero values pick the defaults.
type Options struct {
	// Concurrency caps in-flight fetches (default runtime.NumCPU())
	Concurrency int
	// RequestTimeout bounds each fetch (0 = no per-request bound)
	RequestTimeout time.Duration
	// Deadline bounds the whole run (0 = no overall bound)
	Deadline time.Duration
	Recorder *metrics.Recorder
	Logger   zerolog.Logger
}

// Engine prices a batch of items against a PriceSource
type Engine struct {
	source         contracts.PriceSource
	keys           *querykey.Builder
	concurrency    int
	requestTimeout time.Duration
	deadline       time.Duration
	recorder       *metrics.Recorder
	logger         zerolog.Logger
}

// NewEngine creates a new fan-out engine
func NewEngine(source contracts.PriceSource, keys *querykey.Builder, opts Options) *Engine {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}

	return &Engine{
		source:         source,
		keys:           keys,
		concurrency:    concurrency,
		requestTimeout: opts.RequestTimeout,
		deadline:       opts.Deadline,
		recorder:       opts.Recorder,
		logger:         opts.Logger,
	}
}

// Concurrency returns the effective worker bound
func (e *Engine) Concurrency() int {
	return e.concurrency
}

// Run prices every item and returns the partitioned outcomes once all
// fetches have finished. Every item lands in exactly one side of the
// partition. Only a key consistency error fails the run, and it does so
// before any request is sent.
func (e *Engine) Run(ctx context.Context, items []models.Item) (*models.Partition, error) {
	start := time.Now()

	keys, err := e.keys.Keys(items)
	if err != nil {
		return nil, fmt.Errorf("build lookup keys: %w", err)
	}

	if e.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.deadline)
		defer cancel()
	}

	// each worker owns exactly one slot
	outcomes := make([]models.FetchOutcome, len(items))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range items {
		// workers never return an error: a failed fetch lives in outcomes[i] and Wait discards the group result
		g.Go(func() error {
			outcomes[i] = e.fetchOne(ctx, items[i], keys[i])
			return nil
		})
	}
	_ = g.Wait()

	partition := Partition(outcomes)

	e.logger.Info().
		Int("items", len(items)).
		Int("priced", len(partition.Priced)).
		Int("failed", len(partition.Failed)).
		Int("concurrency", e.concurrency).
		Dur("elapsed", time.Since(start)).
		Msg("pricing complete")

	return partition, nil
}

// fetchOne prices a single item under its own request timeout
func (e *Engine) fetchOne(ctx context.Context, item models.Item, key string) models.FetchOutcome {
	if e.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.requestTimeout)
		defer cancel()
	}

	e.logger.Debug().Str("url", key).Msg("fetching")

	start := time.Now()
	price, err := e.source.FetchPrice(ctx, key)
	elapsed := time.Since(start)

	if err != nil {
		fetchErr := asFetchError(err, key)
		e.recorder.ObserveFetch(string(fetchErr.Kind), elapsed)
		e.logger.Debug().Str("url", key).Str("kind", string(fetchErr.Kind)).Err(err).Msg("fetch failed")
		return models.FetchOutcome{Item: item, Key: key, Err: fetchErr}
	}

	e.recorder.ObserveFetch(metrics.OutcomePriced, elapsed)
	return models.FetchOutcome{Item: item, Key: key, Price: price}
}

// Partition splits outcomes by tag, preserving input order on each side
func Partition(outcomes []models.FetchOutcome) *models.Partition {
	p := &models.Partition{
		Priced: make([]models.PricedItem, 0, len(outcomes)),
		Failed: make([]models.FailedItem, 0),
	}

	for _, o := range outcomes {
		if o.Priced() {
			p.Priced = append(p.Priced, models.PricedItem{Item: o.Item, Key: o.Key, Price: o.Price})
			continue
		}
		p.Failed = append(p.Failed, models.FailedItem{Item: o.Item, Key: o.Key, Err: o.Err})
	}

	return p
}

// asFetchError classifies errors from sources that do not return *models.FetchError
func asFetchError(err error, key string) *models.FetchError {
	var fetchErr *models.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr
	}
	return &models.FetchError{Kind: models.FetchErrorTransport, URL: key, Err: err}
}
