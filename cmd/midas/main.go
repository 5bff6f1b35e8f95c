package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/XavierBriggs/Midas/adapters/insider"
	"github.com/XavierBriggs/Midas/internal/config"
	"github.com/XavierBriggs/Midas/internal/inventory"
	"github.com/XavierBriggs/Midas/internal/logging"
	"github.com/XavierBriggs/Midas/internal/metrics"
	"github.com/XavierBriggs/Midas/internal/pricer"
	"github.com/XavierBriggs/Midas/internal/publisher"
	"github.com/XavierBriggs/Midas/internal/querykey"
	"github.com/XavierBriggs/Midas/internal/report"
	"github.com/XavierBriggs/Midas/pkg/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		stop()
		os.Exit(1)
	}
}

// flagValues holds command-line overrides applied on top of the loaded config
type flagValues struct {
	configPath     string
	baseURL        string
	concurrency    int
	requestTimeout time.Duration
	deadline       time.Duration
	withQuality    bool
	logLevel       string
	metricsFile    string
	redisAddr      string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:           "midas <inventory.json>",
		Short:         "Appraise the tradeable items of an inventory export",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(fv.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			applyFlags(cmd, cfg, fv)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			return run(cmd.Context(), cfg, args[0], stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&fv.configPath, "config", "c", "", "path to a YAML config file")
	f.StringVar(&fv.baseURL, "base-url", "", "price catalog base URL")
	f.IntVarP(&fv.concurrency, "concurrency", "j", 0, "maximum concurrent price fetches")
	f.DurationVar(&fv.requestTimeout, "request-timeout", 0, "timeout of a single price fetch")
	f.DurationVar(&fv.deadline, "deadline", 0, "deadline for the whole pricing run")
	f.BoolVar(&fv.withQuality, "with-quality", false, "include the quality segment in lookup keys")
	f.StringVar(&fv.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&fv.metricsFile, "metrics-textfile", "", "write Prometheus metrics to this file")
	f.StringVar(&fv.redisAddr, "redis-addr", "", "publish the valuation to Redis at this address")

	return cmd
}

// applyFlags overrides config fields with flags the user set explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config, fv flagValues) {
	changed := cmd.Flags().Changed

	if changed("base-url") {
		cfg.Source.BaseURL = fv.baseURL
	}
	if changed("concurrency") {
		cfg.Fetch.Concurrency = fv.concurrency
	}
	if changed("request-timeout") {
		cfg.Fetch.RequestTimeout = fv.requestTimeout
	}
	if changed("deadline") {
		cfg.Fetch.Deadline = fv.deadline
	}
	if changed("with-quality") {
		cfg.Source.WithQuality = fv.withQuality
	}
	if changed("log-level") {
		cfg.Log.Level = fv.logLevel
	}
	if changed("metrics-textfile") {
		cfg.Metrics.Textfile = fv.metricsFile
	}
	if changed("redis-addr") {
		cfg.Redis.Addr = fv.redisAddr
	}
}

// run executes the full pipeline: load → filter → price → aggregate → report
func run(ctx context.Context, cfg *config.Config, inventoryPath string, stdout, stderr io.Writer) error {
	stats := models.RunStats{RunID: uuid.NewString(), StartedAt: time.Now()}
	logger := logging.Setup(cfg.Log, stderr).With().Str("run_id", stats.RunID).Logger()

	// Step 1: Load and filter the export
	entries, err := inventory.LoadFile(inventoryPath)
	if err != nil {
		return err
	}
	stats.Loaded = len(entries)
	logger.Info().Int("entries", stats.Loaded).Msg("loaded inventory")

	stats.Tradeable = len(inventory.Tradeable(entries))
	logger.Info().Int("entries", stats.Tradeable).Msg("found tradeable entries")

	items := inventory.Eligible(entries)
	stats.Eligible = len(items)
	logger.Info().Int("entries", stats.Eligible).Msg("found tradeable entries (no blueprints)")

	// Step 2: Price every eligible item
	recorder := metrics.NewRecorder()

	client := insider.NewClient(
		insider.WithHTTPClient(&http.Client{Timeout: cfg.Fetch.RequestTimeout}),
		insider.WithSelector(cfg.Source.PriceSelector),
		insider.WithUserAgent(cfg.Source.UserAgent),
	)

	keys := querykey.NewBuilder(querykey.Options{
		BaseURL:     cfg.Source.BaseURL,
		Locale:      cfg.Source.Locale,
		Platform:    cfg.Source.Platform,
		WithQuality: cfg.Source.WithQuality,
	})

	engine := pricer.NewEngine(client, keys, pricer.Options{
		Concurrency:    cfg.Fetch.Concurrency,
		RequestTimeout: cfg.Fetch.RequestTimeout,
		Deadline:       cfg.Fetch.Deadline,
		Recorder:       recorder,
		Logger:         logger,
	})

	partition, err := engine.Run(ctx, items)
	if err != nil {
		return err
	}
	stats.Priced = len(partition.Priced)
	stats.Failed = len(partition.Failed)

	// Step 3: Aggregate and report
	valuation := report.Aggregate(partition.Priced)

	if err := report.WriteValuation(stdout, valuation); err != nil {
		return err
	}
	if err := report.WriteFailures(stderr, partition.Failed); err != nil {
		return err
	}

	if stats.Failed > 0 {
		logger.Warn().Int("failed", stats.Failed).Int("priced", stats.Priced).Msg("some items could not be priced")
	}

	// Step 4: Side outputs. Failures here are logged, never fatal.
	recorder.ObserveStats(stats)
	recorder.ObserveValuation(valuation)
	if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Error().Err(err).Str("path", cfg.Metrics.Textfile).Msg("metrics textfile not written")
	}

	if cfg.PublishingEnabled() {
		publish(ctx, cfg.Redis, logger, stats, valuation, partition.Failed)
	}

	return nil
}

// publish announces the valuation on the configured Redis stream
func publish(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger, stats models.RunStats, v models.Valuation, failed []models.FailedItem) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
	defer redisClient.Close()

	pub := publisher.NewPublisher(redisClient, cfg.Stream, cfg.MaxLen)
	id, err := pub.Publish(ctx, stats, v, failed)
	if err != nil {
		logger.Error().Err(err).Str("stream", pub.Stream()).Msg("valuation not published")
		return
	}

	logger.Info().Str("stream", pub.Stream()).Str("entry_id", id).Msg("valuation published")
}
