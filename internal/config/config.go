// Package config loads Midas configuration from defaults, an optional YAML
// file and MIDAS_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/XavierBriggs/Midas/adapters/insider"
	"github.com/XavierBriggs/Midas/internal/publisher"
	"github.com/XavierBriggs/Midas/internal/querykey"
)

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Log     LogConfig     `yaml:"log"`
	Redis   RedisConfig   `yaml:"redis"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type SourceConfig struct {
	BaseURL       string `yaml:"base_url"`
	Locale        string `yaml:"locale"`
	Platform      string `yaml:"platform"`
	PriceSelector string `yaml:"price_selector"`
	UserAgent     string `yaml:"user_agent"`
	WithQuality   bool   `yaml:"with_quality"` // add the quality segment to lookup keys
}

type FetchConfig struct {
	Concurrency    int           `yaml:"concurrency"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Deadline       time.Duration `yaml:"deadline"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // empty disables publishing
	Password string `yaml:"password"`
	Stream   string `yaml:"stream"`
	MaxLen   int64  `yaml:"max_len"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // empty disables the metrics textfile
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:       querykey.DefaultBaseURL,
			Locale:        querykey.DefaultLocale,
			Platform:      querykey.DefaultPlatform,
			PriceSelector: insider.PCPriceSelector,
		},
		Fetch: FetchConfig{
			Concurrency:    runtime.NumCPU(),
			RequestTimeout: 10 * time.Second,
			Deadline:       5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Redis: RedisConfig{
			Stream: publisher.DefaultStream,
			MaxLen: publisher.DefaultMaxLen,
		},
	}
}

// Load builds the configuration. configPath may be empty. The result is not
// validated; callers apply their own overrides and then call Validate.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from MIDAS_* environment variables
func (c *Config) applyEnv() error {
	c.Source.BaseURL = getEnv("MIDAS_BASE_URL", c.Source.BaseURL)
	c.Source.Locale = getEnv("MIDAS_LOCALE", c.Source.Locale)
	c.Source.Platform = getEnv("MIDAS_PLATFORM", c.Source.Platform)
	c.Source.PriceSelector = getEnv("MIDAS_PRICE_SELECTOR", c.Source.PriceSelector)
	c.Source.UserAgent = getEnv("MIDAS_USER_AGENT", c.Source.UserAgent)
	c.Log.Level = getEnv("MIDAS_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("MIDAS_LOG_FORMAT", c.Log.Format)
	c.Redis.Addr = getEnv("MIDAS_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("MIDAS_REDIS_PASSWORD", c.Redis.Password)
	c.Redis.Stream = getEnv("MIDAS_REDIS_STREAM", c.Redis.Stream)
	c.Metrics.Textfile = getEnv("MIDAS_METRICS_TEXTFILE", c.Metrics.Textfile)

	var errs []error
	if v := os.Getenv("MIDAS_WITH_QUALITY"); v != "" {
		b, err := strconv.ParseBool(v)
		errs = append(errs, envErr("MIDAS_WITH_QUALITY", err))
		c.Source.WithQuality = b
	}
	if v := os.Getenv("MIDAS_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		errs = append(errs, envErr("MIDAS_CONCURRENCY", err))
		c.Fetch.Concurrency = n
	}
	if v := os.Getenv("MIDAS_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, envErr("MIDAS_REQUEST_TIMEOUT", err))
		c.Fetch.RequestTimeout = d
	}
	if v := os.Getenv("MIDAS_DEADLINE"); v != "" {
		d, err := time.ParseDuration(v)
		errs = append(errs, envErr("MIDAS_DEADLINE", err))
		c.Fetch.Deadline = d
	}

	return errors.Join(errs...)
}

// Validate rejects configurations the pipeline cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Source.BaseURL == "" {
		errs = append(errs, errors.New("source.base_url is required"))
	}
	if c.Source.Locale == "" {
		errs = append(errs, errors.New("source.locale is required"))
	}
	if c.Source.Platform == "" {
		errs = append(errs, errors.New("source.platform is required"))
	}
	if c.Fetch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("fetch.concurrency must be at least 1, got %d", c.Fetch.Concurrency))
	}
	if c.Fetch.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch.request_timeout must be positive, got %v", c.Fetch.RequestTimeout))
	}
	if c.Fetch.Deadline <= 0 {
		errs = append(errs, fmt.Errorf("fetch.deadline must be positive, got %v", c.Fetch.Deadline))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of console, json", c.Log.Format))
	}

	return errors.Join(errs...)
}

// PublishingEnabled reports whether valuations are published to Redis
func (c *Config) PublishingEnabled() bool {
	return c.Redis.Addr != ""
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envErr(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("invalid %s: %w", key, err)
}
