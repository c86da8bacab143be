package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultRequests    = 10
	DefaultConcurrency = 1
	DefaultTimeout     = "10s"
	DefaultWarmup      = 0

	DefaultCapacityMinConcurrency = 1
	DefaultCapacityMaxConcurrency = 512
	DefaultCapacityRequests       = 200
	DefaultCapacityPrecision      = "5%"
	DefaultCapacitySuccessRate    = "95%"
	DefaultCapacityP99Threshold   = "500ms"
)

// ErrZeroConcurrency rejects a run with concurrency 0 before any
// request is issued; the batch partition divides the request count by
// the concurrency bound.
var ErrZeroConcurrency = errors.New("concurrency must be at least 1")

// Config holds one run's settings. String fields come from the YAML
// file or flags; the parsed duration lives in TimeoutDuration.
type Config struct {
	URL         string `yaml:"url"`
	Requests    int    `yaml:"requests"`
	Concurrency int    `yaml:"concurrency"`
	Timeout     string `yaml:"timeout"`
	Warmup      int    `yaml:"warmup"`

	Capacity CapacityConfig `yaml:"capacity"`
	Influx   InfluxConfig   `yaml:"influx"`

	TimeoutDuration time.Duration `yaml:"-"`
}

type CapacityConfig struct {
	MinConcurrency int    `yaml:"min_concurrency"`
	MaxConcurrency int    `yaml:"max_concurrency"`
	Requests       int    `yaml:"requests"`
	Precision      string `yaml:"precision"`
	SuccessRate    string `yaml:"success_rate"`
	P99Threshold   string `yaml:"p99_threshold"`

	PrecisionPct    float64       `yaml:"-"`
	SuccessRatePct  float64       `yaml:"-"`
	P99ThresholdDur time.Duration `yaml:"-"`
}

type InfluxConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Token    string `yaml:"token"`
	Database string `yaml:"database"`
}

// Default returns a config with every optional field at its default;
// the URL stays empty and must come from a flag, the file, or the
// interactive prompt.
func Default() *Config {
	return &Config{
		Requests:    DefaultRequests,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		Warmup:      DefaultWarmup,
		Capacity: CapacityConfig{
			MinConcurrency: DefaultCapacityMinConcurrency,
			MaxConcurrency: DefaultCapacityMaxConcurrency,
			Requests:       DefaultCapacityRequests,
			Precision:      DefaultCapacityPrecision,
			SuccessRate:    DefaultCapacitySuccessRate,
			P99Threshold:   DefaultCapacityP99Threshold,
		},
		Influx: InfluxConfig{
			Enabled:  false,
			Host:     "http://localhost:8181",
			Database: "httpblast",
		},
	}
}

// Resolve parses the string-typed fields and validates the whole
// config. It must run once after flags and file values are merged and
// before a Runner is built.
func (c *Config) Resolve() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid url %q: scheme must be http or https", c.URL)
	}

	if c.Requests < 1 {
		return fmt.Errorf("requests must be at least 1, got %d", c.Requests)
	}
	if c.Concurrency < 1 {
		return ErrZeroConcurrency
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must not be negative, got %d", c.Warmup)
	}

	c.TimeoutDuration, err = time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if c.TimeoutDuration <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if err = c.Capacity.resolve(); err != nil {
		return fmt.Errorf("capacity config: %w", err)
	}

	return nil
}

func (cc *CapacityConfig) resolve() error {
	if cc.MinConcurrency < 1 {
		return ErrZeroConcurrency
	}
	if cc.MaxConcurrency < cc.MinConcurrency {
		return fmt.Errorf("max_concurrency %d is below min_concurrency %d", cc.MaxConcurrency, cc.MinConcurrency)
	}
	if cc.Requests < 1 {
		return fmt.Errorf("requests must be at least 1, got %d", cc.Requests)
	}

	var err error
	if cc.PrecisionPct, err = parsePercent(cc.Precision); err != nil {
		return fmt.Errorf("invalid precision: %w", err)
	}

	ratePct, err := parsePercent(cc.SuccessRate)
	if err != nil {
		return fmt.Errorf("invalid success_rate: %w", err)
	}
	cc.SuccessRatePct = ratePct / 100

	if cc.P99ThresholdDur, err = time.ParseDuration(cc.P99Threshold); err != nil {
		return fmt.Errorf("invalid p99_threshold: %w", err)
	}

	return nil
}

func parsePercent(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	var value float64
	if _, err := fmt.Sscanf(trimmed, "%f", &value); err != nil {
		return 0, fmt.Errorf("cannot parse %q as a percentage: %w", s, err)
	}
	if value < 0 || value > 100 {
		return 0, fmt.Errorf("percentage %q out of range", s)
	}
	return value, nil
}
