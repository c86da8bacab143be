package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"httpblast/internal/cli"
	"httpblast/internal/config"
)

// CapacityTester binary-searches the highest concurrency level at which
// the target still meets the configured success-rate and P99 TTFB
// thresholds. Each probe is a full batch-scheduled run at a candidate
// concurrency.
type CapacityTester struct {
	ctx     context.Context
	config  config.CapacityConfig
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

type CapacityResult struct {
	MaxConcurrencyPassed int     `json:"max_concurrency_passed"`
	AchievedRPS          float64 `json:"achieved_rps"`
	P99Seconds           float64 `json:"p99_seconds"`
	SuccessRate          float64 `json:"success_rate"`
	Iterations           int     `json:"iterations"`
}

type probeStats struct {
	passed      bool
	successRate float64
	p99         float64
	rps         float64
}

func NewCapacityTester(ctx context.Context, cfg *config.Config, logger *zap.Logger) *CapacityTester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CapacityTester{
		ctx:     ctx,
		config:  cfg.Capacity,
		url:     cfg.URL,
		timeout: cfg.TimeoutDuration,
		logger:  logger,
	}
}

func (ct *CapacityTester) Run() (*CapacityResult, error) {
	cli.Linef("Capacity: finding max concurrency (range %d-%d, precision %s)", ct.config.MinConcurrency, ct.config.MaxConcurrency, ct.config.Precision)
	cli.Blank()
	cli.CapacityTableHeader()

	low := ct.config.MinConcurrency
	high := ct.config.MaxConcurrency
	searchRange := high - low
	precision := int(float64(searchRange) * ct.config.PrecisionPct / 100)
	precision = max(precision, 1)
	iterations := 0
	var bestStats probeStats

	// First check: does the minimum pass? If not, the result is 0.
	stats, err := ct.testConcurrency(low, &iterations)
	if err != nil {
		return nil, err
	}
	if !stats.passed {
		return &CapacityResult{
			MaxConcurrencyPassed: 0,
			Iterations:           iterations,
		}, nil
	}
	bestStats = stats

	// Quick check: does the maximum pass? If so, skip the search.
	if low < high {
		stats, err = ct.testConcurrency(high, &iterations)
		if err != nil {
			return nil, err
		}
		if stats.passed {
			low = high
			bestStats = stats
		} else {
			high--
		}
	}

	// Binary search: find the highest passing concurrency
	for high-low > precision {
		if ct.ctx.Err() != nil {
			return nil, ct.ctx.Err()
		}

		mid := (low + high + 1) / 2
		stats, err = ct.testConcurrency(mid, &iterations)
		if err != nil {
			return nil, err
		}

		if stats.passed {
			low = mid
			bestStats = stats
		} else {
			high = mid - 1
		}
	}

	return &CapacityResult{
		MaxConcurrencyPassed: low,
		AchievedRPS:          bestStats.rps,
		P99Seconds:           bestStats.p99,
		SuccessRate:          bestStats.successRate,
		Iterations:           iterations,
	}, nil
}

func (ct *CapacityTester) testConcurrency(concurrency int, iterations *int) (probeStats, error) {
	if err := ct.ctx.Err(); err != nil {
		return probeStats{}, err
	}
	stats, err := ct.probe(concurrency)
	*iterations++
	if err != nil {
		return stats, err
	}
	cli.CapacityTableRow(concurrency, stats.passed, stats.rps, stats.p99, stats.successRate)
	return stats, nil
}

func (ct *CapacityTester) probe(concurrency int) (probeStats, error) {
	runner := NewRunner(ct.ctx, &config.Config{
		URL:             ct.url,
		Requests:        ct.config.Requests,
		Concurrency:     concurrency,
		TimeoutDuration: ct.timeout,
	}, ct.logger)
	defer runner.Close()

	result, err := runner.Run()
	if err != nil {
		return probeStats{}, err
	}

	var successRate float64
	if result.Total() > 0 {
		successRate = float64(result.Successes) / float64(result.Total())
	}

	summary := Reduce(result)
	passed := successRate >= ct.config.SuccessRatePct &&
		summary.P99 <= ct.config.P99ThresholdDur.Seconds()

	return probeStats{
		passed:      passed,
		successRate: successRate,
		p99:         summary.P99,
		rps:         summary.RequestsPerSec,
	}, nil
}
