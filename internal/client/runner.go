package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"httpblast/internal/config"
)

// Runner schedules a fixed number of GET requests against a single URL
// in concurrency-bounded rounds. Every round fans out its requests as
// goroutines and joins them all before the next round starts, so peak
// concurrency never exceeds the configured bound.
type Runner struct {
	ctx        context.Context
	httpClient *http.Client
	transport  *http.Transport
	logger     *zap.Logger

	url         string
	total       int
	concurrency int
	timeout     time.Duration

	// OnRound, when set, is called after each completed round with the
	// number of finished rounds, the total round count, and the number
	// of requests accounted for so far.
	OnRound func(done, rounds, requests int)
}

func NewRunner(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	transport := NewHTTPTransport(cfg.Concurrency)

	return &Runner{
		ctx:         ctx,
		httpClient:  &http.Client{Transport: transport},
		transport:   transport,
		logger:      logger,
		url:         cfg.URL,
		total:       cfg.Requests,
		concurrency: cfg.Concurrency,
		timeout:     cfg.TimeoutDuration,
	}
}

func (r *Runner) Close() {
	if r.transport != nil {
		r.transport.CloseIdleConnections()
	}
}

// Rounds returns the number of rounds a run will execute.
func (r *Runner) Rounds() int {
	if r.concurrency < 1 {
		return 0
	}
	rounds := r.total / r.concurrency
	if r.total%r.concurrency > 0 {
		rounds++
	}
	return rounds
}

// Run issues exactly total requests in full rounds of concurrency plus
// one remainder round, folding each round's outcomes into the result
// before the next round starts. The returned result always accounts for
// every issued request; individual failures never abort the run. Run
// returns early only on context cancellation or invalid configuration.
func (r *Runner) Run() (*LoadResult, error) {
	if r.concurrency < 1 {
		return nil, config.ErrZeroConcurrency
	}

	full := r.total / r.concurrency
	remainder := r.total % r.concurrency
	rounds := r.Rounds()

	result := &LoadResult{Samples: make([]Sample, 0, r.total)}
	done := 0
	start := time.Now()

	for range full {
		if err := r.ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
		result.Fold(r.runRound(r.concurrency))
		done++
		r.notifyRound(done, rounds, result)
	}

	if remainder > 0 {
		if err := r.ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
		result.Fold(r.runRound(remainder))
		done++
		r.notifyRound(done, rounds, result)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Warmup issues count requests through the same scheduling path and
// discards the outcomes.
func (r *Runner) Warmup(count int) {
	if r.concurrency < 1 {
		return
	}
	for count > 0 && r.ctx.Err() == nil {
		size := min(count, r.concurrency)
		r.runRound(size)
		count -= size
	}
}

func (r *Runner) runRound(size int) []Outcome {
	outcomeCh := make(chan Outcome, size)

	var wg sync.WaitGroup
	wg.Add(size)
	for range size {
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
			defer cancel()

			sample, err := Issue(ctx, r.httpClient, r.url)
			outcomeCh <- Outcome{Sample: sample, Err: err}
		}()
	}
	wg.Wait()
	close(outcomeCh)

	outcomes := make([]Outcome, 0, size)
	for o := range outcomeCh {
		if o.Err != nil {
			r.logger.Debug("request failed", zap.Error(o.Err))
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func (r *Runner) notifyRound(done, rounds int, result *LoadResult) {
	r.logger.Debug("round complete",
		zap.Int("round", done),
		zap.Int("rounds", rounds),
		zap.Uint64("successes", result.Successes),
		zap.Uint64("failures", result.Failures),
	)
	if r.OnRound != nil {
		r.OnRound(done, rounds, int(result.Total()))
	}
}
