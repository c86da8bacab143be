package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpblast/internal/config"
)

func testConfig(url string, requests, concurrency int) *config.Config {
	return &config.Config{
		URL:             url,
		Requests:        requests,
		Concurrency:     concurrency,
		TimeoutDuration: 5 * time.Second,
	}
}

func TestRunSequential(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	runner := NewRunner(context.Background(), testConfig(server.URL, 10, 1), nil)
	defer runner.Close()

	result, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, int64(10), hits.Load())
	assert.Equal(t, uint64(10), result.Successes)
	assert.Equal(t, uint64(0), result.Failures)
	assert.Len(t, result.Samples, 10)
	assert.Positive(t, result.Duration)
}

func TestRunBatchPartition(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// 7 requests at concurrency 3: two full rounds of 3 plus a
	// remainder round of 1.
	runner := NewRunner(context.Background(), testConfig(server.URL, 7, 3), nil)
	defer runner.Close()

	require.Equal(t, 3, runner.Rounds())

	var mu sync.Mutex
	var roundTotals []int
	runner.OnRound = func(_, _, requests int) {
		mu.Lock()
		roundTotals = append(roundTotals, requests)
		mu.Unlock()
	}

	result, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, int64(7), hits.Load())
	assert.Equal(t, uint64(7), result.Total())
	assert.Equal(t, []int{3, 6, 7}, roundTotals)
}

func TestRunConcurrencyBound(t *testing.T) {
	var inflight, peak atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	runner := NewRunner(context.Background(), testConfig(server.URL, 12, 4), nil)
	defer runner.Close()

	result, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, uint64(12), result.Successes)
	assert.LessOrEqual(t, peak.Load(), int64(4))
}

func TestRunMixedStatuses(t *testing.T) {
	// 10 requests in a single round, 3 of them failing with 500.
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) <= 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	runner := NewRunner(context.Background(), testConfig(server.URL, 10, 10), nil)
	defer runner.Close()

	result, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, uint64(7), result.Successes)
	assert.Equal(t, uint64(3), result.Failures)
	assert.Len(t, result.Samples, 7)
	assert.Equal(t, uint64(10), result.Total())
}

func TestRunTransportFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	// Every request fails at the transport layer; the run must still
	// complete and account for all of them.
	runner := NewRunner(context.Background(), testConfig(url, 5, 2), nil)
	defer runner.Close()

	result, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, uint64(0), result.Successes)
	assert.Equal(t, uint64(5), result.Failures)
	assert.Empty(t, result.Samples)

	require.NotPanics(t, func() { Reduce(result) })
}

func TestRunZeroConcurrency(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	runner := NewRunner(context.Background(), testConfig(server.URL, 10, 0), nil)
	defer runner.Close()

	result, err := runner.Run()
	require.ErrorIs(t, err, config.ErrZeroConcurrency)
	assert.Nil(t, result)
	assert.Equal(t, int64(0), hits.Load(), "no request may be issued on invalid config")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	runner := NewRunner(ctx, testConfig(server.URL, 10, 2), nil)
	defer runner.Close()

	result, err := runner.Run()
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, uint64(0), result.Total())
}

func TestWarmupDiscardsResults(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	runner := NewRunner(context.Background(), testConfig(server.URL, 4, 2), nil)
	defer runner.Close()

	runner.Warmup(5)
	assert.Equal(t, int64(5), hits.Load())

	result, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), result.Total(), "warmup requests do not count toward the run")
}
