package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpblast/internal/config"
)

func capacityConfig(url string) *config.Config {
	return &config.Config{
		URL:             url,
		TimeoutDuration: 5 * time.Second,
		Capacity: config.CapacityConfig{
			MinConcurrency:  1,
			MaxConcurrency:  4,
			Requests:        8,
			Precision:       "5%",
			PrecisionPct:    5,
			SuccessRatePct:  0.95,
			P99ThresholdDur: 5 * time.Second,
		},
	}
}

func TestCapacityAllPass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tester := NewCapacityTester(context.Background(), capacityConfig(server.URL), nil)
	result, err := tester.Run()
	require.NoError(t, err)

	assert.Equal(t, 4, result.MaxConcurrencyPassed, "when the maximum passes the search short-circuits")
	assert.Equal(t, 2, result.Iterations)
	assert.InDelta(t, 1.0, result.SuccessRate, 1e-9)
}

func TestCapacityNonePass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tester := NewCapacityTester(context.Background(), capacityConfig(server.URL), nil)
	result, err := tester.Run()
	require.NoError(t, err)

	assert.Equal(t, 0, result.MaxConcurrencyPassed)
	assert.Equal(t, 1, result.Iterations, "the search stops when the minimum already fails")
}
