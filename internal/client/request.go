package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Issue performs one timed GET against url. TTFB is measured when the
// response status and headers arrive, TTLB when the body has been fully
// drained. TotalTime shares the end timestamp with TTLB: both measure
// the same event, so TotalTime >= TTFB always holds.
//
// Any HTTP response yields a sample carrying the observed status code,
// even non-2xx. Only transport-level failures (DNS, connection refused,
// timeout, truncated body) return an error. No retries happen here.
func Issue(ctx context.Context, httpClient *http.Client, url string) (Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Sample{}, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return Sample{}, fmt.Errorf("request failed: %w", err)
	}
	ttfb := time.Since(start)

	_, err = io.Copy(io.Discard, resp.Body)
	closeErr := resp.Body.Close()
	end := time.Since(start)

	if err != nil {
		return Sample{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if closeErr != nil {
		return Sample{}, fmt.Errorf("failed to close response body: %w", closeErr)
	}

	return Sample{
		TTFB:      ttfb,
		TTLB:      end,
		TotalTime: end,
		Status:    resp.StatusCode,
	}, nil
}
