package client

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client sized for a load run.
// concurrency determines connection pool size.
func NewHTTPClient(concurrency int) *http.Client {
	return &http.Client{
		Transport: NewHTTPTransport(concurrency),
	}
}

// NewHTTPTransport creates a transport sized for concurrent request rounds.
func NewHTTPTransport(concurrency int) *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        concurrency * 2,
		MaxIdleConnsPerHost: concurrency * 2,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  true,
		ForceAttemptHTTP2:   false,
	}
}
