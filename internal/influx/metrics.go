package influx

import (
	"strconv"
	"time"

	"github.com/InfluxCommunity/influxdb3-go/influxdb3"

	"httpblast/internal/client"
)

const writeBatchSize = 5000

// WriteRunSamples exports one point per successful sample. Points share
// a base timestamp with a microsecond offset per sample to keep them
// distinct and ordered.
func (c *Client) WriteRunSamples(runID, url string, samples []client.Sample) {
	if c == nil {
		return
	}

	baseTime := time.Now()
	points := make([]*influxdb3.Point, 0, writeBatchSize)
	for i, s := range samples {
		if c.ctx != nil && c.ctx.Err() != nil {
			return
		}
		points = append(points, influxdb3.NewPoint(
			"request_latency",
			map[string]string{
				"run_id": runID,
				"url":    url,
				"status": strconv.Itoa(s.Status),
			},
			map[string]any{
				"ttfb_ns":  s.TTFB.Nanoseconds(),
				"ttlb_ns":  s.TTLB.Nanoseconds(),
				"total_ns": s.TotalTime.Nanoseconds(),
			},
			baseTime.Add(time.Duration(i)*time.Microsecond),
		))
		if len(points) >= writeBatchSize {
			c.writePoints(points)
			points = points[:0]
		}
	}
	c.writePoints(points)
}

// WriteRunSummary exports a single point with the reduced statistics of
// a finished run.
func (c *Client) WriteRunSummary(runID, url string, s *client.Summary) {
	if c == nil {
		return
	}

	c.writePoints([]*influxdb3.Point{influxdb3.NewPoint(
		"run_summary",
		map[string]string{
			"run_id": runID,
			"url":    url,
		},
		map[string]any{
			"successes":        int64(s.Successes),
			"failures":         int64(s.Failures),
			"requests_per_sec": s.RequestsPerSec,
			"p95_ttfb_s":       s.P95,
			"p99_ttfb_s":       s.P99,
			"ttfb_mean_s":      s.TTFB.Mean,
			"ttlb_mean_s":      s.TTLB.Mean,
			"total_mean_s":     s.TotalTime.Mean,
		},
		time.Now(),
	)})
}
