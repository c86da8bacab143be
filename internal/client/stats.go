package client

import (
	"math"
	"slices"
	"time"
)

// SeriesStats holds the reduced figures for one timing series, in
// seconds, each truncated to two decimals.
type SeriesStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Summary is the final report of a run, computed once from a finished
// LoadResult. SampleCount distinguishes a genuine all-zero measurement
// from the no-data case: when it is zero the latency figures carry no
// information.
type Summary struct {
	Successes      uint64      `json:"successes"`
	Failures       uint64      `json:"failures"`
	SampleCount    int         `json:"sample_count"`
	RequestsPerSec float64     `json:"requests_per_sec"`
	P95            float64     `json:"p95"`
	P99            float64     `json:"p99"`
	TotalTime      SeriesStats `json:"total_time"`
	TTFB           SeriesStats `json:"ttfb"`
	TTLB           SeriesStats `json:"ttlb"`
}

// Reduce computes summary statistics from a finished run. Percentiles
// are over the TTFB series; throughput divides successful calls only by
// the wall-clock run duration.
func Reduce(result *LoadResult) *Summary {
	summary := &Summary{
		Successes:   result.Successes,
		Failures:    result.Failures,
		SampleCount: len(result.Samples),
		TotalTime:   reduceSeries(result.Samples, func(s Sample) time.Duration { return s.TotalTime }),
		TTFB:        reduceSeries(result.Samples, func(s Sample) time.Duration { return s.TTFB }),
		TTLB:        reduceSeries(result.Samples, func(s Sample) time.Duration { return s.TTLB }),
	}

	ttfbs := make([]float64, 0, len(result.Samples))
	for _, s := range result.Samples {
		ttfbs = append(ttfbs, s.TTFB.Seconds())
	}
	slices.Sort(ttfbs)
	summary.P95 = Truncate2(Percentile(ttfbs, 95))
	summary.P99 = Truncate2(Percentile(ttfbs, 99))

	if result.Duration > 0 {
		summary.RequestsPerSec = Truncate2(float64(result.Successes) / result.Duration.Seconds())
	}

	return summary
}

func reduceSeries(samples []Sample, value func(Sample) time.Duration) SeriesStats {
	if len(samples) == 0 {
		return SeriesStats{}
	}

	low := value(samples[0])
	high := value(samples[0])
	var total time.Duration
	for _, s := range samples {
		v := value(s)
		total += v
		low = min(low, v)
		high = max(high, v)
	}
	mean := total.Seconds() / float64(len(samples))

	return SeriesStats{
		Min:  Truncate2(low.Seconds()),
		Max:  Truncate2(high.Seconds()),
		Mean: Truncate2(mean),
	}
}

// Percentile returns the p-th percentile of a sorted series using the
// nearest-rank rule on a zero-based index: round(p/100 * (len-1)). An
// empty series yields 0.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Round(float64(p) / 100 * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Truncate2 truncates toward zero to two decimal places, so 0.129
// reports as 0.12 rather than 0.13.
func Truncate2(x float64) float64 {
	return math.Trunc(x*100) / 100
}
