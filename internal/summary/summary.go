package summary

import (
	"fmt"
	"time"

	"httpblast/internal/cli"
	"httpblast/internal/client"
)

// PrintRun prints the final report: counts, throughput, percentiles,
// then the (min, max, mean) triple for each timing series. All figures
// arrive already truncated to two decimals by the reducer.
func PrintRun(s *client.Summary, duration time.Duration) {
	cli.Section("Results")
	cli.Linef("Duration: %s", cli.FormatDuration(duration))
	cli.Blank()

	cli.KeyValue("Successful Calls", fmt.Sprintf("%d", s.Successes))
	cli.KeyValue("Failed Calls", fmt.Sprintf("%d", s.Failures))
	cli.KeyValue("Requests/sec", fmt.Sprintf("%.2f", s.RequestsPerSec))
	cli.KeyValue("P95 Time to First Byte (s)", fmt.Sprintf("%.2f", s.P95))
	cli.KeyValue("P99 Time to First Byte (s)", fmt.Sprintf("%.2f", s.P99))
	cli.Rule()

	if s.SampleCount == 0 {
		cli.Warnf("No successful responses: latency statistics unavailable")
		cli.Blank()
		return
	}

	printSeries("Total Request Time (s) (Min, Max, Mean)", s.TotalTime)
	printSeries("Time to First Byte (s) (Min, Max, Mean)", s.TTFB)
	printSeries("Time to Last Byte (s) (Min, Max, Mean)", s.TTLB)
	cli.Blank()
}

// PrintCapacity prints the outcome of a capacity search.
func PrintCapacity(r *client.CapacityResult) {
	cli.Blank()
	if r.MaxConcurrencyPassed == 0 {
		cli.Failf("No concurrency level met the thresholds (%d iterations)", r.Iterations)
		return
	}
	cli.Successf("Max concurrency passed: %d", r.MaxConcurrencyPassed)
	cli.KeyValue("Achieved Requests/sec", fmt.Sprintf("%.2f", r.AchievedRPS))
	cli.KeyValue("P99 Time to First Byte (s)", fmt.Sprintf("%.2f", r.P99Seconds))
	cli.KeyValue("Success Rate", fmt.Sprintf("%.1f%%", r.SuccessRate*100))
	cli.KeyValue("Iterations", fmt.Sprintf("%d", r.Iterations))
}

func printSeries(label string, series client.SeriesStats) {
	cli.KeyValue(label, fmt.Sprintf("%.2f, %.2f, %.2f", series.Min, series.Max, series.Mean))
}
