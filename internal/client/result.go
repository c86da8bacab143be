package client

import "time"

// Sample holds the measurements from one successful request.
type Sample struct {
	TTFB      time.Duration `json:"ttfb"`
	TTLB      time.Duration `json:"ttlb"`
	TotalTime time.Duration `json:"total_time"`
	Status    int           `json:"status"`
}

// Outcome is the result of a single issued request: either a sample
// (any HTTP response, including non-2xx) or a transport-level error.
type Outcome struct {
	Sample Sample
	Err    error
}

// LoadResult accumulates the outcomes of a whole run. Samples are
// appended in completion order within a round, rounds in scheduling
// order; only 2xx responses contribute a sample.
type LoadResult struct {
	Successes uint64        `json:"successes"`
	Failures  uint64        `json:"failures"`
	Samples   []Sample      `json:"samples"`
	Duration  time.Duration `json:"duration"`
}

// Fold merges a round's outcomes into the result. A 2xx sample counts
// as a success and is recorded; everything else (non-2xx status or a
// transport error) counts as a failure and contributes no sample.
func (r *LoadResult) Fold(outcomes []Outcome) {
	for _, o := range outcomes {
		if o.Err == nil && o.Sample.Status >= 200 && o.Sample.Status < 300 {
			r.Successes++
			r.Samples = append(r.Samples, o.Sample)
			continue
		}
		r.Failures++
	}
}

// Total returns the number of requests accounted for so far.
func (r *LoadResult) Total() uint64 {
	return r.Successes + r.Failures
}
