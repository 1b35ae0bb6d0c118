package purge

import "time"

// Report is the result of one run.
type Report struct {
	RunID      string
	Mode       Mode
	Manager    string
	StartedAt  time.Time
	FinishedAt time.Time

	// Scanned is the number of records considered before retention.
	Scanned int
	// Results holds one entry per processed record, in input order.
	Results []Result
}

// BytesReclaimed totals the space freed across all items.
func (r *Report) BytesReclaimed() int64 {
	var total int64
	for _, res := range r.Results {
		total += res.BytesReclaimed
	}
	return total
}

// Removed counts items that were deleted, or would be in dry mode.
func (r *Report) Removed() int {
	n := 0
	for _, res := range r.Results {
		if res.Removed() {
			n++
		}
	}
	return n
}

// Failures returns items that failed outright or whose request tracker
// cleanup failed.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed || res.Tracker.Status == EffectFailed {
			out = append(out, res)
		}
	}
	return out
}

// Count returns how many items had the given outcome.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}
