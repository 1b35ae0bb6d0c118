package purge

import (
	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/resolve"
)

// Mode selects whether deletions are carried out or only reported.
type Mode string

const (
	ModeDry  Mode = "dry"
	ModeLive Mode = "live"
)

// EffectStatus is the outcome of one downstream mutation.
type EffectStatus string

const (
	EffectDeleted   EffectStatus = "deleted"
	EffectSimulated EffectStatus = "simulated"
	EffectSkipped   EffectStatus = "skipped"
	EffectNotFound  EffectStatus = "not_found"
	EffectFailed    EffectStatus = "failed"
)

// Effect records what happened to one downstream service.
type Effect struct {
	Status EffectStatus
	Err    error
}

// Outcome summarizes a processed item.
type Outcome string

const (
	OutcomeDeleted     Outcome = "deleted"
	OutcomeWouldDelete Outcome = "would_delete"
	OutcomeProtected   Outcome = "protected"
	OutcomeNoMatch     Outcome = "no_match"
	OutcomeFailed      Outcome = "failed"
)

// Result is the per-item report. The library manager and request tracker
// effects are independent: either may fail without the other being undone.
type Result struct {
	Record    media.WatchRecord
	Entry     *media.Entry
	MatchedBy resolve.MatchedBy
	Outcome   Outcome
	Library   Effect
	Tracker   Effect

	// BytesReclaimed is the space freed, or that would be freed in dry mode.
	BytesReclaimed int64

	// Suggestion is the closest library title for unmatched records.
	Suggestion string

	// Err is set when the item could not be processed at all, or when the
	// library deletion failed.
	Err error
}

// GB returns BytesReclaimed in gigabytes.
func (r Result) GB() float64 {
	return media.GB(r.BytesReclaimed)
}

// Removed reports whether the item counts toward the deleted total.
func (r Result) Removed() bool {
	return r.Outcome == OutcomeDeleted || r.Outcome == OutcomeWouldDelete
}
