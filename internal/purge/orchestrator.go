// Package purge runs the deletion pipeline: candidate selection, identity
// resolution, protection and coordinated deletion across the library manager
// and the request tracker.
package purge

//go:generate mockgen -destination=mocks/purge.go -package=mocks . Source,Tracker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vmunix/reclaimarr/internal/manager"
	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/overseerr"
	"github.com/vmunix/reclaimarr/internal/protect"
	"github.com/vmunix/reclaimarr/internal/resolve"
)

// Tracker removes request records for deleted media.
type Tracker interface {
	DeleteTracked(ctx context.Context, scheme media.Scheme, externalID int64) error
}

// Orchestrator carries out, or simulates, the deletion of resolved entries.
type Orchestrator struct {
	manager   manager.Manager
	tracker   Tracker
	protected *protect.Set
	mode      Mode
	log       *slog.Logger
}

// OrchestratorOptions configures an Orchestrator.
type OrchestratorOptions struct {
	Manager   manager.Manager
	Tracker   Tracker // nil when no request tracker is configured
	Protected *protect.Set
	Mode      Mode
	Logger    *slog.Logger
}

// NewOrchestrator creates an Orchestrator. An unknown mode is treated as dry.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mode := opts.Mode
	if mode != ModeLive {
		mode = ModeDry
	}
	return &Orchestrator{
		manager:   opts.Manager,
		tracker:   opts.Tracker,
		protected: opts.Protected,
		mode:      mode,
		log:       logger.With("component", "orchestrator", "manager", opts.Manager.Name()),
	}
}

// Mode returns the run mode.
func (o *Orchestrator) Mode() Mode {
	return o.mode
}

// Execute acts on one resolved record. Unresolved and protected records are
// reported without any call to a downstream service; dry mode never issues a
// mutating call.
func (o *Orchestrator) Execute(ctx context.Context, rec media.WatchRecord, res resolve.Resolution) Result {
	result := Result{
		Record:     rec,
		Entry:      res.Entry,
		MatchedBy:  res.MatchedBy,
		Library:    Effect{Status: EffectSkipped},
		Tracker:    Effect{Status: EffectSkipped},
		Suggestion: res.Suggestion,
	}
	log := o.log.With("title", rec.Title, "rating_key", rec.ID)

	if !res.Resolved() {
		result.Outcome = OutcomeNoMatch
		log.Info("no matching library entry", "candidates", res.Candidates, "suggestion", res.Suggestion)
		return result
	}

	entry := res.Entry
	log = log.With("entry_id", entry.ID, "external_id", entry.ExternalIDValue(), "matched_by", res.MatchedBy)

	if o.protected.Protects(entry) {
		result.Outcome = OutcomeProtected
		log.Info("skipping protected entry")
		return result
	}

	bytes := o.manager.ReclaimableBytes(rec, entry)

	if o.mode == ModeDry {
		result.Outcome = OutcomeWouldDelete
		result.Library = Effect{Status: EffectSimulated}
		if o.tracker != nil && entry.ExternalID != nil {
			result.Tracker = Effect{Status: EffectSimulated}
		}
		result.BytesReclaimed = bytes
		log.Info("dry run: would delete", "bytes", bytes)
		return result
	}

	if err := o.manager.DeleteEntry(ctx, entry.ID, true); err != nil {
		result.Library = Effect{Status: EffectFailed, Err: err}
		result.Err = err
		log.Error("library deletion failed", "error", err)
	} else {
		result.Library = Effect{Status: EffectDeleted}
		result.BytesReclaimed = bytes
		log.Info("deleted from library", "bytes", bytes)
	}

	// The tracker cleanup is independent of the library deletion and its
	// failures never fail the item.
	result.Tracker = o.deleteTracked(ctx, entry, log)

	if result.Library.Status == EffectDeleted {
		result.Outcome = OutcomeDeleted
	} else {
		result.Outcome = OutcomeFailed
	}
	return result
}

func (o *Orchestrator) deleteTracked(ctx context.Context, entry *media.Entry, log *slog.Logger) Effect {
	if o.tracker == nil || entry.ExternalID == nil {
		return Effect{Status: EffectSkipped}
	}

	err := o.tracker.DeleteTracked(ctx, o.manager.Scheme(), *entry.ExternalID)
	switch {
	case err == nil:
		log.Info("deleted from request tracker")
		return Effect{Status: EffectDeleted}
	case errors.Is(err, overseerr.ErrNotTracked):
		log.Debug("not tracked by request tracker")
		return Effect{Status: EffectNotFound}
	default:
		log.Warn("request tracker cleanup failed", "error", err)
		return Effect{Status: EffectFailed, Err: err}
	}
}
