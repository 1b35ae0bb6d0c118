package purge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vmunix/reclaimarr/internal/manager"
	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/resolve"
	"github.com/vmunix/reclaimarr/internal/retention"
	"github.com/vmunix/reclaimarr/internal/tautulli"
	"golang.org/x/sync/errgroup"
)

// ErrDiscovery marks failures to list the analytics library or the library
// manager. These abort a run; everything else is isolated to its item.
var ErrDiscovery = errors.New("discovery failed")

// Source is the analytics service.
type Source interface {
	SearchLibrary(ctx context.Context, sectionID int, opts tautulli.SearchOptions) ([]media.WatchRecord, error)
	GetMetadata(ctx context.Context, ratingKey string) ([]byte, error)
}

// Runner drives the pipeline for one library section.
type Runner struct {
	source      Source
	manager     manager.Manager
	orch        *Orchestrator
	sectionID   int
	concurrency int
	log         *slog.Logger
	now         func() time.Time
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Source       Source
	Orchestrator *Orchestrator
	Manager      manager.Manager
	SectionID    int

	// Concurrency bounds how many items are processed at once. Values below
	// one mean sequential processing.
	Concurrency int
	Logger      *slog.Logger
	Now         func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		source:      opts.Source,
		manager:     opts.Manager,
		orch:        opts.Orchestrator,
		sectionID:   opts.SectionID,
		concurrency: concurrency,
		log:         logger.With("component", "runner", "manager", opts.Manager.Name()),
		now:         now,
	}
}

// Scan lists the section, selects candidates with policy and processes each.
// Only discovery failures are returned as errors.
func (r *Runner) Scan(ctx context.Context, policy retention.Policy, numRows int) (*Report, error) {
	report := r.newReport()

	records, err := r.source.SearchLibrary(ctx, r.sectionID, tautulli.SearchOptions{Length: numRows})
	if err != nil {
		return nil, fmt.Errorf("%w: list section %d: %w", ErrDiscovery, r.sectionID, err)
	}
	report.Scanned = len(records)

	now := r.now()
	var candidates []media.WatchRecord
	for _, rec := range records {
		if policy.Candidate(rec, now) {
			r.log.Debug("candidate", "title", rec.Title, "reason", policy.Reason(rec, now))
			candidates = append(candidates, rec)
		}
	}
	r.log.Info("selected candidates", "scanned", len(records), "candidates", len(candidates))

	if err := r.process(ctx, report, candidates); err != nil {
		return nil, err
	}
	return report, nil
}

// Search finds records in the section whose title matches query, for
// interactive selection.
func (r *Runner) Search(ctx context.Context, query string) ([]media.WatchRecord, error) {
	records, err := r.source.SearchLibrary(ctx, r.sectionID, tautulli.SearchOptions{Query: query})
	if err != nil {
		return nil, fmt.Errorf("%w: search section %d: %w", ErrDiscovery, r.sectionID, err)
	}
	return records, nil
}

// Purge processes records chosen by the operator. Retention rules are not
// applied; protection still is.
func (r *Runner) Purge(ctx context.Context, records []media.WatchRecord) (*Report, error) {
	report := r.newReport()
	report.Scanned = len(records)
	if err := r.process(ctx, report, records); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *Runner) newReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Mode:      r.orch.Mode(),
		Manager:   r.manager.Name(),
		StartedAt: r.now(),
	}
}

// process resolves and executes every record. Results keep input order
// regardless of concurrency.
func (r *Runner) process(ctx context.Context, report *Report, records []media.WatchRecord) error {
	defer func() { report.FinishedAt = r.now() }()
	if len(records) == 0 {
		return nil
	}

	listing, err := r.manager.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDiscovery, r.manager.Name(), err)
	}

	results := make([]Result, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			results[i] = r.processOne(gctx, rec, listing)
			return nil
		})
	}
	_ = g.Wait() // items never return errors

	report.Results = results
	return nil
}

func (r *Runner) processOne(ctx context.Context, rec media.WatchRecord, listing []media.Entry) Result {
	if err := ctx.Err(); err != nil {
		return failed(rec, err)
	}

	payload, err := r.source.GetMetadata(ctx, rec.ID)
	if err != nil {
		r.log.Error("fetch metadata failed", "title", rec.Title, "rating_key", rec.ID, "error", err)
		return failed(rec, fmt.Errorf("metadata: %w", err))
	}

	guids := media.ExtractGuids(payload)
	if len(guids) == 0 {
		r.log.Warn("no external ids in metadata, matching by title", "title", rec.Title)
	}

	res := resolve.Resolve(rec, guids, r.manager.Scheme(), listing)
	return r.orch.Execute(ctx, rec, res)
}

func failed(rec media.WatchRecord, err error) Result {
	return Result{
		Record:    rec,
		MatchedBy: resolve.MatchedByNone,
		Outcome:   OutcomeFailed,
		Library:   Effect{Status: EffectSkipped},
		Tracker:   Effect{Status: EffectSkipped},
		Err:       err,
	}
}
