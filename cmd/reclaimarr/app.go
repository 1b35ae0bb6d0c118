package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/gofrs/flock"
	"github.com/vmunix/reclaimarr/internal/apiclient"
	"github.com/vmunix/reclaimarr/internal/config"
	"github.com/vmunix/reclaimarr/internal/history"
	"github.com/vmunix/reclaimarr/internal/manager"
	"github.com/vmunix/reclaimarr/internal/overseerr"
	"github.com/vmunix/reclaimarr/internal/protect"
	"github.com/vmunix/reclaimarr/internal/purge"
	"github.com/vmunix/reclaimarr/internal/radarr"
	"github.com/vmunix/reclaimarr/internal/retention"
	"github.com/vmunix/reclaimarr/internal/sonarr"
	"github.com/vmunix/reclaimarr/internal/tautulli"
)

// Library kinds accepted by app.openLibrary.
const (
	kindMovies = "movies"
	kindSeries = "series"
)

// app holds what every command needs after the config is loaded.
type app struct {
	cfg    *config.Config
	path   string
	mode   purge.Mode
	logger *slog.Logger
}

// library pairs a manager with its analytics section and protected tags.
type library struct {
	manager   manager.Manager
	sectionID int
	tags      []int64
}

func loadApp() (*app, error) {
	path := configPath
	if path == "" {
		p, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		path:   path,
		mode:   resolveMode(cfg.Run.IsDryRun(), dryRunFlag, liveFlag),
		logger: newLogger(os.Stderr, cfg.Log.Level),
	}, nil
}

// resolveMode applies the --dry-run and --live overrides to the configured
// mode.
func resolveMode(configDry, dryFlag, liveFlag bool) purge.Mode {
	switch {
	case dryFlag:
		return purge.ModeDry
	case liveFlag:
		return purge.ModeLive
	case configDry:
		return purge.ModeDry
	default:
		return purge.ModeLive
	}
}

func (a *app) clientOptions() []apiclient.Option {
	return []apiclient.Option{
		apiclient.WithTimeout(a.cfg.Run.Timeout.Duration),
		apiclient.WithRateLimit(a.cfg.Run.RequestsPerSecond),
		apiclient.WithLogger(a.logger),
	}
}

func (a *app) policy() retention.Policy {
	return retention.Policy{
		DaysSinceLastWatch: a.cfg.Retention.DaysSinceLastWatch,
		DaysWithoutWatch:   a.cfg.Retention.DaysWithoutWatch,
	}
}

func (a *app) openLibrary(kind string) (*library, error) {
	switch kind {
	case kindMovies:
		if a.cfg.Radarr == nil {
			return nil, fmt.Errorf("radarr is not configured in %s", a.path)
		}
		c := radarr.New(a.cfg.Radarr.URL, a.cfg.Radarr.APIKey, a.clientOptions()...)
		return &library{
			manager:   manager.NewMovies(c),
			sectionID: a.cfg.Tautulli.MovieSectionID,
			tags:      a.cfg.Radarr.ProtectedTags,
		}, nil
	case kindSeries:
		if a.cfg.Sonarr == nil {
			return nil, fmt.Errorf("sonarr is not configured in %s", a.path)
		}
		c := sonarr.New(a.cfg.Sonarr.URL, a.cfg.Sonarr.APIKey, a.clientOptions()...)
		return &library{
			manager:   manager.NewSeries(c),
			sectionID: a.cfg.Tautulli.TVSectionID,
			tags:      a.cfg.Sonarr.ProtectedTags,
		}, nil
	default:
		return nil, fmt.Errorf("unknown library %q", kind)
	}
}

func (a *app) tautulliClient() *tautulli.Client {
	return tautulli.New(a.cfg.Tautulli.URL, a.cfg.Tautulli.APIKey, a.clientOptions()...)
}

func (a *app) overseerrClient() *overseerr.Client {
	if a.cfg.Overseerr == nil {
		return nil
	}
	return overseerr.New(a.cfg.Overseerr.URL, a.cfg.Overseerr.APIKey, a.clientOptions()...)
}

// newRunner wires the pipeline for one library.
func (a *app) newRunner(lib *library) (*purge.Runner, error) {
	ids, err := protect.LoadIDsFile(a.cfg.Protection.IDsFile)
	if err != nil {
		return nil, err
	}
	tags := append(slices.Clone(lib.tags), protect.ParseTags(extraTags)...)
	protected := protect.New(ids, tags)
	nIDs, nTags := protected.Len()
	a.logger.Debug("protection loaded", "ids", nIDs, "tags", nTags)

	opts := purge.OrchestratorOptions{
		Manager:   lib.manager,
		Protected: protected,
		Mode:      a.mode,
		Logger:    a.logger,
	}
	// Assigned only when configured so the interface stays nil otherwise.
	if tracker := a.overseerrClient(); tracker != nil {
		opts.Tracker = tracker
	}

	return purge.NewRunner(purge.RunnerOptions{
		Source:       a.tautulliClient(),
		Orchestrator: purge.NewOrchestrator(opts),
		Manager:      lib.manager,
		SectionID:    lib.sectionID,
		Concurrency:  a.cfg.Run.Concurrency,
		Logger:       a.logger,
	}), nil
}

// recordHistory saves the report. The history log is an audit trail, so a
// failure is logged and does not fail the run.
func (a *app) recordHistory(ctx context.Context, report *purge.Report) {
	store, err := history.Open(a.cfg.Database.Path)
	if err != nil {
		a.logger.Warn("history unavailable", "path", a.cfg.Database.Path, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(ctx, report); err != nil {
		a.logger.Warn("failed to record history", "run_id", report.RunID, "error", err)
	}
}

// acquireLock takes the run lock, failing if another run holds it. An empty
// path disables locking.
func acquireLock(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another run holds the lock %s", path)
	}
	return func() { _ = lock.Unlock() }, nil
}
