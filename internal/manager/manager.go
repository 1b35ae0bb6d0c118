// Package manager adapts the Radarr and Sonarr clients to a single library
// manager strategy, so the deletion pipeline does not care which kind of
// library it is pruning.
package manager

//go:generate mockgen -destination=../purge/mocks/manager.go -package=mocks . Manager

import (
	"context"
	"fmt"

	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/radarr"
	"github.com/vmunix/reclaimarr/internal/sonarr"
)

// Manager is a content-library manager.
type Manager interface {
	// Name is the service name used in logs and reports.
	Name() string
	// Scheme is the external identifier scheme the manager keys entries by.
	Scheme() media.Scheme
	// ListEntries returns the full current listing.
	ListEntries(ctx context.Context) ([]media.Entry, error)
	// DeleteEntry removes an entry and, when deleteFiles is set, its files.
	DeleteEntry(ctx context.Context, id int64, deleteFiles bool) error
	// ReclaimableBytes reports how much space deleting entry would free.
	ReclaimableBytes(rec media.WatchRecord, entry *media.Entry) int64
	// Ping verifies the manager is reachable and the API key is accepted.
	Ping(ctx context.Context) error
}

// Movies is the Radarr strategy.
type Movies struct {
	client *radarr.Client
}

// NewMovies wraps a Radarr client.
func NewMovies(c *radarr.Client) *Movies {
	return &Movies{client: c}
}

func (m *Movies) Name() string         { return "radarr" }
func (m *Movies) Scheme() media.Scheme { return media.SchemeTMDB }

// ListEntries returns every Radarr movie as an entry keyed by TMDB id.
func (m *Movies) ListEntries(ctx context.Context) ([]media.Entry, error) {
	movies, err := m.client.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	entries := make([]media.Entry, 0, len(movies))
	for _, mv := range movies {
		entries = append(entries, media.Entry{
			ID:         mv.ID,
			Title:      mv.Title,
			ExternalID: optionalID(mv.TMDBID),
			Tags:       mv.Tags,
			SizeOnDisk: mv.SizeOnDisk,
		})
	}
	return entries, nil
}

func (m *Movies) DeleteEntry(ctx context.Context, id int64, deleteFiles bool) error {
	return m.client.DeleteMovie(ctx, id, deleteFiles)
}

// ReclaimableBytes prefers the file size reported by the analytics service and
// falls back to Radarr's size on disk.
func (m *Movies) ReclaimableBytes(rec media.WatchRecord, entry *media.Entry) int64 {
	if rec.FileSizeBytes > 0 {
		return rec.FileSizeBytes
	}
	if entry != nil {
		return entry.SizeOnDisk
	}
	return 0
}

func (m *Movies) Ping(ctx context.Context) error {
	_, err := m.client.Status(ctx)
	return err
}

// Series is the Sonarr strategy.
type Series struct {
	client *sonarr.Client
}

// NewSeries wraps a Sonarr client.
func NewSeries(c *sonarr.Client) *Series {
	return &Series{client: c}
}

func (s *Series) Name() string         { return "sonarr" }
func (s *Series) Scheme() media.Scheme { return media.SchemeTVDB }

// ListEntries returns every Sonarr series as an entry keyed by TVDB id.
func (s *Series) ListEntries(ctx context.Context) ([]media.Entry, error) {
	series, err := s.client.Series(ctx)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	entries := make([]media.Entry, 0, len(series))
	for _, sr := range series {
		entries = append(entries, media.Entry{
			ID:         sr.ID,
			Title:      sr.Title,
			ExternalID: optionalID(sr.TVDBID),
			Tags:       sr.Tags,
			SizeOnDisk: sr.Statistics.SizeOnDisk,
		})
	}
	return entries, nil
}

func (s *Series) DeleteEntry(ctx context.Context, id int64, deleteFiles bool) error {
	return s.client.DeleteSeries(ctx, id, deleteFiles)
}

// ReclaimableBytes uses Sonarr's per-series size; the analytics service only
// reports sizes for individual files.
func (s *Series) ReclaimableBytes(rec media.WatchRecord, entry *media.Entry) int64 {
	if entry != nil && entry.SizeOnDisk > 0 {
		return entry.SizeOnDisk
	}
	return rec.FileSizeBytes
}

func (s *Series) Ping(ctx context.Context) error {
	_, err := s.client.Status(ctx)
	return err
}

// optionalID maps the zero id the *arr APIs use for "unknown" to nil.
func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
