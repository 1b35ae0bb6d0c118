// Package history keeps an audit log of purge runs in SQLite.
//
// The log is write-mostly: runs are recorded after they finish and read back
// only for display. Nothing in the deletion pipeline consults it.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmunix/reclaimarr/internal/migrations"
	"github.com/vmunix/reclaimarr/internal/purge"

	_ "modernc.org/sqlite"
)

// Run summarizes one recorded run.
type Run struct {
	ID             string
	Manager        string
	Mode           string
	StartedAt      time.Time
	FinishedAt     time.Time
	Scanned        int
	Removed        int
	Failures       int
	BytesReclaimed int64
}

// Item is one processed record of a run.
type Item struct {
	ID             int64
	RunID          string
	Position       int
	RatingKey      string
	Title          string
	EntryID        *int64
	ExternalID     *int64
	MatchedBy      string
	Outcome        string
	LibraryStatus  string
	TrackerStatus  string
	BytesReclaimed int64
	Error          string
	TrackerError   string
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Manager *string
	Mode    *string
	Limit   int
}

// ItemFilter specifies criteria for listing items.
type ItemFilter struct {
	RunID   *string
	Outcome *string
	Limit   int
}

// Store persists run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a report and all its items in one transaction.
func (s *Store) Record(ctx context.Context, report *purge.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, manager, mode, started_at, finished_at, scanned, removed, failures, bytes_reclaimed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.Manager, string(report.Mode), report.StartedAt.UTC(), report.FinishedAt.UTC(),
		report.Scanned, report.Removed(), len(report.Failures()), report.BytesReclaimed(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (run_id, position, rating_key, title, entry_id, external_id, matched_by,
			outcome, library_status, tracker_status, bytes_reclaimed, error, tracker_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare item: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, res := range report.Results {
		var entryID, externalID *int64
		if res.Entry != nil {
			entryID = &res.Entry.ID
			externalID = res.Entry.ExternalID
		}
		_, err := stmt.ExecContext(ctx,
			report.RunID, i, res.Record.ID, res.Record.Title, entryID, externalID, string(res.MatchedBy),
			string(res.Outcome), string(res.Library.Status), string(res.Tracker.Status), res.BytesReclaimed,
			errString(res.Err), errString(res.Tracker.Err),
		)
		if err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListRuns returns runs matching the filter, most recent first.
func (s *Store) ListRuns(ctx context.Context, f RunFilter) ([]*Run, error) {
	var conditions []string
	var args []any

	if f.Manager != nil {
		conditions = append(conditions, "manager = ?")
		args = append(args, *f.Manager)
	}
	if f.Mode != nil {
		conditions = append(conditions, "mode = ?")
		args = append(args, *f.Mode)
	}

	query := `SELECT id, manager, mode, started_at, finished_at, scanned, removed, failures, bytes_reclaimed
		FROM runs ` + where(conditions) + ` ORDER BY started_at DESC, rowid DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Run
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.Manager, &r.Mode, &r.StartedAt, &r.FinishedAt,
			&r.Scanned, &r.Removed, &r.Failures, &r.BytesReclaimed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return results, nil
}

// ListItems returns items matching the filter in run order.
func (s *Store) ListItems(ctx context.Context, f ItemFilter) ([]*Item, error) {
	var conditions []string
	var args []any

	if f.RunID != nil {
		conditions = append(conditions, "run_id = ?")
		args = append(args, *f.RunID)
	}
	if f.Outcome != nil {
		conditions = append(conditions, "outcome = ?")
		args = append(args, *f.Outcome)
	}

	query := `SELECT id, run_id, position, rating_key, title, entry_id, external_id, matched_by,
		outcome, library_status, tracker_status, bytes_reclaimed, error, tracker_error
		FROM items ` + where(conditions) + ` ORDER BY id`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Item
	for rows.Next() {
		it := &Item{}
		if err := rows.Scan(&it.ID, &it.RunID, &it.Position, &it.RatingKey, &it.Title, &it.EntryID, &it.ExternalID,
			&it.MatchedBy, &it.Outcome, &it.LibraryStatus, &it.TrackerStatus, &it.BytesReclaimed,
			&it.Error, &it.TrackerError); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		results = append(results, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return results, nil
}

func where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
