package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/purge"
	"github.com/vmunix/reclaimarr/internal/resolve"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ptr[T any](v T) *T { return &v }

func testReport(id, manager string, mode purge.Mode, started time.Time) *purge.Report {
	return &purge.Report{
		RunID:      id,
		Mode:       mode,
		Manager:    manager,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Minute),
		Scanned:    10,
		Results: []purge.Result{
			{
				Record:         media.WatchRecord{ID: "10", Title: "The Matrix"},
				Entry:          &media.Entry{ID: 1, Title: "The Matrix", ExternalID: ptr(int64(603))},
				MatchedBy:      resolve.MatchedByExternalID,
				Outcome:        purge.OutcomeDeleted,
				Library:        purge.Effect{Status: purge.EffectDeleted},
				Tracker:        purge.Effect{Status: purge.EffectFailed, Err: errors.New("overseerr: status 500")},
				BytesReclaimed: 2147483648,
			},
			{
				Record:    media.WatchRecord{ID: "11", Title: "Unknown"},
				MatchedBy: resolve.MatchedByNone,
				Outcome:   purge.OutcomeNoMatch,
				Library:   purge.Effect{Status: purge.EffectSkipped},
				Tracker:   purge.Effect{Status: purge.EffectSkipped},
			},
		},
	}
}

func TestStore_RecordAndListRuns(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, testReport("run-1", "radarr", purge.ModeLive, started)))

	runs, err := store.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, "run-1", r.ID)
	assert.Equal(t, "radarr", r.Manager)
	assert.Equal(t, "live", r.Mode)
	assert.True(t, r.StartedAt.Equal(started), "started_at round-trips, got %v", r.StartedAt)
	assert.Equal(t, 10, r.Scanned)
	assert.Equal(t, 1, r.Removed)
	assert.Equal(t, 1, r.Failures, "tracker failure counts")
	assert.Equal(t, int64(2147483648), r.BytesReclaimed)
}

func TestStore_ListItems(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, testReport("run-1", "radarr", purge.ModeLive, time.Now())))

	items, err := store.ListItems(ctx, ItemFilter{RunID: ptr("run-1")})
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, "10", first.RatingKey)
	require.NotNil(t, first.EntryID)
	assert.Equal(t, int64(1), *first.EntryID)
	require.NotNil(t, first.ExternalID)
	assert.Equal(t, int64(603), *first.ExternalID)
	assert.Equal(t, "externalId", first.MatchedBy)
	assert.Equal(t, "deleted", first.LibraryStatus)
	assert.Equal(t, "failed", first.TrackerStatus)
	assert.Equal(t, "overseerr: status 500", first.TrackerError)
	assert.Empty(t, first.Error)

	second := items[1]
	assert.Nil(t, second.EntryID)
	assert.Nil(t, second.ExternalID)
	assert.Equal(t, "no_match", second.Outcome)

	noMatch, err := store.ListItems(ctx, ItemFilter{Outcome: ptr("no_match")})
	require.NoError(t, err)
	assert.Len(t, noMatch, 1)
}

func TestStore_ListRuns_FilterAndOrder(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, testReport("a", "radarr", purge.ModeDry, base)))
	require.NoError(t, store.Record(ctx, testReport("b", "sonarr", purge.ModeLive, base.Add(time.Hour))))
	require.NoError(t, store.Record(ctx, testReport("c", "radarr", purge.ModeLive, base.Add(2*time.Hour))))

	runs, err := store.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})

	runs, err = store.ListRuns(ctx, RunFilter{Manager: ptr("radarr")})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = store.ListRuns(ctx, RunFilter{Mode: ptr("dry")})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a", runs[0].ID)

	runs, err = store.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "c", runs[0].ID)
}

func TestStore_RecordDuplicateRunFails(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	report := testReport("dup", "radarr", purge.ModeDry, time.Now())
	require.NoError(t, store.Record(ctx, report))
	require.Error(t, store.Record(ctx, report))

	items, err := store.ListItems(ctx, ItemFilter{RunID: ptr("dup")})
	require.NoError(t, err)
	assert.Len(t, items, 2, "failed insert leaves no partial items")
}

func TestOpen_CreatesFileAndIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reclaimarr.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), testReport("r", "sonarr", purge.ModeLive, time.Now())))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(context.Background(), RunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
