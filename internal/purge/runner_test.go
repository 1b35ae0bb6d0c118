package purge_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/reclaimarr/internal/apiclient"
	"github.com/vmunix/reclaimarr/internal/manager"
	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/protect"
	"github.com/vmunix/reclaimarr/internal/purge"
	"github.com/vmunix/reclaimarr/internal/purge/mocks"
	"github.com/vmunix/reclaimarr/internal/radarr"
	"github.com/vmunix/reclaimarr/internal/resolve"
	"github.com/vmunix/reclaimarr/internal/retention"
	"github.com/vmunix/reclaimarr/internal/tautulli"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeRadarr serves a fixed movie listing and records deletions.
type fakeRadarr struct {
	*httptest.Server

	mu      sync.Mutex
	deleted []string
	calls   int
}

func newFakeRadarr(t *testing.T, listing string) *fakeRadarr {
	t.Helper()
	f := &fakeRadarr{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/movie", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listing))
	})
	mux.HandleFunc("DELETE /api/v3/movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.deleted = append(f.deleted, r.PathValue("id")+"?deleteFiles="+r.URL.Query().Get("deleteFiles"))
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls++
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeRadarr) deletions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

const matrixListing = `[
	{"id":1,"title":"The Matrix","year":1999,"tmdbId":603,"tags":[],"sizeOnDisk":1000},
	{"id":2,"title":"The Matrix Reloaded","year":2003,"tmdbId":604,"tags":[9],"sizeOnDisk":2000}
]`

func metadata(guids ...string) []byte {
	body := `{"response":{"result":"success","data":{"guids":[`
	for i, g := range guids {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf("%q", g)
	}
	return []byte(body + `]}}}`)
}

func staleRecord(id, title string, size int64) media.WatchRecord {
	last := testNow.Add(-400 * 24 * time.Hour)
	return media.WatchRecord{ID: id, Title: title, LastPlayedAt: &last, FileSizeBytes: size}
}

func newRadarrRunner(t *testing.T, ctrl *gomock.Controller, srv *fakeRadarr, mode purge.Mode, prot *protect.Set, tracker purge.Tracker) (*purge.Runner, *mocks.MockSource) {
	t.Helper()
	mgr := manager.NewMovies(radarr.New(srv.URL, "key", apiclient.WithRateLimit(0)))
	source := mocks.NewMockSource(ctrl)
	orch := purge.NewOrchestrator(purge.OrchestratorOptions{
		Manager: mgr, Tracker: tracker, Protected: prot, Mode: mode, Logger: testLogger(),
	})
	runner := purge.NewRunner(purge.RunnerOptions{
		Source:       source,
		Orchestrator: orch,
		Manager:      mgr,
		SectionID:    1,
		Logger:       testLogger(),
		Now:          func() time.Time { return testNow },
	})
	return runner, source
}

func TestRunner_ProtectedEntryIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newFakeRadarr(t, matrixListing)
	runner, source := newRadarrRunner(t, ctrl, srv, purge.ModeLive, protect.New(nil, []int64{9}), nil)

	rec := staleRecord("20", "The Matrix Reloaded", 5000)
	source.EXPECT().SearchLibrary(gomock.Any(), 1, gomock.Any()).Return([]media.WatchRecord{rec}, nil)
	source.EXPECT().GetMetadata(gomock.Any(), "20").Return(metadata("tmdb://604"), nil)

	report, err := runner.Scan(context.Background(), retention.Policy{DaysSinceLastWatch: 30}, 0)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, purge.OutcomeProtected, res.Outcome)
	require.NotNil(t, res.Entry)
	assert.Equal(t, int64(2), res.Entry.ID)
	assert.Zero(t, report.BytesReclaimed())
	assert.Empty(t, srv.deletions())
}

func TestRunner_LiveDeletesResolvedMovie(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newFakeRadarr(t, matrixListing)
	tracker := mocks.NewMockTracker(ctrl)
	tracker.EXPECT().DeleteTracked(gomock.Any(), media.SchemeTMDB, int64(603)).Return(nil)
	runner, source := newRadarrRunner(t, ctrl, srv, purge.ModeLive, protect.New(nil, nil), tracker)

	rec := staleRecord("10", "The Matrix", 2147483648)
	source.EXPECT().SearchLibrary(gomock.Any(), 1, gomock.Any()).Return([]media.WatchRecord{rec}, nil)
	source.EXPECT().GetMetadata(gomock.Any(), "10").Return(metadata("imdb://tt0133093", "tmdb://603"), nil)

	report, err := runner.Scan(context.Background(), retention.Policy{DaysSinceLastWatch: 30}, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"1?deleteFiles=true"}, srv.deletions())
	assert.Equal(t, purge.ModeLive, report.Mode)
	assert.Equal(t, "radarr", report.Manager)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 1, report.Removed())
	assert.InDelta(t, 2.0, media.GB(report.BytesReclaimed()), 1e-9)
	assert.Equal(t, resolve.MatchedByExternalID, report.Results[0].MatchedBy)
}

func TestRunner_DryRunMatchesLiveAccounting(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newFakeRadarr(t, matrixListing)
	tracker := mocks.NewMockTracker(ctrl)
	runner, source := newRadarrRunner(t, ctrl, srv, purge.ModeDry, protect.New(nil, nil), tracker)

	rec := staleRecord("10", "The Matrix", 2147483648)
	source.EXPECT().SearchLibrary(gomock.Any(), 1, gomock.Any()).Return([]media.WatchRecord{rec}, nil)
	source.EXPECT().GetMetadata(gomock.Any(), "10").Return(metadata("tmdb://603"), nil)

	report, err := runner.Scan(context.Background(), retention.Policy{DaysSinceLastWatch: 30}, 0)
	require.NoError(t, err)

	assert.Empty(t, srv.deletions())
	assert.Equal(t, 1, srv.calls, "only the listing is fetched")
	assert.Equal(t, purge.OutcomeWouldDelete, report.Results[0].Outcome)
	assert.Equal(t, int64(2147483648), report.BytesReclaimed())
	assert.Equal(t, 1, report.Removed())
}

func TestRunner_RetentionFiltersRecent(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newFakeRadarr(t, matrixListing)
	runner, source := newRadarrRunner(t, ctrl, srv, purge.ModeLive, nil, nil)

	recent := testNow.Add(-5 * 24 * time.Hour)
	records := []media.WatchRecord{
		{ID: "10", Title: "The Matrix", LastPlayedAt: &recent},
		{ID: "11", Title: "Never Played"},
	}
	source.EXPECT().SearchLibrary(gomock.Any(), 1, tautulli.SearchOptions{Length: 500}).Return(records, nil)

	report, err := runner.Scan(context.Background(), retention.Policy{DaysSinceLastWatch: 30}, 500)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Empty(t, report.Results)
	assert.Zero(t, srv.calls, "no candidates means no manager listing")
}

func TestRunner_TitleFallbackAndNoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newFakeRadarr(t, matrixListing)
	runner, source := newRadarrRunner(t, ctrl, srv, purge.ModeDry, nil, nil)

	byTitle := staleRecord("10", "The Matrix", 100)
	missing := staleRecord("30", "Matrix Resurrections", 100)
	source.EXPECT().SearchLibrary(gomock.Any(), 1, gomock.Any()).Return([]media.WatchRecord{byTitle, missing}, nil)
	source.EXPECT().GetMetadata(gomock.Any(), "10").Return([]byte(`not json`), nil)
	source.EXPECT().GetMetadata(gomock.Any(), "30").Return(metadata("tmdb://624860"), nil)

	report, err := runner.Scan(context.Background(), retention.Policy{DaysSinceLastWatch: 30}, 0)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, purge.OutcomeWouldDelete, report.Results[0].Outcome)
	assert.Equal(t, resolve.MatchedByTitle, report.Results[0].MatchedBy)
	assert.Equal(t, purge.OutcomeNoMatch, report.Results[1].Outcome)
	assert.Equal(t, 1, report.Count(purge.OutcomeNoMatch))
}

func TestRunner_MetadataFailureIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newFakeRadarr(t, matrixListing)
	runner, source := newRadarrRunner(t, ctrl, srv, purge.ModeLive, nil, nil)

	first := staleRecord("10", "The Matrix", 100)
	second := staleRecord("20", "The Matrix Reloaded", 200)
	source.EXPECT().SearchLibrary(gomock.Any(), 1, gomock.Any()).Return([]media.WatchRecord{first, second}, nil)
	source.EXPECT().GetMetadata(gomock.Any(), "10").Return(nil, errors.New("timeout"))
	source.EXPECT().GetMetadata(gomock.Any(), "20").Return(metadata("tmdb://604"), nil)

	report, err := runner.Scan(context.Background(), retention.Policy{DaysSinceLastWatch: 30}, 0)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, purge.OutcomeFailed, report.Results[0].Outcome)
	assert.ErrorContains(t, report.Results[0].Err, "metadata")
	assert.Equal(t, purge.OutcomeDeleted, report.Results[1].Outcome)
	assert.Equal(t, []string{"2?deleteFiles=true"}, srv.deletions())
	assert.Len(t, report.Failures(), 1)
}

func TestRunner_DiscoveryFailures(t *testing.T) {
	t.Run("analytics listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		srv := newFakeRadarr(t, matrixListing)
		runner, source := newRadarrRunner(t, ctrl, srv, purge.ModeLive, nil, nil)
		source.EXPECT().SearchLibrary(gomock.Any(), 1, gomock.Any()).Return(nil, errors.New("bad api key"))

		_, err := runner.Scan(context.Background(), retention.Policy{DaysSinceLastWatch: 30}, 0)
		assert.ErrorIs(t, err, purge.ErrDiscovery)
	})

	t.Run("manager listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mgr := mocks.NewMockManager(ctrl)
		mgr.EXPECT().Name().Return("radarr").AnyTimes()
		mgr.EXPECT().ListEntries(gomock.Any()).Return(nil, apiclient.ErrUnauthorized)
		source := mocks.NewMockSource(ctrl)
		source.EXPECT().SearchLibrary(gomock.Any(), 1, gomock.Any()).Return([]media.WatchRecord{staleRecord("10", "The Matrix", 1)}, nil)

		runner := purge.NewRunner(purge.RunnerOptions{
			Source:       source,
			Orchestrator: purge.NewOrchestrator(purge.OrchestratorOptions{Manager: mgr, Logger: testLogger()}),
			Manager:      mgr,
			SectionID:    1,
			Logger:       testLogger(),
			Now:          func() time.Time { return testNow },
		})
		_, err := runner.Scan(context.Background(), retention.Policy{DaysSinceLastWatch: 30}, 0)
		assert.ErrorIs(t, err, purge.ErrDiscovery)
		assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	})
}

func TestRunner_ConcurrencyKeepsInputOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	mgr := newMockManager(ctrl)

	var listing []media.Entry
	var records []media.WatchRecord
	for i := 1; i <= 8; i++ {
		id := int64(1000 + i)
		listing = append(listing, media.Entry{ID: int64(i), Title: fmt.Sprintf("Movie %d", i), ExternalID: &id})
		records = append(records, staleRecord(fmt.Sprint(i), fmt.Sprintf("Movie %d", i), int64(i)))
	}
	mgr.EXPECT().ListEntries(gomock.Any()).Return(listing, nil)

	source := mocks.NewMockSource(ctrl)
	source.EXPECT().GetMetadata(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, key string) ([]byte, error) {
			var n int
			_, _ = fmt.Sscan(key, &n)
			time.Sleep(time.Duration(8-n) * time.Millisecond)
			return metadata(fmt.Sprintf("tmdb://%d", 1000+n)), nil
		},
	).Times(len(records))

	runner := purge.NewRunner(purge.RunnerOptions{
		Source:       source,
		Orchestrator: purge.NewOrchestrator(purge.OrchestratorOptions{Manager: mgr, Mode: purge.ModeDry, Logger: testLogger()}),
		Manager:      mgr,
		SectionID:    1,
		Concurrency:  4,
		Logger:       testLogger(),
		Now:          func() time.Time { return testNow },
	})

	report, err := runner.Purge(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, report.Results, len(records))
	for i, res := range report.Results {
		assert.Equal(t, records[i].ID, res.Record.ID)
		require.NotNil(t, res.Entry)
		assert.Equal(t, int64(i+1), res.Entry.ID)
	}
	assert.Equal(t, int64(36), report.BytesReclaimed())
}

func TestRunner_SearchAndPurge(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newFakeRadarr(t, matrixListing)
	runner, source := newRadarrRunner(t, ctrl, srv, purge.ModeLive, protect.New([]int64{604}, nil), nil)

	found := []media.WatchRecord{
		{ID: "10", Title: "The Matrix", FileSizeBytes: 10},
		{ID: "20", Title: "The Matrix Reloaded", FileSizeBytes: 20},
	}
	source.EXPECT().SearchLibrary(gomock.Any(), 1, tautulli.SearchOptions{Query: "matrix"}).Return(found, nil)
	source.EXPECT().GetMetadata(gomock.Any(), "20").Return(metadata("tmdb://604"), nil)

	records, err := runner.Search(context.Background(), "matrix")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Operator picks the protected one; protection still applies and no
	// retention rule is consulted.
	report, err := runner.Purge(context.Background(), records[1:])
	require.NoError(t, err)
	assert.Equal(t, purge.OutcomeProtected, report.Results[0].Outcome)
	assert.Empty(t, srv.deletions())
}
