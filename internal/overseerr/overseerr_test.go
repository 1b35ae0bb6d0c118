package overseerr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/reclaimarr/internal/apiclient"
	"github.com/vmunix/reclaimarr/internal/media"
)

// fakeOverseerr records DELETE calls and serves canned lookups.
type fakeOverseerr struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeOverseerr) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/movie/603", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ov-key", r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","mediaInfo":{"id":11,"tmdbId":603,"status":5}}`))
	})
	mux.HandleFunc("GET /api/v1/movie/604", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":604,"title":"The Matrix Reloaded"}`))
	})
	mux.HandleFunc("GET /api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tvdb:81189", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"page":1,"totalResults":3,"results":[
			{"id":1,"mediaType":"person"},
			{"id":2,"mediaType":"tv","mediaInfo":{"id":30,"tvdbId":99999}},
			{"id":1396,"mediaType":"tv","mediaInfo":{"id":31,"tvdbId":81189}}
		]}`))
	})
	mux.HandleFunc("DELETE /api/v1/media/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.deleted = append(f.deleted, r.PathValue("id"))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func newTestClient(t *testing.T) (*Client, *fakeOverseerr) {
	t.Helper()
	fake := &fakeOverseerr{}
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)
	return New(server.URL, "ov-key", apiclient.WithRateLimit(0)), fake
}

func TestClient_MovieMedia(t *testing.T) {
	c, _ := newTestClient(t)

	mi, err := c.MovieMedia(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, int64(11), mi.ID)

	_, err = c.MovieMedia(context.Background(), 604)
	assert.ErrorIs(t, err, ErrNotTracked, "no mediaInfo")

	_, err = c.MovieMedia(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotTracked, "404 from overseerr")
}

func TestClient_SeriesMedia(t *testing.T) {
	c, _ := newTestClient(t)

	mi, err := c.SeriesMedia(context.Background(), 81189)
	require.NoError(t, err)
	assert.Equal(t, int64(31), mi.ID)
}

func TestClient_DeleteTracked_Movie(t *testing.T) {
	c, fake := newTestClient(t)

	require.NoError(t, c.DeleteTracked(context.Background(), media.SchemeTMDB, 603))
	assert.Equal(t, []string{"11"}, fake.deleted)
}

func TestClient_DeleteTracked_Series(t *testing.T) {
	c, fake := newTestClient(t)

	require.NoError(t, c.DeleteTracked(context.Background(), media.SchemeTVDB, 81189))
	assert.Equal(t, []string{"31"}, fake.deleted)
}

func TestClient_DeleteTracked_NotTracked(t *testing.T) {
	c, fake := newTestClient(t)

	err := c.DeleteTracked(context.Background(), media.SchemeTMDB, 604)
	assert.ErrorIs(t, err, ErrNotTracked)
	assert.Empty(t, fake.deleted)
}

func TestClient_DeleteTracked_UnsupportedScheme(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.DeleteTracked(context.Background(), media.SchemeIMDB, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
		if r.Header.Get("X-Api-Key") != "ov-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"email":"admin@example.com"}`))
	}))
	defer server.Close()

	require.NoError(t, New(server.URL, "ov-key", apiclient.WithRateLimit(0)).Ping(context.Background()))

	err := New(server.URL, "wrong", apiclient.WithRateLimit(0)).Ping(context.Background())
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
}
