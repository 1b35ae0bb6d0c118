// Package overseerr removes request records from Overseerr once the media
// they track has been deleted.
package overseerr

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/vmunix/reclaimarr/internal/apiclient"
	"github.com/vmunix/reclaimarr/internal/media"
)

// ErrNotTracked is returned when Overseerr holds no media record for an id.
var ErrNotTracked = errors.New("not tracked by overseerr")

// MediaInfo is Overseerr's record of a requested item.
type MediaInfo struct {
	ID     int64  `json:"id"`
	TMDBID int64  `json:"tmdbId"`
	TVDBID *int64 `json:"tvdbId"`
	Status int    `json:"status"`
}

type movieDetails struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	MediaInfo *MediaInfo `json:"mediaInfo"`
}

type searchResponse struct {
	Page         int            `json:"page"`
	TotalResults int            `json:"totalResults"`
	Results      []searchResult `json:"results"`
}

type searchResult struct {
	ID        int64      `json:"id"`
	MediaType string     `json:"mediaType"`
	MediaInfo *MediaInfo `json:"mediaInfo"`
}

// Client talks to Overseerr.
type Client struct {
	api *apiclient.Client
}

// New creates an Overseerr client.
func New(baseURL, apiKey string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New("overseerr", baseURL, apiclient.HeaderKey(apiKey), opts...)}
}

// MovieMedia looks up the media record for a TMDB movie id.
func (c *Client) MovieMedia(ctx context.Context, tmdbID int64) (*MediaInfo, error) {
	var m movieDetails
	err := c.api.GetJSON(ctx, fmt.Sprintf("/api/v1/movie/%d", tmdbID), nil, &m)
	if errors.Is(err, apiclient.ErrNotFound) {
		return nil, ErrNotTracked
	}
	if err != nil {
		return nil, err
	}
	if m.MediaInfo == nil || m.MediaInfo.ID == 0 {
		return nil, ErrNotTracked
	}
	return m.MediaInfo, nil
}

// SeriesMedia finds the media record for a TVDB series id. Overseerr has no
// direct TVDB lookup, so this searches for "tvdb:<id>" and picks the result
// whose media record carries the same id.
func (c *Client) SeriesMedia(ctx context.Context, tvdbID int64) (*MediaInfo, error) {
	q := url.Values{"query": {fmt.Sprintf("tvdb:%d", tvdbID)}}
	var resp searchResponse
	if err := c.api.GetJSON(ctx, "/api/v1/search", q, &resp); err != nil {
		return nil, err
	}
	for _, r := range resp.Results {
		mi := r.MediaInfo
		if mi != nil && mi.TVDBID != nil && *mi.TVDBID == tvdbID && mi.ID != 0 {
			return mi, nil
		}
	}
	return nil, ErrNotTracked
}

// DeleteMedia removes a media record and the requests attached to it.
func (c *Client) DeleteMedia(ctx context.Context, mediaID int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("/api/v1/media/%d", mediaID), nil)
}

// DeleteTracked removes whatever Overseerr tracks for an external id.
// Movies are looked up by TMDB id and series by TVDB id. ErrNotTracked is
// returned when there is nothing to remove.
func (c *Client) DeleteTracked(ctx context.Context, scheme media.Scheme, externalID int64) error {
	var (
		mi  *MediaInfo
		err error
	)
	switch scheme {
	case media.SchemeTMDB:
		mi, err = c.MovieMedia(ctx, externalID)
	case media.SchemeTVDB:
		mi, err = c.SeriesMedia(ctx, externalID)
	default:
		return fmt.Errorf("overseerr: unsupported scheme %q", scheme)
	}
	if err != nil {
		return err
	}
	return c.DeleteMedia(ctx, mi.ID)
}

// Ping checks that Overseerr is reachable and accepts the API key.
func (c *Client) Ping(ctx context.Context) error {
	var me struct {
		ID int64 `json:"id"`
	}
	return c.api.GetJSON(ctx, "/api/v1/auth/me", nil, &me)
}
