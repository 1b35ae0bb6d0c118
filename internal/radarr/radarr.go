// Package radarr is a client for the Radarr v3 API.
package radarr

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vmunix/reclaimarr/internal/apiclient"
)

// Movie is the subset of a Radarr movie resource used here.
type Movie struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Year       int     `json:"year"`
	TMDBID     int64   `json:"tmdbId"`
	IMDBID     string  `json:"imdbId,omitempty"`
	Tags       []int64 `json:"tags"`
	SizeOnDisk int64   `json:"sizeOnDisk"`
	HasFile    bool    `json:"hasFile"`
}

// SystemStatus is returned by /api/v3/system/status.
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}

// Client talks to Radarr.
type Client struct {
	api *apiclient.Client
}

// New creates a Radarr client.
func New(baseURL, apiKey string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New("radarr", baseURL, apiclient.HeaderKey(apiKey), opts...)}
}

// Movies lists every movie Radarr manages.
func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.api.GetJSON(ctx, "/api/v3/movie", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// DeleteMovie removes a movie, optionally deleting its files from disk.
func (c *Client) DeleteMovie(ctx context.Context, id int64, deleteFiles bool) error {
	q := url.Values{"deleteFiles": {fmt.Sprint(deleteFiles)}}
	return c.api.Delete(ctx, fmt.Sprintf("/api/v3/movie/%d", id), q)
}

// Status returns the system status; it doubles as an API key check.
func (c *Client) Status(ctx context.Context) (*SystemStatus, error) {
	var s SystemStatus
	if err := c.api.GetJSON(ctx, "/api/v3/system/status", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
