// Package sonarr is a client for the Sonarr v3 API.
package sonarr

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vmunix/reclaimarr/internal/apiclient"
)

// Series is the subset of a Sonarr series resource used here.
type Series struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Year       int        `json:"year"`
	TVDBID     int64      `json:"tvdbId"`
	Tags       []int64    `json:"tags"`
	Statistics Statistics `json:"statistics"`
}

// Statistics holds per-series file totals. Older Sonarr builds omit it.
type Statistics struct {
	SeasonCount      int   `json:"seasonCount"`
	EpisodeFileCount int   `json:"episodeFileCount"`
	SizeOnDisk       int64 `json:"sizeOnDisk"`
}

// SystemStatus is returned by /api/v3/system/status.
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}

// Client talks to Sonarr.
type Client struct {
	api *apiclient.Client
}

// New creates a Sonarr client.
func New(baseURL, apiKey string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New("sonarr", baseURL, apiclient.HeaderKey(apiKey), opts...)}
}

// Series lists every series Sonarr manages.
func (c *Client) Series(ctx context.Context) ([]Series, error) {
	var series []Series
	if err := c.api.GetJSON(ctx, "/api/v3/series", nil, &series); err != nil {
		return nil, err
	}
	return series, nil
}

// DeleteSeries removes a series, optionally deleting its files from disk.
func (c *Client) DeleteSeries(ctx context.Context, id int64, deleteFiles bool) error {
	q := url.Values{"deleteFiles": {fmt.Sprint(deleteFiles)}}
	return c.api.Delete(ctx, fmt.Sprintf("/api/v3/series/%d", id), q)
}

// Status returns the system status; it doubles as an API key check.
func (c *Client) Status(ctx context.Context) (*SystemStatus, error) {
	var s SystemStatus
	if err := c.api.GetJSON(ctx, "/api/v3/system/status", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
