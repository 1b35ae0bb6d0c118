// Package tautulli is a client for the Tautulli watch-history API.
package tautulli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/reclaimarr/internal/apiclient"
	"github.com/vmunix/reclaimarr/internal/media"
)

const apiPath = "/api/v2"

// Client queries Tautulli.
type Client struct {
	api *apiclient.Client
}

// New creates a Tautulli client.
func New(baseURL, apiKey string, opts ...apiclient.Option) *Client {
	return &Client{api: apiclient.New("tautulli", baseURL, apiclient.QueryKey(apiKey), opts...)}
}

// SearchOptions narrows a library listing.
type SearchOptions struct {
	Query  string // title search; empty lists everything
	Length int    // maximum rows; zero uses the server default
}

// envelope is the common response wrapper.
type envelope struct {
	Response struct {
		Result  string          `json:"result"`
		Message *string         `json:"message"`
		Data    json.RawMessage `json:"data"`
	} `json:"response"`
}

type mediaInfo struct {
	RecordsTotal int         `json:"recordsTotal"`
	Data         []mediaItem `json:"data"`
}

type mediaItem struct {
	RatingKey  flexString `json:"rating_key"`
	Title      string     `json:"title"`
	Year       flexInt    `json:"year"`
	LastPlayed flexInt    `json:"last_played"`
	AddedAt    flexInt    `json:"added_at"`
	PlayCount  flexInt    `json:"play_count"`
	FileSize   flexInt    `json:"file_size"`
}

// SearchLibrary lists the items of a library section.
func (c *Client) SearchLibrary(ctx context.Context, sectionID int, opts SearchOptions) ([]media.WatchRecord, error) {
	q := url.Values{
		"cmd":        {"get_library_media_info"},
		"section_id": {strconv.Itoa(sectionID)},
		"refresh":    {"true"},
	}
	if opts.Query != "" {
		q.Set("search", opts.Query)
	}
	if opts.Length > 0 {
		q.Set("length", strconv.Itoa(opts.Length))
	}

	var env envelope
	if err := c.api.GetJSON(ctx, apiPath, q, &env); err != nil {
		return nil, err
	}
	if env.Response.Result != "" && env.Response.Result != "success" {
		msg := ""
		if env.Response.Message != nil {
			msg = *env.Response.Message
		}
		return nil, fmt.Errorf("tautulli: get_library_media_info: %s %s", env.Response.Result, msg)
	}

	var info mediaInfo
	if len(env.Response.Data) > 0 && string(env.Response.Data) != "null" {
		if err := json.Unmarshal(env.Response.Data, &info); err != nil {
			return nil, fmt.Errorf("tautulli: decode library media: %w", err)
		}
	}

	records := make([]media.WatchRecord, 0, len(info.Data))
	for _, item := range info.Data {
		records = append(records, item.record())
	}
	return records, nil
}

// GetMetadata returns the raw get_metadata payload for a rating key.
// Use media.ExtractGuids to read identifiers from it.
func (c *Client) GetMetadata(ctx context.Context, ratingKey string) ([]byte, error) {
	q := url.Values{
		"cmd":        {"get_metadata"},
		"rating_key": {ratingKey},
	}
	return c.api.Get(ctx, apiPath, q)
}

// Ping checks the API key with the arnold command.
func (c *Client) Ping(ctx context.Context) error {
	var env envelope
	if err := c.api.GetJSON(ctx, apiPath, url.Values{"cmd": {"arnold"}}, &env); err != nil {
		return err
	}
	if env.Response.Result != "success" {
		return fmt.Errorf("tautulli: unexpected result %q", env.Response.Result)
	}
	return nil
}

func (m mediaItem) record() media.WatchRecord {
	rec := media.WatchRecord{
		ID:    string(m.RatingKey),
		Title: m.Title,
	}
	if m.Year.Valid {
		rec.Year = int(m.Year.Value)
	}
	if m.LastPlayed.Valid && m.LastPlayed.Value > 0 {
		t := time.Unix(m.LastPlayed.Value, 0)
		rec.LastPlayedAt = &t
	}
	if m.AddedAt.Valid && m.AddedAt.Value > 0 {
		t := time.Unix(m.AddedAt.Value, 0)
		rec.AddedAt = &t
	}
	if m.PlayCount.Valid {
		n := int(m.PlayCount.Value)
		rec.PlayCount = &n
	}
	if m.FileSize.Valid {
		rec.FileSizeBytes = m.FileSize.Value
	}
	return rec
}

// flexInt accepts a JSON number, a numeric string, an empty string or null.
// Tautulli is not consistent about which it sends.
type flexInt struct {
	Value int64
	Valid bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = flexInt{}
		return nil
	}
	s = strings.Trim(s, `"`)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt{Value: n, Valid: true}
		return nil
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexInt{Value: int64(x), Valid: true}
		return nil
	}
	// Unparseable values degrade to absent.
	*f = flexInt{}
	return nil
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	*f = flexString(strings.Trim(s, `"`))
	return nil
}
