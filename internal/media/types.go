// Package media defines the records exchanged between the analytics service,
// the library managers and the deletion pipeline.
package media

import "time"

// Scheme identifies an external catalog.
type Scheme string

const (
	SchemeTMDB Scheme = "tmdb"
	SchemeTVDB Scheme = "tvdb"
	SchemeIMDB Scheme = "imdb"
)

// Guid is a scheme-tagged external identifier, e.g. tmdb://603.
type Guid struct {
	Scheme Scheme
	Value  string
}

func (g Guid) String() string {
	return string(g.Scheme) + "://" + g.Value
}

// WatchRecord is a library item as reported by the analytics service.
type WatchRecord struct {
	ID            string // rating key
	Title         string
	Year          int
	LastPlayedAt  *time.Time
	AddedAt       *time.Time
	PlayCount     *int
	FileSizeBytes int64
}

// Entry is an item held by a library manager.
type Entry struct {
	ID         int64
	Title      string
	ExternalID *int64 // scheme implied by the manager
	Tags       []int64
	SizeOnDisk int64
}

// ExternalIDValue returns the external id, or 0 when absent.
func (e *Entry) ExternalIDValue() int64 {
	if e.ExternalID == nil {
		return 0
	}
	return *e.ExternalID
}

// BytesPerGB converts raw byte counts to the GB figure shown in reports.
const BytesPerGB = 1073741824

// GB converts bytes to gigabytes.
func GB(bytes int64) float64 {
	return float64(bytes) / BytesPerGB
}
