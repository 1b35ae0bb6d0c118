// Package resolve maps a watch record to at most one library entry.
package resolve

import (
	"strconv"

	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/titlematch"
)

// MatchedBy records which rule produced a resolution.
type MatchedBy string

const (
	MatchedByExternalID MatchedBy = "externalId"
	MatchedByTitle      MatchedBy = "title"
	MatchedByNone       MatchedBy = "none"
)

// Resolution is the outcome of resolving one watch record.
type Resolution struct {
	Entry     *media.Entry // nil when MatchedBy is none
	MatchedBy MatchedBy

	// ExternalID is the usable identifier taken from the record's guids, if any.
	ExternalID *int64

	// Candidates counts the entries that matched the last rule tried.
	// Values above one mean the rule was ambiguous.
	Candidates int

	// Suggestion is the closest library title when nothing matched.
	Suggestion string
}

// Resolved reports whether an entry was found.
func (r Resolution) Resolved() bool {
	return r.Entry != nil
}

// Resolve finds the library entry a watch record refers to.
//
// The first guid carrying scheme is parsed as an integer id and matched against
// entry external ids. If that yields anything other than exactly one entry
// (no usable id, no match, or several matches) the record title is compared
// for exact, case-sensitive equality instead. A title that matches zero or
// several entries leaves the record unresolved.
//
// Resolve does not modify its inputs.
func Resolve(rec media.WatchRecord, guids []media.Guid, scheme media.Scheme, listing []media.Entry) Resolution {
	res := Resolution{MatchedBy: MatchedByNone}

	if id, ok := externalID(guids, scheme); ok {
		res.ExternalID = &id
		matches := filter(listing, func(e *media.Entry) bool {
			return e.ExternalID != nil && *e.ExternalID == id
		})
		res.Candidates = len(matches)
		if len(matches) == 1 {
			res.Entry = matches[0]
			res.MatchedBy = MatchedByExternalID
			return res
		}
	}

	matches := filter(listing, func(e *media.Entry) bool {
		return e.Title == rec.Title
	})
	res.Candidates = len(matches)
	if len(matches) == 1 {
		res.Entry = matches[0]
		res.MatchedBy = MatchedByTitle
		return res
	}

	if len(matches) == 0 {
		titles := make([]string, len(listing))
		for i := range listing {
			titles[i] = listing[i].Title
		}
		if s, ok := titlematch.Suggest(rec.Title, titles); ok {
			res.Suggestion = s.Title
		}
	}
	return res
}

// externalID returns the first guid of the given scheme parsed as an integer.
// Only the first guid of the scheme is considered; if it does not parse the
// record has no usable id.
func externalID(guids []media.Guid, scheme media.Scheme) (int64, bool) {
	for _, g := range guids {
		if g.Scheme != scheme {
			continue
		}
		id, err := strconv.ParseInt(g.Value, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// filter returns pointers to a copy of each matching entry so callers cannot
// alter the listing through a resolution.
func filter(listing []media.Entry, match func(*media.Entry) bool) []*media.Entry {
	var out []*media.Entry
	for i := range listing {
		if match(&listing[i]) {
			e := listing[i]
			out = append(out, &e)
		}
	}
	return out
}
