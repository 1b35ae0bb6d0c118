package media

import (
	"encoding/json"
	"strings"
)

// ExtractGuids pulls external identifiers out of an analytics metadata payload.
//
// The payload shape varies by query type:
//
//	{"response":{"data":{"metadata":{"guids":[...]}}}}   single nested record
//	{"response":{"data":{"guids":[...]}}}                single record
//	{"response":{"data":{"data":[{"data":{"guids":[...]}}]}}}
//	[{"data":{"guids":[...]}}]                           bare entry list
//
// Guids are kept in the order found and duplicates are preserved. Anything
// unrecognised yields no guids rather than an error, since title matching is
// still available to the caller.
func ExtractGuids(payload []byte) []Guid {
	var root any
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil
	}

	switch v := root.(type) {
	case map[string]any:
		resp, ok := v["response"].(map[string]any)
		if !ok {
			return nil
		}
		data, ok := resp["data"].(map[string]any)
		if !ok {
			return nil
		}
		if meta, ok := data["metadata"].(map[string]any); ok {
			if raw, ok := meta["guids"]; ok {
				return parseGuidList(raw)
			}
		}
		if raw, ok := data["guids"]; ok {
			return parseGuidList(raw)
		}
		entries, _ := data["data"].([]any)
		return guidsFromEntries(entries)
	case []any:
		return guidsFromEntries(v)
	default:
		return nil
	}
}

func guidsFromEntries(entries []any) []Guid {
	var out []Guid
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		field, ok := entry["data"].(map[string]any)
		if !ok {
			continue
		}
		if raw, ok := field["guids"]; ok {
			out = append(out, parseGuidList(raw)...)
		}
	}
	return out
}

func parseGuidList(raw any) []Guid {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []Guid
	for _, item := range list {
		var s string
		switch g := item.(type) {
		case string:
			s = g
		case map[string]any:
			// Plex-style {"id": "tmdb://603"}
			s, _ = g["id"].(string)
		}
		if guid, ok := ParseGuid(s); ok {
			out = append(out, guid)
		}
	}
	return out
}

// ParseGuid splits "scheme://value". Both parts must be non-empty.
func ParseGuid(s string) (Guid, bool) {
	scheme, value, ok := strings.Cut(strings.TrimSpace(s), "://")
	if !ok || scheme == "" || value == "" {
		return Guid{}, false
	}
	return Guid{Scheme: Scheme(strings.ToLower(scheme)), Value: value}, true
}
