// Package protect decides whether a library entry is exempt from deletion.
package protect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/vmunix/reclaimarr/internal/media"
)

// Set holds protected external ids and tag ids. It is built once per run and
// not modified afterwards.
type Set struct {
	ids  map[int64]struct{}
	tags map[int64]struct{}
}

// New builds a Set from explicit ids and tags.
func New(ids, tags []int64) *Set {
	s := &Set{
		ids:  make(map[int64]struct{}, len(ids)),
		tags: make(map[int64]struct{}, len(tags)),
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	for _, t := range tags {
		s.tags[t] = struct{}{}
	}
	return s
}

// Protects reports whether the entry's external id is protected or any of its
// tags is a protected tag. A nil Set protects nothing.
func (s *Set) Protects(e *media.Entry) bool {
	if s == nil || e == nil {
		return false
	}
	if e.ExternalID != nil {
		if _, ok := s.ids[*e.ExternalID]; ok {
			return true
		}
	}
	for _, t := range e.Tags {
		if _, ok := s.tags[t]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of protected ids and tags.
func (s *Set) Len() (ids, tags int) {
	if s == nil {
		return 0, 0
	}
	return len(s.ids), len(s.tags)
}

// LoadIDsFile reads protected external ids, one per line. Text after '#' is
// a comment; blank and non-numeric lines are skipped. A missing file is an
// empty list.
func LoadIDsFile(path string) ([]int64, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open protected ids: %w", err)
	}
	defer func() { _ = f.Close() }()

	ids, err := ParseIDs(f)
	if err != nil {
		return nil, fmt.Errorf("read protected ids %s: %w", path, err)
	}
	return ids, nil
}

// ParseIDs reads the protected ids format from r.
func ParseIDs(r io.Reader) ([]int64, error) {
	var ids []int64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		line = strings.TrimSpace(line)
		if !isDigits(line) {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			continue // overflow
		}
		ids = append(ids, id)
	}
	return ids, sc.Err()
}

// ParseTags parses a comma separated tag list such as "3, 7". Members that are
// not integers are ignored.
func ParseTags(s string) []int64 {
	var tags []int64
	for _, part := range strings.Split(s, ",") {
		tag, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
