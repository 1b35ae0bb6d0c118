// Package retention selects deletion candidates from watch history.
package retention

import (
	"fmt"
	"time"

	"github.com/vmunix/reclaimarr/internal/media"
)

const day = 24 * time.Hour

// Policy holds the retention thresholds, in days.
type Policy struct {
	// DaysSinceLastWatch applies to records that have been played.
	DaysSinceLastWatch int
	// DaysWithoutWatch applies to records never played since being added.
	// Zero disables that rule.
	DaysWithoutWatch int
}

// Candidate reports whether rec is old enough to delete at now.
func (p Policy) Candidate(rec media.WatchRecord, now time.Time) bool {
	ok, _ := p.evaluate(rec, now)
	return ok
}

// Reason explains the decision Candidate would make.
func (p Policy) Reason(rec media.WatchRecord, now time.Time) string {
	_, reason := p.evaluate(rec, now)
	return reason
}

func (p Policy) evaluate(rec media.WatchRecord, now time.Time) (bool, string) {
	if rec.LastPlayedAt != nil {
		age := now.Sub(*rec.LastPlayedAt)
		days := age.Hours() / 24
		if age > time.Duration(p.DaysSinceLastWatch)*day {
			return true, fmt.Sprintf("last watched %.0f days ago (limit %d)", days, p.DaysSinceLastWatch)
		}
		return false, fmt.Sprintf("watched %.0f days ago", days)
	}

	if p.DaysWithoutWatch <= 0 {
		return false, "never watched; unwatched rule disabled"
	}
	if rec.AddedAt == nil {
		return false, "never watched; added date unknown"
	}
	if rec.PlayCount != nil {
		return false, "never watched; play count reported"
	}

	age := now.Sub(*rec.AddedAt)
	days := age.Hours() / 24
	if age > time.Duration(p.DaysWithoutWatch)*day {
		return true, fmt.Sprintf("unwatched %.0f days after being added (limit %d)", days, p.DaysWithoutWatch)
	}
	return false, fmt.Sprintf("added %.0f days ago, unwatched", days)
}
