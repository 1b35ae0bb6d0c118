package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/purge"
)

// managerLabels names a manager and its id scheme in human output.
var managerLabels = map[string][2]string{
	"radarr": {"Radarr", "TMDB"},
	"sonarr": {"Sonarr", "TVDB"},
}

func labelsFor(manager string) (string, string) {
	if l, ok := managerLabels[manager]; ok {
		return l[0], l[1]
	}
	return manager, "External"
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func printBanner(w io.Writer, now time.Time, mode purge.Mode) {
	fmt.Fprintln(w, "--------------------------------------")
	fmt.Fprintln(w, now.Format(time.RFC3339))
	if mode == purge.ModeDry {
		fmt.Fprintln(w, "DRY RUN MODE - nothing will be deleted")
	}
}

// itemLine renders the one-line summary printed for every processed item.
func itemLine(manager string, res purge.Result) string {
	name, scheme := labelsFor(manager)
	title := res.Record.Title

	var line string
	switch res.Outcome {
	case purge.OutcomeDeleted, purge.OutcomeWouldDelete:
		action := "DELETED"
		if res.Outcome == purge.OutcomeWouldDelete {
			action = "DRY RUN"
		}
		line = fmt.Sprintf("%s: %s | %.2fGB | %s ID: %d | %s ID: %s",
			action, title, res.GB(), name, res.Entry.ID, scheme, externalID(res.Entry))
	case purge.OutcomeProtected:
		line = fmt.Sprintf("PROTECTED: %s | %s ID: %d | %s ID: %s",
			title, name, res.Entry.ID, scheme, externalID(res.Entry))
	case purge.OutcomeNoMatch:
		line = fmt.Sprintf("NO MATCH: No matching %s entry found for '%s'", name, title)
		if res.Suggestion != "" {
			line += fmt.Sprintf(" (closest: '%s')", res.Suggestion)
		}
	default:
		line = fmt.Sprintf("FAILED: %s | %v", title, res.Err)
	}

	if res.Tracker.Status == purge.EffectFailed {
		line += fmt.Sprintf(" | Overseerr cleanup failed: %v", res.Tracker.Err)
	}
	return line
}

func externalID(e *media.Entry) string {
	if e == nil || e.ExternalID == nil {
		return "-"
	}
	return fmt.Sprint(*e.ExternalID)
}

// printReport writes one line per item, the totals, and a table of failures.
func printReport(w io.Writer, report *purge.Report) {
	for _, res := range report.Results {
		fmt.Fprintln(w, itemLine(report.Manager, res))
	}
	fmt.Fprintf(w, "Total space reclaimed: %.2fGB\n", media.GB(report.BytesReclaimed()))
	fmt.Fprintf(w, "Total items deleted:   %d\n", report.Removed())

	failures := report.Failures()
	if len(failures) == 0 {
		return
	}
	rows := make([][]string, 0, len(failures))
	for _, res := range failures {
		rows = append(rows, []string{res.Record.Title, string(res.Library.Status), string(res.Tracker.Status), failureReason(res)})
	}
	fmt.Fprintf(w, "\n%d item(s) need attention:\n", len(failures))
	fmt.Fprintln(w, renderTable([]string{"TITLE", "LIBRARY", "TRACKER", "ERROR"}, rows, nil))
}

func failureReason(res purge.Result) string {
	var parts []string
	if res.Err != nil {
		parts = append(parts, res.Err.Error())
	}
	if res.Tracker.Err != nil {
		parts = append(parts, "overseerr: "+res.Tracker.Err.Error())
	}
	return strings.Join(parts, "; ")
}

// reportJSON is the --json shape of a report.
type reportJSON struct {
	RunID          string       `json:"run_id"`
	Mode           string       `json:"mode"`
	Manager        string       `json:"manager"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     time.Time    `json:"finished_at"`
	Scanned        int          `json:"scanned"`
	Removed        int          `json:"removed"`
	BytesReclaimed int64        `json:"bytes_reclaimed"`
	GBReclaimed    float64      `json:"gb_reclaimed"`
	Items          []resultJSON `json:"items"`
}

type resultJSON struct {
	RatingKey      string `json:"rating_key"`
	Title          string `json:"title"`
	EntryID        *int64 `json:"entry_id,omitempty"`
	ExternalID     *int64 `json:"external_id,omitempty"`
	MatchedBy      string `json:"matched_by"`
	Outcome        string `json:"outcome"`
	Library        string `json:"library"`
	Tracker        string `json:"tracker"`
	BytesReclaimed int64  `json:"bytes_reclaimed"`
	Suggestion     string `json:"suggestion,omitempty"`
	Error          string `json:"error,omitempty"`
	TrackerError   string `json:"tracker_error,omitempty"`
}

func toReportJSON(r *purge.Report) reportJSON {
	out := reportJSON{
		RunID:          r.RunID,
		Mode:           string(r.Mode),
		Manager:        r.Manager,
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
		Scanned:        r.Scanned,
		Removed:        r.Removed(),
		BytesReclaimed: r.BytesReclaimed(),
		GBReclaimed:    media.GB(r.BytesReclaimed()),
		Items:          make([]resultJSON, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		item := resultJSON{
			RatingKey:      res.Record.ID,
			Title:          res.Record.Title,
			MatchedBy:      string(res.MatchedBy),
			Outcome:        string(res.Outcome),
			Library:        string(res.Library.Status),
			Tracker:        string(res.Tracker.Status),
			BytesReclaimed: res.BytesReclaimed,
			Suggestion:     res.Suggestion,
		}
		if res.Entry != nil {
			item.EntryID = &res.Entry.ID
			item.ExternalID = res.Entry.ExternalID
		}
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		if res.Tracker.Err != nil {
			item.TrackerError = res.Tracker.Err.Error()
		}
		out.Items = append(out.Items, item)
	}
	return out
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
