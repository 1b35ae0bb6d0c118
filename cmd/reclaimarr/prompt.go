package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/purge"
)

// noChoice means the operator chose not to delete anything.
const noChoice = -1

// chooser selects one record out of a title search.
type chooser struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	yes         bool
	pick        int // 1-based; 0 deletes nothing; negative means unset
	mode        purge.Mode
}

// choose returns the index of the chosen record or noChoice. Without a
// terminal the choice must come from --yes or --pick.
func (c chooser) choose(records []media.WatchRecord) (int, error) {
	switch {
	case len(records) == 0:
		fmt.Fprintln(c.out, "I couldn't find your movie. Try a different search term.")
		return noChoice, nil
	case c.pick >= 0:
		if c.pick > len(records) {
			return noChoice, fmt.Errorf("--pick %d: only %d match(es)", c.pick, len(records))
		}
		return c.pick - 1, nil
	case len(records) == 1:
		return c.confirmOne(records[0])
	default:
		return c.pickOne(records)
	}
}

func (c chooser) confirmOne(rec media.WatchRecord) (int, error) {
	if c.yes {
		return 0, nil
	}
	if !c.interactive {
		return noChoice, errors.New("stdin is not a terminal: pass --yes to confirm the deletion")
	}

	fmt.Fprintf(c.out, "Movie found:\n%s\nDelete it? [N]: ", describe(rec))
	answer := strings.ToLower(strings.TrimSpace(readLine(c.in)))
	if answer == "y" || answer == "yes" {
		return 0, nil
	}
	return noChoice, nil
}

func (c chooser) pickOne(records []media.WatchRecord) (int, error) {
	if !c.interactive {
		return noChoice, fmt.Errorf("%d matches and stdin is not a terminal: pass --pick N", len(records))
	}

	fmt.Fprintln(c.out, "[0] Delete nothing")
	for i, rec := range records {
		fmt.Fprintf(c.out, "[%d] %s\n", i+1, describe(rec))
	}
	if c.mode == purge.ModeDry {
		fmt.Fprintln(c.out, "DRY RUN MODE - no selected movies will be deleted")
	} else {
		fmt.Fprintln(c.out, "*** The selected movie will be deleted ***")
	}
	fmt.Fprint(c.out, "Choose a movie to delete [0]: ")

	n, err := strconv.Atoi(strings.TrimSpace(readLine(c.in)))
	if err != nil || n < 1 || n > len(records) {
		return noChoice, nil
	}
	return n - 1, nil
}

func describe(rec media.WatchRecord) string {
	if rec.Year > 0 {
		return fmt.Sprintf("%s (%d)", rec.Title, rec.Year)
	}
	return rec.Title
}

func readLine(r io.Reader) string {
	line, _ := bufio.NewReader(r).ReadString('\n')
	return line
}
