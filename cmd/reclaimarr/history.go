package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vmunix/reclaimarr/internal/history"
	"github.com/vmunix/reclaimarr/internal/media"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs",
	Long: `Show recorded runs, most recent first.

Examples:
  reclaimarr history                  # Last 20 runs
  reclaimarr history --manager sonarr
  reclaimarr history show <run-id>    # Every item of one run`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the items of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().String("manager", "", "Only runs of this manager (radarr, sonarr)")
	historyShowCmd.Flags().String("outcome", "", "Only items with this outcome")
}

func openHistory() (*history.Store, error) {
	a, err := loadApp()
	if err != nil {
		return nil, err
	}
	return history.Open(a.cfg.Database.Path)
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	managerName, _ := cmd.Flags().GetString("manager")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	filter := history.RunFilter{Limit: limit}
	if managerName != "" {
		filter.Manager = &managerName
	}
	runs, err := store.ListRuns(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(os.Stdout, runs)
		return nil
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}
	fmt.Println(renderRuns(runs))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	outcome, _ := cmd.Flags().GetString("outcome")
	runID := args[0]

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	filter := history.ItemFilter{RunID: &runID}
	if outcome != "" {
		filter.Outcome = &outcome
	}
	items, err := store.ListItems(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(os.Stdout, items)
		return nil
	}
	if len(items) == 0 {
		fmt.Printf("No items recorded for run %s\n", runID)
		return nil
	}
	fmt.Println(renderItems(items))
	return nil
}

func renderRuns(runs []*history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Manager,
			r.Mode,
			strconv.Itoa(r.Scanned),
			strconv.Itoa(r.Removed),
			strconv.Itoa(r.Failures),
			fmt.Sprintf("%.2f GB", media.GB(r.BytesReclaimed)),
		})
	}
	return renderTable(
		[]string{"RUN", "STARTED", "MANAGER", "MODE", "SCANNED", "REMOVED", "FAILED", "RECLAIMED"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}

func renderItems(items []*history.Item) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		errText := it.Error
		if it.TrackerError != "" {
			if errText != "" {
				errText += "; "
			}
			errText += "overseerr: " + it.TrackerError
		}
		rows = append(rows, []string{
			strconv.Itoa(it.Position + 1),
			it.Title,
			it.Outcome,
			it.MatchedBy,
			it.LibraryStatus,
			it.TrackerStatus,
			fmt.Sprintf("%.2f GB", media.GB(it.BytesReclaimed)),
			errText,
		})
	}
	return renderTable(
		[]string{"#", "TITLE", "OUTCOME", "MATCHED", "LIBRARY", "TRACKER", "SIZE", "ERROR"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}
