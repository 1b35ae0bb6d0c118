package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/reclaimarr/internal/media"
	"github.com/vmunix/reclaimarr/internal/purge"
)

var movieCmd = &cobra.Command{
	Use:   "movie <title>",
	Short: "Find a movie by title and delete it",
	Long: `Search the Tautulli movie library and delete the movie you pick.

Retention rules do not apply here, protection still does. Without a terminal
on stdin, pass --yes for a single match or --pick N for several.

Examples:
  reclaimarr movie "The Matrix"
  reclaimarr movie matrix --pick 2 --live`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMovie,
}

func init() {
	rootCmd.AddCommand(movieCmd)
	movieCmd.Flags().BoolP("yes", "y", false, "Confirm a single match without prompting")
	movieCmd.Flags().Int("pick", -1, "Choose match N without prompting (0 deletes nothing)")
}

func runMovie(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	pick, _ := cmd.Flags().GetInt("pick")
	ctx := cmd.Context()

	a, err := loadApp()
	if err != nil {
		return err
	}

	release, err := acquireLock(a.cfg.Run.LockFile)
	if err != nil {
		return err
	}
	defer release()

	lib, err := a.openLibrary(kindMovies)
	if err != nil {
		return err
	}
	runner, err := a.newRunner(lib)
	if err != nil {
		return err
	}

	records, err := runner.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	c := chooser{
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: isTerminal(os.Stdin),
		yes:         yes,
		pick:        pick,
		mode:        a.mode,
	}
	idx, err := c.choose(records)
	if err != nil {
		return err
	}
	if idx == noChoice {
		if len(records) > 0 {
			fmt.Println("No action taken.")
		}
		return nil
	}

	report, err := runner.Purge(ctx, []media.WatchRecord{records[idx]})
	if err != nil {
		return err
	}
	a.recordHistory(ctx, report)

	if jsonOutput {
		printJSON(os.Stdout, toReportJSON(report))
		return nil
	}
	for _, res := range report.Results {
		fmt.Println(itemLine(report.Manager, res))
	}
	if report.Mode == purge.ModeDry {
		fmt.Println("DRY RUN MODE - nothing was deleted")
	}
	fmt.Printf("Total space reclaimed: %.2f GB\n", media.GB(report.BytesReclaimed()))
	return nil
}
