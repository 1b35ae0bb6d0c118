package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmunix/reclaimarr/internal/purge"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Delete movies that have gone unwatched",
	Long: `Scan the Tautulli movie library and delete every movie whose last watch
is older than retention.days_since_last_watch, or that was never watched
within retention.days_without_watch of being added.

Examples:
  reclaimarr movies             # Report what would be deleted
  reclaimarr movies --live      # Delete for real`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), kindMovies)
	},
}

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Delete series that have gone unwatched",
	Long: `Scan the Tautulli TV library and delete every series whose last watch
is older than retention.days_since_last_watch, or that was never watched
within retention.days_without_watch of being added.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), kindSeries)
	},
}

func init() {
	rootCmd.AddCommand(moviesCmd)
	rootCmd.AddCommand(seriesCmd)
}

func runBatch(ctx context.Context, kind string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	release, err := acquireLock(a.cfg.Run.LockFile)
	if err != nil {
		return err
	}
	defer release()

	lib, err := a.openLibrary(kind)
	if err != nil {
		return err
	}
	runner, err := a.newRunner(lib)
	if err != nil {
		return err
	}

	if !jsonOutput {
		printBanner(os.Stdout, time.Now(), a.mode)
	}

	if err := lib.manager.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s unreachable: %w", purge.ErrDiscovery, lib.manager.Name(), err)
	}

	report, err := runner.Scan(ctx, a.policy(), a.cfg.Tautulli.NumRows)
	if err != nil {
		return err
	}
	a.recordHistory(ctx, report)

	if jsonOutput {
		printJSON(os.Stdout, toReportJSON(report))
		return nil
	}
	printReport(os.Stdout, report)
	return nil
}
