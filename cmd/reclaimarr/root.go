package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	dryRunFlag bool
	liveFlag   bool
	jsonOutput bool
	extraTags  string
)

var rootCmd = &cobra.Command{
	Use:   "reclaimarr",
	Short: "Reclaim disk space from media nobody watches",
	Long: `reclaimarr - reclaim disk space from media nobody watches

Reads watch history from Tautulli, finds the matching Radarr movies or
Sonarr series, and deletes what has gone unwatched for too long. Request
records in Overseerr are cleaned up alongside.

Runs are dry by default. Pass --live, or set run.dry_run = false, to delete.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "Report what would be deleted without deleting")
	rootCmd.PersistentFlags().BoolVar(&liveFlag, "live", false, "Delete for real, overriding run.dry_run")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&extraTags, "protect-tags", "", "Extra protected tag ids for this run, comma separated")
	rootCmd.MarkFlagsMutuallyExclusive("dry-run", "live")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("reclaimarr {{.Version}}\n")
}
