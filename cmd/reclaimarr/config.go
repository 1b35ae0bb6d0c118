package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/reclaimarr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without contacting any service.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path, err := configArgPath(args)
	if err != nil {
		return err
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// configArgPath picks the file to validate: the argument, --config, or
// the discovered file.
func configArgPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if configPath != "" {
		return configPath, nil
	}
	return config.Discover()
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	mode := "live"
	if cfg.Run.IsDryRun() {
		mode = "dry run"
	}

	fmt.Println("Configuration Summary:")
	fmt.Printf("  Mode:       %s (concurrency %d, timeout %s)\n", mode, cfg.Run.Concurrency, cfg.Run.Timeout)
	fmt.Printf("  Database:   %s\n", cfg.Database.Path)
	fmt.Printf("  Retention:  %d days since last watch", cfg.Retention.DaysSinceLastWatch)
	if cfg.Retention.DaysWithoutWatch > 0 {
		fmt.Printf(", %d days unwatched", cfg.Retention.DaysWithoutWatch)
	}
	fmt.Println()
	fmt.Printf("  Tautulli:   %s\n", cfg.Tautulli.URL)

	var managers []string
	if cfg.Radarr != nil {
		managers = append(managers, fmt.Sprintf("radarr (section %d)", cfg.Tautulli.MovieSectionID))
	}
	if cfg.Sonarr != nil {
		managers = append(managers, fmt.Sprintf("sonarr (section %d)", cfg.Tautulli.TVSectionID))
	}
	fmt.Printf("  Managers:   %s\n", strings.Join(managers, ", "))

	if cfg.Overseerr != nil {
		fmt.Printf("  Overseerr:  %s\n", cfg.Overseerr.URL)
	}
	if cfg.Protection.IDsFile != "" {
		fmt.Printf("  Protected:  %s\n", cfg.Protection.IDsFile)
	}
}
