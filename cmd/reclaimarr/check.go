package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify every configured service is reachable",
	Long:  "Calls Tautulli, Radarr, Sonarr and Overseerr (whichever are configured) and reports whether each answers and accepts its API key.",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// pinger is satisfied by every service client.
type pinger interface {
	Ping(ctx context.Context) error
}

type serviceCheck struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	OK   bool   `json:"ok"`
	Err  string `json:"error,omitempty"`

	ping pinger
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	checks := []*serviceCheck{{Name: "tautulli", URL: a.cfg.Tautulli.URL, ping: a.tautulliClient()}}
	if a.cfg.Radarr != nil {
		lib, err := a.openLibrary(kindMovies)
		if err != nil {
			return err
		}
		checks = append(checks, &serviceCheck{Name: "radarr", URL: a.cfg.Radarr.URL, ping: lib.manager})
	}
	if a.cfg.Sonarr != nil {
		lib, err := a.openLibrary(kindSeries)
		if err != nil {
			return err
		}
		checks = append(checks, &serviceCheck{Name: "sonarr", URL: a.cfg.Sonarr.URL, ping: lib.manager})
	}
	if c := a.overseerrClient(); c != nil {
		checks = append(checks, &serviceCheck{Name: "overseerr", URL: a.cfg.Overseerr.URL, ping: c})
	}

	failed := pingAll(cmd.Context(), checks)

	if jsonOutput {
		printJSON(os.Stdout, checks)
	} else {
		printChecks(checks)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d services unreachable", failed, len(checks))
	}
	return nil
}

// pingAll pings every service concurrently and returns how many failed.
func pingAll(ctx context.Context, checks []*serviceCheck) int {
	var g errgroup.Group
	for _, c := range checks {
		c := c
		g.Go(func() error {
			if err := c.ping.Ping(ctx); err != nil {
				c.Err = err.Error()
				return nil
			}
			c.OK = true
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, c := range checks {
		if !c.OK {
			failed++
		}
	}
	return failed
}

func printChecks(checks []*serviceCheck) {
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		status := "ok"
		if !c.OK {
			status = "FAILED: " + c.Err
		}
		rows = append(rows, []string{c.Name, c.URL, status})
	}
	fmt.Println(renderTable([]string{"SERVICE", "URL", "STATUS"}, rows, nil))
}
