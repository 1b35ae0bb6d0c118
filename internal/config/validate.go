package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	// Run
	if c.Run.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("run.concurrency: must be at least 1, got %d", c.Run.Concurrency))
	}
	if c.Run.Timeout.Duration < 0 {
		errs = append(errs, fmt.Sprintf("run.timeout: must be positive, got %s", c.Run.Timeout))
	}
	if c.Run.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Sprintf("run.requests_per_second: must not be negative, got %g", c.Run.RequestsPerSecond))
	}

	// Retention
	if c.Retention.DaysSinceLastWatch < 1 {
		errs = append(errs, fmt.Sprintf("retention.days_since_last_watch: must be at least 1, got %d", c.Retention.DaysSinceLastWatch))
	}
	if c.Retention.DaysWithoutWatch < 0 {
		errs = append(errs, fmt.Sprintf("retention.days_without_watch: must not be negative, got %d", c.Retention.DaysWithoutWatch))
	}

	// Tautulli is always required
	errs = append(errs, validateService("tautulli", c.Tautulli.URL, c.Tautulli.APIKey)...)
	if c.Tautulli.NumRows < 0 {
		errs = append(errs, fmt.Sprintf("tautulli.num_rows: must be positive, got %d", c.Tautulli.NumRows))
	}

	// Library managers
	if c.Radarr == nil && c.Sonarr == nil {
		errs = append(errs, "radarr, sonarr: at least one library manager must be configured")
	}
	if c.Radarr != nil {
		errs = append(errs, validateService("radarr", c.Radarr.URL, c.Radarr.APIKey)...)
		if c.Tautulli.MovieSectionID <= 0 {
			errs = append(errs, "tautulli.movie_section_id: required when radarr is configured")
		}
	}
	if c.Sonarr != nil {
		errs = append(errs, validateService("sonarr", c.Sonarr.URL, c.Sonarr.APIKey)...)
		if c.Tautulli.TVSectionID <= 0 {
			errs = append(errs, "tautulli.tv_section_id: required when sonarr is configured")
		}
	}

	// Overseerr is optional but must be complete when present
	if c.Overseerr != nil {
		errs = append(errs, validateService("overseerr", c.Overseerr.URL, c.Overseerr.APIKey)...)
	}

	return errs
}

func validateService(name, rawURL, apiKey string) []string {
	var errs []string
	if rawURL == "" {
		errs = append(errs, fmt.Sprintf("%s.url: required", name))
	} else if u, err := url.Parse(rawURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("%s.url: must be an http(s) URL, got %q", name, rawURL))
	}
	if apiKey == "" {
		errs = append(errs, fmt.Sprintf("%s.api_key: required", name))
	}
	return errs
}
