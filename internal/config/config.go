// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Log        LogConfig        `toml:"log"`
	Database   DatabaseConfig   `toml:"database"`
	Run        RunConfig        `toml:"run"`
	Retention  RetentionConfig  `toml:"retention"`
	Protection ProtectionConfig `toml:"protection"`
	Tautulli   TautulliConfig   `toml:"tautulli"`
	Radarr     *ManagerConfig   `toml:"radarr"`
	Sonarr     *ManagerConfig   `toml:"sonarr"`
	Overseerr  *OverseerrConfig `toml:"overseerr"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// RunConfig controls how a run talks to the downstream services.
type RunConfig struct {
	DryRun            *bool    `toml:"dry_run"`
	Concurrency       int      `toml:"concurrency"`
	Timeout           Duration `toml:"timeout"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	LockFile          string   `toml:"lock_file"`
}

// IsDryRun reports the configured mode. Unset means dry.
func (r RunConfig) IsDryRun() bool {
	return r.DryRun == nil || *r.DryRun
}

type RetentionConfig struct {
	DaysSinceLastWatch int `toml:"days_since_last_watch"`
	DaysWithoutWatch   int `toml:"days_without_watch"`
}

type ProtectionConfig struct {
	IDsFile string `toml:"ids_file"`
}

type TautulliConfig struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	MovieSectionID int    `toml:"movie_section_id"`
	TVSectionID    int    `toml:"tv_section_id"`
	NumRows        int    `toml:"num_rows"`
}

// ManagerConfig configures Radarr or Sonarr.
type ManagerConfig struct {
	URL           string  `toml:"url"`
	APIKey        string  `toml:"api_key"`
	ProtectedTags []int64 `toml:"protected_tags"`
}

type OverseerrConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// Duration wraps time.Duration so it can be written as "30s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file without
// validating it. Unresolved environment variables are left in place.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/reclaimarr.db"
	}
	if c.Run.Concurrency == 0 {
		c.Run.Concurrency = 1
	}
	if c.Run.Timeout.Duration == 0 {
		c.Run.Timeout.Duration = 30 * time.Second
	}
	if c.Run.RequestsPerSecond == 0 {
		c.Run.RequestsPerSecond = 5
	}
	if c.Tautulli.NumRows == 0 {
		c.Tautulli.NumRows = 10000
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR}, ${VAR:-default} and ${VAR:?message}
// with values from the environment. References that cannot be resolved are
// left unchanged and returned in missing, sorted and deduplicated.
func substituteEnvVars(content string) (string, []string) {
	seen := make(map[string]bool)
	var missing []string

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1]

		if name, def, ok := strings.Cut(expr, ":-"); ok {
			if v := os.Getenv(name); v != "" {
				return v
			}
			return def
		}

		if name, msg, ok := strings.Cut(expr, ":?"); ok {
			if v := os.Getenv(name); v != "" {
				return v
			}
			key := name + ": " + msg
			if !seen[key] {
				seen[key] = true
				missing = append(missing, key)
			}
			return match
		}

		if v, ok := os.LookupEnv(expr); ok {
			return v
		}
		if !seen[expr] {
			seen[expr] = true
			missing = append(missing, expr)
		}
		return match
	})

	sort.Strings(missing)
	return out, missing
}
