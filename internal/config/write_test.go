package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reclaimarr", "config.toml")
	require.NoError(t, WriteDefault(path), "WriteDefault failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read written file")

	assert.Contains(t, string(content), "[retention]")
	assert.Contains(t, string(content), "[tautulli]")
	assert.Contains(t, string(content), "${RADARR_API_KEY}")
	assert.Contains(t, string(content), "dry_run = true")
}

func TestWriteDefault_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "config.toml")
	require.NoError(t, WriteDefault(path), "WriteDefault failed")

	_, err := os.Stat(path)
	assert.False(t, os.IsNotExist(err), "file was not created")
}

func TestConfig_Write(t *testing.T) {
	dry := false
	cfg := &Config{
		Run:       RunConfig{DryRun: &dry, Timeout: Duration{45 * time.Second}},
		Retention: RetentionConfig{DaysSinceLastWatch: 120},
		Radarr:    &ManagerConfig{URL: "http://radarr:7878", ProtectedTags: []int64{4}},
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, cfg.Write(path), "Write failed")

	back, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.False(t, back.Run.IsDryRun())
	assert.Equal(t, 45*time.Second, back.Run.Timeout.Duration)
	assert.Equal(t, 120, back.Retention.DaysSinceLastWatch)
	require.NotNil(t, back.Radarr)
	assert.Equal(t, []int64{4}, back.Radarr.ProtectedTags)
}
