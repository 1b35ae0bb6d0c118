package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/reclaimarr/internal/purge"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name                string
		configDry, dry, live bool
		want                purge.Mode
	}{
		{"config dry", true, false, false, purge.ModeDry},
		{"config live", false, false, false, purge.ModeLive},
		{"live flag overrides", true, false, true, purge.ModeLive},
		{"dry flag overrides", false, true, false, purge.ModeDry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveMode(tt.configDry, tt.dry, tt.live))
		})
	}
}

func TestAcquireLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reclaimarr.lock")

	release, err := acquireLock(path)
	require.NoError(t, err)

	_, err = acquireLock(path)
	require.Error(t, err, "second run must not start while the lock is held")
	assert.Contains(t, err.Error(), "another run")

	release()
	release2, err := acquireLock(path)
	require.NoError(t, err)
	release2()
}

func TestAcquireLock_Disabled(t *testing.T) {
	release, err := acquireLock("")
	require.NoError(t, err)
	release()
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestPingAll(t *testing.T) {
	checks := []*serviceCheck{
		{Name: "tautulli", ping: fakePinger{}},
		{Name: "radarr", ping: fakePinger{err: errors.New("unauthorized")}},
	}
	failed := pingAll(context.Background(), checks)
	assert.Equal(t, 1, failed)
	assert.True(t, checks[0].OK)
	assert.False(t, checks[1].OK)
	assert.Equal(t, "unauthorized", checks[1].Err)
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, "bogus").Info("fallback to info")
	assert.Contains(t, buf.String(), "fallback to info")
}
