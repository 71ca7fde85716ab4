package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simulation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	updated := strings.Replace(testYAML, "name: demo", "name: reloaded", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, "reloaded", cfg.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("no config update received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_SkipsInvalidAndOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simulation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(testYAML), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("world: {width: -1, height: 1}"), 0o644))

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected update %q", cfg.Name)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "sim.yaml"), nil)
	assert.Error(t, err)
}
