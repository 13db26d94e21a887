package gallery

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 1\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, NewLoader(), 20*time.Millisecond, func(cfg *Config) { reloaded <- cfg })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("seed: 9\n"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\n"), 0o600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, uint64(7), cfg.Seed)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_BadPath(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "gallery.yaml"), NewLoader(), 0, func(*Config) {})
	assert.Error(t, err)
}
