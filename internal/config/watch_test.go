package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)

	path := DefaultPath(t.TempDir())
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	updated := DefaultConfig()
	updated.UI.Heading = "Reloaded"
	require.NoError(t, updated.Save(path))

	select {
	case cfg := <-w.Changes():
		assert.Equal(t, "Reloaded", cfg.UI.Heading)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := DefaultPath(dir)
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0644))

	select {
	case cfg := <-w.Changes():
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_SkipsInvalidConfig(t *testing.T) {
	clearEnv(t)

	path := DefaultPath(t.TempDir())
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: neon\n"), 0644))

	select {
	case cfg := <-w.Changes():
		t.Fatalf("invalid config should not be delivered: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	path := DefaultPath(t.TempDir())
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher goroutine did not exit on cancel")
	}
	w.Stop()
}

func TestWatcher_ClosesChangesOnStop(t *testing.T) {
	path := DefaultPath(t.TempDir())
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	w.Stop()

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("changes channel not closed after Stop")
	}
}

func TestWatcher_MissingDirNotCreated(t *testing.T) {
	ws := t.TempDir()
	path := DefaultPath(ws)

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.Error(t, w.Start(context.Background()))
	w.Stop()

	_, err = os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(err), "watching must not create %s", filepath.Dir(path))
}
