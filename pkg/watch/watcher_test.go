package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startWatcher(t *testing.T, w *Watcher) <-chan Change {
	t.Helper()
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan Change, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(_ context.Context, c Change) { changes <- c })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// let Run register its watches
	time.Sleep(100 * time.Millisecond)
	return changes
}

func waitChange(t *testing.T, changes <-chan Change) Change {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestWatcherDebouncesSourceChanges(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, "", zaptest.NewLogger(t))
	require.NoError(t, err)
	changes := startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.ts"), []byte("export const a = 1;"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.ts"), []byte("export const b = 1;"), 0644))

	c := waitChange(t, changes)
	assert.False(t, c.ConfigChanged)
	assert.Contains(t, c.Paths, filepath.Join(root, "a.ts"))
}

func TestWatcherNewDirectory(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, "", zaptest.NewLogger(t))
	require.NoError(t, err)
	changes := startWatcher(t, w)

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	waitChange(t, changes)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.ts"), []byte(""), 0644))
	c := waitChange(t, changes)
	assert.Contains(t, c.Paths, filepath.Join(sub, "c.ts"))
}

func TestWatcherConfigChange(t *testing.T) {
	root := t.TempDir()
	configDir := t.TempDir()
	configPath := filepath.Join(configDir, ".autobarrel.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("enable = true\n"), 0644))

	w, err := New(root, configPath, zaptest.NewLogger(t))
	require.NoError(t, err)
	changes := startWatcher(t, w)

	require.NoError(t, os.WriteFile(configPath, []byte("enable = false\n"), 0644))
	c := waitChange(t, changes)
	assert.True(t, c.ConfigChanged)
	assert.Empty(t, c.Paths)
}

func TestWatcherIgnoresOwnWrites(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, "", zaptest.NewLogger(t))
	require.NoError(t, err)
	w.Ignore(filepath.Join(root, "index.ts"))
	changes := startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.ts"), []byte(""), 0644))

	select {
	case c := <-changes:
		t.Fatalf("unexpected change %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDefaultSkipDir(t *testing.T) {
	assert.True(t, defaultSkipDir("/p/.git"))
	assert.True(t, defaultSkipDir("/p/node_modules"))
	assert.False(t, defaultSkipDir("/p/src"))
}
