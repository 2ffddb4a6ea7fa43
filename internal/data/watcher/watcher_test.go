package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: a\n"), 0644))

	fw, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(other, []byte("ignored\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("name: b\n"), 0644))

	select {
	case ev := <-fw.Events():
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, filepath.Clean(ev.Path))
		assert.NotEmpty(t, ev.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the watched file")
	}
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "missing", "scenario.yaml"))
	assert.Error(t, err)
}

func TestFileWatcherCloseEndsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	fw, err := NewFileWatcher(path)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	select {
	case _, ok := <-fw.Events():
		for ok {
			_, ok = <-fw.Events()
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}
