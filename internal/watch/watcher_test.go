package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"darkarchiver/pkg/testutils"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsRemovedFile(t *testing.T) {
	dir := t.TempDir()
	paths := testutils.CreateOrderedFiles(t, dir, "keep.txt", "gone.txt", "other.txt")

	w, err := New()
	require.NoError(t, err, "New watcher creation failed")
	require.NoError(t, w.Track(paths[0]))
	require.NoError(t, w.Track(paths[1]))
	require.NoError(t, w.Start())
	defer w.Stop()

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)

	// untracked files are ignored
	require.NoError(t, os.Remove(paths[2]))
	require.NoError(t, os.Remove(paths[1]))

	select {
	case ev, ok := <-w.Removals():
		require.True(t, ok, "Removal channel closed unexpectedly")
		assert.Equal(t, paths[1], ev.Path)
		assert.True(t, ev.Op.Has(fsnotify.Remove))
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for removal")
	}

	select {
	case ev := <-w.Removals():
		t.Fatalf("unexpected removal %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherReportsRenamedFile(t *testing.T) {
	dir := t.TempDir()
	paths := testutils.CreateOrderedFiles(t, dir, "photo.png")

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Track(paths[0]))
	require.NoError(t, w.Start())
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.Rename(paths[0], filepath.Join(dir, "renamed.png")))

	select {
	case ev := <-w.Removals():
		assert.Equal(t, paths[0], ev.Path)
		assert.True(t, ev.Op.Has(fsnotify.Rename))
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for rename")
	}
}

func TestWatcherSyncSharesDirectories(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	inA := testutils.CreateOrderedFiles(t, a, "1.txt", "2.txt")
	inB := testutils.CreateOrderedFiles(t, b, "3.txt")

	w, err := New()
	require.NoError(t, err)
	defer w.fsWatcher.Close()

	require.NoError(t, w.Sync(append(inA, inB...)))
	assert.ElementsMatch(t, []string{a, b}, w.Directories())
	assert.Len(t, w.Tracked(), 3)

	require.NoError(t, w.Sync(inA[:1]))
	assert.Equal(t, []string{a}, w.Directories())
	assert.Equal(t, inA[:1], w.Tracked())

	w.Untrack(inA[0])
	assert.Empty(t, w.Directories())
	assert.Empty(t, w.Tracked())
}

func TestWatcherTrackMissingDirectory(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.fsWatcher.Close()

	err = w.Track(filepath.Join(t.TempDir(), "nope", "file.txt"))
	assert.Error(t, err)
	assert.Empty(t, w.Tracked())
}

func TestWatcherStartStop(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())
	assert.Error(t, w.Start(), "second start fails")

	w.Stop()
	assert.False(t, w.IsRunning())
	w.Stop()

	_, ok := <-w.Removals()
	assert.False(t, ok, "removal channel is closed after stop")
}
