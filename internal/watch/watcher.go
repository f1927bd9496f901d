package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"darkarchiver/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Removal reports a registered file that disappeared from disk.
type Removal struct {
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher watches the parent directories of registered files and reports
// remove and rename events on the files themselves.
type Watcher struct {
	// Tracked file paths
	files map[string]struct{}

	// Watched directories, counted by the tracked files inside them
	dirs map[string]int

	removals chan Removal
	stopChan chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a watcher with nothing tracked.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		files:     make(map[string]struct{}),
		dirs:      make(map[string]int),
		removals:  make(chan Removal, 16),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Removals returns the channel that delivers removal events. It is closed by Stop.
func (w *Watcher) Removals() <-chan Removal {
	return w.removals
}

// Track starts watching path's directory on its behalf.
func (w *Watcher) Track(path string) error {
	path = filepath.Clean(path)

	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.trackLocked(path)
}

func (w *Watcher) trackLocked(path string) error {
	if _, ok := w.files[path]; ok {
		return nil
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	}
	w.dirs[dir]++
	w.files[path] = struct{}{}
	return nil
}

// Untrack stops reporting path and drops its directory once unused.
func (w *Watcher) Untrack(path string) {
	path = filepath.Clean(path)

	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.untrackLocked(path)
}

func (w *Watcher) untrackLocked(path string) {
	if _, ok := w.files[path]; !ok {
		return
	}
	delete(w.files, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		// the directory may already be gone, which removes the watch anyway
		if err := w.fsWatcher.Remove(dir); err != nil {
			log.LogWithFields(log.F("directory", dir), log.F("error", err)).Debug("Failed to unwatch directory")
		}
	}
}

// Sync makes the tracked set equal to paths. The first failure is returned
// after every other path has been processed.
func (w *Watcher) Sync(paths []string) error {
	want := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		want[filepath.Clean(p)] = struct{}{}
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	for p := range w.files {
		if _, ok := want[p]; !ok {
			w.untrackLocked(p)
		}
	}
	var firstErr error
	for p := range want {
		if err := w.trackLocked(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Start begins delivering removals.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	stop := make(chan struct{})
	w.stopChan = stop
	w.mutex.Unlock()

	go w.loop(stop)

	log.Info("Watcher started.")
	return nil
}

func (w *Watcher) loop(stop chan struct{}) {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(event.Name)
			if !w.isTracked(path) {
				continue
			}
			// a rename onto the same name leaves the file in place
			if _, err := os.Lstat(path); err == nil {
				continue
			}

			w.mutex.RLock()
			if w.running {
				select {
				case w.removals <- Removal{Path: path, Timestamp: time.Now(), Op: event.Op}:
				default:
					log.LogWithFields(log.F("file", path)).Warn("Removal channel is full, dropped event")
				}
			}
			w.mutex.RUnlock()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

// Stop halts the watcher and closes the removal channel. A stopped watcher
// cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	w.running = false
	close(w.removals)

	log.Info("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

func (w *Watcher) isTracked(path string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	_, ok := w.files[path]
	return ok
}

// Tracked returns the tracked files, sorted.
func (w *Watcher) Tracked() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Directories returns the watched directories, sorted.
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	out := make([]string, 0, len(w.dirs))
	for d := range w.dirs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
