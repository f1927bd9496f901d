// Package registry keeps the in-memory list of files the user has added.
//
// Each entry is keyed by a RowID handed out by the registry and carries the
// display fields captured when the file was added. Those fields are never
// refreshed afterwards.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"darkarchiver/internal/errors"
	"darkarchiver/internal/log"
)

// RowID identifies a row. IDs are never reused within a process.
type RowID uint64

// String implements fmt.Stringer.
func (id RowID) String() string {
	return fmt.Sprintf("row-%d", uint64(id))
}

// Entry is one registered file.
type Entry struct {
	ID      RowID
	Path    string
	Name    string
	Ext     string
	Size    int64
	ModTime time.Time
}

// Policy decides what a batch add does with a file that cannot be stat'd.
type Policy int

const (
	// Abort inserts nothing when any path fails.
	Abort Policy = iota
	// Skip inserts the good paths and reports the bad ones.
	Skip
)

// ParsePolicy maps a config value onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "abort":
		return Abort, nil
	case "skip":
		return Skip, nil
	}
	return Abort, errors.NewConfigError(fmt.Sprintf("unknown add policy %q", s), "add.error_policy", errors.InvalidConfig, nil)
}

// Failure records a path that could not be added.
type Failure struct {
	Path string
	Err  error
}

// AddReport summarises a batch add.
type AddReport struct {
	Added      []RowID
	Duplicates []string
	Failed     []Failure
}

// Registry is the RowID -> Entry mapping in insertion order.
type Registry struct {
	mu      sync.RWMutex
	entries map[RowID]*Entry
	byPath  map[string]RowID
	order   []RowID
	nextID  RowID
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[RowID]*Entry),
		byPath:  make(map[string]RowID),
		nextID:  1,
	}
}

// Stat builds an unregistered Entry for path from filesystem metadata.
func Stat(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, errors.NewFileError("invalid file path", path, errors.InvalidPath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Entry{}, errors.FromOS("stat", abs, err)
	}
	if !info.Mode().IsRegular() {
		return Entry{}, errors.NewFileError("not a regular file", abs, errors.NotAFile, nil)
	}
	name := filepath.Base(abs)
	return Entry{
		Path:    abs,
		Name:    name,
		Ext:     filepath.Ext(name),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Add stats every path and appends the results in order. Paths already
// registered are reported as duplicates and left alone.
//
// Under Abort the registry is only touched once every path has been stat'd
// successfully; the first failure is returned and nothing is inserted.
// Under Skip the failures are collected in the report and err is nil.
func (r *Registry) Add(paths []string, policy Policy) (AddReport, error) {
	var report AddReport
	staged := make([]Entry, 0, len(paths))

	for _, p := range paths {
		e, err := Stat(p)
		if err != nil {
			if policy == Abort {
				log.LogWithError(err).Warn("add aborted")
				return AddReport{}, err
			}
			log.LogWithError(err).Warn("skipping file")
			report.Failed = append(report.Failed, Failure{Path: p, Err: err})
			continue
		}
		staged = append(staged, e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range staged {
		if _, exists := r.byPath[e.Path]; exists {
			report.Duplicates = append(report.Duplicates, e.Path)
			continue
		}
		e.ID = r.nextID
		r.nextID++
		entry := e
		r.entries[e.ID] = &entry
		r.byPath[e.Path] = e.ID
		r.order = append(r.order, e.ID)
		report.Added = append(report.Added, e.ID)
	}

	log.LogWithFields(
		log.F("added", len(report.Added)),
		log.F("duplicates", len(report.Duplicates)),
		log.F("failed", len(report.Failed)),
	).Info("files registered")

	return report, nil
}

// FolderFiles lists the regular, non-hidden files directly inside dir,
// sorted by name.
func FolderFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FromOS("read directory", dir, err)
	}
	var paths []string
	for _, de := range dirEntries {
		if strings.HasPrefix(de.Name(), ".") || !de.Type().IsRegular() {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Remove deletes the given rows and returns how many existed.
func (r *Registry) Remove(ids []RowID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[RowID]bool, len(ids))
	for _, id := range ids {
		e, ok := r.entries[id]
		if !ok || drop[id] {
			continue
		}
		drop[id] = true
		delete(r.byPath, e.Path)
		delete(r.entries, id)
	}
	if len(drop) == 0 {
		return 0
	}

	kept := r.order[:0]
	for _, id := range r.order {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	r.order = kept
	return len(drop)
}

// Get returns a copy of the entry for id.
func (r *Registry) Get(id RowID) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Lookup returns the row registered for an absolute path.
func (r *Registry) Lookup(path string) (RowID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPath[path]
	return id, ok
}

// Entries returns copies of every entry in insertion order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.entries[id])
	}
	return out
}

// IDs returns every RowID in insertion order.
func (r *Registry) IDs() []RowID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RowID, len(r.order))
	copy(out, r.order)
	return out
}

// Paths returns the paths for ids, skipping unknown rows.
func (r *Registry) Paths(ids []RowID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.entries[id]; ok {
			out = append(out, e.Path)
		}
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
