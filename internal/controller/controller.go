// Package controller holds the application state shared by the front-ends:
// the registry, the selection, the search query, the sort order and the
// preview panel. Front-ends call its methods and redraw on OnChange.
package controller

import (
	"fmt"
	"path/filepath"
	"sync"

	"darkarchiver/internal/config"
	"darkarchiver/internal/errors"
	"darkarchiver/internal/log"
	"darkarchiver/internal/preview"
	"darkarchiver/internal/registry"
	"darkarchiver/internal/search"
	"darkarchiver/internal/status"
	"darkarchiver/internal/transfer"
	"darkarchiver/internal/watch"
)

// Options tunes a Controller.
type Options struct {
	AddPolicy   registry.Policy
	Transfer    transfer.Policy
	Collision   transfer.Collision
	SearchMode  search.Mode
	ShowPreview bool
	Preview     preview.Options
	Status      *status.Bar
}

// OptionsFromConfig translates the config sections into Options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	var opts Options
	if err := opts.parsePolicies(cfg); err != nil {
		return opts, err
	}
	opts.ShowPreview = cfg.Preview.Show
	opts.Preview = preview.Options{
		MaxWidth:  cfg.Preview.MaxWidth,
		MaxHeight: cfg.Preview.MaxHeight,
		CacheTTL:  cfg.Preview.CacheTTL,
	}
	opts.Status = status.New(cfg.Status.ResetAfter)
	return opts, nil
}

func (o *Options) parsePolicies(cfg *config.Config) error {
	var err error
	if o.AddPolicy, err = registry.ParsePolicy(cfg.Add.ErrorPolicy); err != nil {
		return err
	}
	if o.Transfer, err = transfer.ParsePolicy(cfg.Transfer.ErrorPolicy); err != nil {
		return err
	}
	if o.Collision, err = transfer.ParseCollision(cfg.Transfer.Collision); err != nil {
		return err
	}
	o.SearchMode, err = search.ParseMode(cfg.Search.Mode)
	return err
}

// Controller is safe for concurrent use. Listeners and status messages are
// always called without the internal lock held.
type Controller struct {
	mu sync.Mutex

	reg       *registry.Registry
	rows      map[registry.RowID]Row
	previewer *preview.Previewer
	engine    *transfer.Engine
	status    *status.Bar
	dialogs   Dialogs
	watcher   *watch.Watcher
	opts      Options

	query       string
	visible     []registry.RowID
	selected    []registry.RowID
	sortCol     Column
	sortDesc    bool
	showPreview bool

	listeners []func()
}

// New creates a Controller with an empty registry.
func New(opts Options) *Controller {
	if opts.Status == nil {
		opts.Status = status.New(0)
	}
	return &Controller{
		reg:         registry.New(),
		rows:        make(map[registry.RowID]Row),
		previewer:   preview.New(opts.Preview),
		engine:      transfer.New(),
		status:      opts.Status,
		opts:        opts,
		showPreview: opts.ShowPreview,
	}
}

// SetDialogs attaches the front-end's path pickers.
func (c *Controller) SetDialogs(d Dialogs) {
	c.mu.Lock()
	c.dialogs = d
	c.mu.Unlock()
}

// OnChange registers fn to run after every state change.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fns := append([]func(){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// ApplyConfig switches the add and transfer policies and the search mode
// to the values in cfg. Nothing changes when cfg holds an invalid value.
func (c *Controller) ApplyConfig(cfg *config.Config) error {
	c.mu.Lock()
	next := c.opts
	c.mu.Unlock()

	if err := next.parsePolicies(cfg); err != nil {
		return err
	}

	c.mu.Lock()
	c.opts = next
	c.refreshLocked()
	c.mu.Unlock()

	log.LogWithFields(
		log.F("add_policy", cfg.Add.ErrorPolicy),
		log.F("transfer_policy", cfg.Transfer.ErrorPolicy),
		log.F("collision", cfg.Transfer.Collision),
		log.F("search_mode", cfg.Search.Mode),
	).Info("settings applied")
	c.notify()
	return nil
}

// Status returns the status bar.
func (c *Controller) Status() *status.Bar { return c.status }

// Registry returns the file registry.
func (c *Controller) Registry() *registry.Registry { return c.reg }

// AddFiles registers paths under the configured policy and returns how many
// were added.
func (c *Controller) AddFiles(paths []string) int {
	c.mu.Lock()
	policy := c.opts.AddPolicy
	c.mu.Unlock()

	report, err := c.reg.Add(paths, policy)
	if err != nil {
		c.status.Error(fmt.Sprintf("Error adding files: %v", err))
		return 0
	}

	c.mu.Lock()
	for _, id := range report.Added {
		if e, ok := c.reg.Get(id); ok {
			c.rows[id] = newRow(e)
		}
	}
	c.refreshLocked()
	c.mu.Unlock()

	c.syncWatcher()

	n := len(report.Added)
	log.LogWithFields(
		log.F("added", n),
		log.F("duplicates", len(report.Duplicates)),
		log.F("failed", len(report.Failed)),
	).Info("files added")

	switch {
	case len(report.Failed) > 0:
		c.status.Warn(fmt.Sprintf("Added %d files, %d failed", n, len(report.Failed)))
	case n > 0:
		c.status.Success(fmt.Sprintf("Added %d files", n))
	case len(report.Duplicates) > 0:
		c.status.Info("Files already in the list")
	}
	c.notify()
	return n
}

// AddFolder registers the regular files directly inside dir.
func (c *Controller) AddFolder(dir string) int {
	paths, err := registry.FolderFiles(dir)
	if err != nil {
		c.status.Error(fmt.Sprintf("Error adding folder: %v", err))
		return 0
	}
	if len(paths) == 0 {
		c.status.Warn(fmt.Sprintf("No files in %s", filepath.Base(dir)))
		return 0
	}
	return c.AddFiles(paths)
}

// Delete removes the selected rows from the list. Files on disk are untouched.
func (c *Controller) Delete() int {
	c.mu.Lock()
	ids := append([]registry.RowID(nil), c.selected...)
	c.mu.Unlock()

	if len(ids) == 0 {
		c.status.Warn("Please select files to delete")
		return 0
	}

	n := c.reg.Remove(ids)

	c.mu.Lock()
	for _, id := range ids {
		delete(c.rows, id)
	}
	c.selected = nil
	c.refreshLocked()
	c.mu.Unlock()

	c.syncWatcher()
	log.LogWithFields(log.F("removed", n)).Info("files removed")
	c.status.Info(fmt.Sprintf("Removed %d files", n))
	c.notify()
	return n
}

// SelectAll selects every visible row.
func (c *Controller) SelectAll() {
	c.mu.Lock()
	c.selected = append([]registry.RowID(nil), c.visible...)
	c.mu.Unlock()
	c.notify()
}

// Select replaces the selection. Hidden or unknown rows are ignored.
func (c *Controller) Select(ids ...registry.RowID) {
	c.mu.Lock()
	c.selected = c.selected[:0:0]
	for _, id := range ids {
		if c.isVisibleLocked(id) && !c.isSelectedLocked(id) {
			c.selected = append(c.selected, id)
		}
	}
	c.mu.Unlock()
	c.notify()
}

// Toggle adds id to the selection or removes it.
func (c *Controller) Toggle(id registry.RowID) {
	c.mu.Lock()
	if c.isSelectedLocked(id) {
		c.selected = removeID(c.selected, id)
	} else if c.isVisibleLocked(id) {
		c.selected = append(c.selected, id)
	}
	c.mu.Unlock()
	c.notify()
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()
	c.notify()
}

// Selection returns the selected rows in selection order.
func (c *Controller) Selection() []registry.RowID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]registry.RowID(nil), c.selected...)
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id registry.RowID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSelectedLocked(id)
}

// SetQuery filters the visible rows by name. Selected rows that become
// hidden leave the selection.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	if q == c.query {
		c.mu.Unlock()
		return
	}
	c.query = q
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

// Query returns the current search text.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// ClearSearch empties the query, revealing every row.
func (c *Controller) ClearSearch() {
	c.SetQuery("")
}

// SortBy orders the list by col. Sorting by the current column again flips
// the direction.
func (c *Controller) SortBy(col Column) {
	c.mu.Lock()
	if col == c.sortCol && col != ColumnNone {
		c.sortDesc = !c.sortDesc
	} else {
		c.sortCol, c.sortDesc = col, false
	}
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

// Sort returns the current sort column and direction.
func (c *Controller) Sort() (Column, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortCol, c.sortDesc
}

// Rows returns the visible rows in display order.
func (c *Controller) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Row, 0, len(c.visible))
	for _, id := range c.visible {
		out = append(out, c.rows[id])
	}
	return out
}

// Hidden returns how many registered rows the query hides.
func (c *Controller) Hidden() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rows) - len(c.visible)
}

// Edit is a placeholder action.
func (c *Controller) Edit() {
	if len(c.Selection()) == 0 {
		c.status.Warn("Please select files to edit")
		return
	}
	c.status.Info("Edit functionality coming soon")
}

// Preview renders the panel for the first selected row.
func (c *Controller) Preview() preview.Result {
	c.mu.Lock()
	var path string
	if len(c.selected) > 0 {
		path = c.rows[c.selected[0]].Path
	}
	c.mu.Unlock()

	if path == "" {
		return preview.EmptyResult()
	}
	return c.previewer.Render(path)
}

// PreviewBounds returns the thumbnail bound.
func (c *Controller) PreviewBounds() (int, int) {
	return c.previewer.Bounds()
}

// TogglePreview shows or hides the preview panel.
func (c *Controller) TogglePreview() {
	c.mu.Lock()
	c.showPreview = !c.showPreview
	c.mu.Unlock()
	c.notify()
}

// PreviewVisible reports whether the preview panel is shown.
func (c *Controller) PreviewVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showPreview
}

// Watch reports registered files that disappear from disk through w.
// The controller keeps w's tracked set in step with the registry and
// stops it on Close.
func (c *Controller) Watch(w *watch.Watcher) error {
	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()

	c.syncWatcher()
	if err := w.Start(); err != nil {
		return errors.Wrap(err, "failed to start watcher")
	}
	go func() {
		for rm := range w.Removals() {
			c.status.Warn(fmt.Sprintf("%s was removed from disk", filepath.Base(rm.Path)))
		}
	}()
	return nil
}

func (c *Controller) syncWatcher() {
	c.mu.Lock()
	w := c.watcher
	c.mu.Unlock()
	if w == nil {
		return
	}
	entries := c.reg.Entries()
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	if err := w.Sync(paths); err != nil {
		log.LogWithFields(log.F("error", err)).Warn("watcher out of sync")
	}
}

// Close stops the watcher and any pending status reset.
func (c *Controller) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if w != nil {
		w.Stop()
	}
	c.status.Stop()
}

// refreshLocked recomputes the visible rows from the registry order, the sort
// and the query, then drops hidden rows from the selection.
func (c *Controller) refreshLocked() {
	rows := make([]Row, 0, len(c.rows))
	for _, id := range c.reg.IDs() {
		if r, ok := c.rows[id]; ok {
			rows = append(rows, r)
		}
	}
	sortRows(rows, c.sortCol, c.sortDesc)

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	idx := search.Filter(c.opts.SearchMode, c.query, names)

	c.visible = c.visible[:0:0]
	for _, i := range idx {
		c.visible = append(c.visible, rows[i].ID)
	}

	kept := c.selected[:0:0]
	for _, id := range c.selected {
		if c.isVisibleLocked(id) {
			kept = append(kept, id)
		}
	}
	c.selected = kept
}

func (c *Controller) isVisibleLocked(id registry.RowID) bool {
	for _, v := range c.visible {
		if v == id {
			return true
		}
	}
	return false
}

func (c *Controller) isSelectedLocked(id registry.RowID) bool {
	for _, s := range c.selected {
		if s == id {
			return true
		}
	}
	return false
}

func removeID(ids []registry.RowID, id registry.RowID) []registry.RowID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
