// Package session owns the ephemeral UI session: which file is selected,
// the current filter, and the draft match under construction. It mediates
// between the file catalog, the match store, and the presentation layer.
package session

import (
	"path/filepath"
	"sync"

	"matchman/internal/catalog"
	"matchman/internal/errors"
	"matchman/internal/log"
	"matchman/internal/store"
	"matchman/pkg/types"

	"github.com/google/uuid"
)

// Draft is the trigger/replacement text pending commit, plus whether the
// commit updates an existing match.
type Draft struct {
	Trigger string
	Replace string
	Editing bool
}

// Controller coordinates one editing session. All methods are safe to call
// from the UI event loop and from the directory watcher; a mutex keeps the
// single-writer discipline over the loaded collection.
type Controller struct {
	mu      sync.Mutex
	catalog *catalog.Catalog

	selected string
	store    *store.Store
	filter   string
	draft    Draft
	target   *uuid.UUID // nil: committing creates a new match
}

// New creates a controller over the given catalog and selects the first
// file, if any.
func New(cat *catalog.Catalog) *Controller {
	c := &Controller{catalog: cat}
	files := cat.List()
	if len(files) > 0 {
		c.selected = files[0]
	}
	c.load()
	return c
}

func (c *Controller) load() {
	c.store = store.Open(filepath.Join(c.catalog.Dir(), c.selected))
}

// Dir returns the configuration directory being managed.
func (c *Controller) Dir() string {
	return c.catalog.Dir()
}

// Files returns the current catalog listing.
func (c *Controller) Files() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.List()
}

// Selected returns the name of the active file, empty when none exists.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Status reports how loading the active file went.
func (c *Controller) Status() types.LoadStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Status()
}

// StatusLine returns a short description of the active file for the UI.
func (c *Controller) StatusLine() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Describe()
}

// SelectFile makes name the active file and loads its matches. Names not in
// the catalog are rejected; acting on them would violate the session
// invariant that the selection tracks the enumerated set. The filter is
// kept; the draft and edit target are dropped because the target points
// into the previous file's collection.
func (c *Controller) SelectFile(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.catalog.Contains(name) {
		log.Warnf("refusing to select %q: not in catalog", name)
		return errors.ErrUnknownFile
	}
	c.selected = name
	c.clearDraftLocked()
	c.load()
	return nil
}

// SetFilter updates the filter text applied to the match listing.
func (c *Controller) SetFilter(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = text
}

// Filter returns the current filter text.
func (c *Controller) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// FilteredMatches returns a read-only snapshot of the matches passing the
// current filter, in file order, each carrying its stable identity.
func (c *Controller) FilteredMatches() []types.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Filter(c.filter)
}

// Draft returns the current draft state.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// BeginEdit copies the match at the given position of the filtered view
// into the draft and marks it as the commit target. The position is
// resolved to the entry's identity, so later filter changes cannot redirect
// the edit to a different match.
func (c *Controller) BeginEdit(filteredIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.store.Filter(c.filter)
	if filteredIndex < 0 || filteredIndex >= len(view) {
		log.Errorf("edit index %d outside filtered view of %d entries", filteredIndex, len(view))
		return errors.ErrStaleTarget
	}
	entry := view[filteredIndex]
	id := entry.ID
	c.target = &id
	c.draft = Draft{Trigger: entry.Trigger, Replace: entry.Replace, Editing: true}
	return nil
}

// SetDraft updates the draft text without committing.
func (c *Controller) SetDraft(trigger, replace string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Trigger = trigger
	c.draft.Replace = replace
}

// CommitDraft applies the draft as an append or an in-place update and
// persists. On success the draft and edit target are cleared; on rejection
// (empty fields, stale target, write failure) they are kept so the user can
// correct and retry.
func (c *Controller) CommitDraft(trigger, replace string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Trigger = trigger
	c.draft.Replace = replace
	if err := c.store.Upsert(c.target, trigger, replace); err != nil {
		return err
	}
	c.clearDraftLocked()
	return nil
}

// CancelEdit clears the draft and edit target without touching the
// collection.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearDraftLocked()
}

// DeleteAt removes the match at the given position of the filtered view and
// persists. An edit target pointing at the removed match is cleared.
func (c *Controller) DeleteAt(filteredIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.store.Filter(c.filter)
	if filteredIndex < 0 || filteredIndex >= len(view) {
		log.Warnf("delete index %d outside filtered view of %d entries", filteredIndex, len(view))
		return nil
	}
	id := view[filteredIndex].ID
	if err := c.store.Delete(id); err != nil {
		return err
	}
	if c.target != nil && *c.target == id {
		c.clearDraftLocked()
	}
	return nil
}

// ConfirmTruncate overwrites a file whose content failed to parse with the
// current (empty) collection. Only call after the user has confirmed.
func (c *Controller) ConfirmTruncate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.SaveTruncating()
}

// HasDuplicateTrigger reports whether another match already uses trigger.
// Duplicates are legal; the UI uses this to warn, never to dedupe.
func (c *Controller) HasDuplicateTrigger(trigger string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.store.Entries() {
		if c.target != nil && e.ID == *c.target {
			continue
		}
		if e.Trigger == trigger {
			return true
		}
	}
	return false
}

// Refresh clears the filter, draft, and edit target, re-enumerates the
// catalog, and reloads. If the selected file disappeared, selection falls
// back to the first catalog entry, or to none when the catalog is empty.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = ""
	c.clearDraftLocked()

	files := c.catalog.List()
	found := false
	for _, f := range files {
		if f == c.selected {
			found = true
			break
		}
	}
	if !found {
		c.selected = ""
		if len(files) > 0 {
			c.selected = files[0]
		}
	}
	c.load()
}

func (c *Controller) clearDraftLocked() {
	c.draft = Draft{}
	c.target = nil
}
