// Package history implements the per-view undo/redo engine.
//
// Entries are kept in an append-only arena with a cursor rather than a
// destructive stack: undo moves the cursor back without discarding the
// entry, which is what makes redo possible. Committing while the cursor
// sits below the top truncates the redo tail.
package history

import (
	"github.com/pxlr/pxlr/internal/errors"
)

// Entry is an immutable, reversible description of one committed
// mutation. Apply re-applies the mutation; Revert applies its inverse.
// Implementations live next to the state they mutate (see the doc
// package).
type Entry interface {
	// Label is a short human-readable description, used for reporting.
	Label() string
	// Apply re-applies the recorded mutation.
	Apply()
	// Revert applies the inverse of the recorded mutation.
	Revert()
}

// History is a linear sequence of entries with a movable cursor. The
// cursor counts applied entries: entries[:cursor] are in effect,
// entries[cursor:] form the redo tail.
type History struct {
	entries []Entry
	cursor  int
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Commit pushes a new entry and discards any redo tail. The mutation
// itself must already have been performed by the caller.
func (h *History) Commit(e Entry) {
	h.entries = append(h.entries[:h.cursor], e)
	h.cursor = len(h.entries)
}

// Undo reverts the entry below the cursor and moves the cursor back.
func (h *History) Undo() (Entry, error) {
	if h.cursor == 0 {
		return nil, errors.NothingToUndo()
	}
	h.cursor--
	e := h.entries[h.cursor]
	e.Revert()
	return e, nil
}

// Redo re-applies the entry above the cursor and moves the cursor
// forward.
func (h *History) Redo() (Entry, error) {
	if h.cursor == len(h.entries) {
		return nil, errors.NothingToRedo()
	}
	e := h.entries[h.cursor]
	e.Apply()
	h.cursor++
	return e, nil
}

// CanUndo reports whether there is an entry to undo.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether there is an entry to redo.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)
}

// Len returns the total number of entries, including the redo tail.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the number of entries currently in effect.
func (h *History) Cursor() int {
	return h.cursor
}
