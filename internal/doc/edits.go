package doc

import (
	"fmt"

	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/history"
	"github.com/pxlr/pxlr/internal/pixels"
)

// regionEdit records a pixel mutation as before/after copies of the
// touched bounding rectangle only, keeping undo memory proportional to
// the edit rather than the buffer.
type regionEdit struct {
	layer  *Layer
	at     gfx.Point
	before *pixels.Buffer
	after  *pixels.Buffer
	label  string
}

func (e *regionEdit) Label() string { return e.label }

func (e *regionEdit) Apply() {
	e.layer.Buffer().Blit(e.at, e.after)
}

func (e *regionEdit) Revert() {
	e.layer.Buffer().Blit(e.at, e.before)
}

// groupEdit coalesces several edits into one undo entry. A brush gesture
// in multi mode produces one region edit per frame but must undo as a
// whole.
type groupEdit struct {
	label   string
	entries []history.Entry
}

func (e *groupEdit) Label() string { return e.label }

func (e *groupEdit) Apply() {
	for _, sub := range e.entries {
		sub.Apply()
	}
}

func (e *groupEdit) Revert() {
	for i := len(e.entries) - 1; i >= 0; i-- {
		e.entries[i].Revert()
	}
}

// Group combines edits into a single entry. Returns nil when no edits
// remain after dropping nils, so a no-op gesture commits nothing.
func Group(label string, entries ...history.Entry) history.Entry {
	var kept []history.Entry
	for _, e := range entries {
		if e != nil {
			kept = append(kept, e)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return &groupEdit{label: label, entries: kept}
	}
}

// shapeEdit snapshots the view's whole frame structure. Structural
// changes (frame add/remove/clone, slice, resize) are infrequent, so
// whole-value snapshots are acceptable here.
type shapeEdit struct {
	view   *View
	label  string
	before viewShape
	after  viewShape
}

type viewShape struct {
	w, h     int
	frames   []*Frame
	frameIdx int
}

func (e *shapeEdit) Label() string { return e.label }

func (e *shapeEdit) Apply() {
	e.view.restore(e.after)
}

func (e *shapeEdit) Revert() {
	e.view.restore(e.before)
}

// selectionEdit snapshots a selection replacement.
type selectionEdit struct {
	view   *View
	before *Selection
	after  *Selection
}

func (e *selectionEdit) Label() string { return "selection" }

func (e *selectionEdit) Apply() {
	e.view.selection = e.after.clone()
}

func (e *selectionEdit) Revert() {
	e.view.selection = e.before.clone()
}

func editLabel(verb string, r gfx.Rect) string {
	return fmt.Sprintf("%s %dx%d@%s", verb, r.Width(), r.Height(), r.Min)
}
