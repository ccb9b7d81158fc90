// Package binding implements the mode-scoped key-binding table. A
// binding maps a (mode, key chord) pair to a command string executed on
// key-down, with an optional second command for key-up. Later bindings
// shadow earlier ones for the same pair; clearing removes everything,
// built-ins included.
package binding

import (
	"fmt"

	"github.com/pxlr/pxlr/internal/errors"
)

// EditMode is the session mode a binding is scoped to. The same chord
// can behave differently per mode.
type EditMode int

const (
	ModeNormal EditMode = iota
	ModeVisual
	ModeCommand
)

// AllModes lists every mode, for bindings that apply everywhere.
var AllModes = []EditMode{ModeNormal, ModeVisual, ModeCommand}

func (m EditMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeVisual:
		return "visual"
	case ModeCommand:
		return "command"
	default:
		return "unknown"
	}
}

// ParseMode parses an edit mode name.
func ParseMode(s string) (EditMode, error) {
	switch s {
	case "normal":
		return ModeNormal, nil
	case "visual":
		return ModeVisual, nil
	case "command":
		return ModeCommand, nil
	default:
		return 0, errors.E(errors.Op("binding.ParseMode"), errors.KindParse,
			fmt.Sprintf("unknown mode '%s'", s))
	}
}

// Binding maps a chord to its down and optional up commands.
type Binding struct {
	Mode  EditMode
	Chord string
	// Down is executed when the chord is pressed.
	Down string
	// Up, if non-empty, is executed when the chord is released.
	Up string
}

type key struct {
	mode  EditMode
	chord string
}

// Table holds the session's key bindings.
type Table struct {
	bindings map[key]Binding
}

// NewTable returns an empty binding table.
func NewTable() *Table {
	return &Table{bindings: make(map[key]Binding)}
}

// Map inserts or overwrites a binding for each of the given modes.
func (t *Table) Map(modes []EditMode, chord, down, up string) {
	for _, m := range modes {
		t.bindings[key{mode: m, chord: chord}] = Binding{Mode: m, Chord: chord, Down: down, Up: up}
	}
}

// Unmap removes the binding for chord in each of the given modes.
func (t *Table) Unmap(modes []EditMode, chord string) {
	for _, m := range modes {
		delete(t.bindings, key{mode: m, chord: chord})
	}
}

// Clear removes all bindings, including built-ins.
func (t *Table) Clear() {
	t.bindings = make(map[key]Binding)
}

// Find returns the binding for (mode, chord), if any.
func (t *Table) Find(mode EditMode, chord string) (Binding, bool) {
	b, ok := t.bindings[key{mode: mode, chord: chord}]
	return b, ok
}

// Len returns the number of bindings across all modes.
func (t *Table) Len() int {
	return len(t.bindings)
}
