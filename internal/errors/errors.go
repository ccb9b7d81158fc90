// Package errors provides structured error types for the pxlr editing core.
// These errors carry the failing operation and a category that the command
// interpreter can report per invocation.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindOutOfBounds
	KindInvalidSliceCount
	KindUnknownSetting
	KindTypeMismatch
	KindUnknownCommand
	KindCyclicSource
	KindIO
	KindNothingToUndo
	KindNothingToRedo
	KindLastFrameRemoval
	KindNotFound
	KindInvalid
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindOutOfBounds:
		return "out of bounds"
	case KindInvalidSliceCount:
		return "invalid slice count"
	case KindUnknownSetting:
		return "unknown setting"
	case KindTypeMismatch:
		return "type mismatch"
	case KindUnknownCommand:
		return "unknown command"
	case KindCyclicSource:
		return "cyclic source"
	case KindIO:
		return "I/O error"
	case KindNothingToUndo:
		return "nothing to undo"
	case KindNothingToRedo:
		return "nothing to redo"
	case KindLastFrameRemoval:
		return "last frame removal"
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindParse:
		return "parse error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for pxlr.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Buffer errors
func OutOfBounds(x, y, w, h int) error {
	return E(Op("pixels.At"), KindOutOfBounds, fmt.Sprintf("coordinate %d,%d outside %dx%d buffer", x, y, w, h))
}

// Document errors
func InvalidSliceCount(width, n int) error {
	return E(Op("doc.Slice"), KindInvalidSliceCount, fmt.Sprintf("width %d is not divisible into %d frames", width, n))
}

func LastFrameRemoval() error {
	return E(Op("doc.RemoveFrame"), KindLastFrameRemoval, "a view needs at least one frame")
}

// History errors
func NothingToUndo() error {
	return E(Op("history.Undo"), KindNothingToUndo, "no edits to undo")
}

func NothingToRedo() error {
	return E(Op("history.Redo"), KindNothingToRedo, "no edits to redo")
}

// Settings errors
func UnknownSetting(key string) error {
	return E(Op("settings.Set"), KindUnknownSetting, fmt.Sprintf("no such setting `%s`", key))
}

func TypeMismatch(key, want, got string) error {
	return E(Op("settings.Set"), KindTypeMismatch, fmt.Sprintf("invalid value for `%s`: expected %s, got %s", key, want, got))
}

// Interpreter errors
func UnknownCommand(name string) error {
	return E(Op("script.Execute"), KindUnknownCommand, fmt.Sprintf("unknown command: %s", name))
}

func CyclicSource(path string) error {
	return E(Op("script.Source"), KindCyclicSource, fmt.Sprintf("%s is already being sourced", path))
}

// I/O errors
func IoFailed(op Op, path string, err error) error {
	return E(op, KindIO, fmt.Sprintf("failed on %s", path), err)
}
