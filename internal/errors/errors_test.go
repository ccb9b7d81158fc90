package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindOutOfBounds, "out of bounds"},
		{KindInvalidSliceCount, "invalid slice count"},
		{KindUnknownSetting, "unknown setting"},
		{KindTypeMismatch, "type mismatch"},
		{KindUnknownCommand, "unknown command"},
		{KindCyclicSource, "cyclic source"},
		{KindIO, "I/O error"},
		{KindNothingToUndo, "nothing to undo"},
		{KindNothingToRedo, "nothing to redo"},
		{KindLastFrameRemoval, "last frame removal"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindParse, "parse error"},
		{Kind(999), "unknown error"}, // Unknown kind
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Op: "test.Op", Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name       string
		args       []interface{}
		wantOp     Op
		wantKind   Kind
		wantErrMsg string
	}{
		{
			name:       "all arguments",
			args:       []interface{}{Op("pixels.At"), KindOutOfBounds, "context", errors.New("boom")},
			wantOp:     "pixels.At",
			wantKind:   KindOutOfBounds,
			wantErrMsg: "pixels.At: context: boom",
		},
		{
			name:       "no underlying error",
			args:       []interface{}{Op("doc.Slice"), KindInvalidSliceCount, "bad count"},
			wantOp:     "doc.Slice",
			wantKind:   KindInvalidSliceCount,
			wantErrMsg: "doc.Slice: bad count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("E() did not return *Error, got %T", err)
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if err.Error() != tt.wantErrMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantErrMsg)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := NothingToUndo()
	if !Is(err, KindNothingToUndo) {
		t.Errorf("Is(NothingToUndo(), KindNothingToUndo) = false, want true")
	}
	if Is(err, KindNothingToRedo) {
		t.Errorf("Is(NothingToUndo(), KindNothingToRedo) = true, want false")
	}
	if Is(errors.New("plain"), KindNothingToUndo) {
		t.Errorf("Is(plain error, kind) = true, want false")
	}

	// Is should see through wrapping.
	wrapped := fmt.Errorf("script line 3: %w", UnknownSetting("grid/fnord"))
	if !Is(wrapped, KindUnknownSetting) {
		t.Errorf("Is(wrapped, KindUnknownSetting) = false, want true")
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(OutOfBounds(5, 5, 4, 4)); got != KindOutOfBounds {
		t.Errorf("GetKind() = %v, want %v", got, KindOutOfBounds)
	}
	if got := GetKind(errors.New("plain")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want %v", got, KindUnknown)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"OutOfBounds", OutOfBounds(10, 2, 8, 8), KindOutOfBounds},
		{"InvalidSliceCount", InvalidSliceCount(30, 4), KindInvalidSliceCount},
		{"LastFrameRemoval", LastFrameRemoval(), KindLastFrameRemoval},
		{"NothingToUndo", NothingToUndo(), KindNothingToUndo},
		{"NothingToRedo", NothingToRedo(), KindNothingToRedo},
		{"UnknownSetting", UnknownSetting("fnord"), KindUnknownSetting},
		{"TypeMismatch", TypeMismatch("grid", "on / off", "color"), KindTypeMismatch},
		{"UnknownCommand", UnknownCommand("fnord"), KindUnknownCommand},
		{"CyclicSource", CyclicSource("init.px"), KindCyclicSource},
		{"IoFailed", IoFailed("imgio.Load", "a.png", errors.New("bad header")), KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.kind) {
				t.Errorf("%s produced kind %v, want %v", tt.name, GetKind(tt.err), tt.kind)
			}
		})
	}
}
