package settings

import (
	"testing"

	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
)

func TestSetAndGet(t *testing.T) {
	r := NewRegistry()

	old, err := r.Set("grid", Bool(true))
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if old.IsSet() {
		t.Errorf("old grid value = %v, want off", old)
	}

	v, ok := r.Get("grid")
	if !ok || !v.IsSet() {
		t.Errorf("Get(grid) = %v, %v", v, ok)
	}
}

func TestSetUnknownKey(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Set("grid/fnord", Bool(true)); !errors.Is(err, errors.KindUnknownSetting) {
		t.Errorf("Set unknown key error = %v, want KindUnknownSetting", err)
	}
}

func TestSetTypeMismatch(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name  string
		key   string
		value Value
	}{
		{"color for bool", "grid", Color(gfx.Red)},
		{"bool for color", "grid/color", Bool(true)},
		{"int for pair", "grid/spacing", Int(8)},
		{"string for float", "scale", Str("big")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Set(tt.key, tt.value); !errors.Is(err, errors.KindTypeMismatch) {
				t.Errorf("Set(%s, %v) error = %v, want KindTypeMismatch", tt.key, tt.value, err)
			}
		})
	}
}

func TestIntWidensToFloat(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Set("scale", Int(2)); err != nil {
		t.Fatalf("Set(scale, 2) failed: %v", err)
	}
	v, _ := r.Get("scale")
	if v.Type() != TypeFloat || v.AsFloat() != 2.0 {
		t.Errorf("scale = %v (type %v), want float 2", v, v.Type())
	}
}

func TestToggle(t *testing.T) {
	r := NewRegistry()

	if err := r.Toggle("checker"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	v, _ := r.Get("checker")
	if !v.IsSet() {
		t.Errorf("checker = %v after toggle, want on", v)
	}

	if err := r.Toggle("grid/color"); !errors.Is(err, errors.KindTypeMismatch) {
		t.Errorf("Toggle non-bool error = %v, want KindTypeMismatch", err)
	}
	if err := r.Toggle("fnord"); !errors.Is(err, errors.KindUnknownSetting) {
		t.Errorf("Toggle unknown error = %v, want KindUnknownSetting", err)
	}
}

func TestReset(t *testing.T) {
	r := NewRegistry()
	r.Set("grid", Bool(true))
	r.Set("animation/delay", Int(20))

	r.Reset()

	if v, _ := r.Get("grid"); v.IsSet() {
		t.Errorf("grid not reset")
	}
	if v, _ := r.Get("animation/delay"); v.AsInt() != 160 {
		t.Errorf("animation/delay = %d, want 160", v.AsInt())
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   Value
	}{
		{"on", []string{"on"}, Bool(true)},
		{"off", []string{"off"}, Bool(false)},
		{"int", []string{"42"}, Int(42)},
		{"float", []string{"1.5"}, Float(1.5)},
		{"color", []string{"#ff0000"}, Color(gfx.Red)},
		{"pair", []string{"8", "16"}, Pair(8, 16)},
		{"string", []string{"fnord"}, Str("fnord")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.tokens)
			if err != nil {
				t.Fatalf("ParseValue(%v) failed: %v", tt.tokens, err)
			}
			if got != tt.want {
				t.Errorf("ParseValue(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}

	if _, err := ParseValue([]string{"#qqqqqq"}); err == nil {
		t.Errorf("malformed color accepted")
	}
	if _, err := ParseValue(nil); err == nil {
		t.Errorf("empty token list accepted")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Bool(true), "on"},
		{Bool(false), "off"},
		{Int(7), "7"},
		{Float(1.5), "1.5"},
		{Color(gfx.Red), "#ff0000"},
		{Pair(8, 16), "8 16"},
		{Str("fnord"), "fnord"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
