// Package settings implements the typed key-value registry consulted by
// the command interpreter. Every setting has a declared type and a
// default; unknown keys and type mismatches are rejected rather than
// created implicitly.
package settings

import (
	"fmt"
	"strconv"

	"github.com/pxlr/pxlr/internal/gfx"
)

// Type identifies a value's declared type.
type Type int

const (
	TypeBool Type = iota
	TypeInt
	TypeFloat
	TypeString
	TypeColor
	TypePair
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "on / off"
	case TypeInt:
		return "positive integer, eg. 32"
	case TypeFloat:
		return "float, eg. 1.33"
	case TypeString:
		return "string, eg. \"fnord\""
	case TypeColor:
		return "color, eg. #ffff00"
	case TypePair:
		return "two integers, eg. 32 48"
	default:
		return "unknown"
	}
}

// Value is a typed setting value.
type Value struct {
	typ Type

	b    bool
	i    int
	f    float64
	s    string
	c    gfx.Rgba8
	x, y int
}

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{typ: TypeBool, b: v} }

// Int returns an integer value.
func Int(v int) Value { return Value{typ: TypeInt, i: v} }

// Float returns a float value.
func Float(v float64) Value { return Value{typ: TypeFloat, f: v} }

// Str returns a string value.
func Str(v string) Value { return Value{typ: TypeString, s: v} }

// Color returns a color value.
func Color(v gfx.Rgba8) Value { return Value{typ: TypeColor, c: v} }

// Pair returns a two-integer value.
func Pair(x, y int) Value { return Value{typ: TypePair, x: x, y: y} }

// Type returns the value's type.
func (v Value) Type() Type { return v.typ }

// IsSet reports the boolean value; false for non-bool values.
func (v Value) IsSet() bool { return v.typ == TypeBool && v.b }

// AsInt returns the integer value, converting floats.
func (v Value) AsInt() int {
	if v.typ == TypeFloat {
		return int(v.f)
	}
	return v.i
}

// AsFloat returns the float value, converting ints.
func (v Value) AsFloat() float64 {
	if v.typ == TypeInt {
		return float64(v.i)
	}
	return v.f
}

// AsString returns the string value.
func (v Value) AsString() string { return v.s }

// AsColor returns the color value.
func (v Value) AsColor() gfx.Rgba8 { return v.c }

// AsPair returns the pair value.
func (v Value) AsPair() (int, int) { return v.x, v.y }

func (v Value) String() string {
	switch v.typ {
	case TypeBool:
		if v.b {
			return "on"
		}
		return "off"
	case TypeInt:
		return strconv.Itoa(v.i)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeString:
		return v.s
	case TypeColor:
		return v.c.String()
	case TypePair:
		return fmt.Sprintf("%d %d", v.x, v.y)
	default:
		return "?"
	}
}

// ParseValue recognizes a typed value from command-language tokens:
// on/off, a color literal, one integer, one float, a pair of integers,
// or a bare string.
func ParseValue(tokens []string) (Value, error) {
	switch len(tokens) {
	case 0:
		return Value{}, fmt.Errorf("expected a value")
	case 1:
		return parseScalar(tokens[0])
	case 2:
		x, errX := strconv.Atoi(tokens[0])
		y, errY := strconv.Atoi(tokens[1])
		if errX == nil && errY == nil {
			return Pair(x, y), nil
		}
		return Value{}, fmt.Errorf("expected two integers, got %q %q", tokens[0], tokens[1])
	default:
		return Value{}, fmt.Errorf("too many value tokens")
	}
}

func parseScalar(tok string) (Value, error) {
	switch tok {
	case "on", "true":
		return Bool(true), nil
	case "off", "false":
		return Bool(false), nil
	}
	if len(tok) > 0 && tok[0] == '#' {
		c, err := gfx.ParseColor(tok)
		if err != nil {
			return Value{}, err
		}
		return Color(c), nil
	}
	if i, err := strconv.Atoi(tok); err == nil {
		return Int(i), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Float(f), nil
	}
	return Str(tok), nil
}
