// Package gfx holds the small color and geometry types shared by the
// editing core: 8-bit RGBA colors, integer points and rectangles.
package gfx

import (
	"fmt"

	"github.com/pxlr/pxlr/internal/errors"
)

// Rgba8 is an 8-bit RGBA color, the unit stored in pixel buffers.
type Rgba8 struct {
	R, G, B, A uint8
}

// Transparent is the zero color.
var Transparent = Rgba8{}

// Common colors.
var (
	Black = Rgba8{0x00, 0x00, 0x00, 0xff}
	White = Rgba8{0xff, 0xff, 0xff, 0xff}
	Red   = Rgba8{0xff, 0x00, 0x00, 0xff}
	Green = Rgba8{0x00, 0xff, 0x00, 0xff}
	Blue  = Rgba8{0x00, 0x00, 0xff, 0xff}
)

// String formats the color as a `#RRGGBB` or `#RRGGBBAA` literal, the same
// form the command language accepts.
func (c Rgba8) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Opaque reports whether the color is fully opaque.
func (c Rgba8) Opaque() bool {
	return c.A == 0xff
}

// ParseColor parses a `#RRGGBB` or `#RRGGBBAA` literal.
func ParseColor(s string) (Rgba8, error) {
	if len(s) == 0 || s[0] != '#' {
		return Rgba8{}, errors.E(errors.Op("gfx.ParseColor"), errors.KindParse,
			fmt.Sprintf("malformed color value `%s`", s))
	}
	hex := s[1:]

	var c Rgba8
	c.A = 0xff

	switch len(hex) {
	case 6:
		if !parseHexByte(hex[0:2], &c.R) || !parseHexByte(hex[2:4], &c.G) || !parseHexByte(hex[4:6], &c.B) {
			return Rgba8{}, errors.E(errors.Op("gfx.ParseColor"), errors.KindParse,
				fmt.Sprintf("malformed color value `%s`", s))
		}
	case 8:
		if !parseHexByte(hex[0:2], &c.R) || !parseHexByte(hex[2:4], &c.G) ||
			!parseHexByte(hex[4:6], &c.B) || !parseHexByte(hex[6:8], &c.A) {
			return Rgba8{}, errors.E(errors.Op("gfx.ParseColor"), errors.KindParse,
				fmt.Sprintf("malformed color value `%s`", s))
		}
	default:
		return Rgba8{}, errors.E(errors.Op("gfx.ParseColor"), errors.KindParse,
			fmt.Sprintf("malformed color value `%s`", s))
	}
	return c, nil
}

func parseHexByte(s string, out *uint8) bool {
	var v uint16
	for i := 0; i < len(s); i++ {
		c := s[i]
		v *= 16
		switch {
		case '0' <= c && c <= '9':
			v += uint16(c - '0')
		case 'a' <= c && c <= 'f':
			v += uint16(c-'a') + 10
		case 'A' <= c && c <= 'F':
			v += uint16(c-'A') + 10
		default:
			return false
		}
	}
	*out = uint8(v)
	return true
}
