// Package palette implements the session color palette.
package palette

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/pixels"
)

// Palette is an ordered list of distinct colors.
type Palette struct {
	colors []gfx.Rgba8
}

// New returns an empty palette.
func New() *Palette {
	return &Palette{}
}

// Add appends a color unless it is already present.
func (p *Palette) Add(c gfx.Rgba8) {
	for _, existing := range p.colors {
		if existing == c {
			return
		}
	}
	p.colors = append(p.colors, c)
}

// Clear removes all colors.
func (p *Palette) Clear() {
	p.colors = nil
}

// Colors returns the palette colors in order.
func (p *Palette) Colors() []gfx.Rgba8 {
	return p.colors
}

// Len returns the number of colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// At returns the color at index i, or false if out of range.
func (p *Palette) At(i int) (gfx.Rgba8, bool) {
	if i < 0 || i >= len(p.colors) {
		return gfx.Rgba8{}, false
	}
	return p.colors[i], true
}

// Sample adds every distinct non-transparent color found in the buffer,
// scanning rows top to bottom.
func (p *Palette) Sample(buf *pixels.Buffer) {
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c, _ := buf.At(x, y)
			if c.A == 0 {
				continue
			}
			p.Add(c)
		}
	}
}

// Sort orders the palette perceptually: by hue, then saturation, then
// lightness, so related shades end up adjacent.
func (p *Palette) Sort() {
	sort.SliceStable(p.colors, func(i, j int) bool {
		hi, si, li := hsl(p.colors[i])
		hj, sj, lj := hsl(p.colors[j])
		if hi != hj {
			return hi < hj
		}
		if si != sj {
			return si < sj
		}
		return li < lj
	})
}

func hsl(c gfx.Rgba8) (h, s, l float64) {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
}
