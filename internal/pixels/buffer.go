// Package pixels implements the dense RGBA pixel buffer that backs every
// layer. Buffers are the unit of mutation for brush operations; every
// mutator reports the exact bounding rectangle it touched so the undo
// engine can snapshot minimally.
package pixels

import (
	"image"
	"image/color"

	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
)

// Buffer is a width x height grid of RGBA color cells.
//
// Buffers are never resized in place. Resize produces a new buffer which
// the owning layer swaps in atomically.
type Buffer struct {
	w, h  int
	cells []gfx.Rgba8
}

// New returns a transparent buffer of the given dimensions.
func New(w, h int) *Buffer {
	return &Buffer{w: w, h: h, cells: make([]gfx.Rgba8, w*h)}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.w }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.h }

// Bounds returns the rectangle covering the whole buffer.
func (b *Buffer) Bounds() gfx.Rect {
	return gfx.R(0, 0, b.w, b.h)
}

// At returns the color at x, y.
func (b *Buffer) At(x, y int) (gfx.Rgba8, error) {
	if !b.contains(x, y) {
		return gfx.Rgba8{}, errors.OutOfBounds(x, y, b.w, b.h)
	}
	return b.cells[y*b.w+x], nil
}

// Set writes the color at x, y and returns the touched rectangle.
func (b *Buffer) Set(x, y int, c gfx.Rgba8) (gfx.Rect, error) {
	if !b.contains(x, y) {
		return gfx.Rect{}, errors.OutOfBounds(x, y, b.w, b.h)
	}
	b.cells[y*b.w+x] = c
	return gfx.R(x, y, x+1, y+1), nil
}

func (b *Buffer) contains(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// Fill sets every cell inside area (clipped to the buffer) to c and
// returns the touched rectangle.
func (b *Buffer) Fill(area gfx.Rect, c gfx.Rgba8) gfx.Rect {
	area = area.Intersect(b.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := b.cells[y*b.w : y*b.w+b.w]
		for x := area.Min.X; x < area.Max.X; x++ {
			row[x] = c
		}
	}
	return area
}

// Region returns a detached copy of the pixels covered by area, clipped
// to the buffer. The copy owns its cells and outlives this buffer.
func (b *Buffer) Region(area gfx.Rect) *Buffer {
	area = area.Intersect(b.Bounds())
	out := New(area.Width(), area.Height())
	for y := 0; y < out.h; y++ {
		src := (area.Min.Y+y)*b.w + area.Min.X
		copy(out.cells[y*out.w:(y+1)*out.w], b.cells[src:src+out.w])
	}
	return out
}

// Blit copies src into the buffer with its top-left corner at dst,
// clipping to the buffer bounds. Returns the touched rectangle, which is
// empty if the source falls entirely outside.
func (b *Buffer) Blit(dst gfx.Point, src *Buffer) gfx.Rect {
	target := gfx.R(dst.X, dst.Y, dst.X+src.w, dst.Y+src.h).Intersect(b.Bounds())
	if target.Empty() {
		return gfx.Rect{}
	}
	for y := target.Min.Y; y < target.Max.Y; y++ {
		sy := y - dst.Y
		srow := src.cells[sy*src.w : (sy+1)*src.w]
		drow := b.cells[y*b.w : (y+1)*b.w]
		copy(drow[target.Min.X:target.Max.X], srow[target.Min.X-dst.X:target.Max.X-dst.X])
	}
	return target
}

// Resize returns a new buffer of the given dimensions with overlapping
// pixels preserved at their coordinates and any new area transparent.
func (b *Buffer) Resize(w, h int) *Buffer {
	return b.ResizeAnchor(w, h, gfx.P(0, 0))
}

// ResizeAnchor is Resize with the old content placed at anchor in the
// new buffer. Content falling outside the new bounds is dropped.
func (b *Buffer) ResizeAnchor(w, h int, anchor gfx.Point) *Buffer {
	out := New(w, h)
	out.Blit(anchor, b)
	return out
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := New(b.w, b.h)
	copy(out.cells, b.cells)
	return out
}

// Equal reports whether two buffers have identical dimensions and cells.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.w != other.w || b.h != other.h {
		return false
	}
	for i, c := range b.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Image converts the buffer to an image.NRGBA for the I/O collaborators.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.w, b.h))
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			c := b.cells[y*b.w+x]
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}

// FromImage builds a buffer from any image, converting to non-premultiplied
// RGBA. The buffer origin maps to the image bounds origin.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	out := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			out.cells[y*out.w+x] = gfx.Rgba8{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return out
}
