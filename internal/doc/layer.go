// Package doc implements the document model: views, frames, layers and
// selections, plus the undoable edits that mutate them. A view owns an
// ordered sequence of equally-sized frames; each frame composites one or
// more layers; each layer owns a pixel buffer.
package doc

import (
	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/pixels"
)

// Layer is a composited pixel plane within a frame.
type Layer struct {
	buf     *pixels.Buffer
	Opacity float64
	Visible bool
}

// NewLayer returns a transparent, visible layer of the given size.
func NewLayer(w, h int) *Layer {
	return &Layer{buf: pixels.New(w, h), Opacity: 1.0, Visible: true}
}

// Buffer returns the layer's pixel buffer.
func (l *Layer) Buffer() *pixels.Buffer {
	return l.buf
}

// SetBuffer swaps in a new buffer. Resize and slice operations replace
// buffers atomically instead of mutating them in place.
func (l *Layer) SetBuffer(b *pixels.Buffer) {
	l.buf = b
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{buf: l.buf.Clone(), Opacity: l.Opacity, Visible: l.Visible}
}

// Frame is one animation frame: a stack of layers sharing dimensions.
type Frame struct {
	layers []*Layer
}

// NewFrame returns a frame with a single transparent layer.
func NewFrame(w, h int) *Frame {
	return &Frame{layers: []*Layer{NewLayer(w, h)}}
}

// Layers returns the frame's layers in compositing order.
func (f *Frame) Layers() []*Layer {
	return f.layers
}

// Layer returns the layer at index i, or nil if out of range.
func (f *Frame) Layer(i int) *Layer {
	if i < 0 || i >= len(f.layers) {
		return nil
	}
	return f.layers[i]
}

// AddLayer appends a transparent layer and returns its index.
func (f *Frame) AddLayer(w, h int) int {
	f.layers = append(f.layers, NewLayer(w, h))
	return len(f.layers) - 1
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{layers: make([]*Layer, len(f.layers))}
	for i, l := range f.layers {
		out.layers[i] = l.Clone()
	}
	return out
}

// Composite flattens the frame's visible layers bottom-up into a new
// buffer using source-over blending scaled by layer opacity.
func (f *Frame) Composite() *pixels.Buffer {
	if len(f.layers) == 0 {
		return pixels.New(0, 0)
	}
	w, h := f.layers[0].buf.Width(), f.layers[0].buf.Height()
	out := pixels.New(w, h)
	for _, l := range f.layers {
		if !l.Visible || l.Opacity <= 0 {
			continue
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				src, _ := l.buf.At(x, y)
				if src.A == 0 {
					continue
				}
				dst, _ := out.At(x, y)
				out.Set(x, y, over(dst, src, l.Opacity))
			}
		}
	}
	return out
}

// over blends src onto dst with the layer opacity applied to src alpha.
func over(dst, src gfx.Rgba8, opacity float64) gfx.Rgba8 {
	sa := float64(src.A) / 255 * opacity
	da := float64(dst.A) / 255
	oa := sa + da*(1-sa)
	if oa == 0 {
		return gfx.Transparent
	}
	blend := func(s, d uint8) uint8 {
		v := (float64(s)*sa + float64(d)*da*(1-sa)) / oa
		return uint8(v + 0.5)
	}
	return gfx.Rgba8{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: uint8(oa*255 + 0.5),
	}
}
