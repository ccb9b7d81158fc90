package doc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/history"
	"github.com/pxlr/pxlr/internal/pixels"
)

// View is one open document: an ordered sequence of equally-sized
// frames with its own undo history, zoom/pan transform and optional
// selection.
type View struct {
	ID   uuid.UUID
	Name string

	// Zoom level and workspace pan offset; rendering hints consumed by
	// the external renderer.
	Zoom float64
	Pan  gfx.Point

	w, h        int
	frames      []*Frame
	frameIdx    int
	activeLayer int

	hist      *history.History
	selection *Selection
	modified  bool
}

// NewView returns a view with nframes transparent frames of w x h.
func NewView(name string, w, h, nframes int) *View {
	if nframes < 1 {
		nframes = 1
	}
	v := &View{
		ID:   uuid.New(),
		Name: name,
		Zoom: 1.0,
		w:    w,
		h:    h,
		hist: history.New(),
	}
	for i := 0; i < nframes; i++ {
		v.frames = append(v.frames, NewFrame(w, h))
	}
	return v
}

// NewViewFromBuffers returns a view whose frames wrap the given buffers,
// which must share dimensions.
func NewViewFromBuffers(name string, bufs []*pixels.Buffer) (*View, error) {
	if len(bufs) == 0 {
		return nil, errors.E(errors.Op("doc.NewViewFromBuffers"), errors.KindInvalid, "no frames")
	}
	w, h := bufs[0].Width(), bufs[0].Height()
	v := NewView(name, w, h, len(bufs))
	for i, b := range bufs {
		if b.Width() != w || b.Height() != h {
			return nil, errors.E(errors.Op("doc.NewViewFromBuffers"), errors.KindInvalid,
				fmt.Sprintf("frame %d is %dx%d, expected %dx%d", i, b.Width(), b.Height(), w, h))
		}
		v.frames[i].layers[0].SetBuffer(b.Clone())
	}
	return v, nil
}

// Width returns the frame width shared by all frames.
func (v *View) Width() int { return v.w }

// Height returns the frame height shared by all frames.
func (v *View) Height() int { return v.h }

// Bounds returns the rectangle of one frame.
func (v *View) Bounds() gfx.Rect { return gfx.R(0, 0, v.w, v.h) }

// Frames returns the view's frames in animation order.
func (v *View) Frames() []*Frame { return v.frames }

// Frame returns the frame at index i, or nil if out of range.
func (v *View) Frame(i int) *Frame {
	if i < 0 || i >= len(v.frames) {
		return nil
	}
	return v.frames[i]
}

// FrameIndex returns the currently displayed frame index.
func (v *View) FrameIndex() int { return v.frameIdx }

// ActiveFrame returns the currently displayed frame.
func (v *View) ActiveFrame() *Frame { return v.frames[v.frameIdx] }

// ActiveLayer returns the active layer index.
func (v *View) ActiveLayer() int { return v.activeLayer }

// SetActiveLayer activates layer i if it exists.
func (v *View) SetActiveLayer(i int) bool {
	if i < 0 || i >= len(v.frames[0].layers) {
		return false
	}
	v.activeLayer = i
	return true
}

// NextFrame advances the displayed frame, wrapping around.
func (v *View) NextFrame() {
	v.frameIdx = (v.frameIdx + 1) % len(v.frames)
}

// PrevFrame steps the displayed frame back, wrapping around.
func (v *View) PrevFrame() {
	v.frameIdx = (v.frameIdx - 1 + len(v.frames)) % len(v.frames)
}

// Modified reports whether the view has uncommitted-to-disk edits.
func (v *View) Modified() bool { return v.modified }

// MarkSaved clears the modified flag after a successful write.
func (v *View) MarkSaved() { v.modified = false }

// History exposes the view's undo history.
func (v *View) History() *history.History { return v.hist }

// Undo reverts the most recent committed edit.
func (v *View) Undo() error {
	if _, err := v.hist.Undo(); err != nil {
		return err
	}
	v.modified = true
	return nil
}

// Redo re-applies the next edit above the cursor.
func (v *View) Redo() error {
	if _, err := v.hist.Redo(); err != nil {
		return err
	}
	v.modified = true
	return nil
}

// Commit records an already-applied edit. A nil entry (a no-op edit) is
// ignored so that e.g. an idempotent flood fill leaves no trace.
func (v *View) Commit(e history.Entry) {
	if e == nil {
		return
	}
	v.hist.Commit(e)
	v.modified = true
}

///////////////////////////////////////////////////////////////////////////
// Pixel edits
///////////////////////////////////////////////////////////////////////////

// Write is one pending cell write.
type Write struct {
	P gfx.Point
	C gfx.Rgba8
}

// WriteSet applies writes to the given frame's layer and returns the
// edit, or nil if nothing changed. Out-of-bounds writes are skipped: the
// brush clips at the frame edge. The edit is applied but not committed,
// so callers can group edits across frames into one gesture entry.
func (v *View) WriteSet(frameIdx, layerIdx int, writes []Write, verb string) history.Entry {
	frame := v.Frame(frameIdx)
	if frame == nil {
		return nil
	}
	layer := frame.Layer(layerIdx)
	if layer == nil {
		return nil
	}
	buf := layer.Buffer()

	var bounds gfx.Rect
	for _, w := range writes {
		if buf.Bounds().Contains(w.P) {
			bounds = bounds.Union(gfx.R(w.P.X, w.P.Y, w.P.X+1, w.P.Y+1))
		}
	}
	if bounds.Empty() {
		return nil
	}

	before := buf.Region(bounds)
	for _, w := range writes {
		if buf.Bounds().Contains(w.P) {
			buf.Set(w.P.X, w.P.Y, w.C)
		}
	}
	after := buf.Region(bounds)
	if before.Equal(after) {
		return nil
	}
	return &regionEdit{
		layer:  layer,
		at:     bounds.Min,
		before: before,
		after:  after,
		label:  editLabel(verb, bounds),
	}
}

// FillRegion sets every cell of area on the active layer of frameIdx and
// returns the applied (uncommitted) edit, or nil for a no-op.
func (v *View) FillRegion(frameIdx int, area gfx.Rect, c gfx.Rgba8, verb string) history.Entry {
	frame := v.Frame(frameIdx)
	if frame == nil {
		return nil
	}
	layer := frame.Layer(v.activeLayer)
	buf := layer.Buffer()

	area = area.Intersect(buf.Bounds())
	if area.Empty() {
		return nil
	}
	before := buf.Region(area)
	buf.Fill(area, c)
	after := buf.Region(area)
	if before.Equal(after) {
		return nil
	}
	return &regionEdit{layer: layer, at: area.Min, before: before, after: after, label: editLabel(verb, area)}
}

// BlitRegion pastes src at dst on the active layer of frameIdx and
// returns the applied (uncommitted) edit, or nil for a no-op.
func (v *View) BlitRegion(frameIdx int, dst gfx.Point, src *pixels.Buffer, verb string) history.Entry {
	frame := v.Frame(frameIdx)
	if frame == nil {
		return nil
	}
	layer := frame.Layer(v.activeLayer)
	buf := layer.Buffer()

	target := gfx.R(dst.X, dst.Y, dst.X+src.Width(), dst.Y+src.Height()).Intersect(buf.Bounds())
	if target.Empty() {
		return nil
	}
	before := buf.Region(target)
	buf.Blit(dst, src)
	after := buf.Region(target)
	if before.Equal(after) {
		return nil
	}
	return &regionEdit{layer: layer, at: target.Min, before: before, after: after, label: editLabel(verb, target)}
}

///////////////////////////////////////////////////////////////////////////
// Structural edits
///////////////////////////////////////////////////////////////////////////

func (v *View) shape() viewShape {
	frames := make([]*Frame, len(v.frames))
	copy(frames, v.frames)
	return viewShape{w: v.w, h: v.h, frames: frames, frameIdx: v.frameIdx}
}

func (v *View) restore(s viewShape) {
	v.w, v.h = s.w, s.h
	v.frames = make([]*Frame, len(s.frames))
	copy(v.frames, s.frames)
	v.frameIdx = s.frameIdx
	if v.frameIdx >= len(v.frames) {
		v.frameIdx = len(v.frames) - 1
	}
}

func (v *View) commitShape(label string, before viewShape) {
	v.Commit(&shapeEdit{view: v, label: label, before: before, after: v.shape()})
}

// AddFrame appends a blank frame with the same layer structure as the
// last frame.
func (v *View) AddFrame() {
	before := v.shape()
	blank := NewFrame(v.w, v.h)
	for len(blank.layers) < len(v.frames[len(v.frames)-1].layers) {
		blank.AddLayer(v.w, v.h)
	}
	v.frames = append(v.frames, blank)
	v.commitShape("frame/add", before)
}

// CloneFrame inserts a copy of frame i after it. An index of -1 clones
// the last frame.
func (v *View) CloneFrame(i int) error {
	if i == -1 {
		i = len(v.frames) - 1
	}
	if i < 0 || i >= len(v.frames) {
		return errors.E(errors.Op("doc.CloneFrame"), errors.KindNotFound,
			fmt.Sprintf("no frame %d", i))
	}
	before := v.shape()
	clone := v.frames[i].Clone()
	v.frames = append(v.frames[:i+1], append([]*Frame{clone}, v.frames[i+1:]...)...)
	v.commitShape("frame/clone", before)
	return nil
}

// RemoveFrame removes the last frame. Removing the only frame is
// rejected with KindLastFrameRemoval.
func (v *View) RemoveFrame() error {
	if len(v.frames) <= 1 {
		return errors.LastFrameRemoval()
	}
	before := v.shape()
	v.frames = v.frames[:len(v.frames)-1]
	if v.frameIdx >= len(v.frames) {
		v.frameIdx = len(v.frames) - 1
	}
	v.commitShape("frame/remove", before)
	return nil
}

// ResizeFrames resizes every frame to w x h, preserving overlapping
// pixels and filling new area with transparent. Buffers are replaced,
// never resized in place.
func (v *View) ResizeFrames(w, h int) error {
	if w < 1 || h < 1 {
		return errors.E(errors.Op("doc.ResizeFrames"), errors.KindInvalid,
			fmt.Sprintf("invalid size %dx%d", w, h))
	}
	before := v.shape()
	frames := make([]*Frame, len(v.frames))
	for i, f := range v.frames {
		nf := &Frame{layers: make([]*Layer, len(f.layers))}
		for j, l := range f.layers {
			nl := &Layer{buf: l.buf.Resize(w, h), Opacity: l.Opacity, Visible: l.Visible}
			nf.layers[j] = nl
		}
		frames[i] = nf
	}
	v.frames = frames
	v.w, v.h = w, h
	v.commitShape(fmt.Sprintf("resize %dx%d", w, h), before)
	return nil
}

// Slice reinterprets the view's pixels as n equal-width frames. The
// pixels of all current frames are laid side by side into a horizontal
// strip which is then cut into n columns; slicing to 1 merges an
// animation back into a single wide frame. Fails with
// KindInvalidSliceCount when the strip width is not divisible by n,
// leaving the view unchanged.
func (v *View) Slice(n int) error {
	if n < 1 {
		return errors.E(errors.Op("doc.Slice"), errors.KindInvalidSliceCount,
			fmt.Sprintf("invalid frame count %d", n))
	}
	total := v.w * len(v.frames)
	if total%n != 0 {
		return errors.InvalidSliceCount(total, n)
	}
	nw := total / n

	before := v.shape()
	nlayers := len(v.frames[0].layers)

	// Lay each layer plane out as one wide strip, then cut columns.
	strips := make([]*pixels.Buffer, nlayers)
	for j := 0; j < nlayers; j++ {
		strip := pixels.New(total, v.h)
		for i, f := range v.frames {
			strip.Blit(gfx.P(i*v.w, 0), f.layers[j].buf)
		}
		strips[j] = strip
	}

	frames := make([]*Frame, n)
	for k := 0; k < n; k++ {
		nf := &Frame{layers: make([]*Layer, nlayers)}
		for j := 0; j < nlayers; j++ {
			src := v.frames[0].layers[j]
			nf.layers[j] = &Layer{
				buf:     strips[j].Region(gfx.R(k*nw, 0, (k+1)*nw, v.h)),
				Opacity: src.Opacity,
				Visible: src.Visible,
			}
		}
		frames[k] = nf
	}
	v.frames = frames
	v.w = nw
	v.frameIdx = 0
	v.commitShape(fmt.Sprintf("slice %d", n), before)
	return nil
}

// AddLayer appends a transparent layer to every frame so that the layer
// structure stays uniform across the animation.
func (v *View) AddLayer() int {
	before := v.shape()
	frames := make([]*Frame, len(v.frames))
	for i, f := range v.frames {
		nf := &Frame{layers: make([]*Layer, len(f.layers), len(f.layers)+1)}
		copy(nf.layers, f.layers)
		nf.layers = append(nf.layers, NewLayer(v.w, v.h))
		frames[i] = nf
	}
	v.frames = frames
	v.commitShape("layer/add", before)
	return len(v.frames[0].layers) - 1
}

///////////////////////////////////////////////////////////////////////////
// Selection
///////////////////////////////////////////////////////////////////////////

// Selection returns the view's selection, or nil.
func (v *View) Selection() *Selection { return v.selection }

// Select replaces the selection with the given rectangle, clamped to the
// frame bounds. The replacement is undoable.
func (v *View) Select(r gfx.Rect) {
	r = r.Intersect(v.Bounds())
	before := v.selection.clone()
	v.selection = NewSelection(r)
	v.Commit(&selectionEdit{view: v, before: before, after: v.selection.clone()})
}

// SetSelection replaces the selection without recording history. Drag
// gestures set their intermediate rectangles this way and commit the
// whole drag as one edit via CommitSelection at release.
func (v *View) SetSelection(r gfx.Rect) {
	v.selection = NewSelection(r.Intersect(v.Bounds()))
}

// CommitSelection records the change from before to the current
// selection as a single undoable edit. An unchanged selection commits
// nothing.
func (v *View) CommitSelection(before *Selection) {
	after := v.selection.clone()
	if before == nil && after == nil {
		return
	}
	if before != nil && after != nil && before.Rect == after.Rect {
		return
	}
	v.Commit(&selectionEdit{view: v, before: before.clone(), after: after})
}

// ClearSelection removes the selection, if any.
func (v *View) ClearSelection() {
	if v.selection == nil {
		return
	}
	before := v.selection.clone()
	v.selection = nil
	v.Commit(&selectionEdit{view: v, before: before, after: nil})
}

// ExpandSelection grows the selection to the whole frame, creating one
// if none exists.
func (v *View) ExpandSelection() {
	before := v.selection.clone()
	v.selection = NewSelection(v.Bounds())
	v.Commit(&selectionEdit{view: v, before: before, after: v.selection.clone()})
}

// Yank captures a detached copy of the pixels covered by the selection
// on the active layer of the displayed frame. The copy is owned by the
// caller and outlives the selection.
func (v *View) Yank() *pixels.Buffer {
	if v.selection == nil {
		return nil
	}
	layer := v.ActiveFrame().Layer(v.activeLayer)
	return layer.Buffer().Region(v.selection.Rect)
}
