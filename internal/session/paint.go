package session

import (
	"github.com/pxlr/pxlr/internal/binding"
	"github.com/pxlr/pxlr/internal/brush"
	"github.com/pxlr/pxlr/internal/doc"
	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/history"
)

// The stroke pipeline: input arrives as press / drag / release events
// in view coordinates. What a gesture does depends on the active tool;
// a brush gesture accumulates points and lands as a single undo entry
// when released, so one stroke is one undo step even across frames.

// StrokeStart begins a gesture at p on the focused view.
func (s *Session) StrokeStart(p gfx.Point) {
	v := s.ActiveView()
	if v == nil {
		return
	}
	switch s.tool {
	case brush.ToolBrush:
		s.Brush.Start(p, s.fg)
	case brush.ToolSampler:
		s.SampleAt(p)
	case brush.ToolFlood:
		s.FloodAt(p)
	case brush.ToolPan:
		s.anchor = p
	case brush.ToolSelection:
		s.SwitchMode(windowMode(s.mode))
		s.anchor = p
		s.selBefore = v.Selection()
		v.SetSelection(gfx.R(p.X, p.Y, p.X+1, p.Y+1))
	}
}

// StrokeMove extends the gesture to p.
func (s *Session) StrokeMove(p gfx.Point) {
	v := s.ActiveView()
	if v == nil {
		return
	}
	switch s.tool {
	case brush.ToolBrush:
		if s.Brush.State() == brush.Drawing {
			s.Brush.Move(p)
		}
	case brush.ToolPan:
		v.Pan = v.Pan.Add(gfx.P(p.X-s.anchor.X, p.Y-s.anchor.Y))
		s.anchor = p
	case brush.ToolSelection:
		v.SetSelection(gfx.R(s.anchor.X, s.anchor.Y, p.X+1, p.Y+1))
	}
}

// StrokeEnd finishes the gesture. This is where a brush stroke lands on
// the document and where a selection drag commits, each as one entry.
func (s *Session) StrokeEnd() {
	v := s.ActiveView()
	if v == nil {
		return
	}
	switch s.tool {
	case brush.ToolBrush:
		if s.Brush.State() != brush.Drawing {
			return
		}
		s.Brush.End()

		cells := s.Brush.Cells(v.Bounds())
		if len(cells) > 0 {
			writes := make([]doc.Write, len(cells))
			c := s.Brush.Color()
			for i, cell := range cells {
				writes[i] = doc.Write{P: cell, C: c}
			}
			v.Commit(s.applyWrites(v, writes, "brush"))
			if !s.Brush.IsSet(brush.Erase) {
				s.Palette.Add(s.fg)
			}
		}
	case brush.ToolSelection:
		v.CommitSelection(s.selBefore)
		s.selBefore = nil
	}
}

// applyWrites puts writes on the active frame, or on the active frame
// and every frame after it when the brush is in multi mode, and returns
// the combined entry. Frames before the active one are never touched.
func (s *Session) applyWrites(v *doc.View, writes []doc.Write, verb string) history.Entry {
	layer := v.ActiveLayer()
	if !s.Brush.IsSet(brush.Multi) {
		return v.WriteSet(v.FrameIndex(), layer, writes, verb)
	}
	frames := v.Frames()
	entries := make([]history.Entry, 0, len(frames)-v.FrameIndex())
	for i := v.FrameIndex(); i < len(frames); i++ {
		entries = append(entries, v.WriteSet(i, layer, writes, verb))
	}
	return doc.Group(verb, entries...)
}

// Paint stamps the brush at p in color c and commits the edit. Unlike
// a stroke gesture it is not tied to the active tool, so scripts can
// paint regardless of what tool the user holds. Brush size, symmetry
// and multi-frame replication still apply.
func (s *Session) Paint(p gfx.Point, c gfx.Rgba8) {
	s.paintPath([]gfx.Point{p}, c)
}

// PaintLine paints the straight line from p0 to p1 in color c.
func (s *Session) PaintLine(p0, p1 gfx.Point, c gfx.Rgba8) {
	s.paintPath(brush.LinePoints(p0, p1), c)
}

func (s *Session) paintPath(path []gfx.Point, c gfx.Rgba8) {
	v := s.ActiveView()
	if v == nil {
		return
	}
	cells := s.Brush.CellsAt(path, v.Bounds())
	if len(cells) == 0 {
		return
	}
	if s.Brush.IsSet(brush.Erase) {
		c = gfx.Transparent
	}
	writes := make([]doc.Write, len(cells))
	for i, cell := range cells {
		writes[i] = doc.Write{P: cell, C: c}
	}
	v.Commit(s.applyWrites(v, writes, "paint"))
	if !s.Brush.IsSet(brush.Erase) {
		s.Palette.Add(c)
	}
}

// FloodAt replaces the connected region under p with the foreground
// color and commits the edit. Filling a region that is already the
// foreground color leaves the history untouched.
func (s *Session) FloodAt(p gfx.Point) {
	v := s.ActiveView()
	if v == nil {
		return
	}
	layer := v.ActiveFrame().Layer(v.ActiveLayer())
	if layer == nil {
		return
	}
	cells := brush.FloodFill(layer.Buffer(), p, s.fg)
	if len(cells) == 0 {
		return
	}
	writes := make([]doc.Write, len(cells))
	for i, cell := range cells {
		writes[i] = doc.Write{P: cell, C: s.fg}
	}
	v.Commit(s.applyWrites(v, writes, "fill"))
	s.Palette.Add(s.fg)
}

// SampleAt sets the foreground color from the composited pixel under p
// and flips back to the previous tool, so sampling is a one-shot.
func (s *Session) SampleAt(p gfx.Point) {
	v := s.ActiveView()
	if v == nil {
		return
	}
	c, err := v.ActiveFrame().Composite().At(p.X, p.Y)
	if err != nil {
		return
	}
	s.fg = c
	s.PrevTool()
}

// windowMode keeps command mode sticky while a selection is dragged
// out; any other mode becomes visual.
func windowMode(m binding.EditMode) binding.EditMode {
	if m == binding.ModeCommand {
		return m
	}
	return binding.ModeVisual
}
