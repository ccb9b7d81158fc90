package session

import (
	"testing"

	"github.com/pxlr/pxlr/internal/brush"
	"github.com/pxlr/pxlr/internal/gfx"
)

func TestStrokeIsOneUndoStep(t *testing.T) {
	s := newTestSession(t)
	v := s.Blank("a", 8, 8)
	s.SetFgColor(gfx.Red)

	s.StrokeStart(gfx.P(1, 1))
	s.StrokeMove(gfx.P(4, 1))
	s.StrokeMove(gfx.P(6, 1))
	s.StrokeEnd()

	if v.History().Len() != 1 {
		t.Fatalf("history entries = %d, want 1", v.History().Len())
	}
	buf := v.ActiveFrame().Layer(0).Buffer()
	for x := 1; x <= 6; x++ {
		if c, _ := buf.At(x, 1); c != gfx.Red {
			t.Errorf("cell (%d,1) = %v, want red", x, c)
		}
	}
	if err := v.Undo(); err != nil {
		t.Fatal(err)
	}
	for x := 1; x <= 6; x++ {
		if c, _ := buf.At(x, 1); c != (gfx.Rgba8{}) {
			t.Errorf("cell (%d,1) after undo = %v, want transparent", x, c)
		}
	}
}

func TestMultiModeStrokePaintsActiveFrameOnward(t *testing.T) {
	s := newTestSession(t)
	v := s.Blank("a", 8, 8)
	v.AddFrame()
	v.AddFrame()
	v.NextFrame() // focus frame 1 of 3
	s.SetFgColor(gfx.Green)
	s.Brush.Set(brush.Multi)

	s.StrokeStart(gfx.P(2, 2))
	s.StrokeEnd()

	if c, _ := v.Frame(0).Layer(0).Buffer().At(2, 2); c != (gfx.Rgba8{}) {
		t.Errorf("frame 0 cell = %v, want untouched: multi paints the active frame onward", c)
	}
	for i := 1; i < 3; i++ {
		if c, _ := v.Frame(i).Layer(0).Buffer().At(2, 2); c != gfx.Green {
			t.Errorf("frame %d cell = %v, want green", i, c)
		}
	}
	// One atomic undo step for the whole multi-frame stroke.
	if err := v.Undo(); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < 3; i++ {
		if c, _ := v.Frame(i).Layer(0).Buffer().At(2, 2); c != (gfx.Rgba8{}) {
			t.Errorf("frame %d cell after undo = %v", i, c)
		}
	}
}

func TestEraseModePaintsTransparent(t *testing.T) {
	s := newTestSession(t)
	v := s.Blank("a", 4, 4)
	v.Commit(v.FillRegion(0, v.Bounds(), gfx.Blue, "fill"))
	s.SetFgColor(gfx.Red)
	s.Brush.Set(brush.Erase)

	s.StrokeStart(gfx.P(1, 1))
	s.StrokeEnd()

	if c, _ := v.ActiveFrame().Layer(0).Buffer().At(1, 1); c != (gfx.Rgba8{}) {
		t.Errorf("erased cell = %v, want transparent", c)
	}
}

func TestFloodFillCommitsOnce(t *testing.T) {
	s := newTestSession(t)
	v := s.Blank("a", 4, 4)
	s.SetFgColor(gfx.Red)
	s.UseTool(brush.ToolFlood)

	s.StrokeStart(gfx.P(0, 0))
	if v.History().Len() != 1 {
		t.Fatalf("history entries = %d, want 1", v.History().Len())
	}
	if c, _ := v.ActiveFrame().Layer(0).Buffer().At(3, 3); c != gfx.Red {
		t.Errorf("filled cell = %v, want red", c)
	}

	// Filling again with the same color is a no-op and adds no entry.
	s.StrokeStart(gfx.P(0, 0))
	if v.History().Len() != 1 {
		t.Errorf("idempotent fill grew history to %d", v.History().Len())
	}
}

func TestSamplerPicksColorAndFlipsBack(t *testing.T) {
	s := newTestSession(t)
	v := s.Blank("a", 4, 4)
	v.Commit(v.FillRegion(0, gfx.R(0, 0, 1, 1), gfx.Blue, "fill"))
	s.SetFgColor(gfx.Red)
	s.UseTool(brush.ToolSampler)

	s.StrokeStart(gfx.P(0, 0))

	if s.FgColor() != gfx.Blue {
		t.Errorf("fg = %v, want sampled blue", s.FgColor())
	}
	if s.Tool() != brush.ToolBrush {
		t.Errorf("tool = %v, want brush after sampling", s.Tool())
	}
}

func TestSelectionDrag(t *testing.T) {
	s := newTestSession(t)
	v := s.Blank("a", 8, 8)
	s.UseTool(brush.ToolSelection)

	s.StrokeStart(gfx.P(1, 1))
	s.StrokeMove(gfx.P(4, 3))

	sel := v.Selection()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if got, want := sel.Rect, gfx.R(1, 1, 5, 4); got != want {
		t.Errorf("selection = %v, want %v", got, want)
	}
}

func TestSelectionDragIsOneUndoStep(t *testing.T) {
	s := newTestSession(t)
	v := s.Blank("a", 8, 8)
	s.UseTool(brush.ToolSelection)

	s.StrokeStart(gfx.P(1, 1))
	s.StrokeMove(gfx.P(2, 2))
	s.StrokeMove(gfx.P(3, 3))
	s.StrokeMove(gfx.P(4, 3))
	s.StrokeEnd()

	if v.History().Len() != 1 {
		t.Fatalf("history entries = %d, want 1 for the whole drag", v.History().Len())
	}
	if got, want := v.Selection().Rect, gfx.R(1, 1, 5, 4); got != want {
		t.Errorf("selection = %v, want %v", got, want)
	}
	if err := v.Undo(); err != nil {
		t.Fatal(err)
	}
	if v.Selection() != nil {
		t.Errorf("selection after undo = %v, want none", v.Selection())
	}
	if err := v.Redo(); err != nil {
		t.Fatal(err)
	}
	if got, want := v.Selection().Rect, gfx.R(1, 1, 5, 4); got != want {
		t.Errorf("selection after redo = %v, want %v", got, want)
	}
}
