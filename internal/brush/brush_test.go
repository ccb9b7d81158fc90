package brush

import (
	"sort"
	"testing"

	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/pixels"
)

func sortPoints(ps []gfx.Point) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

func samePoints(t *testing.T, got, want []gfx.Point) {
	t.Helper()
	sortPoints(got)
	sortPoints(want)
	if len(got) != len(want) {
		t.Fatalf("got %d cells %v, want %d cells %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("cells = %v, want %v", got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"erase", Erase, false},
		{"multi", Multi, false},
		{"xsym", XSym, false},
		{"ysym", YSym, false},
		{"perfect", Perfect, false},
		{"xray", XRay, false},
		{"line", Line, false},
		{"fnord", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestModesCompose(t *testing.T) {
	b := New()
	b.Set(Erase)
	b.Set(XSym)
	if !b.IsSet(Erase) || !b.IsSet(XSym) || b.IsSet(Multi) {
		t.Errorf("mode set = %v", b.Modes())
	}

	b.Toggle(Erase)
	if b.IsSet(Erase) {
		t.Errorf("Toggle did not clear erase")
	}
	b.Unset(XSym)
	if b.Modes() != 0 {
		t.Errorf("modes not empty after unset: %v", b.Modes())
	}
}

func TestEraseColor(t *testing.T) {
	b := New()
	b.Start(gfx.P(0, 0), gfx.Red)
	if b.Color() != gfx.Red {
		t.Errorf("Color() = %v, want red", b.Color())
	}
	b.Set(Erase)
	if b.Color() != gfx.Transparent {
		t.Errorf("erase Color() = %v, want transparent", b.Color())
	}
}

func TestSingleCellStroke(t *testing.T) {
	b := New()
	bounds := gfx.R(0, 0, 4, 4)

	b.Start(gfx.P(1, 1), gfx.Red)
	b.End()
	samePoints(t, b.Cells(bounds), []gfx.Point{gfx.P(1, 1)})
}

func TestStrokeInterpolatesGaps(t *testing.T) {
	b := New()
	bounds := gfx.R(0, 0, 16, 16)

	b.Start(gfx.P(0, 0), gfx.Red)
	b.Move(gfx.P(4, 0)) // jumped 4 cells in one sample
	b.End()

	samePoints(t, b.Cells(bounds), []gfx.Point{
		gfx.P(0, 0), gfx.P(1, 0), gfx.P(2, 0), gfx.P(3, 0), gfx.P(4, 0),
	})
}

func TestXYSymmetry(t *testing.T) {
	b := New()
	b.Set(XSym)
	b.Set(YSym)
	bounds := gfx.R(0, 0, 4, 4)

	b.Start(gfx.P(0, 0), gfx.Red)
	b.End()

	samePoints(t, b.Cells(bounds), []gfx.Point{
		gfx.P(0, 0), gfx.P(3, 0), gfx.P(0, 3), gfx.P(3, 3),
	})
}

func TestSymmetryCollapsesOnAxis(t *testing.T) {
	b := New()
	b.Set(XSym)
	// 5-wide buffer: x=2 is its own mirror image.
	bounds := gfx.R(0, 0, 5, 5)

	b.Start(gfx.P(2, 1), gfx.Red)
	b.End()

	samePoints(t, b.Cells(bounds), []gfx.Point{gfx.P(2, 1)})
}

func TestXSymOnly(t *testing.T) {
	b := New()
	b.Set(XSym)
	bounds := gfx.R(0, 0, 4, 4)

	b.Start(gfx.P(1, 2), gfx.Red)
	b.End()

	samePoints(t, b.Cells(bounds), []gfx.Point{gfx.P(1, 2), gfx.P(2, 2)})
}

func TestBrushSizeFootprint(t *testing.T) {
	b := New()
	b.Size = 2
	bounds := gfx.R(0, 0, 8, 8)

	b.Start(gfx.P(2, 2), gfx.Red)
	b.End()

	samePoints(t, b.Cells(bounds), []gfx.Point{
		gfx.P(1, 1), gfx.P(2, 1), gfx.P(1, 2), gfx.P(2, 2),
	})
}

func TestPerfectFilterRemovesCorner(t *testing.T) {
	b := New()
	b.Set(Perfect)
	bounds := gfx.R(0, 0, 8, 8)

	// A one-cell staircase: right then down produces an L whose corner
	// the filter drops.
	b.Start(gfx.P(0, 0), gfx.Red)
	b.Move(gfx.P(1, 0))
	b.Move(gfx.P(1, 1))
	b.End()

	samePoints(t, b.Cells(bounds), []gfx.Point{gfx.P(0, 0), gfx.P(1, 1)})
}

func TestLineModeIgnoresWanderingPath(t *testing.T) {
	b := New()
	b.Set(Line)
	bounds := gfx.R(0, 0, 16, 16)

	b.Start(gfx.P(0, 0), gfx.Red)
	b.Move(gfx.P(7, 0)) // detour
	b.Move(gfx.P(3, 3))
	b.End()

	samePoints(t, b.Cells(bounds), []gfx.Point{
		gfx.P(0, 0), gfx.P(1, 1), gfx.P(2, 2), gfx.P(3, 3),
	})
}

func TestCellsClipToBounds(t *testing.T) {
	b := New()
	b.Size = 3
	bounds := gfx.R(0, 0, 4, 4)

	b.Start(gfx.P(0, 0), gfx.Red)
	b.End()

	for _, c := range b.Cells(bounds) {
		if !bounds.Contains(c) {
			t.Errorf("cell %v outside bounds", c)
		}
	}
}

func TestFloodFillRegion(t *testing.T) {
	buf := pixels.New(4, 4)
	// A red wall down column 2 splits the buffer.
	for y := 0; y < 4; y++ {
		buf.Set(2, y, gfx.Red)
	}

	cells := FloodFill(buf, gfx.P(0, 0), gfx.Blue)
	samePoints(t, cells, []gfx.Point{
		gfx.P(0, 0), gfx.P(1, 0),
		gfx.P(0, 1), gfx.P(1, 1),
		gfx.P(0, 2), gfx.P(1, 2),
		gfx.P(0, 3), gfx.P(1, 3),
	})
}

func TestFloodFillIdempotent(t *testing.T) {
	buf := pixels.New(4, 4)
	buf.Fill(buf.Bounds(), gfx.Green)

	if cells := FloodFill(buf, gfx.P(1, 1), gfx.Green); cells != nil {
		t.Errorf("filling with the existing color returned %v, want nil", cells)
	}
}

func TestFloodFillWholeBuffer(t *testing.T) {
	buf := pixels.New(64, 64)
	cells := FloodFill(buf, gfx.P(32, 32), gfx.Red)
	if len(cells) != 64*64 {
		t.Errorf("filled %d cells, want %d", len(cells), 64*64)
	}
}

func TestFloodFillOutOfBoundsSeed(t *testing.T) {
	buf := pixels.New(4, 4)
	if cells := FloodFill(buf, gfx.P(10, 10), gfx.Red); cells != nil {
		t.Errorf("out-of-bounds seed returned %v, want nil", cells)
	}
}

func TestToolRoundTrip(t *testing.T) {
	for _, name := range []string{"brush", "sampler", "pan", "flood", "selection"} {
		tool, err := ParseTool(name)
		if err != nil {
			t.Fatalf("ParseTool(%q) failed: %v", name, err)
		}
		if tool.String() != name {
			t.Errorf("round-trip of %q produced %q", name, tool.String())
		}
	}
	if _, err := ParseTool("chainsaw"); err == nil {
		t.Errorf("ParseTool accepted unknown tool")
	}
}
