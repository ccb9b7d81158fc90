package pixels

import (
	"testing"

	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
)

func TestSetAndAt(t *testing.T) {
	b := New(4, 4)

	rect, err := b.Set(1, 2, gfx.Red)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if rect != gfx.R(1, 2, 2, 3) {
		t.Errorf("touched rect = %v, want %v", rect, gfx.R(1, 2, 2, 3))
	}

	c, err := b.At(1, 2)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if c != gfx.Red {
		t.Errorf("At(1,2) = %v, want %v", c, gfx.Red)
	}
}

func TestOutOfBounds(t *testing.T) {
	b := New(4, 4)

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x at width", 4, 0},
		{"y at height", 0, 4},
		{"far outside", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.At(tt.x, tt.y); !errors.Is(err, errors.KindOutOfBounds) {
				t.Errorf("At(%d,%d) error = %v, want KindOutOfBounds", tt.x, tt.y, err)
			}
			if _, err := b.Set(tt.x, tt.y, gfx.Red); !errors.Is(err, errors.KindOutOfBounds) {
				t.Errorf("Set(%d,%d) error = %v, want KindOutOfBounds", tt.x, tt.y, err)
			}
		})
	}
}

func TestFillClips(t *testing.T) {
	b := New(4, 4)

	touched := b.Fill(gfx.R(2, 2, 10, 10), gfx.Blue)
	if touched != gfx.R(2, 2, 4, 4) {
		t.Errorf("touched = %v, want %v", touched, gfx.R(2, 2, 4, 4))
	}

	c, _ := b.At(3, 3)
	if c != gfx.Blue {
		t.Errorf("At(3,3) = %v, want blue", c)
	}
	c, _ = b.At(1, 1)
	if c != gfx.Transparent {
		t.Errorf("At(1,1) = %v, want transparent", c)
	}
}

func TestRegionIsDetached(t *testing.T) {
	b := New(4, 4)
	b.Fill(gfx.R(0, 0, 2, 2), gfx.Green)

	region := b.Region(gfx.R(0, 0, 2, 2))
	if region.Width() != 2 || region.Height() != 2 {
		t.Fatalf("region size = %dx%d, want 2x2", region.Width(), region.Height())
	}

	// Mutating the source must not affect the captured copy.
	b.Fill(b.Bounds(), gfx.Red)
	c, _ := region.At(0, 0)
	if c != gfx.Green {
		t.Errorf("region cell changed to %v after source mutation", c)
	}
}

func TestBlitClips(t *testing.T) {
	b := New(4, 4)
	src := New(2, 2)
	src.Fill(src.Bounds(), gfx.Red)

	touched := b.Blit(gfx.P(3, 3), src)
	if touched != gfx.R(3, 3, 4, 4) {
		t.Errorf("touched = %v, want %v", touched, gfx.R(3, 3, 4, 4))
	}
	c, _ := b.At(3, 3)
	if c != gfx.Red {
		t.Errorf("At(3,3) = %v, want red", c)
	}

	if touched := b.Blit(gfx.P(10, 10), src); !touched.Empty() {
		t.Errorf("fully-clipped blit touched %v, want empty", touched)
	}
}

func TestBlitNegativeOffset(t *testing.T) {
	b := New(4, 4)
	src := New(3, 3)
	src.Fill(src.Bounds(), gfx.Blue)

	touched := b.Blit(gfx.P(-1, -1), src)
	if touched != gfx.R(0, 0, 2, 2) {
		t.Errorf("touched = %v, want %v", touched, gfx.R(0, 0, 2, 2))
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	b := New(4, 4)
	b.Set(1, 1, gfx.Red)
	b.Set(3, 3, gfx.Blue)

	bigger := b.Resize(6, 6)
	if bigger.Width() != 6 || bigger.Height() != 6 {
		t.Fatalf("resize produced %dx%d", bigger.Width(), bigger.Height())
	}
	c, _ := bigger.At(1, 1)
	if c != gfx.Red {
		t.Errorf("preserved pixel lost, At(1,1) = %v", c)
	}
	c, _ = bigger.At(5, 5)
	if c != gfx.Transparent {
		t.Errorf("new area not transparent, At(5,5) = %v", c)
	}

	smaller := b.Resize(2, 2)
	c, _ = smaller.At(1, 1)
	if c != gfx.Red {
		t.Errorf("shrink lost surviving pixel, At(1,1) = %v", c)
	}
	if _, err := smaller.At(3, 3); !errors.Is(err, errors.KindOutOfBounds) {
		t.Errorf("shrunk buffer should reject old coordinates")
	}
}

func TestResizeAnchorOffsetsContent(t *testing.T) {
	b := New(2, 2)
	b.Fill(b.Bounds(), gfx.Red)

	out := b.ResizeAnchor(4, 4, gfx.P(2, 2))
	if c, _ := out.At(0, 0); c != gfx.Transparent {
		t.Errorf("At(0,0) = %v, want transparent", c)
	}
	if c, _ := out.At(3, 3); c != gfx.Red {
		t.Errorf("At(3,3) = %v, want red", c)
	}
}

func TestCloneAndEqual(t *testing.T) {
	b := New(3, 3)
	b.Set(1, 1, gfx.Green)

	c := b.Clone()
	if !b.Equal(c) {
		t.Fatalf("clone not equal to source")
	}
	c.Set(0, 0, gfx.Red)
	if b.Equal(c) {
		t.Errorf("mutated clone still equal to source")
	}
	if b.Equal(New(3, 4)) {
		t.Errorf("buffers of different dimensions compared equal")
	}
}

func TestImageRoundTrip(t *testing.T) {
	b := New(2, 2)
	b.Set(0, 0, gfx.Rgba8{R: 10, G: 20, B: 30, A: 255})
	b.Set(1, 1, gfx.Rgba8{R: 1, G: 2, B: 3, A: 128})

	back := FromImage(b.Image())
	if !b.Equal(back) {
		t.Errorf("image round-trip altered pixels")
	}
}
