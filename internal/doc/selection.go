package doc

import (
	"github.com/pxlr/pxlr/internal/gfx"
)

// Selection is an axis-aligned region over the active frame. A view has
// at most one.
type Selection struct {
	Rect gfx.Rect
}

// NewSelection returns a selection covering the given rectangle.
func NewSelection(r gfx.Rect) *Selection {
	return &Selection{Rect: r}
}

// clone is nil-safe so selection snapshots can record "no selection".
func (s *Selection) clone() *Selection {
	if s == nil {
		return nil
	}
	return &Selection{Rect: s.Rect}
}

// Translate moves the selection by dx, dy, clamping it inside bounds.
func (s *Selection) Translate(dx, dy int, bounds gfx.Rect) {
	r := s.Rect.Translate(dx, dy)
	if r.Min.X < bounds.Min.X {
		r = r.Translate(bounds.Min.X-r.Min.X, 0)
	}
	if r.Min.Y < bounds.Min.Y {
		r = r.Translate(0, bounds.Min.Y-r.Min.Y)
	}
	if r.Max.X > bounds.Max.X {
		r = r.Translate(bounds.Max.X-r.Max.X, 0)
	}
	if r.Max.Y > bounds.Max.Y {
		r = r.Translate(0, bounds.Max.Y-r.Max.Y)
	}
	s.Rect = r
}

// Resize grows or shrinks the selection by moving its max corner,
// keeping at least one pixel and staying inside bounds.
func (s *Selection) Resize(dx, dy int, bounds gfx.Rect) {
	r := s.Rect
	r.Max.X += dx
	r.Max.Y += dy
	if r.Max.X <= r.Min.X {
		r.Max.X = r.Min.X + 1
	}
	if r.Max.Y <= r.Min.Y {
		r.Max.Y = r.Min.Y + 1
	}
	s.Rect = r.Intersect(bounds)
}

// Offset outsets (positive) or insets (negative) the selection on all
// sides.
func (s *Selection) Offset(dx, dy int, bounds gfx.Rect) {
	r := s.Rect
	r.Min.X -= dx
	r.Min.Y -= dy
	r.Max.X += dx
	r.Max.Y += dy
	if r.Max.X <= r.Min.X {
		mid := (r.Min.X + r.Max.X) / 2
		r.Min.X, r.Max.X = mid, mid+1
	}
	if r.Max.Y <= r.Min.Y {
		mid := (r.Min.Y + r.Max.Y) / 2
		r.Min.Y, r.Max.Y = mid, mid+1
	}
	s.Rect = r.Intersect(bounds)
}
