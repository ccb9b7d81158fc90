// Package brush implements the stateful paint tools: the brush with its
// composable mode set, stroke sampling with pixel-perfect filtering,
// symmetry expansion, and flood fill.
package brush

import (
	"fmt"
	"strings"

	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
)

// Mode is a set of independently toggleable brush behaviors. Modes
// compose orthogonally, so they are represented as bit flags rather
// than separate fields.
type Mode uint8

const (
	// Erase writes alpha=0 instead of the foreground color.
	Erase Mode = 1 << iota
	// Multi repeats the footprint onto every subsequent frame.
	Multi
	// XSym mirrors writes across the vertical center axis.
	XSym
	// YSym mirrors writes across the horizontal center axis.
	YSym
	// Perfect suppresses the corner cells that would thicken a
	// dragged stroke into a staircase.
	Perfect
	// XRay is a rendering hint only; it never affects buffer writes.
	XRay
	// Line defers all writes until gesture end, then rasterizes a
	// straight line between the gesture's endpoints.
	Line
)

var modeNames = []struct {
	mode Mode
	name string
}{
	{Erase, "erase"},
	{Multi, "multi"},
	{XSym, "xsym"},
	{YSym, "ysym"},
	{Perfect, "perfect"},
	{XRay, "xray"},
	{Line, "line"},
}

// ParseMode parses a brush mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range modeNames {
		if m.name == s {
			return m.mode, nil
		}
	}
	return 0, errors.E(errors.Op("brush.ParseMode"), errors.KindParse,
		fmt.Sprintf("unknown brush mode '%s'", s))
}

func (m Mode) String() string {
	var names []string
	for _, entry := range modeNames {
		if m&entry.mode != 0 {
			names = append(names, entry.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Tool selects which paint/selection algorithm pointer input drives.
type Tool int

const (
	ToolBrush Tool = iota
	ToolSampler
	ToolPan
	ToolFlood
	ToolSelection
)

var toolNames = map[Tool]string{
	ToolBrush:     "brush",
	ToolSampler:   "sampler",
	ToolPan:       "pan",
	ToolFlood:     "flood",
	ToolSelection: "selection",
}

// ParseTool parses a tool name.
func ParseTool(s string) (Tool, error) {
	for t, name := range toolNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.E(errors.Op("brush.ParseTool"), errors.KindParse,
		fmt.Sprintf("unknown tool %q", s))
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return "unknown"
}

// State is the input state of the brush.
type State int

const (
	NotDrawing State = iota
	Drawing
	DrawEnded
)

// Brush holds the active tool state and the in-progress gesture.
type Brush struct {
	Size  int
	modes Mode

	state State
	// stroke is the interpolated sample path of the current gesture.
	stroke []gfx.Point
	start  gfx.Point
	prev   gfx.Point
	curr   gfx.Point
	color  gfx.Rgba8
}

// New returns a 1-pixel brush with no modes set.
func New() *Brush {
	return &Brush{Size: 1}
}

// IsSet reports whether mode m is active.
func (b *Brush) IsSet(m Mode) bool { return b.modes&m != 0 }

// Set activates mode m.
func (b *Brush) Set(m Mode) { b.modes |= m }

// Unset deactivates mode m.
func (b *Brush) Unset(m Mode) { b.modes &^= m }

// Toggle flips mode m.
func (b *Brush) Toggle(m Mode) { b.modes ^= m }

// Modes returns the active mode set.
func (b *Brush) Modes() Mode { return b.modes }

// Reset clears all modes and restores the default size.
func (b *Brush) Reset() {
	b.modes = 0
	b.Size = 1
}

// State returns the gesture state.
func (b *Brush) State() State { return b.state }

// Color returns the color the gesture writes: transparent when erasing.
func (b *Brush) Color() gfx.Rgba8 {
	if b.IsSet(Erase) {
		return gfx.Transparent
	}
	return b.color
}

// Start begins a gesture at p with the given foreground color.
func (b *Brush) Start(p gfx.Point, color gfx.Rgba8) {
	b.state = Drawing
	b.color = color
	b.start = p
	b.prev = p
	b.curr = p
	b.stroke = append(b.stroke[:0], p)
}

// Move extends the gesture to p, interpolating a line between samples so
// fast drags leave no gaps.
func (b *Brush) Move(p gfx.Point) {
	if b.state != Drawing {
		return
	}
	b.prev = b.curr
	b.curr = p
	b.stroke = appendLine(b.stroke[:len(b.stroke)-1], b.prev, b.curr)
}

// End finishes the gesture. The final path is available from Path until
// the next Start.
func (b *Brush) End() {
	if b.state == Drawing {
		b.state = DrawEnded
	}
}

// Path returns the gesture's cell path after line and pixel-perfect
// processing but before footprint and symmetry expansion.
func (b *Brush) Path() []gfx.Point {
	if len(b.stroke) == 0 {
		return nil
	}
	if b.IsSet(Line) {
		// Line mode ignores the sampled path and rasterizes the
		// segment between the gesture endpoints.
		return appendLine(nil, b.start, b.curr)
	}
	path := dedup(b.stroke)
	if b.IsSet(Perfect) {
		path = perfectFilter(path)
	}
	return path
}

// Cells expands the current path through the brush footprint and the
// active symmetry modes, deduplicates, and clips to bounds. The result
// is the exact cell set a single frame write should touch.
func (b *Brush) Cells(bounds gfx.Rect) []gfx.Point {
	return b.expand(b.Path(), bounds)
}

// CellsAt is Cells for an arbitrary path; used for single-point paints.
func (b *Brush) CellsAt(path []gfx.Point, bounds gfx.Rect) []gfx.Point {
	return b.expand(path, bounds)
}

func (b *Brush) expand(path []gfx.Point, bounds gfx.Rect) []gfx.Point {
	size := b.Size
	if size < 1 {
		size = 1
	}
	off := size / 2

	seen := make(map[gfx.Point]struct{})
	var cells []gfx.Point
	add := func(p gfx.Point) {
		if !bounds.Contains(p) {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		cells = append(cells, p)
	}

	w, h := bounds.Width(), bounds.Height()
	for _, p := range path {
		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				c := gfx.P(p.X-off+dx, p.Y-off+dy)
				add(c)
				if b.IsSet(XSym) {
					add(gfx.P(w-1-c.X, c.Y))
				}
				if b.IsSet(YSym) {
					add(gfx.P(c.X, h-1-c.Y))
				}
				if b.IsSet(XSym) && b.IsSet(YSym) {
					add(gfx.P(w-1-c.X, h-1-c.Y))
				}
			}
		}
	}
	return cells
}

// LinePoints rasterizes the straight line from p0 to p1, including both
// endpoints.
func LinePoints(p0, p1 gfx.Point) []gfx.Point {
	return appendLine(nil, p0, p1)
}

// appendLine rasterizes a straight line from p0 to p1 using Bresenham's
// algorithm, appending every cell including both endpoints.
func appendLine(cells []gfx.Point, p0, p1 gfx.Point) []gfx.Point {
	dx := abs(p1.X - p0.X)
	dy := abs(p1.Y - p0.Y)
	sx := 1
	if p0.X > p1.X {
		sx = -1
	}
	sy := 1
	if p0.Y > p1.Y {
		sy = -1
	}

	err1 := dx / 2
	if dy > dx {
		err1 = -dy / 2
	}

	for {
		cells = append(cells, p0)
		if p0 == p1 {
			break
		}
		err2 := err1
		if err2 > -dx {
			err1 -= dy
			p0.X += sx
		}
		if err2 < dy {
			err1 += dx
			p0.Y += sy
		}
	}
	return cells
}

// perfectFilter removes the middle cell of 'L' shapes so a dragged
// stroke reads as a 1px line instead of a staircase of corners.
func perfectFilter(stroke []gfx.Point) []gfx.Point {
	if len(stroke) <= 2 {
		return stroke
	}
	filtered := make([]gfx.Point, 0, len(stroke))
	filtered = append(filtered, stroke[0])
	for i := 1; i < len(stroke); i++ {
		p := stroke[i]
		if i+1 < len(stroke) {
			prev, next := stroke[i-1], stroke[i+1]
			if (prev.Y == p.Y && next.Y != p.Y && next.X == p.X) ||
				(prev.X == p.X && next.X != p.X && next.Y == p.Y) {
				// Skip the corner cell and keep the one after it.
				i++
				filtered = append(filtered, stroke[i])
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func dedup(points []gfx.Point) []gfx.Point {
	out := points[:0:0]
	for i, p := range points {
		if i > 0 && p == points[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
