package brush

import (
	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/pixels"
)

// FloodFill returns the 4-connected region of cells reachable from seed
// that share the seed cell's color. The buffer is not mutated; the
// caller turns the cell set into an undoable write. Returns nil when the
// seed already has the replacement color, making the fill idempotent.
//
// Traversal uses an explicit frontier so arbitrarily large regions
// cannot exhaust the stack.
func FloodFill(buf *pixels.Buffer, seed gfx.Point, replacement gfx.Rgba8) []gfx.Point {
	target, err := buf.At(seed.X, seed.Y)
	if err != nil {
		return nil
	}
	if target == replacement {
		return nil
	}

	w, h := buf.Width(), buf.Height()
	visited := make([]bool, w*h)
	visited[seed.Y*w+seed.X] = true

	var cells []gfx.Point
	frontier := []gfx.Point{seed}
	for len(frontier) > 0 {
		p := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		cells = append(cells, p)

		for _, n := range [4]gfx.Point{
			{X: p.X - 1, Y: p.Y},
			{X: p.X + 1, Y: p.Y},
			{X: p.X, Y: p.Y - 1},
			{X: p.X, Y: p.Y + 1},
		} {
			if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
				continue
			}
			idx := n.Y*w + n.X
			if visited[idx] {
				continue
			}
			visited[idx] = true
			c, _ := buf.At(n.X, n.Y)
			if c == target {
				frontier = append(frontier, n)
			}
		}
	}
	return cells
}
