// Package grid provides ready-made capability implementations for the fov
// engine: a bounded tile map as the opacity oracle, an accumulating lightmap
// as the lighting sink, and a stochastic map generator for demos and tests.
package grid

import (
	"fmt"
	"strings"
)

// Grid is a bounded tile map over opaque/transparent cells. Cells outside
// the bounds are opaque, so sweeps never escape the map.
type Grid struct {
	width  int
	height int
	cells  []bool // row-major, true = opaque
}

// New creates a fully transparent grid of the given dimensions.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// Parse builds a grid from row strings. '#' and '1' are opaque; '.', '0',
// and space are transparent. All rows must have equal length.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid: empty map")
	}
	width := len(rows[0])
	g := New(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid: row %d width mismatch: expected %d, got %d", y, width, len(row))
		}
		for x, c := range row {
			switch c {
			case '#', '1':
				g.cells[y*width+x] = true
			case '.', '0', ' ':
			default:
				return nil, fmt.Errorf("grid: unknown cell %q at (%d, %d)", c, x, y)
			}
		}
	}
	return g, nil
}

// Width returns the grid width.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) lies on the map.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SetOpaque sets the opacity of one cell. Returns false for out-of-bounds
// coordinates.
func (g *Grid) SetOpaque(x, y int, opaque bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y*g.width+x] = opaque
	return true
}

// OpaqueAt reports whether a cell blocks sight. Out-of-bounds cells are
// opaque.
func (g *Grid) OpaqueAt(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.cells[y*g.width+x]
}

// Opaque implements fov.Opacity.
func (g *Grid) Opaque(x, y int) (bool, error) {
	return g.OpaqueAt(x, y), nil
}

// String renders the map with '#' for opaque and '.' for transparent cells.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
