package grid

import (
	"math/rand"
	"time"
)

// Config controls map generation.
type Config struct {
	Width, Height int

	// Braiding: 0.0 keeps a perfect maze (tree), 1.0 removes every dead
	// end it can, adding cycles for more interesting sightlines.
	Braiding float64

	Seed int64 // 0 = random
}

// Generate creates a walled maze-like map for demos and benchmarks.
// Dimensions are rounded down to odd so the outer border stays solid.
// The second return value is an open cell suitable as a sweep origin.
func Generate(cfg Config) (*Grid, int, int) {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	g := New(cols, rows)
	for i := range g.cells {
		g.cells[i] = true
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	carve(g, rng)
	if cfg.Braiding > 0 {
		braid(g, cfg.Braiding, rng)
	}

	return g, 1, 1
}

// carve runs a recursive backtracker from (1, 1), producing a spanning tree
// of corridors over the odd-coordinate cells.
func carve(g *Grid, rng *rand.Rand) {
	type cell struct{ x, y int }
	stack := []cell{{1, 1}}
	g.SetOpaque(1, 1, false)

	dirs := [4]cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		var candidates []cell
		for _, d := range dirs {
			nx, ny := curr.x+d.x, curr.y+d.y
			if nx > 0 && nx < g.width-1 && ny > 0 && ny < g.height-1 && g.OpaqueAt(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		g.SetOpaque(curr.x+d.x/2, curr.y+d.y/2, false)
		g.SetOpaque(curr.x+d.x, curr.y+d.y, false)
		stack = append(stack, cell{curr.x + d.x, curr.y + d.y})
	}
}

// braid knocks a wall out of dead ends with the given probability, turning
// the corridor tree into a graph with loops.
func braid(g *Grid, probability float64, rng *rand.Rand) {
	ortho := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	for y := 1; y < g.height-1; y += 2 {
		for x := 1; x < g.width-1; x += 2 {
			if g.OpaqueAt(x, y) {
				continue
			}

			exits := 0
			for _, d := range ortho {
				if !g.OpaqueAt(x+d[0], y+d[1]) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			// Open toward any neighboring corridor still walled off.
			var walls [][2]int
			for _, d := range ortho {
				wx, wy := x+d[0], y+d[1]
				nx, ny := x+2*d[0], y+2*d[1]
				if nx > 0 && nx < g.width-1 && ny > 0 && ny < g.height-1 &&
					g.OpaqueAt(wx, wy) && !g.OpaqueAt(nx, ny) {
					walls = append(walls, [2]int{wx, wy})
				}
			}
			if len(walls) > 0 {
				w := walls[rng.Intn(len(walls))]
				g.SetOpaque(w[0], w[1], false)
			}
		}
	}
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
