package fov

import "math"

// Slope comparisons tolerate accumulated float error of this magnitude.
const slopeEpsilon = 1e-9

// octant maps sweep-local coordinates onto grid offsets. Columns advance away
// from the origin along the octant's axis; rows climb from the axis (slope 0)
// to the diagonal (slope 1). dx = xx*col + xy*row, dy = yx*col + yy*row.
//
// axis and diag identify the boundary lines shared with the neighboring
// octants: axes 0..3 are E, N, W, S; diagonals 0..3 are NE, NW, SW, SE.
type octant struct {
	xx, xy, yx, yy int
	axis, diag     int
}

// Octant i covers angles [45i, 45(i+1)] degrees, east = 0, north = -y.
var octants = [8]octant{
	{1, 0, 0, -1, 0, 0},  // E..NE
	{0, 1, -1, 0, 1, 0},  // NE..N
	{0, -1, -1, 0, 1, 1}, // N..NW
	{-1, 0, 0, -1, 2, 1}, // NW..W
	{-1, 0, 0, 1, 2, 2},  // W..SW
	{0, -1, 1, 0, 3, 2},  // SW..S
	{0, 1, 1, 0, 3, 3},   // S..SE
	{1, 0, 0, 1, 0, 3},   // SE..E
}

// Cells on a shared axis or diagonal belong to exactly one of the two
// adjacent octants for lighting purposes.
var (
	circleEdge = [8]bool{true, true, false, true, false, true, false, false}
	circleDiag = [8]bool{true, false, true, false, true, false, true, false}
)

// sweeper is the transient state of one sweep. It lives for a single Circle
// or Beam call and is discarded on return, including on the fault path.
type sweeper struct {
	cfg    *Settings
	src    Source
	ox, oy int
	radius int

	// ShapeCirclePrecalculate boundary table, nil for other shapes.
	heights []int

	// Opacity results for octant-boundary cells, indexed by column.
	// 0 unknown, 1 clear, 2 opaque. Keeps the opacity capability at one
	// call per visited cell even though adjacent octants both trace
	// shadows along their shared boundary.
	axisSeen [4][]int8
	diagSeen [4][]int8
}

// Circle sweeps visibility from (x, y) out to radius in all directions,
// lighting every cell the configuration classifies as visible. The origin
// cell is always lit and its opacity is never consulted.
func (s *Settings) Circle(src Source, x, y, radius int) error {
	sw, err := s.newSweeper(src, x, y, radius)
	if err != nil {
		return err
	}
	if err := sw.light(x, y, 0, 0); err != nil {
		return err
	}
	for i := range octants {
		if err := sw.scan(&octants[i], circleEdge[i], circleDiag[i], 1, 0, 1); err != nil {
			return err
		}
	}
	return nil
}

func (s *Settings) newSweeper(src Source, x, y, radius int) (*sweeper, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, ErrNegativeRadius
	}
	sw := &sweeper{
		cfg:    s,
		src:    src,
		ox:     x,
		oy:     y,
		radius: radius,
	}
	if s.shape == ShapeCirclePrecalculate {
		sw.heights = s.heightsFor(radius)
	}
	for i := range sw.axisSeen {
		sw.axisSeen[i] = make([]int8, radius+1)
		sw.diagSeen[i] = make([]int8, radius+1)
	}
	return sw, nil
}

// scan classifies one column of an octant between two sightline slopes, then
// recurses outward. Opaque cells close the open slope window: the span of
// transparent cells before a blocker continues one column deeper with the
// window clipped at the blocker's corner, and vision past a blocker run
// reopens at the corner on its far side. Blocked regions are never entered,
// bounding the sweep at O(radius²).
//
// edge and diag state whether this invocation owns the cells on the octant's
// axis and diagonal boundary; non-owners still trace opacity along them.
func (sw *sweeper) scan(o *octant, edge, diag bool, col int, startSlope, endSlope float64) error {
	if col > sw.radius || startSlope > endSlope+slopeEpsilon {
		return nil
	}

	row0 := int(math.Ceil(float64(col)*startSlope - slopeEpsilon))
	row1 := int(math.Floor(float64(col)*endSlope + slopeEpsilon))
	if row0 < 0 {
		row0 = 0
	}
	if h := sw.colHeight(col); row1 > h {
		row1 = h
	}
	if row1 > col {
		row1 = col
	}

	const (
		stateNone = iota
		stateClear
		stateBlocked
	)
	state := stateNone

	for row := row0; row <= row1; row++ {
		dx := o.xx*col + o.xy*row
		dy := o.yx*col + o.yy*row
		x, y := sw.ox+dx, sw.oy+dy

		opaque, err := sw.cellOpaque(o, col, row, x, y)
		if err != nil {
			return err
		}

		// Boundary cells light in their owning octant only.
		owned := (row > 0 || edge) && (row < col || diag)

		if opaque {
			if owned && sw.cfg.opaque == OpaqueApply {
				if err := sw.light(x, y, dx, dy); err != nil {
					return err
				}
			}
			if state == stateClear {
				next := sw.blockSlope(col, row)
				if err := sw.scan(o, edge, diag, col+1, startSlope, next); err != nil {
					return err
				}
			}
			state = stateBlocked
		} else {
			if owned {
				if err := sw.light(x, y, dx, dy); err != nil {
					return err
				}
			}
			if state == stateBlocked {
				startSlope = sw.resumeSlope(col, row)
			}
			state = stateClear
		}
	}

	if state != stateBlocked {
		return sw.scan(o, edge, diag, col+1, startSlope, endSlope)
	}
	return nil
}

// blockSlope is the sightline grazing the underside of a blocker at
// (col, row): the end slope for the window still open below it.
func (sw *sweeper) blockSlope(col, row int) float64 {
	if sw.cfg.peek == Peek {
		return (float64(row) - 0.5) / (float64(col) - 0.5)
	}
	return (float64(row) - 0.5) / (float64(col) + 0.5)
}

// resumeSlope is the sightline grazing the top of a blocker run that ends
// just below (col, row): the start slope once vision reopens.
func (sw *sweeper) resumeSlope(col, row int) float64 {
	if sw.cfg.peek == Peek {
		return (float64(row) - 0.5) / (float64(col) + 0.5)
	}
	return (float64(row) - 0.5) / (float64(col) - 0.5)
}

// colHeight is the highest row the active shape admits in a column.
func (sw *sweeper) colHeight(col int) int {
	switch sw.cfg.shape {
	case ShapeCirclePrecalculate:
		return sw.heights[col]
	case ShapeCircle:
		return circleHeight(sw.radius, col)
	case ShapeOctagon:
		return 2 * (sw.radius - col)
	default: // ShapeSquare
		return sw.radius
	}
}

// circleHeight bounds col²+row² ≤ r²+r, the integer form of a Euclidean
// boundary at r+0.5.
func circleHeight(radius, col int) int {
	return isqrt(radius*radius + radius - col*col)
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// cellOpaque consults the opacity capability, memoizing octant-boundary
// cells so shared axis and diagonal lines are queried once per sweep.
func (sw *sweeper) cellOpaque(o *octant, col, row, x, y int) (bool, error) {
	var seen []int8
	switch row {
	case 0:
		seen = sw.axisSeen[o.axis]
	case col:
		seen = sw.diagSeen[o.diag]
	}
	if seen != nil {
		if v := seen[col]; v != 0 {
			return v == 2, nil
		}
	}

	opaque, err := sw.opaque(x, y)
	if err != nil {
		return false, err
	}
	if seen != nil {
		if opaque {
			seen[col] = 2
		} else {
			seen[col] = 1
		}
	}
	return opaque, nil
}

func (sw *sweeper) opaque(x, y int) (bool, error) {
	if sw.cfg.opacity == nil {
		return false, nil
	}
	return sw.cfg.opacity.Opaque(x, y)
}

func (sw *sweeper) light(x, y, dx, dy int) error {
	if sw.cfg.lighting == nil {
		return nil
	}
	return sw.cfg.lighting.Apply(x, y, dx, dy, sw.src)
}
