// Package fov computes field of view on an unbounded 2D grid.
//
// Features:
//   - Circular, square, and octagonal sweep boundaries
//   - Directed beams of arbitrary angular width
//   - Recursive shadow casting over 8 octants, O(radius²) worst case
//   - Caller-supplied opacity and lighting capabilities
//   - Corner-peek policy for diagonal sightlines past blocking corners
//
// The engine holds no state between sweeps. A Settings value carries the
// configuration and the two capabilities; Circle and Beam run one synchronous
// sweep each, invoking the lighting capability once per lit cell. Capability
// errors abort the sweep and are returned to the caller unchanged.
package fov

import "errors"

// Source identifies the light source of one sweep. It is forwarded verbatim to
// the Lighting capability so a single sink can compose multiple sources.
type Source = any

// Opacity reports whether the cell at (x, y) blocks line of sight.
// It is consulted at most once per visited cell per sweep and must not
// depend on sweep order.
type Opacity interface {
	Opaque(x, y int) (bool, error)
}

// Lighting receives one call per cell a sweep classifies as lit.
// (dx, dy) is the cell's offset from the sweep origin.
type Lighting interface {
	Apply(x, y, dx, dy int, src Source) error
}

// OpacityFunc adapts a plain function to the Opacity interface.
type OpacityFunc func(x, y int) (bool, error)

func (f OpacityFunc) Opaque(x, y int) (bool, error) {
	return f(x, y)
}

// LightingFunc adapts a plain function to the Lighting interface.
type LightingFunc func(x, y, dx, dy int, src Source) error

func (f LightingFunc) Apply(x, y, dx, dy int, src Source) error {
	return f(x, y, dx, dy, src)
}

// Shape selects the boundary test that limits a sweep.
type Shape uint8

const (
	// ShapeCirclePrecalculate matches ShapeCircle exactly but caches the
	// boundary table per radius on the Settings value.
	ShapeCirclePrecalculate Shape = iota
	// ShapeSquare bounds the sweep by Chebyshev distance.
	ShapeSquare
	// ShapeCircle bounds the sweep by Euclidean distance ≤ radius + 0.5.
	ShapeCircle
	// ShapeOctagon bounds the sweep by max + min/2 over the absolute offsets.
	ShapeOctagon
)

func (s Shape) String() string {
	switch s {
	case ShapeCirclePrecalculate:
		return "circle_precalculate"
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	case ShapeOctagon:
		return "octagon"
	}
	return "invalid"
}

// Direction is one of the 8 compass octant centers used by Beam.
// East is +x, North is -y; the angle of a direction is 45° times its value,
// increasing from east toward north.
type Direction uint8

const (
	East Direction = iota
	Northeast
	North
	Northwest
	West
	Southwest
	South
	Southeast
)

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case Northeast:
		return "northeast"
	case North:
		return "north"
	case Northwest:
		return "northwest"
	case West:
		return "west"
	case Southwest:
		return "southwest"
	case South:
		return "south"
	case Southeast:
		return "southeast"
	}
	return "invalid"
}

// CornerPeek controls whether diagonal sightlines may leak past a blocking
// corner.
type CornerPeek uint8

const (
	// NoPeek derives shadow edges from the blocker corner nearer the source;
	// rays grazing a corner are blocked.
	NoPeek CornerPeek = iota
	// Peek derives shadow edges from the far corner; vision leaks diagonally
	// around a single blocking cell.
	Peek
)

func (c CornerPeek) String() string {
	switch c {
	case NoPeek:
		return "nopeek"
	case Peek:
		return "peek"
	}
	return "invalid"
}

// OpaquePolicy controls whether the lighting capability fires for opaque
// cells themselves, not just transparent ones.
type OpaquePolicy uint8

const (
	OpaqueNoApply OpaquePolicy = iota
	OpaqueApply
)

func (o OpaquePolicy) String() string {
	switch o {
	case OpaqueNoApply:
		return "noapply"
	case OpaqueApply:
		return "apply"
	}
	return "invalid"
}

// Sweep-entry validation errors. Capability errors are never wrapped; they
// surface through Circle and Beam exactly as the capability returned them.
var (
	ErrNegativeRadius      = errors.New("fov: negative radius")
	ErrInvalidShape        = errors.New("fov: invalid shape")
	ErrInvalidDirection    = errors.New("fov: invalid direction")
	ErrInvalidCornerPeek   = errors.New("fov: invalid corner peek policy")
	ErrInvalidOpaquePolicy = errors.New("fov: invalid opaque apply policy")
)
