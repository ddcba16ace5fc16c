package fov

import "sync"

// Settings carries the configuration and capabilities shared by sweeps.
// The zero value is not ready for use; call New.
//
// A Settings value may be shared by concurrent sweeps only if its
// capabilities are themselves safe for concurrent invocation; the engine
// adds no locking of its own beyond the precalculated height cache.
type Settings struct {
	shape  Shape
	peek   CornerPeek
	opaque OpaquePolicy

	opacity  Opacity
	lighting Lighting

	// ShapeCirclePrecalculate boundary tables, keyed by radius.
	mu      sync.Mutex
	heights map[int][]int
}

// New returns Settings with the permissive defaults: ShapeCircle, NoPeek,
// OpaqueNoApply, no capabilities. With no capabilities set, every cell is
// treated as transparent and lighting is a no-op.
func New() *Settings {
	return &Settings{
		shape:  ShapeCircle,
		peek:   NoPeek,
		opaque: OpaqueNoApply,
	}
}

// SetShape selects the sweep boundary. The value is validated at sweep start,
// never silently replaced.
func (s *Settings) SetShape(shape Shape) {
	s.shape = shape
}

// Shape returns the configured sweep boundary.
func (s *Settings) Shape() Shape {
	return s.shape
}

// SetCornerPeek selects the diagonal corner policy.
func (s *Settings) SetCornerPeek(peek CornerPeek) {
	s.peek = peek
}

// CornerPeek returns the configured corner policy.
func (s *Settings) CornerPeek() CornerPeek {
	return s.peek
}

// SetOpaquePolicy selects whether lighting fires for opaque cells.
func (s *Settings) SetOpaquePolicy(policy OpaquePolicy) {
	s.opaque = policy
}

// OpaquePolicy returns the configured opaque apply policy.
func (s *Settings) OpaquePolicy() OpaquePolicy {
	return s.opaque
}

// SetOpacity replaces the opacity capability. A nil capability treats the
// whole grid as transparent. The capability is borrowed, not owned; it must
// outlive any sweep using this Settings value.
func (s *Settings) SetOpacity(o Opacity) {
	s.opacity = o
}

// Opacity returns the configured opacity capability, nil if unset.
func (s *Settings) Opacity() Opacity {
	return s.opacity
}

// SetLighting replaces the lighting capability. A nil capability makes
// lighting a no-op. Same lifetime rule as SetOpacity.
func (s *Settings) SetLighting(l Lighting) {
	s.lighting = l
}

// Lighting returns the configured lighting capability, nil if unset.
func (s *Settings) Lighting() Lighting {
	return s.lighting
}

// validate rejects out-of-range enum values at sweep start.
func (s *Settings) validate() error {
	if s.shape > ShapeOctagon {
		return ErrInvalidShape
	}
	if s.peek > Peek {
		return ErrInvalidCornerPeek
	}
	if s.opaque > OpaqueApply {
		return ErrInvalidOpaquePolicy
	}
	return nil
}

// heightsFor returns the cached boundary table for radius, computing it on
// first use. Values are identical to the per-column ShapeCircle bound.
func (s *Settings) heightsFor(radius int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.heights[radius]; ok {
		return h
	}
	h := make([]int, radius+1)
	for col := 0; col <= radius; col++ {
		h[col] = circleHeight(radius, col)
	}
	if s.heights == nil {
		s.heights = make(map[int][]int)
	}
	s.heights[radius] = h
	return h
}
