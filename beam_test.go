package fov

import (
	"errors"
	"testing"
)

func TestBeamFullCircleEquivalence(t *testing.T) {
	obstacles := []point{{2, 1}, {-1, 3}, {0, -2}, {-3, -3}, {4, 0}}

	circle := newBoard()
	for _, p := range obstacles {
		circle.block(p.x, p.y)
	}
	s := settingsFor(circle, ShapeCircle)
	if err := s.Circle(nil, 0, 0, 4); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	for dir := East; dir <= Southeast; dir++ {
		for _, angle := range []float64{360, 480} {
			b := newBoard()
			for _, p := range obstacles {
				b.block(p.x, p.y)
			}
			sb := settingsFor(b, ShapeCircle)
			if err := sb.Beam(nil, 0, 0, 4, dir, angle); err != nil {
				t.Fatalf("dir %v angle %v: Expected success, got %v", dir, angle, err)
			}
			if len(b.lit) != len(circle.lit) {
				t.Fatalf("dir %v angle %v: Expected %d lit cells, got %d",
					dir, angle, len(circle.lit), len(b.lit))
			}
			for p, n := range circle.lit {
				if b.lit[p] != n {
					t.Errorf("dir %v angle %v: Expected (%d, %d) lit %d times, got %d",
						dir, angle, p.x, p.y, n, b.lit[p])
				}
			}
		}
	}
}

func TestBeamZeroAngle(t *testing.T) {
	b := newBoard()
	s := settingsFor(b, ShapeSquare)
	if err := s.Beam(nil, 3, 3, 4, North, 0); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	assertLitSet(t, b, []point{{3, 3}})
}

func TestBeamEastQuadrant(t *testing.T) {
	b := newBoard()
	s := settingsFor(b, ShapeSquare)
	if err := s.Beam(nil, 0, 0, 3, East, 90); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	var want []point
	want = append(want, point{0, 0})
	for dx := 1; dx <= 3; dx++ {
		for dy := -dx; dy <= dx; dy++ {
			want = append(want, point{dx, dy})
		}
	}
	assertLitSet(t, b, want)
}

func TestBeamNorthQuadrant(t *testing.T) {
	b := newBoard()
	s := settingsFor(b, ShapeSquare)
	if err := s.Beam(nil, 0, 0, 3, North, 90); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	var want []point
	want = append(want, point{0, 0})
	for dy := -1; dy >= -3; dy-- {
		for dx := dy; dx <= -dy; dx++ {
			want = append(want, point{dx, dy})
		}
	}
	assertLitSet(t, b, want)
}

func TestBeamNarrowEast(t *testing.T) {
	b := newBoard()
	s := settingsFor(b, ShapeSquare)
	if err := s.Beam(nil, 0, 0, 4, East, 45); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	// Centers within half a unit of slope per column on both sides of the
	// east axis.
	want := []point{{0, 0}}
	for dx := 1; dx <= 4; dx++ {
		limit := dx / 2
		for dy := -limit; dy <= limit; dy++ {
			want = append(want, point{dx, dy})
		}
	}
	assertLitSet(t, b, want)
}

func TestBeamWrapAround(t *testing.T) {
	b := newBoard()
	s := settingsFor(b, ShapeSquare)
	if err := s.Beam(nil, 0, 0, 4, West, 350); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	// Only the sliver around the east axis stays dark.
	for _, p := range []point{{-4, 0}, {0, 4}, {0, -4}, {4, 1}, {4, -1}} {
		if b.lit[p] != 1 {
			t.Errorf("Expected cell (%d, %d) lit once, got %d", p.x, p.y, b.lit[p])
		}
	}
	for dx := 1; dx <= 4; dx++ {
		if b.lit[point{dx, 0}] != 0 {
			t.Errorf("Expected east-axis cell (%d, 0) outside the beam, got %d",
				dx, b.lit[point{dx, 0}])
		}
	}
}

func TestBeamOncePerCell(t *testing.T) {
	b := newBoard()
	b.block(2, -1)
	s := settingsFor(b, ShapeSquare)
	if err := s.Beam(nil, 0, 0, 5, East, 90); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	for p, n := range b.lit {
		if n != 1 {
			t.Errorf("Expected cell (%d, %d) lit once, got %d", p.x, p.y, n)
		}
	}
	for p, n := range b.opacityCalls {
		if n > 1 {
			t.Errorf("Expected at most one opacity call for (%d, %d), got %d", p.x, p.y, n)
		}
	}
}

func TestBeamInvalidDirection(t *testing.T) {
	s := settingsFor(newBoard(), ShapeCircle)
	if err := s.Beam(nil, 0, 0, 3, Direction(8), 90); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection, got %v", err)
	}
}

func TestBeamFaultAborts(t *testing.T) {
	b := newBoard()
	b.failLight = 3
	s := settingsFor(b, ShapeSquare)
	err := s.Beam(nil, 0, 0, 4, South, 120)
	if err != errBoardFault {
		t.Fatalf("Expected the capability error unchanged, got %v", err)
	}
	if b.lightCalls != 3 {
		t.Errorf("Expected no lighting calls after the fault, got %d total", b.lightCalls)
	}
}

func TestBeamShadow(t *testing.T) {
	b := newBoard()
	b.block(0, -2)
	s := settingsFor(b, ShapeSquare)
	if err := s.Beam(nil, 0, 0, 4, North, 90); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	for _, p := range []point{{0, -3}, {0, -4}} {
		if b.lit[p] != 0 {
			t.Errorf("Expected shadowed cell (%d, %d) unlit, got %d", p.x, p.y, b.lit[p])
		}
	}
	if b.lit[point{0, -1}] != 1 {
		t.Error("Expected cell before the blocker to be lit")
	}
}

func TestBeamDiagonalDirection(t *testing.T) {
	b := newBoard()
	s := settingsFor(b, ShapeSquare)
	if err := s.Beam(nil, 0, 0, 3, Northeast, 90); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	// Cone [0°, 90°]: the quarter plane dx ≥ 0, dy ≤ 0.
	var want []point
	for dx := 0; dx <= 3; dx++ {
		for dy := 0; dy >= -3; dy-- {
			want = append(want, point{dx, dy})
		}
	}
	assertLitSet(t, b, want)
}
