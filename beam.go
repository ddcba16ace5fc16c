package fov

import "math"

// Beam sweeps visibility restricted to the angular cone centered on dir with
// a full width of angle degrees. The sweep mechanics match Circle; cells
// outside the cone are never visited. An angle of 360 or more is equivalent
// to Circle; an angle of zero or less lights only the origin.
func (s *Settings) Beam(src Source, x, y, radius int, dir Direction, angle float64) error {
	if dir > Southeast {
		return ErrInvalidDirection
	}
	if angle >= 360 {
		return s.Circle(src, x, y, radius)
	}

	sw, err := s.newSweeper(src, x, y, radius)
	if err != nil {
		return err
	}
	if err := sw.light(x, y, 0, 0); err != nil {
		return err
	}
	if angle <= 0 {
		return nil
	}

	center := 45 * float64(dir)
	lo := center - angle/2
	hi := center + angle/2

	for i := range octants {
		spanLo := float64(45 * i)
		spanHi := spanLo + 45

		// The cone may wrap past 0 or 360; three shifted copies cover
		// every way it can land on this octant's span. A cone narrower
		// than the full turn yields at most two disjoint pieces here.
		for _, shift := range [3]float64{-360, 0, 360} {
			a0 := math.Max(lo+shift, spanLo)
			a1 := math.Min(hi+shift, spanHi)
			if a0 > a1+slopeEpsilon {
				continue
			}

			sLo, sHi := spanSlopes(i, spanLo, spanHi, a0, a1)

			// Boundary lines light in their owning octant, same as
			// Circle. The owner participates whenever the cone
			// touches the boundary angle, even as a single point.
			edge := circleEdge[i] && sLo <= slopeEpsilon
			diag := circleDiag[i] && sHi >= 1-slopeEpsilon

			if err := sw.scan(&octants[i], edge, diag, 1, sLo, sHi); err != nil {
				return err
			}
		}
	}
	return nil
}

// spanSlopes converts an angular sub-range of octant i into sightline
// slopes. Slope 0 is always the octant's axis and slope 1 its diagonal;
// within a span the mapping is linear at 45 degrees per unit slope.
func spanSlopes(i int, spanLo, spanHi, a0, a1 float64) (float64, float64) {
	if i%2 == 0 {
		return (a0 - spanLo) / 45, (a1 - spanLo) / 45
	}
	return (spanHi - a1) / 45, (spanHi - a0) / 45
}
