package grid

import (
	"math"

	"github.com/lixenwraith/fov"
)

// Light describes the source payload a Lightmap understands. Pass a *Light
// as the sweep source to shade cells by distance; any other source value
// contributes a flat level of 1.
type Light struct {
	Intensity float64 // level at the source cell
	Radius    int     // falloff reaches zero past this distance
}

// Lightmap accumulates illumination across one or more sweeps. It implements
// fov.Lighting; cells outside its bounds are ignored.
type Lightmap struct {
	width  int
	height int
	level  []float64
	visits []int
}

// NewLightmap creates a dark lightmap of the given dimensions.
func NewLightmap(width, height int) *Lightmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Lightmap{
		width:  width,
		height: height,
		level:  make([]float64, width*height),
		visits: make([]int, width*height),
	}
}

// Apply implements fov.Lighting: adds the source's contribution at (x, y),
// falling off linearly with Euclidean distance over the light's radius.
func (m *Lightmap) Apply(x, y, dx, dy int, src fov.Source) error {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return nil
	}

	contribution := 1.0
	if l, ok := src.(*Light); ok {
		dist := math.Sqrt(float64(dx*dx + dy*dy))
		contribution = l.Intensity * (1 - dist/(float64(l.Radius)+1))
		if contribution < 0 {
			contribution = 0
		}
	}

	i := y*m.width + x
	m.level[i] += contribution
	m.visits[i]++
	return nil
}

// Level returns the accumulated light level at (x, y), 0 outside the bounds.
func (m *Lightmap) Level(x, y int) float64 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.level[y*m.width+x]
}

// Lit reports whether any sweep reached (x, y).
func (m *Lightmap) Lit(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.visits[y*m.width+x] > 0
}

// Reset darkens the whole map for the next frame.
func (m *Lightmap) Reset() {
	for i := range m.level {
		m.level[i] = 0
		m.visits[i] = 0
	}
}
