// Package scenario loads FOV scenes from YAML: a map, sweep configuration,
// and a set of light sources to compose onto one lightmap.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/fov"
	"github.com/lixenwraith/fov/grid"
)

// Beam restricts a source to an angular cone.
type Beam struct {
	Direction string  `yaml:"direction"`
	Angle     float64 `yaml:"angle"`
}

// Source is one light source to sweep from.
type Source struct {
	Name      string  `yaml:"name"`
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Radius    int     `yaml:"radius"`
	Intensity float64 `yaml:"intensity"` // 0 reads as 1.0
	Beam      *Beam   `yaml:"beam"`
}

// Scenario is a complete scene description.
type Scenario struct {
	Name        string   `yaml:"name"`
	Shape       string   `yaml:"shape"` // empty reads as circle
	CornerPeek  bool     `yaml:"corner_peek"`
	OpaqueApply bool     `yaml:"opaque_apply"`
	Map         []string `yaml:"map"`
	Sources     []Source `yaml:"sources"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks the scenario without building it.
func (sc *Scenario) Validate() error {
	if len(sc.Map) == 0 {
		return fmt.Errorf("map is required")
	}
	if _, err := ParseShape(sc.Shape); err != nil {
		return err
	}
	for i, src := range sc.Sources {
		if src.Radius < 0 {
			return fmt.Errorf("source %d: negative radius %d", i, src.Radius)
		}
		if src.Beam != nil {
			if _, err := ParseDirection(src.Beam.Direction); err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
		}
	}
	return nil
}

// Grid builds the scenario's map.
func (sc *Scenario) Grid() (*grid.Grid, error) {
	return grid.Parse(sc.Map)
}

// Settings builds sweep settings from the scenario; capabilities are left
// for the caller to wire.
func (sc *Scenario) Settings() (*fov.Settings, error) {
	shape, err := ParseShape(sc.Shape)
	if err != nil {
		return nil, err
	}
	s := fov.New()
	s.SetShape(shape)
	if sc.CornerPeek {
		s.SetCornerPeek(fov.Peek)
	}
	if sc.OpaqueApply {
		s.SetOpaquePolicy(fov.OpaqueApply)
	}
	return s, nil
}

// Run builds the scene and sweeps every source onto one lightmap.
func (sc *Scenario) Run() (*grid.Grid, *grid.Lightmap, error) {
	g, err := sc.Grid()
	if err != nil {
		return nil, nil, err
	}
	s, err := sc.Settings()
	if err != nil {
		return nil, nil, err
	}

	m := grid.NewLightmap(g.Width(), g.Height())
	s.SetOpacity(g)
	s.SetLighting(m)

	for i, src := range sc.Sources {
		intensity := src.Intensity
		if intensity == 0 {
			intensity = 1.0
		}
		light := &grid.Light{Intensity: intensity, Radius: src.Radius}

		if src.Beam != nil {
			dir, err := ParseDirection(src.Beam.Direction)
			if err != nil {
				return nil, nil, fmt.Errorf("source %d: %w", i, err)
			}
			err = s.Beam(light, src.X, src.Y, src.Radius, dir, src.Beam.Angle)
			if err != nil {
				return nil, nil, fmt.Errorf("source %d: %w", i, err)
			}
			continue
		}
		if err := s.Circle(light, src.X, src.Y, src.Radius); err != nil {
			return nil, nil, fmt.Errorf("source %d: %w", i, err)
		}
	}
	return g, m, nil
}

// ParseShape maps a scenario shape name to the engine constant. An empty
// name selects the circle default.
func ParseShape(name string) (fov.Shape, error) {
	switch name {
	case "", "circle":
		return fov.ShapeCircle, nil
	case "circle_precalculate":
		return fov.ShapeCirclePrecalculate, nil
	case "square":
		return fov.ShapeSquare, nil
	case "octagon":
		return fov.ShapeOctagon, nil
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// ParseDirection maps a compass name to the engine constant.
func ParseDirection(name string) (fov.Direction, error) {
	switch name {
	case "east":
		return fov.East, nil
	case "northeast":
		return fov.Northeast, nil
	case "north":
		return fov.North, nil
	case "northwest":
		return fov.Northwest, nil
	case "west":
		return fov.West, nil
	case "southwest":
		return fov.Southwest, nil
	case "south":
		return fov.South, nil
	case "southeast":
		return fov.Southeast, nil
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}
