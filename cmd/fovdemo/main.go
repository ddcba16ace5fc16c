// FILE: cmd/fovdemo/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/fov"
	"github.com/lixenwraith/fov/grid"
	"github.com/lixenwraith/fov/scenario"
)

const (
	errorBlinkMs = 500
	frameMs      = 16
	minRadius    = 1
	maxRadius    = 60
	angleStep    = 15.0
)

type Game struct {
	screen        tcell.Screen
	width, height int

	settings *fov.Settings
	grid     *grid.Grid
	light    *grid.Lightmap

	// Source state
	srcX, srcY int
	radius     int
	intensity  float64

	// Beam state
	beamOn    bool
	beamDir   fov.Direction
	beamAngle float64

	// Bump feedback
	bumpError bool
	bumpTime  time.Time

	// Map regeneration
	genSeed int64

	// Audio
	audioInit bool
}

func NewGame(g *grid.Grid, startX, startY int, settings *fov.Settings, radius int, sound bool) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}

	game := &Game{
		screen:    screen,
		settings:  settings,
		grid:      g,
		light:     grid.NewLightmap(g.Width(), g.Height()),
		srcX:      startX,
		srcY:      startY,
		radius:    radius,
		intensity: 1.0,
		beamDir:   fov.East,
		beamAngle: 90,
	}

	game.width, game.height = screen.Size()
	game.settings.SetOpacity(game.grid)
	game.settings.SetLighting(game.light)

	if sound {
		if err := game.initAudio(); err != nil {
			// Non-fatal, demo can run without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	return game, nil
}

func (g *Game) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		g.audioInit = true
	}
	return err
}

func (g *Game) playBumpSound() {
	if !g.audioInit {
		return
	}

	sampleRate := beep.SampleRate(44100)
	duration := sampleRate.N(50 * time.Millisecond)
	sine, _ := generators.SineTone(sampleRate, 220)

	speaker.Play(beep.Take(duration, sine))
}

func (g *Game) recompute() {
	g.light.Reset()
	src := &grid.Light{Intensity: g.intensity, Radius: g.radius}

	var err error
	if g.beamOn {
		err = g.settings.Beam(src, g.srcX, g.srcY, g.radius, g.beamDir, g.beamAngle)
	} else {
		err = g.settings.Circle(src, g.srcX, g.srcY, g.radius)
	}
	if err != nil {
		// The grid oracle never fails; flash instead of crashing on bad state.
		g.flagBump()
	}
}

func (g *Game) flagBump() {
	g.bumpError = true
	g.bumpTime = time.Now()
	g.playBumpSound()
}

func (g *Game) moveSource(dx, dy int) {
	nx, ny := g.srcX+dx, g.srcY+dy
	if !g.grid.InBounds(nx, ny) || g.grid.OpaqueAt(nx, ny) {
		g.flagBump()
		return
	}
	g.srcX, g.srcY = nx, ny
	g.recompute()
}

func (g *Game) regenerate() {
	g.genSeed++
	m, sx, sy := grid.Generate(grid.Config{
		Width:    g.grid.Width(),
		Height:   g.grid.Height(),
		Braiding: 0.3,
		Seed:     g.genSeed,
	})
	g.grid = m
	g.light = grid.NewLightmap(m.Width(), m.Height())
	g.settings.SetOpacity(g.grid)
	g.settings.SetLighting(g.light)
	g.srcX, g.srcY = sx, sy
	g.recompute()
}

func (g *Game) cycleShape() {
	switch g.settings.Shape() {
	case fov.ShapeCircle:
		g.settings.SetShape(fov.ShapeCirclePrecalculate)
	case fov.ShapeCirclePrecalculate:
		g.settings.SetShape(fov.ShapeSquare)
	case fov.ShapeSquare:
		g.settings.SetShape(fov.ShapeOctagon)
	default:
		g.settings.SetShape(fov.ShapeCircle)
	}
	g.recompute()
}

func (g *Game) togglePeek() {
	if g.settings.CornerPeek() == fov.NoPeek {
		g.settings.SetCornerPeek(fov.Peek)
	} else {
		g.settings.SetCornerPeek(fov.NoPeek)
	}
	g.recompute()
}

func (g *Game) toggleWalls() {
	if g.settings.OpaquePolicy() == fov.OpaqueNoApply {
		g.settings.SetOpaquePolicy(fov.OpaqueApply)
	} else {
		g.settings.SetOpaquePolicy(fov.OpaqueNoApply)
	}
	g.recompute()
}

func (g *Game) adjustRadius(delta int) {
	r := g.radius + delta
	if r < minRadius || r > maxRadius {
		g.flagBump()
		return
	}
	g.radius = r
	g.recompute()
}

func (g *Game) adjustAngle(delta float64) {
	a := g.beamAngle + delta
	if a < angleStep {
		a = angleStep
	}
	if a > 360 {
		a = 360
	}
	g.beamAngle = a
	g.recompute()
}

func (g *Game) cellStyle(x, y int) (rune, tcell.Style) {
	level := g.light.Level(x, y)
	lit := g.light.Lit(x, y)

	if g.grid.OpaqueAt(x, y) {
		if lit {
			shade := int32(96 + level*159)
			if shade > 255 {
				shade = 255
			}
			return '#', tcell.StyleDefault.Foreground(tcell.NewRGBColor(shade, shade, shade))
		}
		return '#', tcell.StyleDefault.Foreground(tcell.NewRGBColor(48, 48, 48))
	}

	if !lit {
		return ' ', tcell.StyleDefault
	}

	shade := int32(64 + level*191)
	if shade > 255 {
		shade = 255
	}
	return '.', tcell.StyleDefault.Foreground(tcell.NewRGBColor(shade, shade, shade))
}

func (g *Game) draw() {
	g.screen.Clear()

	for y := 0; y < g.grid.Height() && y < g.height-1; y++ {
		for x := 0; x < g.grid.Width() && x < g.width; x++ {
			ch, style := g.cellStyle(x, y)
			g.screen.SetContent(x, y, ch, nil, style)
		}
	}

	// Draw the source over the map
	now := time.Now()
	if g.bumpError && now.Sub(g.bumpTime).Milliseconds() > errorBlinkMs {
		g.bumpError = false
	}

	srcStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	if g.bumpError {
		srcStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	}
	if g.srcY < g.height-1 && g.srcX < g.width {
		g.screen.SetContent(g.srcX, g.srcY, '@', nil, srcStyle)
	}

	g.drawStatus()
	g.screen.Show()
}

func (g *Game) drawStatus() {
	mode := "circle"
	if g.beamOn {
		mode = fmt.Sprintf("beam %v %.0f°", g.beamDir, g.beamAngle)
	}
	status := fmt.Sprintf(" r=%d  %v  %v  %v  %s  [hjkl/arrows move, s shape, p peek, w walls, b beam, d dir, [/] angle, -/+ radius, n new map, q quit]",
		g.radius, g.settings.Shape(), g.settings.CornerPeek(), g.settings.OpaquePolicy(), mode)

	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	y := g.height - 1
	col := 0
	for _, ch := range status {
		if col >= g.width {
			break
		}
		g.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.moveSource(0, -1)
		case tcell.KeyDown:
			g.moveSource(0, 1)
		case tcell.KeyLeft:
			g.moveSource(-1, 0)
		case tcell.KeyRight:
			g.moveSource(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				g.moveSource(-1, 0)
			case 'j':
				g.moveSource(0, 1)
			case 'k':
				g.moveSource(0, -1)
			case 'l':
				g.moveSource(1, 0)
			case 's':
				g.cycleShape()
			case 'p':
				g.togglePeek()
			case 'w':
				g.toggleWalls()
			case 'b':
				g.beamOn = !g.beamOn
				g.recompute()
			case 'd':
				g.beamDir = fov.Direction((int(g.beamDir) + 1) % 8)
				g.recompute()
			case '[':
				g.adjustAngle(-angleStep)
			case ']':
				g.adjustAngle(angleStep)
			case '-':
				g.adjustRadius(-1)
			case '+', '=':
				g.adjustRadius(1)
			case 'n':
				g.regenerate()
			}
		}

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
	}

	return true
}

func (g *Game) run() {
	ticker := time.NewTicker(frameMs * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	g.recompute()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case <-ticker.C:
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
}

func openCell(m *grid.Grid) (int, int) {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.OpaqueAt(x, y) {
				return x, y
			}
		}
	}
	return 0, 0
}

func main() {
	var (
		scenePath = flag.String("scenario", "", "YAML scenario to load instead of a generated map")
		width     = flag.Int("width", 79, "generated map width")
		height    = flag.Int("height", 23, "generated map height")
		seed      = flag.Int64("seed", 0, "map generation seed (0 = random)")
		radius    = flag.Int("radius", 12, "initial sweep radius")
		sound     = flag.Bool("sound", false, "enable audio feedback")
	)
	flag.Parse()

	var (
		m              *grid.Grid
		startX, startY int
		settings       *fov.Settings
		startRadius    = *radius
	)

	if *scenePath != "" {
		sc, err := scenario.Load(*scenePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load scenario: %v\n", err)
			os.Exit(1)
		}
		m, err = sc.Grid()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad scenario map: %v\n", err)
			os.Exit(1)
		}
		settings, err = sc.Settings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad scenario settings: %v\n", err)
			os.Exit(1)
		}
		if len(sc.Sources) > 0 {
			first := sc.Sources[0]
			startX, startY = first.X, first.Y
			startRadius = first.Radius
		} else {
			startX, startY = openCell(m)
		}
	} else {
		m, startX, startY = grid.Generate(grid.Config{
			Width:    *width,
			Height:   *height,
			Braiding: 0.3,
			Seed:     *seed,
		})
		settings = fov.New()
	}

	game, err := NewGame(m, startX, startY, settings, startRadius, *sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.genSeed = *seed
	game.run()
}
