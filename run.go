package skillmap

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window; the map re-centers on each
	// size change.
	Resizable bool
	// ExitWhenScriptDone ends the loop once an attached TestRunner has run
	// every step and its screenshots are written.
	ExitWhenScriptDone bool
}

// gameLoop adapts a Map to ebiten.Game and adds the exit condition.
type gameLoop struct {
	m   *Map
	cfg RunConfig
}

func (g *gameLoop) Update() error {
	if err := g.m.Update(); err != nil {
		return err
	}
	r := g.m.testRunner
	if g.cfg.ExitWhenScriptDone && r != nil && r.Done() && len(g.m.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *gameLoop) Draw(screen *ebiten.Image) {
	g.m.Draw(screen)
}

func (g *gameLoop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.m.Layout(outsideWidth, outsideHeight)
}

// Run opens a window and runs the map until the window is closed.
func Run(m *Map, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.Title == "" {
		cfg.Title = "Skill Map"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	err := ebiten.RunGame(&gameLoop{m: m, cfg: cfg})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
