package tinsel

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window options for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// game adapts a Scene to ebiten.Game, driving both per-frame tasks on one
// goroutine: the inference task (Infer) and the render task (Update/Draw),
// the cooperative single-threaded model the scene assumes.
type game struct {
	scene *Scene
	start time.Time
}

func (g *game) Update() error {
	g.scene.Infer(time.Since(g.start).Seconds())
	g.scene.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Window resizes adjust the viewport only; no core-state effect.
	return outsideWidth, outsideHeight
}

// Run creates a window and game loop for the scene and blocks until the
// window closes, then tears the scene down. For full control, implement
// ebiten.Game yourself and call Scene.Infer, Scene.Update, and Scene.Draw
// directly.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "tinsel"
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer scene.Teardown()
	return ebiten.RunGame(&game{scene: scene, start: time.Now()})
}
