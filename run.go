package cadence

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	TPS     int  // ticks per second; 0 keeps Ebitengine's default (60)
	ShowFPS bool // enable the scene's stats overlay
}

// Run opens a window and drives scene until the window closes or the update
// func returns an error. It blocks; call it from main.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.ShowFPS {
		scene.ShowStats = true
	}
	return ebiten.RunGame(&game{scene: scene, width: cfg.Width, height: cfg.Height})
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene         *Scene
	width, height int
}

func (g *game) Update() error {
	if g.scene.updateFunc != nil {
		if err := g.scene.updateFunc(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
