package cadence

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsText formats the overlay shown when Scene.ShowStats is set.
func (s *Scene) statsText(fps, tps float64) string {
	sch := s.scheduler
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTasks: %d\nScale: %.2f",
		fps, tps, sch.Len(), sch.TimeScale)
}

// drawStats prints the overlay with ebitenutil.DebugPrint.
func (s *Scene) drawStats(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, s.statsText(ebiten.ActualFPS(), ebiten.ActualTPS()))
}
