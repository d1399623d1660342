package cadence

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the owner tree and the scheduler
// and binds them to an Ebitengine game loop.
type Scene struct {
	root      *Node
	scheduler *Scheduler
	debug     bool

	// ClearColor fills the screen at the start of Draw when its alpha is > 0.
	ClearColor Color
	// ShowStats prints FPS, TPS and task counts in the top-left corner.
	ShowStats bool

	updateFunc  func() error
	testRunner  *TestRunner
	injectQueue []float64
}

// NewScene creates a scene with a pre-created root node and a scheduler
// configured with DefaultConfig.
func NewScene() *Scene {
	return NewSceneFromConfig(DefaultConfig())
}

// NewSceneFromConfig creates a scene whose scheduler is built from cfg.
func NewSceneFromConfig(cfg Config) *Scene {
	s := &Scene{
		root:      NewNode("root"),
		scheduler: NewSchedulerFromConfig(cfg),
	}
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Scheduler returns the scene's scheduler.
func (s *Scene) Scheduler() *Scheduler {
	return s.scheduler
}

// SetUpdateFunc sets a callback run by Run once per tick before the scene
// updates. A non-nil error stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update advances the scene by one Ebitengine tick (1/TPS seconds).
func (s *Scene) Update() {
	s.Step(tickDelta())
}

// Step advances the scene by dt seconds: the test runner (if any) runs, an
// injected delta replaces dt if one is queued, then the scheduler Advances.
// Headless drivers call Step directly.
func (s *Scene) Step(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if injected, ok := s.popInjectedDelta(); ok {
		dt = injected
	}
	s.scheduler.Advance(dt)
}

// Draw fills the clear color, prints the stats overlay if enabled, and ends
// the frame on the scheduler.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	if s.ShowStats {
		s.drawStats(screen)
	}
	s.scheduler.EndOfFrame()
}

// Close stops all of the scene's tasks and disposes its root node.
func (s *Scene) Close() {
	s.scheduler.Close()
	s.root.Dispose()
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and the
// scheduler logs task lifecycle at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	s.scheduler.SetDebugMode(enabled)
}

// tickDelta returns the length of one Ebitengine tick in seconds.
func tickDelta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		return 1.0 / ebiten.DefaultTPS
	}
	return 1.0 / float64(tps)
}
