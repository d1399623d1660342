package cadence

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenFloat, TweenVec2, TweenColor) and either
// call Update(dt) each frame or hand it to Scheduler.InvokeTween.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool

	// Unscaled makes InvokeTween drive the group with unscaled delta time.
	Unscaled bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields. No-op once Done.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenFloat creates a TweenGroup that animates *field to the target value
// over the specified duration using the easing function.
func TweenFloat(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenVec2 creates a TweenGroup that animates both components of *v.
func TweenVec2(v *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(v.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(to.Y), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	return g
}

// TweenColor creates a TweenGroup that animates all four components of *c
// (R, G, B, A) to the target color over the specified duration.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// InvokeTween drives g from the scheduler, one Update per frame, and calls
// onComplete once when the group is done. onComplete may be nil. Returns nil
// when g is nil or owner is not alive.
func (s *Scheduler) InvokeTween(owner Owner, g *TweenGroup, onComplete func()) *Task {
	if g == nil {
		return nil
	}
	if onComplete == nil {
		onComplete = func() {}
	}
	return s.invoke(owner, onComplete, func(yield func(Wait) bool, fire func()) {
		for !g.Done {
			if !yield(NextFrame()) {
				return
			}
			dt := s.deltaTime
			if g.Unscaled {
				dt = s.unscaledDeltaTime
			}
			g.Update(float32(dt))
		}
		fire()
	})
}
