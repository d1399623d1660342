package cadence

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenFloatReachesTarget(t *testing.T) {
	v := 10.0
	g := TweenFloat(&v, 100, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(v-55) > 0.5 {
		t.Errorf("v = %f, want ~55 at halfway", v)
	}
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(v-100) > 0.01 {
		t.Errorf("v = %f, want ~100", v)
	}
}

func TestTweenVec2ReachesTarget(t *testing.T) {
	p := Vec2{X: 10, Y: 20}
	g := TweenVec2(&p, Vec2{X: 100, Y: 200}, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(p.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", p.X)
	}
	if math.Abs(p.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", p.Y)
	}
}

func TestTweenColorAllComponents(t *testing.T) {
	c := Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(&c, target, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(c.R-target.R) > 0.01 {
		t.Errorf("R = %f, want %f", c.R, target.R)
	}
	if math.Abs(c.G-target.G) > 0.01 {
		t.Errorf("G = %f, want %f", c.G, target.G)
	}
	if math.Abs(c.B-target.B) > 0.01 {
		t.Errorf("B = %f, want %f", c.B, target.B)
	}
	if math.Abs(c.A-target.A) > 0.01 {
		t.Errorf("A = %f, want %f", c.A, target.A)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	p := Vec2{}
	g := TweenVec2(&p, Vec2{X: 50, Y: 50}, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done is a no-op.
	p.X = -1
	g.Update(0.1)
	if !g.Done || p.X != -1 {
		t.Fatal("Update after Done should not touch fields")
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	l, c := 100.0, 100.0
	gL := TweenFloat(&l, 0, 1.0, ease.Linear)
	gC := TweenFloat(&c, 0, 1.0, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(l-c) < 1.0 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", l, c)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	p := Vec2{}
	g := TweenVec2(&p, Vec2{X: 100, Y: 100}, 1.0, ease.Linear)
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}

// --- Scheduler-driven tweens ---

func TestInvokeTweenCompletes(t *testing.T) {
	s := newTestScheduler()
	v := 0.0
	done := 0
	task := s.InvokeTween(NewNode("n"), TweenFloat(&v, 1, 1.0, ease.Linear), func() { done++ })

	s.Update(0.5)
	if done != 0 {
		t.Fatal("completed early")
	}
	if math.Abs(v-0.5) > 0.01 {
		t.Errorf("v = %f, want ~0.5", v)
	}
	s.Update(0.5)
	s.Update(0.5)
	if done != 1 {
		t.Errorf("done = %d, want 1", done)
	}
	if task.State() != TaskDone {
		t.Errorf("state = %v, want done", task.State())
	}
}

func TestInvokeTweenFollowsTimeScale(t *testing.T) {
	s := newTestScheduler()
	s.TimeScale = 0
	scaled, unscaled := 0.0, 0.0
	s.InvokeTween(NewNode("a"), TweenFloat(&scaled, 1, 1.0, ease.Linear), nil)
	g := TweenFloat(&unscaled, 1, 1.0, ease.Linear)
	g.Unscaled = true
	s.InvokeTween(NewNode("b"), g, nil)

	s.Update(0.5)
	if scaled != 0 {
		t.Errorf("scaled tween moved while paused: %f", scaled)
	}
	if math.Abs(unscaled-0.5) > 0.01 {
		t.Errorf("unscaled = %f, want ~0.5", unscaled)
	}
}

func TestInvokeTweenStopsWithOwner(t *testing.T) {
	s := newTestScheduler()
	owner := NewNode("n")
	v := 0.0
	done := false
	task := s.InvokeTween(owner, TweenFloat(&v, 1, 1.0, ease.Linear), func() { done = true })

	s.Update(0.25)
	owner.Dispose()
	saved := v
	s.Update(0.25)
	s.Update(1)
	if done {
		t.Error("onComplete ran after owner disposal")
	}
	if v != saved {
		t.Errorf("v changed to %f after owner disposal", v)
	}
	if task.State() != TaskCancelled {
		t.Errorf("state = %v, want cancelled", task.State())
	}
}

func TestInvokeTweenNilGroup(t *testing.T) {
	s := newTestScheduler()
	if s.InvokeTween(NewNode("n"), nil, nil) != nil {
		t.Error("nil group should not start a task")
	}
}
