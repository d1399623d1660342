package cadence

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

func TestInvokeScheduleEveryMinute(t *testing.T) {
	s := newTestScheduler()
	var frames []uint64
	task, err := s.InvokeSchedule(NewNode("n"), func() { frames = append(frames, s.Frame()) }, "@every 1m")
	if err != nil {
		t.Fatal(err)
	}
	if task == nil {
		t.Fatal("expected a task")
	}
	for i := 0; i < 150; i++ {
		s.Update(1)
	}
	if len(frames) != 2 || frames[0] != 60 || frames[1] != 120 {
		t.Errorf("fired at frames %v, want [60 120]", frames)
	}
}

func TestInvokeScheduleSecondsField(t *testing.T) {
	s := newTestScheduler()
	calls := 0
	if _, err := s.InvokeSchedule(NewNode("n"), func() { calls++ }, "*/10 * * * * *"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 35; i++ {
		s.Update(1)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestInvokeScheduleRunsWhilePaused(t *testing.T) {
	s := newTestScheduler()
	s.TimeScale = 0
	calls := 0
	if _, err := s.InvokeSchedule(NewNode("n"), func() { calls++ }, "@every 5s"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		s.Update(1)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 on the unscaled wall clock", calls)
	}
}

func TestInvokeScheduleBadSpec(t *testing.T) {
	s := newTestScheduler()
	task, err := s.InvokeSchedule(NewNode("n"), func() {}, "not a schedule")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if task != nil {
		t.Error("expected no task on parse error")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestInvokeScheduleInactiveOwner(t *testing.T) {
	s := newTestScheduler()
	scope := NewScope(nil)
	scope.Close()
	task, err := s.InvokeSchedule(scope, func() {}, "@hourly")
	if err != nil {
		t.Fatal(err)
	}
	if task != nil {
		t.Error("closed scope should not start a task")
	}
}

type onceSchedule struct{ at time.Time }

func (o onceSchedule) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

func TestInvokeOnScheduleFinishesWhenExhausted(t *testing.T) {
	s := newTestScheduler()
	var sched cron.Schedule = onceSchedule{at: s.Now().Add(3 * time.Second)}
	calls := 0
	task := s.InvokeOnSchedule(NewNode("n"), func() { calls++ }, sched)
	for i := 0; i < 10; i++ {
		s.Update(1)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if task.State() != TaskDone {
		t.Errorf("state = %v, want done", task.State())
	}
	if s.InvokeOnSchedule(NewNode("n"), func() {}, nil) != nil {
		t.Error("nil schedule should not start a task")
	}
}
