package cadence

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts standard five-field expressions, an optional leading
// seconds field, and descriptors such as @hourly and @every 90s.
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// InvokeSchedule parses expr and calls fn at every activation of the schedule,
// measured on the scheduler's wall clock (Now). Because Now advances with
// unscaled time, schedules keep running while the game is paused.
func (s *Scheduler) InvokeSchedule(owner Owner, fn func(), expr string) (*Task, error) {
	sched, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	return s.InvokeOnSchedule(owner, fn, sched), nil
}

// InvokeOnSchedule calls fn at every activation of sched. The task finishes
// when sched reports no further activation.
func (s *Scheduler) InvokeOnSchedule(owner Owner, fn func(), sched cron.Schedule) *Task {
	if sched == nil {
		return nil
	}
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		for {
			at := sched.Next(s.Now())
			if at.IsZero() {
				return
			}
			due := func() bool { return !s.Now().Before(at) }
			if !yield(WaitUntil(due)) {
				return
			}
			fire()
		}
	})
}
