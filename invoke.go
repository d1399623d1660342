package cadence

// invoke starts a coroutine built by body against owner. body receives a fire
// function that runs fn and counts the invocation on the task, so owner
// teardown after a fire ends the task as done rather than cancelled.
// Returns nil when fn is nil or owner is not alive.
func (s *Scheduler) invoke(owner Owner, fn func(), body func(yield func(Wait) bool, fire func())) *Task {
	if fn == nil {
		return nil
	}
	t := s.spawn(owner)
	if t == nil {
		return nil
	}
	fire := func() {
		t.fired++
		fn()
	}
	s.launch(t, func(yield func(Wait) bool) {
		body(yield, fire)
	})
	return t
}

// InvokeDelayed calls fn once after delay seconds of scaled time.
func (s *Scheduler) InvokeDelayed(owner Owner, fn func(), delay float64) *Task {
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		if !yield(WaitSeconds(delay)) {
			return
		}
		fire()
	})
}

// InvokeDelayedUnscaled calls fn once after delay seconds of unscaled time.
func (s *Scheduler) InvokeDelayedUnscaled(owner Owner, fn func(), delay float64) *Task {
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		if !yield(WaitSecondsRealtime(delay)) {
			return
		}
		fire()
	})
}

// InvokeDelayedRepeating calls fn after delay seconds of scaled time and then
// every repeatRate seconds until the owner goes inactive.
func (s *Scheduler) InvokeDelayedRepeating(owner Owner, fn func(), delay, repeatRate float64) *Task {
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		if !yield(WaitSeconds(delay)) {
			return
		}
		for {
			fire()
			if !yield(WaitSeconds(repeatRate)) {
				return
			}
		}
	})
}

// InvokeDelayedRepeatingUnscaled is InvokeDelayedRepeating on the unscaled clock.
func (s *Scheduler) InvokeDelayedRepeatingUnscaled(owner Owner, fn func(), delay, repeatRate float64) *Task {
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		if !yield(WaitSecondsRealtime(delay)) {
			return
		}
		for {
			fire()
			if !yield(WaitSecondsRealtime(repeatRate)) {
				return
			}
		}
	})
}

// InvokeWaitEndOfFrame calls fn at the next EndOfFrame. Under Run that is
// after the scene has been drawn, so it never fires while the game loop is
// not drawing.
func (s *Scheduler) InvokeWaitEndOfFrame(owner Owner, fn func()) *Task {
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		if !yield(EndOfFrame()) {
			return
		}
		fire()
	})
}

// InvokeWaitForFixedUpdate calls fn at the next fixed step.
func (s *Scheduler) InvokeWaitForFixedUpdate(owner Owner, fn func()) *Task {
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		if !yield(FixedUpdate()) {
			return
		}
		fire()
	})
}

// InvokeSkipOneFrame calls fn on the next Update.
func (s *Scheduler) InvokeSkipOneFrame(owner Owner, fn func()) *Task {
	return s.InvokeSkipFrames(owner, fn, 1)
}

// InvokeSkipFrames calls fn during the framesCount-th Update after the call.
// framesCount <= 0 calls fn before InvokeSkipFrames returns.
func (s *Scheduler) InvokeSkipFrames(owner Owner, fn func(), framesCount int) *Task {
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		for i := 0; i < framesCount; i++ {
			if !yield(NextFrame()) {
				return
			}
		}
		fire()
	})
}

// InvokeSkipFixedUpdateFrames calls fn during the framesCount-th fixed step
// after the call.
func (s *Scheduler) InvokeSkipFixedUpdateFrames(owner Owner, fn func(), framesCount int) *Task {
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		for i := 0; i < framesCount; i++ {
			if !yield(FixedUpdate()) {
				return
			}
		}
		fire()
	})
}

// InvokeDelayedRepeatingScaled counts duration down by DeltaTime scaled by
// scale() on every Update and calls completed once when it runs out.
//
// scale is called once per Update; a negative result ends the countdown
// immediately (completed still fires). A duration <= 0 never runs out, so
// only a negative scale ends it. completed may be nil; scale may not.
func (s *Scheduler) InvokeDelayedRepeatingScaled(owner Owner, duration float64, scale func() float64, completed func()) *Task {
	if scale == nil {
		return nil
	}
	if completed == nil {
		completed = func() {}
	}
	return s.invoke(owner, completed, func(yield func(Wait) bool, fire func()) {
		remaining := duration
		for duration <= 0 || remaining > 0 {
			if !yield(NextFrame()) {
				return
			}
			k := scale()
			if k < 0 {
				break
			}
			remaining -= s.deltaTime * k
		}
		fire()
	})
}

// InvokeWaitUntil calls fn once on the first Update at which predicate
// returns true.
func (s *Scheduler) InvokeWaitUntil(owner Owner, fn func(), predicate func() bool) *Task {
	if predicate == nil {
		return nil
	}
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		if !yield(WaitUntil(predicate)) {
			return
		}
		fire()
	})
}

// InvokeWaitWhile calls fn once on the first Update at which predicate
// returns false.
func (s *Scheduler) InvokeWaitWhile(owner Owner, fn func(), predicate func() bool) *Task {
	if predicate == nil {
		return nil
	}
	return s.invoke(owner, fn, func(yield func(Wait) bool, fire func()) {
		if !yield(WaitWhile(predicate)) {
			return
		}
		fire()
	})
}
