package cadence

import "iter"

// FallibleCoroutine is a coroutine that can end with an error.
type FallibleCoroutine func(yield func(Wait) bool) error

// RunThrowing wraps co so that a panic raised while advancing it stops the
// sequence and is delivered to onError instead of failing the task.
// onSuccess runs once if co returns normally. Neither callback runs if the
// wrapper itself is abandoned (owner teardown). Either callback may be nil;
// a nil co yields a nil Coroutine, which Start rejects.
func RunThrowing(co Coroutine, onSuccess func(), onError func(error)) Coroutine {
	if co == nil {
		return nil
	}
	return func(yield func(Wait) bool) {
		next, stop := iter.Pull(co)
		defer stop()
		for {
			w, ok, err := pullSafe(next)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				return
			}
			if !ok {
				break
			}
			if !yield(w) {
				return
			}
		}
		if onSuccess != nil {
			onSuccess()
		}
	}
}

// RunFallible is RunThrowing for coroutines that report failure by returning
// an error. Both returned errors and panics reach onError.
func RunFallible(co FallibleCoroutine, onSuccess func(), onError func(error)) Coroutine {
	if co == nil {
		return nil
	}
	return func(yield func(Wait) bool) {
		var failure error
		inner := func(y func(Wait) bool) {
			failure = co(y)
		}
		RunThrowing(inner, func() {
			if failure != nil {
				if onError != nil {
					onError(failure)
				}
				return
			}
			if onSuccess != nil {
				onSuccess()
			}
		}, onError)(yield)
	}
}

// StartThrowing starts co under RunThrowing against owner. Returns nil when
// co is nil or owner is nil or inactive.
func (s *Scheduler) StartThrowing(owner Owner, co Coroutine, onSuccess func(), onError func(error)) *Task {
	return s.Start(owner, RunThrowing(co, onSuccess, onError))
}

// StartFallible starts co under RunFallible against owner.
func (s *Scheduler) StartFallible(owner Owner, co FallibleCoroutine, onSuccess func(), onError func(error)) *Task {
	return s.Start(owner, RunFallible(co, onSuccess, onError))
}

// pullSafe calls next, converting a panic into an error.
func pullSafe(next func() (Wait, bool)) (w Wait, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	w, ok = next()
	return w, ok, nil
}
