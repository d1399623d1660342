package cadence

import "fmt"

// Task is the handle for one scheduled coroutine. It is created by the
// scheduling methods on Scheduler and is never constructed directly.
//
// There is no Cancel method: a task ends when its coroutine returns, when it
// panics, or when its Owner stops being active.
type Task struct {
	id     uint64
	owner  Owner
	gen    uint64
	hasGen bool

	next func() (Wait, bool)
	stop func()

	wait        Wait
	resumeAt    float64
	parkedFrame uint64
	parkedFixed uint64
	parkedEnd   uint64

	state TaskState
	fired int
	err   error
}

// ID returns the scheduler-unique task id.
func (t *Task) ID() uint64 {
	return t.id
}

// Owner returns the owner the task was scheduled against.
func (t *Task) Owner() Owner {
	return t.owner
}

// State returns the current lifecycle state.
func (t *Task) State() TaskState {
	return t.state
}

// Finished reports whether the task reached a terminal state. A nil task
// (the result of a rejected scheduling call) counts as finished.
func (t *Task) Finished() bool {
	return t == nil || t.state.Terminal()
}

// Fired returns how many times the task's callback has run. Only tasks
// created by the Invoke helpers count fires; Start-ed coroutines report 0.
func (t *Task) Fired() int {
	return t.fired
}

// Err returns the failure that ended the task, or nil.
func (t *Task) Err() error {
	return t.err
}

func (t *Task) String() string {
	return fmt.Sprintf("task#%d(%s)", t.id, t.state)
}

// advance resumes the pulled coroutine once, converting a panic into an error.
func (t *Task) advance() (w Wait, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	w, ok = t.next()
	return w, ok, nil
}

// halt stops the pulled coroutine, converting a panic raised by its cleanup
// into an error.
func (t *Task) halt() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	if t.stop != nil {
		t.stop()
	}
	return nil
}

// PanicError wraps a value recovered from a panicking coroutine or predicate.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("cadence: coroutine panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
