package cadence

import "iter"

// Coroutine is a suspendable sequence. Each yielded Wait parks the coroutine
// until the condition holds; a false return from yield means the scheduler
// abandoned the task and the coroutine must return.
//
//	func blink(n *cadence.Node) cadence.Coroutine {
//		return func(yield func(cadence.Wait) bool) {
//			for {
//				n.SetActive(!n.ActiveSelf())
//				if !yield(cadence.WaitSeconds(0.5)) {
//					return
//				}
//			}
//		}
//	}
type Coroutine = iter.Seq[Wait]

// waitKind selects the resumption rule for a parked task.
type waitKind uint8

const (
	waitNextFrame  waitKind = iota // next Update (zero Wait)
	waitSeconds                    // scaled time reached
	waitRealtime                   // unscaled time reached
	waitEndOfFrame                 // next EndOfFrame
	waitFixed                      // next FixedUpdate
	waitUntil                      // predicate true, polled per Update
	waitWhile                      // predicate false, polled per Update
	waitTask                       // another task finished
)

// Wait is a suspension condition yielded by a Coroutine. The zero Wait is
// NextFrame.
type Wait struct {
	kind    waitKind
	seconds float64
	pred    func() bool
	task    *Task
}

// NextFrame resumes on the next Update.
func NextFrame() Wait {
	return Wait{kind: waitNextFrame}
}

// WaitSeconds resumes on the first Update at which scaled time has advanced
// by at least d seconds. Non-positive d behaves like NextFrame.
func WaitSeconds(d float64) Wait {
	return Wait{kind: waitSeconds, seconds: d}
}

// WaitSecondsRealtime is WaitSeconds measured on the unscaled clock, so it
// keeps running while TimeScale is 0.
func WaitSecondsRealtime(d float64) Wait {
	return Wait{kind: waitRealtime, seconds: d}
}

// EndOfFrame resumes on the next EndOfFrame, after the frame has been drawn.
func EndOfFrame() Wait {
	return Wait{kind: waitEndOfFrame}
}

// FixedUpdate resumes on the next fixed step.
func FixedUpdate() Wait {
	return Wait{kind: waitFixed}
}

// WaitUntil resumes on the first Update at which pred returns true. The
// predicate is first polled on the Update after the yield. A nil pred
// resumes on the next Update.
func WaitUntil(pred func() bool) Wait {
	return Wait{kind: waitUntil, pred: pred}
}

// WaitWhile resumes on the first Update at which pred returns false. A nil
// pred resumes on the next Update.
func WaitWhile(pred func() bool) Wait {
	return Wait{kind: waitWhile, pred: pred}
}

// WaitTask resumes on the first Update after t has finished. A nil task
// resumes on the next Update.
func WaitTask(t *Task) Wait {
	return Wait{kind: waitTask, task: t}
}

func (k waitKind) String() string {
	switch k {
	case waitNextFrame:
		return "next-frame"
	case waitSeconds:
		return "seconds"
	case waitRealtime:
		return "seconds-realtime"
	case waitEndOfFrame:
		return "end-of-frame"
	case waitFixed:
		return "fixed-update"
	case waitUntil:
		return "until"
	case waitWhile:
		return "while"
	case waitTask:
		return "task"
	default:
		return "unknown"
	}
}
