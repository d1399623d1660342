package cadence

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Used as a tween target and as the scene clear color.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA, clamping each component.
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	a := clamp(c.A)
	return color.RGBA{
		R: uint8(clamp(c.R)*a*255 + 0.5),
		G: uint8(clamp(c.G)*a*255 + 0.5),
		B: uint8(clamp(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used as a tween target.
type Vec2 struct {
	X, Y float64
}

// TaskState is the lifecycle state of a scheduled Task.
type TaskState uint8

const (
	TaskScheduled TaskState = iota // created, coroutine not yet entered
	TaskRunning                    // coroutine is executing (callbacks fire here)
	TaskSuspended                  // parked on a Wait
	TaskDone                       // coroutine returned, or a fired task was torn down by its owner
	TaskCancelled                  // owner went inactive before the callback fired
	TaskFailed                     // coroutine or predicate panicked
)

var taskStateNames = [...]string{
	TaskScheduled: "scheduled",
	TaskRunning:   "running",
	TaskSuspended: "suspended",
	TaskDone:      "done",
	TaskCancelled: "cancelled",
	TaskFailed:    "failed",
}

func (s TaskState) String() string {
	if int(s) < len(taskStateNames) {
		return taskStateNames[s]
	}
	return "unknown"
}

// Terminal reports whether the state is final.
func (s TaskState) Terminal() bool {
	return s == TaskDone || s == TaskCancelled || s == TaskFailed
}

// TaskEventType identifies a kind of task lifecycle event.
type TaskEventType uint8

const (
	TaskEventStarted   TaskEventType = iota // fires when a task is accepted by the scheduler
	TaskEventDone                           // fires when a task finishes normally
	TaskEventCancelled                      // fires when a task is abandoned before firing
	TaskEventFailed                         // fires when a task panics
)
