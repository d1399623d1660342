package cadence

import (
	"iter"
	"time"

	"github.com/rs/zerolog"
)

// EventSink receives task lifecycle events. When set on a Scheduler, every
// accepted task emits a start event and exactly one terminal event.
type EventSink interface {
	EmitEvent(event TaskEvent)
}

// TaskEvent carries task lifecycle data for an EventSink.
type TaskEvent struct {
	Type   TaskEventType
	TaskID uint64
	Fired  int
	Err    error
}

// phase identifies which step function is resuming tasks.
type phase uint8

const (
	phaseUpdate phase = iota
	phaseFixed
	phaseEndOfFrame
)

// Scheduler is a single-threaded cooperative scheduler. It owns the clocks
// and the task list and resumes parked coroutines when their Wait holds.
// Drive it with Update, FixedUpdate and EndOfFrame (or Advance, which runs
// the fixed steps due for a frame and then Update).
//
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	// TimeScale multiplies dt for the scaled clock and the fixed-step
	// accumulator. 0 pauses scaled time; unscaled waits keep running.
	TimeScale float64
	// FixedDelta is the length of one fixed step in scaled seconds.
	FixedDelta float64
	// MaxFixedSteps caps fixed steps per Advance. 0 means unlimited.
	MaxFixedSteps int

	tasks    []*Task
	nextID   uint64
	stepping bool

	time              float64
	unscaledTime      float64
	fixedTime         float64
	deltaTime         float64
	unscaledDeltaTime float64
	fixedAccum        float64
	frame             uint64
	fixedFrame        uint64
	endFrame          uint64
	epoch             time.Time

	sink  EventSink
	base  zerolog.Logger
	log   zerolog.Logger
	debug bool
}

// NewScheduler creates a scheduler configured with DefaultConfig.
func NewScheduler() *Scheduler {
	return NewSchedulerFromConfig(DefaultConfig())
}

// NewSchedulerFromConfig creates a scheduler from cfg. Zero-valued fields
// fall back to DefaultConfig; a zero Epoch means time.Now.
func NewSchedulerFromConfig(cfg Config) *Scheduler {
	cfg = cfg.withDefaults()
	s := &Scheduler{
		TimeScale:     cfg.TimeScale,
		FixedDelta:    cfg.FixedDelta,
		MaxFixedSteps: cfg.MaxFixedSteps,
		epoch:         cfg.Epoch,
		base:          defaultLogger(),
	}
	if s.epoch.IsZero() {
		s.epoch = time.Now()
	}
	s.applyLogLevel(cfg.level())
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	return s
}

// --- Clocks ---

// Time returns scaled seconds elapsed across all Updates.
func (s *Scheduler) Time() float64 { return s.time }

// UnscaledTime returns real seconds elapsed across all Updates.
func (s *Scheduler) UnscaledTime() float64 { return s.unscaledTime }

// FixedTime returns scaled seconds elapsed across all fixed steps.
func (s *Scheduler) FixedTime() float64 { return s.fixedTime }

// DeltaTime returns the scaled delta of the current (or last) Update.
func (s *Scheduler) DeltaTime() float64 { return s.deltaTime }

// UnscaledDeltaTime returns the unscaled delta of the current (or last) Update.
func (s *Scheduler) UnscaledDeltaTime() float64 { return s.unscaledDeltaTime }

// Frame returns the number of Updates run so far.
func (s *Scheduler) Frame() uint64 { return s.frame }

// FixedFrame returns the number of fixed steps run so far.
func (s *Scheduler) FixedFrame() uint64 { return s.fixedFrame }

// Now returns the scheduler's wall clock: the epoch plus unscaled time.
func (s *Scheduler) Now() time.Time {
	return s.epoch.Add(time.Duration(s.unscaledTime * float64(time.Second)))
}

// SetEpoch sets the wall-clock instant that corresponds to unscaled time 0.
func (s *Scheduler) SetEpoch(t time.Time) {
	s.epoch = t
}

// SetEventSink sets the optional lifecycle event receiver.
func (s *Scheduler) SetEventSink(sink EventSink) {
	s.sink = sink
}

// --- Tasks ---

// Len returns the number of live (non-terminal) tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.state.Terminal() {
			n++
		}
	}
	return n
}

// Tasks returns a snapshot of the live tasks in start order.
func (s *Scheduler) Tasks() []*Task {
	out := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.state.Terminal() {
			out = append(out, t)
		}
	}
	return out
}

// Start runs co against owner. The coroutine executes synchronously up to
// its first yield before Start returns. Returns nil, starting nothing, when
// co is nil or owner is nil or inactive.
func (s *Scheduler) Start(owner Owner, co Coroutine) *Task {
	if co == nil {
		return nil
	}
	t := s.spawn(owner)
	if t == nil {
		return nil
	}
	s.launch(t, co)
	return t
}

// spawn allocates a task for owner, or returns nil if owner is not alive.
func (s *Scheduler) spawn(owner Owner) *Task {
	if !alive(owner) {
		return nil
	}
	s.nextID++
	t := &Task{id: s.nextID, owner: owner, state: TaskScheduled}
	t.gen, t.hasGen = generation(owner)
	return t
}

// live reports whether t's owner is still active and has not been
// deactivated since t started.
func (s *Scheduler) live(t *Task) bool {
	if !alive(t.owner) {
		return false
	}
	if t.hasGen {
		g, _ := generation(t.owner)
		return g == t.gen
	}
	return true
}

// enter panics if a step is already running. Called before any clock moves.
func (s *Scheduler) enter() {
	if s.stepping {
		panic("cadence: scheduler stepped re-entrantly")
	}
}

// launch pulls co, runs it to its first yield and registers it if it parked.
func (s *Scheduler) launch(t *Task, co Coroutine) {
	t.next, t.stop = iter.Pull(co)
	s.emit(t, TaskEventStarted)
	if s.debug {
		s.log.Debug().Uint64("task", t.id).Uint64("frame", s.frame).Msg("task started")
	}
	s.resume(t)
	if !t.state.Terminal() {
		s.tasks = append(s.tasks, t)
	}
}

// --- Stepping ---

// Update advances the frame clocks by dt real seconds (negative dt counts as
// 0) and resumes tasks parked on NextFrame, WaitSeconds, WaitSecondsRealtime,
// WaitUntil, WaitWhile and WaitTask.
func (s *Scheduler) Update(dt float64) {
	s.enter()
	if dt < 0 {
		dt = 0
	}
	s.frame++
	s.unscaledDeltaTime = dt
	s.deltaTime = dt * s.TimeScale
	s.unscaledTime += dt
	s.time += s.deltaTime
	s.step(phaseUpdate)
}

// FixedUpdate runs one fixed step and resumes tasks parked on FixedUpdate.
func (s *Scheduler) FixedUpdate() {
	s.enter()
	s.fixedFrame++
	s.fixedTime += s.FixedDelta
	s.step(phaseFixed)
}

// EndOfFrame resumes tasks parked on EndOfFrame. Call it after the frame has
// been drawn.
func (s *Scheduler) EndOfFrame() {
	s.enter()
	s.endFrame++
	s.step(phaseEndOfFrame)
}

// Advance runs the fixed steps that dt (scaled by TimeScale) makes due, up to
// MaxFixedSteps, then calls Update(dt). When the cap is hit the remaining
// accumulated time is dropped.
func (s *Scheduler) Advance(dt float64) {
	s.enter()
	if dt < 0 {
		dt = 0
	}
	if s.FixedDelta > 0 {
		s.fixedAccum += dt * s.TimeScale
		steps := 0
		for s.fixedAccum >= s.FixedDelta {
			if s.MaxFixedSteps > 0 && steps >= s.MaxFixedSteps {
				if s.debug {
					s.log.Debug().Int("steps", steps).Float64("dropped", s.fixedAccum).Msg("fixed step budget exhausted")
				}
				s.fixedAccum = 0
				break
			}
			s.fixedAccum -= s.FixedDelta
			s.FixedUpdate()
			steps++
		}
	}
	s.Update(dt)
}

// Close stops every live task as if its owner had gone away: tasks whose
// callback already fired end Done, the rest end Cancelled, and suspended
// coroutines unwind their defers. Tasks started by that cleanup code stay
// scheduled. Panics if called from inside a step.
func (s *Scheduler) Close() {
	s.enter()
	tasks := s.tasks
	s.tasks = nil
	s.stepping = true
	defer func() { s.stepping = false }()
	for _, t := range tasks {
		if !t.state.Terminal() {
			s.abandon(t)
		}
	}
	if s.debug {
		s.log.Debug().Int("tasks", len(tasks)).Msg("scheduler closed")
	}
}

// step makes one pass over the tasks that existed when the pass began.
// Tasks started during the pass wait for the next pass.
func (s *Scheduler) step(ph phase) {
	s.enter()
	s.stepping = true
	defer func() { s.stepping = false }()

	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		if t.state.Terminal() {
			continue
		}
		if !s.live(t) {
			s.abandon(t)
			continue
		}
		ok, err := s.ready(t, ph)
		if err != nil {
			s.fail(t, err)
			continue
		}
		if ok {
			s.resume(t)
		}
	}
	s.compact()
}

// ready reports whether t's Wait holds for this phase.
func (s *Scheduler) ready(t *Task, ph phase) (bool, error) {
	w := t.wait
	switch ph {
	case phaseFixed:
		return w.kind == waitFixed && s.fixedFrame > t.parkedFixed, nil
	case phaseEndOfFrame:
		return w.kind == waitEndOfFrame && s.endFrame > t.parkedEnd, nil
	}
	if s.frame <= t.parkedFrame {
		return false, nil
	}
	switch w.kind {
	case waitNextFrame:
		return true, nil
	case waitSeconds:
		return s.time >= t.resumeAt, nil
	case waitRealtime:
		return s.unscaledTime >= t.resumeAt, nil
	case waitUntil, waitWhile:
		if w.pred == nil {
			return true, nil
		}
		v, err := poll(w.pred)
		if w.kind == waitWhile {
			return !v && err == nil, err
		}
		return v, err
	case waitTask:
		return w.task.Finished(), nil
	default:
		return false, nil
	}
}

// poll evaluates pred, converting a panic into an error.
func poll(pred func() bool) (v bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return pred(), nil
}

// resume advances t to its next yield, or to completion.
func (s *Scheduler) resume(t *Task) {
	if !s.live(t) {
		s.abandon(t)
		return
	}
	t.state = TaskRunning
	w, ok, err := t.advance()
	switch {
	case err != nil:
		s.fail(t, err)
	case !ok:
		s.finish(t, TaskDone)
	default:
		s.park(t, w)
	}
}

// park records the resumption condition for w.
func (s *Scheduler) park(t *Task, w Wait) {
	t.wait = w
	t.state = TaskSuspended
	t.parkedFrame = s.frame
	t.parkedFixed = s.fixedFrame
	t.parkedEnd = s.endFrame
	switch w.kind {
	case waitSeconds:
		t.resumeAt = s.time + w.seconds
	case waitRealtime:
		t.resumeAt = s.unscaledTime + w.seconds
	}
}

// abandon stops t because its owner went away. A task whose callback already
// fired counts as done; otherwise it is cancelled.
func (s *Scheduler) abandon(t *Task) {
	if err := t.halt(); err != nil {
		s.fail(t, err)
		return
	}
	if t.fired > 0 {
		s.finish(t, TaskDone)
		return
	}
	s.finish(t, TaskCancelled)
}

// finish moves t to a terminal state and reports it.
func (s *Scheduler) finish(t *Task, state TaskState) {
	t.state = state
	_ = t.halt()
	typ := TaskEventDone
	if state == TaskCancelled {
		typ = TaskEventCancelled
	}
	s.emit(t, typ)
	if s.debug {
		s.log.Debug().Uint64("task", t.id).Str("state", state.String()).Int("fired", t.fired).Msg("task finished")
	}
}

// fail moves t to TaskFailed with err.
func (s *Scheduler) fail(t *Task, err error) {
	t.state = TaskFailed
	t.err = err
	_ = t.halt()
	s.emit(t, TaskEventFailed)
	s.log.Error().Err(err).Uint64("task", t.id).Msg("task failed")
}

func (s *Scheduler) emit(t *Task, typ TaskEventType) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(TaskEvent{Type: typ, TaskID: t.id, Fired: t.fired, Err: t.err})
}

// compact drops terminal tasks, preserving start order.
func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.state.Terminal() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
