package main

import (
	"sort"

	"github.com/phanxgames/cadence"
	"github.com/rs/zerolog"
)

// firing is one callback run recorded on the timeline.
type firing struct {
	Label string
	Frame uint64
	Time  float64
}

// report is the outcome of a simulation.
type report struct {
	Firings []firing
	States  map[string]cadence.TaskState
	Events  map[cadence.TaskEventType]int
}

// eventCounter tallies task lifecycle events and logs failures.
type eventCounter struct {
	counts map[cadence.TaskEventType]int
	log    zerolog.Logger
}

func (c *eventCounter) EmitEvent(e cadence.TaskEvent) {
	c.counts[e.Type]++
	if e.Type == cadence.TaskEventFailed {
		c.log.Error().Err(e.Err).Uint64("task", e.TaskID).Msg("task failed")
	}
}

// simulate builds sc on a fresh scene and steps it frames times by dt,
// ending every frame as a drawn frame would. Each firing is logged to log
// at info level.
func simulate(sc *scenario, cfg cadence.Config, dt float64, frames int, log zerolog.Logger) (*report, error) {
	scene := cadence.NewSceneFromConfig(cfg)
	sch := scene.Scheduler()
	schedLog := log.With().Str("component", "cadence").Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		schedLog = schedLog.Level(lvl)
	}
	sch.SetLogger(schedLog)

	counter := &eventCounter{counts: map[cadence.TaskEventType]int{}, log: log}
	sch.SetEventSink(counter)

	rep := &report{States: map[string]cadence.TaskState{}}
	tasks, err := sc.build(scene, func(label string) {
		f := firing{Label: label, Frame: sch.Frame(), Time: sch.Time()}
		rep.Firings = append(rep.Firings, f)
		log.Info().Str("task", label).Uint64("frame", f.Frame).Float64("time", f.Time).Msg("fire")
	})
	if err != nil {
		return nil, err
	}
	if sc.runner != nil {
		scene.SetTestRunner(sc.runner)
	}

	for i := 0; i < frames; i++ {
		scene.Step(dt)
		sch.EndOfFrame()
	}

	labels := make([]string, 0, len(tasks))
	for label := range tasks {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		task := tasks[label]
		if task == nil {
			log.Warn().Str("task", label).Msg("rejected: owner inactive at start")
			continue
		}
		rep.States[label] = task.State()
		log.Info().Str("task", label).Str("state", task.State().String()).Int("fired", task.Fired()).Msg("summary")
	}
	rep.Events = counter.counts
	return rep, nil
}
