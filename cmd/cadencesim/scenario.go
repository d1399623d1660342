package main

import (
	"fmt"

	"github.com/phanxgames/cadence"
	"gopkg.in/yaml.v3"
)

// scenario is a headless simulation script:
//
//	nodes:
//	  - name: hero
//	  - name: sword
//	    parent: hero
//	tasks:
//	  - label: blink
//	    kind: repeating
//	    owner: hero
//	    delay: 1
//	    interval: 0.5
//	steps:
//	  - action: wait
//	    frames: 120
//	  - action: dispose
//	    label: hero
//
// steps use the cadence test script format.
type scenario struct {
	Nodes []nodeSpec  `yaml:"nodes"`
	Tasks []taskSpec  `yaml:"tasks"`
	Steps []yaml.Node `yaml:"steps"`

	runner *cadence.TestRunner
}

type nodeSpec struct {
	Name     string `yaml:"name"`
	Parent   string `yaml:"parent"`
	Inactive bool   `yaml:"inactive"`
}

type taskSpec struct {
	Label    string  `yaml:"label"`
	Kind     string  `yaml:"kind"`
	Owner    string  `yaml:"owner"`
	Delay    float64 `yaml:"delay"`
	Interval float64 `yaml:"interval"`
	Duration float64 `yaml:"duration"`
	Scale    float64 `yaml:"scale"`
	Frames   int     `yaml:"frames"`
	Cron     string  `yaml:"cron"`
}

var taskKinds = map[string]bool{
	"delayed":            true,
	"delayed_unscaled":   true,
	"repeating":          true,
	"repeating_unscaled": true,
	"end_of_frame":       true,
	"fixed_update":       true,
	"skip_frames":        true,
	"skip_fixed_frames":  true,
	"scaled":             true,
	"until_frame":        true,
	"schedule":           true,
}

// loadScenario parses and statically checks a scenario.
func loadScenario(data []byte) (*scenario, error) {
	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	if len(sc.Steps) > 0 {
		runner, err := cadence.LoadTestScript(data)
		if err != nil {
			return nil, fmt.Errorf("scenario steps: %w", err)
		}
		sc.runner = runner
	}
	return &sc, nil
}

func (sc *scenario) validate() error {
	if len(sc.Tasks) == 0 {
		return fmt.Errorf("scenario: no tasks")
	}
	names := map[string]bool{"root": true}
	for i, n := range sc.Nodes {
		if n.Name == "" {
			return fmt.Errorf("scenario: node %d: missing name", i)
		}
		if names[n.Name] {
			return fmt.Errorf("scenario: node %d: duplicate name %q", i, n.Name)
		}
		if n.Parent != "" && !names[n.Parent] {
			return fmt.Errorf("scenario: node %q: parent %q must be declared before it", n.Name, n.Parent)
		}
		names[n.Name] = true
	}
	labels := map[string]bool{}
	for i, t := range sc.Tasks {
		if t.Label == "" {
			return fmt.Errorf("scenario: task %d: missing label", i)
		}
		if labels[t.Label] {
			return fmt.Errorf("scenario: task %d: duplicate label %q", i, t.Label)
		}
		labels[t.Label] = true
		if !taskKinds[t.Kind] {
			return fmt.Errorf("scenario: task %q: unknown kind %q", t.Label, t.Kind)
		}
		if t.Owner != "" && !names[t.Owner] {
			return fmt.Errorf("scenario: task %q: unknown owner %q", t.Label, t.Owner)
		}
		if t.Kind == "schedule" && t.Cron == "" {
			return fmt.Errorf("scenario: task %q: schedule needs cron", t.Label)
		}
	}
	return nil
}

// build creates the scenario's nodes under scene's root and schedules its
// tasks. fire is called with the task label every time a callback runs.
// Tasks whose owner is inactive at build time get a nil handle.
func (sc *scenario) build(scene *cadence.Scene, fire func(label string)) (map[string]*cadence.Task, error) {
	nodes := map[string]*cadence.Node{"root": scene.Root()}
	for _, ns := range sc.Nodes {
		n := cadence.NewNode(ns.Name)
		parent := scene.Root()
		if ns.Parent != "" {
			parent = nodes[ns.Parent]
		}
		parent.AddChild(n)
		if ns.Inactive {
			n.SetActive(false)
		}
		nodes[ns.Name] = n
	}

	sch := scene.Scheduler()
	tasks := make(map[string]*cadence.Task, len(sc.Tasks))
	for _, ts := range sc.Tasks {
		owner := scene.Root()
		if ts.Owner != "" {
			owner = nodes[ts.Owner]
		}
		fn := func() { fire(ts.Label) }

		var task *cadence.Task
		switch ts.Kind {
		case "delayed":
			task = sch.InvokeDelayed(owner, fn, ts.Delay)
		case "delayed_unscaled":
			task = sch.InvokeDelayedUnscaled(owner, fn, ts.Delay)
		case "repeating":
			task = sch.InvokeDelayedRepeating(owner, fn, ts.Delay, ts.Interval)
		case "repeating_unscaled":
			task = sch.InvokeDelayedRepeatingUnscaled(owner, fn, ts.Delay, ts.Interval)
		case "end_of_frame":
			task = sch.InvokeWaitEndOfFrame(owner, fn)
		case "fixed_update":
			task = sch.InvokeWaitForFixedUpdate(owner, fn)
		case "skip_frames":
			task = sch.InvokeSkipFrames(owner, fn, ts.Frames)
		case "skip_fixed_frames":
			task = sch.InvokeSkipFixedUpdateFrames(owner, fn, ts.Frames)
		case "scaled":
			scale := ts.Scale
			task = sch.InvokeDelayedRepeatingScaled(owner, ts.Duration, func() float64 { return scale }, fn)
		case "until_frame":
			target := uint64(max(ts.Frames, 0))
			task = sch.InvokeWaitUntil(owner, fn, func() bool { return sch.Frame() >= target })
		case "schedule":
			var err error
			task, err = sch.InvokeSchedule(owner, fn, ts.Cron)
			if err != nil {
				return nil, fmt.Errorf("task %q: %w", ts.Label, err)
			}
		}
		tasks[ts.Label] = task
	}
	return tasks, nil
}
