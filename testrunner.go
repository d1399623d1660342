package cadence

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `yaml:"action" json:"action"`
	Label   string  `yaml:"label,omitempty" json:"label,omitempty"`
	Frames  int     `yaml:"frames,omitempty" json:"frames,omitempty"`
	Value   float64 `yaml:"value,omitempty" json:"value,omitempty"`
	Seconds float64 `yaml:"seconds,omitempty" json:"seconds,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps" json:"steps"`
}

var knownActions = map[string]bool{
	"wait":       true,
	"timeScale":  true,
	"hitch":      true,
	"activate":   true,
	"deactivate": true,
	"dispose":    true,
	"log":        true,
}

// TestRunner sequences time-scale changes, frame hitches and owner lifecycle
// changes across frames for automated scheduling tests. Attach to a Scene via
// SetTestRunner.
//
// Actions:
//
//	wait        frames: hold for N frames (this frame counts as one)
//	timeScale   value:  set the scheduler's TimeScale
//	hitch       seconds: make the next frame that long
//	activate    label:  SetActive(true) on the named node
//	deactivate  label:  SetActive(false) on the named node
//	dispose     label:  Dispose the named node
//	log         label:  log scheduler clocks and task count
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML (or JSON) test script and returns a TestRunner
// ready to be attached to a Scene via SetTestRunner.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Step before the scheduler advances.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Step.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Let a queued hitch play out before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "timeScale":
		s.scheduler.TimeScale = st.Value
	case "hitch":
		s.InjectHitch(st.Seconds)
	case "activate", "deactivate", "dispose":
		n := s.root.FindChild(st.Label)
		if n == nil {
			s.scheduler.log.Warn().Str("label", st.Label).Str("action", st.Action).Msg("test runner: node not found")
			break
		}
		switch st.Action {
		case "activate":
			n.SetActive(true)
		case "deactivate":
			n.SetActive(false)
		default:
			n.Dispose()
		}
	case "log":
		sch := s.scheduler
		sch.log.Info().
			Str("label", st.Label).
			Uint64("frame", sch.Frame()).
			Float64("time", sch.Time()).
			Float64("unscaled", sch.UnscaledTime()).
			Int("tasks", sch.Len()).
			Msg("test runner")
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
