package protoplay

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Node    string  `json:"node,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected clicks, waits and screenshots across
// updates for automated walkthroughs of a prototype. Attach to a Scene via
// SetTestRunner.
//
// Actions: "click" at x/y, "clickNode" on a node id, "wait" for a number
// of frames or seconds, and "screenshot" with a label.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	waitTime  float64
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "wait", "screenshot":
		case "clickNode":
			if st.Node == "" {
				return nil, fmt.Errorf("parse test script: step %d: clickNode without node", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// TestRunner returns the attached runner, or nil.
func (s *Scene) TestRunner() *TestRunner {
	return s.testRunner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one update of dt seconds.
func (r *TestRunner) step(s *Scene, dt float64) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.waitTime > 0 {
		r.waitTime -= dt
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "clickNode":
		if !s.InjectClickNode(st.Node) {
			Logger().Warn("test script: node not found", "node", st.Node)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		if st.Seconds > 0 {
			r.waitTime = st.Seconds
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.waitTime <= 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
