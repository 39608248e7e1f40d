package protoplay

import (
	"reflect"
	"testing"
)

func TestLoadTestScriptErrors(t *testing.T) {
	for name, script := range map[string]string{
		"invalid json":        `{`,
		"no steps":            `{"steps": []}`,
		"unknown action":      `{"steps": [{"action": "dance"}]}`,
		"clickNode with none": `{"steps": [{"action": "clickNode"}]}`,
	} {
		if _, err := LoadTestScript([]byte(script)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTestRunnerWaitFrames(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "end"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	s.SetTestRunner(r)
	if s.TestRunner() != r {
		t.Error("TestRunner() should return the attached runner")
	}
	var labels []string
	s.OnScreenshot = func(l string) { labels = append(labels, l) }

	updates := 0
	for !r.Done() && updates < 20 {
		s.Update(frameDT)
		updates++
	}
	if updates != 4 {
		t.Errorf("updates = %d, want 4 (3 waiting, 1 screenshot)", updates)
	}
	if !reflect.DeepEqual(labels, []string{"end"}) {
		t.Errorf("labels = %v", labels)
	}
}

func TestTestRunnerWalkthrough(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "start"},
		{"action": "clickNode", "node": "v-default"},
		{"action": "wait", "seconds": 0.5},
		{"action": "screenshot", "label": "pressed"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	if err := s.Load(loadPrototype(t)); err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)
	var labels []string
	var activeAtShot []string
	inst := s.Engine().Variants().Find("btn")
	s.OnScreenshot = func(l string) {
		labels = append(labels, l)
		activeAtShot = append(activeAtShot, inst.ActiveVariant)
	}

	for i := 0; i < 200 && !r.Done(); i++ {
		s.Update(frameDT)
	}
	if !r.Done() {
		t.Fatal("runner should finish")
	}
	if !reflect.DeepEqual(labels, []string{"start", "pressed"}) {
		t.Errorf("labels = %v", labels)
	}
	if !reflect.DeepEqual(activeAtShot, []string{"v-default", "v-pressed"}) {
		t.Errorf("active at screenshots = %v", activeAtShot)
	}
}

func TestTestRunnerMissingNodeContinues(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "clickNode", "node": "ghost"},
		{"action": "click", "x": 1, "y": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	s.SetTestRunner(r)
	for i := 0; i < 10 && !r.Done(); i++ {
		s.Update(frameDT)
	}
	if !r.Done() {
		t.Error("runner should skip the missing node and finish")
	}
}
