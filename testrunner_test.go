package trail

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "enter", "x": 10, "y": 20},
			{"action": "path", "fromX": 0, "fromY": 0, "toX": 300, "toY": 0, "frames": 3},
			{"action": "wait", "frames": 3},
			{"action": "leave"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].X != 10 || runner.steps[1].Y != 20 {
		t.Error("step 1 mismatch")
	}
	if st := runner.steps[2]; st.ToX != 300 || st.Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty steps", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerDrivesEffect(t *testing.T) {
	e := newTestEffect(t, []ImageRef{"A"}, DefaultConfig())
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "enter", "x": 0, "y": 0},
		{"action": "move", "x": 200, "y": 0},
		{"action": "wait", "frames": 2},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var shots []string
	runner.OnScreenshot = func(label string) { shots = append(shots, label) }
	e.SetTestRunner(runner)

	// Frame 1: enter, frame 2: move, frames 3-4: wait, frame 5: screenshot.
	for i := 0; i < 4; i++ {
		e.Update(1.0 / 60)
	}
	if e.Stats().Stamps != 1 {
		t.Errorf("stamps = %d, want 1", e.Stats().Stamps)
	}
	if len(shots) != 0 || runner.Done() {
		t.Fatal("screenshot should wait for the wait step")
	}
	e.Update(1.0 / 60)
	if len(shots) != 1 || shots[0] != "after" {
		t.Errorf("shots = %v", shots)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerWaitsForPath(t *testing.T) {
	e := newTestEffect(t, []ImageRef{"A", "B"}, DefaultConfig())
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "enter", "x": 0, "y": 0},
		{"action": "path", "fromX": 0, "fromY": 0, "toX": 600, "toY": 0, "frames": 4},
		{"action": "leave"}
	]}`))
	e.SetTestRunner(runner)
	for i := 0; i < 5; i++ {
		e.Update(1.0 / 60)
	}
	if !e.Gate().Armed() {
		t.Fatal("leave should not run before the path drains")
	}
	for i := 0; i < 2; i++ {
		e.Update(1.0 / 60)
	}
	if e.Gate().Armed() || !runner.Done() {
		t.Error("leave should run once the path finishes")
	}
	if e.Stats().Stamps != 4 {
		t.Errorf("stamps = %d, want 4", e.Stats().Stamps)
	}
}
