package trail

import (
	"encoding/json"
	"fmt"
)

const (
	actionEnter      = "enter"
	actionMove       = "move"
	actionPath       = "path"
	actionLeave      = "leave"
	actionWait       = "wait"
	actionScreenshot = "screenshot"
)

// scriptStep is one entry of a pointer script. Which fields matter depends
// on Action: enter and move read X/Y, path reads From*/To*/Frames, wait reads
// Frames, screenshot reads Label.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// TestRunner replays a pointer script against an Effect, one step per frame.
// A step is not taken while injected input is still queued, so a path
// finishes before the next step starts.
type TestRunner struct {
	steps []scriptStep
	next  int
	hold  int // frames left in the current wait
	done  bool

	// OnScreenshot receives the label of each screenshot step. Hosts that
	// cannot capture frames leave it nil and the step is a no-op.
	OnScreenshot func(label string)
}

// LoadTestScript parses a script of the form {"steps": [...]}. Unknown
// actions and empty scripts are rejected.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("load test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("load test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case actionEnter, actionMove, actionPath, actionLeave, actionWait, actionScreenshot:
		default:
			return nil, fmt.Errorf("load test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the effect; it steps at the top of every
// Update. Pass nil to detach.
func (e *Effect) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether the script has run to the end.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(e *Effect) {
	switch {
	case r.done, len(e.injectQueue) > 0:
		return
	case r.hold > 0:
		r.hold--
		return
	case r.next == len(r.steps):
		r.done = true
		return
	}

	st := &r.steps[r.next]
	r.next++
	r.apply(e, st)

	if r.next == len(r.steps) && r.hold == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) apply(e *Effect, st *scriptStep) {
	switch st.Action {
	case actionEnter:
		e.InjectEnter(st.X, st.Y)
	case actionMove:
		e.InjectMove(st.X, st.Y)
	case actionPath:
		e.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case actionLeave:
		e.InjectLeave()
	case actionWait:
		// The frame the wait step runs on counts toward it.
		r.hold = max(st.Frames-1, 0)
	case actionScreenshot:
		if r.OnScreenshot != nil {
			r.OnScreenshot(st.Label)
		}
	}
}
