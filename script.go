package tinsel

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action  string  `json:"action"`
	Gesture string  `json:"gesture,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	WristX  float64 `json:"wristX,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner feeds a choreographed gesture sequence into a scene frame by
// frame, for automated testing and demo recording without a camera. Attach
// to a Scene via SetScriptRunner; each Update consumes one frame of the
// script and calls Observe with a synthetic hand matching the named gesture.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	holdCount int
	current   *Landmarks
	done      bool
}

// LoadGestureScript parses a JSON gesture script. Supported actions:
//
//	{"action": "gesture", "gesture": "fist", "frames": 5, "wristX": 0.5}
//	{"action": "wait", "frames": 30}
//	{"action": "take_photo"}
//	{"action": "finish_loading"}
//
// Gesture names match Symbol strings (fist, open_palm, thumbs_up, pinch,
// l_shape, none).
func LoadGestureScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for _, st := range script.Steps {
		if st.Action == "gesture" {
			if _, err := SyntheticHand(st.Gesture, st.WristX); err != nil {
				return nil, err
			}
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the scene. The runner's step
// method is called at the top of Scene.Update each frame.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.scriptRunner = runner
}

// Done reports whether every step in the script has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame, observing one gesture frame into
// the scene. Called from Scene.Update.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	if r.holdCount > 0 {
		r.holdCount--
		s.Observe(r.current)
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "gesture":
		hand, err := SyntheticHand(st.Gesture, st.WristX)
		if err != nil {
			// validated at load time; unreachable in practice
			r.done = true
			return
		}
		r.current = hand
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		r.holdCount = frames - 1 // this frame counts as one
		s.Observe(hand)
	case "wait":
		r.current = nil
		if st.Frames > 1 {
			r.holdCount = st.Frames - 1
		}
		s.Observe(nil)
	case "take_photo":
		s.TakePhoto()
	case "finish_loading":
		s.FinishLoading()
	}

	if r.cursor >= len(r.steps) && r.holdCount == 0 {
		r.done = true
	}
}

// SyntheticHand builds a landmark set that classifies as the named gesture,
// with the wrist at the given horizontal position. Used by the script
// runner and tests; returns an error for unknown gesture names.
func SyntheticHand(name string, wristX float64) (*Landmarks, error) {
	if wristX == 0 {
		wristX = 0.5
	}
	switch name {
	case "none", "":
		return nil, nil
	case "fist":
		return handFist(wristX), nil
	case "open_palm":
		return handOpenPalm(wristX), nil
	case "thumbs_up":
		return handThumbsUp(wristX), nil
	case "pinch":
		return handPinch(wristX), nil
	case "l_shape":
		return handLShape(wristX), nil
	default:
		return nil, fmt.Errorf("unknown gesture %q", name)
	}
}
