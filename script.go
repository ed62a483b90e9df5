package garland

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action   string  `json:"action"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Pinch    bool    `json:"pinch,omitempty"`
	Openness float64 `json:"openness,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Key      string  `json:"key,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a scripted sequence of hand samples and key presses frame by
// frame, for tests and headless demos. It doubles as a [VisionSource]: wire
// it into an App and call [Script.Step] once per frame before [App.Step].
//
// Supported actions: "hand" (synthesize a detection at x/y with the given
// pinch flag and openness, held for frames), "none" (no detection for
// frames), "key" (dispatch a key, currently "heart"), "photo" (upload one
// photo), and "wait" (repeat the previous hand state for frames).
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	sample    HandSample
	hasSample bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*Script, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	return &Script{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *Script) Done() bool {
	return r.done
}

// Sample implements [VisionSource] with the hand state of the current step.
func (r *Script) Sample() (HandSample, bool) {
	return r.sample, r.hasSample
}

// Step advances the script by one frame, updating the hand state served by
// Sample and dispatching key/photo actions to the app. Call before App.Step.
func (r *Script) Step(app *App) {
	if r.done {
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
	case "hand":
		r.sample = SynthesizeHand(st.X, st.Y, st.Pinch, st.Openness)
		r.hasSample = true
		if st.Frames > 1 {
			r.waitCount = st.Frames - 1
		}
	case "none":
		r.hasSample = false
		if st.Frames > 1 {
			r.waitCount = st.Frames - 1
		}
	case "key":
		if st.Key == "heart" && app != nil {
			app.ToggleHeart()
		}
	case "photo":
		if app != nil {
			app.AddPhoto()
		}
	case "wait":
		if st.Frames > 1 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// SynthesizeHand builds a plausible landmark set for a palm centered at the
// normalized coordinate (x, y). pinch collapses the thumb and index tips
// onto each other; openness sets the fingertip-to-wrist spread directly.
func SynthesizeHand(x, y float64, pinch bool, openness float64) HandSample {
	h := HandSample{
		Palm:  Landmark{x, y},
		Wrist: Landmark{x, y + 0.08},
	}
	for i := range h.Fingertips {
		// Fan the four fingertips above the wrist at the requested spread.
		dx := (float64(i) - 1.5) * 0.02
		h.Fingertips[i] = Landmark{h.Wrist.X + dx, h.Wrist.Y - openness}
	}
	h.IndexTip = h.Fingertips[0]
	if pinch {
		h.ThumbTip = h.IndexTip
	} else {
		h.ThumbTip = Landmark{h.IndexTip.X - 0.12, h.IndexTip.Y + 0.05}
	}
	return h
}
