package garland

import "math"

// Landmark is a single tracked hand keypoint in normalized screen space,
// (0,0) top-left to (1,1) bottom-right.
type Landmark struct {
	X, Y float64
}

// HandSample is one hand's landmark set for one video frame. All coordinates
// are normalized; the engine never sees pixels.
type HandSample struct {
	Wrist    Landmark
	ThumbTip Landmark
	IndexTip Landmark
	// Fingertips are the index, middle, ring, and pinky tips, in that order.
	Fingertips [4]Landmark
	Palm       Landmark
}

// PinchDistance returns the normalized thumb-tip to index-tip distance. Small
// values mean the fingers are pinched together.
func (h HandSample) PinchDistance() float64 {
	dx := h.ThumbTip.X - h.IndexTip.X
	dy := h.ThumbTip.Y - h.IndexTip.Y
	return dist(dx, dy)
}

// Openness returns the average normalized distance from the four fingertips
// to the wrist. An open hand reads high, a fist reads low.
func (h HandSample) Openness() float64 {
	sum := 0.0
	for _, f := range h.Fingertips {
		sum += dist(f.X-h.Wrist.X, f.Y-h.Wrist.Y)
	}
	return sum / 4
}

func dist(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}

// VisionSource supplies the latest hand detection, polled once per frame.
// Implementations must never block the frame loop: when no new video frame or
// no hand is available, return ok = false and the engine carries its previous
// hand state forward.
//
// A source that fails to initialize is represented by passing nil to [New];
// the engine logs one warning and runs keyboard-only for the session.
type VisionSource interface {
	Sample() (sample HandSample, ok bool)
}
