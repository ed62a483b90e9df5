package garland

import "math/rand/v2"

// GestureConfig holds the gesture recognition thresholds.
type GestureConfig struct {
	// PinchThreshold is the normalized thumb-to-index distance below which
	// the hand counts as pinching.
	PinchThreshold float64
	// OpenThreshold is the openness above which an open hand scatters the
	// tree; ClosedThreshold the openness below which a fist reassembles it.
	// The gap between them is hysteresis.
	OpenThreshold   float64
	ClosedThreshold float64
	// PointerRate is the per-frame smoothing fraction of the screen-space
	// pointer indicator.
	PointerRate float64
}

// DefaultGestureConfig returns the stock thresholds.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		PinchThreshold:  0.06,
		OpenThreshold:   0.42,
		ClosedThreshold: 0.2,
		PointerRate:     0.3,
	}
}

// Machine decides mode transitions, focus selection, and the pointer
// indicator from per-frame hand samples and keyboard events. Keyboard events
// are processed independently and stay available when no hand is ever
// detected.
//
// All state lives on the Machine and is only touched from the frame loop.
type Machine struct {
	cfg    GestureConfig
	store  *Store
	picker *Picker
	rng    *rand.Rand

	mode    Mode
	prior   Mode // mode to restore when focus exits
	focused *Particle
	hovered *Particle

	wasPinching bool
	handVisible bool
	pointer     Landmark
	pointerInit bool

	photosBuf []*Particle
}

// NewMachine returns a Machine starting in [ModeTree]. Random focus selection
// (pinching with nothing hovered) draws from rng.
func NewMachine(cfg GestureConfig, store *Store, picker *Picker, rng *rand.Rand) *Machine {
	return &Machine{
		cfg:    cfg,
		store:  store,
		picker: picker,
		rng:    rng,
		mode:   ModeTree,
	}
}

// Mode returns the active layout mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Focused returns the current focus target, or nil. At most one particle is
// focused at a time and it is always a photo.
func (m *Machine) Focused() *Particle {
	return m.focused
}

// Hovered returns the photo particle under the pointer this frame, or nil.
func (m *Machine) Hovered() *Particle {
	return m.hovered
}

// HandVisible reports whether the last frame carried a hand detection.
func (m *Machine) HandVisible() bool {
	return m.handVisible
}

// Pointer returns the smoothed screen-space cursor, whether it should be
// shown, and whether it is locked (focus active).
func (m *Machine) Pointer() (pos Landmark, visible, locked bool) {
	return m.pointer, m.handVisible, m.mode == ModeFocus
}

// ToggleHeart handles the keyboard heart key. The toggle only swaps between
// Heart and Tree; an active Scatter or Focus ignores it. This mirrors the
// established scene behavior and is asserted by tests, surprising as it is.
// Returns true when the mode changed.
func (m *Machine) ToggleHeart() bool {
	switch m.mode {
	case ModeHeart:
		m.mode = ModeTree
		return true
	case ModeTree:
		m.mode = ModeHeart
		return true
	}
	return false
}

// Advance consumes one frame of hand input. ok is false when the vision
// source had no frame or no hand; the mode is left unchanged, hover clears,
// and the pointer hides. Returns true when the mode or focus target changed,
// which obliges the caller to recompute the layout before integrating.
func (m *Machine) Advance(sample HandSample, ok bool) bool {
	if !ok {
		m.handVisible = false
		m.hovered = nil
		return false
	}
	m.handVisible = true

	// Smooth the pointer toward the palm center; snap on first detection.
	if !m.pointerInit {
		m.pointer = sample.Palm
		m.pointerInit = true
	} else {
		m.pointer.X = step(m.pointer.X, sample.Palm.X, m.cfg.PointerRate)
		m.pointer.Y = step(m.pointer.Y, sample.Palm.Y, m.cfg.PointerRate)
	}

	// Hover re-evaluates every frame regardless of mode.
	m.hovered = m.picker.Pick(m.pointer.X, m.pointer.Y)

	changed := false

	// Pinch edge: react only to the transition into the pinch, so a pinch
	// held across frames triggers exactly once.
	pinching := sample.PinchDistance() < m.cfg.PinchThreshold
	if pinching && !m.wasPinching {
		changed = m.onPinch()
	}
	m.wasPinching = pinching

	// Openness transitions apply only between Tree and Scatter; Heart and
	// Focus are left alone by this signal.
	openness := sample.Openness()
	switch {
	case m.mode == ModeScatter && openness < m.cfg.ClosedThreshold:
		m.mode = ModeTree
		changed = true
	case m.mode == ModeTree && openness > m.cfg.OpenThreshold:
		m.mode = ModeScatter
		changed = true
	}

	return changed
}

// onPinch enters or exits focus. Returns true when the mode changed.
func (m *Machine) onPinch() bool {
	if m.mode == ModeFocus {
		m.mode = m.prior
		m.focused = nil
		return true
	}

	target := m.hovered
	if target == nil {
		m.photosBuf = m.store.Photos(m.photosBuf[:0])
		if len(m.photosBuf) == 0 {
			// No photos in the scene at all: pinching does nothing.
			return false
		}
		target = m.photosBuf[m.rng.IntN(len(m.photosBuf))]
	}

	m.prior = m.mode
	m.mode = ModeFocus
	m.focused = target
	return true
}
