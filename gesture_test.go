package garland

import "testing"

// gestureRig wires a Machine over a small store with a controllable fake
// renderer for hover picks.
type gestureRig struct {
	machine *Machine
	store   *Store
	render  *fakeRenderer
}

func newGestureRig(t *testing.T, photos int) *gestureRig {
	t.Helper()
	rng := testRNG()
	cfg := smallStoreConfig()
	store := NewStore(cfg, rng)
	render := newFakeRenderer()
	for _, p := range store.Particles() {
		store.BindVisual(render.Add(p.Role), p)
	}
	for i := 0; i < photos; i++ {
		p := store.AddPhoto(rng)
		store.BindVisual(render.Add(p.Role), p)
	}
	picker := NewPicker(render, store)
	return &gestureRig{
		machine: NewMachine(DefaultGestureConfig(), store, picker, rng),
		store:   store,
		render:  render,
	}
}

func neutralHand() HandSample {
	return SynthesizeHand(0.5, 0.5, false, 0.3)
}

func pinchHand() HandSample {
	return SynthesizeHand(0.5, 0.5, true, 0.3)
}

func openHand() HandSample {
	return SynthesizeHand(0.5, 0.5, false, 0.55)
}

func closedHand() HandSample {
	return SynthesizeHand(0.5, 0.5, false, 0.1)
}

func TestPinchEdgeFiresExactlyOnce(t *testing.T) {
	rig := newGestureRig(t, 2)
	m := rig.machine

	sequence := []HandSample{neutralHand(), pinchHand(), pinchHand(), pinchHand(), neutralHand()}
	entries := 0
	for i, s := range sequence {
		changed := m.Advance(s, true)
		if changed && m.Mode() == ModeFocus {
			entries++
			if i != 1 {
				t.Errorf("focus entered on sample %d, want 1", i)
			}
		}
	}
	if entries != 1 {
		t.Fatalf("focus entered %d times for a held pinch, want exactly 1", entries)
	}
	if m.Mode() != ModeFocus {
		t.Errorf("mode = %v, want focus to persist", m.Mode())
	}
}

func TestPinchWithNoPhotosIsNoOp(t *testing.T) {
	rig := newGestureRig(t, 0)
	m := rig.machine

	if m.Advance(pinchHand(), true) {
		t.Error("pinch with zero photos reported a change")
	}
	if m.Mode() != ModeTree || m.Focused() != nil {
		t.Errorf("mode = %v, focused = %v; want unchanged", m.Mode(), m.Focused())
	}
}

func TestPinchExitRestoresPriorMode(t *testing.T) {
	rig := newGestureRig(t, 1)
	m := rig.machine

	// Tree → Scatter via open hand, then pinch into focus from scatter.
	m.Advance(openHand(), true)
	if m.Mode() != ModeScatter {
		t.Fatalf("mode = %v, want scatter", m.Mode())
	}
	m.Advance(pinchHand(), true)
	if m.Mode() != ModeFocus {
		t.Fatalf("mode = %v, want focus", m.Mode())
	}
	if m.Focused() == nil || m.Focused().Role != RolePhoto {
		t.Fatalf("focused = %v, want a photo", m.Focused())
	}

	// Release, pinch again: exit restores scatter and clears focus.
	m.Advance(neutralHand(), true)
	m.Advance(pinchHand(), true)
	if m.Mode() != ModeScatter {
		t.Errorf("mode = %v, want prior scatter restored", m.Mode())
	}
	if m.Focused() != nil {
		t.Errorf("focused = %v, want cleared", m.Focused())
	}
}

func TestFocusTargetPrefersHoveredPhoto(t *testing.T) {
	rig := newGestureRig(t, 3)
	m := rig.machine

	want := rig.store.Photos(nil)[1]
	rig.render.pickResult = want.Visual()
	rig.render.pickOK = true

	m.Advance(neutralHand(), true) // establish hover
	if m.Hovered() != want {
		t.Fatalf("hovered = %v, want photo %d", m.Hovered(), want.ID)
	}
	m.Advance(pinchHand(), true)
	if m.Focused() != want {
		t.Errorf("focused = %v, want the hovered photo %d", m.Focused(), want.ID)
	}
}

func TestFocusExclusivity(t *testing.T) {
	rig := newGestureRig(t, 4)
	m := rig.machine

	// Pinch in and out repeatedly; there is never more than one focus
	// target and it is always a photo.
	for i := 0; i < 6; i++ {
		m.Advance(pinchHand(), true)
		if f := m.Focused(); f != nil && f.Role != RolePhoto {
			t.Fatalf("focused role = %v, want photo", f.Role)
		}
		m.Advance(neutralHand(), true)
	}
}

func TestOpennessTransitions(t *testing.T) {
	rig := newGestureRig(t, 0)
	m := rig.machine

	if !m.Advance(openHand(), true) || m.Mode() != ModeScatter {
		t.Fatalf("open hand in tree: mode = %v, want scatter", m.Mode())
	}
	if m.Advance(neutralHand(), true) {
		t.Error("neutral openness inside the hysteresis gap changed the mode")
	}
	if !m.Advance(closedHand(), true) || m.Mode() != ModeTree {
		t.Fatalf("fist in scatter: mode = %v, want tree", m.Mode())
	}
}

func TestOpennessIgnoredInHeart(t *testing.T) {
	rig := newGestureRig(t, 0)
	m := rig.machine

	m.ToggleHeart()
	if m.Mode() != ModeHeart {
		t.Fatal("setup: heart toggle failed")
	}
	// Documented current behavior: the openness signal never leaves Heart.
	m.Advance(openHand(), true)
	m.Advance(closedHand(), true)
	if m.Mode() != ModeHeart {
		t.Errorf("mode = %v, want heart untouched by openness", m.Mode())
	}
}

func TestOpennessIgnoredInFocus(t *testing.T) {
	rig := newGestureRig(t, 1)
	m := rig.machine

	m.Advance(pinchHand(), true)
	if m.Mode() != ModeFocus {
		t.Fatal("setup: pinch focus failed")
	}
	m.Advance(SynthesizeHand(0.5, 0.5, true, 0.55), true) // still pinching, wide open
	if m.Mode() != ModeFocus {
		t.Errorf("mode = %v, want focus untouched by openness", m.Mode())
	}
}

func TestHeartToggleScopedToHeartAndTree(t *testing.T) {
	rig := newGestureRig(t, 1)
	m := rig.machine

	// Documented current behavior: the keyboard toggle ignores Scatter and
	// Focus rather than stacking a transition on top of them.
	m.Advance(openHand(), true)
	if m.ToggleHeart() || m.Mode() != ModeScatter {
		t.Errorf("toggle in scatter: mode = %v, want scatter", m.Mode())
	}

	m.Advance(closedHand(), true)
	m.Advance(pinchHand(), true)
	if m.Mode() != ModeFocus {
		t.Fatal("setup: pinch focus failed")
	}
	if m.ToggleHeart() || m.Mode() != ModeFocus {
		t.Errorf("toggle in focus: mode = %v, want focus", m.Mode())
	}
}

func TestHandAbsenceClearsHoverAndPointer(t *testing.T) {
	rig := newGestureRig(t, 1)
	m := rig.machine

	rig.render.pickResult = rig.store.Photos(nil)[0].Visual()
	rig.render.pickOK = true
	m.Advance(neutralHand(), true)
	if m.Hovered() == nil {
		t.Fatal("setup: hover failed")
	}

	if m.Advance(HandSample{}, false) {
		t.Error("hand absence reported a mode change")
	}
	if m.Hovered() != nil {
		t.Error("hover not cleared on hand absence")
	}
	if _, visible, _ := m.Pointer(); visible {
		t.Error("pointer should hide on hand absence")
	}
	if m.Mode() != ModeTree {
		t.Errorf("mode = %v, want unchanged", m.Mode())
	}
}

func TestPointerSmoothing(t *testing.T) {
	rig := newGestureRig(t, 0)
	m := rig.machine
	cfg := DefaultGestureConfig()

	m.Advance(SynthesizeHand(0.2, 0.2, false, 0.3), true)
	pos, _, _ := m.Pointer()
	assertNear(t, "snap x", pos.X, 0.2)

	m.Advance(SynthesizeHand(0.8, 0.2, false, 0.3), true)
	pos, _, _ = m.Pointer()
	assertNear(t, "smoothed x", pos.X, 0.2+(0.8-0.2)*cfg.PointerRate)
}

func TestHandDerivations(t *testing.T) {
	open := SynthesizeHand(0.5, 0.5, false, 0.5)
	if got := open.Openness(); got < 0.45 || got > 0.55 {
		t.Errorf("openness = %v, want near 0.5", got)
	}
	if d := pinchHand().PinchDistance(); d > 1e-9 {
		t.Errorf("pinched distance = %v, want 0", d)
	}
	if d := neutralHand().PinchDistance(); d < 0.06 {
		t.Errorf("unpinched distance = %v, want above threshold", d)
	}
}
