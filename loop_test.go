package garland

import (
	"testing"
)

// fakeRenderer records everything the engine submits and serves canned pick
// results.
type fakeRenderer struct {
	nextID     uint32
	roles      map[uint32]Role
	transforms map[uint32][3]Vec3
	surfaces   map[uint32]int
	sceneYaw   float64
	pickResult uint32
	pickOK     bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		roles:      make(map[uint32]Role),
		transforms: make(map[uint32][3]Vec3),
		surfaces:   make(map[uint32]int),
	}
}

func (r *fakeRenderer) Add(role Role) uint32 {
	r.nextID++
	r.roles[r.nextID] = role
	return r.nextID
}

func (r *fakeRenderer) SetTransform(id uint32, pos, scale, rot Vec3) {
	r.transforms[id] = [3]Vec3{pos, scale, rot}
}

func (r *fakeRenderer) SetSurface(id uint32, surface int, _, _ Color, _ float64) {
	if surface+1 > r.surfaces[id] {
		r.surfaces[id] = surface + 1
	}
}

func (r *fakeRenderer) SetSceneRotation(yaw float64) { r.sceneYaw = yaw }

func (r *fakeRenderer) Pick(x, y float64) (uint32, bool) { return r.pickResult, r.pickOK }

// fakeVision serves a fixed queue of samples.
type fakeVision struct {
	samples []HandSample
	oks     []bool
	cursor  int
}

func (v *fakeVision) push(s HandSample, ok bool) {
	v.samples = append(v.samples, s)
	v.oks = append(v.oks, ok)
}

func (v *fakeVision) Sample() (HandSample, bool) {
	if v.cursor >= len(v.samples) {
		return HandSample{}, false
	}
	s, ok := v.samples[v.cursor], v.oks[v.cursor]
	v.cursor++
	return s, ok
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Store.DecoCount = 6
	cfg.Store.LightCount = 4
	cfg.Store.SnowCount = 5
	cfg.Seed = 42
	return cfg
}

// recordingSink collects emitted events.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) EmitEvent(e Event) { s.events = append(s.events, e) }

func TestNewRequiresRenderer(t *testing.T) {
	if _, err := New(nil, nil, testConfig()); err == nil {
		t.Fatal("expected error for nil renderer")
	}
}

func TestNewAssemblesTree(t *testing.T) {
	r := newFakeRenderer()
	app, err := New(r, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if app.Mode() != ModeTree {
		t.Errorf("initial mode = %v, want tree", app.Mode())
	}
	if len(r.roles) != app.Store().Len() {
		t.Errorf("renderer holds %d visuals, want %d", len(r.roles), app.Store().Len())
	}
	for _, p := range app.Store().Particles() {
		if p.Role == RoleSnow {
			continue
		}
		if p.Position != p.TargetPosition {
			t.Fatalf("particle %d not snapped to its opening target", p.ID)
		}
	}
}

func TestNilVisionDegradesToKeyboard(t *testing.T) {
	r := newFakeRenderer()
	app, err := New(r, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	app.Step(1.0 / 60)
	app.ToggleHeart()
	if app.Mode() != ModeHeart {
		t.Errorf("mode = %v, want heart via keyboard with no vision", app.Mode())
	}
	app.Step(1.0 / 60)
}

func TestOpenHandScattersWithinOneStep(t *testing.T) {
	r := newFakeRenderer()
	v := &fakeVision{}
	v.push(SynthesizeHand(0.5, 0.5, false, 0.55), true)

	app, err := New(r, v, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	app.Step(1.0 / 60)

	if app.Mode() != ModeScatter {
		t.Fatalf("mode = %v, want scatter", app.Mode())
	}
	// The layout recompute ran synchronously before integration: every
	// non-snow target is already inside the scatter cube.
	e := app.cfg.Layout.ScatterExtent
	for _, p := range app.Store().Particles() {
		if p.Role == RoleSnow {
			continue
		}
		if !insideCube(p.TargetPosition, e) {
			t.Fatalf("target %v outside scatter cube after mode change", p.TargetPosition)
		}
	}
}

func insideCube(p Vec3, e float64) bool {
	return p.X >= -e && p.X <= e && p.Y >= -e && p.Y <= e && p.Z >= -e && p.Z <= e
}

func TestIdleRotationOnlyWithoutHand(t *testing.T) {
	r := newFakeRenderer()
	v := &fakeVision{}
	v.push(HandSample{}, false)
	v.push(SynthesizeHand(0.5, 0.5, false, 0.3), true)

	app, err := New(r, v, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	app.Step(1.0 / 60) // no hand: scene spins
	yaw := r.sceneYaw
	if yaw == 0 {
		t.Fatal("idle rotation did not advance without a hand")
	}

	app.Step(1.0 / 60) // hand present: spin pauses
	if r.sceneYaw != yaw {
		t.Errorf("scene yaw advanced to %v while a hand was visible", r.sceneYaw)
	}
}

func TestAddPhotoPlacesOnNextStep(t *testing.T) {
	r := newFakeRenderer()
	app, err := New(r, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	before := app.Store().Len()

	p := app.AddPhoto()
	if app.Store().Len() != before+1 {
		t.Fatalf("store len = %d, want %d", app.Store().Len(), before+1)
	}
	if p.TargetPosition != (Vec3{}) {
		t.Fatal("photo should not have a target before the next step")
	}

	app.Step(1.0 / 60)
	if p.TargetPosition == (Vec3{}) {
		t.Error("photo target not assigned on the step after upload")
	}
	assertNear(t, "photo scale", p.TargetScale.X, app.cfg.Layout.PhotoScale)
	if p.Visual() == 0 {
		t.Error("photo visual not bound")
	}
}

func TestPinchFocusLocksPointer(t *testing.T) {
	r := newFakeRenderer()
	v := &fakeVision{}
	v.push(SynthesizeHand(0.5, 0.5, true, 0.3), true)

	app, err := New(r, v, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	app.AddPhoto()

	app.Step(1.0 / 60)
	if app.Mode() != ModeFocus {
		t.Fatalf("mode = %v, want focus after pinch with a photo present", app.Mode())
	}
	if _, visible, locked := app.Pointer(); !visible || !locked {
		t.Errorf("pointer visible=%v locked=%v, want true/true in focus", visible, locked)
	}
}

func TestEventSinkReceivesChanges(t *testing.T) {
	r := newFakeRenderer()
	v := &fakeVision{}
	v.push(SynthesizeHand(0.5, 0.5, false, 0.55), true)

	app, err := New(r, v, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordingSink{}
	app.SetEventSink(sink)

	app.AddPhoto()
	app.Step(1.0 / 60)

	var photoAdded, modeChanged bool
	for _, e := range sink.events {
		switch e.Type {
		case EventPhotoAdded:
			photoAdded = e.ParticleID != 0
		case EventModeChanged:
			modeChanged = e.Mode == ModeScatter && e.Prior == ModeTree
		}
	}
	if !photoAdded {
		t.Error("missing photo-added event")
	}
	if !modeChanged {
		t.Error("missing mode-changed event with prior mode")
	}
}

func TestStepSubmitsAllParticles(t *testing.T) {
	r := newFakeRenderer()
	app, err := New(r, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	app.Step(1.0 / 60)

	if len(r.transforms) != app.Store().Len() {
		t.Errorf("submitted %d transforms, want %d", len(r.transforms), app.Store().Len())
	}
	for _, p := range app.Store().Particles() {
		if got := r.surfaces[p.Visual()]; got != len(p.Surfaces) {
			t.Fatalf("particle %d submitted %d surfaces, want %d", p.ID, got, len(p.Surfaces))
		}
	}
}
