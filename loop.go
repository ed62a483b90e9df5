package garland

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"
)

// EventType identifies an engine event for the ECS bridge.
type EventType uint8

const (
	EventModeChanged EventType = iota
	EventFocusChanged
	EventHoverChanged
	EventPhotoAdded
)

// Event carries engine state changes for an optional [EventSink].
type Event struct {
	Type EventType
	// Mode and Prior are valid for EventModeChanged.
	Mode  Mode
	Prior Mode
	// ParticleID is valid for focus, hover, and photo events; 0 means
	// cleared.
	ParticleID uint32
}

// EventSink is the interface for optional ECS integration. When set on an
// App, engine state changes are forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

// Config aggregates the per-component configuration of an App.
type Config struct {
	Store   StoreConfig
	Layout  LayoutConfig
	Motion  MotionConfig
	Gesture GestureConfig
	// Seed seeds the layout/gesture randomness. Zero picks a time-based
	// seed; tests pass a fixed value for determinism.
	Seed uint64
	// IdleSpinRate is the whole-scene yaw speed while no hand is detected,
	// radians per second.
	IdleSpinRate float64
	// Debug enables per-frame timing stats on stderr.
	Debug bool
}

// DefaultConfig returns the stock scene configuration.
func DefaultConfig() Config {
	return Config{
		Store:        DefaultStoreConfig(),
		Layout:       DefaultLayoutConfig(),
		Motion:       DefaultMotionConfig(),
		Gesture:      DefaultGestureConfig(),
		IdleSpinRate: 0.12,
	}
}

// App is the frame loop context: it owns the store, layout, integrator, and
// gesture machine and threads them through one Step per display refresh.
// There are no package-level singletons; all mutable state hangs off the App
// and is touched only from the loop goroutine.
type App struct {
	cfg      Config
	store    *Store
	layout   *Layout
	motion   *Integrator
	machine  *Machine
	picker   *Picker
	renderer Renderer
	vision   VisionSource
	sink     EventSink
	rng      *rand.Rand

	elapsed     float64
	sceneYaw    float64
	layoutDirty bool
	prevHovered *Particle
}

// New wires an App from a renderer, an optional vision source, and a config.
// Passing vision == nil is the supported degradation for a vision pipeline
// that failed to initialize: one warning is logged and hand-driven
// transitions stay disabled for the session.
func New(renderer Renderer, vision VisionSource, cfg Config) (*App, error) {
	if renderer == nil {
		return nil, fmt.Errorf("garland: renderer is required")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	store := NewStore(cfg.Store, rng)
	picker := NewPicker(renderer, store)
	a := &App{
		cfg:      cfg,
		store:    store,
		layout:   NewLayout(cfg.Layout),
		motion:   NewIntegrator(cfg.Motion),
		machine:  NewMachine(cfg.Gesture, store, picker, rng),
		picker:   picker,
		renderer: renderer,
		vision:   vision,
		rng:      rng,
	}

	if vision == nil {
		fmt.Fprintf(os.Stderr, "[garland] vision source unavailable; hand tracking disabled for this session\n")
	}

	for _, p := range store.Particles() {
		store.BindVisual(renderer.Add(p.Role), p)
	}

	// Assemble the opening tree and snap live transforms onto it so the
	// scene does not fly together from the origin on frame one.
	a.layout.Compute(ModeTree, store, nil, rng)
	for _, p := range store.Particles() {
		if p.Role == RoleSnow {
			continue
		}
		p.Position = p.TargetPosition
		p.Scale = p.TargetScale
		p.Rotation = p.TargetRotation
	}

	return a, nil
}

// SetEventSink attaches an optional sink for engine events (see the ecs
// subpackage for a Donburi-backed one).
func (a *App) SetEventSink(sink EventSink) {
	a.sink = sink
}

// Store returns the particle store.
func (a *App) Store() *Store {
	return a.store
}

// Mode returns the active layout mode.
func (a *App) Mode() Mode {
	return a.machine.Mode()
}

// Pointer returns the smoothed hand-cursor position in normalized screen
// space, whether it should be drawn, and whether it is locked (focus active).
func (a *App) Pointer() (pos Landmark, visible, locked bool) {
	return a.machine.Pointer()
}

// ToggleHeart forwards the keyboard heart key to the gesture machine and
// recomputes the layout when the mode flips.
func (a *App) ToggleHeart() {
	prior := a.machine.Mode()
	if a.machine.ToggleHeart() {
		a.layoutDirty = true
		a.emit(Event{Type: EventModeChanged, Mode: a.machine.Mode(), Prior: prior})
	}
}

// AddPhoto appends one photo particle (user upload), binds its visual, and
// schedules a layout recompute so the new photo receives a target on the next
// Step. Must be called from the loop goroutine; marshal asynchronous upload
// completions onto the loop before calling.
func (a *App) AddPhoto() *Particle {
	p := a.store.AddPhoto(a.rng)
	a.store.BindVisual(a.renderer.Add(p.Role), p)
	a.layoutDirty = true
	a.emit(Event{Type: EventPhotoAdded, ParticleID: p.ID})
	return p
}

// Step runs one frame: poll vision, advance the gesture machine, recompute
// the layout if the mode or membership changed, integrate motion, and submit
// transforms and materials to the renderer. dt is the fixed per-frame step.
func (a *App) Step(dt float64) {
	start := time.Now()
	a.elapsed += dt

	var sample HandSample
	ok := false
	if a.vision != nil {
		sample, ok = a.vision.Sample()
	}

	priorMode := a.machine.Mode()
	priorFocus := a.machine.Focused()
	if a.machine.Advance(sample, ok) {
		a.layoutDirty = true
	}
	if a.sink != nil {
		if a.machine.Mode() != priorMode {
			a.emit(Event{Type: EventModeChanged, Mode: a.machine.Mode(), Prior: priorMode})
		}
		if a.machine.Focused() != priorFocus {
			a.emit(Event{Type: EventFocusChanged, ParticleID: particleID(a.machine.Focused())})
		}
		if a.machine.Hovered() != a.prevHovered {
			a.emit(Event{Type: EventHoverChanged, ParticleID: particleID(a.machine.Hovered())})
		}
	}
	a.prevHovered = a.machine.Hovered()

	// Layout changes are never interpolated themselves; only the resulting
	// targets are, by the integrator below.
	if a.layoutDirty {
		a.layout.Compute(a.machine.Mode(), a.store, a.machine.Focused(), a.rng)
		a.layoutDirty = false
	}

	a.motion.Advance(dt, a.machine.Mode(), a.elapsed, a.store, a.machine.Focused(), a.machine.Hovered(), a.rng)

	// Idle rotation runs only while no hand is steering the scene.
	if !a.machine.HandVisible() {
		a.sceneYaw += a.cfg.IdleSpinRate * dt
	}
	a.renderer.SetSceneRotation(a.sceneYaw)

	for _, p := range a.store.Particles() {
		a.renderer.SetTransform(p.visual, p.RenderPosition(), p.RenderScale(), p.RenderRotation())
		for i := range p.Surfaces {
			s := &p.Surfaces[i]
			a.renderer.SetSurface(p.visual, i, s.Color, s.Emissive, s.Intensity)
		}
	}

	if a.cfg.Debug {
		fmt.Fprintf(os.Stderr, "[garland] step: %v | mode: %s | particles: %d\n",
			time.Since(start), a.machine.Mode(), a.store.Len())
	}
}

func (a *App) emit(e Event) {
	if a.sink != nil {
		a.sink.EmitEvent(e)
	}
}

func particleID(p *Particle) uint32 {
	if p == nil {
		return 0
	}
	return p.ID
}
