// Package garland is the particle choreography engine behind a gesture-driven
// decorated evergreen scene.
//
// Garland owns the particles (decorations, photos, snowflakes, lights), the
// per-mode target layouts that arrange them into a tree, a heart, a scattered
// cloud, or a single-photo close-up, the per-frame motion integrator that
// smooths every particle toward its target, and the gesture state machine
// that reacts to hand-tracking input. Rendering and hand detection are
// consumed behind the [Renderer] and [VisionSource] interfaces; garland never
// draws a pixel or touches a camera itself.
//
// # Quick start
//
// Wire a renderer and an optional vision source into an [App] and step it
// once per display refresh:
//
//	app, err := garland.New(view, vision, garland.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	// each frame:
//	app.Step(1.0 / 60.0)
//
// A nil vision source is allowed: hand-driven transitions are disabled for
// the session and keyboard-driven ones ([App.ToggleHeart]) keep working.
//
// # Layout and motion
//
// [Layout.Compute] writes fresh target positions and scales for every
// non-snow particle whenever the mode or the particle set changes. Targets
// are randomized per call from an explicit generator, so repeated calls in
// the same mode give different but boundedly similar arrangements. The
// [Integrator] then moves live transforms a fixed fraction of the remaining
// distance toward their targets each frame and layers ambient motion (sway,
// light flicker, heartbeat pulse) and the material priority chain on top.
//
// # Subpackages
//
// Package ecs bridges engine events into a [Donburi] world; package
// ebitenview is a reference [Renderer] built on [Ebitengine]. The photo
// appear animation uses [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package garland
