package garland

// Renderer is the consumed rendering boundary. The engine pushes transforms
// and surface materials into it every frame and uses its picking facility for
// hover resolution; everything else about producing pixels is the renderer's
// business.
//
// Visual ids are allocated by the renderer and are opaque to the engine
// beyond the [Store] registry that maps them back to particles.
type Renderer interface {
	// Add creates a visual object for a particle with the given role and
	// returns its stable visual id. Snow visuals are excluded from picking.
	Add(role Role) uint32

	// SetTransform applies a world transform to a visual, verbatim.
	SetTransform(visualID uint32, position, scale, rotation Vec3)

	// SetSurface applies color, emissive, and emissive intensity to one
	// surface of a visual, verbatim. Surfaces beyond what the visual owns
	// are ignored.
	SetSurface(visualID uint32, surface int, color, emissive Color, intensity float64)

	// SetSceneRotation sets the whole-scene idle yaw in radians.
	SetSceneRotation(yaw float64)

	// Pick casts a ray through the camera at the normalized screen
	// coordinate against the decoration group only and returns the nearest
	// intersected visual id. ok is false when nothing is hit.
	Pick(x, y float64) (visualID uint32, ok bool)
}
