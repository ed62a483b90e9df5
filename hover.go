package garland

// Picker resolves a normalized pointer coordinate to the photo particle under
// it. The renderer performs the ray intersection; the Store registry walks
// the intersected visual back to its owning particle.
type Picker struct {
	renderer Renderer
	store    *Store
}

// NewPicker returns a Picker over the given renderer and store.
func NewPicker(renderer Renderer, store *Store) *Picker {
	return &Picker{renderer: renderer, store: store}
}

// Pick returns the photo particle under the normalized coordinate, or nil.
// Intersections with non-photo particles or unregistered visuals (scene
// furniture) resolve to nil rather than an error.
func (pk *Picker) Pick(x, y float64) *Particle {
	visualID, ok := pk.renderer.Pick(x, y)
	if !ok {
		return nil
	}
	p := pk.store.ParticleForVisual(visualID)
	if p == nil || p.Role != RolePhoto {
		return nil
	}
	return p
}
