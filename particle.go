package garland

import "github.com/tanema/gween"

// Role classifies a particle and selects which layout and material rules
// apply to it. Immutable after creation.
type Role uint8

const (
	RoleDeco  Role = iota // ornament on the tree surface
	RolePhoto             // framed user photo, the only focusable role
	RoleSnow              // falling snowflake, never participates in layout
	RoleLight             // glowing fairy light
)

// String returns the role name for logging.
func (r Role) String() string {
	switch r {
	case RoleDeco:
		return "deco"
	case RolePhoto:
		return "photo"
	case RoleSnow:
		return "snow"
	case RoleLight:
		return "light"
	}
	return "unknown"
}

// Surface is the material state of one visual surface of a particle. A photo
// owns two surfaces (plate and frame); other roles own one. Base is the
// resting color captured at creation; Color and Emissive are the live values
// blended toward the active material tier every frame.
type Surface struct {
	Base      Color
	Color     Color
	Emissive  Color
	Intensity float64
}

// Particle is one decoration, photo, snowflake, or light. The Store owns all
// Particle records; everything else holds borrowed pointers.
//
// Position/Scale/Rotation are the live, rendered values. The Target* fields
// are destinations written by [Layout.Compute] and approached by the
// [Integrator] a fixed fraction per frame. Sway, Jitter, and Pulse are
// per-frame ambient offsets layered on top of the smoothed values at render
// submission; they are recomputed from scratch every frame and never
// accumulate.
type Particle struct {
	ID   uint32
	Role Role

	Position       Vec3
	TargetPosition Vec3
	Scale          Vec3
	TargetScale    Vec3
	Rotation       Vec3
	TargetRotation Vec3

	// Phase is a random angle in [0, 2π) fixed at creation, used to
	// decorrelate periodic motion across particles of the same role.
	Phase float64

	// Role-specific constants, fixed at creation.
	FlickerSpeed float64 // light: scale flicker angular speed
	FallSpeed    float64 // snow: vertical fall speed, units per second
	BranchAngle  float64 // deco: fixed angular slot around the trunk

	Surfaces []Surface

	// Ambient layers, rewritten by the integrator each frame.
	Sway   Vec3    // additive position offset
	Jitter Vec3    // additive rotation offset
	Pulse  float64 // multiplicative scale factor (1 = none)

	appear      *gween.Tween // photo scale-in on upload, nil once finished
	appearScale float64

	visual uint32 // renderer visual id, set by Store.BindVisual
}

// RenderPosition returns the position to submit to the renderer: the smoothed
// live position plus this frame's ambient sway.
func (p *Particle) RenderPosition() Vec3 {
	return p.Position.Add(p.Sway)
}

// RenderScale returns the scale to submit to the renderer, including the
// flicker/heartbeat pulse and the photo appear factor.
func (p *Particle) RenderScale() Vec3 {
	s := p.Pulse * p.appearScale
	return Vec3{p.Scale.X * s, p.Scale.Y * s, p.Scale.Z * s}
}

// RenderRotation returns the rotation to submit to the renderer.
func (p *Particle) RenderRotation() Vec3 {
	return p.Rotation.Add(p.Jitter)
}

// Visual returns the renderer visual id bound to this particle, or 0 if none
// has been bound yet.
func (p *Particle) Visual() uint32 {
	return p.visual
}
