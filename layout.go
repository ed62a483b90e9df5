package garland

import (
	"math"
	"math/rand/v2"
)

// Mode is the active global layout state.
type Mode uint8

const (
	ModeTree    Mode = iota // decorated evergreen
	ModeScatter             // dispersed cloud
	ModeHeart               // parametric heart formation
	ModeFocus               // single photo close-up
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeScatter:
		return "scatter"
	case ModeHeart:
		return "heart"
	case ModeFocus:
		return "focus"
	}
	return "unknown"
}

// LayoutConfig controls the geometry of every mode's target arrangement.
type LayoutConfig struct {
	// TreeHeight is the vertical extent of the tree; foliage spans
	// [-TreeHeight/2, TreeHeight/2].
	TreeHeight float64
	// TreeBaseRadius is the foliage radius at the bottom tier.
	TreeBaseRadius float64
	// TierCount is the number of scalloped tiers along the height.
	TierCount int
	// BranchSpread is the random angular jitter added to a deco's fixed
	// branch angle, radians.
	BranchSpread float64
	// PhotoSpiralOffset pushes the photo spiral outside the foliage radius.
	PhotoSpiralOffset float64
	// PhotoScale is the fixed target scale of a photo on the tree spiral.
	PhotoScale float64
	// HeartScale multiplies the unit heart curve (|x| ≤ 16, |y| ≤ 17-ish).
	HeartScale float64
	// HeartDepth is the half-thickness of random depth jitter in heart mode.
	HeartDepth float64
	// HeartRingRadius is the radius of the photo ring in front of the heart.
	HeartRingRadius float64
	// FocusPosition is the near-camera position of the focused photo.
	FocusPosition Vec3
	// FocusScale is the enlarged scale of the focused photo.
	FocusScale float64
	// ShellRadius is the radius range of the clutter-clearing shell that
	// non-focused particles scatter onto in focus mode.
	ShellRadius Range
	// ScatterExtent is the half-width of the scatter-mode cube.
	ScatterExtent float64
}

// DefaultLayoutConfig returns the stock scene geometry.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		TreeHeight:        9,
		TreeBaseRadius:    3.6,
		TierCount:         6,
		BranchSpread:      0.25,
		PhotoSpiralOffset: 1.1,
		PhotoScale:        0.55,
		HeartScale:        0.32,
		HeartDepth:        0.6,
		HeartRingRadius:   4.2,
		FocusPosition:     Vec3{0, 0.5, 8.5},
		FocusScale:        2.4,
		ShellRadius:       Range{9, 13},
		ScatterExtent:     7,
	}
}

// Layout computes per-mode target positions, scales, and orientation hints.
// Compute is invoked on mode changes and photo uploads, not every frame; the
// resulting targets are approached by the [Integrator].
type Layout struct {
	Config LayoutConfig
}

// NewLayout returns a Layout with the given geometry.
func NewLayout(cfg LayoutConfig) *Layout {
	return &Layout{Config: cfg}
}

// Compute writes TargetPosition, TargetScale, and TargetRotation for every
// non-snow particle in the store. Snow particles are never touched: they run
// their own fall/wrap cycle in the integrator.
//
// Each call redraws jitter from rng, so repeated calls in the same mode
// produce different but boundedly similar arrangements. focused is only
// consulted in [ModeFocus] and may be nil otherwise.
func (l *Layout) Compute(mode Mode, store *Store, focused *Particle, rng *rand.Rand) {
	switch mode {
	case ModeTree:
		l.computeTree(store, rng)
	case ModeHeart:
		l.computeHeart(store, rng)
	case ModeFocus:
		l.computeFocus(store, focused, rng)
	case ModeScatter:
		l.computeScatter(store, rng)
	}
}

// TreeRadius returns the foliage radius at height ratio h in [0, 1): the base
// radius tapered by (1 - h^1.1) and scalloped into tiers.
func (l *Layout) TreeRadius(h float64) float64 {
	return l.Config.TreeBaseRadius * (1 - math.Pow(h, 1.1)) * l.Scallop(h)
}

// Scallop returns the tier modulation factor at height ratio h.
func (l *Layout) Scallop(h float64) float64 {
	return 1 + 0.25*math.Sin(h*math.Pi*float64(l.Config.TierCount))
}

func (l *Layout) computeTree(store *Store, rng *rand.Rand) {
	cfg := l.Config

	// Rank foliage roles separately so photos never shift deco placement.
	foliageRank := map[Role]int{}
	foliageTotal := map[Role]int{}
	for _, p := range store.Particles() {
		if p.Role == RoleDeco || p.Role == RoleLight {
			foliageTotal[p.Role]++
		}
	}
	photoTotal := store.CountByRole(RolePhoto)
	photoRank := 0

	for _, p := range store.Particles() {
		switch p.Role {
		case RoleDeco, RoleLight:
			total := foliageTotal[p.Role]
			if total == 0 {
				continue
			}
			t := float64(foliageRank[p.Role]) / float64(total)
			foliageRank[p.Role]++

			h := t
			radius := l.TreeRadius(h)
			angle := p.Phase
			if p.Role == RoleDeco {
				angle = p.BranchAngle
			}
			angle += (rng.Float64()*2 - 1) * cfg.BranchSpread
			// Bias the radial fraction toward 1 so particles cluster at
			// branch tips instead of filling the disk.
			frac := 1 - 0.3*rng.Float64()*rng.Float64()

			p.TargetPosition = Vec3{
				X: math.Cos(angle) * radius * frac,
				Y: -cfg.TreeHeight/2 + h*cfg.TreeHeight,
				Z: math.Sin(angle) * radius * frac,
			}
			if p.Role == RoleLight {
				p.TargetScale = Splat(0.22)
			} else {
				p.TargetScale = Splat(0.3 + 0.15*rng.Float64())
			}
			p.TargetRotation = Vec3{}

		case RolePhoto:
			if photoTotal == 0 {
				continue
			}
			t := float64(photoRank) / float64(photoTotal)
			photoRank++

			// Sparser spiral outside the foliage, climbing most of the
			// height so frames sit clear of the branches.
			angle := t * 8 * math.Pi
			h := 0.05 + t*0.85
			radius := l.TreeRadius(h) + cfg.PhotoSpiralOffset

			p.TargetPosition = Vec3{
				X: math.Cos(angle) * radius,
				Y: -cfg.TreeHeight/2 + h*cfg.TreeHeight,
				Z: math.Sin(angle) * radius,
			}
			p.TargetScale = Splat(cfg.PhotoScale)
			// Face outward from the tree axis.
			p.TargetRotation = Vec3{Y: -angle}
		}
	}
}

// heartPoint evaluates the parametric heart curve at theta, scaled but
// without depth jitter.
func (l *Layout) heartPoint(theta float64) (x, y float64) {
	s := l.Config.HeartScale
	sin := math.Sin(theta)
	x = 16 * sin * sin * sin * s
	y = (13*math.Cos(theta) - 5*math.Cos(2*theta) - 2*math.Cos(3*theta) - math.Cos(4*theta)) * s
	return x, y
}

func (l *Layout) computeHeart(store *Store, rng *rand.Rand) {
	cfg := l.Config

	photoTotal := store.CountByRole(RolePhoto)
	photoRank := 0

	for _, p := range store.Particles() {
		switch p.Role {
		case RoleSnow:
			continue
		case RolePhoto:
			if photoTotal == 0 {
				continue
			}
			// Photos orbit a ring in front of the heart, facing its center.
			a := float64(photoRank) / float64(photoTotal) * 2 * math.Pi
			photoRank++
			p.TargetPosition = Vec3{
				X: math.Cos(a) * cfg.HeartRingRadius,
				Y: math.Sin(a) * cfg.HeartRingRadius * 0.6,
				Z: cfg.HeartDepth + 2,
			}
			p.TargetScale = Splat(cfg.PhotoScale)
			p.TargetRotation = Vec3{Y: math.Atan2(-p.TargetPosition.X, -p.TargetPosition.Z)}
		default:
			// Theta is re-sampled per particle per call; the formation is
			// cosmetic and ignores role constants entirely.
			theta := rng.Float64() * 2 * math.Pi
			x, y := l.heartPoint(theta)
			p.TargetPosition = Vec3{
				X: x,
				Y: y,
				Z: (rng.Float64()*2 - 1) * cfg.HeartDepth,
			}
			p.TargetScale = Splat(0.28)
			p.TargetRotation = Vec3{}
		}
	}
}

func (l *Layout) computeFocus(store *Store, focused *Particle, rng *rand.Rand) {
	cfg := l.Config

	for _, p := range store.Particles() {
		if p.Role == RoleSnow {
			continue
		}
		if p == focused {
			p.TargetPosition = cfg.FocusPosition
			p.TargetScale = Splat(cfg.FocusScale)
			p.TargetRotation = Vec3{}
			continue
		}
		// Clear visual clutter: everything else scatters onto a far shell
		// at a scale that shrinks with distance.
		dir := randomUnit(rng)
		radius := cfg.ShellRadius.Random(rng)
		p.TargetPosition = dir.Scale(radius)
		scale := 0.3
		if cfg.ShellRadius.Max > 0 {
			scale = 0.35 * (1 - radius/(cfg.ShellRadius.Max*2))
		}
		p.TargetScale = Splat(scale)
	}
}

func (l *Layout) computeScatter(store *Store, rng *rand.Rand) {
	e := l.Config.ScatterExtent
	for _, p := range store.Particles() {
		if p.Role == RoleSnow {
			continue
		}
		// Uniform in the cube, unit scale, no role distinction.
		p.TargetPosition = Vec3{
			X: (rng.Float64()*2 - 1) * e,
			Y: (rng.Float64()*2 - 1) * e,
			Z: (rng.Float64()*2 - 1) * e,
		}
		p.TargetScale = Splat(1)
		p.TargetRotation = Vec3{}
	}
}

// randomUnit returns a uniformly distributed direction on the unit sphere.
func randomUnit(rng *rand.Rand) Vec3 {
	z := rng.Float64()*2 - 1
	a := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return Vec3{X: r * math.Cos(a), Y: z, Z: r * math.Sin(a)}
}
