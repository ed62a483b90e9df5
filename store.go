package garland

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// StoreConfig controls the particle population created at startup.
type StoreConfig struct {
	// DecoCount is the number of ornaments. Fixed for the session.
	DecoCount int
	// LightCount is the number of fairy lights. Fixed for the session.
	LightCount int
	// SnowCount is the number of snowflakes. Created once, wrapped forever.
	SnowCount int
	// SnowBounds is the volume snow falls through. A flake leaving the
	// bottom face reappears at the top with fresh horizontal coordinates.
	SnowBounds Bounds
	// FallSpeed is the range snow fall speeds are drawn from.
	FallSpeed Range
	// FlickerSpeed is the range light flicker speeds are drawn from.
	FlickerSpeed Range
	// DecoPalette is the set of resting ornament colors, cycled by id.
	DecoPalette []Color
	// LightColor is the resting color of every light.
	LightColor Color
	// SnowColor is the resting color of every snowflake.
	SnowColor Color
	// PhotoPlateColor and PhotoFrameColor are the resting colors of a
	// photo's two surfaces.
	PhotoPlateColor Color
	PhotoFrameColor Color
	// PhotoAppearSeconds is the duration of the scale-in animation played
	// when a photo is uploaded.
	PhotoAppearSeconds float64
}

// DefaultStoreConfig returns the population used by the stock scene.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DecoCount:  160,
		LightCount: 80,
		SnowCount:  220,
		SnowBounds: Bounds{
			Min: Vec3{-14, -9, -14},
			Max: Vec3{14, 11, 14},
		},
		FallSpeed:    Range{0.6, 1.6},
		FlickerSpeed: Range{3, 7},
		DecoPalette: []Color{
			{0.86, 0.16, 0.18}, // red bauble
			{0.93, 0.72, 0.19}, // gold bauble
			{0.22, 0.45, 0.85}, // blue bauble
			{0.90, 0.90, 0.94}, // silver bauble
		},
		LightColor:         Color{1.0, 0.84, 0.55},
		SnowColor:          Color{0.96, 0.97, 1.0},
		PhotoPlateColor:    Color{0.92, 0.90, 0.86},
		PhotoFrameColor:    Color{0.76, 0.60, 0.28},
		PhotoAppearSeconds: 0.8,
	}
}

// Store owns every Particle in the scene. Deco, light, and snow particles are
// created once at startup; photo particles are appended at runtime and never
// removed. The store also owns the registry that maps renderer visual ids
// back to particles for hit testing, so the renderer never holds particle
// state.
//
// Particles are held as an append-only slice of pointers: appending a photo
// mid-frame never invalidates pointers or indices taken earlier in the same
// frame.
type Store struct {
	cfg       StoreConfig
	particles []*Particle
	nextID    uint32
	byVisual  map[uint32]*Particle
}

// NewStore creates the startup population, drawing per-particle randomness
// from rng.
func NewStore(cfg StoreConfig, rng *rand.Rand) *Store {
	s := &Store{
		cfg:      cfg,
		byVisual: make(map[uint32]*Particle),
	}
	for i := 0; i < cfg.DecoCount; i++ {
		p := s.newParticle(RoleDeco, rng)
		p.BranchAngle = rng.Float64() * 2 * math.Pi
		base := Color{1, 1, 1}
		if len(cfg.DecoPalette) > 0 {
			base = cfg.DecoPalette[i%len(cfg.DecoPalette)]
		}
		p.Surfaces = []Surface{newSurface(base)}
		s.particles = append(s.particles, p)
	}
	for i := 0; i < cfg.LightCount; i++ {
		p := s.newParticle(RoleLight, rng)
		p.FlickerSpeed = cfg.FlickerSpeed.Random(rng)
		p.Surfaces = []Surface{newSurface(cfg.LightColor)}
		s.particles = append(s.particles, p)
	}
	for i := 0; i < cfg.SnowCount; i++ {
		p := s.newParticle(RoleSnow, rng)
		p.FallSpeed = cfg.FallSpeed.Random(rng)
		p.Position = Vec3{
			Range{cfg.SnowBounds.Min.X, cfg.SnowBounds.Max.X}.Random(rng),
			Range{cfg.SnowBounds.Min.Y, cfg.SnowBounds.Max.Y}.Random(rng),
			Range{cfg.SnowBounds.Min.Z, cfg.SnowBounds.Max.Z}.Random(rng),
		}
		p.Scale = Splat(0.12 + 0.1*rng.Float64())
		p.TargetScale = p.Scale
		p.Surfaces = []Surface{newSurface(cfg.SnowColor)}
		s.particles = append(s.particles, p)
	}
	return s
}

// newParticle allocates a particle with the next id and common defaults.
func (s *Store) newParticle(role Role, rng *rand.Rand) *Particle {
	s.nextID++
	return &Particle{
		ID:          s.nextID,
		Role:        role,
		Phase:       rng.Float64() * 2 * math.Pi,
		Scale:       Splat(1),
		TargetScale: Splat(1),
		Pulse:       1,
		appearScale: 1,
	}
}

// AddPhoto appends a new photo particle and returns it. The caller is
// responsible for binding a renderer visual and requesting a layout
// recompute; the new photo receives its first target on that next layout
// call. Must be called from the frame-loop goroutine.
func (s *Store) AddPhoto(rng *rand.Rand) *Particle {
	p := s.newParticle(RolePhoto, rng)
	p.Surfaces = []Surface{
		newSurface(s.cfg.PhotoPlateColor),
		newSurface(s.cfg.PhotoFrameColor),
	}
	dur := s.cfg.PhotoAppearSeconds
	if dur <= 0 {
		dur = 0.8
	}
	p.appear = gween.New(0, 1, float32(dur), ease.OutCubic)
	p.appearScale = 0
	s.particles = append(s.particles, p)
	return p
}

// Particles returns the backing slice. Callers must not reorder or remove
// entries; appending happens only through AddPhoto.
func (s *Store) Particles() []*Particle {
	return s.particles
}

// Len returns the total particle count.
func (s *Store) Len() int {
	return len(s.particles)
}

// CountByRole returns the number of particles with the given role.
func (s *Store) CountByRole(role Role) int {
	n := 0
	for _, p := range s.particles {
		if p.Role == role {
			n++
		}
	}
	return n
}

// Photos appends all photo particles to dst and returns it. Pass a reused
// slice to avoid per-frame allocation.
func (s *Store) Photos(dst []*Particle) []*Particle {
	for _, p := range s.particles {
		if p.Role == RolePhoto {
			dst = append(dst, p)
		}
	}
	return dst
}

// ByID returns the particle with the given id, or nil.
func (s *Store) ByID(id uint32) *Particle {
	for _, p := range s.particles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// BindVisual records that the renderer visual with the given id displays p.
// Hit tests resolve intersected visuals back to particles through this
// registry.
func (s *Store) BindVisual(visualID uint32, p *Particle) {
	p.visual = visualID
	s.byVisual[visualID] = p
}

// ParticleForVisual returns the particle bound to a renderer visual id, or
// nil if the visual is unregistered (scene furniture, snow).
func (s *Store) ParticleForVisual(visualID uint32) *Particle {
	return s.byVisual[visualID]
}

// SnowBounds returns the configured snow volume.
func (s *Store) SnowBounds() Bounds {
	return s.cfg.SnowBounds
}

func newSurface(base Color) Surface {
	return Surface{Base: base, Color: base, Emissive: ColorBlack}
}
