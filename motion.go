package garland

import (
	"math"
	"math/rand/v2"
)

// MotionConfig controls smoothing rates, ambient motion, and the material
// blend targets.
type MotionConfig struct {
	// FocusRate and BaseRate are the per-frame smoothing fractions for the
	// focused particle and for everything else. Tighter smoothing while
	// focusing makes the close-up snap.
	FocusRate float64
	BaseRate  float64
	// HoverBoost multiplies the effective scale target of a hovered photo
	// outside focus mode.
	HoverBoost float64
	// SwayAmp and SwayFreq shape the tree-mode ambient position sway.
	SwayAmp  float64
	SwayFreq float64
	// SnowSwayAmp and SnowSwayFreq shape the two-axis snowfall drift.
	SnowSwayAmp  float64
	SnowSwayFreq float64
	// SpinRate is the idle rotation speed of particles, radians per second.
	SpinRate float64
	// HeartSpinRate is the constant spin in heart mode.
	HeartSpinRate float64
	// HeartbeatFreq and HeartbeatAmp shape the shared heart-mode scale pulse.
	HeartbeatFreq float64
	HeartbeatAmp  float64
	// FlickerAmp is the light scale flicker depth in tree mode.
	FlickerAmp float64
	// ColorRate is the per-frame blend fraction for every material change.
	ColorRate float64
	// HoverGlow is the emissive target while hovered; LoveRed the heart-mode
	// tint; WarmA/WarmB the two tones lights cycle between.
	HoverGlow      Color
	HoverIntensity float64
	LoveRed        Color
	WarmA          Color
	WarmB          Color
	// LightCycleFreq and LightPulseFreq drive the light emissive tone shift
	// and its independent intensity pulse.
	LightCycleFreq     float64
	LightPulseFreq     float64
	LightBaseIntensity float64
	LightPulseAmp      float64
}

// DefaultMotionConfig returns the stock motion tuning.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		FocusRate:          0.15,
		BaseRate:           0.08,
		HoverBoost:         1.35,
		SwayAmp:            0.06,
		SwayFreq:           1.4,
		SnowSwayAmp:        0.35,
		SnowSwayFreq:       0.8,
		SpinRate:           0.25,
		HeartSpinRate:      0.6,
		HeartbeatFreq:      2.4,
		HeartbeatAmp:       0.08,
		FlickerAmp:         0.15,
		ColorRate:          0.1,
		HoverGlow:          Color{1.0, 0.95, 0.7},
		HoverIntensity:     1.6,
		LoveRed:            Color{0.95, 0.12, 0.25},
		WarmA:              Color{1.0, 0.8, 0.45},
		WarmB:              Color{1.0, 0.55, 0.25},
		LightCycleFreq:     0.7,
		LightPulseFreq:     1.9,
		LightBaseIntensity: 0.8,
		LightPulseAmp:      0.4,
	}
}

// Integrator advances every particle's live transform and material state one
// frame at a time.
type Integrator struct {
	Config MotionConfig
}

// NewIntegrator returns an Integrator with the given tuning.
func NewIntegrator(cfg MotionConfig) *Integrator {
	return &Integrator{Config: cfg}
}

// Advance runs one integration step over every particle in the store.
// elapsed is total scene time, used to phase the periodic layers; focused and
// hovered may be nil. Snow randomness (the wrap respawn) is drawn from rng.
func (in *Integrator) Advance(dt float64, mode Mode, elapsed float64, store *Store, focused, hovered *Particle, rng *rand.Rand) {
	for _, p := range store.Particles() {
		if p.Role == RoleSnow {
			in.advanceSnow(p, dt, elapsed, store.SnowBounds(), rng)
			continue
		}
		in.advanceParticle(p, dt, mode, elapsed, p == focused, p == hovered)
	}
}

// advanceSnow applies constant fall plus two decorrelated sway terms and the
// bottom-to-top wrap. Snow never runs the smoothing/material pipeline.
func (in *Integrator) advanceSnow(p *Particle, dt, elapsed float64, bounds Bounds, rng *rand.Rand) {
	cfg := in.Config
	p.Position.Y -= p.FallSpeed * dt
	p.Position.X += math.Sin(elapsed*cfg.SnowSwayFreq+p.Phase) * cfg.SnowSwayAmp * dt
	p.Position.Z += math.Cos(elapsed*cfg.SnowSwayFreq*1.3+p.Phase*1.7) * cfg.SnowSwayAmp * dt

	if p.Position.Y < bounds.Min.Y {
		// Wrap, not respawn: same particle, fresh horizontal position.
		p.Position.Y = bounds.Max.Y
		p.Position.X = Range{bounds.Min.X, bounds.Max.X}.Random(rng)
		p.Position.Z = Range{bounds.Min.Z, bounds.Max.Z}.Random(rng)
	}
}

func (in *Integrator) advanceParticle(p *Particle, dt float64, mode Mode, elapsed float64, focused, hovered bool) {
	cfg := in.Config

	// Photo appear animation (upload scale-in).
	if p.appear != nil {
		v, done := p.appear.Update(float32(dt))
		p.appearScale = float64(v)
		if done {
			p.appear = nil
			p.appearScale = 1
		}
	}

	rate := cfg.BaseRate
	if focused {
		rate = cfg.FocusRate
	}

	p.Position = stepVec(p.Position, p.TargetPosition, rate)

	scaleTarget := p.TargetScale
	if hovered && mode != ModeFocus {
		scaleTarget = scaleTarget.Scale(cfg.HoverBoost)
	}
	p.Scale = stepVec(p.Scale, scaleTarget, rate)

	// Ambient layers are rewritten from scratch each frame.
	p.Sway = Vec3{}
	p.Jitter = Vec3{}
	p.Pulse = 1

	if mode == ModeTree && !focused {
		p.Sway = Vec3{
			X: math.Sin(elapsed*cfg.SwayFreq+p.Phase) * cfg.SwayAmp,
			Y: math.Sin(elapsed*cfg.SwayFreq*0.7+p.Phase*2) * cfg.SwayAmp * 0.6,
		}
		if p.Role == RoleDeco {
			p.Jitter = Vec3{
				Y: math.Sin(elapsed*1.1+p.Phase) * 0.1,
				Z: math.Cos(elapsed*0.9+p.Phase) * 0.06,
			}
		}
	}

	if mode == ModeTree && p.Role == RoleLight {
		p.Pulse *= 1 + cfg.FlickerAmp*math.Sin(elapsed*p.FlickerSpeed+p.Phase)
	}

	switch {
	case mode == ModeFocus && focused:
		// Smooth toward camera-neutral orientation.
		p.Rotation = stepVec(p.Rotation, Vec3{}, cfg.FocusRate)
	case mode == ModeHeart:
		p.Rotation.Y += cfg.HeartSpinRate * dt
		// Shared heartbeat: every particle pulses in unison.
		p.Pulse *= 1 + cfg.HeartbeatAmp*math.Sin(elapsed*cfg.HeartbeatFreq)
	default:
		p.Rotation.Y += cfg.SpinRate * dt
	}

	in.resolveMaterial(p, mode, elapsed, hovered)
}

// resolveMaterial applies the material priority chain to every surface of the
// particle. Exactly one tier wins per frame; each blend is exponential so
// tier changes fade over several frames rather than snapping.
func (in *Integrator) resolveMaterial(p *Particle, mode Mode, elapsed float64, hovered bool) {
	cfg := in.Config
	for i := range p.Surfaces {
		s := &p.Surfaces[i]
		switch {
		case hovered && mode != ModeFocus:
			// Hover highlight overrides everything.
			s.Color = stepColor(s.Color, ColorWhite, cfg.ColorRate)
			s.Emissive = stepColor(s.Emissive, cfg.HoverGlow, cfg.ColorRate)
			s.Intensity = step(s.Intensity, cfg.HoverIntensity, cfg.ColorRate)
		case mode == ModeHeart && p.Role != RolePhoto:
			s.Color = stepColor(s.Color, cfg.LoveRed, cfg.ColorRate)
			s.Emissive = stepColor(s.Emissive, cfg.LoveRed, cfg.ColorRate)
			s.Intensity = step(s.Intensity, 0.6, cfg.ColorRate)
		case p.Role == RoleLight:
			// Lights always glow, even outside tree mode: a slow tone cycle
			// with an independent faster intensity pulse.
			tone := 0.5 + 0.5*math.Sin(elapsed*cfg.LightCycleFreq+p.Phase)
			s.Emissive = stepColor(s.Emissive, mixColor(cfg.WarmA, cfg.WarmB, tone), cfg.ColorRate)
			s.Color = stepColor(s.Color, s.Base, cfg.ColorRate)
			pulse := cfg.LightBaseIntensity + cfg.LightPulseAmp*math.Sin(elapsed*cfg.LightPulseFreq+p.Phase)
			s.Intensity = step(s.Intensity, pulse, cfg.ColorRate)
		default:
			// Resting state: decay back to the captured base.
			s.Color = stepColor(s.Color, s.Base, cfg.ColorRate)
			s.Emissive = stepColor(s.Emissive, ColorBlack, cfg.ColorRate)
			s.Intensity = step(s.Intensity, 0, cfg.ColorRate)
		}
	}
}
