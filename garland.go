package garland

import (
	"math"
	"math/rand/v2"
)

// Vec3 is a 3D vector used for positions, scales, and Euler rotations
// throughout the API.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o componentwise.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o componentwise.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v with every component multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the componentwise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Splat returns a Vec3 with all three components set to s.
func Splat(s float64) Vec3 {
	return Vec3{s, s, s}
}

// Color represents an RGB color with components in [0, 1]. Alpha is owned by
// the renderer; the engine only drives hue and emission.
type Color struct {
	R, G, B float64
}

// ColorWhite is the hover-highlight blend target.
var ColorWhite = Color{1, 1, 1}

// ColorBlack is the resting emissive (no glow).
var ColorBlack = Color{0, 0, 0}

// Bounds is an axis-aligned 3D box, used for the snow volume and the scatter
// cube.
type Bounds struct {
	Min, Max Vec3
}

// Contains reports whether p lies inside the box. Points on a face are
// considered inside.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// step moves cur a fixed fraction of the remaining distance toward target.
// This is the exponential smoothing used for every live value in the engine:
// repeated steps converge monotonically with no overshoot.
func step(cur, target, rate float64) float64 {
	return cur + (target-cur)*rate
}

// stepVec applies step to every component.
func stepVec(cur, target Vec3, rate float64) Vec3 {
	return Vec3{
		step(cur.X, target.X, rate),
		step(cur.Y, target.Y, rate),
		step(cur.Z, target.Z, rate),
	}
}

// stepColor applies step to every channel.
func stepColor(cur, target Color, rate float64) Color {
	return Color{
		step(cur.R, target.R, rate),
		step(cur.G, target.G, rate),
		step(cur.B, target.B, rate),
	}
}

// mixColor linearly interpolates between two colors by t.
func mixColor(a, b Color, t float64) Color {
	return Color{
		lerp(a.R, b.R, t),
		lerp(a.G, b.G, t),
		lerp(a.B, b.B, t),
	}
}
