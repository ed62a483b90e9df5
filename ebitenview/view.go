// Package ebitenview is a reference garland.Renderer built on [Ebitengine].
//
// It projects the 3D particle field through a simple perspective camera onto
// a 2D canvas, drawing depth-sorted billboards with the vector package.
// Picking runs in screen space against the projected billboards of the
// decoration group.
//
// [Ebitengine]: https://ebitengine.org
package ebitenview

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/pinegrove/garland"
)

// Config controls the canvas and camera.
type Config struct {
	// Width and Height are the canvas size in pixels.
	Width, Height int
	// CameraDistance is how far the camera sits from the origin on +Z.
	CameraDistance float64
	// FocalLength is the perspective projection factor in pixels.
	FocalLength float64
	// ClearColor is the background fill.
	ClearColor color.RGBA
}

// DefaultConfig returns a 1280x720 view of the stock scene.
func DefaultConfig() Config {
	return Config{
		Width:          1280,
		Height:         720,
		CameraDistance: 16,
		FocalLength:    620,
		ClearColor:     color.RGBA{10, 14, 26, 255},
	}
}

// surfaceState is the live material of one billboard surface.
type surfaceState struct {
	color     garland.Color
	emissive  garland.Color
	intensity float64
}

// object is one visual billboard.
type object struct {
	id       uint32
	role     garland.Role
	position garland.Vec3
	scale    garland.Vec3
	rotation garland.Vec3
	surfaces [2]surfaceState
	pickable bool

	// Projection cache, refreshed each Draw/Pick.
	sx, sy, viewZ float64
	radius        float64
	visible       bool
}

// View implements garland.Renderer.
type View struct {
	cfg      Config
	objects  []*object
	byID     map[uint32]*object
	nextID   uint32
	sceneYaw float64
	camDist  float64
	sorted   []*object
}

// New creates an empty View.
func New(cfg Config) *View {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.CameraDistance <= 0 {
		cfg.CameraDistance = 16
	}
	if cfg.FocalLength <= 0 {
		cfg.FocalLength = 620
	}
	return &View{
		cfg:     cfg,
		byID:    make(map[uint32]*object),
		camDist: cfg.CameraDistance,
	}
}

// Add creates a billboard for a particle role and returns its visual id.
// Snow billboards are excluded from the pickable decoration group.
func (v *View) Add(role garland.Role) uint32 {
	v.nextID++
	o := &object{
		id:       v.nextID,
		role:     role,
		scale:    garland.Splat(1),
		pickable: role != garland.RoleSnow,
	}
	v.objects = append(v.objects, o)
	v.byID[o.id] = o
	return o.id
}

// SetTransform implements garland.Renderer.
func (v *View) SetTransform(visualID uint32, position, scale, rotation garland.Vec3) {
	if o := v.byID[visualID]; o != nil {
		o.position = position
		o.scale = scale
		o.rotation = rotation
	}
}

// SetSurface implements garland.Renderer. Surfaces beyond the two a
// billboard owns are ignored.
func (v *View) SetSurface(visualID uint32, surface int, clr, emissive garland.Color, intensity float64) {
	o := v.byID[visualID]
	if o == nil || surface < 0 || surface >= len(o.surfaces) {
		return
	}
	o.surfaces[surface] = surfaceState{color: clr, emissive: emissive, intensity: intensity}
}

// SetSceneRotation implements garland.Renderer.
func (v *View) SetSceneRotation(yaw float64) {
	v.sceneYaw = yaw
}

// SetCameraDistance moves the camera along +Z, used for intro dolly moves.
func (v *View) SetCameraDistance(d float64) {
	if d > 0 {
		v.camDist = d
	}
}

// project refreshes o's screen-space cache. Objects behind the near plane
// are marked invisible.
func (v *View) project(o *object) {
	sinY, cosY := math.Sincos(v.sceneYaw)
	x := o.position.X*cosY - o.position.Z*sinY
	z := o.position.X*sinY + o.position.Z*cosY

	viewZ := v.camDist - z
	if viewZ < 0.5 {
		o.visible = false
		return
	}
	f := v.cfg.FocalLength / viewZ
	o.sx = float64(v.cfg.Width)/2 + x*f
	o.sy = float64(v.cfg.Height)/2 - o.position.Y*f
	o.viewZ = viewZ
	o.radius = baseSize(o.role) * avg(o.scale) * f
	o.visible = o.radius > 0.3
}

// baseSize is the world-space half-size of a role's billboard at unit scale.
func baseSize(role garland.Role) float64 {
	switch role {
	case garland.RolePhoto:
		return 0.9
	case garland.RoleLight:
		return 0.35
	case garland.RoleSnow:
		return 0.5
	}
	return 0.5
}

func avg(s garland.Vec3) float64 {
	return (s.X + s.Y + s.Z) / 3
}

// Pick implements garland.Renderer: a screen-space hit test against the
// projected billboards of the decoration group, nearest first.
func (v *View) Pick(x, y float64) (uint32, bool) {
	px := x * float64(v.cfg.Width)
	py := y * float64(v.cfg.Height)

	var best *object
	for _, o := range v.objects {
		if !o.pickable {
			continue
		}
		v.project(o)
		if !o.visible {
			continue
		}
		dx := px - o.sx
		dy := py - o.sy
		if dx*dx+dy*dy > o.radius*o.radius {
			continue
		}
		if best == nil || o.viewZ < best.viewZ {
			best = o
		}
	}
	if best == nil {
		return 0, false
	}
	return best.id, true
}

// Draw renders all billboards back to front onto screen.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(v.cfg.ClearColor)

	v.sorted = v.sorted[:0]
	for _, o := range v.objects {
		v.project(o)
		if o.visible {
			v.sorted = append(v.sorted, o)
		}
	}
	sort.Slice(v.sorted, func(i, j int) bool {
		return v.sorted[i].viewZ > v.sorted[j].viewZ
	})

	for _, o := range v.sorted {
		switch o.role {
		case garland.RolePhoto:
			v.drawPhoto(screen, o)
		default:
			v.drawDot(screen, o)
		}
	}
}

func (v *View) drawDot(screen *ebiten.Image, o *object) {
	s := o.surfaces[0]
	vector.DrawFilledCircle(screen, float32(o.sx), float32(o.sy), float32(o.radius), toRGBA(s.color, 1), true)
	if s.intensity > 0.01 {
		// Soft additive halo approximated with a translucent overdraw.
		a := math.Min(s.intensity*0.35, 0.8)
		vector.DrawFilledCircle(screen, float32(o.sx), float32(o.sy), float32(o.radius*1.9), toRGBA(s.emissive, a), true)
	}
}

func (v *View) drawPhoto(screen *ebiten.Image, o *object) {
	// Billboard foreshortened by yaw so frames visibly turn.
	w := o.radius * 2 * math.Max(math.Abs(math.Cos(o.rotation.Y)), 0.15)
	h := o.radius * 2.4

	frame := o.surfaces[1]
	plate := o.surfaces[0]
	vector.DrawFilledRect(screen, float32(o.sx-w/2), float32(o.sy-h/2), float32(w), float32(h), toRGBA(frame.color, 1), true)
	inset := math.Min(w, h) * 0.12
	vector.DrawFilledRect(screen, float32(o.sx-w/2+inset), float32(o.sy-h/2+inset),
		float32(w-2*inset), float32(h-2*inset), toRGBA(plate.color, 1), true)
	if plate.intensity > 0.01 {
		a := math.Min(plate.intensity*0.3, 0.7)
		vector.DrawFilledRect(screen, float32(o.sx-w*0.75), float32(o.sy-h*0.75),
			float32(w*1.5), float32(h*1.5), toRGBA(plate.emissive, a), true)
	}
}

func toRGBA(c garland.Color, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(alpha) * 255),
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
