package scene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MaxSceneViews bounds the number of concurrently active cameras, per
// spec.md §3.5.
const MaxSceneViews = 4

// Matrix4 is a 4x4 matrix stored row-major, enough to carry the
// projection/view matrices SetupView2D/SetupView3D build. No package in
// this module multiplies points through it; package raster does not use it.
type Matrix4 [16]float64

func Identity4() Matrix4 {
	var m Matrix4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// viewTween holds the three independent gween.Tween animations a View's
// ScrollTo can have in flight, grounded on phanxgames-willow's
// scrollAnim/Camera.ScrollTo (camera.go) — generalized from a 2-axis
// camera pan to X/Y/Scale so a view transition can also zoom.
type viewTween struct {
	x, y, scale   *gween.Tween
	doneX, doneY, doneScale bool
}

// View is one of the scene's cameras: its own projection/view matrices,
// draw target index, optional stencil buffer, and transform. Render
// iterates active views in Priority order (spec.md §4.5).
type View struct {
	Name     string
	Active   bool
	Priority int

	X, Y, Z       float64
	ScaleX, ScaleY float64
	Rotation      float64

	Width, Height int
	Is3D          bool

	FOV, Near, Far float64

	Projection Matrix4
	ViewMatrix Matrix4

	UseStencil bool
	Stencil    []uint8

	tween *viewTween
}

func NewView(name string, width, height int) *View {
	return &View{
		Name: name, Active: true, Width: width, Height: height,
		ScaleX: 1, ScaleY: 1,
		Projection: Identity4(), ViewMatrix: Identity4(),
	}
}

// Bounds reports the view's world-space visible rectangle, used by the
// on-screen Activity tests.
func (v *View) Bounds() Rect {
	w := float64(v.Width) / v.ScaleX
	h := float64(v.Height) / v.ScaleY
	return Rect{X: v.X - w/2, Y: v.Y - h/2, Width: w, Height: h}
}

// ScrollTo begins (or replaces) a tween of X/Y/Scale toward the given
// target over duration seconds. This is purely cosmetic view easing — it
// never touches tilecollision's world coordinates, honoring the Non-goal
// that camera smoothing stays decoupled from physics.
func (v *View) ScrollTo(x, y, scale float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.X, v.Y, v.ScaleX, v.ScaleY = x, y, scale, scale
		v.tween = nil
		return
	}
	v.tween = &viewTween{
		x:     gween.New(float32(v.X), float32(x), duration, easeFn),
		y:     gween.New(float32(v.Y), float32(y), duration, easeFn),
		scale: gween.New(float32(v.ScaleX), float32(scale), duration, easeFn),
	}
}

// advanceTween steps any in-flight ScrollTo by dt seconds.
func (v *View) advanceTween(dt float32) {
	t := v.tween
	if t == nil {
		return
	}
	if !t.doneX {
		val, done := t.x.Update(dt)
		v.X = float64(val)
		t.doneX = done
	}
	if !t.doneY {
		val, done := t.y.Update(dt)
		v.Y = float64(val)
		t.doneY = done
	}
	if !t.doneScale {
		val, done := t.scale.Update(dt)
		v.ScaleX, v.ScaleY = float64(val), float64(val)
		t.doneScale = done
	}
	if t.doneX && t.doneY && t.doneScale {
		v.tween = nil
	}
}

// SetupView2D builds an ortho projection and a view matrix that applies
// scale, then a Z rotation about the origin, then a translation by
// (-X,-Y,-Z). The rotation is not re-centred on the view's middle.
func (v *View) SetupView2D() {
	v.Projection = orthoMatrix(float64(v.Width), float64(v.Height))
	m := Identity4()
	m = scaleMatrix(m, v.ScaleX, v.ScaleY, 1)
	m = rotateZMatrix(m, v.Rotation)
	m = translateMatrix(m, -v.X, -v.Y, -v.Z)
	v.ViewMatrix = m
}

// SetupView3D builds a perspective projection from the view's FOV/near/far
// and applies the same scale/rotate/translate chain as SetupView2D.
func (v *View) SetupView3D() {
	v.Projection = perspectiveMatrix(v.FOV, float64(v.Width)/float64(v.Height), v.Near, v.Far)
	m := Identity4()
	m = scaleMatrix(m, v.ScaleX, v.ScaleY, 1)
	m = rotateZMatrix(m, v.Rotation)
	m = translateMatrix(m, -v.X, -v.Y, -v.Z)
	v.ViewMatrix = m
}
