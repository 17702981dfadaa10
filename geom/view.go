package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// View is the transform of a host shape relative to the visible viewport.
//
// The shape is drawn by scaling its local content, rotating it about its
// centre and placing that centre at (Left, Top) in viewport coordinates.
type View struct {
	// Width and Height are the local (unscaled) extent of the shape.
	Width, Height float64

	// Angle is the rotation in degrees.
	Angle float64

	// ScaleX and ScaleY are the scale factors from local to viewport units.
	ScaleX, ScaleY float64

	// Left and Top position the shape centre in viewport coordinates.
	Left, Top float64

	// ViewportWidth and ViewportHeight are the visible area in pixels.
	ViewportWidth, ViewportHeight float64
}

// Uniform reports whether both scale factors are equal.
func (v View) Uniform() bool {
	return v.ScaleX == v.ScaleY
}

// Scale returns the horizontal scale factor, which equals the vertical
// one when Uniform holds.
func (v View) Scale() float64 {
	return v.ScaleX
}

// Rotation returns the right-angle rotation of the view and whether Angle
// is one.
func (v View) Rotation() (Rotation, bool) {
	return RotationFromDegrees(v.Angle)
}

// Cacheable reports whether the view can be served from a cached stage:
// uniform positive scale and a right-angle rotation.
func (v View) Cacheable() bool {
	if !v.Uniform() || !(v.ScaleX > 0) || math.IsInf(v.ScaleX, 0) {
		return false
	}
	_, ok := v.Rotation()
	return ok
}

// Matrix returns the transform from local coordinates, with the origin at
// the shape's top-left corner, to viewport coordinates.
func (v View) Matrix() gg.Matrix {
	m := gg.Translate(v.Left, v.Top)
	m = m.Multiply(gg.Rotate(v.Angle * math.Pi / 180))
	m = m.Multiply(gg.Scale(v.ScaleX, v.ScaleY))
	return m.Multiply(gg.Translate(-v.Width/2, -v.Height/2))
}

// origin returns the viewport origin expressed in the rotated-local frame,
// multiplied by scale.
func (v View) origin(r Rotation) (float64, float64) {
	cx, cy := RotatePoint(v.Width/2, v.Height/2, v.Width, v.Height, r, true)
	s := v.Scale()
	return cx*s - v.Left, cy*s - v.Top
}

// ToLocal maps a viewport point into the local frame. It must only be
// called on cacheable views.
func (v View) ToLocal(px, py float64) Point {
	r, _ := v.Rotation()
	s := v.Scale()
	ox, oy := v.origin(r)
	x, y := RotatePoint((px+ox)/s, (py+oy)/s, v.Width, v.Height, r, false)
	return Point{X: x, Y: y}
}

// ToViewport maps a local point into viewport coordinates. It must only be
// called on cacheable views.
func (v View) ToViewport(x, y float64) Point {
	r, _ := v.Rotation()
	s := v.Scale()
	ox, oy := v.origin(r)
	rx, ry := RotatePoint(x, y, v.Width, v.Height, r, true)
	return Point{X: rx*s - ox, Y: ry*s - oy}
}

// VisibleRegion returns the part of the local frame that falls inside the
// viewport, clamped to [0,Width]×[0,Height]. The result is empty when the
// shape is entirely off screen. The view must be cacheable.
func VisibleRegion(v View) Box {
	corners := [4]Point{
		v.ToLocal(0, 0),
		v.ToLocal(v.ViewportWidth, 0),
		v.ToLocal(0, v.ViewportHeight),
		v.ToLocal(v.ViewportWidth, v.ViewportHeight),
	}
	return BoxOf(corners[:]...).Clamp(v.Width, v.Height)
}

// ViewportRect maps a local box to the axis-aligned viewport rectangle it
// occupies under the view. The view must be cacheable.
func ViewportRect(v View, b Box) Box {
	return BoxOf(
		v.ToViewport(b.Left, b.Top),
		v.ToViewport(b.Right, b.Bottom),
	)
}
