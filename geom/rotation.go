package geom

import "math"

// Rotation is a right-angle rotation in degrees, clockwise on screen.
type Rotation int

// Supported rotations.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// RotationFromDegrees normalizes deg into one of the four supported
// rotations. It reports false when deg is not a multiple of 90.
func RotationFromDegrees(deg float64) (Rotation, bool) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return Rotate0, false
	}
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	switch n {
	case 0:
		return Rotate0, true
	case 90:
		return Rotate90, true
	case 180:
		return Rotate180, true
	case 270:
		return Rotate270, true
	}
	return Rotate0, false
}

// Radians returns the rotation angle in radians.
func (r Rotation) Radians() float64 {
	return float64(r) * math.Pi / 180
}

// Swaps reports whether the rotation exchanges width and height.
func (r Rotation) Swaps() bool {
	return r == Rotate90 || r == Rotate270
}

// Size returns the extent of a width×height rectangle after rotation.
func (r Rotation) Size(width, height float64) (float64, float64) {
	if r.Swaps() {
		return height, width
	}
	return width, height
}

// RotatePoint maps (x, y) between the local frame of a width×height shape
// and its rotated-local frame. With clockwise set the point moves from local
// to rotated-local; otherwise the inverse mapping is applied.
func RotatePoint(x, y, width, height float64, r Rotation, clockwise bool) (float64, float64) {
	switch r {
	case Rotate0:
		return x, y
	case Rotate180:
		return width - x, height - y
	}

	d := width
	if r == Rotate90 {
		d = height
	}
	if clockwise == (r == Rotate90) {
		return d - y, x
	}
	return y, d - x
}
