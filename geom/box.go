package geom

import (
	"fmt"
	"math"
)

// Box is an axis-aligned rectangle given by its edges.
type Box struct {
	Left, Top     float64
	Right, Bottom float64
}

// NewBox returns the box with top-left corner (x, y) and the given size.
func NewBox(x, y, width, height float64) Box {
	return Box{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// BoxOf returns the smallest box containing all points.
// The zero Box is returned when no points are given.
func BoxOf(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		b.Left = math.Min(b.Left, p.X)
		b.Top = math.Min(b.Top, p.Y)
		b.Right = math.Max(b.Right, p.X)
		b.Bottom = math.Max(b.Bottom, p.Y)
	}
	return b
}

// Width returns Right - Left.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns Bottom - Top.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Center returns the centre point of the box.
func (b Box) Center() Point {
	return Point{X: b.Left + b.Width()/2, Y: b.Top + b.Height()/2}
}

// IsEmpty reports whether the box has no area.
func (b Box) IsEmpty() bool {
	return b.Right <= b.Left || b.Bottom <= b.Top
}

// Contains reports whether o lies entirely inside b. Shared edges count as
// inside.
func (b Box) Contains(o Box) bool {
	return b.Left <= o.Left && o.Right <= b.Right &&
		b.Top <= o.Top && o.Bottom <= b.Bottom
}

// Equal reports whether both boxes have exactly the same edges.
func (b Box) Equal(o Box) bool {
	return b == o
}

// Expand grows the box by margin on every side. A negative margin shrinks it.
func (b Box) Expand(margin float64) Box {
	return Box{
		Left:   b.Left - margin,
		Top:    b.Top - margin,
		Right:  b.Right + margin,
		Bottom: b.Bottom + margin,
	}
}

// Clamp restricts the box to [0,width]×[0,height].
func (b Box) Clamp(width, height float64) Box {
	return Box{
		Left:   clamp(b.Left, 0, width),
		Top:    clamp(b.Top, 0, height),
		Right:  clamp(b.Right, 0, width),
		Bottom: clamp(b.Bottom, 0, height),
	}
}

// String implements fmt.Stringer.
func (b Box) String() string {
	return fmt.Sprintf("[%g,%g → %g,%g]", b.Left, b.Top, b.Right, b.Bottom)
}

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
