package geom

import "math"

// FitsFull reports whether the whole width×height content, rasterized at
// scale, fits in budget pixels along both axes.
func FitsFull(width, height, scale float64, budget int) bool {
	b := float64(budget)
	return width*scale <= b && height*scale <= b
}

// PaddedRegion returns the region to rasterize around visible: a box of
// min(extent, width) × min(extent, height) local units centred on visible,
// shifted back inside [0,width]×[0,height] where it would cross an edge.
func PaddedRegion(visible Box, extent, width, height float64) Box {
	bw := math.Min(extent, width)
	bh := math.Min(extent, height)
	c := visible.Center()

	if c.X-bw/2 < 0 {
		c.X = bw / 2
	} else if c.X+bw/2 > width {
		c.X = width - bw/2
	}
	if c.Y-bh/2 < 0 {
		c.Y = bh / 2
	} else if c.Y+bh/2 > height {
		c.Y = height - bh/2
	}

	return Box{
		Left:   c.X - bw/2,
		Top:    c.Y - bh/2,
		Right:  c.X + bw/2,
		Bottom: c.Y + bh/2,
	}
}

// PixelSize returns the integer raster size needed to hold a
// width×height local extent at scale. Each side is at least one pixel.
func PixelSize(width, height, scale float64) (int, int) {
	w := int(math.Ceil(width*scale - 1e-9))
	h := int(math.Ceil(height*scale - 1e-9))
	return max(w, 1), max(h, 1)
}
