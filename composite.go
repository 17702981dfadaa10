package stage

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/stage/geom"
)

// Composite draws the stage onto dc for view and reports whether it did.
// It returns false, drawing nothing, when no stage is ready, the view is
// not cacheable, the stage scale is a worse match than drawing directly, or
// a region stage does not cover the visible box. dc's transform must be
// axis-aligned; the host normally leaves it at identity.
//
// Composite does not change the cache state.
func (c *Cache) Composite(dc *gg.Context, view geom.View) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.compositableLocked(view) {
		c.stats.compositeMisses.Add(1)
		return false
	}

	r, _ := view.Rotation()
	img := c.variants.GetOrCreate(r, func() *gg.ImageBuf {
		return rotateStage(c.stage, r)
	})
	dst := geom.ViewportRect(view, c.st.Region)
	dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             dst.Left,
		Y:             dst.Top,
		DstWidth:      dst.Width(),
		DstHeight:     dst.Height(),
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
	c.stats.compositeHits.Add(1)
	return true
}

func (c *Cache) compositableLocked(view geom.View) bool {
	if !c.st.Ready || c.stage == nil || !view.Cacheable() {
		return false
	}
	if !scaleUsable(view.Scale(), c.st.Scale) {
		return false
	}
	if c.st.FullImage {
		return true
	}
	return c.st.Region.Contains(geom.VisibleRegion(view))
}

// scaleUsable reports whether a stage rasterized at cached is a better
// source for a frame at scale than unscaled content: |s−cs| < |s−1|, or an
// exact match.
func scaleUsable(scale, cached float64) bool {
	return scale == cached || math.Abs(scale-cached) < math.Abs(scale-1)
}

// rotateStage returns the stage turned clockwise by r, as a gg image.
// Right-angle turns are exact pixel permutations.
func rotateStage(pm *gg.Pixmap, r geom.Rotation) *gg.ImageBuf {
	src := pm.ToImage()
	if r == geom.Rotate0 {
		return gg.ImageBufFromImage(src)
	}

	w, h := float64(pm.Width()), float64(pm.Height())
	var s2d f64.Aff3
	dw, dh := pm.Width(), pm.Height()
	switch r {
	case geom.Rotate90:
		s2d = f64.Aff3{0, -1, h, 1, 0, 0}
		dw, dh = dh, dw
	case geom.Rotate180:
		s2d = f64.Aff3{-1, 0, w, 0, -1, h}
	case geom.Rotate270:
		s2d = f64.Aff3{0, 1, 0, -1, 0, w}
		dw, dh = dh, dw
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.NearestNeighbor.Transform(dst, s2d, src, src.Bounds(), draw.Src, nil)
	return gg.ImageBufFromImage(dst)
}
