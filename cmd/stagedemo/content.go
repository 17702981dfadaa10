package main

import (
	"context"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"

	"github.com/gogpu/stage/geom"
	"github.com/gogpu/stage/source"
)

const cell = 50.0

// checker paints a checkerboard, only over the requested region.
func checker() source.Painter {
	light := gg.RGB(0.93, 0.93, 0.96)
	dark := gg.RGB(0.25, 0.45, 0.85)
	return source.PainterFunc(func(ctx context.Context, dc *gg.Context, region geom.Box) error {
		x0 := math.Floor(region.Left / cell)
		y0 := math.Floor(region.Top / cell)
		x1 := math.Ceil(region.Right / cell)
		y1 := math.Ceil(region.Bottom / cell)
		for y := y0; y < y1; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := x0; x < x1; x++ {
				c := light
				if int(x+y)%2 != 0 {
					c = dark
				}
				dc.SetFillBrush(gg.Solid(c))
				dc.DrawRectangle(x*cell, y*cell, cell, cell)
				if err := dc.Fill(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// rings paints concentric rings around the centre of a width×height frame.
func rings(width, height float64) source.Painter {
	return source.PainterFunc(func(ctx context.Context, dc *gg.Context, _ geom.Box) error {
		cx, cy := width/2, height/2
		r := math.Hypot(cx, cy)
		dc.SetLineWidth(cell / 4)
		for i := 0; float64(i)*cell < r; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := float64(i) * cell / r
			dc.SetStrokeBrush(gg.Solid(gg.RGB(1-t, 0.3, t)))
			dc.DrawCircle(cx, cy, float64(i)*cell)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
		return nil
	})
}

func painterFor(spec ShapeSpec) source.Painter {
	if spec.Pattern == "rings" {
		return rings(spec.Width, spec.Height)
	}
	return checker()
}

// drawPage records a page with a ruled grid, a heading bar and a gradient
// panel.
func drawPage(width, height float64) func(r *recording.Recorder) {
	return func(r *recording.Recorder) {
		r.SetFillRGB(1, 1, 1)
		r.DrawRectangle(0, 0, width, height)
		r.Fill()

		r.SetStrokeRGBA(0.2, 0.2, 0.3, 0.35)
		r.SetLineWidth(1)
		for x := cell; x < width; x += cell {
			r.DrawLine(x, 0, x, height)
			r.Stroke()
		}
		for y := cell; y < height; y += cell {
			r.DrawLine(0, y, width, y)
			r.Stroke()
		}

		r.SetFillRGB(0.1, 0.2, 0.45)
		r.DrawRectangle(cell, cell, width-2*cell, cell)
		r.Fill()

		g := recording.NewLinearGradientBrush(cell, 3*cell, width-cell, height-cell)
		g.AddColorStop(0, gg.RGB(0.95, 0.6, 0.2))
		g.AddColorStop(1, gg.RGB(0.6, 0.1, 0.5))
		r.SetFillStyle(g)
		r.DrawRoundedRectangle(cell, 3*cell, width-2*cell, height-4*cell, cell/2)
		r.Fill()
	}
}
