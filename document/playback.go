package document

import (
	"context"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/gogpu/gg/text"
)

// playback draws a recording onto an existing gg.Context.
//
// Recorded geometry is already in page coordinates, so every command is
// issued under the base matrix the context carried when playback began.
// Line widths follow that matrix because gg scales strokes by the
// transform. Once ctx is done, all drawing becomes a no-op and End reports
// the context error.
type playback struct {
	ctx   context.Context
	dc    *gg.Context
	base  gg.Matrix
	depth int
}

var _ recording.Backend = (*playback)(nil)

func newPlayback(ctx context.Context, dc *gg.Context) *playback {
	return &playback{ctx: ctx, dc: dc}
}

func (p *playback) live() bool {
	return p.ctx.Err() == nil
}

// Begin ignores the recording size; the target surface is the caller's.
// A failed Begin leaves the context untouched, since End is not called.
func (p *playback) Begin(_, _ int) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	p.dc.Push()
	p.base = p.dc.GetTransform()
	p.depth = 0
	return nil
}

// End unwinds any unbalanced saves so the caller's context is left as it
// was handed over, cancelled or not.
func (p *playback) End() error {
	for ; p.depth > 0; p.depth-- {
		p.dc.Pop()
	}
	p.dc.Pop()
	return p.ctx.Err()
}

func (p *playback) Save() {
	if !p.live() {
		return
	}
	p.dc.Push()
	p.depth++
}

func (p *playback) Restore() {
	if !p.live() || p.depth == 0 {
		return
	}
	p.dc.Pop()
	p.depth--
}

// SetTransform is a no-op: the recorder bakes its transform into every
// path and rectangle it emits.
func (p *playback) SetTransform(recording.Matrix) {}

func (p *playback) SetClip(path *gg.Path, rule recording.FillRule) {
	if path == nil || !p.live() {
		return
	}
	p.setPath(path)
	p.dc.SetFillRule(convertFillRule(rule))
	p.dc.Clip()
}

func (p *playback) ClearClip() {
	if !p.live() {
		return
	}
	p.dc.ResetClip()
}

func (p *playback) FillPath(path *gg.Path, brush recording.Brush, rule recording.FillRule) {
	if path == nil || !p.live() {
		return
	}
	p.applyBrush(brush, true)
	p.dc.SetFillRule(convertFillRule(rule))
	p.setPath(path)
	_ = p.dc.Fill()
}

func (p *playback) StrokePath(path *gg.Path, brush recording.Brush, stroke recording.Stroke) {
	if path == nil || !p.live() {
		return
	}
	p.applyBrush(brush, false)
	p.applyStroke(stroke)
	p.setPath(path)
	_ = p.dc.Stroke()
}

func (p *playback) FillRect(rect recording.Rect, brush recording.Brush) {
	if rect.IsEmpty() || !p.live() {
		return
	}
	p.applyBrush(brush, true)
	p.dc.ClearPath()
	p.dc.DrawRectangle(rect.MinX, rect.MinY, rect.Width(), rect.Height())
	_ = p.dc.Fill()
}

func (p *playback) DrawImage(img image.Image, src, dst recording.Rect, opts recording.ImageOptions) {
	if img == nil || dst.IsEmpty() || !p.live() {
		return
	}

	buf := gg.ImageBufFromImage(img)
	o := gg.DrawImageOptions{
		X:             dst.MinX,
		Y:             dst.MinY,
		DstWidth:      dst.Width(),
		DstHeight:     dst.Height(),
		Interpolation: gg.InterpBilinear,
		Opacity:       opts.Alpha,
		BlendMode:     gg.BlendNormal,
	}
	if opts.Interpolation == recording.InterpolationNearest {
		o.Interpolation = gg.InterpNearest
	}
	if !src.IsEmpty() {
		b := img.Bounds()
		r := image.Rect(int(src.MinX), int(src.MinY), int(src.MaxX), int(src.MaxY)).
			Sub(b.Min).Intersect(image.Rect(0, 0, b.Dx(), b.Dy()))
		o.SrcRect = &r
	}
	p.dc.DrawImageEx(buf, o)
}

// DrawText is a no-op. Text arrives without a face and is laid out by the
// caller before recording.
func (p *playback) DrawText(string, float64, float64, text.Face, recording.Brush) {}

func (p *playback) setPath(path *gg.Path) {
	p.dc.ClearPath()
	path.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			p.dc.MoveTo(c[0], c[1])
		case gg.LineTo:
			p.dc.LineTo(c[0], c[1])
		case gg.QuadTo:
			p.dc.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			p.dc.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			p.dc.ClosePath()
		}
	})
}

// applyBrush maps a recorded brush onto the context. Gradient geometry is
// in page coordinates and is moved into device space through the base
// matrix, since gg samples brushes per device pixel.
func (p *playback) applyBrush(brush recording.Brush, fill bool) {
	var b gg.Brush
	switch br := brush.(type) {
	case recording.SolidBrush:
		b = gg.Solid(br.Color)
	case *recording.LinearGradientBrush:
		s := p.base.TransformPoint(br.Start)
		e := p.base.TransformPoint(br.End)
		grad := gg.NewLinearGradientBrush(s.X, s.Y, e.X, e.Y)
		for _, stop := range br.Stops {
			grad.AddColorStop(stop.Offset, stop.Color)
		}
		grad.SetExtend(gg.ExtendMode(br.Extend))
		b = grad
	case *recording.RadialGradientBrush:
		c := p.base.TransformPoint(br.Center)
		f := p.base.TransformPoint(br.Focus)
		k := math.Sqrt(math.Abs(p.base.A*p.base.E - p.base.B*p.base.D))
		grad := gg.NewRadialGradientBrush(c.X, c.Y, br.StartRadius*k, br.EndRadius*k)
		grad.SetFocus(f.X, f.Y)
		for _, stop := range br.Stops {
			grad.AddColorStop(stop.Offset, stop.Color)
		}
		grad.SetExtend(gg.ExtendMode(br.Extend))
		b = grad
	default:
		b = gg.Solid(gg.Black)
	}

	if fill {
		p.dc.SetFillBrush(b)
	} else {
		p.dc.SetStrokeBrush(b)
	}
}

func (p *playback) applyStroke(stroke recording.Stroke) {
	p.dc.SetLineWidth(stroke.Width)
	p.dc.SetLineCap(convertLineCap(stroke.Cap))
	p.dc.SetLineJoin(convertLineJoin(stroke.Join))
	p.dc.SetMiterLimit(stroke.MiterLimit)
	if len(stroke.DashPattern) > 0 {
		p.dc.SetDash(stroke.DashPattern...)
		p.dc.SetDashOffset(stroke.DashOffset)
	} else {
		p.dc.ClearDash()
	}
}

func convertFillRule(rule recording.FillRule) gg.FillRule {
	if rule == recording.FillRuleEvenOdd {
		return gg.FillRuleEvenOdd
	}
	return gg.FillRuleNonZero
}

func convertLineCap(c recording.LineCap) gg.LineCap {
	switch c {
	case recording.LineCapRound:
		return gg.LineCapRound
	case recording.LineCapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func convertLineJoin(j recording.LineJoin) gg.LineJoin {
	switch j {
	case recording.LineJoinRound:
		return gg.LineJoinRound
	case recording.LineJoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}
