package stage

import (
	"image/color"
	"sync"

	"github.com/gogpu/gg"

	"github.com/gogpu/stage/document"
	"github.com/gogpu/stage/geom"
	"github.com/gogpu/stage/source"
)

// Shape is a host object that places a source on a canvas and renders it
// through its own stage cache.
//
// The exported attributes may be changed between frames from the rendering
// goroutine. Left and Top position the shape's centre in viewport
// coordinates; Angle is in degrees, clockwise.
type Shape struct {
	Left, Top      float64
	Angle          float64
	ScaleX, ScaleY float64
	Visible        bool

	// Background, if set, fills the shape's extent under the content.
	Background color.Color

	// Stroke, if set with a positive StrokeWidth, outlines the extent.
	// StrokeDash makes the outline dashed.
	Stroke      color.Color
	StrokeWidth float64
	StrokeDash  []float64

	// Src is the source reference written by ToObject and SVG.
	Src string

	kind  string
	page  int
	src   source.Source
	cache *Cache

	mu        sync.Mutex
	canvas    *Canvas
	onRepaint func()
}

// Kinds reported by Shape.Kind.
const (
	KindPainter  = "staged_image"
	KindDocument = "document"
	KindSource   = "staged"
)

// NewShape returns a visible shape at the origin with unit scale that
// rasterizes src.
func NewShape(src source.Source, opts ...Option) *Shape {
	s := &Shape{
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
		kind:    KindSource,
		page:    -1,
		src:     src,
	}
	opts = append(opts[:len(opts):len(opts)], WithRepaint(s.RequestRepaint))
	s.cache = NewCache(src, opts...)
	return s
}

// NewPainterShape returns a shape for a custom painter with a white
// background.
func NewPainterShape(width, height float64, p source.Painter, opts ...Option) *Shape {
	s := NewShape(source.NewPainter(width, height, p), opts...)
	s.kind = KindPainter
	s.Background = color.White
	return s
}

// NewDocumentShape returns a shape for one document page.
func NewDocumentShape(engine *document.Engine, page *document.Page, opts ...Option) *Shape {
	s := NewShape(source.NewDocumentPage(engine, page), opts...)
	s.kind = KindDocument
	s.page = page.Index()
	return s
}

// Kind returns the shape's type name.
func (s *Shape) Kind() string { return s.kind }

// Size returns the local extent of the content.
func (s *Shape) Size() (width, height float64) { return s.src.Size() }

// Cache returns the shape's stage cache.
func (s *Shape) Cache() *Cache { return s.cache }

// OnRepaint sets a hook called when the shape needs to be drawn again.
// It may run on any goroutine.
func (s *Shape) OnRepaint(fn func()) {
	s.mu.Lock()
	s.onRepaint = fn
	s.mu.Unlock()
}

// RequestRepaint marks the owning canvas dirty and calls the repaint hook.
func (s *Shape) RequestRepaint() {
	s.mu.Lock()
	cv, fn := s.canvas, s.onRepaint
	s.mu.Unlock()

	if cv != nil {
		cv.MarkDirty()
	}
	if fn != nil {
		fn()
	}
}

// View returns the shape's transform for a viewport of the given size.
func (s *Shape) View(viewportWidth, viewportHeight float64) geom.View {
	w, h := s.src.Size()
	return geom.View{
		Width:          w,
		Height:         h,
		Angle:          s.Angle,
		ScaleX:         s.ScaleX,
		ScaleY:         s.ScaleY,
		Left:           s.Left,
		Top:            s.Top,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

// Render draws the shape for one frame. The cache is validated first, then
// the stage is composited if it serves the view; otherwise the content is
// drawn directly. Errors are logged, never returned.
func (s *Shape) Render(dc *gg.Context, viewportWidth, viewportHeight int) {
	if !s.Visible {
		return
	}

	view := s.View(float64(viewportWidth), float64(viewportHeight))
	s.cache.Validate(Request{
		View:   view,
		Budget: s.cache.Budget(viewportWidth, viewportHeight),
	})

	if s.Background != nil {
		s.fillBackground(dc, view)
	}
	if !s.cache.Composite(dc, view) {
		s.renderDirect(dc, view)
	}
	if s.Stroke != nil && s.StrokeWidth > 0 {
		s.strokeOutline(dc, view)
	}
}

// Close releases the shape's cache.
func (s *Shape) Close() {
	s.cache.Close()
}

func (s *Shape) renderDirect(dc *gg.Context, view geom.View) {
	dc.Push()
	defer dc.Pop()
	dc.Transform(view.Matrix())
	if err := s.src.RenderSync(dc, view.Width, view.Height); err != nil {
		s.cache.cfg.log().Warn("stage: direct render failed", "kind", s.kind, "err", err)
	}
}

func (s *Shape) fillBackground(dc *gg.Context, view geom.View) {
	dc.Push()
	defer dc.Pop()
	dc.Transform(view.Matrix())
	dc.ClearPath()
	dc.SetFillBrush(gg.Solid(rgbaOf(s.Background)))
	dc.DrawRectangle(0, 0, view.Width, view.Height)
	_ = dc.Fill()
}

func (s *Shape) strokeOutline(dc *gg.Context, view geom.View) {
	dc.Push()
	defer dc.Pop()
	dc.Transform(view.Matrix())
	dc.ClearPath()
	dc.SetStrokeBrush(gg.Solid(rgbaOf(s.Stroke)))
	dc.SetLineWidth(s.StrokeWidth)
	if len(s.StrokeDash) > 0 {
		dc.SetDash(s.StrokeDash...)
	} else {
		dc.ClearDash()
	}
	dc.DrawRectangle(0, 0, view.Width, view.Height)
	_ = dc.Stroke()
}

func (s *Shape) attach(cv *Canvas) {
	s.mu.Lock()
	s.canvas = cv
	s.mu.Unlock()
}

// rgbaOf converts c to gg's straight-alpha color.
func rgbaOf(c color.Color) gg.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gg.RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}
