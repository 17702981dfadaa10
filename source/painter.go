package source

import (
	"context"

	"github.com/gogpu/gg"
	"github.com/jmgilman/go/errors"

	"github.com/gogpu/stage/geom"
)

// Painter draws custom content in local coordinates.
//
// Paint draws onto dc, whose transform already maps local coordinates to
// the target. region is the part of the local frame that must be covered;
// a painter may skip content outside it. Long-running painters should check
// ctx and return its error once it is done.
type Painter interface {
	Paint(ctx context.Context, dc *gg.Context, region geom.Box) error
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(ctx context.Context, dc *gg.Context, region geom.Box) error

// Paint calls f(ctx, dc, region).
func (f PainterFunc) Paint(ctx context.Context, dc *gg.Context, region geom.Box) error {
	return f(ctx, dc, region)
}

type painterSource struct {
	width, height float64
	p             Painter
}

// NewPainter returns a Source that rasterizes p over a width×height local
// extent.
func NewPainter(width, height float64, p Painter) Source {
	return &painterSource{width: width, height: height, p: p}
}

func (s *painterSource) Size() (float64, float64) {
	return s.width, s.height
}

func (s *painterSource) RenderAsync(t Target) Job {
	if t.DC == nil {
		return Failed(errors.New(errors.CodeInvalidInput, "painter: target has no surface"))
	}
	return Go(func(ctx context.Context) error {
		return errors.Wrap(s.p.Paint(ctx, t.DC, t.Region), errors.CodeExecutionFailed, "painter: paint failed")
	})
}

func (s *painterSource) RenderSync(dc *gg.Context, width, height float64) error {
	err := s.p.Paint(context.Background(), dc, geom.NewBox(0, 0, width, height))
	return errors.Wrap(err, errors.CodeExecutionFailed, "painter: paint failed")
}
