package source

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/stage/document"
	"github.com/gogpu/stage/geom"
)

func waitDone(t *testing.T, j Job) {
	t.Helper()
	select {
	case <-j.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish")
	}
}

func TestGo(t *testing.T) {
	j := Go(func(context.Context) error { return nil })
	waitDone(t, j)
	assert.NoError(t, j.Err())
	j.Cancel()
	assert.NoError(t, j.Err(), "cancel after completion keeps the result")
}

func TestGoCancel(t *testing.T) {
	started := make(chan struct{})
	j := Go(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	})
	<-started
	assert.NoError(t, j.Err())

	j.Cancel()
	j.Cancel()
	waitDone(t, j)
	assert.ErrorIs(t, j.Err(), context.Canceled)
}

func TestFailed(t *testing.T) {
	want := errors.New(errors.CodeInternal, "boom")
	j := Failed(want)
	waitDone(t, j)
	assert.Equal(t, want, j.Err())
}

func TestPainterSource(t *testing.T) {
	var gotRegion geom.Box
	src := NewPainter(300, 200, PainterFunc(func(_ context.Context, dc *gg.Context, region geom.Box) error {
		gotRegion = region
		dc.SetFillBrush(gg.Solid(gg.Black))
		dc.DrawRectangle(0, 0, 300, 200)
		return dc.Fill()
	}))

	w, h := src.Size()
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 200.0, h)

	dc := gg.NewContext(150, 100)
	dc.Scale(0.5, 0.5)
	region := geom.NewBox(0, 0, 300, 200)
	j := src.RenderAsync(Target{DC: dc, Region: region, Scale: 0.5, Full: true})
	waitDone(t, j)
	require.NoError(t, j.Err())
	assert.Equal(t, region, gotRegion)

	c := color.NRGBAModel.Convert(dc.Image().At(75, 50)).(color.NRGBA)
	assert.Equal(t, uint8(255), c.A)

	require.NoError(t, src.RenderSync(gg.NewContext(10, 10), 300, 200))
	assert.Equal(t, geom.NewBox(0, 0, 300, 200), gotRegion)
}

func TestPainterSourceErrors(t *testing.T) {
	src := NewPainter(10, 10, PainterFunc(func(context.Context, *gg.Context, geom.Box) error {
		return errors.New(errors.CodeInternal, "broken painter")
	}))

	j := src.RenderAsync(Target{})
	waitDone(t, j)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(j.Err()))

	j = src.RenderAsync(Target{DC: gg.NewContext(10, 10), Scale: 1})
	waitDone(t, j)
	assert.Equal(t, errors.CodeExecutionFailed, errors.GetCode(j.Err()))

	err := src.RenderSync(gg.NewContext(10, 10), 10, 10)
	assert.Equal(t, errors.CodeExecutionFailed, errors.GetCode(err))
}

func TestDocumentPageSource(t *testing.T) {
	page := document.New().NewPage(40, 40, func(r *recording.Recorder) {
		r.SetFillRGBA(0, 0, 1, 1)
		r.DrawRectangle(0, 0, 40, 40)
		r.Fill()
	})
	src := NewDocumentPage(document.NewEngine(), page)

	w, h := src.Size()
	assert.Equal(t, 40.0, w)
	assert.Equal(t, 40.0, h)

	dc := gg.NewContext(80, 80)
	dc.Scale(2, 2)
	j := src.RenderAsync(Target{DC: dc, Region: geom.NewBox(0, 0, 40, 40), Scale: 2, Full: true})
	waitDone(t, j)
	require.NoError(t, j.Err())

	c := color.NRGBAModel.Convert(dc.Image().At(70, 70)).(color.NRGBA)
	assert.Greater(t, c.B, uint8(200))
}
