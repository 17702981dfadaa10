package document

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
)

func redSquare(r *recording.Recorder) {
	r.SetFillRGBA(1, 0, 0, 1)
	r.DrawRectangle(10, 10, 20, 20)
	r.Fill()
}

func pixel(dc *gg.Context, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(dc.Image().At(x, y)).(color.NRGBA)
}

func isRed(c color.NRGBA) bool {
	return c.R > 200 && c.G < 60 && c.B < 60 && c.A > 200
}

func TestDocumentPages(t *testing.T) {
	doc := New()
	p0 := doc.NewPage(100, 50, redSquare)
	p1 := doc.NewPage(200.5, 80, nil)

	assert.Equal(t, 2, doc.NumPages())
	assert.Equal(t, 0, p0.Index())
	assert.Equal(t, 1, p1.Index())

	w, h := p1.Size()
	assert.Equal(t, 200.5, w)
	assert.Equal(t, 80.0, h)
	assert.Equal(t, 201, p1.Recording().Width())

	got, err := doc.Page(1)
	require.NoError(t, err)
	assert.Same(t, p1, got)

	_, err = doc.Page(2)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	standalone := NewPage(10, 10, recording.NewRecorder(10, 10).FinishRecording())
	assert.Equal(t, -1, standalone.Index())
}

func TestEngineRender(t *testing.T) {
	page := New().NewPage(100, 100, redSquare)
	eng := NewEngine(WithParallelism(2))
	assert.Equal(t, 2, eng.Parallelism())

	dc := gg.NewContext(100, 100)
	task := eng.Render(page, dc)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, task.Wait(ctx))
	require.NoError(t, task.Err())

	assert.True(t, isRed(pixel(dc, 20, 20)))
	assert.Zero(t, pixel(dc, 50, 50).A)
	assert.Equal(t, uint64(1), eng.Rendered())
}

func TestEngineRenderUnderTransform(t *testing.T) {
	page := New().NewPage(100, 100, redSquare)
	eng := NewEngine()

	dc := gg.NewContext(100, 100)
	dc.Scale(2, 2)
	dc.Translate(-5, -5)
	before := dc.GetTransform()

	require.NoError(t, eng.RenderSync(page, dc))

	// Page square [10,30] lands on device [10,50].
	assert.True(t, isRed(pixel(dc, 15, 15)))
	assert.True(t, isRed(pixel(dc, 45, 45)))
	assert.Zero(t, pixel(dc, 60, 60).A)
	assert.Equal(t, before, dc.GetTransform(), "playback must restore the caller's transform")
}

func TestEngineCancelWhileQueued(t *testing.T) {
	page := New().NewPage(100, 100, redSquare)
	eng := NewEngine(WithParallelism(1))

	// Occupy the only slot so the task queues.
	require.NoError(t, eng.sem.Acquire(context.Background(), 1))
	defer eng.sem.Release(1)

	dc := gg.NewContext(100, 100)
	task := eng.Render(page, dc)
	select {
	case <-task.Done():
		t.Fatal("task finished while the engine was saturated")
	case <-time.After(20 * time.Millisecond):
	}
	assert.NoError(t, task.Err(), "Err is nil while running")

	task.Cancel()
	task.Cancel()
	<-task.Done()

	assert.ErrorIs(t, task.Err(), context.Canceled)
	assert.Equal(t, uint64(1), eng.Cancelled())
	assert.Zero(t, pixel(dc, 20, 20).A, "a cancelled task must not draw")
}

func TestEngineRejectsNil(t *testing.T) {
	eng := NewEngine()
	task := eng.Render(nil, gg.NewContext(1, 1))
	<-task.Done()
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(task.Err()))

	err := eng.RenderSync(New().NewPage(1, 1, nil), nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestPlaybackStopsAfterCancel(t *testing.T) {
	dc := gg.NewContext(100, 100)
	ctx, cancel := context.WithCancel(context.Background())
	pb := newPlayback(ctx, dc)

	require.NoError(t, pb.Begin(100, 100))
	pb.Save()
	cancel()
	pb.FillRect(recording.NewRect(0, 0, 100, 100), recording.NewSolidBrush(gg.Black))
	pb.Restore()

	err := pb.End()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, pixel(dc, 50, 50).A)
	assert.Zero(t, pb.depth)
}

func TestPlaybackCancelledBeforeBegin(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	redSquare(rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dc := gg.NewContext(100, 100)
	err := rec.FinishRecording().Playback(newPlayback(ctx, dc))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, pixel(dc, 20, 20).A)
}

func TestRenderSyncCurvedAndClosedPaths(t *testing.T) {
	page := New().NewPage(100, 100, func(r *recording.Recorder) {
		r.SetFillRGBA(1, 0, 0, 1)
		r.DrawCircle(25, 25, 15)
		r.Fill()

		r.MoveTo(60, 60)
		r.QuadraticTo(80, 50, 95, 60)
		r.LineTo(95, 95)
		r.CubicTo(85, 98, 70, 98, 60, 95)
		r.ClosePath()
		r.Fill()
	})

	dc := gg.NewContext(100, 100)
	require.NoError(t, NewEngine().RenderSync(page, dc))

	assert.True(t, isRed(pixel(dc, 25, 25)), "circle centre")
	assert.Zero(t, pixel(dc, 5, 5).A, "outside the circle")
	assert.True(t, isRed(pixel(dc, 78, 78)), "inside the closed curved shape")
	assert.Zero(t, pixel(dc, 50, 80).A, "left of the closed shape")
}
