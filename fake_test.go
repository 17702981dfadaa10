package stage

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/jmgilman/go/errors"

	"github.com/gogpu/stage/source"
)

// fakeJob finishes only when the test says so. Cancel is recorded but does
// not finish the job, which lets tests deliver stale completions.
type fakeJob struct {
	target    source.Target
	done      chan struct{}
	once      sync.Once
	err       error
	cancelled atomic.Bool
}

func (j *fakeJob) Done() <-chan struct{} { return j.done }

func (j *fakeJob) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

func (j *fakeJob) Cancel() { j.cancelled.Store(true) }

// complete draws with paint, if given, and finishes the job with err.
func (j *fakeJob) complete(paint func(dc *gg.Context), err error) {
	j.once.Do(func() {
		if paint != nil {
			paint(j.target.DC)
		}
		j.err = err
		close(j.done)
	})
}

// fakeSource hands out fakeJobs and records every call.
type fakeSource struct {
	width, height float64

	mu        sync.Mutex
	jobs      []*fakeJob
	syncCalls int
}

func newFakeSource(width, height float64) *fakeSource {
	return &fakeSource{width: width, height: height}
}

func (s *fakeSource) Size() (float64, float64) { return s.width, s.height }

func (s *fakeSource) RenderAsync(t source.Target) source.Job {
	j := &fakeJob{target: t, done: make(chan struct{})}
	s.mu.Lock()
	s.jobs = append(s.jobs, j)
	s.mu.Unlock()
	return j
}

func (s *fakeSource) RenderSync(dc *gg.Context, width, height float64) error {
	s.mu.Lock()
	s.syncCalls++
	s.mu.Unlock()
	dc.SetFillBrush(gg.Solid(gg.RGB(0, 1, 0)))
	dc.DrawRectangle(0, 0, width, height)
	return dc.Fill()
}

func (s *fakeSource) started() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *fakeSource) job(i int) *fakeJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[i]
}

func (s *fakeSource) last() *fakeJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[len(s.jobs)-1]
}

// fillLocal paints the local box [x0,x1]×[y0,y1] in col.
func fillLocal(x0, y0, x1, y1 float64, col gg.RGBA) func(dc *gg.Context) {
	return func(dc *gg.Context) {
		dc.SetFillBrush(gg.Solid(col))
		dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		_ = dc.Fill()
	}
}

var errRejected = errors.New(errors.CodeExecutionFailed, "source rejected the job")
