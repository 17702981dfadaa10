package document

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/jmgilman/go/errors"
	"golang.org/x/sync/semaphore"

	"github.com/gogpu/stage/internal/task"
)

// Engine rasterizes pages onto gg contexts. The number of pages played back
// at the same time is bounded; requests beyond the bound wait, and stop
// waiting when they are cancelled.
type Engine struct {
	sem    *semaphore.Weighted
	limit  int
	logger *slog.Logger

	rendered  atomic.Uint64
	cancelled atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelism bounds the number of concurrent page rasterizations.
// Values below 1 are ignored.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithLogger sets the engine's logger. Engines are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an Engine. By default it runs GOMAXPROCS pages at once.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		limit:  runtime.GOMAXPROCS(0),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sem = semaphore.NewWeighted(int64(e.limit))
	return e
}

// Parallelism returns the concurrency bound.
func (e *Engine) Parallelism() int {
	return e.limit
}

// Rendered returns the number of pages played back to completion.
func (e *Engine) Rendered() uint64 {
	return e.rendered.Load()
}

// Cancelled returns the number of render tasks that ended by cancellation.
func (e *Engine) Cancelled() uint64 {
	return e.cancelled.Load()
}

// Render plays page back onto dc asynchronously. Page coordinates are
// mapped through dc's current transform. The caller must not use dc until
// the returned task is done.
func (e *Engine) Render(page *Page, dc *gg.Context) *Task {
	h, ctx := task.New(context.Background())
	t := &Task{h: h}

	if page == nil || dc == nil {
		h.Finish(errors.New(errors.CodeInvalidInput, "render needs a page and a target context"))
		return t
	}

	go func() {
		h.Finish(e.run(ctx, page, dc))
	}()
	return t
}

// RenderSync plays page back onto dc on the calling goroutine, bypassing the
// concurrency bound.
func (e *Engine) RenderSync(page *Page, dc *gg.Context) error {
	if page == nil || dc == nil {
		return errors.New(errors.CodeInvalidInput, "render needs a page and a target context")
	}
	return e.play(context.Background(), page, dc)
}

func (e *Engine) run(ctx context.Context, page *Page, dc *gg.Context) error {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		e.cancelled.Add(1)
		return err
	}
	defer e.sem.Release(1)

	err := e.play(ctx, page, dc)
	if ctx.Err() != nil {
		e.cancelled.Add(1)
		e.logger.Debug("document: page render cancelled", "page", page.index)
		return ctx.Err()
	}
	return err
}

func (e *Engine) play(ctx context.Context, page *Page, dc *gg.Context) error {
	if err := page.rec.Playback(newPlayback(ctx, dc)); err != nil {
		return errors.Wrapf(err, errors.CodeExecutionFailed, "play back page %d", page.index)
	}
	e.rendered.Add(1)
	e.logger.Debug("document: page rendered", "page", page.index)
	return nil
}

// Task is an asynchronous page render.
type Task struct {
	h *task.Handle
}

// Done is closed when the task has finished, successfully or not.
func (t *Task) Done() <-chan struct{} { return t.h.Done() }

// Err returns the task's result. It is nil until Done is closed and on
// success; a cancelled task reports an error matching context.Canceled.
func (t *Task) Err() error { return t.h.Err() }

// Cancel stops the task. Pending drawing is skipped. Cancel is idempotent
// and safe to call after completion.
func (t *Task) Cancel() { t.h.Cancel() }

// Wait blocks until the task is done or ctx expires.
func (t *Task) Wait(ctx context.Context) error { return t.h.Wait(ctx) }
