package source

import (
	"context"

	"github.com/gogpu/stage/internal/task"
)

// Go runs fn on a new goroutine and returns a Job tracking it. The context
// passed to fn is cancelled by Job.Cancel; if it is cancelled before fn
// returns, the job reports the context error regardless of fn's result.
func Go(fn func(ctx context.Context) error) Job {
	h, ctx := task.New(context.Background())
	go func() {
		err := fn(ctx)
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
		}
		h.Finish(err)
	}()
	return h
}

// Failed returns a Job that has already finished with err.
func Failed(err error) Job {
	h, _ := task.New(context.Background())
	h.Finish(err)
	return h
}
