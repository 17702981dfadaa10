// Package task tracks cancellable asynchronous work.
package task

import (
	"context"
	"sync"
)

// Handle is the result side of one asynchronous operation. The operation
// runs under the context returned by New and reports through Finish.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}

	once sync.Once
	err  error
}

// New returns a Handle and the context its operation should run under.
// Cancel and Finish both cancel that context.
func New(parent context.Context) (*Handle, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	return &Handle{cancel: cancel, done: make(chan struct{})}, ctx
}

// Done is closed once Finish has been called.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the error passed to Finish, or nil while the operation runs.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Cancel cancels the operation's context. It does not wait for the
// operation, and is safe to call repeatedly and after Finish.
func (h *Handle) Cancel() {
	h.cancel()
}

// Wait blocks until the operation has finished or ctx is done.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Finish records err and closes Done. Only the first call has an effect.
func (h *Handle) Finish(err error) {
	h.once.Do(func() {
		h.err = err
		h.cancel()
		close(h.done)
	})
}
