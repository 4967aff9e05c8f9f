package resource

import (
	"context"
	"sync"
)

// CancelToken lets a caller abort requests it started. One token may be
// shared by any number of requests; cancelling it aborts all of them.
//
// The zero value is ready to use, as is a nil *CancelToken, which never
// cancels. A token must not be copied after first use.
type CancelToken struct {
	once   sync.Once
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCancelToken returns a token that has not been cancelled.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

func (t *CancelToken) init() {
	t.once.Do(func() {
		t.ctx, t.cancel = context.WithCancel(context.Background())
	})
}

// Cancel aborts every pending request bound to the token. Calling Cancel more
// than once is a no-op.
func (t *CancelToken) Cancel() {
	if t == nil {
		return
	}
	t.init()
	t.cancel()
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	t.init()
	return t.ctx.Err() != nil
}

// Done returns a channel closed on cancellation.
func (t *CancelToken) Done() <-chan struct{} {
	if t == nil {
		return nil
	}
	t.init()
	return t.ctx.Done()
}

// bind arranges for cancel to run when the token is cancelled. The returned
// stop function detaches it again.
func (t *CancelToken) bind(cancel context.CancelFunc) (stop func() bool) {
	if t == nil {
		return func() bool { return false }
	}
	t.init()
	return context.AfterFunc(t.ctx, cancel)
}
