package resource

import "context"

// Future is the eventual outcome of a call started with Async.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Async runs fn in its own goroutine and returns immediately.
//
//	f := resource.Async(func() (*resource.Result, error) {
//	  return people.GetOne(ctx, 1)
//	})
//	...
//	result, err := f.Await(ctx)
func Async[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// Done is closed once the outcome is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the outcome is available or ctx ends. Giving up on ctx
// does not stop the underlying call; bind it to a CancelToken for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
