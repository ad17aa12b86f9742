package restclient

import (
	"context"
	nethttp "net/http"
	"sync"
)

// futureState tracks the request lifecycle: built, in flight, then exactly
// one of completed, failed, or cancelled.
type futureState int

const (
	statePending futureState = iota
	stateCompleted
	stateFailed
	stateCancelled
)

// CompletionHandler receives the single outcome of a non-blocking request:
// a normalized response or a construction-time error, never both.
type CompletionHandler[T any] func(*Response[T], error)

// Future is the handle for a non-blocking request. The underlying work runs
// on its own goroutine; callers either Wait for the result or Subscribe a
// completion handler. Cancel suppresses the handler and unblocks waiters but
// does not interrupt an in-flight transport call, whose result is discarded.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	state     futureState
	resp      *Response[T]
	err       error
	handler   CompletionHandler[T]
	delivered bool
}

// DoAsync dispatches a request onto a background goroutine and returns its
// Future. Dispatch is unbounded: no admission control is applied.
func DoAsync[T any](ctx context.Context, c *Client, method string, req *Request) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		resp, err := Do[T](ctx, c, method, req)
		f.complete(resp, err)
	}()
	return f
}

// GetAsync dispatches a non-blocking GET request.
func GetAsync[T any](ctx context.Context, c *Client, req *Request) *Future[T] {
	return DoAsync[T](ctx, c, nethttp.MethodGet, req)
}

// PostAsync dispatches a non-blocking POST request.
func PostAsync[T any](ctx context.Context, c *Client, req *Request) *Future[T] {
	return DoAsync[T](ctx, c, nethttp.MethodPost, req)
}

// PutAsync dispatches a non-blocking PUT request.
func PutAsync[T any](ctx context.Context, c *Client, req *Request) *Future[T] {
	return DoAsync[T](ctx, c, nethttp.MethodPut, req)
}

// PatchAsync dispatches a non-blocking PATCH request.
func PatchAsync[T any](ctx context.Context, c *Client, req *Request) *Future[T] {
	return DoAsync[T](ctx, c, nethttp.MethodPatch, req)
}

// DeleteAsync dispatches a non-blocking DELETE request.
func DeleteAsync[T any](ctx context.Context, c *Client, req *Request) *Future[T] {
	return DoAsync[T](ctx, c, nethttp.MethodDelete, req)
}

// MultipartAsync dispatches a non-blocking multipart POST request.
func MultipartAsync[T any](ctx context.Context, c *Client, req *Request) *Future[T] {
	return DoAsync[T](ctx, c, MethodMultipart, req)
}

// complete records the outcome and fires the subscribed handler, unless the
// future was cancelled first, in which case the result is discarded.
func (f *Future[T]) complete(resp *Response[T], err error) {
	f.mu.Lock()
	if f.state == stateCancelled {
		f.mu.Unlock()
		return
	}
	if err != nil {
		f.state = stateFailed
	} else {
		f.state = stateCompleted
	}
	f.resp = resp
	f.err = err
	handler := f.handler
	if handler != nil {
		f.delivered = true
	}
	close(f.done)
	f.mu.Unlock()

	if handler != nil {
		handler(resp, err)
	}
}

// Subscribe registers the completion handler. It is invoked exactly once
// with the outcome, immediately when the future already completed; it never
// runs after Cancel. Only one handler may be registered.
func (f *Future[T]) Subscribe(handler CompletionHandler[T]) {
	f.mu.Lock()
	switch f.state {
	case statePending:
		f.handler = handler
		f.mu.Unlock()
		return
	case stateCancelled:
		f.mu.Unlock()
		return
	default:
	}
	if f.delivered {
		f.mu.Unlock()
		return
	}
	f.delivered = true
	resp, err := f.resp, f.err
	f.mu.Unlock()
	handler(resp, err)
}

// Cancel marks the future cancelled. It only takes effect while the result
// is still pending: the completion handler is suppressed and waiters are
// released with ErrCancelled. The background transport call keeps running
// until its own timeout and its result is discarded.
func (f *Future[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != statePending {
		return
	}
	f.state = stateCancelled
	close(f.done)
}

// Cancelled reports whether Cancel took effect.
func (f *Future[T]) Cancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == stateCancelled
}

// Wait blocks until the result is available, the future is cancelled, or the
// context expires. A cancelled future yields ErrCancelled.
func (f *Future[T]) Wait(ctx context.Context) (*Response[T], error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		return nil, NewTimeoutError("wait aborted: "+ctx.Err().Error(), 0)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == stateCancelled {
		return nil, ErrCancelled
	}
	return f.resp, f.err
}
