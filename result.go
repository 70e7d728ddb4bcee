package proc

import (
	"sync"
)

// Result is the two-variant outcome of a process operation. Exactly one
// variant is populated: either a success payload or a failure from the
// package's closed taxonomy. The zero value is not meaningful;
// construction goes through Ok and Err.
//
// Callers branch structurally rather than catching anything:
//
//	res := proc.RunSync("echo hello")
//	if res.IsErr() {
//	    return res.Error()
//	}
//	fmt.Println(res.Value())
type Result[T any] struct {
	value T
	err   Error
	ok    bool
}

// Ok returns a successful Result carrying value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err returns a failed Result carrying err.
func Err[T any](err Error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result is the success variant.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the result is the failure variant.
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// Value returns the success payload. It returns the zero value when the
// result is the failure variant.
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the failure. It returns nil when the result is the
// success variant.
func (r Result[T]) Error() Error {
	return r.err
}

// Unpack returns the payload and failure in Go's conventional two-value
// form for callers that prefer it.
func (r Result[T]) Unpack() (T, Error) {
	return r.value, r.err
}

// Future is the deferred flavor of Result. It is created once per
// operation and settles exactly once; every Await after settlement
// returns the same outcome. The zero value is not meaningful;
// construction goes through newFuture.
type Future[T any] struct {
	done    chan struct{}
	settle  sync.Once
	outcome Result[T]
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// resolve settles the future. Only the first call has any effect;
// subsequent calls are ignored so multiple completion events cannot
// double-settle.
func (f *Future[T]) resolve(outcome Result[T]) {
	f.settle.Do(func() {
		f.outcome = outcome
		close(f.done)
	})
}

// Await blocks until the future settles and returns its outcome.
func (f *Future[T]) Await() Result[T] {
	<-f.done
	return f.outcome
}

// Done returns a channel that is closed once the future has settled.
// It allows select-based composition of several futures; Await on a
// future whose Done channel is closed returns immediately.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// resolved returns an already-settled future. Used by operations whose
// outcome is known synchronously.
func resolved[T any](outcome Result[T]) *Future[T] {
	f := newFuture[T]()
	f.resolve(outcome)
	return f
}
