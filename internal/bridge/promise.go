package bridge

import (
	"context"
	"sync"
)

// Result is the flat map an operation resolves with.
type Result map[string]interface{}

// Promise receives the outcome of one operation. Exactly one of Resolve or
// Reject is called, exactly once.
type Promise interface {
	Resolve(result Result)
	Reject(code, message string)
}

// Deferred is a channel-backed Promise that a caller can wait on.
//
// The first settlement wins; later Resolve or Reject calls are ignored.
type Deferred struct {
	once   sync.Once
	done   chan struct{}
	result Result
	err    *Error
}

// NewDeferred creates an unsettled Deferred.
func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolve settles d with result.
func (d *Deferred) Resolve(result Result) {
	d.once.Do(func() {
		d.result = result
		close(d.done)
	})
}

// Reject settles d with a coded error.
func (d *Deferred) Reject(code, message string) {
	d.once.Do(func() {
		d.err = &Error{Code: code, Message: message}
		close(d.done)
	})
}

// Done is closed once d is settled.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until d is settled or ctx is done. A rejection is returned as
// an *Error.
func (d *Deferred) Wait(ctx context.Context) (Result, error) {
	// A settled promise wins over a context that is also done
	select {
	case <-d.done:
		return d.outcome()
	default:
	}

	select {
	case <-d.done:
		return d.outcome()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *Deferred) outcome() (Result, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.result, nil
}

// PromiseFuncs adapts a pair of callbacks to the Promise interface. Nil
// callbacks are skipped.
type PromiseFuncs struct {
	OnResolve func(Result)
	OnReject  func(code, message string)
}

// Resolve calls OnResolve.
func (f PromiseFuncs) Resolve(result Result) {
	if f.OnResolve != nil {
		f.OnResolve(result)
	}
}

// Reject calls OnReject.
func (f PromiseFuncs) Reject(code, message string) {
	if f.OnReject != nil {
		f.OnReject(code, message)
	}
}
