// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link

// Future is the handle of an operation running on its own goroutine.
// The operation's error is observable only after Done is closed.
type Future struct {
	done chan struct{}
	err  error
}

// goFuture runs fn on a new goroutine and returns its handle.
func goFuture(fn func() error) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.err = fn()
	}()
	return f
}

// doneFuture returns a Future that has already completed with err.
func doneFuture(err error) *Future {
	f := &Future{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Wait blocks until the operation completes and returns its error.
func (f *Future) Wait() error {
	<-f.done
	return f.err
}

// Done is closed when the operation completes.
func (f *Future) Done() <-chan struct{} { return f.done }

// Err returns the operation's error, or nil while it is still running.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}
