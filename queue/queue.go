// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides an unbounded multi-producer multi-consumer FIFO
// with blocking pop and cooperative shutdown.
package queue

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	ring "github.com/eapache/queue"
)

// Blocking is a thread-safe FIFO. Push never blocks; Pop blocks until an
// item is available or the queue is shut down. Once shut down, a queue
// never runs again.
//
// Shutdown takes precedence over pending items: Pop returns the shutdown
// sentinel as soon as shutdown is requested, even if items remain
// enqueued. Those items are never delivered by Pop.
type Blocking[T any] struct {
	mu      sync.Mutex
	cond    sync.Cond
	items   *ring.Queue
	stopped atomix.Uint32
}

// New returns an empty running queue.
func New[T any]() *Blocking[T] {
	q := &Blocking[T]{items: ring.New()}
	q.cond.L = &q.mu
	return q
}

// Push enqueues v and wakes one waiter.
func (q *Blocking[T]) Push(v T) {
	q.mu.Lock()
	q.items.Add(v)
	q.mu.Unlock()
	q.cond.Signal()
}

// TryPop dequeues the head without blocking. It returns
// iox.ErrWouldBlock when the queue is empty, whatever the shutdown state.
func (q *Blocking[T]) TryPop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Length() == 0 {
		var zero T
		return zero, iox.ErrWouldBlock
	}
	v, _ := q.items.Remove().(T)
	return v, nil
}

// Pop blocks until the queue is non-empty or shut down. The shutdown flag
// is checked first: once shutdown has been requested Pop returns
// (zero, false) immediately. The false result is a cooperative shutdown
// sentinel, not an error.
func (q *Blocking[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.stopped.Load() == 0 && q.items.Length() == 0 {
		q.cond.Wait()
	}
	if q.stopped.Load() != 0 {
		var zero T
		return zero, false
	}
	v, _ := q.items.Remove().(T)
	return v, true
}

// Shutdown marks the queue terminal and wakes every waiter. It is
// idempotent.
func (q *Blocking[T]) Shutdown() {
	q.mu.Lock()
	q.stopped.Store(1)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// IsShutdown reports whether Shutdown has been called.
func (q *Blocking[T]) IsShutdown() bool {
	return q.stopped.Load() != 0
}

// Len returns the number of items currently enqueued.
func (q *Blocking[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}
