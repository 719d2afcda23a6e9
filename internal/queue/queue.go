// Package queue implements a generic bounded blocking FIFO, grounded on
// original_source/src/lib/test/bbq_test.c's exercise of
// lagopus_bbq_create/put/get/peek/shutdown/destroy (the bounded
// block queue primitive, declared via the LAGOPUS_BOUND_BLOCK_Q_DECL
// macro for each element type the original needs — a macro Go generics
// replace with a single Queue[T] type).
package queue

import (
	"container/list"
	"context"
	"sync"

	"github.com/lagopus-go/dsinterp/internal/result"
)

// FreeFunc is invoked on every value still queued when Destroy runs.
type FreeFunc[T any] func(T)

// Queue is a fixed-capacity FIFO that blocks Put when full and Get/Peek
// when empty, until capacity frees up, a value arrives, a deadline
// expires, or the queue is shut down.
type Queue[T any] struct {
	mu        sync.Mutex
	notEmpty  *sync.Cond
	notFull   *sync.Cond
	entries   *list.List
	capacity  int
	shutdown  bool
	destroyed bool
	free      FreeFunc[T]
}

// New constructs a Queue with the given capacity (must be > 0).
func New[T any](capacity int, free FreeFunc[T]) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, result.New(result.InvalidArgs)
	}
	q := &Queue[T]{entries: list.New(), capacity: capacity, free: free}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

// Put blocks until there is room, ctx is done, or the queue is shut down
// or destroyed.
func (q *Queue[T]) Put(ctx context.Context, v T) error {
	stop := q.wakeOnDone(ctx)
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if q.destroyed {
			return result.New(result.NotOperational)
		}
		if q.shutdown {
			return result.New(result.Stopped)
		}
		if q.entries.Len() < q.capacity {
			q.entries.PushBack(v)
			q.notEmpty.Signal()
			return nil
		}
		if err := ctx.Err(); err != nil {
			return result.Newf(result.Timedout, "%v", err)
		}
		q.notFull.Wait()
	}
}

// Get blocks until a value is available, ctx is done, or the queue is shut
// down with nothing left to drain.
func (q *Queue[T]) Get(ctx context.Context) (T, error) {
	return q.take(ctx, true)
}

// Peek behaves like Get but leaves the value in the queue.
func (q *Queue[T]) Peek(ctx context.Context) (T, error) {
	return q.take(ctx, false)
}

func (q *Queue[T]) take(ctx context.Context, remove bool) (T, error) {
	var zero T
	stop := q.wakeOnDone(ctx)
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if q.destroyed {
			return zero, result.New(result.NotOperational)
		}
		if front := q.entries.Front(); front != nil {
			v := front.Value.(T)
			if remove {
				q.entries.Remove(front)
				q.notFull.Signal()
			}
			return v, nil
		}
		if q.shutdown {
			return zero, result.New(result.Stopped)
		}
		if err := ctx.Err(); err != nil {
			return zero, result.Newf(result.Timedout, "%v", err)
		}
		q.notEmpty.Wait()
	}
}

// wakeOnDone spawns a goroutine that broadcasts both condition variables
// when ctx is done, so a blocked Put/Get/Peek unblocks to observe
// ctx.Err() instead of hanging past its caller's deadline. Call the
// returned stop func once the wait loop exits to release the goroutine.
func (q *Queue[T]) wakeOnDone(ctx context.Context) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			q.mu.Lock()
			q.notEmpty.Broadcast()
			q.notFull.Broadcast()
			q.mu.Unlock()
		case <-done:
		}
	}()
	return func() { close(done) }
}

// Size returns the number of queued values.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.entries.Len()
}

// IsEmpty reports whether the queue currently holds no values.
func (q *Queue[T]) IsEmpty() bool { return q.Size() == 0 }

// IsFull reports whether the queue is at capacity.
func (q *Queue[T]) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.entries.Len() >= q.capacity
}

// Clear drops every queued value, invoking the free hook on each if set.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.free != nil {
		for e := q.entries.Front(); e != nil; e = e.Next() {
			q.free(e.Value.(T))
		}
	}
	q.entries.Init()
	q.notFull.Broadcast()
}

// Shutdown marks the queue non-operational for further Put calls; Get/Peek
// continue to drain whatever remains queued, then return Stopped once
// empty.
func (q *Queue[T]) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shutdown = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// IsOperational reports whether the queue still accepts Put calls.
func (q *Queue[T]) IsOperational() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.shutdown && !q.destroyed
}

// Destroy permanently disables the queue, freeing any values still queued.
func (q *Queue[T]) Destroy() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.free != nil {
		for e := q.entries.Front(); e != nil; e = e.Next() {
			q.free(e.Value.(T))
		}
	}
	q.entries.Init()
	q.destroyed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}
