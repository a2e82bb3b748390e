package docsync

import (
	"context"
	"reflect"
	"sync"
)

// Tracker watches one editable document and pushes it through the queue when
// it actually changed. Flushing the same value twice enqueues nothing, so an
// unchanged draft never produces a redundant write.
type Tracker[T any] struct {
	key   string
	queue *Queue
	write func(ctx context.Context, v T) error

	mu     sync.Mutex
	last   T
	synced bool
}

// NewTracker builds a tracker for a single document key. write performs the
// merge-write for one snapshot of the value.
func NewTracker[T any](queue *Queue, key string, write func(ctx context.Context, v T) error) *Tracker[T] {
	return &Tracker[T]{key: key, queue: queue, write: write}
}

// Seed records the value loaded from the store without writing it back.
func (t *Tracker[T]) Seed(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = v
	t.synced = true
}

// Flush enqueues a detached write if v differs from the last synced value.
// Returns whether a write was enqueued.
func (t *Tracker[T]) Flush(v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.synced && reflect.DeepEqual(t.last, v) {
		return false
	}

	t.last = v
	t.synced = true
	t.queue.Enqueue(t.key, func(ctx context.Context) error {
		return t.write(ctx, v)
	})
	return true
}
