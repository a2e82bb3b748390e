package docsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPolicy struct {
	mu       sync.Mutex
	failures map[string][]error
}

func newRecordingPolicy() *recordingPolicy {
	return &recordingPolicy{failures: make(map[string][]error)}
}

func (p *recordingPolicy) OnWriteFailure(key string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[key] = append(p.failures[key], err)
}

func (p *recordingPolicy) get(key string) []error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failures[key]
}

func TestQueueExecutesTasks(t *testing.T) {
	q := NewQueue(2, nil)
	q.Start()

	done := make(chan struct{})
	q.Enqueue("users/u1/budget", func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	q.Stop()

	assert.Equal(t, uint64(1), q.Metrics()["completed"])
}

func TestQueuePreservesPerKeyOrder(t *testing.T) {
	q := NewQueue(4, nil)
	q.Start()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 20; i++ {
		i := i
		q.Enqueue("users/u1/budget", func(ctx context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}
	q.Stop()

	require.Len(t, order, 20)
	for i, got := range order {
		assert.Equal(t, i, got, "write %d out of order", i)
	}
}

func TestQueueFailuresGoToPolicyWithoutRetry(t *testing.T) {
	policy := newRecordingPolicy()
	q := NewQueue(1, policy)
	q.Start()

	attempts := 0
	writeErr := errors.New("store unavailable")
	q.Enqueue("users/u1/goals/g1", func(ctx context.Context) error {
		attempts++
		return writeErr
	})
	q.Stop()

	failures := policy.get("users/u1/goals/g1")
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], writeErr)
	assert.Equal(t, 1, attempts, "failed task must not be retried")
	assert.Equal(t, uint64(1), q.Metrics()["failed"])
}

func TestQueueStopDrainsBufferedTasks(t *testing.T) {
	q := NewQueue(2, nil)
	q.Start()

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 50; i++ {
		q.Enqueue(fmt.Sprintf("users/u%d/budget", i), func(ctx context.Context) error {
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		})
	}
	q.Stop()

	assert.Equal(t, 50, ran)
}

func TestQueueDropsAfterStop(t *testing.T) {
	q := NewQueue(1, nil)
	q.Start()
	q.Stop()

	q.Enqueue("users/u1/budget", func(ctx context.Context) error { return nil })
	assert.Equal(t, uint64(1), q.Metrics()["dropped"])
}
