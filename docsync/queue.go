// Package docsync decouples screen responsiveness from store latency. Writes
// and deletes are detached from the caller through a partitioned task queue,
// and remote collections are mirrored back into read state through cancelable
// subscriptions.
package docsync

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/logger"
)

// Task is one persistence operation executed off the caller's control flow.
type Task func(ctx context.Context) error

// FailurePolicy decides what happens when a detached write fails. Tasks are
// never retried automatically; the policy only observes the failure.
type FailurePolicy interface {
	OnWriteFailure(key string, err error)
}

// LogFailures is the default policy: log and move on. Write failures stay
// invisible to the user.
type LogFailures struct{}

func (LogFailures) OnWriteFailure(key string, err error) {
	logger.Get().Error("detached write failed",
		zap.String("key", key),
		zap.Error(err))
}

type job struct {
	key string
	run Task
}

// Queue executes tasks asynchronously, partitioned by document key: tasks
// sharing a key run in submission order on one partition, so the last write
// for a key always lands last. Distinct keys proceed in parallel.
type Queue struct {
	partitions []chan job
	workers    sync.WaitGroup
	policy     FailurePolicy
	taskCtx    context.Context
	taskStop   context.CancelFunc

	stopMu  sync.RWMutex
	stopped bool
	inFlight sync.WaitGroup

	enqueued  atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

// NewQueue builds a queue with the given number of partitions. A nil policy
// defaults to LogFailures.
func NewQueue(partitions int, policy FailurePolicy) *Queue {
	if partitions < 1 {
		partitions = 1
	}
	if policy == nil {
		policy = LogFailures{}
	}
	chans := make([]chan job, partitions)
	for i := range chans {
		chans[i] = make(chan job, 100)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		partitions: chans,
		policy:     policy,
		taskCtx:    ctx,
		taskStop:   cancel,
	}
}

// Start launches one worker per partition.
func (q *Queue) Start() {
	logger.Get().Info("starting write queue", zap.Int("partitions", len(q.partitions)))
	for i := range q.partitions {
		q.workers.Add(1)
		go q.worker(i)
	}
}

// Stop refuses new tasks, then waits for buffered ones to drain.
func (q *Queue) Stop() {
	q.stopMu.Lock()
	if q.stopped {
		q.stopMu.Unlock()
		return
	}
	q.stopped = true
	q.stopMu.Unlock()

	logger.Get().Info("stopping write queue")
	q.inFlight.Wait()
	for _, ch := range q.partitions {
		close(ch)
	}
	q.workers.Wait()
	q.taskStop()
}

// Enqueue submits a task for the given document key and returns immediately.
// The caller never observes the outcome; failures go to the policy.
func (q *Queue) Enqueue(key string, t Task) {
	q.stopMu.RLock()
	if q.stopped {
		q.stopMu.RUnlock()
		q.dropped.Add(1)
		logger.Get().Warn("write queue stopped, task dropped", zap.String("key", key))
		return
	}
	q.inFlight.Add(1)
	q.stopMu.RUnlock()

	q.enqueued.Add(1)
	q.partitions[q.partition(key)] <- job{key: key, run: t}
	q.inFlight.Done()
}

func (q *Queue) partition(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(q.partitions)))
}

func (q *Queue) worker(id int) {
	defer q.workers.Done()
	for j := range q.partitions[id] {
		start := time.Now()
		ctx, cancel := context.WithTimeout(q.taskCtx, 30*time.Second)
		err := j.run(ctx)
		cancel()

		if err != nil {
			q.failed.Add(1)
			q.policy.OnWriteFailure(j.key, err)
			continue
		}

		q.completed.Add(1)
		logger.Get().Debug("detached write completed",
			zap.String("key", j.key),
			zap.Int("partition", id),
			zap.Duration("duration", time.Since(start)))
	}
}

// Metrics reports queue counters.
func (q *Queue) Metrics() map[string]uint64 {
	return map[string]uint64{
		"enqueued":  q.enqueued.Load(),
		"completed": q.completed.Load(),
		"failed":    q.failed.Load(),
		"dropped":   q.dropped.Load(),
	}
}
