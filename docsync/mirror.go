package docsync

import (
	"context"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/logger"
)

// State tells a consumer whether the mirror has heard from the store yet.
type State string

const (
	// StateLoading means no snapshot has arrived. Consumers should show a
	// loading indicator, not an empty list.
	StateLoading State = "loading"
	// StateLoaded means at least one snapshot arrived, possibly empty.
	StateLoaded State = "loaded"
)

// Snapshot is the full current view of a mirrored collection. Snapshots
// replace each other wholesale; there is no incremental patching.
type Snapshot[T any] struct {
	State State `json:"state"`
	Items []T   `json:"items"`
}

// Lister fetches the current remote contents of a collection.
type Lister[T any] func(ctx context.Context) ([]T, error)

// Subscription is a cancelable handle on a mirror. C carries at most the
// latest snapshot; slow consumers see intermediate snapshots dropped, never
// stale ones delivered.
type Subscription[T any] struct {
	C      <-chan Snapshot[T]
	c      chan Snapshot[T]
	cancel func()
	once   sync.Once
}

// Cancel detaches the subscription. Safe to call more than once.
func (s *Subscription[T]) Cancel() {
	s.once.Do(s.cancel)
}

// Mirror keeps a local read-only copy of a remote collection and notifies
// subscribers whenever the remote result changes. List errors keep the
// previous snapshot; the mirror never regresses to loading.
type Mirror[T any] struct {
	list     Lister[T]
	interval time.Duration

	mu     sync.Mutex
	snap   Snapshot[T]
	subs   map[int]*Subscription[T]
	nextID int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMirror builds a mirror that refreshes via list every interval once
// started.
func NewMirror[T any](list Lister[T], interval time.Duration) *Mirror[T] {
	return &Mirror[T]{
		list:     list,
		interval: interval,
		snap:     Snapshot[T]{State: StateLoading},
		subs:     make(map[int]*Subscription[T]),
	}
}

// Start begins refreshing in the background until Stop or ctx cancellation.
func (m *Mirror[T]) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		m.Refresh(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Refresh(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts background refreshing. Subscriptions stay valid but quiet.
func (m *Mirror[T]) Stop() {
	if m.cancel != nil {
		m.cancel()
		<-m.done
	}
}

// Refresh lists the collection once and publishes the result if it changed.
func (m *Mirror[T]) Refresh(ctx context.Context) {
	items, err := m.list(ctx)
	if err != nil {
		logger.Get().Warn("mirror refresh failed", zap.Error(err))
		return
	}
	if items == nil {
		items = []T{}
	}

	m.mu.Lock()
	changed := m.snap.State == StateLoading || !reflect.DeepEqual(m.snap.Items, items)
	if changed {
		m.snap = Snapshot[T]{State: StateLoaded, Items: items}
		for _, sub := range m.subs {
			deliver(sub.c, m.snap)
		}
	}
	m.mu.Unlock()
}

// Snapshot returns the current view.
func (m *Mirror[T]) Snapshot() Snapshot[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Subscribe registers a consumer and immediately delivers the current
// snapshot, loading or not.
func (m *Mirror[T]) Subscribe() *Subscription[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++

	ch := make(chan Snapshot[T], 1)
	sub := &Subscription[T]{C: ch, c: ch}
	sub.cancel = func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
	m.subs[id] = sub

	deliver(ch, m.snap)
	return sub
}

// deliver replaces any undelivered snapshot with the newest one.
func deliver[T any](ch chan Snapshot[T], snap Snapshot[T]) {
	for {
		select {
		case ch <- snap:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
