package docsync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelRivas11/studio/models"
)

// memoryGoals fakes the remote goals collection.
type memoryGoals struct {
	mu    sync.Mutex
	goals []models.Goal
}

func (m *memoryGoals) list(ctx context.Context) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Goal, len(m.goals))
	copy(out, m.goals)
	return out, nil
}

func (m *memoryGoals) set(goals []models.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals = goals
}

func (m *memoryGoals) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.goals[:0]
	for _, g := range m.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	m.goals = kept
}

func waitSnapshot(t *testing.T, sub *Subscription[models.Goal]) Snapshot[models.Goal] {
	t.Helper()
	select {
	case snap := <-sub.C:
		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return Snapshot[models.Goal]{}
	}
}

func TestMirrorLoadingThenLoadedEmpty(t *testing.T) {
	store := &memoryGoals{}
	m := NewMirror(store.list, time.Hour)

	sub := m.Subscribe()
	defer sub.Cancel()

	snap := waitSnapshot(t, sub)
	assert.Equal(t, StateLoading, snap.State)

	m.Refresh(context.Background())
	snap = waitSnapshot(t, sub)
	assert.Equal(t, StateLoaded, snap.State)
	assert.Empty(t, snap.Items, "first snapshot of an empty collection is loaded, not loading")
}

func TestMirrorReplacesSnapshotWholesale(t *testing.T) {
	store := &memoryGoals{}
	store.set([]models.Goal{{ID: "g1", Name: "auto", TargetAmount: 1000}})
	m := NewMirror(store.list, time.Hour)
	m.Refresh(context.Background())

	sub := m.Subscribe()
	defer sub.Cancel()
	snap := waitSnapshot(t, sub)
	require.Len(t, snap.Items, 1)

	store.set([]models.Goal{
		{ID: "g2", Name: "viaje", TargetAmount: 2000},
		{ID: "g3", Name: "fondo", TargetAmount: 3000},
	})
	m.Refresh(context.Background())

	snap = waitSnapshot(t, sub)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "g2", snap.Items[0].ID)
	assert.Equal(t, "g3", snap.Items[1].ID)
}

func TestMirrorSkipsUnchangedNotifications(t *testing.T) {
	store := &memoryGoals{}
	store.set([]models.Goal{{ID: "g1", Name: "auto"}})
	m := NewMirror(store.list, time.Hour)
	m.Refresh(context.Background())

	sub := m.Subscribe()
	defer sub.Cancel()
	waitSnapshot(t, sub)

	m.Refresh(context.Background())
	select {
	case snap := <-sub.C:
		t.Fatalf("unchanged refresh must not notify, got %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMirrorDeleteDisappearsFromSnapshot(t *testing.T) {
	store := &memoryGoals{}
	store.set([]models.Goal{
		{ID: "g1", Name: "auto"},
		{ID: "g2", Name: "viaje"},
	})
	m := NewMirror(store.list, time.Hour)
	m.Refresh(context.Background())

	store.delete("g1")
	m.Refresh(context.Background())

	snap := m.Snapshot()
	require.Len(t, snap.Items, 1)
	for _, g := range snap.Items {
		assert.NotEqual(t, "g1", g.ID)
	}
}

func TestMirrorCanceledSubscriptionStops(t *testing.T) {
	store := &memoryGoals{}
	m := NewMirror(store.list, time.Hour)

	sub := m.Subscribe()
	waitSnapshot(t, sub)
	sub.Cancel()
	sub.Cancel() // idempotent

	store.set([]models.Goal{{ID: "g1"}})
	m.Refresh(context.Background())

	select {
	case snap, ok := <-sub.C:
		if ok {
			t.Fatalf("canceled subscription received %+v", snap)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMirrorBackgroundRefresh(t *testing.T) {
	store := &memoryGoals{}
	m := NewMirror(store.list, 10*time.Millisecond)
	m.Start(context.Background())
	defer m.Stop()

	require.Eventually(t, func() bool {
		return m.Snapshot().State == StateLoaded
	}, time.Second, 5*time.Millisecond)

	store.set([]models.Goal{{ID: "g1"}})
	require.Eventually(t, func() bool {
		return len(m.Snapshot().Items) == 1
	}, time.Second, 5*time.Millisecond)
}
