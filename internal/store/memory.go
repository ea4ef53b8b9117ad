package store

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/domain/economy"
)

// MemorySnapshotStore keeps snapshots in process memory. It is used when no
// database is configured and in tests.
type MemorySnapshotStore struct {
	mu    sync.Mutex
	snaps map[uuid.UUID]Snapshot
	now   func() time.Time
}

var _ SnapshotStore = (*MemorySnapshotStore)(nil)

// NewMemorySnapshotStore returns an empty in-memory store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snaps: make(map[uuid.UUID]Snapshot),
		now:   time.Now,
	}
}

// Get implements SnapshotStore.
func (m *MemorySnapshotStore) Get(_ context.Context, learnerID uuid.UUID) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[learnerID]
	if !ok {
		return Snapshot{}, ErrSnapshotNotFound
	}
	return cloneSnapshot(snap), nil
}

// Save implements SnapshotStore.
func (m *MemorySnapshotStore) Save(_ context.Context, snap Snapshot) (Snapshot, error) {
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.snaps[snap.LearnerID]
	switch {
	case !exists && snap.Version != 0:
		return Snapshot{}, fmt.Errorf("%w: learner %s has no stored snapshot", ErrVersionConflict, snap.LearnerID)
	case exists && current.Version != snap.Version:
		return Snapshot{}, fmt.Errorf("%w: stored %d, have %d", ErrVersionConflict, current.Version, snap.Version)
	}

	stored := cloneSnapshot(snap)
	stored.Version++
	stored.UpdatedAt = m.now().UTC()
	m.snaps[snap.LearnerID] = stored
	return cloneSnapshot(stored), nil
}

func cloneSnapshot(s Snapshot) Snapshot {
	out := s
	out.CompletedLessons = slices.Clone(s.CompletedLessons)
	out.UnlockedUnits = slices.Clone(s.UnlockedUnits)
	out.Equipped = maps.Clone(s.Equipped)
	if s.OwnedItems != nil {
		out.OwnedItems = make(map[economy.Category][]economy.ItemID, len(s.OwnedItems))
		for k, v := range s.OwnedItems {
			out.OwnedItems[k] = slices.Clone(v)
		}
	}
	return out
}
