package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot(t *testing.T) store.Snapshot {
	t.Helper()
	wallet, err := economy.NewWallet(40, 120, 4, 5, 2)
	require.NoError(t, err)
	return store.Snapshot{
		LearnerID:        uuid.New(),
		Wallet:           wallet,
		CompletedLessons: []content.LessonID{"u1l1"},
		UnlockedUnits:    []content.UnitID{1},
		OwnedItems:       map[economy.Category][]economy.ItemID{"scrubs": {"teal_basic"}},
	}
}

func TestMemorySnapshotStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemorySnapshotStore()
	snap := sampleSnapshot(t)

	_, err := s.Get(ctx, snap.LearnerID)
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)

	saved, err := s.Save(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := s.Get(ctx, snap.LearnerID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	got.CompletedLessons[0] = "mutated"
	again, err := s.Get(ctx, snap.LearnerID)
	require.NoError(t, err)
	assert.Equal(t, content.LessonID("u1l1"), again.CompletedLessons[0], "reads are copies")

	_, err = s.Save(ctx, snap)
	assert.ErrorIs(t, err, store.ErrVersionConflict, "stale version zero")

	saved.Wallet.Coins = 10
	next, err := s.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.Version)
	assert.Equal(t, 10, next.Wallet.Coins)
}

func TestMemorySnapshotStoreRejectsUnknownVersion(t *testing.T) {
	t.Parallel()
	snap := sampleSnapshot(t)
	snap.Version = 3

	_, err := store.NewMemorySnapshotStore().Save(context.Background(), snap)
	assert.ErrorIs(t, err, store.ErrVersionConflict)
}

func TestSnapshotValidate(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot(t)
	require.NoError(t, snap.Validate())

	noID := snap
	noID.LearnerID = uuid.Nil
	assert.ErrorIs(t, noID.Validate(), store.ErrInvalidEntity)

	badWallet := snap
	badWallet.Wallet.Coins = -1
	assert.ErrorIs(t, badWallet.Validate(), store.ErrInvalidEntity)
}
