//go:build integration

package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	medredis "github.com/phrazzld/medfluent/internal/platform/redis"
	"github.com/phrazzld/medfluent/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedSnapshotStoreIntegration(t *testing.T) {
	url := os.Getenv("MEDFLUENT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MEDFLUENT_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	client, err := medredis.Open(ctx, url)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	durable := store.NewMemorySnapshotStore()
	cached := medredis.NewCachedSnapshotStore(durable, client, time.Minute, discard)
	id := uuid.New()
	t.Cleanup(func() { client.Del(context.Background(), medredis.Key(id)) })

	saved, err := cached.Save(ctx, store.Snapshot{
		LearnerID:        id,
		Wallet:           economy.Wallet{XP: 15, Coins: 5, Hearts: 5, MaxHearts: 5},
		CompletedLessons: []content.LessonID{"u1l1"},
	})
	require.NoError(t, err)

	raw, err := client.Get(ctx, medredis.Key(id)).Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"u1l1"`, "write-through")

	got, err := cached.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, saved.Version, got.Version)
	assert.Equal(t, saved.Wallet, got.Wallet)

	ttl, err := client.TTL(ctx, medredis.Key(id)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	stale := saved
	stale.Version = 0
	_, err = cached.Save(ctx, stale)
	assert.ErrorIs(t, err, store.ErrVersionConflict)

	exists, err := client.Exists(ctx, medredis.Key(id)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "conflict evicts the cached entry")
}
