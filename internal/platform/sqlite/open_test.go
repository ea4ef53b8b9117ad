package sqlite_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/platform/postgres/migrations"
	"github.com/phrazzld/medfluent/internal/platform/sqlite"
	"github.com/phrazzld/medfluent/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestOpenFileDatabasePersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "medfluent.db")
	id := uuid.New()

	db, err := sqlite.Open(ctx, path, discard)
	require.NoError(t, err)
	_, err = sqlite.NewSnapshotStore(db, discard).Save(ctx, store.Snapshot{
		LearnerID: id,
		Wallet:    economy.Wallet{Coins: 42, Hearts: 5, MaxHearts: 5},
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := sqlite.Open(ctx, path, discard)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	snap, err := sqlite.NewSnapshotStore(reopened, discard).Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 42, snap.Wallet.Coins)
	assert.Equal(t, int64(1), snap.Version)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, sqlite.MemoryPath, discard)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	version, err := migrations.Up(ctx, db, migrations.SQLite, discard)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()
	_, err := sqlite.Open(context.Background(), "  ", discard)
	assert.Error(t, err)
}

func TestMapError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath, discard)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	insert := `INSERT INTO learner_events (id, learner_id, event_type, payload, created_at)
		VALUES ($1, $2, 'state_changed', '{}', 0)`
	id := uuid.NewString()
	_, err = db.ExecContext(ctx, insert, id, uuid.NewString())
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, id, uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, sqlite.MapError(err), store.ErrDuplicate)

	_, err = db.ExecContext(ctx, insert, uuid.NewString(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, sqlite.MapError(err), store.ErrInvalidEntity)

	plain := errors.New("plain")
	assert.Equal(t, plain, sqlite.MapError(plain))
	assert.NoError(t, sqlite.MapError(nil))
}
