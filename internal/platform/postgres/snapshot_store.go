package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/platform/logger"
	"github.com/phrazzld/medfluent/internal/store"
)

const snapshotColumns = `learner_id, version, xp, coins, hearts, max_hearts, streak,
	daily_goals, completed_lessons, unlocked_units, owned_items, equipped_items, updated_at`

// SnapshotStore implements store.SnapshotStore on a SQL database.
type SnapshotStore struct {
	db       *sql.DB
	mapError ErrorMapper
	now      func() time.Time
	logger   *slog.Logger
}

var _ store.SnapshotStore = (*SnapshotStore)(nil)

// Option configures a SnapshotStore.
type Option func(*SnapshotStore)

// WithErrorMapper replaces MapError, for databases other than PostgreSQL.
func WithErrorMapper(m ErrorMapper) Option {
	return func(s *SnapshotStore) { s.mapError = m }
}

// WithClock sets the clock used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *SnapshotStore) { s.now = now }
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(s *SnapshotStore) { s.logger = l }
}

// NewSnapshotStore creates a store on db. The schema must already be migrated.
func NewSnapshotStore(db *sql.DB, opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		db:       db,
		mapError: MapError,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "snapshot_store"))
	return s
}

// Get implements store.SnapshotStore.
func (s *SnapshotStore) Get(ctx context.Context, learnerID uuid.UUID) (store.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM learner_snapshots WHERE learner_id = $1`,
		learnerID.String())

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Snapshot{}, store.ErrSnapshotNotFound
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to read snapshot",
			slog.String("learner_id", learnerID.String()),
			slog.String("error", err.Error()))
		return store.Snapshot{}, store.NewStoreError("learner_snapshot", "get", "query failed", s.mapError(err))
	}
	return snap, nil
}

// Save implements store.SnapshotStore. A new learner is inserted when
// snap.Version is zero; otherwise the row is updated only if its version
// still equals snap.Version.
func (s *SnapshotStore) Save(ctx context.Context, snap store.Snapshot) (store.Snapshot, error) {
	if err := snap.Validate(); err != nil {
		return store.Snapshot{}, err
	}

	saved := snap
	saved.Version = snap.Version + 1
	saved.UpdatedAt = time.UnixMilli(s.now().UnixMilli()).UTC()

	cols, err := encodeSnapshot(saved)
	if err != nil {
		return store.Snapshot{}, store.NewStoreError("learner_snapshot", "save", "encode failed", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if snap.Version == 0 {
			return s.insert(ctx, tx, cols)
		}
		return s.update(ctx, tx, snap.Version, cols)
	})
	if err != nil {
		return store.Snapshot{}, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("snapshot saved",
		slog.String("learner_id", snap.LearnerID.String()),
		slog.Int64("version", saved.Version))
	return saved, nil
}

func (s *SnapshotStore) insert(ctx context.Context, tx *sql.Tx, cols []any) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO learner_snapshots (`+snapshotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		cols...)
	if err == nil {
		return nil
	}
	mapped := s.mapError(err)
	if store.IsDuplicateError(mapped) {
		return fmt.Errorf("%w: learner %s already has a snapshot", store.ErrVersionConflict, cols[0])
	}
	return store.NewStoreError("learner_snapshot", "insert", "insert failed", mapped)
}

func (s *SnapshotStore) update(ctx context.Context, tx *sql.Tx, prev int64, cols []any) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE learner_snapshots SET
			version = $2, xp = $3, coins = $4, hearts = $5, max_hearts = $6, streak = $7,
			daily_goals = $8, completed_lessons = $9, unlocked_units = $10,
			owned_items = $11, equipped_items = $12, updated_at = $13
		WHERE learner_id = $1 AND version = $14`,
		append(cols, prev)...)
	if err != nil {
		return store.NewStoreError("learner_snapshot", "update", "update failed", s.mapError(err))
	}

	err = CheckRowsAffected(result, "learner snapshot")
	if err == nil {
		return nil
	}
	if !store.IsNotFoundError(err) {
		return err
	}

	var current int64
	err = tx.QueryRowContext(ctx,
		`SELECT version FROM learner_snapshots WHERE learner_id = $1`, cols[0]).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: learner %s has no stored snapshot", store.ErrVersionConflict, cols[0])
	}
	if err != nil {
		return store.NewStoreError("learner_snapshot", "update", "version check failed", s.mapError(err))
	}
	return fmt.Errorf("%w: stored %d, have %d", store.ErrVersionConflict, current, prev)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func encodeSnapshot(snap store.Snapshot) ([]any, error) {
	goals, err := json.Marshal(snap.Goals)
	if err != nil {
		return nil, err
	}
	completed, err := json.Marshal(nonNil(snap.CompletedLessons))
	if err != nil {
		return nil, err
	}
	unlocked, err := json.Marshal(nonNil(snap.UnlockedUnits))
	if err != nil {
		return nil, err
	}
	owned, err := json.Marshal(snap.OwnedItems)
	if err != nil {
		return nil, err
	}
	equipped, err := json.Marshal(snap.Equipped)
	if err != nil {
		return nil, err
	}
	w := snap.Wallet
	return []any{
		snap.LearnerID.String(), snap.Version,
		w.XP, w.Coins, w.Hearts, w.MaxHearts, w.Streak,
		string(goals), string(completed), string(unlocked), string(owned), string(equipped),
		snap.UpdatedAt.UnixMilli(),
	}, nil
}

func scanSnapshot(row rowScanner) (store.Snapshot, error) {
	var (
		snap                                        store.Snapshot
		id                                          string
		goals, completed, unlocked, owned, equipped string
		updatedAt                                   int64
	)
	err := row.Scan(&id, &snap.Version,
		&snap.Wallet.XP, &snap.Wallet.Coins, &snap.Wallet.Hearts, &snap.Wallet.MaxHearts, &snap.Wallet.Streak,
		&goals, &completed, &unlocked, &owned, &equipped, &updatedAt)
	if err != nil {
		return store.Snapshot{}, err
	}

	if snap.LearnerID, err = uuid.Parse(id); err != nil {
		return store.Snapshot{}, fmt.Errorf("invalid learner id %q: %w", id, err)
	}
	for _, field := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"daily_goals", goals, &snap.Goals},
		{"completed_lessons", completed, &snap.CompletedLessons},
		{"unlocked_units", unlocked, &snap.UnlockedUnits},
		{"owned_items", owned, &snap.OwnedItems},
		{"equipped_items", equipped, &snap.Equipped},
	} {
		if err := json.Unmarshal([]byte(field.raw), field.dst); err != nil {
			return store.Snapshot{}, fmt.Errorf("invalid %s column: %w", field.name, err)
		}
	}
	snap.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return snap, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
