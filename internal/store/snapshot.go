package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/domain/progress"
)

// Snapshot is the persisted form of one learner's progression and economy
// state. Shop ownership is derived from OwnedItems on load.
type Snapshot struct {
	LearnerID        uuid.UUID                             `json:"learner_id"`
	Version          int64                                 `json:"version"`
	Wallet           economy.Wallet                        `json:"wallet"`
	Goals            progress.DailyGoals                   `json:"goals"`
	CompletedLessons []content.LessonID                    `json:"completed_lessons"`
	UnlockedUnits    []content.UnitID                      `json:"unlocked_units"`
	OwnedItems       map[economy.Category][]economy.ItemID `json:"owned_items"`
	Equipped         map[economy.Category]economy.ItemID   `json:"equipped"`
	UpdatedAt        time.Time                             `json:"updated_at"`
}

// Validate checks the snapshot before it is written.
func (s Snapshot) Validate() error {
	if s.LearnerID == uuid.Nil {
		return fmt.Errorf("%w: learner id is required", ErrInvalidEntity)
	}
	if s.Version < 0 {
		return fmt.Errorf("%w: negative version %d", ErrInvalidEntity, s.Version)
	}
	if err := s.Wallet.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	return nil
}

// SnapshotStore persists learner snapshots with optimistic versioning.
type SnapshotStore interface {
	// Get returns the latest snapshot for the learner, or ErrSnapshotNotFound.
	Get(ctx context.Context, learnerID uuid.UUID) (Snapshot, error)

	// Save writes snap if the stored version still equals snap.Version
	// (zero meaning "not stored yet") and returns the snapshot as stored,
	// with Version incremented and UpdatedAt set. A stale version yields
	// ErrVersionConflict.
	Save(ctx context.Context, snap Snapshot) (Snapshot, error)
}
