package session

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/domain/progress"
	"github.com/phrazzld/medfluent/internal/domain/transaction"
	"github.com/phrazzld/medfluent/internal/store"
)

// Profile is the starting point of a learner who has no saved state.
type Profile struct {
	MaxHearts      int
	StartingHearts int
	StartingCoins  int
	Goals          progress.DailyGoals
	// UnlockedUnits are open from the start. When empty the first unit of
	// the catalog is unlocked.
	UnlockedUnits []content.UnitID
	// StarterItems are owned from the start; the first item of each
	// category is equipped.
	StarterItems map[economy.Category][]economy.ItemID
}

// DefaultProfile is five of five hearts, no coins and the usual daily targets.
func DefaultProfile() Profile {
	return Profile{
		MaxHearts:      economy.DefaultMaxHearts,
		StartingHearts: economy.DefaultMaxHearts,
		Goals: progress.DailyGoals{
			XP:       progress.NewGoal(0, 100),
			Lessons:  progress.NewGoal(0, 3),
			Speaking: progress.NewGoal(0, 1),
		},
	}
}

// NewState builds the initial state of a learner from p.
func (p Profile) NewState(catalog *content.Catalog, shop economy.Shop) (transaction.State, error) {
	wallet, err := economy.NewWallet(0, p.StartingCoins, p.StartingHearts, p.MaxHearts, 0)
	if err != nil {
		return transaction.State{}, fmt.Errorf("invalid starting profile: %w", err)
	}

	unlocked := p.UnlockedUnits
	if len(unlocked) == 0 {
		if units := catalog.Units(); len(units) > 0 {
			unlocked = []content.UnitID{units[0].ID}
		}
	}

	equipped := make(map[economy.Category]economy.ItemID, len(p.StarterItems))
	for cat, ids := range p.StarterItems {
		if len(ids) > 0 {
			equipped[cat] = ids[0]
		}
	}

	return transaction.State{
		Ledger:    progress.NewLedger(p.Goals.Reset(), unlocked, nil),
		Wallet:    wallet,
		Shop:      shop.WithOwned(flatten(p.StarterItems)),
		Inventory: economy.NewInventory(p.StarterItems, equipped),
	}, nil
}

// FromSnapshot rebuilds a state from a persisted snapshot. Shop ownership
// is taken from the owned inventory.
func FromSnapshot(snap store.Snapshot, shop economy.Shop) (transaction.State, error) {
	if err := snap.Wallet.Validate(); err != nil {
		return transaction.State{}, fmt.Errorf("invalid stored wallet: %w", err)
	}
	return transaction.State{
		Ledger:    progress.NewLedger(snap.Goals, snap.UnlockedUnits, snap.CompletedLessons),
		Wallet:    snap.Wallet,
		Shop:      shop.WithOwned(flatten(snap.OwnedItems)),
		Inventory: economy.NewInventory(snap.OwnedItems, snap.Equipped),
	}, nil
}

// ToSnapshot converts a state to its persisted form. Version and UpdatedAt
// are left for the store.
func ToSnapshot(learnerID uuid.UUID, s transaction.State) store.Snapshot {
	return store.Snapshot{
		LearnerID:        learnerID,
		Wallet:           s.Wallet,
		Goals:            s.Ledger.Goals(),
		CompletedLessons: s.Ledger.CompletedLessons(),
		UnlockedUnits:    s.Ledger.UnlockedUnits(),
		OwnedItems:       s.Inventory.Owned(),
		Equipped:         s.Inventory.Equipped(),
	}
}

// Snapshot returns the current state in persisted form.
func (s *Session) Snapshot() store.Snapshot {
	return ToSnapshot(s.learnerID, s.State())
}

// Restore loads the learner's saved state, or builds a fresh one from
// profile when nothing is stored. The returned version is what the next
// Save must present; it is zero for a fresh learner.
func Restore(
	ctx context.Context,
	st store.SnapshotStore,
	learnerID uuid.UUID,
	catalog *content.Catalog,
	shop economy.Shop,
	profile Profile,
) (transaction.State, int64, error) {
	snap, err := st.Get(ctx, learnerID)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		state, err := profile.NewState(catalog, shop)
		return state, 0, err
	}
	if err != nil {
		return transaction.State{}, 0, fmt.Errorf("failed to load learner %s: %w", learnerID, err)
	}
	state, err := FromSnapshot(snap, shop)
	if err != nil {
		return transaction.State{}, 0, err
	}
	return state, snap.Version, nil
}

func flatten(items map[economy.Category][]economy.ItemID) []economy.ItemID {
	cats := make([]string, 0, len(items))
	for cat := range items {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)

	var ids []economy.ItemID
	for _, cat := range cats {
		ids = append(ids, items[economy.Category(cat)]...)
	}
	return ids
}
