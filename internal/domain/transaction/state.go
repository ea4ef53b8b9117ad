// Package transaction implements the two atomic learner transactions,
// completing a lesson and purchasing a shop item.
//
// Both are pure functions from one State to the next. The input State is
// never modified; the caller publishes the returned State as a whole, so a
// half-applied transaction is never observable.
package transaction

import (
	"fmt"

	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/domain/progress"
)

// State is everything a transaction may change for one learner.
type State struct {
	Ledger    progress.Ledger
	Wallet    economy.Wallet
	Shop      economy.Shop
	Inventory economy.Inventory
}

// GrantXP adds XP to the wallet and feeds the same amount into the daily XP
// goal, which stays capped at its target.
func GrantXP(s State, amount int) (State, error) {
	wallet, err := s.Wallet.GrantXP(amount)
	if err != nil {
		return s, err
	}
	ledger, err := s.Ledger.AdvanceDailyGoal(progress.GoalXP, amount)
	if err != nil {
		return s, fmt.Errorf("failed to advance xp goal: %w", err)
	}
	s.Wallet = wallet
	s.Ledger = ledger
	return s, nil
}
