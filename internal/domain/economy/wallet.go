// Package economy holds the learner's wallet, the shop and the inventory.
//
// All types are immutable values: operations return an updated copy and never
// modify the receiver.
package economy

import (
	"fmt"
	"math"

	"github.com/phrazzld/medfluent/internal/domain"
)

// DefaultMaxHearts is the heart cap used when none is configured.
const DefaultMaxHearts = 5

// Wallet is the economy state of one learner.
//
// Invariants: XP never decreases, Coins >= 0, 0 <= Hearts <= MaxHearts and
// Streak >= 0.
type Wallet struct {
	XP        int `json:"xp"`
	Coins     int `json:"coins"`
	Hearts    int `json:"hearts"`
	MaxHearts int `json:"max_hearts"`
	Streak    int `json:"streak"`
}

// NewWallet creates a validated wallet. Hearts above the cap are clamped.
func NewWallet(xp, coins, hearts, maxHearts, streak int) (Wallet, error) {
	w := Wallet{
		XP:        xp,
		Coins:     coins,
		Hearts:    min(hearts, maxHearts),
		MaxHearts: maxHearts,
		Streak:    streak,
	}
	if err := w.Validate(); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// Validate checks the wallet invariants.
func (w Wallet) Validate() error {
	switch {
	case w.XP < 0:
		return fmt.Errorf("%w: xp %d", ErrInvalidWallet, w.XP)
	case w.Coins < 0:
		return fmt.Errorf("%w: coins %d", ErrInvalidWallet, w.Coins)
	case w.MaxHearts < 0:
		return fmt.Errorf("%w: max hearts %d", ErrInvalidWallet, w.MaxHearts)
	case w.Hearts < 0 || w.Hearts > w.MaxHearts:
		return fmt.Errorf("%w: hearts %d of %d", ErrInvalidWallet, w.Hearts, w.MaxHearts)
	case w.Streak < 0:
		return fmt.Errorf("%w: streak %d", ErrInvalidWallet, w.Streak)
	}
	return nil
}

// GrantXP adds amount to XP. A grant that would overflow the counter returns
// ErrAmountOverflow and the unchanged wallet.
func (w Wallet) GrantXP(amount int) (Wallet, error) {
	if amount < 0 {
		return w, fmt.Errorf("%w: xp grant %d", domain.ErrNegativeAmount, amount)
	}
	if amount > math.MaxInt-w.XP {
		return w, fmt.Errorf("%w: xp %d + %d", ErrAmountOverflow, w.XP, amount)
	}
	w.XP += amount
	return w, nil
}

// GrantCoins adds amount to the coin balance.
func (w Wallet) GrantCoins(amount int) (Wallet, error) {
	if amount < 0 {
		return w, fmt.Errorf("%w: coin grant %d", domain.ErrNegativeAmount, amount)
	}
	if amount > math.MaxInt-w.Coins {
		return w, fmt.Errorf("%w: coins %d + %d", ErrAmountOverflow, w.Coins, amount)
	}
	w.Coins += amount
	return w, nil
}

// SpendCoins removes amount from the balance. When the balance is too small
// it returns ErrInsufficientFunds and the unchanged wallet.
func (w Wallet) SpendCoins(amount int) (Wallet, error) {
	if amount < 0 {
		return w, fmt.Errorf("%w: coin spend %d", domain.ErrNegativeAmount, amount)
	}
	if w.Coins < amount {
		return w, ErrInsufficientFunds
	}
	w.Coins -= amount
	return w, nil
}

// LoseHeart removes one heart. At zero it is a no-op.
func (w Wallet) LoseHeart() Wallet {
	if w.Hearts > 0 {
		w.Hearts--
	}
	return w
}

// GainHeart adds one heart, up to MaxHearts.
func (w Wallet) GainHeart() Wallet {
	if w.Hearts < w.MaxHearts {
		w.Hearts++
	}
	return w
}

// OutOfHearts reports the terminal "no attempts left" state.
func (w Wallet) OutOfHearts() bool {
	return w.Hearts == 0
}

// IncrementStreak extends the day streak by one.
func (w Wallet) IncrementStreak() Wallet {
	w.Streak++
	return w
}

// ResetStreak sets the streak back to zero.
func (w Wallet) ResetStreak() Wallet {
	w.Streak = 0
	return w
}
