package economy

import (
	"errors"
	"fmt"

	"github.com/phrazzld/medfluent/internal/domain"
)

var (
	// ErrInsufficientFunds is returned when a spend would take coins below zero.
	// It is an expected outcome; the wallet is left unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrItemNotFound is returned for an unknown shop item id.
	ErrItemNotFound = fmt.Errorf("%w: shop item", domain.ErrNotFound)

	// ErrAmountOverflow is returned when a grant would overflow a balance.
	ErrAmountOverflow = fmt.Errorf("%w: amount overflows balance", domain.ErrValidation)

	// ErrNotOwned is returned when equipping an item the learner does not own.
	ErrNotOwned = errors.New("item not owned")

	// ErrInvalidWallet is returned when wallet values violate their bounds.
	ErrInvalidWallet = fmt.Errorf("%w: wallet", domain.ErrValidation)

	// ErrInvalidShopItem is returned when a shop item definition is malformed.
	ErrInvalidShopItem = fmt.Errorf("%w: shop item", domain.ErrValidation)
)
