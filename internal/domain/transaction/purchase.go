package transaction

import (
	"errors"

	"github.com/phrazzld/medfluent/internal/domain/economy"
)

// PurchaseStatus is the outcome of a purchase attempt.
type PurchaseStatus string

// Purchase outcomes. Only PurchaseOK changes state.
const (
	PurchaseOK                PurchaseStatus = "ok"
	PurchaseNotFound          PurchaseStatus = "not_found"
	PurchaseAlreadyOwned      PurchaseStatus = "already_owned"
	PurchaseInsufficientFunds PurchaseStatus = "insufficient_funds"
)

// ErrAlreadyOwned is the error form of PurchaseAlreadyOwned.
var ErrAlreadyOwned = errors.New("item already owned")

// PurchaseResult reports a purchase attempt.
type PurchaseResult struct {
	ItemID         economy.ItemID   `json:"item_id"`
	Status         PurchaseStatus   `json:"status"`
	Category       economy.Category `json:"category,omitempty"`
	Price          int              `json:"price"`
	CoinsRemaining int              `json:"coins_remaining"`
}

// Succeeded reports whether the item was bought by this call.
func (r PurchaseResult) Succeeded() bool {
	return r.Status == PurchaseOK
}

// Err maps a failed status to its sentinel error, or nil on success.
func (r PurchaseResult) Err() error {
	switch r.Status {
	case PurchaseNotFound:
		return economy.ErrItemNotFound
	case PurchaseAlreadyOwned:
		return ErrAlreadyOwned
	case PurchaseInsufficientFunds:
		return economy.ErrInsufficientFunds
	}
	return nil
}

// PurchaseItem buys a shop item. On success the returned state has the coins
// deducted, the item marked owned and its id added to the inventory category
// matching the item type. Any other outcome returns s unchanged.
func PurchaseItem(s State, itemID economy.ItemID) (State, PurchaseResult) {
	result := PurchaseResult{ItemID: itemID, CoinsRemaining: s.Wallet.Coins}

	item, err := s.Shop.Item(itemID)
	if err != nil {
		result.Status = PurchaseNotFound
		return s, result
	}
	result.Category = item.Type
	result.Price = item.Price

	if item.Owned {
		result.Status = PurchaseAlreadyOwned
		return s, result
	}

	wallet, err := s.Wallet.SpendCoins(item.Price)
	if err != nil {
		result.Status = PurchaseInsufficientFunds
		return s, result
	}

	shop, err := s.Shop.MarkOwned(itemID)
	if err != nil {
		result.Status = PurchaseNotFound
		return s, result
	}

	next := s
	next.Wallet = wallet
	next.Shop = shop
	next.Inventory = s.Inventory.Add(item.Type, item.ID)

	result.Status = PurchaseOK
	result.CoinsRemaining = wallet.Coins
	return next, result
}
