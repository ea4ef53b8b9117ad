package economy

import (
	"fmt"
	"slices"
	"strings"
)

// ItemID identifies a shop item.
type ItemID string

// Category is the inventory slot a shop item goes to (scrubs, badges, ...).
type Category string

// Rarity is the tier of a shop item.
type Rarity string

// Rarity tiers.
const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// IsValid reports whether r is a known tier.
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// ShopItem is one purchasable cosmetic. Price is fixed when the shop is built.
type ShopItem struct {
	ID          ItemID   `json:"id"`
	Type        Category `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int      `json:"price"`
	Rarity      Rarity   `json:"rarity"`
	Owned       bool     `json:"owned"`
}

// Validate checks the item definition.
func (i ShopItem) Validate() error {
	switch {
	case strings.TrimSpace(string(i.ID)) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidShopItem)
	case strings.TrimSpace(string(i.Type)) == "":
		return fmt.Errorf("%w: %s has no type", ErrInvalidShopItem, i.ID)
	case i.Price < 0:
		return fmt.Errorf("%w: %s has negative price", ErrInvalidShopItem, i.ID)
	case !i.Rarity.IsValid():
		return fmt.Errorf("%w: %s has rarity %q", ErrInvalidShopItem, i.ID, i.Rarity)
	}
	return nil
}

// Shop is the ordered list of shop items and their ownership flags.
type Shop struct {
	items []ShopItem
	pos   map[ItemID]int
}

// NewShop builds a shop from item definitions, in display order.
func NewShop(items []ShopItem) (Shop, error) {
	s := Shop{
		items: make([]ShopItem, 0, len(items)),
		pos:   make(map[ItemID]int, len(items)),
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Shop{}, err
		}
		if _, dup := s.pos[item.ID]; dup {
			return Shop{}, fmt.Errorf("%w: duplicate id %s", ErrInvalidShopItem, item.ID)
		}
		s.pos[item.ID] = len(s.items)
		s.items = append(s.items, item)
	}
	return s, nil
}

// Items returns every item in display order.
func (s Shop) Items() []ShopItem {
	return slices.Clone(s.items)
}

// Item returns the item with the given id, or ErrItemNotFound.
func (s Shop) Item(id ItemID) (ShopItem, error) {
	pos, ok := s.pos[id]
	if !ok {
		return ShopItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return s.items[pos], nil
}

// MarkOwned returns a shop in which id is owned.
func (s Shop) MarkOwned(id ItemID) (Shop, error) {
	pos, ok := s.pos[id]
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	next := Shop{items: slices.Clone(s.items), pos: s.pos}
	next.items[pos].Owned = true
	return next, nil
}

// WithOwned marks every listed id as owned, ignoring unknown ids. It is used
// when restoring a persisted learner.
func (s Shop) WithOwned(ids []ItemID) Shop {
	next := Shop{items: slices.Clone(s.items), pos: s.pos}
	for _, id := range ids {
		if pos, ok := s.pos[id]; ok {
			next.items[pos].Owned = true
		}
	}
	return next
}

// OwnedIDs lists the owned items in display order.
func (s Shop) OwnedIDs() []ItemID {
	var ids []ItemID
	for _, item := range s.items {
		if item.Owned {
			ids = append(ids, item.ID)
		}
	}
	return ids
}
