package economy

import (
	"fmt"
	"maps"
	"slices"
)

// Inventory maps each category to the item ids the learner owns, in the order
// they were acquired, plus the item equipped per category on the avatar.
type Inventory struct {
	owned    map[Category][]ItemID
	equipped map[Category]ItemID
}

// NewInventory builds an inventory from persisted or initial values. Equipped
// entries that are not owned are dropped.
func NewInventory(owned map[Category][]ItemID, equipped map[Category]ItemID) Inventory {
	inv := Inventory{
		owned:    make(map[Category][]ItemID, len(owned)),
		equipped: make(map[Category]ItemID, len(equipped)),
	}
	for cat, ids := range owned {
		inv.owned[cat] = slices.Clone(ids)
	}
	for cat, id := range equipped {
		if inv.Contains(cat, id) {
			inv.equipped[cat] = id
		}
	}
	return inv
}

// Contains reports whether id is owned in category cat.
func (inv Inventory) Contains(cat Category, id ItemID) bool {
	return slices.Contains(inv.owned[cat], id)
}

// Items returns the ids owned in a category.
func (inv Inventory) Items(cat Category) []ItemID {
	return slices.Clone(inv.owned[cat])
}

// Owned returns a copy of the whole category map.
func (inv Inventory) Owned() map[Category][]ItemID {
	out := make(map[Category][]ItemID, len(inv.owned))
	for cat, ids := range inv.owned {
		out[cat] = slices.Clone(ids)
	}
	return out
}

// Equipped returns a copy of the equipped item per category.
func (inv Inventory) Equipped() map[Category]ItemID {
	return maps.Clone(inv.equipped)
}

// Add returns an inventory with id added to cat. Adding an owned id is a no-op.
func (inv Inventory) Add(cat Category, id ItemID) Inventory {
	if inv.Contains(cat, id) {
		return inv
	}
	next := inv.clone()
	next.owned[cat] = append(next.owned[cat], id)
	return next
}

// Equip puts an owned item on the avatar slot of its category.
func (inv Inventory) Equip(cat Category, id ItemID) (Inventory, error) {
	if !inv.Contains(cat, id) {
		return inv, fmt.Errorf("%w: %s in %s", ErrNotOwned, id, cat)
	}
	next := inv.clone()
	next.equipped[cat] = id
	return next, nil
}

func (inv Inventory) clone() Inventory {
	next := Inventory{
		owned:    inv.Owned(),
		equipped: maps.Clone(inv.equipped),
	}
	if next.equipped == nil {
		next.equipped = make(map[Category]ItemID)
	}
	return next
}
