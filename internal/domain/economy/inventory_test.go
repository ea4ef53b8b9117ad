package economy_test

import (
	"testing"

	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryAdd(t *testing.T) {
	t.Parallel()
	inv := economy.NewInventory(map[economy.Category][]economy.ItemID{"scrubs": {"teal_basic"}}, nil)

	next := inv.Add("scrubs", "navy_scrubs").Add("scrubCaps", "rainbow_cap")
	assert.Equal(t, []economy.ItemID{"teal_basic", "navy_scrubs"}, next.Items("scrubs"), "acquisition order")
	assert.True(t, next.Contains("scrubCaps", "rainbow_cap"))
	assert.False(t, next.Contains("scrubs", "rainbow_cap"), "ownership is per category")

	again := next.Add("scrubs", "navy_scrubs")
	assert.Equal(t, next.Owned(), again.Owned(), "adding an owned id is a no-op")

	assert.Equal(t, []economy.ItemID{"teal_basic"}, inv.Items("scrubs"), "receiver untouched")
	assert.Empty(t, inv.Items("scrubCaps"))
}

func TestInventoryEquip(t *testing.T) {
	t.Parallel()
	inv := economy.NewInventory(map[economy.Category][]economy.ItemID{"scrubs": {"teal_basic", "navy_scrubs"}},
		map[economy.Category]economy.ItemID{"scrubs": "teal_basic", "stethoscopes": "gold_stethoscope"})

	assert.Equal(t, map[economy.Category]economy.ItemID{"scrubs": "teal_basic"}, inv.Equipped(),
		"unowned equipped entries are dropped")

	next, err := inv.Equip("scrubs", "navy_scrubs")
	require.NoError(t, err)
	assert.Equal(t, economy.ItemID("navy_scrubs"), next.Equipped()["scrubs"])
	assert.Equal(t, economy.ItemID("teal_basic"), inv.Equipped()["scrubs"])

	same, err := next.Equip("stethoscopes", "gold_stethoscope")
	assert.ErrorIs(t, err, economy.ErrNotOwned)
	assert.Equal(t, next.Equipped(), same.Equipped())
}

func TestInventoryCopies(t *testing.T) {
	t.Parallel()
	source := map[economy.Category][]economy.ItemID{"scrubs": {"teal_basic"}}
	inv := economy.NewInventory(source, nil)

	source["scrubs"][0] = "hijacked"
	owned := inv.Owned()
	owned["scrubs"][0] = "hijacked"
	inv.Items("scrubs")[0] = "hijacked"

	assert.Equal(t, []economy.ItemID{"teal_basic"}, inv.Items("scrubs"))
}
