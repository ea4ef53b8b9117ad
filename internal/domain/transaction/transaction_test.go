package transaction_test

import (
	"math"
	"testing"

	"github.com/phrazzld/medfluent/internal/domain"
	"github.com/phrazzld/medfluent/internal/domain/content"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/phrazzld/medfluent/internal/domain/progress"
	"github.com/phrazzld/medfluent/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lesson(id content.LessonID, unit content.UnitID) content.Lesson {
	return content.Lesson{
		ID: id, UnitID: unit, Type: content.LessonTypeVocabulary, XPReward: 15,
		Items: []content.Item{content.VocabularyItem{English: "Fever", Spanish: "Fiebre"}},
	}
}

func newCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	c, err := content.NewCatalog(
		[]content.Unit{
			{ID: 1, Lessons: []content.LessonID{"u1l1", "u1l2", "u1l3"}},
			{ID: 2, Lessons: []content.LessonID{"u2l1"}},
			{ID: 3, Lessons: []content.LessonID{"u3l1"}},
		},
		[]content.Lesson{lesson("u1l1", 1), lesson("u1l2", 1), lesson("u1l3", 1), lesson("u2l1", 2), lesson("u3l1", 3)},
	)
	require.NoError(t, err)
	return c
}

func newState(t *testing.T, coins int, completed ...content.LessonID) transaction.State {
	t.Helper()
	wallet, err := economy.NewWallet(0, coins, 5, 5, 0)
	require.NoError(t, err)
	shop, err := economy.NewShop([]economy.ShopItem{
		{ID: "x", Type: "scrubs", Price: 150, Rarity: economy.RarityCommon},
		{ID: "gold_stethoscope", Type: "stethoscopes", Price: 500, Rarity: economy.RarityEpic},
	})
	require.NoError(t, err)
	return transaction.State{
		Ledger: progress.NewLedger(progress.DailyGoals{
			XP:       progress.NewGoal(0, 100),
			Lessons:  progress.NewGoal(0, 3),
			Speaking: progress.NewGoal(0, 1),
		}, []content.UnitID{1}, completed),
		Wallet:    wallet,
		Shop:      shop,
		Inventory: economy.NewInventory(map[economy.Category][]economy.ItemID{"scrubs": {"teal_basic"}}, nil),
	}
}

func TestCompleteLessonGrantsRewards(t *testing.T) {
	t.Parallel()
	catalog := newCatalog(t)
	before := newState(t, 10)

	after, result, err := transaction.CompleteLesson(catalog, before, "u1l1", 20, 6)
	require.NoError(t, err)

	assert.False(t, result.AlreadyCompleted)
	assert.Equal(t, 20, result.XPGranted)
	assert.Equal(t, 6, result.CoinsGranted)
	assert.Equal(t, 1, result.LessonsAdvanced)
	assert.False(t, result.UnitCompleted)
	assert.Nil(t, result.UnlockedUnit)

	assert.True(t, after.Ledger.IsCompleted("u1l1"))
	assert.Equal(t, 20, after.Wallet.XP)
	assert.Equal(t, 16, after.Wallet.Coins)
	assert.Equal(t, 20, after.Ledger.Goals().XP.Current)
	assert.Equal(t, 1, after.Ledger.Goals().Lessons.Current)

	assert.False(t, before.Ledger.IsCompleted("u1l1"), "input state untouched")
	assert.Zero(t, before.Wallet.XP)
	assert.Equal(t, 10, before.Wallet.Coins)
}

func TestCompleteLessonIdempotence(t *testing.T) {
	t.Parallel()
	catalog := newCatalog(t)

	once, _, err := transaction.CompleteLesson(catalog, newState(t, 0), "u1l2", 20, 6)
	require.NoError(t, err)

	twice, result, err := transaction.CompleteLesson(catalog, once, "u1l2", 20, 6)
	require.NoError(t, err)

	assert.True(t, result.AlreadyCompleted)
	assert.Zero(t, result.XPGranted)
	assert.Zero(t, result.CoinsGranted)
	assert.Zero(t, result.LessonsAdvanced)
	assert.Nil(t, result.UnlockedUnit)
	assert.Equal(t, once.Wallet, twice.Wallet)
	assert.Equal(t, once.Ledger.Goals(), twice.Ledger.Goals())
	assert.Equal(t, once.Ledger.CompletedLessons(), twice.Ledger.CompletedLessons())
}

func TestCompleteLessonXPGoalCapped(t *testing.T) {
	t.Parallel()
	catalog := newCatalog(t)

	after, _, err := transaction.CompleteLesson(catalog, newState(t, 0), "u1l1", 250, 0)
	require.NoError(t, err)
	assert.Equal(t, 250, after.Wallet.XP)
	assert.Equal(t, 100, after.Ledger.Goals().XP.Current)
}

func TestUnitCompletionPropagation(t *testing.T) {
	t.Parallel()
	catalog := newCatalog(t)
	s := newState(t, 0, "u1l1", "u1l2")

	unit2, err := catalog.Unit(2)
	require.NoError(t, err)
	require.False(t, s.Ledger.IsUnitUnlocked(unit2))

	s, result, err := transaction.CompleteLesson(catalog, s, "u1l3", 15, 5)
	require.NoError(t, err)
	assert.True(t, result.UnitCompleted)
	require.NotNil(t, result.UnlockedUnit)
	assert.Equal(t, content.UnitID(2), *result.UnlockedUnit)
	assert.True(t, s.Ledger.IsUnitUnlocked(unit2))
	assert.True(t, s.Ledger.IsLessonUnlocked(unit2, 0))

	_, replay, err := transaction.CompleteLesson(catalog, s, "u1l3", 15, 5)
	require.NoError(t, err)
	assert.Nil(t, replay.UnlockedUnit, "unlock happens exactly once")
	assert.Equal(t, []content.UnitID{1, 2}, s.Ledger.UnlockedUnits())
}

func TestUnitCompletionOutOfOrder(t *testing.T) {
	t.Parallel()
	catalog := newCatalog(t)
	s := newState(t, 0, "u1l3", "u1l2")

	s, result, err := transaction.CompleteLesson(catalog, s, "u1l1", 15, 5)
	require.NoError(t, err)
	require.NotNil(t, result.UnlockedUnit, "the last missing lesson completes the unit")
	assert.Equal(t, content.UnitID(2), *result.UnlockedUnit)
}

func TestLastUnitUnlocksNothing(t *testing.T) {
	t.Parallel()
	catalog := newCatalog(t)

	s, result, err := transaction.CompleteLesson(catalog, newState(t, 0), "u3l1", 15, 5)
	require.NoError(t, err)
	assert.True(t, result.UnitCompleted)
	assert.Nil(t, result.UnlockedUnit)
	assert.Equal(t, []content.UnitID{1}, s.Ledger.UnlockedUnits())
}

func TestCompleteLessonErrors(t *testing.T) {
	t.Parallel()
	catalog := newCatalog(t)
	s := newState(t, 0)

	after, _, err := transaction.CompleteLesson(catalog, s, "ghost", 15, 5)
	assert.ErrorIs(t, err, content.ErrLessonNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, s.Wallet, after.Wallet)

	_, _, err = transaction.CompleteLesson(catalog, s, "u1l1", -1, 5)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	_, _, err = transaction.CompleteLesson(catalog, s, "u1l1", 1, -5)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestCompleteLessonRejectsOverflowingRewards(t *testing.T) {
	t.Parallel()
	catalog := newCatalog(t)
	s := newState(t, 10)
	s, err := transaction.GrantXP(s, 50)
	require.NoError(t, err)

	for name, rewards := range map[string][2]int{
		"xp":    {math.MaxInt, 0},
		"coins": {0, math.MaxInt},
		"both":  {math.MaxInt, math.MaxInt},
	} {
		t.Run(name, func(t *testing.T) {
			after, result, err := transaction.CompleteLesson(catalog, s, "u1l1", rewards[0], rewards[1])
			assert.ErrorIs(t, err, economy.ErrAmountOverflow)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, result.XPGranted)

			assert.Equal(t, s.Wallet, after.Wallet, "state rolled back")
			assert.Equal(t, s.Ledger.Goals(), after.Ledger.Goals())
			assert.False(t, after.Ledger.IsCompleted("u1l1"))
			require.NoError(t, after.Wallet.Validate())
		})
	}
}

func TestPurchaseItemInsufficientFunds(t *testing.T) {
	t.Parallel()
	s := newState(t, 100)

	after, result := transaction.PurchaseItem(s, "x")
	assert.Equal(t, transaction.PurchaseInsufficientFunds, result.Status)
	assert.ErrorIs(t, result.Err(), economy.ErrInsufficientFunds)
	assert.Equal(t, 100, after.Wallet.Coins)
	item, err := after.Shop.Item("x")
	require.NoError(t, err)
	assert.False(t, item.Owned)
	assert.False(t, after.Inventory.Contains("scrubs", "x"))
}

func TestPurchaseItemSuccess(t *testing.T) {
	t.Parallel()
	s := newState(t, 200)

	after, result := transaction.PurchaseItem(s, "x")
	require.True(t, result.Succeeded())
	require.NoError(t, result.Err())
	assert.Equal(t, 50, result.CoinsRemaining)
	assert.Equal(t, economy.Category("scrubs"), result.Category)

	assert.Equal(t, 50, after.Wallet.Coins)
	item, err := after.Shop.Item("x")
	require.NoError(t, err)
	assert.True(t, item.Owned)
	assert.Equal(t, []economy.ItemID{"teal_basic", "x"}, after.Inventory.Items("scrubs"))

	assert.Equal(t, 200, s.Wallet.Coins, "input state untouched")
	assert.False(t, s.Inventory.Contains("scrubs", "x"))

	again, replay := transaction.PurchaseItem(after, "x")
	assert.Equal(t, transaction.PurchaseAlreadyOwned, replay.Status)
	assert.ErrorIs(t, replay.Err(), transaction.ErrAlreadyOwned)
	assert.Equal(t, 50, again.Wallet.Coins, "no double charge")
}

func TestPurchaseItemNotFound(t *testing.T) {
	t.Parallel()
	s := newState(t, 1000)

	after, result := transaction.PurchaseItem(s, "unicorn")
	assert.Equal(t, transaction.PurchaseNotFound, result.Status)
	assert.ErrorIs(t, result.Err(), domain.ErrNotFound)
	assert.Equal(t, 1000, after.Wallet.Coins)
}

func TestGrantXP(t *testing.T) {
	t.Parallel()
	s := newState(t, 0)

	s, err := transaction.GrantXP(s, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, s.Wallet.XP)
	assert.Equal(t, 30, s.Ledger.Goals().XP.Current)

	_, err = transaction.GrantXP(s, -1)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}
