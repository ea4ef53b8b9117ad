package economy_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/phrazzld/medfluent/internal/domain"
	"github.com/phrazzld/medfluent/internal/domain/economy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWallet(t *testing.T, coins, hearts int) economy.Wallet {
	t.Helper()
	w, err := economy.NewWallet(0, coins, hearts, economy.DefaultMaxHearts, 0)
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	t.Parallel()

	w, err := economy.NewWallet(1250, 485, 9, 5, 8)
	require.NoError(t, err)
	assert.Equal(t, 5, w.Hearts, "hearts clamp to the cap")

	testCases := []struct {
		name      string
		xp        int
		coins     int
		hearts    int
		maxHearts int
		streak    int
	}{
		{"negative xp", -1, 0, 0, 5, 0},
		{"negative coins", 0, -1, 0, 5, 0},
		{"negative hearts", 0, 0, -1, 5, 0},
		{"negative cap", 0, 0, 0, -1, 0},
		{"negative streak", 0, 0, 0, 5, -3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := economy.NewWallet(tc.xp, tc.coins, tc.hearts, tc.maxHearts, tc.streak)
			assert.ErrorIs(t, err, economy.ErrInvalidWallet)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSpendCoinsFloor(t *testing.T) {
	t.Parallel()

	for _, coins := range []int{0, 1, 99, 100} {
		for _, amount := range []int{coins + 1, coins + 50, 1000} {
			w := newWallet(t, coins, 5)
			after, err := w.SpendCoins(amount)
			assert.ErrorIs(t, err, economy.ErrInsufficientFunds)
			assert.Equal(t, coins, after.Coins, "coins %d spend %d", coins, amount)
		}
	}

	w := newWallet(t, 200, 5)
	after, err := w.SpendCoins(150)
	require.NoError(t, err)
	assert.Equal(t, 50, after.Coins)
	assert.Equal(t, 200, w.Coins, "receiver unchanged")

	exact, err := w.SpendCoins(200)
	require.NoError(t, err)
	assert.Zero(t, exact.Coins)
}

func TestGrants(t *testing.T) {
	t.Parallel()
	w := newWallet(t, 10, 5)

	w, err := w.GrantXP(15)
	require.NoError(t, err)
	w, err = w.GrantCoins(5)
	require.NoError(t, err)
	assert.Equal(t, 15, w.XP)
	assert.Equal(t, 15, w.Coins)

	_, err = w.GrantXP(-1)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	_, err = w.GrantCoins(-1)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	_, err = w.SpendCoins(-1)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestGrantsRejectOverflow(t *testing.T) {
	t.Parallel()
	w, err := economy.NewWallet(50, 10, 5, 5, 0)
	require.NoError(t, err)

	same, err := w.GrantXP(math.MaxInt)
	assert.ErrorIs(t, err, economy.ErrAmountOverflow)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, w, same)

	same, err = w.GrantCoins(math.MaxInt - 9)
	assert.ErrorIs(t, err, economy.ErrAmountOverflow)
	assert.Equal(t, w, same)

	full, err := w.GrantCoins(math.MaxInt - 10)
	require.NoError(t, err, "exactly reaching the maximum is allowed")
	assert.Equal(t, math.MaxInt, full.Coins)
	require.NoError(t, full.Validate())
}

func TestHeartBounds(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	w := newWallet(t, 0, 3)

	for step := 0; step < 500; step++ {
		if rng.Intn(2) == 0 {
			w = w.LoseHeart()
		} else {
			w = w.GainHeart()
		}
		require.GreaterOrEqual(t, w.Hearts, 0, "step %d", step)
		require.LessOrEqual(t, w.Hearts, w.MaxHearts, "step %d", step)
	}
}

func TestLoseHeartAtZero(t *testing.T) {
	t.Parallel()
	w := newWallet(t, 0, 1)

	w = w.LoseHeart()
	assert.True(t, w.OutOfHearts())
	w = w.LoseHeart()
	assert.Zero(t, w.Hearts)

	full := newWallet(t, 0, 5).GainHeart()
	assert.Equal(t, 5, full.Hearts)
}

func TestStreak(t *testing.T) {
	t.Parallel()
	w := newWallet(t, 0, 5).IncrementStreak().IncrementStreak()
	assert.Equal(t, 2, w.Streak)
	assert.Zero(t, w.ResetStreak().Streak)
}
