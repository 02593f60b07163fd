package ledger

import (
	"testing"

	"tokenbank/core"
	"tokenbank/internal/interest"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedOracle struct {
	rate       *uint256.Int
	reserveBps uint64
}

func (o fixedOracle) InterestRate(_, _ *uint256.Int) (*uint256.Int, error) {
	return o.rate, nil
}

func (o fixedOracle) ReserveBps() uint64   { return o.reserveBps }
func (o fixedOracle) LiquidateBps() uint64 { return 0 }

func newPool(value, debt, share, reserve uint64) *core.Pool {
	return &core.Pool{
		AssetID:        "asset",
		IsOpen:         true,
		CanDeposit:     true,
		CanWithdraw:    true,
		TotalValue:     number.New(value),
		TotalDebt:      number.New(debt),
		TotalDebtShare: number.New(share),
		TotalReserve:   number.New(reserve),
	}
}

func TestTotalToken(t *testing.T) {
	pool := newPool(1000, 300, 300, 10)

	total, err := TotalToken(pool, number.New(800))
	require.NoError(t, err)
	assert.Equal(t, uint64(1090), total.Uint64())

	// donations above the tracked value are ignored
	total, err = TotalToken(pool, number.New(5000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1290), total.Uint64())

	pool.IsOpen = false
	_, err = TotalToken(pool, number.New(800))
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestAccrueInterest(t *testing.T) {
	pool := newPool(1000, 1000, 1000, 0)
	pool.LastInterestTime = 100
	// 1% per second
	oracle := fixedOracle{rate: number.New(1e16), reserveBps: 1000}

	accrued, err := AccrueInterest(pool, 110, number.New(1000), oracle)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), accrued.Uint64())
	assert.Equal(t, uint64(1100), pool.TotalDebt.Uint64())
	assert.Equal(t, uint64(10), pool.TotalReserve.Uint64())
	assert.Equal(t, uint64(1000), pool.TotalDebtShare.Uint64())
	assert.Equal(t, int64(110), pool.LastInterestTime)

	// same instant is a no-op
	accrued, err = AccrueInterest(pool, 110, number.New(1000), oracle)
	require.NoError(t, err)
	assert.True(t, accrued.IsZero())
	assert.Equal(t, uint64(1100), pool.TotalDebt.Uint64())
}

func TestAccrueInterestZeroUtilization(t *testing.T) {
	pool := newPool(1000, 0, 0, 0)
	oracle := fixedOracle{rate: number.New(1e16)}

	_, err := AccrueInterest(pool, int64(interest.SecondsPerYear), number.New(1000), oracle)
	require.NoError(t, err)
	assert.True(t, pool.TotalDebt.IsZero())
	assert.True(t, pool.TotalDebtShare.IsZero())
}

func TestDebtShareRoundTrip(t *testing.T) {
	pool := newPool(0, 999_917, 1_000_003, 0)

	for _, v := range []uint64{0, 1, 2, 7, 999, 123_456, 999_917, 987_654_321} {
		share, err := DebtValueToShare(pool, number.New(v))
		require.NoError(t, err)
		back, err := DebtShareToValue(pool, share)
		require.NoError(t, err)

		assert.False(t, back.Gt(number.New(v)), "value %d", v)
		assert.LessOrEqual(t, v-back.Uint64(), uint64(1), "value %d", v)
	}
}

func TestEmptyPoolIdentity(t *testing.T) {
	pool := newPool(0, 0, 0, 0)

	share, err := DebtValueToShare(pool, number.New(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), share.Uint64())

	value, err := DebtShareToValue(pool, number.New(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), value.Uint64())
}

func TestAddRemoveDebt(t *testing.T) {
	pool := newPool(1000, 0, 0, 0)
	a := &core.Position{ID: 1, DebtShare: number.Zero()}
	b := &core.Position{ID: 2, DebtShare: number.Zero()}

	require.NoError(t, AddDebt(pool, a, number.New(300)))
	assert.Equal(t, uint64(700), pool.TotalValue.Uint64())
	assert.Equal(t, uint64(300), a.DebtShare.Uint64())

	// interest grows debt without touching shares
	pool.TotalDebt = number.New(330)
	require.NoError(t, AddDebt(pool, b, number.New(110)))
	assert.Equal(t, uint64(100), b.DebtShare.Uint64())
	assert.Equal(t, uint64(440), pool.TotalDebt.Uint64())
	assert.Equal(t, uint64(590), pool.TotalValue.Uint64())

	err := AddDebt(pool, b, number.New(591))
	assert.ErrorIs(t, err, core.ErrInsufficientLiquidity)
	assert.Equal(t, uint64(100), b.DebtShare.Uint64())

	value, err := RemoveDebt(pool, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(330), value.Uint64())
	assert.True(t, a.DebtShare.IsZero())

	value, err = RemoveDebt(pool, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(110), value.Uint64())

	assert.True(t, pool.TotalDebt.IsZero())
	assert.True(t, pool.TotalDebtShare.IsZero())
	assert.Equal(t, uint64(1030), pool.TotalValue.Uint64())
}

func TestAddDebtBelowOneShare(t *testing.T) {
	// 3 debt per share after interest
	pool := newPool(1000, 300, 100, 0)
	position := &core.Position{ID: 1, DebtShare: number.Zero()}

	err := AddDebt(pool, position, number.New(2))
	assert.ErrorIs(t, err, core.ErrConfiguration)
	assert.True(t, position.DebtShare.IsZero())
	assert.Equal(t, uint64(300), pool.TotalDebt.Uint64())
	assert.Equal(t, uint64(1000), pool.TotalValue.Uint64())

	require.NoError(t, AddDebt(pool, position, number.New(3)))
	assert.Equal(t, uint64(1), position.DebtShare.Uint64())
	assert.Equal(t, uint64(303), pool.TotalDebt.Uint64())
}

func TestSharePricing(t *testing.T) {
	shares, err := DepositShares(number.New(1000), number.Zero(), number.New(500))
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), shares.Uint64())

	shares, err = DepositShares(number.New(1000), number.New(1000), number.New(1000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), shares.Uint64())

	shares, err = DepositShares(number.New(10), number.New(3), number.New(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), shares.Uint64())

	amount, err := WithdrawAmount(number.New(4), number.New(17), number.New(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(9), amount.Uint64())

	_, err = WithdrawAmount(number.New(1), number.New(1), number.Zero())
	assert.ErrorIs(t, err, core.ErrArithmetic)
}
