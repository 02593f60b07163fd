package bank

import (
	"context"
	"errors"
	"testing"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPosition(t *testing.T, recovered uint64) (*fixture, *scripted) {
	f := newFixture(t)
	f.deposit("lp", 1000)

	module := &scripted{address: "farm", health: number.New(700)}
	module.onLiquidate = func(ctx context.Context, positionID uint64) error {
		return f.assets.Transfer(ctx, usd, "farm", bankAddr, number.New(recovered))
	}

	productionID := f.production(module, 8000, 9000)
	_, err := f.bank.Work(f.ctx, core.NewCall("bob"), &core.WorkInput{ProductionID: productionID, Borrow: number.New(500)})
	require.NoError(t, err)

	f.mint("farm", usd, 100)
	return f, module
}

func TestLiquidateHealthyPosition(t *testing.T) {
	f, _ := openPosition(t, 600)

	// 700 * 9000 >= 500 * 10000
	_, err := f.bank.Liquidate(f.ctx, core.NewCall("keeper"), 1)
	assert.True(t, errors.Is(err, core.ErrUndercollateralized))

	pool := f.pool(usd)
	assert.EqualValues(t, 500, pool.TotalDebt.Uint64())
	assert.EqualValues(t, 500, pool.TotalValue.Uint64())

	_, err = f.bank.Liquidate(f.ctx, core.NewCall("keeper"), 9)
	assert.True(t, errors.Is(err, core.ErrUndercollateralized))
}

func TestLiquidateSurplus(t *testing.T) {
	f, module := openPosition(t, 600)
	module.health = number.New(500)

	liquidatable, err := f.bank.IsLiquidatable(f.ctx, 1)
	require.NoError(t, err)
	assert.True(t, liquidatable)

	_, err = f.bank.Liquidate(f.ctx, core.Call{Sender: "contract", Origin: "keeper"}, 1)
	assert.True(t, errors.Is(err, core.ErrAccess))

	result, err := f.bank.Liquidate(f.ctx, core.NewCall("keeper"), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 30, result.Prize.Uint64())
	assert.EqualValues(t, 70, result.Payout.Uint64())

	assert.EqualValues(t, 30, f.balance("keeper", usd))
	assert.EqualValues(t, 70, f.balance("bob", usd))
	assert.EqualValues(t, 1000, f.balance(bankAddr, usd))

	pool := f.pool(usd)
	assert.EqualValues(t, 1000, pool.TotalValue.Uint64())
	assert.True(t, pool.TotalDebt.IsZero())
	assert.True(t, pool.TotalDebtShare.IsZero())

	liquidatable, err = f.bank.IsLiquidatable(f.ctx, 1)
	require.NoError(t, err)
	assert.False(t, liquidatable)

	_, err = f.bank.Liquidate(f.ctx, core.NewCall("keeper"), 1)
	assert.True(t, errors.Is(err, core.ErrUndercollateralized))

	events, err := f.bank.Events(f.ctx, 0, 0)
	require.NoError(t, err)
	last := events[len(events)-1]
	assert.Equal(t, core.ActionLiquidate, last.Action)
	assert.Equal(t, "bob", last.Target)
	assert.EqualValues(t, 600, last.Amount.Uint64())
}

func TestLiquidateShortfall(t *testing.T) {
	f, module := openPosition(t, 400)
	module.health = number.New(500)

	result, err := f.bank.Liquidate(f.ctx, core.NewCall("keeper"), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 20, result.Prize.Uint64())
	assert.True(t, result.Payout.IsZero())

	// the pool absorbs the 120 it could not recover
	pool := f.pool(usd)
	assert.EqualValues(t, 880, pool.TotalValue.Uint64())
	assert.True(t, pool.TotalDebt.IsZero())
	assert.EqualValues(t, 880, f.balance(bankAddr, usd))
	assert.EqualValues(t, 0, f.balance("bob", usd))

	total, err := f.bank.TotalToken(f.ctx, usd)
	require.NoError(t, err)
	assert.EqualValues(t, 880, total.Uint64())
}

func TestLiquidateStrategyFailure(t *testing.T) {
	f, module := openPosition(t, 600)
	module.health = number.New(500)
	module.onLiquidate = func(ctx context.Context, positionID uint64) error {
		if err := f.assets.Transfer(ctx, usd, "farm", bankAddr, number.New(600)); err != nil {
			return err
		}

		return errors.New("swap failed")
	}

	_, err := f.bank.Liquidate(f.ctx, core.NewCall("keeper"), 1)
	assert.True(t, errors.Is(err, core.ErrExternalCall))

	assert.EqualValues(t, 600, f.balance("farm", usd))
	assert.EqualValues(t, 500, f.balance(bankAddr, usd))

	position, err := f.bank.Position(f.ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 500, position.DebtShare.Uint64())
}
