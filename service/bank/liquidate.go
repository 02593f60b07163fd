package bank

import (
	"context"

	"tokenbank/core"
	"tokenbank/pkg/ledger"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
)

// Liquidate closes an undercollateralized position. The caller earns the
// configured share of the proceeds, the owner gets what is left after the
// debt is repaid and a shortfall is absorbed by the pool.
func (b *Bank) Liquidate(ctx context.Context, call core.Call, positionID uint64) (*core.LiquidateResult, error) {
	var result *core.LiquidateResult
	err := b.exec(ctx, core.ActionLiquidate, call, true, func(ctx context.Context, t *txn) (err error) {
		result, err = t.liquidate(ctx, call, positionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (t *txn) liquidate(ctx context.Context, call core.Call, positionID uint64) (*core.LiquidateResult, error) {
	if err := core.Require(call.IsEOA(), core.ErrAccess, "bank/not-eoa"); err != nil {
		return nil, err
	}

	if err := core.Require(t.oracle != nil, core.ErrConfiguration, "bank/config-unset"); err != nil {
		return nil, err
	}

	position, ok := t.position(positionID)
	if err := core.Require(ok && !position.DebtShare.IsZero(), core.ErrUndercollateralized, "bank/no-debt"); err != nil {
		return nil, err
	}

	production, err := t.production(position.ProductionID)
	if err != nil {
		return nil, err
	}

	assetID := production.BorrowAssetID
	pool, err := t.pool(assetID)
	if err != nil {
		return nil, err
	}

	module, err := t.strategy(ctx, production)
	if err != nil {
		return nil, err
	}

	if err := t.accrue(ctx, pool); err != nil {
		return nil, err
	}

	debt, err := ledger.RemoveDebt(pool, position)
	if err != nil {
		return nil, err
	}

	health, err := t.health(ctx, module, position.ID, assetID)
	if err != nil {
		return nil, err
	}

	healthy, err := collateralized(health, production.LiquidateFactor, debt)
	if err != nil {
		return nil, err
	}

	if err := core.Require(!healthy, core.ErrUndercollateralized, "bank/cannot-liquidate"); err != nil {
		return nil, err
	}

	before, err := t.balance(ctx, assetID)
	if err != nil {
		return nil, err
	}

	t.touch(module)
	if err := t.callout(func() error {
		return module.Liquidate(ctx, position.ID, position.Owner, assetID)
	}); err != nil {
		return nil, core.External(err, "strategy/liquidate")
	}

	back, err := t.gained(ctx, assetID, before)
	if err != nil {
		return nil, err
	}

	prize, err := number.Bps(back, t.oracle.LiquidateBps())
	if err != nil {
		return nil, err
	}

	if err := t.push(ctx, assetID, call.Sender, prize); err != nil {
		return nil, err
	}

	result := &core.LiquidateResult{
		Prize:  prize,
		Payout: number.Zero(),
	}

	rest := new(uint256.Int).Sub(back, prize)
	if rest.Gt(debt) {
		// the debt was credited back to the pool when it was removed
		result.Payout = new(uint256.Int).Sub(rest, debt)
		if err := t.push(ctx, assetID, position.Owner, result.Payout); err != nil {
			return nil, err
		}
	} else {
		if pool.TotalValue, err = number.Sub(pool.TotalValue, new(uint256.Int).Sub(debt, rest)); err != nil {
			return nil, err
		}
	}

	t.emit(&core.Event{
		Action:     core.ActionLiquidate,
		AssetID:    assetID,
		PositionID: position.ID,
		Actor:      call.Sender,
		Target:     position.Owner,
		Amount:     back,
		Debt:       debt,
		Prize:      prize.Clone(),
		Payout:     result.Payout.Clone(),
	})
	return result, nil
}
