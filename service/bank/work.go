package bank

import (
	"context"

	"tokenbank/core"
	"tokenbank/pkg/ledger"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
)

// Work opens a position (PositionID 0) or adjusts an owned one through its
// production's strategy module.
//
// The position's debt is fully removed first and re-issued from what the
// module leaves outstanding: whatever the bank's balance of the borrow asset
// gained during the call repays the debt, a surplus is refunded to the owner.
func (b *Bank) Work(ctx context.Context, call core.Call, input *core.WorkInput) (*core.WorkResult, error) {
	var result *core.WorkResult
	err := b.exec(ctx, core.ActionWork, call, true, func(ctx context.Context, t *txn) (err error) {
		result, err = t.work(ctx, call, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (t *txn) work(ctx context.Context, call core.Call, input *core.WorkInput) (*core.WorkResult, error) {
	if err := core.Require(call.IsEOA(), core.ErrAccess, "bank/not-eoa"); err != nil {
		return nil, err
	}

	borrow := orZero(input.Borrow)

	position, production, err := t.resolvePosition(call, input)
	if err != nil {
		return nil, err
	}

	if err := core.Require(production.IsOpen, core.ErrConfiguration, "bank/production-closed"); err != nil {
		return nil, err
	}

	if err := core.Require(borrow.IsZero() || production.CanBorrow, core.ErrConfiguration, "bank/borrow-disabled"); err != nil {
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

	removed, err := ledger.RemoveDebt(pool, position)
	if err != nil {
		return nil, err
	}

	debt, err := number.Add(removed, borrow)
	if err != nil {
		return nil, err
	}

	// everything the ledger owns is settled before control leaves the bank
	sendNative := call.Attached()
	balance, err := t.balance(ctx, assetID)
	if err != nil {
		return nil, err
	}

	var sent *uint256.Int
	if pool.IsNative() {
		if sendNative, err = number.Add(sendNative, borrow); err != nil {
			return nil, err
		}

		sent = sendNative
	} else {
		sent = borrow
	}

	if err := core.Require(!sent.Gt(balance), core.ErrInsufficientLiquidity, "bank/insufficient-balance"); err != nil {
		return nil, err
	}

	if err := core.Require(!debt.Gt(pool.TotalValue), core.ErrInsufficientLiquidity, "bank/debt-exceeds-value"); err != nil {
		return nil, err
	}

	before := new(uint256.Int).Sub(balance, sent)

	if !pool.IsNative() {
		if err := t.push(ctx, assetID, module.Address(), borrow); err != nil {
			return nil, err
		}
	}

	if err := t.push(ctx, core.NativeAssetID, module.Address(), sendNative); err != nil {
		return nil, err
	}

	t.touch(module)
	req := &core.WorkRequest{
		PositionID:    position.ID,
		Owner:         position.Owner,
		BorrowAssetID: assetID,
		Borrow:        borrow.Clone(),
		Debt:          debt.Clone(),
		Value:         sendNative.Clone(),
		Payload:       input.Payload,
	}
	if err := t.callout(func() error { return module.Work(ctx, req) }); err != nil {
		return nil, core.External(err, "strategy/work")
	}

	back, err := t.gained(ctx, assetID, before)
	if err != nil {
		return nil, err
	}

	result := &core.WorkResult{
		PositionID: position.ID,
		Debt:       number.Zero(),
		Refund:     number.Zero(),
	}

	switch {
	case back.Gt(debt):
		result.Refund = new(uint256.Int).Sub(back, debt)
		if err := t.push(ctx, assetID, position.Owner, result.Refund); err != nil {
			return nil, err
		}
	case debt.Gt(back):
		result.Debt = new(uint256.Int).Sub(debt, back)
		if err := core.Require(!result.Debt.Lt(production.MinDebt), core.ErrConfiguration, "bank/debt-below-min"); err != nil {
			return nil, err
		}

		health, err := t.health(ctx, module, position.ID, assetID)
		if err != nil {
			return nil, err
		}

		ok, err := collateralized(health, production.OpenFactor, result.Debt)
		if err != nil {
			return nil, err
		}

		if err := core.Require(ok, core.ErrUndercollateralized, "bank/bad-work-factor"); err != nil {
			return nil, err
		}

		if err := ledger.AddDebt(pool, position, result.Debt); err != nil {
			return nil, err
		}
	}

	t.emit(&core.Event{
		Action:     core.ActionWork,
		AssetID:    assetID,
		PositionID: position.ID,
		Actor:      call.Sender,
		Amount:     borrow.Clone(),
		Debt:       result.Debt,
		Refund:     result.Refund,
	})
	return result, nil
}

// resolvePosition allocates a new position bound to the requested
// production, or loads an owned one and ignores the requested production
func (t *txn) resolvePosition(call core.Call, input *core.WorkInput) (*core.Position, *core.Production, error) {
	if input.PositionID == 0 {
		production, err := t.production(input.ProductionID)
		if err != nil {
			return nil, nil, err
		}

		position := &core.Position{
			ID:           t.counters.NextPositionID,
			Owner:        call.Sender,
			ProductionID: production.ID,
			DebtShare:    number.Zero(),
		}

		t.counters.NextPositionID++
		production.Positions++
		t.positions[position.ID] = position
		return position, production, nil
	}

	position, ok := t.position(input.PositionID)
	if err := core.Require(ok, core.ErrAccess, "bank/position-not-found"); err != nil {
		return nil, nil, err
	}

	if err := core.Require(position.Owner == call.Sender, core.ErrAccess, "bank/not-owner"); err != nil {
		return nil, nil, err
	}

	production, err := t.production(position.ProductionID)
	if err != nil {
		return nil, nil, err
	}

	return position, production, nil
}
