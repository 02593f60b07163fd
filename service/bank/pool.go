package bank

import (
	"context"

	"tokenbank/core"
	"tokenbank/pkg/ledger"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
)

// Deposit supplies amount of assetID and mints pool shares to the caller.
// Deposits of the native currency take the value attached to the call and
// ignore amount.
func (b *Bank) Deposit(ctx context.Context, call core.Call, assetID string, amount *uint256.Int) error {
	amount = orZero(amount)
	return b.exec(ctx, core.ActionDeposit, call, assetID == core.NativeAssetID, func(ctx context.Context, t *txn) error {
		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		if err := core.Require(pool.IsOpen && pool.CanDeposit, core.ErrConfiguration, "bank/deposit-disabled"); err != nil {
			return err
		}

		if err := t.accrue(ctx, pool); err != nil {
			return err
		}

		if pool.IsNative() {
			amount = call.Attached()
		} else if err := t.pull(ctx, assetID, call.Sender, amount); err != nil {
			return err
		}

		if pool.TotalValue, err = number.Add(pool.TotalValue, amount); err != nil {
			return err
		}

		// measured after the value already includes the deposit since
		// total token is capped by the held balance
		total, err := t.totalToken(ctx, pool)
		if err != nil {
			return err
		}

		if total, err = number.Sub(total, amount); err != nil {
			return err
		}

		token, err := t.shareToken(ctx, pool)
		if err != nil {
			return err
		}

		supply, err := token.TotalSupply(ctx)
		if err != nil {
			return core.External(err, "share-token/supply")
		}

		shares, err := ledger.DepositShares(amount, supply, total)
		if err != nil {
			return err
		}

		if err := token.Mint(ctx, call.Sender, shares); err != nil {
			return core.External(err, "share-token/mint")
		}

		t.emit(&core.Event{
			Action:  core.ActionDeposit,
			AssetID: assetID,
			Actor:   call.Sender,
			Amount:  amount.Clone(),
			Shares:  shares,
		})
		return nil
	})
}

// Withdraw burns shares of the caller and pays out their value
func (b *Bank) Withdraw(ctx context.Context, call core.Call, assetID string, shares *uint256.Int) error {
	shares = orZero(shares)
	return b.exec(ctx, core.ActionWithdraw, call, false, func(ctx context.Context, t *txn) error {
		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		if err := core.Require(pool.IsOpen && pool.CanWithdraw, core.ErrConfiguration, "bank/withdraw-disabled"); err != nil {
			return err
		}

		if err := t.accrue(ctx, pool); err != nil {
			return err
		}

		total, err := t.totalToken(ctx, pool)
		if err != nil {
			return err
		}

		token, err := t.shareToken(ctx, pool)
		if err != nil {
			return err
		}

		supply, err := token.TotalSupply(ctx)
		if err != nil {
			return core.External(err, "share-token/supply")
		}

		amount, err := ledger.WithdrawAmount(shares, total, supply)
		if err != nil {
			return err
		}

		if err := core.Require(!amount.Gt(pool.TotalValue), core.ErrInsufficientLiquidity, "bank/withdraw-exceeds-value"); err != nil {
			return err
		}

		pool.TotalValue = new(uint256.Int).Sub(pool.TotalValue, amount)

		if err := token.Burn(ctx, call.Sender, shares); err != nil {
			return core.External(err, "share-token/burn")
		}

		if err := t.push(ctx, assetID, call.Sender, amount); err != nil {
			return err
		}

		t.emit(&core.Event{
			Action:  core.ActionWithdraw,
			AssetID: assetID,
			Actor:   call.Sender,
			Amount:  amount,
			Shares:  shares.Clone(),
		})
		return nil
	})
}

// WithdrawReserve pays amount of the pool's reserve to to. When the bank
// holds more than amount on top of the tracked value the payout is taken
// from that surplus and the ledger is left untouched.
func (b *Bank) WithdrawReserve(ctx context.Context, call core.Call, assetID, to string, amount *uint256.Int) error {
	amount = orZero(amount)
	return b.exec(ctx, core.ActionWithdrawReserve, call, false, func(ctx context.Context, t *txn) error {
		if err := t.requireAdmin(call); err != nil {
			return err
		}

		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		balance, err := t.balance(ctx, assetID)
		if err != nil {
			return err
		}

		need, err := number.Add(pool.TotalValue, amount)
		if err != nil {
			return err
		}

		if !balance.Gt(need) {
			if err := core.Require(!amount.Gt(pool.TotalReserve), core.ErrInsufficientLiquidity, "bank/reserve-exceeded"); err != nil {
				return err
			}

			if err := core.Require(!amount.Gt(pool.TotalValue), core.ErrInsufficientLiquidity, "bank/reserve-exceeds-value"); err != nil {
				return err
			}

			pool.TotalReserve = new(uint256.Int).Sub(pool.TotalReserve, amount)
			pool.TotalValue = new(uint256.Int).Sub(pool.TotalValue, amount)
		}

		if err := t.push(ctx, assetID, to, amount); err != nil {
			return err
		}

		t.emit(&core.Event{
			Action:  core.ActionWithdrawReserve,
			AssetID: assetID,
			Actor:   call.Sender,
			Target:  to,
			Amount:  amount.Clone(),
		})
		return nil
	})
}

// Accrue brings the pool's interest up to date. It is not guarded, called
// from inside an operation it accrues within that operation.
func (b *Bank) Accrue(ctx context.Context, assetID string) error {
	if t := b.current(ctx); t != nil {
		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		return t.accrue(ctx, pool)
	}

	return b.exec(ctx, core.ActionAccrue, core.Call{}, false, func(ctx context.Context, t *txn) error {
		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		return t.accrue(ctx, pool)
	})
}
