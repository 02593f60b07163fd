package bank

import (
	"context"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/fox-one/pkg/logger"
)

// CreateToken opens a pool for assetID and deploys its share token
func (b *Bank) CreateToken(ctx context.Context, call core.Call, assetID, symbol string) error {
	return b.exec(ctx, core.ActionCreateToken, call, false, func(ctx context.Context, t *txn) error {
		if err := t.requireAdmin(call); err != nil {
			return err
		}

		if err := core.Require(assetID != "", core.ErrConfiguration, "bank/empty-asset"); err != nil {
			return err
		}

		if err := core.Require(!t.hasPool(assetID), core.ErrConfiguration, "bank/pool-exists"); err != nil {
			return err
		}

		t.touch(b.tokens)
		tokenID, _, err := b.tokens.Create(ctx, assetID, symbol)
		if err != nil {
			return core.External(err, "share-token/create")
		}

		t.pools[assetID] = &core.Pool{
			AssetID:          assetID,
			ShareTokenID:     tokenID,
			Symbol:           symbol,
			IsOpen:           true,
			CanDeposit:       true,
			CanWithdraw:      true,
			TotalValue:       number.Zero(),
			TotalDebt:        number.Zero(),
			TotalDebtShare:   number.Zero(),
			TotalReserve:     number.Zero(),
			LastInterestTime: t.now,
		}

		t.emit(&core.Event{
			Action:  core.ActionCreateToken,
			AssetID: assetID,
			Actor:   call.Sender,
			Target:  tokenID,
		})
		return nil
	})
}

// UpdateToken toggles deposits and withdrawals of the pool
func (b *Bank) UpdateToken(ctx context.Context, call core.Call, assetID string, canDeposit, canWithdraw bool) error {
	return b.exec(ctx, core.ActionUpdateToken, call, false, func(ctx context.Context, t *txn) error {
		if err := t.requireAdmin(call); err != nil {
			return err
		}

		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		pool.CanDeposit = canDeposit
		pool.CanWithdraw = canWithdraw

		t.emit(&core.Event{
			Action:  core.ActionUpdateToken,
			AssetID: assetID,
			Actor:   call.Sender,
		})
		return nil
	})
}

// SetProduction creates a production when production.ID is zero, otherwise
// updates it. Bound assets and strategy module can not change once a
// position was opened against the production.
func (b *Bank) SetProduction(ctx context.Context, call core.Call, production *core.Production) (uint64, error) {
	var productionID uint64
	err := b.exec(ctx, core.ActionSetProduction, call, false, func(ctx context.Context, t *txn) error {
		if err := t.requireAdmin(call); err != nil {
			return err
		}

		if err := core.Require(production != nil, core.ErrConfiguration, "bank/production-unset"); err != nil {
			return err
		}

		p := production.Clone()
		if err := validateProduction(p); err != nil {
			return err
		}

		if p.ID == 0 {
			p.ID = t.counters.NextProductionID
			p.Positions = 0
			t.counters.NextProductionID++
		} else {
			current, err := t.production(p.ID)
			if err != nil {
				return err
			}

			if current.Positions > 0 {
				if err := core.Require(sameBound(current, p), core.ErrConfiguration, "bank/production-bound"); err != nil {
					return err
				}
			}

			p.Positions = current.Positions
		}

		if p.OpenFactor < p.LiquidateFactor {
			logger.FromContext(ctx).Warnf("production %d opens at %d bps below its liquidation floor %d bps", p.ID, p.OpenFactor, p.LiquidateFactor)
		}

		t.productions[p.ID] = p
		productionID = p.ID

		t.emit(&core.Event{
			Action:  core.ActionSetProduction,
			AssetID: p.BorrowAssetID,
			Actor:   call.Sender,
			Target:  p.StrategyID,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	return productionID, nil
}

func validateProduction(p *core.Production) error {
	if err := core.Require(p.BorrowAssetID != "" && (p.BorrowAssetID == p.CoinAssetID || p.BorrowAssetID == p.CurrencyAssetID), core.ErrConfiguration, "bank/borrow-not-in-pair"); err != nil {
		return err
	}

	if err := core.Require(p.StrategyID != "", core.ErrConfiguration, "strategy/unset"); err != nil {
		return err
	}

	return core.Require(p.OpenFactor <= number.BpsBase && p.LiquidateFactor <= number.BpsBase, core.ErrConfiguration, "bank/factor-out-of-range")
}

func sameBound(a, b *core.Production) bool {
	x, y := a.Bound(), b.Bound()
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}

	return true
}

// SetConfig replaces the rate model and risk parameters
func (b *Bank) SetConfig(ctx context.Context, call core.Call, oracle core.ConfigOracle) error {
	return b.exec(ctx, core.ActionSetConfig, call, false, func(ctx context.Context, t *txn) error {
		if err := t.requireAdmin(call); err != nil {
			return err
		}

		if err := core.Require(oracle != nil, core.ErrConfiguration, "bank/config-unset"); err != nil {
			return err
		}

		t.oracle = oracle
		t.emit(&core.Event{
			Action: core.ActionSetConfig,
			Actor:  call.Sender,
		})
		return nil
	})
}

// TransferAdmin hands the administration to next
func (b *Bank) TransferAdmin(ctx context.Context, call core.Call, next string) error {
	return b.exec(ctx, core.ActionTransferAdmin, call, false, func(ctx context.Context, t *txn) error {
		if err := t.owner.Transfer(call.Sender, next); err != nil {
			return err
		}

		t.emit(&core.Event{
			Action: core.ActionTransferAdmin,
			Actor:  call.Sender,
			Target: next,
		})
		return nil
	})
}
