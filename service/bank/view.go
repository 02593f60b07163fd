package bank

import (
	"context"
	"sort"

	"tokenbank/core"
	"tokenbank/pkg/ledger"

	"github.com/holiman/uint256"
)

// PositionInfo production, health, debt value and owner of the position
func (b *Bank) PositionInfo(ctx context.Context, positionID uint64) (info *core.PositionInfo, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		info, err = t.positionInfo(ctx, positionID)
		return err
	})

	return
}

func (t *txn) positionInfo(ctx context.Context, positionID uint64) (*core.PositionInfo, error) {
	position, ok := t.position(positionID)
	if err := core.Require(ok, core.ErrAccess, "bank/position-not-found"); err != nil {
		return nil, err
	}

	production, err := t.production(position.ProductionID)
	if err != nil {
		return nil, err
	}

	pool, err := t.pool(production.BorrowAssetID)
	if err != nil {
		return nil, err
	}

	module, err := t.strategy(ctx, production)
	if err != nil {
		return nil, err
	}

	health, err := t.health(ctx, module, position.ID, production.BorrowAssetID)
	if err != nil {
		return nil, err
	}

	debt, err := ledger.DebtShareToValue(pool, position.DebtShare)
	if err != nil {
		return nil, err
	}

	return &core.PositionInfo{
		ProductionID: production.ID,
		Health:       health,
		Debt:         debt,
		Owner:        position.Owner,
	}, nil
}

// IsLiquidatable health * liquidate_factor < debt * 10000
func (b *Bank) IsLiquidatable(ctx context.Context, positionID uint64) (liquidatable bool, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		info, err := t.positionInfo(ctx, positionID)
		if err != nil {
			return err
		}

		production, err := t.production(info.ProductionID)
		if err != nil {
			return err
		}

		healthy, err := collateralized(info.Health, production.LiquidateFactor, info.Debt)
		liquidatable = !healthy
		return err
	})

	return
}

func (b *Bank) TotalToken(ctx context.Context, assetID string) (total *uint256.Int, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		total, err = t.totalToken(ctx, pool)
		return err
	})

	return
}

func (b *Bank) DebtShareToValue(ctx context.Context, assetID string, share *uint256.Int) (value *uint256.Int, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		value, err = ledger.DebtShareToValue(pool, orZero(share))
		return err
	})

	return
}

func (b *Bank) DebtValueToShare(ctx context.Context, assetID string, value *uint256.Int) (share *uint256.Int, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		pool, err := t.pool(assetID)
		if err != nil {
			return err
		}

		share, err = ledger.DebtValueToShare(pool, orZero(value))
		return err
	})

	return
}

func (b *Bank) Pool(ctx context.Context, assetID string) (pool *core.Pool, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		p, err := t.pool(assetID)
		if err != nil {
			return err
		}

		pool = p.Clone()
		return nil
	})

	return
}

// Pools all pools sorted by asset id
func (b *Bank) Pools(ctx context.Context) (pools []*core.Pool, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		for assetID := range b.state.pools {
			p, err := t.pool(assetID)
			if err != nil {
				return err
			}

			pools = append(pools, p.Clone())
		}

		for assetID, p := range t.pools {
			if _, ok := b.state.pools[assetID]; !ok {
				pools = append(pools, p.Clone())
			}
		}

		return nil
	})

	sort.Slice(pools, func(i, j int) bool { return pools[i].AssetID < pools[j].AssetID })
	return
}

func (b *Bank) Production(ctx context.Context, productionID uint64) (production *core.Production, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		p, err := t.production(productionID)
		if err != nil {
			return err
		}

		production = p.Clone()
		return nil
	})

	return
}

func (b *Bank) Position(ctx context.Context, positionID uint64) (position *core.Position, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		p, ok := t.position(positionID)
		if err := core.Require(ok, core.ErrAccess, "bank/position-not-found"); err != nil {
			return err
		}

		position = p.Clone()
		return nil
	})

	return
}

// Positions positions with id greater than from, ordered by id
func (b *Bank) Positions(ctx context.Context, from uint64, limit int) (positions []*core.Position, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		for positionID := from + 1; positionID < t.counters.NextPositionID; positionID++ {
			if limit > 0 && len(positions) >= limit {
				break
			}

			if p, ok := t.position(positionID); ok {
				positions = append(positions, p.Clone())
			}
		}

		return nil
	})

	return
}

// Events committed events with seq greater than from
func (b *Bank) Events(ctx context.Context, from uint64, limit int) (events []*core.Event, err error) {
	err = b.view(ctx, func(ctx context.Context, t *txn) error {
		all := b.state.events
		idx := sort.Search(len(all), func(i int) bool { return all[i].Seq > from })
		for ; idx < len(all); idx++ {
			if limit > 0 && len(events) >= limit {
				break
			}

			events = append(events, all[idx])
		}

		return nil
	})

	return
}

func (b *Bank) Admin(ctx context.Context) (admin string) {
	_ = b.view(ctx, func(ctx context.Context, t *txn) error {
		admin = t.owner.Owner
		return nil
	})

	return
}
