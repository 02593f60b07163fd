package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
)

// Production a borrowable pair bound to one strategy module
type Production struct {
	ID              uint64       `json:"id"`
	IsOpen          bool         `json:"is_open"`
	CanBorrow       bool         `json:"can_borrow"`
	CoinAssetID     string       `json:"coin_asset_id"`
	CurrencyAssetID string       `json:"currency_asset_id"`
	BorrowAssetID   string       `json:"borrow_asset_id"`
	StrategyID      string       `json:"strategy_id"`
	MinDebt         *uint256.Int `json:"min_debt"`
	// basis points
	OpenFactor      uint64 `json:"open_factor"`
	LiquidateFactor uint64 `json:"liquidate_factor"`
	// count of positions ever opened against the production
	Positions uint64 `json:"positions"`
}

// Clone deep copy
func (p *Production) Clone() *Production {
	c := *p
	c.MinDebt = cloneInt(p.MinDebt)
	return &c
}

// Bound assets and strategy module of the production
func (p *Production) Bound() []string {
	return []string{p.CoinAssetID, p.CurrencyAssetID, p.BorrowAssetID, p.StrategyID}
}

// ProductionStore read side of the production mirror
type ProductionStore interface {
	Save(ctx context.Context, tx *db.DB, production *Production) error
	Find(ctx context.Context, id uint64) (*Production, error)
	List(ctx context.Context) ([]*Production, error)
}
