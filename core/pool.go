package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
)

// NativeAssetID asset id of the native currency
const NativeAssetID = "native"

// Pool per asset liquidity ledger
type Pool struct {
	AssetID      string `json:"asset_id"`
	ShareTokenID string `json:"share_token_id"`
	Symbol       string `json:"symbol"`
	IsOpen       bool   `json:"is_open"`
	CanDeposit   bool   `json:"can_deposit"`
	CanWithdraw  bool   `json:"can_withdraw"`
	// idle value tracked by the ledger, lent out principal is moved to TotalDebt
	TotalValue     *uint256.Int `json:"total_value"`
	TotalDebt      *uint256.Int `json:"total_debt"`
	TotalDebtShare *uint256.Int `json:"total_debt_share"`
	// part of accrued interest kept for the protocol
	TotalReserve     *uint256.Int `json:"total_reserve"`
	LastInterestTime int64        `json:"last_interest_time"`
}

// IsNative pool of the native currency
func (p *Pool) IsNative() bool {
	return p.AssetID == NativeAssetID
}

// Clone deep copy
func (p *Pool) Clone() *Pool {
	c := *p
	c.TotalValue = cloneInt(p.TotalValue)
	c.TotalDebt = cloneInt(p.TotalDebt)
	c.TotalDebtShare = cloneInt(p.TotalDebtShare)
	c.TotalReserve = cloneInt(p.TotalReserve)
	return &c
}

// PoolStore read side of the pool mirror
type PoolStore interface {
	Save(ctx context.Context, tx *db.DB, pool *Pool) error
	Find(ctx context.Context, assetID string) (*Pool, error)
	List(ctx context.Context) ([]*Pool, error)
}

func cloneInt(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}

	return v.Clone()
}
