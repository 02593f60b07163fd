package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
)

// Position leveraged stake against one production
type Position struct {
	ID           uint64       `json:"id"`
	Owner        string       `json:"owner"`
	ProductionID uint64       `json:"production_id"`
	DebtShare    *uint256.Int `json:"debt_share"`
}

// Clone deep copy
func (p *Position) Clone() *Position {
	c := *p
	c.DebtShare = cloneInt(p.DebtShare)
	return &c
}

// PositionInfo result of reading a position
type PositionInfo struct {
	ProductionID uint64       `json:"production_id"`
	Health       *uint256.Int `json:"health"`
	Debt         *uint256.Int `json:"debt"`
	Owner        string       `json:"owner"`
}

// PositionStore read side of the position mirror
type PositionStore interface {
	Save(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, id uint64) (*Position, error)
	ListByOwner(ctx context.Context, owner string) ([]*Position, error)
	List(ctx context.Context, from uint64, limit int) ([]*Position, error)
}
