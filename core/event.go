package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
)

// event actions
const (
	ActionDeposit         = "deposit"
	ActionWithdraw        = "withdraw"
	ActionWithdrawReserve = "withdraw_reserve"
	ActionWork            = "work"
	ActionLiquidate       = "liquidate"
	ActionAccrue          = "accrue"
	ActionCreateToken     = "create_token"
	ActionUpdateToken     = "update_token"
	ActionSetProduction   = "set_production"
	ActionSetConfig       = "set_config"
	ActionTransferAdmin   = "transfer_admin"
)

// Event record of a committed operation
type Event struct {
	Seq        uint64       `json:"seq"`
	TraceID    string       `json:"trace_id"`
	Action     string       `json:"action"`
	AssetID    string       `json:"asset_id,omitempty"`
	PositionID uint64       `json:"position_id,omitempty"`
	Actor      string       `json:"actor"`
	Target     string       `json:"target,omitempty"`
	Amount     *uint256.Int `json:"amount,omitempty"`
	Shares     *uint256.Int `json:"shares,omitempty"`
	Debt       *uint256.Int `json:"debt,omitempty"`
	Refund     *uint256.Int `json:"refund,omitempty"`
	Prize      *uint256.Int `json:"prize,omitempty"`
	Payout     *uint256.Int `json:"payout,omitempty"`
	CreatedAt  int64        `json:"created_at"`
}

// EventStore event log mirror
type EventStore interface {
	Create(ctx context.Context, tx *db.DB, event *Event) error
	List(ctx context.Context, from uint64, limit int) ([]*Event, error)
}
