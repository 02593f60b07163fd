package core

import (
	"context"

	"github.com/holiman/uint256"
)

// WorkRequest arguments of StrategyModule.Work
type WorkRequest struct {
	PositionID    uint64
	Owner         string
	BorrowAssetID string
	Borrow        *uint256.Int
	Debt          *uint256.Int
	// native currency forwarded together with the call
	Value   *uint256.Int
	Payload []byte
}

// StrategyModule external module running the leveraged operation,
// it is untrusted and may call back into the bank
type StrategyModule interface {
	// Address holder of the funds sent to the module
	Address() string
	Work(ctx context.Context, req *WorkRequest) error
	// Health liquidation value of the position in the borrow asset
	Health(ctx context.Context, positionID uint64, borrowAssetID string) (*uint256.Int, error)
	Liquidate(ctx context.Context, positionID uint64, owner, borrowAssetID string) error
}

// StrategyResolver resolves modules bound to productions
type StrategyResolver interface {
	Strategy(ctx context.Context, id string) (StrategyModule, error)
}
