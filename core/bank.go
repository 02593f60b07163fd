package core

import (
	"context"

	"github.com/holiman/uint256"
)

// WorkInput arguments of opening or adjusting a position, ProductionID is
// only used when PositionID is zero
type WorkInput struct {
	PositionID   uint64
	ProductionID uint64
	Borrow       *uint256.Int
	Payload      []byte
}

// WorkResult settlement of a work call
type WorkResult struct {
	PositionID uint64       `json:"position_id"`
	Debt       *uint256.Int `json:"debt"`
	Refund     *uint256.Int `json:"refund"`
}

// LiquidateResult settlement of a liquidation
type LiquidateResult struct {
	Prize  *uint256.Int `json:"prize"`
	Payout *uint256.Int `json:"payout"`
}

// BankService lending pool operations, every mutating call is atomic and
// serialized
type BankService interface {
	Deposit(ctx context.Context, call Call, assetID string, amount *uint256.Int) error
	Withdraw(ctx context.Context, call Call, assetID string, shares *uint256.Int) error
	Work(ctx context.Context, call Call, input *WorkInput) (*WorkResult, error)
	Liquidate(ctx context.Context, call Call, positionID uint64) (*LiquidateResult, error)
	Accrue(ctx context.Context, assetID string) error

	CreateToken(ctx context.Context, call Call, assetID, symbol string) error
	UpdateToken(ctx context.Context, call Call, assetID string, canDeposit, canWithdraw bool) error
	SetProduction(ctx context.Context, call Call, production *Production) (uint64, error)
	SetConfig(ctx context.Context, call Call, oracle ConfigOracle) error
	WithdrawReserve(ctx context.Context, call Call, assetID, to string, amount *uint256.Int) error
	TransferAdmin(ctx context.Context, call Call, next string) error

	PositionInfo(ctx context.Context, positionID uint64) (*PositionInfo, error)
	IsLiquidatable(ctx context.Context, positionID uint64) (bool, error)
	TotalToken(ctx context.Context, assetID string) (*uint256.Int, error)
	DebtShareToValue(ctx context.Context, assetID string, share *uint256.Int) (*uint256.Int, error)
	DebtValueToShare(ctx context.Context, assetID string, value *uint256.Int) (*uint256.Int, error)

	Pool(ctx context.Context, assetID string) (*Pool, error)
	Pools(ctx context.Context) ([]*Pool, error)
	Production(ctx context.Context, id uint64) (*Production, error)
	Position(ctx context.Context, id uint64) (*Position, error)
	Positions(ctx context.Context, from uint64, limit int) ([]*Position, error)
	Events(ctx context.Context, from uint64, limit int) ([]*Event, error)
	Admin(ctx context.Context) string
}
