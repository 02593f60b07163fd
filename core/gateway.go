package core

import (
	"context"

	"github.com/holiman/uint256"
)

// AssetTransferGateway moves assets between the bank and a party
type AssetTransferGateway interface {
	// Pull moves amount from the party into the bank
	Pull(ctx context.Context, assetID, from string, amount *uint256.Int) error
	// Push moves amount from the bank to the party
	Push(ctx context.Context, assetID, to string, amount *uint256.Int) error
	BalanceOf(ctx context.Context, assetID, holder string) (*uint256.Int, error)
}

// ShareToken claim on a pool, the bank is the only minter
type ShareToken interface {
	Mint(ctx context.Context, to string, amount *uint256.Int) error
	Burn(ctx context.Context, from string, amount *uint256.Int) error
	TotalSupply(ctx context.Context) (*uint256.Int, error)
}

// ShareTokenFactory deploys and resolves share tokens
type ShareTokenFactory interface {
	Create(ctx context.Context, assetID, symbol string) (string, ShareToken, error)
	Token(ctx context.Context, id string) (ShareToken, error)
}
