package core

import "github.com/holiman/uint256"

// RateModel maps outstanding debt and idle liquidity to a per second rate
// scaled by 1e18
type RateModel interface {
	Rate(debt, idle *uint256.Int) (*uint256.Int, error)
}

// ConfigOracle risk parameters of the bank
type ConfigOracle interface {
	InterestRate(debt, idle *uint256.Int) (*uint256.Int, error)
	ReserveBps() uint64
	LiquidateBps() uint64
}
