package bankconfig

import (
	"fmt"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
)

// SimpleConfig fixed risk parameters on top of a rate model
type SimpleConfig struct {
	model        core.RateModel
	reserveBps   uint64
	liquidateBps uint64
}

// New new simple config oracle
func New(model core.RateModel, reserveBps, liquidateBps uint64) (*SimpleConfig, error) {
	if model == nil {
		return nil, fmt.Errorf("rate model not set")
	}

	if reserveBps > number.BpsBase || liquidateBps > number.BpsBase {
		return nil, fmt.Errorf("bps out of range: reserve %d, liquidate %d", reserveBps, liquidateBps)
	}

	return &SimpleConfig{
		model:        model,
		reserveBps:   reserveBps,
		liquidateBps: liquidateBps,
	}, nil
}

var _ core.ConfigOracle = (*SimpleConfig)(nil)

func (c *SimpleConfig) InterestRate(debt, idle *uint256.Int) (*uint256.Int, error) {
	return c.model.Rate(debt, idle)
}

func (c *SimpleConfig) ReserveBps() uint64 {
	return c.reserveBps
}

func (c *SimpleConfig) LiquidateBps() uint64 {
	return c.liquidateBps
}
