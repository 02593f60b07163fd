package views

import (
	"testing"

	"tokenbank/core"
	"tokenbank/internal/interest"
	"tokenbank/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestPoolView(t *testing.T) {
	pool := &core.Pool{
		AssetID:        "usd",
		IsOpen:         true,
		TotalValue:     number.New(1000),
		TotalDebt:      number.New(500),
		TotalDebtShare: number.New(400),
		TotalReserve:   number.Zero(),
	}

	view := PoolView(pool, interest.NewTripleSlope(), 1000)
	assert.Equal(t, "1500", view.TotalToken.String())
	assert.Equal(t, "0.25", view.Utilization.String())
	assert.Equal(t, "0.1", view.BorrowAPY.Round(4).String())
	assert.Equal(t, "0.0225", view.SupplyAPY.Round(4).String())
}

func TestPositionView(t *testing.T) {
	pool := &core.Pool{
		TotalDebt:      number.New(550),
		TotalDebtShare: number.New(500),
	}

	position := &core.Position{ID: 1, Owner: "bob", DebtShare: number.New(100)}
	assert.Equal(t, "110", PositionView(position, pool).Debt.String())
	assert.Equal(t, "100", PositionView(position, nil).Debt.String())
}
