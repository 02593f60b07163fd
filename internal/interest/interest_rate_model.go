package interest

import (
	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year, 365 days
	SecondsPerYear uint64 = 365 * 24 * 60 * 60
	// Scale fixed point scale of rates
	Scale = uint256.NewInt(1e18)
	// MaxPricision max pricision of presented rates
	MaxPricision int32 = 16

	// annual rates scaled by 1e18
	rate10  = percent(10)
	rate15  = percent(15)
	rate25  = percent(25)
	rate75  = percent(75)
	rate100 = percent(100)
)

func percent(v uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(v), uint256.NewInt(1e16))
}

// TripleSlopeModel utilization based model with three linear segments
type TripleSlopeModel struct{}

// NewTripleSlope new triple slope rate model
func NewTripleSlope() core.RateModel {
	return TripleSlopeModel{}
}

// Utilization debt / (debt + idle) in basis points, 0 when both are zero
func Utilization(debt, idle *uint256.Int) (*uint256.Int, error) {
	total, err := number.Add(debt, idle)
	if err != nil {
		return nil, err
	}

	if total.IsZero() {
		return number.Zero(), nil
	}

	return number.MulDiv(debt, number.New(number.BpsBase), total)
}

// Rate per second interest rate scaled by 1e18
func (m TripleSlopeModel) Rate(debt, idle *uint256.Int) (*uint256.Int, error) {
	u, err := Utilization(debt, idle)
	if err != nil {
		return nil, err
	}

	annual, err := m.annual(u)
	if err != nil {
		return nil, err
	}

	return number.Div(annual, number.New(SecondsPerYear))
}

func (TripleSlopeModel) annual(u *uint256.Int) (*uint256.Int, error) {
	switch {
	case u.Lt(number.New(5000)):
		return rate10.Clone(), nil
	case u.Lt(number.New(9500)):
		// 10% -> 25% while u goes 5000 -> 9500
		step, err := number.MulDiv(new(uint256.Int).Sub(u, number.New(5000)), rate15, number.New(4500))
		if err != nil {
			return nil, err
		}

		return number.Add(rate10, step)
	case u.Lt(number.New(10000)):
		// the band offset is 7500, not 9500
		step, err := number.MulDiv(new(uint256.Int).Sub(u, number.New(7500)), rate75, number.New(2500))
		if err != nil {
			return nil, err
		}

		return number.Add(rate25, step)
	default:
		return rate100.Clone(), nil
	}
}

// AnnualRate per second rate presented as a yearly fraction
func AnnualRate(ratePerSecond *uint256.Int) decimal.Decimal {
	return number.ToDecimal(ratePerSecond).
		Mul(decimal.NewFromInt(int64(SecondsPerYear))).
		Div(number.ToDecimal(Scale)).
		Truncate(MaxPricision)
}

// UtilizationRate utilization presented as a fraction
func UtilizationRate(debt, idle *uint256.Int) decimal.Decimal {
	u, err := Utilization(debt, idle)
	if err != nil {
		return decimal.Zero
	}

	return number.ToDecimal(u).Shift(-4)
}

// SupplyRate yearly rate earned by depositors
// supply_rate = borrow_rate * utilization * (1 - reserve_factor)
func SupplyRate(borrowRate, utilization decimal.Decimal, reserveBps uint64) decimal.Decimal {
	toPool := decimal.NewFromInt(1).Sub(decimal.New(int64(reserveBps), -4))
	return borrowRate.Mul(utilization).Mul(toPool).Truncate(MaxPricision)
}
