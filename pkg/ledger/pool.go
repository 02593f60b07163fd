package ledger

import (
	"tokenbank/core"
	"tokenbank/internal/interest"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
)

// TotalToken value claimable by share holders
// total_token = min(balance, pool.total_value) + pool.total_debt - pool.total_reserve
//
// the held balance is capped at the tracked value so assets sent to the bank
// outside of the ledger do not move the share price
func TotalToken(pool *core.Pool, balance *uint256.Int) (*uint256.Int, error) {
	if err := core.Require(pool.IsOpen, core.ErrConfiguration, "pool/closed"); err != nil {
		return nil, err
	}

	total, err := number.Add(number.Min(balance, pool.TotalValue), pool.TotalDebt)
	if err != nil {
		return nil, err
	}

	return number.Sub(total, pool.TotalReserve)
}

// AccrueInterest accrue interest of the pool up to now and returns the
// accrued amount
//
// interest = rate_per_second * elapsed * pool.total_debt / 1e18, the reserve
// part stays inside total_debt and is tracked by total_reserve
func AccrueInterest(pool *core.Pool, now int64, balance *uint256.Int, oracle core.ConfigOracle) (*uint256.Int, error) {
	if now <= pool.LastInterestTime {
		return number.Zero(), nil
	}

	total, err := TotalToken(pool, balance)
	if err != nil {
		return nil, err
	}

	rate, err := oracle.InterestRate(pool.TotalDebt, total)
	if err != nil {
		return nil, core.External(err, "config/interest-rate")
	}

	elapsed := number.New(uint64(now - pool.LastInterestTime))
	ratePast, err := number.Mul(rate, elapsed)
	if err != nil {
		return nil, err
	}

	accrued, err := number.MulDiv(ratePast, pool.TotalDebt, interest.Scale)
	if err != nil {
		return nil, err
	}

	toReserve, err := number.Bps(accrued, oracle.ReserveBps())
	if err != nil {
		return nil, err
	}

	reserve, err := number.Add(pool.TotalReserve, toReserve)
	if err != nil {
		return nil, err
	}

	debt, err := number.Add(pool.TotalDebt, accrued)
	if err != nil {
		return nil, err
	}

	pool.TotalReserve = reserve
	pool.TotalDebt = debt
	pool.LastInterestTime = now
	return accrued, nil
}

// DepositShares shares minted for amount
// shares = amount * supply / total_before, 1:1 on an empty pool
func DepositShares(amount, supply, totalBefore *uint256.Int) (*uint256.Int, error) {
	if supply.IsZero() || totalBefore.IsZero() {
		return amount.Clone(), nil
	}

	return number.MulDiv(amount, supply, totalBefore)
}

// WithdrawAmount value redeemed by shares
// amount = shares * total_token / supply
func WithdrawAmount(shares, totalToken, supply *uint256.Int) (*uint256.Int, error) {
	return number.MulDiv(shares, totalToken, supply)
}
