package ledger

import (
	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
)

// DebtShareToValue share * total_debt / total_debt_share, identity on an
// empty pool
func DebtShareToValue(pool *core.Pool, share *uint256.Int) (*uint256.Int, error) {
	if pool.TotalDebtShare.IsZero() {
		return share.Clone(), nil
	}

	return number.MulDiv(share, pool.TotalDebt, pool.TotalDebtShare)
}

// DebtValueToShare value * total_debt_share / total_debt, identity on an
// empty pool
func DebtValueToShare(pool *core.Pool, value *uint256.Int) (*uint256.Int, error) {
	if pool.TotalDebt.IsZero() {
		return value.Clone(), nil
	}

	return number.MulDiv(value, pool.TotalDebtShare, pool.TotalDebt)
}

// RemoveDebt clears the debt of the position and credits its value back to
// the pool's idle value
func RemoveDebt(pool *core.Pool, position *core.Position) (*uint256.Int, error) {
	share := position.DebtShare
	if share.IsZero() {
		return number.Zero(), nil
	}

	value, err := DebtShareToValue(pool, share)
	if err != nil {
		return nil, err
	}

	totalShare, err := number.Sub(pool.TotalDebtShare, share)
	if err != nil {
		return nil, err
	}

	totalDebt, err := number.Sub(pool.TotalDebt, value)
	if err != nil {
		return nil, err
	}

	totalValue, err := number.Add(pool.TotalValue, value)
	if err != nil {
		return nil, err
	}

	position.DebtShare = number.Zero()
	pool.TotalDebtShare = totalShare
	pool.TotalDebt = totalDebt
	pool.TotalValue = totalValue
	return value, nil
}

// AddDebt records value as new debt of the position, lent out of the pool's
// idle value. A value that floors to zero shares is rejected
func AddDebt(pool *core.Pool, position *core.Position, value *uint256.Int) error {
	if value.IsZero() {
		return nil
	}

	if err := core.Require(!value.Gt(pool.TotalValue), core.ErrInsufficientLiquidity, "pool/debt-exceeds-value"); err != nil {
		return err
	}

	share, err := DebtValueToShare(pool, value)
	if err != nil {
		return err
	}

	// a debt worth less than one share would be owed by nobody
	if err := core.Require(!share.IsZero(), core.ErrConfiguration, "pool/debt-below-share"); err != nil {
		return err
	}

	positionShare, err := number.Add(position.DebtShare, share)
	if err != nil {
		return err
	}

	totalShare, err := number.Add(pool.TotalDebtShare, share)
	if err != nil {
		return err
	}

	totalDebt, err := number.Add(pool.TotalDebt, value)
	if err != nil {
		return err
	}

	position.DebtShare = positionShare
	pool.TotalDebtShare = totalShare
	pool.TotalDebt = totalDebt
	pool.TotalValue = new(uint256.Int).Sub(pool.TotalValue, value)
	return nil
}
