package views

import (
	"tokenbank/core"
	"tokenbank/internal/interest"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Pool pool view
type Pool struct {
	AssetID          string          `json:"asset_id"`
	ShareTokenID     string          `json:"share_token_id"`
	Symbol           string          `json:"symbol"`
	IsOpen           bool            `json:"is_open"`
	CanDeposit       bool            `json:"can_deposit"`
	CanWithdraw      bool            `json:"can_withdraw"`
	TotalValue       decimal.Decimal `json:"total_value"`
	TotalDebt        decimal.Decimal `json:"total_debt"`
	TotalDebtShare   decimal.Decimal `json:"total_debt_share"`
	TotalReserve     decimal.Decimal `json:"total_reserve"`
	TotalToken       decimal.Decimal `json:"total_token"`
	Utilization      decimal.Decimal `json:"utilization"`
	BorrowAPY        decimal.Decimal `json:"borrow_apy"`
	SupplyAPY        decimal.Decimal `json:"supply_apy"`
	LastInterestTime int64           `json:"last_interest_time"`
}

// PoolView presents the mirrored pool, the held balance is assumed to match
// the tracked value
func PoolView(pool *core.Pool, model core.RateModel, reserveBps uint64) Pool {
	view := Pool{
		AssetID:          pool.AssetID,
		ShareTokenID:     pool.ShareTokenID,
		Symbol:           pool.Symbol,
		IsOpen:           pool.IsOpen,
		CanDeposit:       pool.CanDeposit,
		CanWithdraw:      pool.CanWithdraw,
		TotalValue:       number.ToDecimal(pool.TotalValue),
		TotalDebt:        number.ToDecimal(pool.TotalDebt),
		TotalDebtShare:   number.ToDecimal(pool.TotalDebtShare),
		TotalReserve:     number.ToDecimal(pool.TotalReserve),
		LastInterestTime: pool.LastInterestTime,
	}

	total := view.TotalValue.Add(view.TotalDebt).Sub(view.TotalReserve)
	if total.IsNegative() {
		total = decimal.Zero
	}

	view.TotalToken = total

	idle, err := number.FromDecimal(total)
	if err != nil {
		return view
	}

	debt := pool.TotalDebt
	if debt == nil {
		debt = new(uint256.Int)
	}

	view.Utilization = interest.UtilizationRate(debt, idle)
	if rate, err := model.Rate(debt, idle); err == nil {
		view.BorrowAPY = interest.AnnualRate(rate)
		view.SupplyAPY = interest.SupplyRate(view.BorrowAPY, view.Utilization, reserveBps)
	}

	return view
}

// Production production view
type Production struct {
	*core.Production
	MinDebt decimal.Decimal `json:"min_debt"`
}

// ProductionView presents the production
func ProductionView(p *core.Production) Production {
	return Production{Production: p, MinDebt: number.ToDecimal(p.MinDebt)}
}

// Position position view, Debt is the share valued at the mirrored pool
type Position struct {
	ID           uint64          `json:"id"`
	Owner        string          `json:"owner"`
	ProductionID uint64          `json:"production_id"`
	DebtShare    decimal.Decimal `json:"debt_share"`
	Debt         decimal.Decimal `json:"debt"`
}

// PositionView presents the position, pool may be nil
func PositionView(p *core.Position, pool *core.Pool) Position {
	view := Position{
		ID:           p.ID,
		Owner:        p.Owner,
		ProductionID: p.ProductionID,
		DebtShare:    number.ToDecimal(p.DebtShare),
	}

	view.Debt = view.DebtShare
	if pool != nil && pool.TotalDebtShare != nil && !pool.TotalDebtShare.IsZero() {
		view.Debt = view.DebtShare.
			Mul(number.ToDecimal(pool.TotalDebt)).
			Div(number.ToDecimal(pool.TotalDebtShare)).
			Truncate(0)
	}

	return view
}

// Event event view
type Event struct {
	Seq        uint64           `json:"seq"`
	TraceID    string           `json:"trace_id"`
	Action     string           `json:"action"`
	AssetID    string           `json:"asset_id,omitempty"`
	PositionID uint64           `json:"position_id,omitempty"`
	Actor      string           `json:"actor"`
	Target     string           `json:"target,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Shares     *decimal.Decimal `json:"shares,omitempty"`
	Debt       *decimal.Decimal `json:"debt,omitempty"`
	Refund     *decimal.Decimal `json:"refund,omitempty"`
	Prize      *decimal.Decimal `json:"prize,omitempty"`
	Payout     *decimal.Decimal `json:"payout,omitempty"`
	CreatedAt  int64            `json:"created_at"`
}

func optional(v *uint256.Int) *decimal.Decimal {
	if v == nil {
		return nil
	}

	d := number.ToDecimal(v)
	return &d
}

// EventView presents the event
func EventView(e *core.Event) Event {
	return Event{
		Seq:        e.Seq,
		TraceID:    e.TraceID,
		Action:     e.Action,
		AssetID:    e.AssetID,
		PositionID: e.PositionID,
		Actor:      e.Actor,
		Target:     e.Target,
		Amount:     optional(e.Amount),
		Shares:     optional(e.Shares),
		Debt:       optional(e.Debt),
		Refund:     optional(e.Refund),
		Prize:      optional(e.Prize),
		Payout:     optional(e.Payout),
		CreatedAt:  e.CreatedAt,
	}
}
