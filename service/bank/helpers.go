package bank

import (
	"context"

	"tokenbank/core"
	"tokenbank/pkg/ledger"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

// balance held by the bank
func (t *txn) balance(ctx context.Context, assetID string) (*uint256.Int, error) {
	v, err := t.bank.gateway.BalanceOf(ctx, assetID, t.bank.address)
	if err != nil {
		return nil, core.External(err, "gateway/balance")
	}

	return v, nil
}

func (t *txn) push(ctx context.Context, assetID, to string, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}

	t.touch(t.bank.gateway)
	return core.External(t.bank.gateway.Push(ctx, assetID, to, amount), "gateway/push")
}

func (t *txn) pull(ctx context.Context, assetID, from string, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}

	t.touch(t.bank.gateway)
	return core.External(t.bank.gateway.Pull(ctx, assetID, from, amount), "gateway/pull")
}

func (t *txn) totalToken(ctx context.Context, pool *core.Pool) (*uint256.Int, error) {
	balance, err := t.balance(ctx, pool.AssetID)
	if err != nil {
		return nil, err
	}

	return ledger.TotalToken(pool, balance)
}

// accrue brings the pool's debt up to the operation's timestamp
func (t *txn) accrue(ctx context.Context, pool *core.Pool) error {
	if t.now <= pool.LastInterestTime {
		return nil
	}

	if err := core.Require(t.oracle != nil, core.ErrConfiguration, "bank/config-unset"); err != nil {
		return err
	}

	balance, err := t.balance(ctx, pool.AssetID)
	if err != nil {
		return err
	}

	accrued, err := ledger.AccrueInterest(pool, t.now, balance, t.oracle)
	if err != nil {
		return err
	}

	t.bank.metrics.ObserveAccrued(pool.AssetID, accrued)
	return nil
}

func (t *txn) shareToken(ctx context.Context, pool *core.Pool) (core.ShareToken, error) {
	token, err := t.bank.tokens.Token(ctx, pool.ShareTokenID)
	if err != nil {
		return nil, core.External(err, "share-token/resolve")
	}

	t.touch(token)
	return token, nil
}

func (t *txn) strategy(ctx context.Context, production *core.Production) (core.StrategyModule, error) {
	if err := core.Require(production.StrategyID != "", core.ErrConfiguration, "strategy/unset"); err != nil {
		return nil, err
	}

	module, err := t.bank.strategies.Strategy(ctx, production.StrategyID)
	if err != nil {
		return nil, core.External(err, "strategy/resolve")
	}

	return module, nil
}

func (t *txn) health(ctx context.Context, module core.StrategyModule, positionID uint64, assetID string) (*uint256.Int, error) {
	var health *uint256.Int
	err := t.callout(func() (err error) {
		health, err = module.Health(ctx, positionID, assetID)
		return err
	})
	if err != nil {
		return nil, core.External(err, "strategy/health")
	}

	if health == nil {
		return nil, core.NewError(core.ErrExternalCall, "strategy/health-missing")
	}

	return health, nil
}

// gained increase of the bank's balance since before
func (t *txn) gained(ctx context.Context, assetID string, before *uint256.Int) (*uint256.Int, error) {
	after, err := t.balance(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if after.Lt(before) {
		return nil, core.NewError(core.ErrExternalCall, "bank/balance-decreased")
	}

	return new(uint256.Int).Sub(after, before), nil
}

func (t *txn) requireAdmin(call core.Call) error {
	return t.owner.Check(call.Sender)
}

// collateralized health * factor >= debt * 10000
func collateralized(health *uint256.Int, factor uint64, debt *uint256.Int) (bool, error) {
	lhs, err := number.Mul(health, number.New(factor))
	if err != nil {
		return false, err
	}

	rhs, err := number.Mul(debt, number.New(number.BpsBase))
	if err != nil {
		return false, err
	}

	return !lhs.Lt(rhs), nil
}

func eventFields(event *core.Event) logrus.Fields {
	fields := logrus.Fields{}
	for k, v := range structs.Map(event) {
		if i, ok := v.(*uint256.Int); ok {
			if i == nil {
				continue
			}

			v = i.Dec()
		}

		fields[k] = v
	}

	return fields
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return number.Zero()
	}

	return v
}
