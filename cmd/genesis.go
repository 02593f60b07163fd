package cmd

import (
	"context"
	"fmt"

	"tokenbank/core"
	"tokenbank/internal/interest"
	"tokenbank/pkg/number"
	"tokenbank/service/asset"
	"tokenbank/service/bank"
	"tokenbank/service/bankconfig"
	"tokenbank/service/sharetoken"
	"tokenbank/service/strategy"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
)

// bootBank rebuilds the node from the genesis section of the config, the
// database mirror is reset first and receives every genesis commit
func bootBank(ctx context.Context, store core.LedgerStore) (*bank.Bank, error) {
	log := logger.FromContext(ctx)
	genesis := cfg.Bank

	if _, err := govalidator.ValidateStruct(genesis); err != nil {
		return nil, fmt.Errorf("invalid bank config: %w", err)
	}

	if err := store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("reset ledger store: %w", err)
	}

	assets := asset.New()
	for _, b := range genesis.Balances {
		amount, err := number.Parse(b.Amount)
		if err != nil {
			return nil, fmt.Errorf("balance of %s: %w", b.Holder, err)
		}

		if err := assets.Mint(ctx, b.AssetID, b.Holder, amount); err != nil {
			return nil, err
		}
	}

	strategies := strategy.NewRegistry()
	for _, v := range genesis.Vaults {
		strategies.Register(v.ID, strategy.NewVault(v.Address, genesis.Address, assets, v.HaircutBps))
	}

	oracle, err := bankconfig.New(interest.NewTripleSlope(), genesis.ReserveBps, genesis.LiquidateBps)
	if err != nil {
		return nil, err
	}

	b := bank.New(
		bank.Config{Address: genesis.Address, Admin: genesis.Admin},
		assets.Gateway(genesis.Address),
		sharetoken.New(),
		strategies,
		oracle,
		bank.WithLedgerStore(store),
	)

	admin := core.NewCall(genesis.Admin)
	for _, p := range genesis.Pools {
		if err := b.CreateToken(ctx, admin, p.AssetID, p.Symbol); err != nil {
			return nil, fmt.Errorf("create token %s: %w", p.Symbol, err)
		}
	}

	for _, p := range genesis.Productions {
		minDebt, err := number.Parse(p.MinDebt)
		if err != nil {
			return nil, fmt.Errorf("min debt: %w", err)
		}

		id, err := b.SetProduction(ctx, admin, &core.Production{
			IsOpen:          true,
			CanBorrow:       true,
			CoinAssetID:     p.CoinAssetID,
			CurrencyAssetID: p.CurrencyAssetID,
			BorrowAssetID:   p.BorrowAssetID,
			StrategyID:      p.StrategyID,
			MinDebt:         minDebt,
			OpenFactor:      p.OpenFactor,
			LiquidateFactor: p.LiquidateFactor,
		})
		if err != nil {
			return nil, fmt.Errorf("set production %s/%s: %w", p.CoinAssetID, p.CurrencyAssetID, err)
		}

		log.Infof("production %d bound to %s", id, p.StrategyID)
	}

	for _, d := range genesis.Deposits {
		amount, err := number.Parse(d.Amount)
		if err != nil {
			return nil, fmt.Errorf("deposit of %s: %w", d.Holder, err)
		}

		call := core.NewCall(d.Holder)
		if d.AssetID == core.NativeAssetID {
			call = call.WithValue(amount)
		}

		if err := b.Deposit(ctx, call, d.AssetID, amount); err != nil {
			return nil, fmt.Errorf("deposit of %s: %w", d.Holder, err)
		}
	}

	log.Infof("bank booted with %d pools and %d productions", len(genesis.Pools), len(genesis.Productions))
	return b, nil
}
