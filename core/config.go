package core

import (
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
)

// Config tokenbank config
type Config struct {
	App     App       `json:"app"`
	DB      db.Config `json:"db"`
	Bank    Bank      `json:"bank"`
	Keeper  Keeper    `json:"keeper"`
	Accrual Accrual   `json:"accrual"`
	Admins  []string  `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	return userID != "" && govalidator.IsIn(userID, c.Admins...)
}

// App app config
type App struct {
	Name        string `json:"name"`
	MetricsPort int    `json:"metrics_port"`
}

// Bank bank node config
type Bank struct {
	Address      string `json:"address" valid:"required"`
	Admin        string `json:"admin" valid:"required"`
	ReserveBps   uint64 `json:"reserve_bps"`
	LiquidateBps uint64 `json:"liquidate_bps"`

	Pools       []GenesisPool       `json:"pools"`
	Vaults      []GenesisVault      `json:"vaults"`
	Productions []GenesisProduction `json:"productions"`
	Balances    []GenesisBalance    `json:"balances"`
	Deposits    []GenesisBalance    `json:"deposits"`
}

// GenesisPool pool created at boot
type GenesisPool struct {
	AssetID string `json:"asset_id" valid:"required"`
	Symbol  string `json:"symbol" valid:"required"`
}

// GenesisVault vault strategy module registered at boot
type GenesisVault struct {
	ID         string `json:"id" valid:"required"`
	Address    string `json:"address" valid:"required"`
	HaircutBps uint64 `json:"haircut_bps"`
}

// GenesisProduction production created at boot, amounts are decimal strings
type GenesisProduction struct {
	CoinAssetID     string `json:"coin_asset_id"`
	CurrencyAssetID string `json:"currency_asset_id"`
	BorrowAssetID   string `json:"borrow_asset_id"`
	StrategyID      string `json:"strategy_id"`
	MinDebt         string `json:"min_debt"`
	OpenFactor      uint64 `json:"open_factor"`
	LiquidateFactor uint64 `json:"liquidate_factor"`
}

// GenesisBalance asset balance at boot
type GenesisBalance struct {
	Holder  string `json:"holder" valid:"required"`
	AssetID string `json:"asset_id" valid:"required"`
	Amount  string `json:"amount" valid:"required"`
}

// Keeper liquidation keeper config
type Keeper struct {
	Address  string        `json:"address"`
	Interval time.Duration `json:"interval"`
	Batch    int           `json:"batch"`
}

// Accrual interest accrual worker config
type Accrual struct {
	Interval time.Duration `json:"interval"`
}
