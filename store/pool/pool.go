package pool

import (
	"context"
	"time"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Row persisted pool
type Row struct {
	AssetID          string          `sql:"size:36;PRIMARY_KEY" json:"asset_id"`
	ShareTokenID     string          `sql:"size:36;unique_index:pool_share_token_idx" json:"share_token_id"`
	Symbol           string          `sql:"size:20" json:"symbol"`
	IsOpen           bool            `json:"is_open"`
	CanDeposit       bool            `json:"can_deposit"`
	CanWithdraw      bool            `json:"can_withdraw"`
	TotalValue       decimal.Decimal `sql:"type:decimal(65,0)" json:"total_value"`
	TotalDebt        decimal.Decimal `sql:"type:decimal(65,0)" json:"total_debt"`
	TotalDebtShare   decimal.Decimal `sql:"type:decimal(65,0)" json:"total_debt_share"`
	TotalReserve     decimal.Decimal `sql:"type:decimal(65,0)" json:"total_reserve"`
	LastInterestTime int64           `json:"last_interest_time"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName gorm table name
func (Row) TableName() string {
	return "pools"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(Row{})
		if err := tx.AutoMigrate(Row{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// New new pool store
func New(db *db.DB) core.PoolStore {
	return &poolStore{db: db}
}

type poolStore struct {
	db *db.DB
}

func toRow(pool *core.Pool) *Row {
	return &Row{
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
}

func fromRow(row *Row) (*core.Pool, error) {
	pool := &core.Pool{
		AssetID:          row.AssetID,
		ShareTokenID:     row.ShareTokenID,
		Symbol:           row.Symbol,
		IsOpen:           row.IsOpen,
		CanDeposit:       row.CanDeposit,
		CanWithdraw:      row.CanWithdraw,
		LastInterestTime: row.LastInterestTime,
	}

	var err error
	if pool.TotalValue, err = number.FromDecimal(row.TotalValue); err != nil {
		return nil, err
	}

	if pool.TotalDebt, err = number.FromDecimal(row.TotalDebt); err != nil {
		return nil, err
	}

	if pool.TotalDebtShare, err = number.FromDecimal(row.TotalDebtShare); err != nil {
		return nil, err
	}

	if pool.TotalReserve, err = number.FromDecimal(row.TotalReserve); err != nil {
		return nil, err
	}

	return pool, nil
}

func (s *poolStore) Save(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	return tx.Update().Save(toRow(pool)).Error
}

func (s *poolStore) Find(ctx context.Context, assetID string) (*core.Pool, error) {
	var row Row
	if err := s.db.View().Where("asset_id = ?", assetID).First(&row).Error; err != nil {
		return nil, err
	}

	return fromRow(&row)
}

func (s *poolStore) List(ctx context.Context) ([]*core.Pool, error) {
	var rows []*Row
	if err := s.db.View().Order("asset_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	pools := make([]*core.Pool, 0, len(rows))
	for _, row := range rows {
		pool, err := fromRow(row)
		if err != nil {
			return nil, err
		}

		pools = append(pools, pool)
	}

	return pools, nil
}
