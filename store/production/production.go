package production

import (
	"context"
	"time"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Row persisted production, Pair holds coin and currency asset ids
type Row struct {
	ID              uint64          `sql:"PRIMARY_KEY" json:"id"`
	IsOpen          bool            `json:"is_open"`
	CanBorrow       bool            `json:"can_borrow"`
	Pair            pq.StringArray  `sql:"type:varchar(128)" json:"pair"`
	BorrowAssetID   string          `sql:"size:36" json:"borrow_asset_id"`
	StrategyID      string          `sql:"size:64" json:"strategy_id"`
	MinDebt         decimal.Decimal `sql:"type:decimal(65,0)" json:"min_debt"`
	OpenFactor      uint64          `json:"open_factor"`
	LiquidateFactor uint64          `json:"liquidate_factor"`
	Positions       uint64          `json:"positions"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName gorm table name
func (Row) TableName() string {
	return "productions"
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

// New new production store
func New(db *db.DB) core.ProductionStore {
	return &productionStore{db: db}
}

type productionStore struct {
	db *db.DB
}

func toRow(p *core.Production) *Row {
	return &Row{
		ID:              p.ID,
		IsOpen:          p.IsOpen,
		CanBorrow:       p.CanBorrow,
		Pair:            pq.StringArray{p.CoinAssetID, p.CurrencyAssetID},
		BorrowAssetID:   p.BorrowAssetID,
		StrategyID:      p.StrategyID,
		MinDebt:         number.ToDecimal(p.MinDebt),
		OpenFactor:      p.OpenFactor,
		LiquidateFactor: p.LiquidateFactor,
		Positions:       p.Positions,
	}
}

func fromRow(row *Row) (*core.Production, error) {
	minDebt, err := number.FromDecimal(row.MinDebt)
	if err != nil {
		return nil, err
	}

	p := &core.Production{
		ID:              row.ID,
		IsOpen:          row.IsOpen,
		CanBorrow:       row.CanBorrow,
		BorrowAssetID:   row.BorrowAssetID,
		StrategyID:      row.StrategyID,
		MinDebt:         minDebt,
		OpenFactor:      row.OpenFactor,
		LiquidateFactor: row.LiquidateFactor,
		Positions:       row.Positions,
	}

	if len(row.Pair) == 2 {
		p.CoinAssetID, p.CurrencyAssetID = row.Pair[0], row.Pair[1]
	}

	return p, nil
}

func (s *productionStore) Save(ctx context.Context, tx *db.DB, production *core.Production) error {
	return tx.Update().Save(toRow(production)).Error
}

func (s *productionStore) Find(ctx context.Context, id uint64) (*core.Production, error) {
	var row Row
	if err := s.db.View().Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}

	return fromRow(&row)
}

func (s *productionStore) List(ctx context.Context) ([]*core.Production, error) {
	var rows []*Row
	if err := s.db.View().Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	productions := make([]*core.Production, 0, len(rows))
	for _, row := range rows {
		p, err := fromRow(row)
		if err != nil {
			return nil, err
		}

		productions = append(productions, p)
	}

	return productions, nil
}
