package position

import (
	"context"
	"time"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Row persisted position
type Row struct {
	ID           uint64          `sql:"PRIMARY_KEY" json:"id"`
	Owner        string          `sql:"size:64" json:"owner"`
	ProductionID uint64          `json:"production_id"`
	DebtShare    decimal.Decimal `sql:"type:decimal(65,0)" json:"debt_share"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName gorm table name
func (Row) TableName() string {
	return "positions"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(Row{})
		if err := tx.AutoMigrate(Row{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_positions_owner", "owner").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new position store
func New(db *db.DB) core.PositionStore {
	return &positionStore{db: db}
}

type positionStore struct {
	db *db.DB
}

func toRow(p *core.Position) *Row {
	return &Row{
		ID:           p.ID,
		Owner:        p.Owner,
		ProductionID: p.ProductionID,
		DebtShare:    number.ToDecimal(p.DebtShare),
	}
}

func fromRow(row *Row) (*core.Position, error) {
	share, err := number.FromDecimal(row.DebtShare)
	if err != nil {
		return nil, err
	}

	return &core.Position{
		ID:           row.ID,
		Owner:        row.Owner,
		ProductionID: row.ProductionID,
		DebtShare:    share,
	}, nil
}

func fromRows(rows []*Row) ([]*core.Position, error) {
	positions := make([]*core.Position, 0, len(rows))
	for _, row := range rows {
		p, err := fromRow(row)
		if err != nil {
			return nil, err
		}

		positions = append(positions, p)
	}

	return positions, nil
}

func (s *positionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	return tx.Update().Save(toRow(position)).Error
}

func (s *positionStore) Find(ctx context.Context, id uint64) (*core.Position, error) {
	var row Row
	if err := s.db.View().Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}

	return fromRow(&row)
}

func (s *positionStore) ListByOwner(ctx context.Context, owner string) ([]*core.Position, error) {
	var rows []*Row
	if err := s.db.View().Where("owner = ?", owner).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	return fromRows(rows)
}

func (s *positionStore) List(ctx context.Context, from uint64, limit int) ([]*core.Position, error) {
	var rows []*Row
	if err := s.db.View().Where("id > ?", from).Order("id").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	return fromRows(rows)
}
