package event

import (
	"context"
	"encoding/json"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
)

// Row persisted event, amounts are kept as decimal strings in Data
type Row struct {
	Seq        uint64         `sql:"PRIMARY_KEY" json:"seq"`
	TraceID    string         `sql:"size:36" json:"trace_id"`
	Action     string         `sql:"size:24" json:"action"`
	AssetID    string         `sql:"size:36" json:"asset_id"`
	PositionID uint64         `json:"position_id"`
	Actor      string         `sql:"size:64" json:"actor"`
	Target     string         `sql:"size:64" json:"target"`
	Data       types.JSONText `sql:"type:TEXT" json:"data"`
	CreatedAt  int64          `json:"created_at"`
}

// TableName gorm table name
func (Row) TableName() string {
	return "events"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(Row{})
		if err := tx.AutoMigrate(Row{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_events_trace", "trace_id").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new event store
func New(db *db.DB) core.EventStore {
	return &eventStore{db: db}
}

type eventStore struct {
	db *db.DB
}

type amounts struct {
	Amount string `json:"amount,omitempty"`
	Shares string `json:"shares,omitempty"`
	Debt   string `json:"debt,omitempty"`
	Refund string `json:"refund,omitempty"`
	Prize  string `json:"prize,omitempty"`
	Payout string `json:"payout,omitempty"`
}

func dec(v *uint256.Int) string {
	if v == nil {
		return ""
	}

	return v.Dec()
}

func parse(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, nil
	}

	return number.Parse(s)
}

func toRow(event *core.Event) (*Row, error) {
	data, err := json.Marshal(amounts{
		Amount: dec(event.Amount),
		Shares: dec(event.Shares),
		Debt:   dec(event.Debt),
		Refund: dec(event.Refund),
		Prize:  dec(event.Prize),
		Payout: dec(event.Payout),
	})
	if err != nil {
		return nil, err
	}

	return &Row{
		Seq:        event.Seq,
		TraceID:    event.TraceID,
		Action:     event.Action,
		AssetID:    event.AssetID,
		PositionID: event.PositionID,
		Actor:      event.Actor,
		Target:     event.Target,
		Data:       data,
		CreatedAt:  event.CreatedAt,
	}, nil
}

func fromRow(row *Row) (*core.Event, error) {
	var a amounts
	if len(row.Data) > 0 {
		if err := row.Data.Unmarshal(&a); err != nil {
			return nil, err
		}
	}

	event := &core.Event{
		Seq:        row.Seq,
		TraceID:    row.TraceID,
		Action:     row.Action,
		AssetID:    row.AssetID,
		PositionID: row.PositionID,
		Actor:      row.Actor,
		Target:     row.Target,
		CreatedAt:  row.CreatedAt,
	}

	fields := []struct {
		dst **uint256.Int
		src string
	}{
		{&event.Amount, a.Amount},
		{&event.Shares, a.Shares},
		{&event.Debt, a.Debt},
		{&event.Refund, a.Refund},
		{&event.Prize, a.Prize},
		{&event.Payout, a.Payout},
	}

	for _, f := range fields {
		v, err := parse(f.src)
		if err != nil {
			return nil, err
		}

		*f.dst = v
	}

	return event, nil
}

func (s *eventStore) Create(ctx context.Context, tx *db.DB, event *core.Event) error {
	row, err := toRow(event)
	if err != nil {
		return err
	}

	return tx.Update().Where("trace_id = ?", row.TraceID).FirstOrCreate(row).Error
}

func (s *eventStore) List(ctx context.Context, from uint64, limit int) ([]*core.Event, error) {
	var rows []*Row
	if err := s.db.View().Where("seq > ?", from).Order("seq").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]*core.Event, 0, len(rows))
	for _, row := range rows {
		event, err := fromRow(row)
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, nil
}
