package ledger

import (
	"context"

	"tokenbank/core"
	"tokenbank/store/event"
	"tokenbank/store/pool"
	"tokenbank/store/position"
	"tokenbank/store/production"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

const (
	nextPositionKey   = "bank_next_position_id"
	nextProductionKey = "bank_next_production_id"
	eventSeqKey       = "bank_event_seq"
	adminKey          = "bank_admin"
)

// New ledger store mirroring every bank commit into the database
func New(
	db *db.DB,
	pools core.PoolStore,
	productions core.ProductionStore,
	positions core.PositionStore,
	events core.EventStore,
) core.LedgerStore {
	return &ledgerStore{
		db:          db,
		pools:       pools,
		productions: productions,
		positions:   positions,
		events:      events,
		properties:  propertystore.New,
	}
}

type ledgerStore struct {
	db          *db.DB
	pools       core.PoolStore
	productions core.ProductionStore
	positions   core.PositionStore
	events      core.EventStore
	// counters are written through a property store bound to the commit tx
	properties func(tx *db.DB) property.Store
}

func (s *ledgerStore) Save(ctx context.Context, commit *core.Commit) error {
	return s.db.Tx(func(tx *db.DB) error {
		for _, p := range commit.Pools {
			if err := s.pools.Save(ctx, tx, p); err != nil {
				return err
			}
		}

		for _, p := range commit.Productions {
			if err := s.productions.Save(ctx, tx, p); err != nil {
				return err
			}
		}

		for _, p := range commit.Positions {
			if err := s.positions.Save(ctx, tx, p); err != nil {
				return err
			}
		}

		for _, e := range commit.Events {
			if err := s.events.Create(ctx, tx, e); err != nil {
				return err
			}
		}

		return saveCounters(ctx, s.properties(tx), commit.Counters)
	})
}

func saveCounters(ctx context.Context, properties property.Store, c core.Counters) error {
	values := []struct {
		key   string
		value interface{}
	}{
		{nextPositionKey, int64(c.NextPositionID)},
		{nextProductionKey, int64(c.NextProductionID)},
		{eventSeqKey, int64(c.EventSeq)},
		{adminKey, c.Admin},
	}

	for _, v := range values {
		if err := properties.Save(ctx, v.key, v.value); err != nil {
			return err
		}
	}

	return nil
}

// Reset clears the mirror before the ledger is replayed from genesis
func (s *ledgerStore) Reset(ctx context.Context) error {
	return s.db.Tx(func(tx *db.DB) error {
		for _, model := range []interface{}{pool.Row{}, production.Row{}, position.Row{}, event.Row{}} {
			if err := tx.Update().Delete(model).Error; err != nil {
				return err
			}
		}

		return saveCounters(ctx, s.properties(tx), core.Counters{})
	})
}
