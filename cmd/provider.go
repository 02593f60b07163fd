package cmd

import (
	"time"

	"tokenbank/core"
	"tokenbank/handler/rest"
	"tokenbank/internal/interest"
	"tokenbank/store/event"
	"tokenbank/store/ledger"
	"tokenbank/store/pool"
	"tokenbank/store/position"
	"tokenbank/store/production"

	"github.com/fox-one/pkg/store/db"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// ---------------store-----------------------------------------

func providePoolStore(db *db.DB) core.PoolStore {
	return pool.Cache(pool.New(db), 3*time.Second)
}

func provideProductionStore(db *db.DB) core.ProductionStore {
	return production.New(db)
}

func providePositionStore(db *db.DB) core.PositionStore {
	return position.New(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return event.New(db)
}

func provideLedgerStore(db *db.DB) core.LedgerStore {
	return ledger.New(db,
		providePoolStore(db),
		provideProductionStore(db),
		providePositionStore(db),
		provideEventStore(db),
	)
}

// ------------------handler------------------------------------

func provideRestConfig() rest.Config {
	return rest.Config{
		RateModel:  interest.NewTripleSlope(),
		ReserveBps: cfg.Bank.ReserveBps,
	}
}
