package core

import "context"

// Counters process wide ledger state besides the records
type Counters struct {
	NextPositionID   uint64 `json:"next_position_id"`
	NextProductionID uint64 `json:"next_production_id"`
	EventSeq         uint64 `json:"event_seq"`
	Admin            string `json:"admin"`
}

// Commit records written by one bank operation
type Commit struct {
	Pools       []*Pool
	Productions []*Production
	Positions   []*Position
	Events      []*Event
	Counters    Counters
}

// LedgerStore persists committed bank state, a failing Save aborts the
// operation that produced the commit
type LedgerStore interface {
	Save(ctx context.Context, commit *Commit) error
	Reset(ctx context.Context) error
}
