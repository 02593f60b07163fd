package bank

import (
	"sync/atomic"
	"time"

	"tokenbank/core"
	"tokenbank/pkg/access"
	"tokenbank/pkg/reentrancy"
)

// Config bank identity
type Config struct {
	// holder of the pooled assets
	Address string `valid:"required"`
	Admin   string `valid:"required"`
}

// Option bank option
type Option func(b *Bank)

// WithClock overrides the unix time source
func WithClock(clock func() int64) Option {
	return func(b *Bank) {
		b.clock = clock
	}
}

// WithLedgerStore persists every commit before it becomes visible
func WithLedgerStore(store core.LedgerStore) Option {
	return func(b *Bank) {
		b.store = store
	}
}

// Bank lending pool ledger
type Bank struct {
	guard      reentrancy.Guard
	inflight   atomic.Pointer[txn]
	address    string
	gateway    core.AssetTransferGateway
	tokens     core.ShareTokenFactory
	strategies core.StrategyResolver
	store      core.LedgerStore
	clock      func() int64
	metrics    *Metrics

	// committed state, guarded by guard
	state state
}

type state struct {
	pools       map[string]*core.Pool
	productions map[uint64]*core.Production
	positions   map[uint64]*core.Position
	counters    core.Counters
	owner       access.Ownable
	oracle      core.ConfigOracle
	events      []*core.Event
}

// New new bank
func New(
	cfg Config,
	gateway core.AssetTransferGateway,
	tokens core.ShareTokenFactory,
	strategies core.StrategyResolver,
	oracle core.ConfigOracle,
	opts ...Option,
) *Bank {
	b := &Bank{
		address:    cfg.Address,
		gateway:    gateway,
		tokens:     tokens,
		strategies: strategies,
		clock:      func() int64 { return time.Now().Unix() },
		metrics:    metrics(),
		state: state{
			pools:       map[string]*core.Pool{},
			productions: map[uint64]*core.Production{},
			positions:   map[uint64]*core.Position{},
			counters: core.Counters{
				NextPositionID:   1,
				NextProductionID: 1,
				Admin:            cfg.Admin,
			},
			owner:  access.Ownable{Owner: cfg.Admin},
			oracle: oracle,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

var _ core.BankService = (*Bank)(nil)

// Address holder of the pooled assets
func (b *Bank) Address() string {
	return b.address
}
