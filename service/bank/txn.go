package bank

import (
	"context"
	"sync/atomic"

	"tokenbank/core"
	"tokenbank/pkg/access"
	"tokenbank/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

type txnKey struct{}

type snapshot struct {
	journal core.Journal
	id      int
}

// txn working copy of the ledger for one operation. Records are copied on
// first access and only written back to the bank when the operation
// commits; collaborators implementing core.Journal are snapshotted when
// first touched and reverted on abort.
type txn struct {
	bank     *Bank
	op       string
	traceID  string
	now      int64
	readOnly bool

	pools       map[string]*core.Pool
	productions map[uint64]*core.Production
	positions   map[uint64]*core.Position
	counters    core.Counters
	owner       access.Ownable
	oracle      core.ConfigOracle
	events      []*core.Event

	snapshots []snapshot
	touched   map[core.Journal]bool
	reentered atomic.Bool
	done      bool
}

func (b *Bank) begin(op string, readOnly bool) *txn {
	return &txn{
		bank:        b,
		op:          op,
		traceID:     id.GenTraceID(),
		now:         b.clock(),
		readOnly:    readOnly,
		pools:       map[string]*core.Pool{},
		productions: map[uint64]*core.Production{},
		positions:   map[uint64]*core.Position{},
		counters:    b.state.counters,
		owner:       b.state.owner,
		oracle:      b.state.oracle,
		touched:     map[core.Journal]bool{},
	}
}

// current in flight operation of b carried by ctx
func (b *Bank) current(ctx context.Context) *txn {
	t, ok := ctx.Value(txnKey{}).(*txn)
	if !ok || t.bank != b || t.done {
		return nil
	}

	return t
}

// exec runs fn as one atomic guarded operation
func (b *Bank) exec(ctx context.Context, op string, call core.Call, payable bool, fn func(ctx context.Context, t *txn) error) error {
	if outer := b.current(ctx); outer != nil {
		// the outer operation must fail even if the caller swallows our error
		outer.reentered.Store(true)
	}

	ctx, release, err := b.guard.Enter(ctx)
	if err != nil {
		if outer := b.inflight.Load(); outer != nil && b.guard.Calling() {
			outer.reentered.Store(true)
		}

		b.metrics.ObserveOp(op, err)
		return err
	}
	defer release()

	t := b.begin(op, false)
	b.inflight.Store(t)
	defer b.inflight.Store(nil)
	ctx = context.WithValue(ctx, txnKey{}, t)
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"op":     op,
		"caller": call.Sender,
		"trace":  t.traceID,
	})

	err = t.run(ctx, call, payable, fn)
	if err == nil {
		err = t.commit(ctx)
	}

	t.done = true
	b.metrics.ObserveOp(op, err)

	if err != nil {
		t.revert()

		switch core.CodeOf(err) {
		case core.ErrArithmetic, core.ErrExternalCall, core.ErrUnknown:
			log.WithError(err).Errorln("operation aborted")
		default:
			log.WithError(err).Infoln("operation rejected")
		}

		return err
	}

	t.release()
	for _, event := range t.events {
		log.WithFields(eventFields(event)).Infoln("operation committed")
	}

	return nil
}

// view runs fn against the in flight operation when called back from a
// collaborator, otherwise against a private copy of the committed state
func (b *Bank) view(ctx context.Context, fn func(ctx context.Context, t *txn) error) error {
	if t := b.current(ctx); t != nil {
		return fn(ctx, t)
	}

	ctx, release, err := b.guard.Enter(ctx)
	if err != nil {
		return err
	}
	defer release()

	t := b.begin("view", true)
	ctx = context.WithValue(ctx, txnKey{}, t)
	defer func() {
		t.done = true
		t.revert()
	}()

	return fn(ctx, t)
}

func (t *txn) run(ctx context.Context, call core.Call, payable bool, fn func(ctx context.Context, t *txn) error) error {
	// collaborators move assets through the same ledger during callbacks
	t.touch(t.bank.gateway)

	if value := call.Attached(); !value.IsZero() {
		if err := core.Require(payable, core.ErrConfiguration, "bank/not-payable"); err != nil {
			return err
		}

		if err := t.bank.gateway.Pull(ctx, core.NativeAssetID, call.Sender, value); err != nil {
			return core.External(err, "gateway/pull-value")
		}
	}

	if err := fn(ctx, t); err != nil {
		return err
	}

	// a callback tried to reenter and the collaborator hid the failure
	return core.Require(!t.reentered.Load(), core.ErrReentrancy, "reentrancy/nested-call")
}

// callout runs a call into a strategy module, which may call back
func (t *txn) callout(fn func() error) error {
	return t.bank.guard.Call(fn)
}

// touch snapshots collaborator state before the first call into it
func (t *txn) touch(v interface{}) {
	j, ok := v.(core.Journal)
	if !ok || t.touched[j] {
		return
	}

	t.touched[j] = true
	t.snapshots = append(t.snapshots, snapshot{journal: j, id: j.Snapshot()})
}

func (t *txn) revert() {
	for i := len(t.snapshots) - 1; i >= 0; i-- {
		s := t.snapshots[i]
		s.journal.RevertToSnapshot(s.id)
	}

	t.snapshots = nil
}

func (t *txn) release() {
	for i := len(t.snapshots) - 1; i >= 0; i-- {
		s := t.snapshots[i]
		s.journal.Release(s.id)
	}

	t.snapshots = nil
}

func (t *txn) pool(assetID string) (*core.Pool, error) {
	if p, ok := t.pools[assetID]; ok {
		return p, nil
	}

	p, ok := t.bank.state.pools[assetID]
	if !ok {
		return nil, core.NewError(core.ErrConfiguration, "bank/pool-not-found")
	}

	p = p.Clone()
	t.pools[assetID] = p
	return p, nil
}

func (t *txn) hasPool(assetID string) bool {
	if _, ok := t.pools[assetID]; ok {
		return true
	}

	_, ok := t.bank.state.pools[assetID]
	return ok
}

func (t *txn) production(productionID uint64) (*core.Production, error) {
	if p, ok := t.productions[productionID]; ok {
		return p, nil
	}

	p, ok := t.bank.state.productions[productionID]
	if !ok {
		return nil, core.NewError(core.ErrConfiguration, "bank/production-not-found")
	}

	p = p.Clone()
	t.productions[productionID] = p
	return p, nil
}

func (t *txn) position(positionID uint64) (*core.Position, bool) {
	if p, ok := t.positions[positionID]; ok {
		return p, true
	}

	p, ok := t.bank.state.positions[positionID]
	if !ok {
		return nil, false
	}

	p = p.Clone()
	t.positions[positionID] = p
	return p, true
}

func (t *txn) emit(event *core.Event) {
	event.Actor = firstNonEmpty(event.Actor, t.bank.address)
	t.events = append(t.events, event)
}

func (t *txn) commit(ctx context.Context) error {
	t.counters.Admin = t.owner.Owner
	for idx, event := range t.events {
		t.counters.EventSeq++
		event.Seq = t.counters.EventSeq
		event.TraceID = id.Modify(t.traceID, id.Num2Str(uint64(idx)))
		event.CreatedAt = t.now
	}

	if store := t.bank.store; store != nil {
		commit := &core.Commit{
			Counters: t.counters,
			Events:   t.events,
		}

		for _, p := range t.pools {
			commit.Pools = append(commit.Pools, p)
		}

		for _, p := range t.productions {
			commit.Productions = append(commit.Productions, p)
		}

		for _, p := range t.positions {
			commit.Positions = append(commit.Positions, p)
		}

		if err := store.Save(ctx, commit); err != nil {
			return core.External(err, "store/save")
		}
	}

	s := &t.bank.state
	for k, p := range t.pools {
		s.pools[k] = p
		t.bank.metrics.ObservePool(p)
	}

	for k, p := range t.productions {
		s.productions[k] = p
	}

	for k, p := range t.positions {
		s.positions[k] = p
	}

	s.counters = t.counters
	s.owner = t.owner
	s.oracle = t.oracle
	s.events = append(s.events, t.events...)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
