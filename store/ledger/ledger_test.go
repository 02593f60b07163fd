package ledger

import (
	"context"
	"errors"
	"testing"

	"tokenbank/core"
	"tokenbank/pkg/number"
	"tokenbank/store/event"
	"tokenbank/store/pool"
	"tokenbank/store/position"
	"tokenbank/store/production"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenProperties struct {
	property.Store
}

func (brokenProperties) Save(context.Context, string, interface{}) error {
	return errors.New("properties unavailable")
}

func newStore(t *testing.T) (*ledgerStore, *db.DB) {
	dbs, err := db.Open(db.SqliteInMemory())
	require.NoError(t, err)
	t.Cleanup(func() { dbs.Close() })

	// every connection of an in memory sqlite is a separate database
	dbs.Update().DB().SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(dbs))

	s := New(dbs, pool.New(dbs), production.New(dbs), position.New(dbs), event.New(dbs))
	return s.(*ledgerStore), dbs
}

func depositCommit() *core.Commit {
	return &core.Commit{
		Pools: []*core.Pool{
			{
				AssetID:        "usd",
				ShareTokenID:   "usd-share",
				Symbol:         "USD",
				IsOpen:         true,
				CanDeposit:     true,
				CanWithdraw:    true,
				TotalValue:     number.New(1000),
				TotalDebt:      number.Zero(),
				TotalDebtShare: number.Zero(),
				TotalReserve:   number.Zero(),
			},
		},
		Events: []*core.Event{
			{Seq: 1, TraceID: "6f0e3b7e-8d7c-4a8e-9b1e-0c2f4d5a6b7c", Action: core.ActionDeposit, AssetID: "usd", Actor: "alice", Amount: number.New(1000)},
		},
		Counters: core.Counters{
			NextPositionID:   1,
			NextProductionID: 1,
			EventSeq:         1,
			Admin:            "admin",
		},
	}
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	s, dbs := newStore(t)

	require.NoError(t, s.Save(ctx, depositCommit()))

	p, err := pool.New(dbs).Find(ctx, "usd")
	require.NoError(t, err)
	assert.EqualValues(t, 1000, p.TotalValue.Uint64())

	events, err := event.New(dbs).List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.EqualValues(t, 1000, events[0].Amount.Uint64())

	properties := propertystore.New(dbs)
	seq, err := properties.Get(ctx, eventSeqKey)
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq.Int64())

	admin, err := properties.Get(ctx, adminKey)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.String())

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, s.Reset(ctx))

		pools, err := pool.New(dbs).List(ctx)
		require.NoError(t, err)
		assert.Empty(t, pools)

		seq, err := properties.Get(ctx, eventSeqKey)
		require.NoError(t, err)
		assert.EqualValues(t, 0, seq.Int64())
	})
}

func TestSaveRollsBackWhenCountersFail(t *testing.T) {
	ctx := context.Background()
	s, dbs := newStore(t)
	s.properties = func(*db.DB) property.Store { return brokenProperties{} }

	assert.Error(t, s.Save(ctx, depositCommit()))

	_, err := pool.New(dbs).Find(ctx, "usd")
	assert.True(t, store.IsErrNotFound(err), "got %v", err)

	events, err := event.New(dbs).List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
