package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tokenbank/core"
	"tokenbank/internal/interest"
	"tokenbank/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mirror struct {
	pools       map[string]*core.Pool
	productions map[uint64]*core.Production
	positions   []*core.Position
	events      []*core.Event
}

type poolStore struct{ *mirror }

func (s poolStore) Save(context.Context, *db.DB, *core.Pool) error { return nil }

func (s poolStore) Find(_ context.Context, assetID string) (*core.Pool, error) {
	if p, ok := s.pools[assetID]; ok {
		return p, nil
	}

	return nil, gorm.ErrRecordNotFound
}

func (s poolStore) List(context.Context) ([]*core.Pool, error) {
	return []*core.Pool{s.pools["usd"]}, nil
}

type productionStore struct{ *mirror }

func (s productionStore) Save(context.Context, *db.DB, *core.Production) error { return nil }

func (s productionStore) Find(_ context.Context, id uint64) (*core.Production, error) {
	if p, ok := s.productions[id]; ok {
		return p, nil
	}

	return nil, gorm.ErrRecordNotFound
}

func (s productionStore) List(context.Context) ([]*core.Production, error) {
	return []*core.Production{s.productions[1]}, nil
}

type positionStore struct{ *mirror }

func (s positionStore) Save(context.Context, *db.DB, *core.Position) error { return nil }

func (s positionStore) Find(_ context.Context, id uint64) (*core.Position, error) {
	for _, p := range s.positions {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (s positionStore) ListByOwner(_ context.Context, owner string) ([]*core.Position, error) {
	var list []*core.Position
	for _, p := range s.positions {
		if p.Owner == owner {
			list = append(list, p)
		}
	}

	return list, nil
}

func (s positionStore) List(_ context.Context, from uint64, limit int) ([]*core.Position, error) {
	var list []*core.Position
	for _, p := range s.positions {
		if p.ID > from && len(list) < limit {
			list = append(list, p)
		}
	}

	return list, nil
}

type eventStore struct{ *mirror }

func (s eventStore) Create(context.Context, *db.DB, *core.Event) error { return nil }

func (s eventStore) List(_ context.Context, from uint64, limit int) ([]*core.Event, error) {
	var list []*core.Event
	for _, e := range s.events {
		if e.Seq > from && len(list) < limit {
			list = append(list, e)
		}
	}

	return list, nil
}

func newHandler() http.Handler {
	m := &mirror{
		pools: map[string]*core.Pool{
			"usd": {
				AssetID:        "usd",
				IsOpen:         true,
				TotalValue:     number.New(1000),
				TotalDebt:      number.New(550),
				TotalDebtShare: number.New(500),
				TotalReserve:   number.New(4),
			},
		},
		productions: map[uint64]*core.Production{
			1: {ID: 1, BorrowAssetID: "usd", StrategyID: "vault", MinDebt: number.New(10)},
		},
		positions: []*core.Position{
			{ID: 1, Owner: "bob", ProductionID: 1, DebtShare: number.New(100)},
			{ID: 2, Owner: "alice", ProductionID: 1, DebtShare: number.Zero()},
		},
		events: []*core.Event{
			{Seq: 1, Action: core.ActionCreateToken},
			{Seq: 2, Action: core.ActionDeposit, Amount: number.New(1000)},
		},
	}

	return Handle(poolStore{m}, productionStore{m}, positionStore{m}, eventStore{m}, Config{
		RateModel:  interest.NewTripleSlope(),
		ReserveBps: 1000,
	})
}

func get(t *testing.T, h http.Handler, target string, v interface{}) int {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	if v != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
	}

	return w.Code
}

func TestPools(t *testing.T) {
	h := newHandler()

	var pool map[string]interface{}
	assert.Equal(t, http.StatusOK, get(t, h, "/pools/usd", &pool))
	assert.Equal(t, "1546", pool["total_token"])

	var pools []map[string]interface{}
	assert.Equal(t, http.StatusOK, get(t, h, "/pools", &pools))
	assert.Len(t, pools, 1)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/pools/eth", nil))
}

func TestPositions(t *testing.T) {
	h := newHandler()

	var position map[string]interface{}
	assert.Equal(t, http.StatusOK, get(t, h, "/positions/1", &position))
	assert.Equal(t, "110", position["debt"])

	var positions []map[string]interface{}
	assert.Equal(t, http.StatusOK, get(t, h, "/positions?owner=alice", &positions))
	require.Len(t, positions, 1)
	assert.EqualValues(t, 2, positions[0]["id"])

	assert.Equal(t, http.StatusOK, get(t, h, "/positions?from=1&limit=5", &positions))
	assert.Len(t, positions, 1)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/positions/abc", nil))
	assert.Equal(t, http.StatusNotFound, get(t, h, "/positions/9", nil))
}

func TestProductionsAndEvents(t *testing.T) {
	h := newHandler()

	var production map[string]interface{}
	assert.Equal(t, http.StatusOK, get(t, h, "/productions/1", &production))
	assert.Equal(t, "10", production["min_debt"])
	assert.Equal(t, "vault", production["strategy_id"])

	var events []map[string]interface{}
	assert.Equal(t, http.StatusOK, get(t, h, "/events?from=1", &events))
	require.Len(t, events, 1)
	assert.Equal(t, "1000", events[0]["amount"])

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/events?from=x", nil))
}
