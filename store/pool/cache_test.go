package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	pools map[string]*core.Pool
	finds int
}

func (s *memoryStore) Save(_ context.Context, _ *db.DB, pool *core.Pool) error {
	s.pools[pool.AssetID] = pool.Clone()
	return nil
}

func (s *memoryStore) Find(_ context.Context, assetID string) (*core.Pool, error) {
	s.finds++
	pool, ok := s.pools[assetID]
	if !ok {
		return nil, errors.New("record not found")
	}

	return pool.Clone(), nil
}

func (s *memoryStore) List(_ context.Context) ([]*core.Pool, error) {
	return nil, nil
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	backend := &memoryStore{pools: map[string]*core.Pool{}}
	store := Cache(backend, time.Minute)

	require.NoError(t, store.Save(ctx, nil, &core.Pool{AssetID: "usd", TotalValue: number.New(10)}))

	pool, err := store.Find(ctx, "usd")
	require.NoError(t, err)
	assert.EqualValues(t, 10, pool.TotalValue.Uint64())

	// cached copies are not shared with callers
	pool.TotalValue = number.New(99)
	pool, err = store.Find(ctx, "usd")
	require.NoError(t, err)
	assert.EqualValues(t, 10, pool.TotalValue.Uint64())
	assert.Equal(t, 1, backend.finds)

	require.NoError(t, store.Save(ctx, nil, &core.Pool{AssetID: "usd", TotalValue: number.New(20)}))
	pool, err = store.Find(ctx, "usd")
	require.NoError(t, err)
	assert.EqualValues(t, 20, pool.TotalValue.Uint64())
	assert.Equal(t, 2, backend.finds)

	_, err = store.Find(ctx, "eth")
	assert.Error(t, err)
}

func TestRowConversion(t *testing.T) {
	pool := &core.Pool{
		AssetID:          "usd",
		ShareTokenID:     "share",
		IsOpen:           true,
		TotalValue:       number.MustParse("123456789012345678901234567890"),
		TotalDebt:        number.New(7),
		LastInterestTime: 42,
	}

	back, err := fromRow(toRow(pool))
	require.NoError(t, err)
	assert.Equal(t, pool.TotalValue.Dec(), back.TotalValue.Dec())
	assert.EqualValues(t, 7, back.TotalDebt.Uint64())
	assert.True(t, back.TotalReserve.IsZero())
	assert.EqualValues(t, 42, back.LastInterestTime)
	assert.True(t, back.IsOpen)
}
