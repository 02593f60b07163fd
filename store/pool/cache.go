package pool

import (
	"context"
	"fmt"
	"time"

	"tokenbank/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache caches pools by asset id, entries expire after exp
func Cache(store core.PoolStore, exp time.Duration) core.PoolStore {
	return &cachePoolStore{
		PoolStore: store,
		cache:     gcache.New(512).LRU().Expiration(exp).Build(),
		sf:        &singleflight.Group{},
	}
}

type cachePoolStore struct {
	core.PoolStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePoolStore) Save(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	if err := s.PoolStore.Save(ctx, tx, pool); err != nil {
		return err
	}

	// the row is only visible once tx commits
	s.cache.Remove(s.poolKey(pool.AssetID))
	return nil
}

func (s *cachePoolStore) Find(ctx context.Context, assetID string) (*core.Pool, error) {
	key := s.poolKey(assetID)
	if v, err := s.cache.Get(key); err == nil {
		if pool, ok := v.(*core.Pool); ok {
			return pool.Clone(), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		pool, err := s.PoolStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, pool)
		return pool, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Pool).Clone(), nil
}

func (s *cachePoolStore) poolKey(assetID string) string {
	return fmt.Sprintf("pool:asset:%s", assetID)
}
