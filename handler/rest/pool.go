package rest

import (
	"net/http"

	"tokenbank/core"
	"tokenbank/handler/render"
	"tokenbank/handler/views"

	"github.com/fox-one/pkg/store"
	"github.com/go-chi/chi"
)

func listPools(pools core.PoolStore, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := pools.List(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]views.Pool, 0, len(list))
		for _, pool := range list {
			items = append(items, views.PoolView(pool, cfg.RateModel, cfg.ReserveBps))
		}

		render.JSON(w, items)
	}
}

func findPool(pools core.PoolStore, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pool, err := pools.Find(ctx, chi.URLParam(r, "asset_id"))
		if err != nil {
			render.ErrorOrNotFound(w, err, store.IsErrNotFound)
			return
		}

		render.JSON(w, views.PoolView(pool, cfg.RateModel, cfg.ReserveBps))
	}
}
