package rest

import (
	"context"
	"net/http"

	"tokenbank/core"
	"tokenbank/handler/param"
	"tokenbank/handler/render"
	"tokenbank/handler/views"

	"github.com/fox-one/pkg/store"
)

// positionViews values debt shares at the mirrored pools
func positionViews(ctx context.Context, list []*core.Position, productions core.ProductionStore, pools core.PoolStore) ([]views.Position, error) {
	items := make([]views.Position, 0, len(list))
	for _, position := range list {
		production, err := productions.Find(ctx, position.ProductionID)
		if err != nil {
			return nil, err
		}

		pool, err := pools.Find(ctx, production.BorrowAssetID)
		if err != nil {
			return nil, err
		}

		items = append(items, views.PositionView(position, pool))
	}

	return items, nil
}

func listPositions(positions core.PositionStore, productions core.ProductionStore, pools core.PoolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Owner string `json:"owner"`
			From  uint64 `json:"from"`
			Limit int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var (
			list []*core.Position
			err  error
		)

		if params.Owner != "" {
			list, err = positions.ListByOwner(ctx, params.Owner)
		} else {
			limit := params.Limit
			if limit <= 0 || limit > maxLimit {
				limit = maxLimit
			}

			list, err = positions.List(ctx, params.From, limit)
		}

		if err != nil {
			render.Error(w, err)
			return
		}

		items, err := positionViews(ctx, list, productions, pools)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, items)
	}
}

func findPosition(positions core.PositionStore, productions core.ProductionStore, pools core.PoolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := param.Uint64(r, "id")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		position, err := positions.Find(ctx, id)
		if err != nil {
			render.ErrorOrNotFound(w, err, store.IsErrNotFound)
			return
		}

		items, err := positionViews(ctx, []*core.Position{position}, productions, pools)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, items[0])
	}
}
