package rest

import (
	"net/http"

	"tokenbank/core"
	"tokenbank/handler/param"
	"tokenbank/handler/render"
	"tokenbank/handler/views"

	"github.com/fox-one/pkg/store"
)

func listProductions(productions core.ProductionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := productions.List(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]views.Production, 0, len(list))
		for _, p := range list {
			items = append(items, views.ProductionView(p))
		}

		render.JSON(w, items)
	}
}

func findProduction(productions core.ProductionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := param.Uint64(r, "id")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		production, err := productions.Find(r.Context(), id)
		if err != nil {
			render.ErrorOrNotFound(w, err, store.IsErrNotFound)
			return
		}

		render.JSON(w, views.ProductionView(production))
	}
}
