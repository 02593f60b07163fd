package rest

import (
	"net/http"

	"tokenbank/core"
	"tokenbank/handler/param"
	"tokenbank/handler/render"
	"tokenbank/handler/views"
)

func listEvents(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			From  uint64 `json:"from"`
			Limit int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := params.Limit
		if limit <= 0 || limit > maxLimit {
			limit = maxLimit
		}

		list, err := events.List(r.Context(), params.From, limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]views.Event, 0, len(list))
		for _, e := range list {
			items = append(items, views.EventView(e))
		}

		render.JSON(w, items)
	}
}
