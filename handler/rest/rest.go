package rest

import (
	"errors"
	"net/http"

	"tokenbank/core"
	"tokenbank/handler/render"

	"github.com/go-chi/chi"
)

const maxLimit = 500

// Config presentation parameters of the rest api
type Config struct {
	RateModel  core.RateModel
	ReserveBps uint64
}

// Handle handle rest api request
func Handle(
	pools core.PoolStore,
	productions core.ProductionStore,
	positions core.PositionStore,
	events core.EventStore,
	cfg Config,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pools", listPools(pools, cfg))
	router.Get("/pools/{asset_id}", findPool(pools, cfg))
	router.Get("/productions", listProductions(productions))
	router.Get("/productions/{id}", findProduction(productions))
	router.Get("/positions", listPositions(positions, productions, pools))
	router.Get("/positions/{id}", findPosition(positions, productions, pools))
	router.Get("/events", listEvents(events))

	return router
}
