package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters except for the request-scoped travel memo.
func NewRouter(repo ports.VenueRepository, provider ports.TravelProvider, cache ports.TravelCache) http.Handler {
	r := mux.NewRouter()

	venueHandler := &handlers.VenueHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:     repo,
		Provider: provider,
		Cache:    cache,
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/venues", venueHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/plans", planHandler.Plan).Methods(http.MethodPost)

	return requestIDMiddleware(loggingMiddleware(r))
}
