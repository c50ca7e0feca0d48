package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"petcare-route-service/internal/api/handlers"
	"petcare-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware
// of concrete adapters. Model may be nil, in which case every
// optimization runs the time-window fallback.
func NewRouter(repo ports.VisitRepository, model ports.ModelClient, directions ports.DirectionsProvider) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	visitHandler := &handlers.VisitHandler{Repo: repo}
	routeHandler := &handlers.RouteHandler{
		Repo:       repo,
		Model:      model,
		Directions: directions,
	}

	r.Get("/health", handlers.Health)
	r.Get("/visits", visitHandler.List)
	r.Post("/visits", visitHandler.Create)
	r.Post("/routes/optimize", routeHandler.Optimize)

	return r
}
