package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/barefootbuddy/backend/internal/handler/chat"
	festivalhandler "github.com/barefootbuddy/backend/internal/handler/festival"
	locationhandler "github.com/barefootbuddy/backend/internal/handler/location"
	systemhandler "github.com/barefootbuddy/backend/internal/handler/system"
	weatherhandler "github.com/barefootbuddy/backend/internal/handler/weather"
	wshandler "github.com/barefootbuddy/backend/internal/handler/ws"
	middlewarePkg "github.com/barefootbuddy/backend/internal/middleware"
	"github.com/barefootbuddy/backend/internal/realtime"
	locationservice "github.com/barefootbuddy/backend/internal/service/location"
	weatherservice "github.com/barefootbuddy/backend/internal/service/weather"
	"github.com/barefootbuddy/backend/internal/store/postgres"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(
	chatSvc chathandler.Service,
	locationSvc *locationservice.Service,
	weatherSvc *weatherservice.Service,
	store *postgres.Store,
	hub *realtime.Hub,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		systemhandler.New(store).RegisterRoutes(api)
		chathandler.New(chatSvc).RegisterRoutes(api)
		weatherhandler.New(weatherSvc).RegisterRoutes(api)
		locationhandler.New(locationSvc, hub).RegisterRoutes(api)
		festivalhandler.New(store).RegisterRoutes(api)
		wshandler.New(hub).RegisterRoutes(api)
	})

	return r
}
