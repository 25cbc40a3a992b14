package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/partyroom/partyroom/internal/api/handler"
	"github.com/partyroom/partyroom/internal/api/middleware"
	"github.com/partyroom/partyroom/internal/services/registry"
	"github.com/partyroom/partyroom/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Registry       *registry.Service
	RoomController *room.Controller
	// AdminToken guards the player directory; empty disables it
	AdminToken string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.Registry, cfg.AdminToken)
	roomHandler := handler.NewRoomHandler(cfg.Registry, cfg.RoomController)
	eventsHandler := handler.NewEventsHandler(cfg.Registry, cfg.RoomController)

	identityMiddleware := middleware.Identity(cfg.Registry)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.HandleFunc("/healthz", handler.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Registration needs no identity; the directory uses its own bearer token
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)

	// Everything else requires a resolvable player token
	players := api.PathPrefix("/players").Subrouter()
	players.Use(identityMiddleware)
	players.HandleFunc("/me", playerHandler.Me).Methods(http.MethodGet)

	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(identityMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("", roomHandler.List).Methods(http.MethodGet)
	rooms.HandleFunc("/{room}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{room}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/start", roomHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{room}/events", eventsHandler.Stream).Methods(http.MethodGet)

	return r
}
