package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/c0sm0thecoder/scorecard-api/internal/middlewares"
	"github.com/c0sm0thecoder/scorecard-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	RoomService    services.RoomService
	PlayerService  services.PlayerService
	ScoreService   services.ScoreService
	Health         Pinger
	APIPrefix      string
	AllowedOrigins []string
}

func NewV1Router(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewares.LoggingMiddleware)
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.Health.Ping(ctx); err != nil {
				log.Printf("health check failed: %v", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	api := func(r chi.Router) {
		NewRoomController(cfg.RoomService).RegisterRoutes(r)
		NewPlayerController(cfg.PlayerService).RegisterRoutes(r)
		NewScoreController(cfg.ScoreService).RegisterRoutes(r)
	}
	if cfg.APIPrefix == "" || cfg.APIPrefix == "/" {
		api(router)
	} else {
		router.Route(cfg.APIPrefix, api)
	}

	return router
}
