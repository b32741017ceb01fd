package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-med-reminder/internal/application/reminder"
	"github.com/go-med-reminder/internal/config"
	"github.com/go-med-reminder/internal/transport/http/handler"
	appmiddleware "github.com/go-med-reminder/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds the collaborators the router needs.
type Deps struct {
	Dispatcher reminder.Service
	Auth       appmiddleware.TriggerAuth
	Logger     *slog.Logger
}

// NewRouter builds and returns the trigger router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Api-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.Auth.Enabled() {
		authMw = appmiddleware.Auth(deps.Auth)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	triggerRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.Trigger.RatePerSec), cfg.Trigger.RateBurst)

	healthH := handler.NewHealthHandler()
	dispatchH := handler.NewDispatchHandler(deps.Dispatcher, deps.Logger)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(triggerRL.Limit)
			r.Use(authMw)

			r.Post("/dispatch/run", dispatchH.Run)
			r.Get("/dispatch/last", dispatchH.Last)
		})
	})

	return r
}
