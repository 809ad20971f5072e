package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/shopsignal/engagement/internal/config"
	"github.com/shopsignal/engagement/internal/metrics"
	"github.com/shopsignal/engagement/internal/transport/http/handlers"
	appmw "github.com/shopsignal/engagement/internal/transport/http/middleware"
)

func New(
	h *handlers.EngagementHandler,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(appmw.RequestID)
	r.Use(appmw.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", z.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/engagement/v1", func(r chi.Router) {
		r.Post("/events", h.RecordEvent)
		r.Get("/leads", h.Leads)
		r.Get("/leaderboard", h.Leaderboard)
		r.Get("/leaderboard/top", h.MostEngaged)
		r.Post("/hooks/order", h.OrderHook)
		r.Get("/campaigns", h.Campaigns)
	})

	return r
}
