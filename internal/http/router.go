package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/betterscore/scoreboard-service/internal/config"
	"github.com/betterscore/scoreboard-service/internal/http/handlers"
	"github.com/betterscore/scoreboard-service/internal/http/middleware"
	"github.com/betterscore/scoreboard-service/internal/metrics"
)

// RouterConfig carries the middleware settings and optional extra endpoints.
type RouterConfig struct {
	Logger  *slog.Logger
	Metrics *metrics.Recorder
	HTTP    config.HTTPConfig
	// Stream serves /ws when set.
	Stream nethttp.Handler
}

// NewRouter registers the control API on a chi router.
func NewRouter(h *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	router := chi.NewRouter()

	router.NotFound(h.NotFound)
	router.MethodNotAllowed(h.MethodNotAllowed)

	router.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	router.Use(middleware.RecoverPanic(cfg.Logger))
	router.Use(middleware.CORS(cfg.HTTP.TrustedOrigins))

	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)

	// Only the read surface is limited; control calls always answer OK.
	router.Group(func(r chi.Router) {
		if cfg.HTTP.Limiter.Enabled {
			r.Use(middleware.RateLimit(cfg.HTTP.Limiter.RPS, cfg.HTTP.Limiter.Burst))
		}
		r.Get("/state", h.State)
		if cfg.Stream != nil {
			r.Method(nethttp.MethodGet, "/ws", cfg.Stream)
		}
	})

	router.Route("/score", func(r chi.Router) {
		r.Post("/home", h.ScoreHome)
		r.Post("/away", h.ScoreAway)
		r.Post("/reset", h.ResetScore)
	})
	router.Route("/period", func(r chi.Router) {
		r.Post("/next", h.NextPeriod)
		r.Post("/reset", h.ResetPeriod)
	})
	router.Route("/pp", func(r chi.Router) {
		r.Post("/home", h.PowerPlayHome)
		r.Post("/away", h.PowerPlayAway)
		r.Post("/clear", h.ClearPowerPlay)
	})
	router.Route("/clock", func(r chi.Router) {
		r.Post("/start", h.StartClock)
		r.Post("/stop", h.StopClock)
		r.Post("/reset", h.ResetClock)
	})
	router.Route("/set", func(r chi.Router) {
		r.Post("/score", h.SetScore)
		r.Post("/period", h.SetPeriod)
		r.Post("/time", h.SetTime)
		r.Post("/pp/time", h.SetPowerPlayTime)
	})

	return router
}
