// Package api wires the relay's HTTP surface.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/localenlp/relay/internal/api/handlers"
	"github.com/localenlp/relay/internal/api/middleware"
	"github.com/localenlp/relay/internal/config"
	"github.com/localenlp/relay/internal/translation"
	"github.com/localenlp/relay/internal/upload"
)

type Router struct {
	mux      *chi.Mux
	svc      handlers.RelayService
	uploads  *upload.Store
	detector translation.Detector
	redis    *redis.Client
	cfg      *config.Config
}

func NewRouter(svc handlers.RelayService, uploads *upload.Store, detector translation.Detector, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:      chi.NewRouter(),
		svc:      svc,
		uploads:  uploads,
		detector: detector,
		redis:    rdb,
		cfg:      cfg,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	rl := middleware.NewRateLimiter(rt.cfg.RateLimit.RPS, rt.cfg.RateLimit.Burst)
	r.Use(rl.Limit)

	health := handlers.NewHealthHandler(rt.detector, rt.cfg.OpenAI.APIKey != "" || rt.cfg.OpenAI.WhisperBaseURL != "", rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	translateH := handlers.NewTranslateHandler(rt.svc)
	transcribeH := handlers.NewTranscribeHandler(rt.svc, rt.uploads, rt.cfg.Upload.MaxBytes)

	r.Route("/api", func(r chi.Router) {
		r.Post("/translate", translateH.Translate)
		r.Post("/transcribe", transcribeH.Transcribe)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}
