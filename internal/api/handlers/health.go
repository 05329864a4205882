package handlers

import (
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/localenlp/relay/internal/translation"
)

type HealthHandler struct {
	detector         translation.Detector
	openaiConfigured bool
	redis            *redis.Client
}

func NewHealthHandler(detector translation.Detector, openaiConfigured bool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{detector: detector, openaiConfigured: openaiConfigured, redis: rdb}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz probes the upstreams: a free detect call against the translation
// service, key presence for the speech-to-text side, and a redis ping when
// the cache is configured.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}

	if h.detector != nil {
		if _, err := h.detector.Detect(r.Context(), "hello"); err != nil {
			checks["libretranslate"] = "unhealthy: " + err.Error()
		} else {
			checks["libretranslate"] = "ok"
		}
	}

	if h.openaiConfigured {
		checks["openai"] = "ok"
	} else {
		checks["openai"] = "unhealthy: missing API key"
	}

	if h.redis != nil {
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, status, map[string]any{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
