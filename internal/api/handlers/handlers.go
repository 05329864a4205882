package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/localenlp/relay/internal/provider"
	"github.com/localenlp/relay/internal/relay"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRelayError maps a relay failure onto the response taxonomy: 400 for
// invalid input, 502 for upstream failure after fallback exhaustion, 500
// for anything unexpected. Upstream and internal details go to the log,
// not the caller.
func writeRelayError(w http.ResponseWriter, err error, fallbackMsg string) {
	var ce *relay.ClientError
	if errors.As(err, &ce) {
		writeError(w, http.StatusBadRequest, ce.Error())
		return
	}

	switch provider.KindOf(err) {
	case provider.KindRejectedInput:
		slog.Warn("upstream rejected input", "error", err)
		writeError(w, http.StatusBadRequest, fallbackMsg)
	case provider.KindUnavailable, provider.KindMalformed:
		slog.Error("upstream failure", "error", err)
		writeError(w, http.StatusBadGateway, fallbackMsg)
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
