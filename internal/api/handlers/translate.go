package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/localenlp/relay/internal/relay"
)

// RelayService is the slice of the relay the HTTP handlers need.
type RelayService interface {
	Translate(ctx context.Context, req relay.TranslateRequest) (*relay.TranslateResult, error)
	Transcribe(ctx context.Context, req relay.TranscribeRequest) (*relay.TranscribeResult, error)
}

type TranslateHandler struct {
	svc RelayService
}

func NewTranslateHandler(svc RelayService) *TranslateHandler {
	return &TranslateHandler{svc: svc}
}

// Translate handles POST /api/translate.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req relay.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Translate(r.Context(), req)
	if err != nil {
		writeRelayError(w, err, "translation failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
