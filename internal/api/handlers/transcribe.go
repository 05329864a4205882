package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/localenlp/relay/internal/relay"
	"github.com/localenlp/relay/internal/upload"
)

type TranscribeHandler struct {
	svc      RelayService
	uploads  *upload.Store
	maxBytes int64
}

func NewTranscribeHandler(svc RelayService, uploads *upload.Store, maxBytes int64) *TranscribeHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &TranscribeHandler{svc: svc, uploads: uploads, maxBytes: maxBytes}
}

// Transcribe handles POST /api/transcribe. The audio arrives as the
// multipart field "file"; targetLang is an optional form value. The file is
// stored only after validation passes, and the relay owns its removal from
// there on.
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, "audio file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required (field name: file)")
		return
	}
	defer file.Close()

	if !isAudio(header.Header.Get("Content-Type")) {
		writeError(w, http.StatusBadRequest, "unsupported file type, audio only")
		return
	}

	path, err := h.uploads.Save(file, header.Filename)
	if err != nil {
		writeRelayError(w, err, "transcription failed")
		return
	}

	targetLang := r.FormValue("targetLang")
	if targetLang == "" {
		targetLang = "en"
	}

	result, err := h.svc.Transcribe(r.Context(), relay.TranscribeRequest{
		AudioPath:  path,
		TargetLang: targetLang,
	})
	if err != nil {
		writeRelayError(w, err, "transcription failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func isAudio(contentType string) bool {
	// video/mp4 is accepted because browsers label some audio recordings
	// with it.
	return strings.HasPrefix(contentType, "audio/") || contentType == "video/mp4"
}
