package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/localenlp/relay/internal/provider"
	"github.com/localenlp/relay/internal/relay"
	"github.com/localenlp/relay/internal/translation"
	"github.com/localenlp/relay/internal/upload"
)

type fakeRelay struct {
	translateResult  *relay.TranslateResult
	translateErr     error
	transcribeResult *relay.TranscribeResult
	transcribeErr    error
	lastTranscribe   relay.TranscribeRequest
}

func (f *fakeRelay) Translate(ctx context.Context, req relay.TranslateRequest) (*relay.TranslateResult, error) {
	if f.translateErr != nil {
		return nil, f.translateErr
	}
	return f.translateResult, nil
}

func (f *fakeRelay) Transcribe(ctx context.Context, req relay.TranscribeRequest) (*relay.TranscribeResult, error) {
	f.lastTranscribe = req
	if f.transcribeErr != nil {
		return nil, f.transcribeErr
	}
	return f.transcribeResult, nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestTranslateSuccess(t *testing.T) {
	h := NewTranslateHandler(&fakeRelay{translateResult: &relay.TranslateResult{
		TranslatedText: "Habari",
		DetectedSource: "en",
		Provider:       relay.ProviderPrimary,
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/translate",
		strings.NewReader(`{"text":"Hello","source":"auto","target":"sw"}`))
	rec := httptest.NewRecorder()
	h.Translate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["translatedText"] != "Habari" || body["detectedSource"] != "en" || body["provider"] != "primary" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestTranslateInvalidBody(t *testing.T) {
	h := NewTranslateHandler(&fakeRelay{})

	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.Translate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTranslateErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"client error", relay.NewClientError("text is required"), http.StatusBadRequest},
		{"upstream unavailable", provider.Errorf(provider.KindUnavailable, "libretranslate", "down"), http.StatusBadGateway},
		{"malformed upstream", provider.Errorf(provider.KindMalformed, "libretranslate", "html page"), http.StatusBadGateway},
		{"rejected input", provider.Errorf(provider.KindRejectedInput, "libretranslate", "bad pair"), http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewTranslateHandler(&fakeRelay{translateErr: tc.err})
			req := httptest.NewRequest(http.MethodPost, "/api/translate",
				strings.NewReader(`{"text":"Hello","target":"fr"}`))
			rec := httptest.NewRecorder()
			h.Translate(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if body := decodeBody(t, rec); body["error"] == nil || body["error"] == "" {
				t.Error("error body missing")
			}
		})
	}
}

func TestInternalErrorDetailNotLeaked(t *testing.T) {
	h := NewTranslateHandler(&fakeRelay{translateErr: errors.New("pq: connection string secret")})
	req := httptest.NewRequest(http.MethodPost, "/api/translate",
		strings.NewReader(`{"text":"Hello","target":"fr"}`))
	rec := httptest.NewRecorder()
	h.Translate(rec, req)

	if strings.Contains(rec.Body.String(), "secret") {
		t.Errorf("internal detail leaked to caller: %s", rec.Body.String())
	}
}

func multipartAudio(t *testing.T, field, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	fw, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	fw.Write([]byte("fake audio bytes"))
	mw.WriteField("targetLang", "fr")
	mw.Close()
	return &body, mw.FormDataContentType()
}

func newTranscribeHandler(t *testing.T, svc RelayService) *TranscribeHandler {
	t.Helper()
	store, err := upload.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewTranscribeHandler(svc, store, 1<<20)
}

func TestTranscribeSuccess(t *testing.T) {
	fake := &fakeRelay{transcribeResult: &relay.TranscribeResult{Text: "bonjour", DetectedSource: "en"}}
	h := newTranscribeHandler(t, fake)

	body, contentType := multipartAudio(t, "file", "clip.mp3", "audio/mpeg")
	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Transcribe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	got := decodeBody(t, rec)
	if got["text"] != "bonjour" {
		t.Errorf("text = %v", got["text"])
	}
	if fake.lastTranscribe.TargetLang != "fr" {
		t.Errorf("targetLang = %q, want fr", fake.lastTranscribe.TargetLang)
	}
	if fake.lastTranscribe.AudioPath == "" {
		t.Error("audio path not passed to relay")
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	h := newTranscribeHandler(t, &fakeRelay{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("targetLang", "fr")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Transcribe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	// No upload may be left behind when validation fails.
	assertUploadsEmpty(t, h)
}

func TestTranscribeRejectsNonAudio(t *testing.T) {
	h := newTranscribeHandler(t, &fakeRelay{})

	body, contentType := multipartAudio(t, "file", "notes.txt", "text/plain")
	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Transcribe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	assertUploadsEmpty(t, h)
}

func TestTranscribeUpstreamFailure(t *testing.T) {
	fake := &fakeRelay{transcribeErr: provider.Errorf(provider.KindUnavailable, "whisper", "down")}
	h := newTranscribeHandler(t, fake)

	body, contentType := multipartAudio(t, "file", "clip.mp3", "audio/mpeg")
	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Transcribe(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func assertUploadsEmpty(t *testing.T, h *TranscribeHandler) {
	t.Helper()
	entries, err := os.ReadDir(h.uploads.Dir())
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d leftover files", len(entries))
	}
}

var _ translation.Detector = (*stubDetector)(nil)

type stubDetector struct{ err error }

func (s *stubDetector) Detect(ctx context.Context, text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "en", nil
}

func TestReadyzDegradedWhenDetectorDown(t *testing.T) {
	h := NewHealthHandler(&stubDetector{err: errors.New("refused")}, true, nil)
	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestReadyzHealthy(t *testing.T) {
	h := NewHealthHandler(&stubDetector{}, true, nil)
	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
}
