package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/localenlp/relay/internal/provider"
)

// LibreTranslateConfig holds configuration for a LibreTranslate-compatible
// endpoint.
type LibreTranslateConfig struct {
	BaseURL string        // default: "https://libretranslate.de"
	APIKey  string        // optional, most public instances take none
	Timeout time.Duration // per-call bound, default 10s
}

// LibreTranslate talks to a LibreTranslate-compatible API. It covers both
// the translate and detect capabilities.
type LibreTranslate struct {
	cfg        LibreTranslateConfig
	httpClient *http.Client
}

// NewLibreTranslate creates a LibreTranslate adapter with defaults applied.
func NewLibreTranslate(cfg LibreTranslateConfig) *LibreTranslate {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://libretranslate.de"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &LibreTranslate{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (l *LibreTranslate) Name() string { return "libretranslate" }

// Translate sends a translate call and returns the translated text.
func (l *LibreTranslate) Translate(ctx context.Context, req Request) (*Result, error) {
	payload := map[string]string{
		"q":      req.Text,
		"source": req.Source,
		"target": req.Target,
		"format": "text",
	}
	if l.cfg.APIKey != "" {
		payload["api_key"] = l.cfg.APIKey
	}

	var resp struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := l.post(ctx, "/translate", payload, &resp); err != nil {
		return nil, err
	}
	if resp.TranslatedText == "" {
		return nil, provider.Errorf(provider.KindMalformed, l.Name(), "translate returned empty text")
	}
	return &Result{TranslatedText: resp.TranslatedText}, nil
}

// Detect identifies the language of text, returning the highest-confidence
// candidate.
func (l *LibreTranslate) Detect(ctx context.Context, text string) (string, error) {
	payload := map[string]string{"q": text}
	if l.cfg.APIKey != "" {
		payload["api_key"] = l.cfg.APIKey
	}

	var resp []struct {
		Confidence float64 `json:"confidence"`
		Language   string  `json:"language"`
	}
	if err := l.post(ctx, "/detect", payload, &resp); err != nil {
		return "", err
	}
	if len(resp) == 0 || resp[0].Language == "" {
		return "", provider.Errorf(provider.KindMalformed, l.Name(), "detect returned no candidates")
	}
	best := resp[0]
	for _, c := range resp[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best.Language, nil
}

// post performs a JSON POST and decodes the response into out, classifying
// everything that is not a well-formed 200 JSON body.
func (l *LibreTranslate) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := l.httpClient.Do(httpReq)
	if err != nil {
		return provider.Wrap(l.Name(), err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return provider.Errorf(provider.KindUnavailable, l.Name(), "read response: %v", err)
	}

	// Public instances serve an HTML error page when they are down. That
	// must surface as a malformed response, never as data.
	if looksLikeHTML(raw) {
		return provider.Errorf(provider.KindMalformed, l.Name(), "%s returned HTML (status %d)", path, httpResp.StatusCode)
	}

	switch {
	case httpResp.StatusCode == http.StatusOK:
	case httpResp.StatusCode >= 400 && httpResp.StatusCode < 500:
		return provider.Errorf(provider.KindRejectedInput, l.Name(), "%s rejected request: status %d: %s", path, httpResp.StatusCode, firstLine(raw))
	default:
		return provider.Errorf(provider.KindUnavailable, l.Name(), "%s returned status %d", path, httpResp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return provider.Errorf(provider.KindMalformed, l.Name(), "decode %s response: %v", path, err)
	}
	return nil
}

func looksLikeHTML(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "<")
}

func firstLine(body []byte) string {
	s := strings.TrimSpace(string(body))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
