// Package relay implements the request orchestration between the HTTP
// surface and the upstream providers: validation, source-language
// resolution, the single-fallback translation path, and the transcribe
// flow with its guaranteed temp-file cleanup.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/localenlp/relay/internal/cache"
	"github.com/localenlp/relay/internal/provider"
	"github.com/localenlp/relay/internal/stt"
	"github.com/localenlp/relay/internal/translation"
	"github.com/localenlp/relay/internal/upload"
)

// Provider labels reported back to the caller.
const (
	ProviderPrimary  = "primary"
	ProviderFallback = "fallback"
)

// SourceAuto asks the relay to detect the source language.
const SourceAuto = "auto"

// Config holds the relay's behavioral defaults.
type Config struct {
	// DetectDefaultLang is used when auto-detection fails.
	DetectDefaultLang string
	// STTDefaultLang is assumed for transcripts when the provider does not
	// report a language.
	STTDefaultLang string
	// SupportedLangs, when non-empty, whitelists the language codes accepted
	// as translation targets and explicit sources.
	SupportedLangs []string
	// MaxTextLen truncates oversized inputs before they reach an upstream.
	// Zero disables truncation.
	MaxTextLen int
}

// Service drives translate and transcribe requests end-to-end. Each request
// is independent; the Service holds no per-request state.
type Service struct {
	primary     translation.Translator
	fallback    translation.Translator // nil when no secondary is configured
	detector    translation.Detector
	transcriber stt.Transcriber
	uploads     *upload.Store
	results     *cache.Cache // nil disables caching
	cfg         Config
	supported   map[string]bool
}

// New creates a Service. fallback and results may be nil.
func New(
	primary translation.Translator,
	fallback translation.Translator,
	detector translation.Detector,
	transcriber stt.Transcriber,
	uploads *upload.Store,
	results *cache.Cache,
	cfg Config,
) *Service {
	if cfg.DetectDefaultLang == "" {
		cfg.DetectDefaultLang = "en"
	}
	if cfg.STTDefaultLang == "" {
		cfg.STTDefaultLang = "en"
	}
	var supported map[string]bool
	if len(cfg.SupportedLangs) > 0 {
		supported = make(map[string]bool, len(cfg.SupportedLangs))
		for _, l := range cfg.SupportedLangs {
			supported[l] = true
		}
	}
	return &Service{
		primary:     primary,
		fallback:    fallback,
		detector:    detector,
		transcriber: transcriber,
		uploads:     uploads,
		results:     results,
		cfg:         cfg,
		supported:   supported,
	}
}

// TranslateRequest is an inbound translation request. Source may be empty
// or "auto" to request detection; Target is required.
type TranslateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// TranslateResult is the normalized translation response.
type TranslateResult struct {
	TranslatedText string `json:"translatedText"`
	DetectedSource string `json:"detectedSource"`
	Provider       string `json:"provider"`
}

// Translate validates the request, resolves the source language, and runs
// the primary translator with at most one fallback attempt.
func (s *Service) Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, clientErrorf("text is required")
	}
	if req.Target == "" {
		return nil, clientErrorf("target language is required")
	}
	if s.supported != nil && !s.supported[req.Target] {
		return nil, clientErrorf("unsupported target language %q", req.Target)
	}
	if s.supported != nil && req.Source != "" && req.Source != SourceAuto && !s.supported[req.Source] {
		return nil, clientErrorf("unsupported source language %q", req.Source)
	}
	if s.cfg.MaxTextLen > 0 && len(text) > s.cfg.MaxTextLen {
		text = text[:s.cfg.MaxTextLen]
	}

	source := s.resolveSource(ctx, req.Source, text)

	key := cache.Key(text, source, req.Target)
	var cached TranslateResult
	if err := s.results.Get(ctx, key, &cached); err == nil {
		slog.Debug("translation cache hit", "source", source, "target", req.Target)
		return &cached, nil
	}

	translated, providerLabel, err := s.translateWithFallback(ctx, translation.Request{
		Text:   text,
		Source: source,
		Target: req.Target,
	})
	if err != nil {
		return nil, err
	}

	result := &TranslateResult{
		TranslatedText: translated,
		DetectedSource: source,
		Provider:       providerLabel,
	}
	if err := s.results.Set(ctx, key, result); err != nil {
		slog.Warn("translation cache write failed", "error", err)
	}
	return result, nil
}

// TranscribeRequest is an inbound transcription request. AudioPath points
// at the stored upload, which the relay owns and removes before returning.
type TranscribeRequest struct {
	AudioPath  string
	TargetLang string
}

// TranscribeResult is the normalized transcription response.
type TranscribeResult struct {
	Text           string `json:"text"`
	DetectedSource string `json:"detectedSource"`
}

// Transcribe runs speech-to-text on the stored audio and, when the target
// language differs from the transcript's, translates the transcript. A
// failed translate step degrades to the raw transcript instead of failing
// the request. The stored audio is removed on every exit path.
func (s *Service) Transcribe(ctx context.Context, req TranscribeRequest) (*TranscribeResult, error) {
	if req.AudioPath == "" {
		return nil, clientErrorf("audio file is required")
	}
	defer func() {
		if err := s.uploads.Remove(req.AudioPath); err != nil {
			slog.Warn("upload cleanup failed", "path", req.AudioPath, "error", err)
		}
	}()

	transcript, err := s.transcriber.Transcribe(ctx, req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	lang := transcript.Language
	if lang == "" {
		lang = s.cfg.STTDefaultLang
	}

	target := req.TargetLang
	if target == "" {
		target = s.cfg.STTDefaultLang
	}

	text := transcript.Text
	if target != lang {
		translated, _, err := s.translateWithFallback(ctx, translation.Request{
			Text:   text,
			Source: lang,
			Target: target,
		})
		if err != nil {
			// Transcription succeeded; return it untranslated rather than
			// failing the whole request.
			slog.Warn("transcript translation failed, returning raw transcript",
				"source", lang, "target", target, "error", err)
		} else {
			text = translated
		}
	}

	return &TranscribeResult{Text: text, DetectedSource: lang}, nil
}

// resolveSource turns "auto" (or absent) into a concrete language code.
// Detection failure falls back to the configured default instead of
// failing the request.
func (s *Service) resolveSource(ctx context.Context, source, text string) string {
	if source != "" && source != SourceAuto {
		return source
	}
	detected, err := s.detector.Detect(ctx, text)
	if err != nil {
		slog.Warn("language detection failed, using default",
			"default", s.cfg.DetectDefaultLang, "error", err)
		return s.cfg.DetectDefaultLang
	}
	return detected
}

// translateWithFallback calls the primary translator and, when the failure
// is retryable and a fallback is configured, tries the fallback once with
// the same inputs. No further retries.
func (s *Service) translateWithFallback(ctx context.Context, req translation.Request) (string, string, error) {
	res, err := s.primary.Translate(ctx, req)
	if err == nil {
		return res.TranslatedText, ProviderPrimary, nil
	}

	if s.fallback == nil || !provider.Retryable(err) {
		return "", "", fmt.Errorf("translation failed: %w", err)
	}

	slog.Warn("primary translator failed, trying fallback",
		"primary", s.primary.Name(),
		"fallback", s.fallback.Name(),
		"error", err)

	res, ferr := s.fallback.Translate(ctx, req)
	if ferr != nil {
		return "", "", fmt.Errorf("translation failed on both providers: %w", ferr)
	}
	return res.TranslatedText, ProviderFallback, nil
}
