package stt

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/localenlp/relay/internal/provider"
)

// WhisperConfig holds configuration for the Whisper backend.
type WhisperConfig struct {
	APIKey  string
	BaseURL string        // override for whisper.cpp or other compatible servers
	Model   string        // default: "whisper-1"
	Timeout time.Duration // per-call bound, default 60s
}

// Whisper transcribes audio through OpenAI's Whisper API or a compatible
// endpoint.
type Whisper struct {
	client *openai.Client
	model  string
}

// NewWhisper creates a Whisper transcriber with defaults applied.
func NewWhisper(cfg WhisperConfig) *Whisper {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient.Timeout = cfg.Timeout
	}
	return &Whisper{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (w *Whisper) Name() string { return "whisper" }

// Transcribe sends the stored audio file to the Whisper API. The verbose
// response format is requested so the detected language comes back when the
// provider knows it.
func (w *Whisper) Transcribe(ctx context.Context, audioPath string) (*Transcript, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, provider.Wrap(w.Name(), fmt.Errorf("create transcription: %w", err))
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, provider.Errorf(provider.KindMalformed, w.Name(), "transcription returned no text")
	}
	return &Transcript{Text: text, Language: resp.Language}, nil
}
