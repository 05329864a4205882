package translation

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/localenlp/relay/internal/provider"
)

// OpenAIConfig holds configuration for the chat-completion translator.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // override for OpenAI-compatible gateways
	Model   string // default: "gpt-4o-mini"
}

// OpenAITranslator translates through an OpenAI chat model. It serves as
// the fallback when the primary translation service is down.
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAITranslator creates an OpenAITranslator with defaults applied.
func NewOpenAITranslator(cfg OpenAIConfig) *OpenAITranslator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAITranslator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (t *OpenAITranslator) Name() string { return "openai" }

func (t *OpenAITranslator) Translate(ctx context.Context, req Request) (*Result, error) {
	system := fmt.Sprintf(
		"You are a concise translation assistant. Translate the user's text to %q. Return only the translated text and nothing else.",
		req.Target,
	)
	if req.Source != "" && req.Source != "auto" {
		system = fmt.Sprintf(
			"You are a concise translation assistant. Translate the user's text from %q to %q. Return only the translated text and nothing else.",
			req.Source, req.Target,
		)
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
	})
	if err != nil {
		return nil, provider.Wrap(t.Name(), fmt.Errorf("chat completion: %w", err))
	}

	if len(resp.Choices) == 0 {
		return nil, provider.Errorf(provider.KindMalformed, t.Name(), "completion has no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, provider.Errorf(provider.KindMalformed, t.Name(), "completion returned empty translation")
	}
	return &Result{TranslatedText: text}, nil
}
