// Package translation defines the translation provider contract and the
// adapters for the upstream services the relay forwards to.
package translation

import "context"

// Request is a normalized translation request. Source is a concrete
// language code by the time an adapter sees it; auto-detection happens
// above the adapter layer.
type Request struct {
	Text   string
	Source string
	Target string
}

// Result is a normalized translation result.
type Result struct {
	TranslatedText string
}

// Translator translates text between two languages.
type Translator interface {
	Name() string
	Translate(ctx context.Context, req Request) (*Result, error)
}

// Detector identifies the language of a piece of text.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}
