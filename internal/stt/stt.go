// Package stt wraps the speech-to-text upstream.
package stt

import "context"

// Transcript holds the transcription result. Language is the
// provider-reported language and may be empty; callers apply their own
// default when it is.
type Transcript struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// Transcriber is the interface for speech-to-text backends.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Transcript, error)
	Name() string
}
