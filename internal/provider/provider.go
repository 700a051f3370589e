// Package provider defines the contracts for the external model provider
// and the OpenAI-backed implementation. Exactly one provider contract is
// modeled; stubs in tests satisfy the same interfaces.
package provider

import "context"

// Transcriber converts an audio file into text.
type Transcriber interface {
	// Transcribe sends the audio file at audioPath for transcription and
	// returns the transcript text. Single attempt, no retry.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Paraphraser rewrites text for clarity and brevity while preserving the
// original meaning and language.
type Paraphraser interface {
	// Paraphrase sends text for paraphrasing and returns the rewritten
	// text. Single attempt, no retry.
	Paraphrase(ctx context.Context, text string) (string, error)
}
