package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"voicenote/internal/config"
)

// paraphraseSystemPrompt is the fixed instruction for the paraphrase use
// case. The model must not translate.
const paraphraseSystemPrompt = "You are a helpful assistant that paraphrases text to make it more " +
	"clear and concise while preserving the original meaning and the original language. Do not translate."

// OpenAI implements Transcriber and Paraphraser against the OpenAI API (or
// any API-compatible endpoint via base_url). Every call is bounded by the
// configured timeout; a timeout surfaces as an ordinary call error.
type OpenAI struct {
	client          *openai.Client
	transcribeModel string
	paraphraseModel string
}

// NewOpenAI creates a provider client from config.
func NewOpenAI(cfg config.ProviderConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAI{
		client:          openai.NewClientWithConfig(clientCfg),
		transcribeModel: cfg.TranscribeModel,
		paraphraseModel: cfg.ParaphraseModel,
	}
}

// Transcribe sends the audio file to the speech-to-text endpoint.
func (p *OpenAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.transcribeModel,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("create transcription: %w", err)
	}
	return resp.Text, nil
}

// Paraphrase sends the text to the chat-completion endpoint with the fixed
// paraphrase instruction.
func (p *OpenAI) Paraphrase(ctx context.Context, text string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.paraphraseModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: paraphraseSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Please paraphrase this text: " + text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
