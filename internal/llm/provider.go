package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal surface the extraction code needs from a chat model.
// It mirrors the CreateChatCompletion method so any OpenAI-compatible server
// (a local Ollama instance, a stub, or the real API) can sit behind it.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}
