package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/llm"
	"github.com/vbchivu/ai-data-extractor-scrapper/internal/schema"
)

// ErrNotConfigured is returned before any network attempt when the endpoint
// base URL or model identifier is missing.
var ErrNotConfigured = errors.New("llm extractor not configured: endpoint base URL and model are required")

const systemPromptTemplate = "You are a data extraction assistant. Extract the requested fields from the " +
	"university program page text supplied by the user. Respond with exactly one JSON object and nothing " +
	"else: no prose, no markdown fences. The JSON schema is %s. " +
	"Use the literal string \"Not found\" for any field you cannot determine from the text."

const userPromptTemplate = "University name: %s\n\nPage text:\n%s"

// Matches the interior of a fenced code block, tolerating a language tag.
var fencedRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)```")

// Model delegates extraction to a chat-completion endpoint. It fails closed:
// a transport error or a response that is not a single JSON object yields an
// error, never a guessed record. Only key shape is validated; whether the
// field contents make sense is left to a human reviewer.
type Model struct {
	Client  llm.Client
	ModelID string
	// Endpoint is the base URL, used only for diagnostics.
	Endpoint      string
	JSONMode      bool
	KeepExtraKeys bool
	Logger        zerolog.Logger
}

func (m *Model) Extract(ctx context.Context, rawText, universityName string) (schema.Record, error) {
	if m.Client == nil || strings.TrimSpace(m.ModelID) == "" {
		return nil, ErrNotConfigured
	}

	system := fmt.Sprintf(systemPromptTemplate, schema.PromptJSON())
	user := fmt.Sprintf(userPromptTemplate, universityName, rawText)

	req := openai.ChatCompletionRequest{
		Model: m.ModelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		// Kept low for reproducibility. Zero would be dropped by the
		// client's omitempty marshalling, so the endpoint default would win.
		Temperature: 0.1,
		N:           1,
	}
	if m.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	m.Logger.Info().Str("model", m.ModelID).Int("text_len", len(rawText)).Msg("requesting model extraction")
	resp, err := m.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		m.Logger.Error().Err(err).Str("endpoint", m.Endpoint).Str("model", m.ModelID).Msg("chat completion failed; is the endpoint reachable?")
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	payload := jsonPayload(content)

	var parsed map[string]string
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		m.Logger.Error().Err(err).Str("content", content).Msg("model response is not a JSON object")
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	return schema.Normalize(parsed, universityName, m.KeepExtraKeys, m.Logger), nil
}

// jsonPayload returns the interior of the first fenced code block when the
// model wrapped its answer despite instructions, else the trimmed content.
func jsonPayload(content string) string {
	if m := fencedRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(content)
}
