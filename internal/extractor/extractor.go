package extractor

import (
	"context"
	"fmt"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/schema"
)

// Extractor converts raw page text plus a caller-supplied university name
// into a fixed-schema record. Implementations decide how: offline keyword
// heuristics or a chat-completion model.
type Extractor interface {
	Extract(ctx context.Context, rawText, universityName string) (schema.Record, error)
}

// Kind selects an extraction strategy.
type Kind string

const (
	KindHeuristic Kind = "heuristic"
	KindLLM       Kind = "llm"
)

// ParseKind resolves a selector value to a Kind. "mock" and "ollama" are
// accepted as aliases left over from earlier versions of the tool.
func ParseKind(s string) (Kind, error) {
	switch s {
	case string(KindHeuristic), "mock":
		return KindHeuristic, nil
	case string(KindLLM), "ollama":
		return KindLLM, nil
	default:
		return "", fmt.Errorf("unknown extractor %q (want %q or %q)", s, KindHeuristic, KindLLM)
	}
}
