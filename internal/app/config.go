package app

import "time"

// Config holds runtime configuration for a single pipeline run.
type Config struct {
	// Target
	URL        string
	University string

	// Strategy selector: "heuristic" or "llm".
	Extractor string

	// Output
	OutputPath    string
	OutputPDFPath string

	// LLM (required only for the llm extractor)
	LLMBaseURL       string
	LLMModel         string
	LLMAPIKey        string
	LLMJSONMode      bool
	LLMKeepExtraKeys bool

	// Behavior
	FetchTimeout time.Duration
	Verbose      bool
}
