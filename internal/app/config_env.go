package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values (flags) take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.LLMBaseURL == "" {
		// Support both LLM_BASE_URL and OLLAMA_BASE_URL; prefer LLM_BASE_URL
		v := os.Getenv("LLM_BASE_URL")
		if v == "" {
			v = os.Getenv("OLLAMA_BASE_URL")
		}
		cfg.LLMBaseURL = v
	}
	if cfg.LLMModel == "" {
		v := os.Getenv("LLM_MODEL")
		if v == "" {
			v = os.Getenv("OLLAMA_MODEL")
		}
		cfg.LLMModel = v
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}

	if cfg.FetchTimeout == 0 {
		if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.FetchTimeout = d
			}
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.LLMJSONMode, "LLM_JSON_MODE")
	setBool(&cfg.LLMKeepExtraKeys, "LLM_KEEP_EXTRA_KEYS")
	setBool(&cfg.Verbose, "VERBOSE")
}
