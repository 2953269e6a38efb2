package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/extractor"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags and env vars.
type FileConfig struct {
	URL        string `yaml:"url" json:"url"`
	University string `yaml:"university" json:"university"`
	Extractor  string `yaml:"extractor" json:"extractor"`
	Output     string `yaml:"output" json:"output"`
	OutputPDF  string `yaml:"outputPDF" json:"outputPDF"`

	LLM struct {
		BaseURL       string `yaml:"base" json:"base"`
		Model         string `yaml:"model" json:"model"`
		APIKey        string `yaml:"key" json:"key"`
		JSONMode      bool   `yaml:"jsonMode" json:"jsonMode"`
		KeepExtraKeys bool   `yaml:"keepExtraKeys" json:"keepExtraKeys"`
	} `yaml:"llm" json:"llm"`

	// Duration string, e.g. "15s".
	Timeout string `yaml:"timeout" json:"timeout"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields that
// are currently unset. Flags and env should already have been applied; the
// file supplies defaults without overriding explicit settings.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.URL == "" && fc.URL != "" {
		cfg.URL = fc.URL
	}
	if cfg.University == "" && fc.University != "" {
		cfg.University = fc.University
	}
	if cfg.Extractor == "" && fc.Extractor != "" {
		cfg.Extractor = fc.Extractor
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.OutputPDFPath == "" && fc.OutputPDF != "" {
		cfg.OutputPDFPath = fc.OutputPDF
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if !cfg.LLMJSONMode && fc.LLM.JSONMode {
		cfg.LLMJSONMode = true
	}
	if !cfg.LLMKeepExtraKeys && fc.LLM.KeepExtraKeys {
		cfg.LLMKeepExtraKeys = true
	}
	if cfg.FetchTimeout == 0 && fc.Timeout != "" {
		if d, err := time.ParseDuration(fc.Timeout); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
// LLM settings are checked here, before any network attempt is made.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return errors.New("config: url is required")
	}
	kind, err := extractor.ParseKind(cfg.Extractor)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if kind == extractor.KindLLM {
		if strings.TrimSpace(cfg.LLMBaseURL) == "" {
			return errors.New("config: llm.base is required for the llm extractor (or set LLM_BASE_URL)")
		}
		if strings.TrimSpace(cfg.LLMModel) == "" {
			return errors.New("config: llm.model is required for the llm extractor (or set LLM_MODEL)")
		}
	}
	if cfg.FetchTimeout < 0 {
		return errors.New("config: negative timeout is not allowed")
	}
	return nil
}
