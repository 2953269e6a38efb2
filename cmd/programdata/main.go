package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		pageURL       string
		university    string
		extractorName string
		outputPath    string
		outputPDFPath string
		llmBaseURL    string
		llmModel      string
		llmKey        string
		llmJSONMode   bool
		llmKeepExtra  bool
		fetchTimeout  time.Duration
		configPath    string
		envPath       string
		verbose       bool
	)

	flag.StringVar(&pageURL, "url", "", "Full URL of the university program page to scrape")
	flag.StringVar(&university, "university", "University specified by user", "Name of the university")
	flag.StringVar(&extractorName, "extractor", "heuristic", "Extraction strategy: \"heuristic\" (offline) or \"llm\" (requires a running OpenAI-compatible server)")
	flag.StringVar(&outputPath, "output", "", "Optional file path to save the extracted JSON record")
	flag.StringVar(&outputPDFPath, "output.pdf", "", "Optional file path to save a PDF rendering of the record")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL, e.g. http://localhost:11434/v1 (env LLM_BASE_URL)")
	flag.StringVar(&llmModel, "llm.model", "", "Model name (env LLM_MODEL)")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the OpenAI-compatible server (env LLM_API_KEY)")
	flag.BoolVar(&llmJSONMode, "llm.jsonMode", false, "Request a JSON-only response mode from the endpoint")
	flag.BoolVar(&llmKeepExtra, "llm.keepExtraKeys", false, "Retain keys the model returns beyond the target schema instead of dropping them")
	flag.DurationVar(&fetchTimeout, "timeout", 0, "Page fetch timeout (default 15s)")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file supplying defaults for unset flags")
	flag.StringVar(&envPath, "env", "", "Optional dotenv file loaded before env resolution")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if err := app.LoadEnvFiles(envPath); err != nil {
		log.Error().Err(err).Str("path", envPath).Msg("failed to load env file")
		os.Exit(1)
	}

	cfg := app.Config{
		URL:              pageURL,
		University:       university,
		Extractor:        extractorName,
		OutputPath:       outputPath,
		OutputPDFPath:    outputPDFPath,
		LLMBaseURL:       llmBaseURL,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		LLMJSONMode:      llmJSONMode,
		LLMKeepExtraKeys: llmKeepExtra,
		FetchTimeout:     fetchTimeout,
		Verbose:          verbose,
	}

	app.ApplyEnvToConfig(&cfg)

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("failed to load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("extraction pipeline failed")
		fmt.Fprintln(os.Stderr, "--- Extraction Pipeline Failed ---")
		os.Exit(2)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	return a.Run(ctx)
}
