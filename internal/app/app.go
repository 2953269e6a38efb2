package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/extract"
	"github.com/vbchivu/ai-data-extractor-scrapper/internal/extractor"
	"github.com/vbchivu/ai-data-extractor-scrapper/internal/fetch"
	"github.com/vbchivu/ai-data-extractor-scrapper/internal/llm"
)

// App wires the pipeline: fetch the page, reduce it to text, run the
// selected extraction strategy, report the record. A failure at any stage
// aborts the run; nothing is retried.
type App struct {
	cfg      Config
	log      zerolog.Logger
	fetcher  *fetch.Client
	strategy extractor.Extractor
	stdout   io.Writer
}

// New builds an App from cfg. ValidateConfig should have been called first;
// New still refuses an llm strategy with missing endpoint settings so that
// no network attempt can ever start unconfigured.
func New(cfg Config, logger zerolog.Logger) (*App, error) {
	kind, err := extractor.ParseKind(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    logger,
		stdout: os.Stdout,
	}
	a.fetcher = &fetch.Client{
		HTTPClient: newPageHTTPClient(cfg.FetchTimeout),
		UserAgent:  fetch.DefaultUserAgent,
		Timeout:    cfg.FetchTimeout,
	}

	switch kind {
	case extractor.KindHeuristic:
		a.strategy = &extractor.Heuristic{Logger: logger}
	case extractor.KindLLM:
		if strings.TrimSpace(cfg.LLMBaseURL) == "" || strings.TrimSpace(cfg.LLMModel) == "" {
			return nil, extractor.ErrNotConfigured
		}
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		transportCfg.BaseURL = cfg.LLMBaseURL
		client := openai.NewClientWithConfig(transportCfg)
		a.strategy = &extractor.Model{
			Client:        &llm.OpenAIProvider{Inner: client},
			ModelID:       cfg.LLMModel,
			Endpoint:      cfg.LLMBaseURL,
			JSONMode:      cfg.LLMJSONMode,
			KeepExtraKeys: cfg.LLMKeepExtraKeys,
			Logger:        logger,
		}
	}
	return a, nil
}

// Run executes the pipeline once. A nil error means the record was produced
// and reported; output-write problems are logged but do not fail the run.
func (a *App) Run(ctx context.Context) error {
	a.log.Info().
		Str("url", a.cfg.URL).
		Str("university", a.cfg.University).
		Str("extractor", a.cfg.Extractor).
		Msg("starting extraction pipeline")

	body, _, err := a.fetcher.Get(ctx, a.cfg.URL)
	if err != nil {
		a.log.Error().Err(err).Str("url", a.cfg.URL).Msg("scraping failed, aborting pipeline")
		return fmt.Errorf("fetch %s: %w", a.cfg.URL, err)
	}

	doc, err := extract.FromHTML(body, a.cfg.URL)
	if err != nil {
		a.log.Error().Err(err).Str("url", a.cfg.URL).Msg("page yielded no text, aborting pipeline")
		return fmt.Errorf("extract page text: %w", err)
	}
	a.log.Info().Int("chars", len(doc.Text)).Str("title", doc.Title).Msg("scraping successful")

	record, err := a.strategy.Extract(ctx, doc.Text, a.cfg.University)
	if err != nil {
		a.log.Error().Err(err).Str("extractor", a.cfg.Extractor).Msg("extraction failed, aborting pipeline")
		return fmt.Errorf("extract fields: %w", err)
	}

	return a.report(record)
}
