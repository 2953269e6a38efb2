package app

import (
	"fmt"
	"os"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/schema"
)

// report prints the record to stdout and optionally persists it. File and
// PDF write failures are reported but never invalidate the in-memory result
// already shown to the user.
func (a *App) report(record schema.Record) error {
	out, err := schema.MarshalOrdered(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	fmt.Fprintln(a.stdout, string(out))

	if a.cfg.OutputPath != "" {
		if err := os.WriteFile(a.cfg.OutputPath, append(out, '\n'), 0o644); err != nil {
			a.log.Error().Err(err).Str("path", a.cfg.OutputPath).Msg("failed to write output file")
		} else {
			a.log.Info().Str("path", a.cfg.OutputPath).Msg("saved output")
		}
	}

	if a.cfg.OutputPDFPath != "" {
		if err := writeRecordPDF(record, a.cfg.OutputPDFPath); err != nil {
			a.log.Error().Err(err).Str("path", a.cfg.OutputPDFPath).Msg("failed to write PDF")
		} else {
			a.log.Info().Str("path", a.cfg.OutputPDFPath).Msg("saved PDF")
		}
	}
	return nil
}
