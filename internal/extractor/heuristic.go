package extractor

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/schema"
)

// Placeholder values emitted on a positive keyword match. These are
// deliberately templated rather than quoted from the page: the heuristic
// only claims plausibility, so every value carries a verify caveat.
const (
	programPrefix       = "Mock Program: "
	programInfoStudies  = "Mock Program: Information Studies"
	programFallback     = "Mock Program: Check official page title"
	feePlaceholder      = "Mock Fee: Approx. €XX,XXX / year (Non-EU). Verify on official page."
	deadlinePlaceholder = "Mock Deadline: e.g., 1 March (Non-EU) / 1 May (EU). Verify on official page."
	reqPlaceholder      = "Mock Requirements: Typically Bachelor's degree + English proficiency (e.g., IELTS/TOEFL). Check specifics on official page."
)

var programNameRe = regexp.MustCompile(`master(?:.s)?\s*(?:programme|program)?\s*in\s*[\w\s]+`)

var (
	feeKeywords      = []string{"tuition", "fee", "cost", "€", "eur", "usd", "$", "gbp", "£"}
	deadlineKeywords = []string{"deadline", "apply by", "application period", "closes on"}
	monthNames       = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	reqKeywords      = []string{"requirement", "admission", "entry", "eligibility", "qualification", "prerequisite", "ielts", "toefl"}
)

// Heuristic spots keywords in the page text and fills templated placeholder
// values. It is a total function: any input, including empty text, yields a
// full record, and no I/O is ever performed.
type Heuristic struct {
	Logger zerolog.Logger
}

func (h *Heuristic) Extract(_ context.Context, rawText, universityName string) (schema.Record, error) {
	h.Logger.Info().Msg("starting heuristic extraction")
	r := schema.NewRecord(universityName)
	text := strings.ToLower(rawText)

	r[schema.KeyProgramName] = programName(text)

	if containsAny(text, feeKeywords) {
		r[schema.KeyTuitionFee] = feePlaceholder
		h.Logger.Info().Msg("found keywords suggesting tuition fee information")
	}
	if containsAny(text, deadlineKeywords) || containsAny(text, monthNames) {
		r[schema.KeyApplicationDeadline] = deadlinePlaceholder
		h.Logger.Info().Msg("found keywords suggesting application deadline information")
	}
	if containsAny(text, reqKeywords) {
		r[schema.KeyEntryRequirementSummary] = reqPlaceholder
		h.Logger.Info().Msg("found keywords suggesting entry requirement information")
	}
	return r, nil
}

func programName(lowered string) string {
	if m := programNameRe.FindString(lowered); m != "" {
		// Casers carry state, so build one per call.
		caser := cases.Title(language.English)
		words := strings.Fields(m)
		for i, w := range words {
			words[i] = caser.String(w)
		}
		return programPrefix + strings.Join(words, " ")
	}
	if strings.Contains(lowered, "information studies") {
		return programInfoStudies
	}
	return programFallback
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
