package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vbchivu/ai-data-extractor-scrapper/internal/extractor"
	"github.com/vbchivu/ai-data-extractor-scrapper/internal/fetch"
	"github.com/vbchivu/ai-data-extractor-scrapper/internal/schema"
)

const programPage = `<!doctype html>
<html>
  <head><title>Information Studies - UvA</title></head>
  <body>
    <nav>Home | Programmes</nav>
    <main id="main">
      <h1>Master's Programme in Information Studies</h1>
      <p>Application deadline is 1 March for non-EU students.</p>
      <p>The tuition fee is approximately EUR 18,720 per year for non-EU.</p>
      <p>Admission requirements include a relevant Bachelor's degree and IELTS score 6.5.</p>
    </main>
    <footer>Contact</footer>
  </body>
</html>`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(programPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_HeuristicEndToEnd(t *testing.T) {
	srv := newPageServer(t)
	outPath := filepath.Join(t.TempDir(), "result.json")

	cfg := Config{
		URL:          srv.URL,
		University:   "University of Amsterdam",
		Extractor:    "heuristic",
		OutputPath:   outPath,
		FetchTimeout: 2 * time.Second,
	}
	a, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	a.stdout = &buf

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var record map[string]string
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(record) != len(schema.Keys()) {
		t.Fatalf("expected %d keys, got %v", len(schema.Keys()), record)
	}
	if record[schema.KeyUniversityName] != "University of Amsterdam" {
		t.Fatalf("university name mismatch: %q", record[schema.KeyUniversityName])
	}
	for _, k := range []string{schema.KeyProgramName, schema.KeyTuitionFee, schema.KeyApplicationDeadline, schema.KeyEntryRequirementSummary} {
		if record[k] == schema.NotFound {
			t.Fatalf("expected derived value for %q", k)
		}
	}

	saved, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	if !bytes.Equal(saved, buf.Bytes()) {
		t.Fatalf("file content differs from console output")
	}
}

type countingStrategy struct {
	calls int
}

func (c *countingStrategy) Extract(_ context.Context, _, universityName string) (schema.Record, error) {
	c.calls++
	return schema.NewRecord(universityName), nil
}

func TestRun_FetchFailureShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cs := &countingStrategy{}
	a := &App{
		cfg:      Config{URL: srv.URL, University: "U", Extractor: "heuristic"},
		log:      zerolog.Nop(),
		fetcher:  &fetch.Client{Timeout: 2 * time.Second},
		strategy: cs,
		stdout:   &bytes.Buffer{},
	}
	if err := a.Run(context.Background()); err == nil {
		t.Fatalf("expected pipeline failure")
	}
	if cs.calls != 0 {
		t.Fatalf("extraction must not run after fetch failure, got %d calls", cs.calls)
	}
}

func TestRun_OutputWriteFailureKeepsResult(t *testing.T) {
	srv := newPageServer(t)
	cfg := Config{
		URL:        srv.URL,
		University: "U",
		Extractor:  "heuristic",
		// Directory path cannot be written as a file.
		OutputPath:   t.TempDir(),
		FetchTimeout: 2 * time.Second,
	}
	a, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	a.stdout = &buf

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("write failure must not fail the run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("console output must still be produced")
	}
}

func TestRun_LLMAgainstStubEndpoint(t *testing.T) {
	pageSrv := newPageServer(t)

	record := map[string]string{
		"program_name":              "MSc Information Studies",
		"university_name":           "University of Amsterdam",
		"tuition_fee":               "EUR 18,720",
		"application_deadline":      "1 March",
		"entry_requirement_summary": "Bachelor + IELTS 6.5",
	}
	content, _ := json.Marshal(record)

	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": string(content)}},
			},
		})
	}))
	defer llmSrv.Close()

	cfg := Config{
		URL:          pageSrv.URL,
		University:   "University of Amsterdam",
		Extractor:    "llm",
		LLMBaseURL:   llmSrv.URL + "/v1",
		LLMModel:     "test-model",
		FetchTimeout: 2 * time.Second,
	}
	a, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	a.stdout = &buf

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("stdout is not valid JSON: %v", err)
	}
	if got[schema.KeyTuitionFee] != "EUR 18,720" {
		t.Fatalf("expected model value passed through, got %q", got[schema.KeyTuitionFee])
	}
}

func TestNew_LLMNotConfigured(t *testing.T) {
	_, err := New(Config{URL: "http://example.com", University: "U", Extractor: "llm"}, zerolog.Nop())
	if !errors.Is(err, extractor.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
