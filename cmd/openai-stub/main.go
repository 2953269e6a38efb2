// Command openai-stub is a minimal OpenAI-compatible chat completions server
// that answers extraction prompts with a canned record. It exists so the llm
// extractor can be exercised end to end without a real model:
//
//	ADDR=:8081 go run ./cmd/openai-stub
//	programdata -url ... -extractor llm -llm.base http://localhost:8081/v1 -llm.model test-model
//
// Set FENCED=1 to wrap the payload in a markdown code fence and exercise the
// client's fence stripping.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}
	fenced := os.Getenv("FENCED") == "1"

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys := ""
		if len(req.Messages) > 0 {
			sys = req.Messages[0].Content
		}
		if !strings.Contains(sys, "data extraction assistant") {
			http.Error(w, "unexpected system", http.StatusBadRequest)
			return
		}
		// University name arrives on the first line of the user prompt.
		university := "Stub University"
		if len(req.Messages) >= 2 {
			first, _, _ := strings.Cut(req.Messages[1].Content, "\n")
			if name, ok := strings.CutPrefix(first, "University name: "); ok && strings.TrimSpace(name) != "" {
				university = strings.TrimSpace(name)
			}
		}
		record := map[string]string{
			"program_name":              "Master's Programme in Information Studies",
			"university_name":           university,
			"tuition_fee":               "EUR 18,720 per year (non-EU)",
			"application_deadline":      "1 March (non-EU) / 1 May (EU)",
			"entry_requirement_summary": "Relevant Bachelor's degree and English proficiency (IELTS 6.5)",
		}
		b, _ := json.Marshal(record)
		content := string(b)
		if fenced {
			content = "```json\n" + content + "\n```"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	})

	log.Printf("openai-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
