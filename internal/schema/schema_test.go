package schema

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewRecord_AllKeysWithSentinels(t *testing.T) {
	r := NewRecord("University of Amsterdam")
	if len(r) != len(Keys()) {
		t.Fatalf("expected %d keys, got %d", len(Keys()), len(r))
	}
	for _, k := range Keys() {
		if _, ok := r[k]; !ok {
			t.Fatalf("missing key %q", k)
		}
	}
	if r[KeyUniversityName] != "University of Amsterdam" {
		t.Fatalf("university name not pre-filled: %q", r[KeyUniversityName])
	}
	if r[KeyTuitionFee] != NotFound {
		t.Fatalf("expected %q sentinel, got %q", NotFound, r[KeyTuitionFee])
	}
}

func TestNormalize_FillsMissingWithModelSentinel(t *testing.T) {
	parsed := map[string]string{
		KeyProgramName:         "MSc Data Science",
		KeyTuitionFee:          "EUR 2,530",
		KeyApplicationDeadline: "1 April",
		// entry_requirement_summary intentionally absent
	}
	r := Normalize(parsed, "TU Delft", false, zerolog.Nop())
	if r[KeyEntryRequirementSummary] != NotFoundModel {
		t.Fatalf("expected %q, got %q", NotFoundModel, r[KeyEntryRequirementSummary])
	}
	if r[KeyProgramName] != "MSc Data Science" {
		t.Fatalf("present key was not passed through: %q", r[KeyProgramName])
	}
	if r[KeyUniversityName] != "TU Delft" {
		t.Fatalf("university name must come from the caller, got %q", r[KeyUniversityName])
	}
}

func TestNormalize_DropsExtraKeysByDefault(t *testing.T) {
	parsed := map[string]string{
		KeyProgramName: "MSc X",
		"ranking":      "top 10",
	}
	r := Normalize(parsed, "U", false, zerolog.Nop())
	if _, ok := r["ranking"]; ok {
		t.Fatalf("extra key should have been dropped")
	}

	kept := Normalize(parsed, "U", true, zerolog.Nop())
	if kept["ranking"] != "top 10" {
		t.Fatalf("extra key should have been retained, got %q", kept["ranking"])
	}
}

func TestNormalize_UniversityAlwaysFromCaller(t *testing.T) {
	parsed := map[string]string{KeyUniversityName: "Somewhere Else"}
	r := Normalize(parsed, "University of Amsterdam", false, zerolog.Nop())
	if r[KeyUniversityName] != "University of Amsterdam" {
		t.Fatalf("expected caller-supplied name, got %q", r[KeyUniversityName])
	}
}

func TestMarshalOrdered_SchemaOrderAndUnicode(t *testing.T) {
	r := NewRecord("Universität Wien")
	r[KeyTuitionFee] = "€18,720 / year"
	out, err := MarshalOrdered(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)

	last := -1
	for _, k := range Keys() {
		idx := strings.Index(s, `"`+k+`"`)
		if idx < 0 {
			t.Fatalf("key %q missing from output", k)
		}
		if idx < last {
			t.Fatalf("key %q out of order in output:\n%s", k, s)
		}
		last = idx
	}
	if !strings.Contains(s, "€18,720") {
		t.Fatalf("expected euro sign written as-is, got:\n%s", s)
	}
	if !strings.Contains(s, "Universität") {
		t.Fatalf("expected non-ASCII preserved, got:\n%s", s)
	}
}

func TestMarshalOrdered_ExtrasAfterSchemaKeys(t *testing.T) {
	r := NewRecord("U")
	r["zz_extra"] = "kept"
	out, err := MarshalOrdered(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	if strings.Index(s, `"zz_extra"`) < strings.Index(s, `"entry_requirement_summary"`) {
		t.Fatalf("extra key should follow schema keys:\n%s", s)
	}
}

func TestPromptJSON_ListsAllFields(t *testing.T) {
	p := PromptJSON()
	for _, k := range Keys() {
		if !strings.Contains(p, `"`+k+`": "string"`) {
			t.Fatalf("prompt schema missing %q: %s", k, p)
		}
	}
}
