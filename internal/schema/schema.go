package schema

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Field names of the target record, also used as JSON keys.
const (
	KeyProgramName             = "program_name"
	KeyUniversityName          = "university_name"
	KeyTuitionFee              = "tuition_fee"
	KeyApplicationDeadline     = "application_deadline"
	KeyEntryRequirementSummary = "entry_requirement_summary"
)

// Sentinel values marking a field that could not be determined. The model
// variant uses the qualified form so a reader can tell "absent from the page"
// apart from "the model did not return this key".
const (
	NotFound      = "Not found"
	NotFoundModel = "Not found (missing in LLM output)"
)

// Keys returns the required output fields in canonical order.
func Keys() []string {
	return []string{
		KeyProgramName,
		KeyUniversityName,
		KeyTuitionFee,
		KeyApplicationDeadline,
		KeyEntryRequirementSummary,
	}
}

// PromptJSON renders the schema as an ordered JSON object mapping each field
// to its semantic type, suitable for embedding in a model system prompt.
func PromptJSON() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"` + k + `": "string"`)
	}
	b.WriteString("}")
	return b.String()
}

// Record maps each schema key to a string value. Extra keys may be present
// when the keep-extra policy is enabled; schema keys are always present.
type Record map[string]string

// NewRecord returns a record with every field set to NotFound and the
// university name pre-filled from the caller.
func NewRecord(universityName string) Record {
	r := make(Record, len(Keys()))
	for _, k := range Keys() {
		r[k] = NotFound
	}
	r[KeyUniversityName] = universityName
	return r
}

// Normalize reconciles a parsed model response against the schema: every
// schema key absent from parsed is filled with NotFoundModel, and keys
// outside the schema are dropped unless keepExtra is set. The university
// name always comes from the caller, never from the model. Drift is surfaced
// as a warning only; Normalize always yields a valid record.
func Normalize(parsed map[string]string, universityName string, keepExtra bool, logger zerolog.Logger) Record {
	r := make(Record, len(Keys()))
	var missing []string
	for _, k := range Keys() {
		if v, ok := parsed[k]; ok {
			r[k] = v
		} else {
			r[k] = NotFoundModel
			missing = append(missing, k)
		}
	}
	r[KeyUniversityName] = universityName

	known := make(map[string]struct{}, len(Keys()))
	for _, k := range Keys() {
		known[k] = struct{}{}
	}
	var extra []string
	for k, v := range parsed {
		if _, ok := known[k]; ok {
			continue
		}
		extra = append(extra, k)
		if keepExtra {
			r[k] = v
		}
	}
	sort.Strings(extra)

	if len(missing) > 0 || len(extra) > 0 {
		logger.Warn().
			Strs("missing", missing).
			Strs("extra", extra).
			Bool("keepExtra", keepExtra).
			Msg("model response drifted from target schema")
	}
	return r
}

// MarshalOrdered renders the record as indented JSON with schema keys in
// canonical order, followed by any retained extra keys sorted by name.
// Non-ASCII characters are written as-is.
func MarshalOrdered(r Record) ([]byte, error) {
	known := make(map[string]struct{}, len(Keys()))
	for _, k := range Keys() {
		known[k] = struct{}{}
	}
	var extras []string
	for k := range r {
		if _, ok := known[k]; !ok {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)

	ordered := make([]string, 0, len(Keys())+len(extras))
	for _, k := range Keys() {
		if _, ok := r[k]; ok {
			ordered = append(ordered, k)
		}
	}
	ordered = append(ordered, extras...)

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range ordered {
		key, err := encodeString(k)
		if err != nil {
			return nil, err
		}
		val, err := encodeString(r[k])
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.WriteString(key)
		buf.WriteString(": ")
		buf.WriteString(val)
		if i < len(ordered)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func encodeString(s string) (string, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
