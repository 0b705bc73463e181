// Package normalize interprets raw generated text according to each
// artifact's expected contract. Malformed output never fails the request:
// JSON artifacts degrade to a raw-text wrapper and document artifacts are
// repaired deterministically, with the degradation visible to callers via an
// explicit fallback flag.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/careerpilot/internal/llm"
	"github.com/jonathan/careerpilot/internal/prompt"
	"github.com/jonathan/careerpilot/internal/types"
)

// RawTextKey is the key carrying the original text in a fallback object
const RawTextKey = "raw_text"

// Result is the tagged outcome of one normalization. Fallback marks that the
// generated text failed its expected schema and a degraded payload was
// substituted; the original text is always recoverable from RawText.
type Result struct {
	RawText  string
	Fallback bool
}

// ObjectResult is a normalized JSON-object artifact
type ObjectResult struct {
	Result
	Object map[string]any
}

// QuestionsResult is a normalized interview question list
type QuestionsResult struct {
	Result
	Questions []types.Question
}

// DocumentResult is a normalized document artifact
type DocumentResult struct {
	Result
	Document string
}

// Object parses raw text as a JSON object and checks it against the
// artifact's schema descriptor. Missing keys are tolerated; unparseable or
// schema-violating text falls back to {"raw_text": <original>} so no
// information is lost.
func Object(raw string, tmpl prompt.Template) ObjectResult {
	cleaned := llm.CleanJSONBlock(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil || obj == nil {
		return ObjectResult{
			Result: Result{RawText: raw, Fallback: true},
			Object: map[string]any{RawTextKey: raw},
		}
	}

	if !checkSchema(tmpl.Kind, cleaned) {
		return ObjectResult{
			Result: Result{RawText: raw, Fallback: true},
			Object: map[string]any{RawTextKey: raw},
		}
	}

	return ObjectResult{Result: Result{RawText: raw}, Object: obj}
}

// Questions parses raw text as a JSON array of interview questions. Anything
// other than a top-level array falls back to a single-element list carrying
// the raw text and the originally requested question type.
func Questions(raw, requestedType string) QuestionsResult {
	cleaned := llm.CleanJSONBlock(raw)

	var questions []types.Question
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return QuestionsResult{
			Result:    Result{RawText: raw, Fallback: true},
			Questions: []types.Question{{Text: raw, Type: requestedType}},
		}
	}

	return QuestionsResult{Result: Result{RawText: raw}, Questions: questions}
}

// Document verifies the text is bounded by the artifact's sentinel tokens and
// repairs it deterministically when it is not. Repair is idempotent:
// repairing already-valid output is a no-op.
func Document(raw string, tmpl prompt.Template) DocumentResult {
	repaired := RepairDocument(raw, tmpl.StartSentinel, tmpl.EndSentinel)
	return DocumentResult{
		Result:   Result{RawText: raw, Fallback: repaired != strings.TrimSpace(raw)},
		Document: repaired,
	}
}

// RepairDocument ensures text starts with the start sentinel (discarding any
// preamble before a located occurrence, or prepending when absent) and
// contains the end sentinel (appending when absent).
func RepairDocument(text, start, end string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, start); idx > 0 {
		text = text[idx:]
	} else if idx < 0 {
		text = start + "\n" + text
	}

	if !strings.Contains(text, end) {
		text = text + "\n" + end
	}

	return text
}

// Decode re-encodes a normalized object into a typed payload struct.
// Intended for callers that want the concrete artifact shape; fallback
// objects will decode to zero values.
func Decode[T any](obj map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(obj)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
