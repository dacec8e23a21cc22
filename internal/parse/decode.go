package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Alfex4936/corrector/internal/model"
)

// ErrMissing marks a required response field that is absent.
var ErrMissing = errors.New("missing required field")

// FieldError reports a required field that is absent or has the wrong type.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("parse: field %q: %v", e.Field, e.Err) }
func (e *FieldError) Unwrap() error { return e.Err }

// Issue is a problem in an optional section. The section (Index == -1) or
// the single entry at Index was dropped; the rest of the response is usable.
type Issue struct {
	Section string
	Index   int
	Err     error
}

func (i Issue) Error() string {
	if i.Index < 0 {
		return fmt.Sprintf("parse: %s: %v", i.Section, i.Err)
	}
	return fmt.Sprintf("parse: %s[%d]: %v", i.Section, i.Index, i.Err)
}

var required = []string{"original", "best_suggestion", "confidence", "grammar_corrected"}

// Decode converts a /api/correct body into model.Response.
//
// The four summary fields must be present (null is accepted as the zero
// value). per_word is optional: if it is not an array it is dropped as a
// whole, and entries that are null, do not decode, or have no original word
// are dropped one by one.
func Decode(raw []byte) (*model.Response, []Issue, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, fmt.Errorf("parse: decode response: %w", err)
	}
	for _, name := range required {
		if _, ok := fields[name]; !ok {
			return nil, nil, &FieldError{Field: name, Err: ErrMissing}
		}
	}

	res := &model.Response{}
	targets := []any{&res.Original, &res.BestSuggestion, &res.Confidence, &res.GrammarCorrected}
	for i, name := range required {
		if err := json.Unmarshal(fields[name], targets[i]); err != nil {
			return nil, nil, &FieldError{Field: name, Err: err}
		}
	}

	var issues []Issue
	pw, ok := fields["per_word"]
	if !ok || isNull(pw) {
		return res, nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(pw, &entries); err != nil {
		return res, append(issues, Issue{Section: "per_word", Index: -1, Err: err}), nil
	}
	res.PerWord = make([]model.PerWordSuggestion, 0, len(entries))
	for i, e := range entries {
		if isNull(e) {
			issues = append(issues, Issue{Section: "per_word", Index: i, Err: ErrMissing})
			continue
		}
		var w model.PerWordSuggestion
		if err := json.Unmarshal(e, &w); err != nil {
			issues = append(issues, Issue{Section: "per_word", Index: i, Err: err})
			continue
		}
		// a word block without its word has nothing to head it
		if w.Original == "" {
			issues = append(issues, Issue{Section: "per_word", Index: i, Err: &FieldError{Field: "original", Err: ErrMissing}})
			continue
		}
		res.PerWord = append(res.PerWord, w)
	}
	return res, issues, nil
}

func isNull(b []byte) bool { return bytes.Equal(bytes.TrimSpace(b), []byte("null")) }
