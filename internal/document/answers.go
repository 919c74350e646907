// answers.go defines answer payloads and the boundary normalisation that
// folds the accepted external spellings (xpath, cell_id, field_id) into one
// canonical Ref field.
//
// Design: agents address Word targets by locator path and Excel/PDF targets
// by stable ID, and historically used a different JSON key for each. Rather
// than checking alternate keys deep in the writers, normalisation happens
// once here; everything downstream sees a single Ref.

package document

import (
	"fmt"
	"strings"
)

// InsertionMode selects how a value lands in its target element.
type InsertionMode string

const (
	// ReplaceContent clears the target (preserving its property nodes)
	// and inserts the new content.
	ReplaceContent InsertionMode = "replace_content"
	// Append adds the new content as a trailing child.
	Append InsertionMode = "append"
	// ReplacePlaceholder substitutes the first placeholder span found in
	// the target's text, leaving everything else untouched.
	ReplacePlaceholder InsertionMode = "replace_placeholder"
)

// ParseInsertionMode validates a mode string. Empty defaults to
// replace_content, the mode agents want in almost every case.
func ParseInsertionMode(s string) (InsertionMode, error) {
	switch InsertionMode(s) {
	case ReplaceContent, Append, ReplacePlaceholder:
		return InsertionMode(s), nil
	case "":
		return ReplaceContent, nil
	}
	return "", fmt.Errorf("invalid insertion mode %q (expected replace_content, append, or replace_placeholder)", s)
}

// Confidence tags an answer with how sure the caller is about its value.
type Confidence string

const (
	Known     Confidence = "known"
	Uncertain Confidence = "uncertain"
	Unknown   Confidence = "unknown"
)

// ParseConfidence validates a confidence string; empty defaults to known.
func ParseConfidence(s string) (Confidence, error) {
	switch Confidence(s) {
	case Known, Uncertain, Unknown:
		return Confidence(s), nil
	case "":
		return Known, nil
	}
	return "", fmt.Errorf("invalid confidence %q (expected known, uncertain, or unknown)", s)
}

// Answer is one normalised write instruction. Constructed at the request
// boundary, consumed exactly once by the mutation (or preview) stage, then
// discarded.
type Answer struct {
	PairID string
	// Ref is the canonical target reference: a locator path or stable ID
	// for Word, a stable cell/field ID for Excel/PDF. May be empty when
	// PairID alone identifies the target (resolved against a fresh index).
	Ref string
	// Value is the plain-text payload.
	Value string
	// InsertionXML is a pre-built structured payload (Word only). When
	// set it takes precedence over Value.
	InsertionXML string
	// Placeholder is an optional literal substring for replace_placeholder;
	// empty means the default placeholder patterns.
	Placeholder string
	Mode        InsertionMode
	Confidence  Confidence
}

// ExpectedAnswer pairs a reference with the text verification should find
// there.
type ExpectedAnswer struct {
	PairID     string
	Ref        string
	Expected   string
	Confidence Confidence
}

// refKeys are the accepted external spellings for a target reference, in
// precedence order.
var refKeys = []string{"xpath", "locator", "cell_id", "field_id"}

// AnswerFromMap normalises one raw answer object from a tool request.
func AnswerFromMap(m map[string]any) (Answer, error) {
	a := Answer{
		PairID:       getStr(m, "pair_id"),
		Value:        getStr(m, "value", "answer_text"),
		InsertionXML: getStr(m, "insertion_xml"),
		Placeholder:  getStr(m, "placeholder"),
	}
	for _, k := range refKeys {
		if v := getStr(m, k); v != "" {
			a.Ref = v
			break
		}
	}
	if a.PairID == "" && a.Ref == "" {
		return a, fmt.Errorf("answer needs a pair_id or a target reference (%s)", strings.Join(refKeys, "/"))
	}
	if a.Value == "" && a.InsertionXML == "" {
		return a, fmt.Errorf("answer %q has neither value nor insertion_xml", a.keyForError())
	}

	var err error
	if a.Mode, err = ParseInsertionMode(getStr(m, "mode")); err != nil {
		return a, fmt.Errorf("answer %q: %w", a.keyForError(), err)
	}
	if a.Confidence, err = ParseConfidence(getStr(m, "confidence")); err != nil {
		return a, fmt.Errorf("answer %q: %w", a.keyForError(), err)
	}
	return a, nil
}

// ExpectedAnswerFromMap normalises one raw expected-answer object.
func ExpectedAnswerFromMap(m map[string]any) (ExpectedAnswer, error) {
	e := ExpectedAnswer{
		PairID:   getStr(m, "pair_id"),
		Expected: getStr(m, "expected_text", "expected"),
	}
	for _, k := range refKeys {
		if v := getStr(m, k); v != "" {
			e.Ref = v
			break
		}
	}
	if e.PairID == "" && e.Ref == "" {
		return e, fmt.Errorf("expected answer needs a pair_id or a target reference (%s)", strings.Join(refKeys, "/"))
	}
	if e.Expected == "" {
		ref := e.PairID
		if ref == "" {
			ref = e.Ref
		}
		return e, fmt.Errorf("expected answer %q has no expected_text", ref)
	}
	var err error
	if e.Confidence, err = ParseConfidence(getStr(m, "confidence")); err != nil {
		return e, err
	}
	return e, nil
}

func (a Answer) keyForError() string {
	if a.PairID != "" {
		return a.PairID
	}
	return a.Ref
}

// getStr returns the first present string value among the given keys.
func getStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// InferRelaxedFileType guesses Excel vs PDF from stable-ID prefixes when a
// relaxed request omits the file type. S-prefixed IDs are spreadsheet
// cells, F-prefixed IDs are PDF fields; Excel is the historical default.
func InferRelaxedFileType(pairIDs []string) FileType {
	for _, pid := range pairIDs {
		if FieldIDRe.MatchString(pid) {
			return PDF
		}
		if CellIDRe.MatchString(pid) {
			return Excel
		}
	}
	return Excel
}
