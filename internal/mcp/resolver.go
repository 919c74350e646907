// resolver.go resolves Word stable IDs to locators for the write-side
// tools, and cross-checks agent-supplied locators against a fresh index.
//
// Stable IDs are only valid against the byte-identical document they were
// computed from, so resolution always re-indexes the current bytes. When
// the agent supplies both a pair_id and a locator and they disagree, the
// pair_id wins: it is the identifier the agent carried from extraction,
// while a hand-edited locator is the classic transcription mistake. The
// disagreement is surfaced as a warning, never an error.

package mcp

import (
	"fmt"

	"github.com/docfill/docfill/internal/document"
)

// resolvePairIDs re-indexes the document and returns the locator for each
// requested stable ID. IDs not present in the document are omitted.
func resolvePairIDs(hdl document.Handler, fileBytes []byte, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	st, err := hdl.Index(fileBytes)
	if err != nil {
		return nil, fmt.Errorf("re-index for pair_id resolution: %w", err)
	}

	resolved := make(map[string]string, len(ids))
	for _, id := range ids {
		if loc, ok := st.IDToLocator[id]; ok {
			resolved[id] = loc
		}
	}
	return resolved, nil
}

// reconcileAnswers fills empty Refs from pair_ids and cross-checks supplied
// Refs, rewriting mismatches in favour of the pair_id. Only meaningful for
// Word; Excel and PDF references are their own stable IDs.
func reconcileAnswers(hdl document.Handler, fileBytes []byte, answers []document.Answer) ([]document.Answer, []string, error) {
	var ids []string
	for _, a := range answers {
		if document.ElementIDRe.MatchString(a.PairID) {
			ids = append(ids, a.PairID)
		}
	}
	resolved, err := resolvePairIDs(hdl, fileBytes, ids)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	for i, a := range answers {
		loc, ok := resolved[a.PairID]
		if !ok {
			continue
		}
		if a.Ref == "" {
			answers[i].Ref = loc
			continue
		}
		if a.Ref != loc && a.Ref != a.PairID {
			warnings = append(warnings, fmt.Sprintf(
				"pair_id '%s': agent locator '%s' differs from resolved locator '%s' -- using resolved (pair_id is authority)",
				a.PairID, a.Ref, loc))
			answers[i].Ref = loc
		}
	}
	return answers, warnings, nil
}

// reconcileExpected is reconcileAnswers for the verification payload.
func reconcileExpected(hdl document.Handler, fileBytes []byte, expected []document.ExpectedAnswer) ([]document.ExpectedAnswer, []string, error) {
	var ids []string
	for _, e := range expected {
		if document.ElementIDRe.MatchString(e.PairID) {
			ids = append(ids, e.PairID)
		}
	}
	resolved, err := resolvePairIDs(hdl, fileBytes, ids)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	for i, e := range expected {
		loc, ok := resolved[e.PairID]
		if !ok {
			continue
		}
		if e.Ref == "" {
			expected[i].Ref = loc
			continue
		}
		if e.Ref != loc && e.Ref != e.PairID {
			warnings = append(warnings, fmt.Sprintf(
				"pair_id '%s': agent locator '%s' differs from resolved locator '%s' -- using resolved (pair_id is authority)",
				e.PairID, e.Ref, loc))
			expected[i].Ref = loc
		}
	}
	return expected, warnings, nil
}
