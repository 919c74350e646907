// validate.go resolves location references before a write: stable element
// IDs via a fresh index, raw OOXML snippets via structural matching.
//
// The question-cell cross-check lives here too. Targeting a cell that
// already holds question text is the single most damaging agent mistake,
// so a matched table-cell ID whose row role is "question" gets a warning
// appended to its context — advisory only, it never changes the matched
// status or blocks resolution.

package word

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfill/docfill/internal/document"
)

// Validate matches each location against the document body and classifies
// the outcome. Per-item failures never abort the batch.
func (h *Handler) Validate(fileBytes []byte, locations []document.Location) ([]document.LocationResult, error) {
	_, body, err := parseDocument(fileBytes)
	if err != nil {
		return nil, err
	}

	// One fresh index serves every ID lookup in the batch. Computed only
	// when needed — snippet-only batches skip it.
	var locators map[string]string
	for _, loc := range locations {
		if document.ElementIDRe.MatchString(strings.TrimSpace(loc.Snippet)) {
			locators = h.indexBody(body).IDToLocator
			break
		}
	}

	results := make([]document.LocationResult, 0, len(locations))
	for _, loc := range locations {
		if document.ElementIDRe.MatchString(strings.TrimSpace(loc.Snippet)) {
			results = append(results, h.validateElementID(body, loc, locators))
		} else {
			results = append(results, h.validateSnippet(body, loc))
		}
	}
	return results, nil
}

func (h *Handler) validateElementID(body *etree.Element, loc document.Location, locators map[string]string) document.LocationResult {
	id := strings.TrimSpace(loc.Snippet)
	locator, ok := locators[id]
	if !ok {
		return document.LocationResult{PairID: loc.PairID, Status: document.NotFound}
	}

	target := resolveLocator(body, locator)
	context := ""
	if target != nil {
		context = contextText(target, h.opts.ContextLimit)
		if warning := h.questionCellWarning(body, id, target, locators); warning != "" {
			if context != "" {
				context = warning + "\n" + context
			} else {
				context = warning
			}
		}
	}
	return document.LocationResult{
		PairID:  loc.PairID,
		Status:  document.Matched,
		Locator: locator,
		Context: context,
	}
}

// questionCellWarning returns advisory text when a table-cell ID resolves
// to a cell that already holds non-target text. The next column in the
// same row is suggested only when it is itself an answer target, so the
// hint never points at another question cell.
func (h *Handler) questionCellWarning(body *etree.Element, id string, target *etree.Element, locators map[string]string) string {
	m := document.TableCellIDRe.FindStringSubmatch(id)
	if m == nil {
		return ""
	}
	text := elementText(target)
	if document.IsAnswerTarget(text) {
		return ""
	}

	preview := document.Truncate(text, 60)
	msg := fmt.Sprintf(
		"WARNING: %s contains existing text: '%s' — this looks like a question cell, not an answer target.",
		id, preview,
	)

	col, _ := strconv.Atoi(m[3])
	candidate := fmt.Sprintf("T%s-R%s-C%d", m[1], m[2], col+1)
	if locator, ok := locators[candidate]; ok {
		if next := resolveLocator(body, locator); next != nil && document.IsAnswerTarget(elementText(next)) {
			msg += fmt.Sprintf(" Did you mean %s?", candidate)
		}
	}
	return msg
}

func (h *Handler) validateSnippet(body *etree.Element, loc document.Location) document.LocationResult {
	matches := findSnippet(body, loc.Snippet)

	switch len(matches) {
	case 0:
		return document.LocationResult{PairID: loc.PairID, Status: document.NotFound}
	case 1:
		context := ""
		if target := resolveLocator(body, matches[0]); target != nil {
			context = contextText(target, h.opts.ContextLimit)
		}
		return document.LocationResult{
			PairID:  loc.PairID,
			Status:  document.Matched,
			Locator: matches[0],
			Context: context,
		}
	default:
		return document.LocationResult{
			PairID:  loc.PairID,
			Status:  document.Ambiguous,
			Matches: len(matches),
			Context: fmt.Sprintf("Snippet matched %d locations", len(matches)),
		}
	}
}
