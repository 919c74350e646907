// verifier.go re-reads a written document and checks two independent
// things: that expected text is present at each reference, and that the
// whole body is free of known structural-invalidity patterns a bad write
// could introduce.

package word

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/docfill/docfill/internal/document"
)

// Verify resolves each expected answer's reference, compares text, and
// scans for structural violations. Per-item outcomes never abort the
// batch.
func (h *Handler) Verify(fileBytes []byte, expected []document.ExpectedAnswer) (*document.Report, error) {
	_, body, err := parseDocument(fileBytes)
	if err != nil {
		return nil, err
	}

	structural := checkStructure(body)
	results := h.verifyContent(body, expected)
	return document.BuildReport(results, expected, structural), nil
}

func (h *Handler) verifyContent(body *etree.Element, expected []document.ExpectedAnswer) []document.ContentResult {
	var locators map[string]string
	results := make([]document.ContentResult, 0, len(expected))

	for _, e := range expected {
		ref := e.Ref
		if ref == "" {
			ref = e.PairID
		}

		locator := ref
		if document.ElementIDRe.MatchString(ref) {
			if locators == nil {
				locators = h.indexBody(body).IDToLocator
			}
			locator = locators[ref]
		}

		var target *etree.Element
		if locator != "" && ValidateLocator(locator) == nil {
			target = resolveLocator(body, locator)
		}
		if target == nil {
			results = append(results, document.ContentResult{
				PairID:   e.PairID,
				Status:   document.ContentMissing,
				Expected: e.Expected,
			})
			continue
		}

		actual := elementText(target)
		r := document.ContentResult{
			PairID:   e.PairID,
			Expected: e.Expected,
			Actual:   actual,
		}
		if document.Matches(e.Expected, actual, h.opts.CaseSensitive) {
			r.Status = document.ContentMatched
		} else {
			r.Status = document.ContentMismatched
			r.Diff = document.CompactDiff(e.Expected, actual)
		}
		results = append(results, r)
	}
	return results
}

// checkStructure scans the whole body for invalidity patterns, independent
// of any specific reference: inline runs as direct children of a table
// cell, and table cells with no paragraph child at all. Each violation
// carries a text excerpt for context.
func checkStructure(body *etree.Element) []string {
	var issues []string

	walk(body, func(el *etree.Element) {
		if el.FullTag() != "w:tc" {
			return
		}
		hasParagraph := false
		for _, ch := range el.ChildElements() {
			switch ch.FullTag() {
			case "w:r":
				issues = append(issues, fmt.Sprintf(
					"Bare <w:r> found directly under <w:tc> (context: %q)",
					document.Truncate(elementText(el), 50)))
			case "w:p":
				hasParagraph = true
			}
		}
		if !hasParagraph {
			issues = append(issues, fmt.Sprintf(
				"<w:tc> has no <w:p> child (context: %q)",
				document.Truncate(elementText(el), 50)))
		}
	})
	return issues
}
