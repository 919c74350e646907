// analysis.go provides per-element analysis used by the indexer: flattened
// text extraction, formatting hints, and complexity detection. Separated to
// keep indexer.go focused on tree walking and ID assignment.

package word

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfill/docfill/internal/document"
)

// complexTags are constructs that cannot be faithfully linearised into a
// compact text line. Elements containing any of these are rendered as a
// truncated raw-markup dump instead.
var complexTags = []string{
	"w:sdt",         // content controls
	"w:fldChar",     // legacy form fields
	"w:txbxContent", // text boxes
	"w:object",      // embedded objects
}

// childByTag returns the first direct child with the given full tag.
func childByTag(el *etree.Element, fullTag string) *etree.Element {
	for _, ch := range el.ChildElements() {
		if ch.FullTag() == fullTag {
			return ch
		}
	}
	return nil
}

// walk visits el and every descendant element in document order.
func walk(el *etree.Element, visit func(*etree.Element)) {
	visit(el)
	for _, ch := range el.ChildElements() {
		walk(ch, visit)
	}
}

// findDescendant returns the first descendant (excluding el itself) with
// the given full tag, or nil.
func findDescendant(el *etree.Element, fullTag string) *etree.Element {
	var found *etree.Element
	for _, ch := range el.ChildElements() {
		walk(ch, func(e *etree.Element) {
			if found == nil && e.FullTag() == fullTag {
				found = e
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// elementText extracts the flattened text of an element: all w:t descendant
// text joined with no separator.
func elementText(el *etree.Element) string {
	var b strings.Builder
	walk(el, func(e *etree.Element) {
		if e.FullTag() == "w:t" {
			b.WriteString(e.Text())
		}
	})
	return b.String()
}

// formattingHints detects coarse styling booleans for the compact summary.
// Hints are presentation only and never used for identity.
func formattingHints(el *etree.Element, text string) []string {
	var hints []string

	if strings.TrimSpace(text) == "" {
		hints = append(hints, "empty")
	} else if document.PlaceholderRe.MatchString(text) {
		hints = append(hints, "placeholder")
	}

	if findDescendant(el, "w:b") != nil {
		hints = append(hints, "bold")
	}
	if findDescendant(el, "w:i") != nil {
		hints = append(hints, "italic")
	}
	if shd := findDescendant(el, "w:shd"); shd != nil {
		fill := strings.ToLower(shd.SelectAttrValue("w:fill", ""))
		if fill != "" && fill != "auto" && fill != "ffffff" {
			hints = append(hints, "shaded")
		}
	}
	return hints
}

// targetMarker returns the answer-target marker for empty or placeholder
// text, or the empty string.
func targetMarker(text string) string {
	if document.IsAnswerTarget(text) {
		return " ← answer target"
	}
	return ""
}

// detectComplex reports why an element cannot be compacted, or "" if it is
// simple. The returned label goes into the compact line, so it names the
// offending construct.
func detectComplex(el *etree.Element) string {
	for _, tag := range complexTags {
		if findDescendant(el, tag) != nil {
			return strings.TrimPrefix(tag, "w:")
		}
	}

	// Nested tables (a table inside a table cell)
	if el.FullTag() == "w:tc" && findDescendant(el, "w:tbl") != nil {
		return "nested_table"
	}

	// gridSpan (horizontally merged cells)
	if gs := findDescendant(el, "w:gridSpan"); gs != nil {
		if val := gs.SelectAttrValue("w:val", ""); val != "" && val != "1" {
			return fmt.Sprintf("gridSpan=%s", val)
		}
	}

	// vMerge (vertically merged cells)
	if findDescendant(el, "w:vMerge") != nil {
		return "vMerge"
	}

	return ""
}

// rawMarkup serialises an element back to its markup string, for complex
// element dumps and snippet contexts.
func rawMarkup(el *etree.Element) string {
	d := etree.NewDocument()
	d.SetRoot(el.Copy())
	s, err := d.WriteToString()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// contextText returns truncated flattened text for human/agent review.
func contextText(el *etree.Element, limit int) string {
	return document.Truncate(elementText(el), limit)
}
