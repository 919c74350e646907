// writer.go applies validated answers to the document tree and repackages
// the archive.
//
// Two structural-integrity rules are enforced on every write: property
// nodes (w:pPr, w:tcPr) survive replace_content untouched, and a bare
// w:r inserted into a w:tc is wrapped in a synthetic w:p — table cells may
// not hold inline content directly, and a violation produces a document
// other tools reject.
//
// An unresolvable locator is a hard error here, unlike the PDF writer's
// silent skip: Word locators are derived from a prior index of the same
// bytes, so a miss is always a caller bug.

package word

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfill/docfill/internal/document"
)

// propertyTags are the per-element property nodes replace_content must
// preserve: they carry the target's own styling and sizing metadata.
var propertyTags = map[string]bool{
	"w:pPr":  true,
	"w:tcPr": true,
}

// Write applies all answers and returns the repackaged .docx bytes. All
// mutations happen on an in-memory tree; only the returned bytes change.
func (h *Handler) Write(fileBytes []byte, answers []document.Answer) ([]byte, error) {
	doc, body, err := parseDocument(fileBytes)
	if err != nil {
		return nil, err
	}

	resolve := h.newResolver(body)
	for _, a := range answers {
		target, locator, err := resolve(a)
		if err != nil {
			return nil, err
		}
		if err := applyAnswer(target, a); err != nil {
			return nil, fmt.Errorf("answer %q at %s: %w", a.PairID, locator, err)
		}
	}

	modified, err := serialise(doc)
	if err != nil {
		return nil, err
	}
	return repackage(fileBytes, modified)
}

// newResolver returns a function resolving one answer's reference to its
// target element. Stable IDs go through a fresh index (computed lazily,
// once per batch); locator paths are grammar-checked before any tree
// walking.
func (h *Handler) newResolver(body *etree.Element) func(document.Answer) (*etree.Element, string, error) {
	var locators map[string]string

	return func(a document.Answer) (*etree.Element, string, error) {
		ref := a.Ref
		if ref == "" {
			ref = a.PairID
		}

		locator := ref
		if document.ElementIDRe.MatchString(ref) {
			if locators == nil {
				locators = h.indexBody(body).IDToLocator
			}
			var ok bool
			if locator, ok = locators[ref]; !ok {
				return nil, "", fmt.Errorf("answer %q: element ID %s not found in document", a.PairID, ref)
			}
		} else if err := ValidateLocator(locator); err != nil {
			return nil, "", fmt.Errorf("answer %q: %w", a.PairID, err)
		}

		target := resolveLocator(body, locator)
		if target == nil {
			return nil, "", fmt.Errorf("locator %q for answer %q did not match any element in the document", locator, a.PairID)
		}
		return target, locator, nil
	}
}

// applyAnswer dispatches one answer to its insertion mode.
func applyAnswer(target *etree.Element, a document.Answer) error {
	switch a.Mode {
	case document.ReplaceContent, "":
		return replaceContent(target, a)
	case document.Append:
		return appendContent(target, a)
	case document.ReplacePlaceholder:
		return replacePlaceholder(target, a)
	}
	return fmt.Errorf("unsupported insertion mode %q", a.Mode)
}

// insertionElement builds the content element for an answer: the pre-built
// structured payload when present, otherwise a plain run carrying Value.
func insertionElement(a document.Answer) (*etree.Element, error) {
	if a.InsertionXML != "" {
		el := parseSnippet(a.InsertionXML)
		if el == nil {
			return nil, fmt.Errorf("insertion_xml is not well-formed XML")
		}
		return el.Copy(), nil
	}
	return BuildRun(a.Value, nil), nil
}

// replaceContent removes every child of the target except its property
// nodes, clears direct text, and inserts the new content. A bare run going
// into a table cell is wrapped in a synthetic paragraph first.
func replaceContent(target *etree.Element, a document.Answer) error {
	newEl, err := insertionElement(a)
	if err != nil {
		return err
	}

	var preserved []*etree.Element
	for _, ch := range target.ChildElements() {
		if propertyTags[ch.FullTag()] {
			preserved = append(preserved, ch)
		}
	}
	for _, tok := range append([]etree.Token{}, target.Child...) {
		target.RemoveChild(tok)
	}
	for _, p := range preserved {
		target.AddChild(p)
	}

	if target.FullTag() == "w:tc" && newEl.FullTag() == "w:r" {
		para := etree.NewElement("w:p")
		para.AddChild(newEl)
		target.AddChild(para)
	} else {
		target.AddChild(newEl)
	}
	return nil
}

// appendContent inserts the new content as a trailing child, leaving all
// existing children untouched. A bare run appended to a table cell is
// wrapped the same way replaceContent wraps it.
func appendContent(target *etree.Element, a document.Answer) error {
	newEl, err := insertionElement(a)
	if err != nil {
		return err
	}
	if target.FullTag() == "w:tc" && newEl.FullTag() == "w:r" {
		para := etree.NewElement("w:p")
		para.AddChild(newEl)
		target.AddChild(para)
		return nil
	}
	target.AddChild(newEl)
	return nil
}

// replacePlaceholder substitutes the first placeholder span found among the
// target's text leaves: the caller-supplied literal when given, otherwise
// the shared placeholder patterns. At most one occurrence is replaced per
// call, first match in document order.
func replacePlaceholder(target *etree.Element, a document.Answer) error {
	value := a.Value
	if a.InsertionXML != "" {
		if el := parseSnippet(a.InsertionXML); el != nil {
			if t := findDescendant(el, "w:t"); t != nil {
				value = t.Text()
			} else if el.FullTag() == "w:t" {
				value = el.Text()
			}
		}
	}

	var leaves []*etree.Element
	walk(target, func(e *etree.Element) {
		if e.FullTag() == "w:t" {
			leaves = append(leaves, e)
		}
	})

	for _, t := range leaves {
		text := t.Text()
		if text == "" {
			continue
		}
		if a.Placeholder != "" {
			if strings.Contains(text, a.Placeholder) {
				t.SetText(strings.Replace(text, a.Placeholder, value, 1))
				return nil
			}
			continue
		}
		if loc := document.PlaceholderRe.FindStringIndex(text); loc != nil {
			t.SetText(text[:loc[0]] + value + text[loc[1]:])
			return nil
		}
	}
	return fmt.Errorf("no placeholder found in target")
}
