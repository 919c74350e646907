// snippet.go implements the fallback locator: matching a raw OOXML snippet
// against the document by structural equality.
//
// Structural equality requires identical tags, identical attribute maps,
// and identical trimmed text/tail content, recursively over children of
// equal count. Namespace declarations (xmlns attributes) are ignored —
// their placement varies with tree depth — while prefixed tag and
// attribute identity still has to match.

package word

import (
	"strings"

	"github.com/beevik/etree"
)

// ooxmlNamespaces are the declarations injected when a snippet arrives
// without them, keyed by prefix.
var ooxmlNamespaces = map[string]string{
	"w":  "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
	"r":  "http://schemas.openxmlformats.org/officeDocument/2006/relationships",
	"wp": "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing",
}

// parseSnippet parses an OOXML snippet into a detached element. Snippets
// lacking namespace declarations are wrapped in a synthetic container that
// declares them. Returns nil when the snippet is not well-formed XML —
// an unparsable snippet resolves NOT_FOUND, it never raises.
func parseSnippet(snippet string) *etree.Element {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(snippet); err == nil && doc.Root() != nil {
		return doc.Root()
	}

	var b strings.Builder
	b.WriteString("<_wrapper")
	for prefix, uri := range ooxmlNamespaces {
		b.WriteString(` xmlns:` + prefix + `="` + uri + `"`)
	}
	b.WriteString(">")
	b.WriteString(snippet)
	b.WriteString("</_wrapper>")

	doc = etree.NewDocument()
	if err := doc.ReadFromString(b.String()); err != nil {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return nil
	}
	children := root.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// structurallyEqual recursively compares two elements per the rules above.
func structurallyEqual(a, b *etree.Element) bool {
	if a.FullTag() != b.FullTag() {
		return false
	}
	if !attrsEqual(a, b) {
		return false
	}
	if strings.TrimSpace(a.Text()) != strings.TrimSpace(b.Text()) {
		return false
	}
	if strings.TrimSpace(a.Tail()) != strings.TrimSpace(b.Tail()) {
		return false
	}

	ac := a.ChildElements()
	bc := b.ChildElements()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !structurallyEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// attrsEqual compares attribute sets as key/value maps, order-independent,
// skipping xmlns declarations.
func attrsEqual(a, b *etree.Element) bool {
	am := attrMap(a)
	bm := attrMap(b)
	if len(am) != len(bm) {
		return false
	}
	for k, v := range am {
		if bv, ok := bm[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func attrMap(el *etree.Element) map[string]string {
	m := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		key := a.Key
		if a.Space != "" {
			key = a.Space + ":" + a.Key
		}
		m[key] = a.Value
	}
	return m
}

// findSnippet returns the locator of every element in body structurally
// equal to the snippet. Zero results means not found, more than one means
// ambiguous — common for short boilerplate like empty placeholder cells.
func findSnippet(body *etree.Element, snippet string) []string {
	snippetEl := parseSnippet(snippet)
	if snippetEl == nil {
		return nil
	}

	tag := snippetEl.FullTag()
	var locators []string
	for _, top := range body.ChildElements() {
		walk(top, func(el *etree.Element) {
			if el.FullTag() == tag && structurallyEqual(el, snippetEl) {
				locators = append(locators, buildLocator(el, body))
			}
		})
	}
	return locators
}
