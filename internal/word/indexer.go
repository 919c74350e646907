// indexer.go walks the OOXML body and builds the compact indexed
// representation: stable element IDs, one text line per element, the
// ID→locator map, and the complex-element list.
//
// IDs encode position only (T1-R2-C1 for table cells, P5 for top-level
// paragraphs). Re-indexing byte-identical input must reproduce identical
// output; the caller's two-phase validate→write workflow depends on it.

package word

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfill/docfill/internal/document"
)

// Index walks the document body and returns the compact structure.
func (h *Handler) Index(fileBytes []byte) (*document.Structure, error) {
	_, body, err := parseDocument(fileBytes)
	if err != nil {
		return nil, err
	}
	return h.indexBody(body), nil
}

// indexBody assigns stable IDs in traversal order. Paragraph and table
// counters are independent and reset only at the start of each traversal.
func (h *Handler) indexBody(body *etree.Element) *document.Structure {
	ix := &indexRun{
		handler:   h,
		body:      body,
		locators:  map[string]string{},
		complexID: []string{},
	}

	pCounter := 0
	tCounter := 0
	for _, child := range body.ChildElements() {
		switch child.FullTag() {
		case "w:tbl":
			tCounter++
			ix.indexTable(child, tCounter)
		case "w:p":
			pCounter++
			ix.indexParagraph(child, fmt.Sprintf("P%d", pCounter))
		}
	}

	return &document.Structure{
		CompactText: strings.Join(ix.lines, "\n"),
		IDToLocator: ix.locators,
		ComplexIDs:  ix.complexID,
	}
}

// indexRun accumulates one traversal's output.
type indexRun struct {
	handler   *Handler
	body      *etree.Element
	lines     []string
	locators  map[string]string
	complexID []string
}

// cellInfo is the per-cell analysis a row needs before roles can be
// assigned.
type cellInfo struct {
	id      string
	el      *etree.Element
	text    string
	complex string // complexity label, "" if simple
	target  bool
}

func (ix *indexRun) indexTable(tbl *etree.Element, tblNum int) {
	rowNum := 0
	for _, tr := range tbl.ChildElements() {
		if tr.FullTag() != "w:tr" {
			continue
		}
		rowNum++
		ix.indexRow(tr, tblNum, rowNum)
	}
}

// indexRow analyses every cell first, then classifies roles: if the row
// contains at least one answer-target cell, every simple non-target cell is
// a "question" and every target cell an "answer". Rows with no target cell
// (typically headers) get no role tags. Recomputed from scratch on every
// index call — roles are advisory and must never be cached across edits.
func (ix *indexRun) indexRow(tr *etree.Element, tblNum, rowNum int) {
	var cells []cellInfo
	colNum := 0
	for _, tc := range tr.ChildElements() {
		if tc.FullTag() != "w:tc" {
			continue
		}
		colNum++
		id := fmt.Sprintf("T%d-R%d-C%d", tblNum, rowNum, colNum)
		ix.locators[id] = buildLocator(tc, ix.body)

		info := cellInfo{id: id, el: tc, complex: detectComplex(tc)}
		if info.complex == "" {
			info.text = elementText(tc)
			info.target = document.IsAnswerTarget(info.text)
		}
		cells = append(cells, info)
	}

	rowHasTarget := false
	for _, c := range cells {
		if c.complex == "" && c.target {
			rowHasTarget = true
			break
		}
	}

	for _, c := range cells {
		if c.complex != "" {
			ix.emitComplex(c.id, c.el, c.complex)
			continue
		}
		role := ""
		if rowHasTarget {
			if c.target {
				role = "answer"
			} else {
				role = "question"
			}
		}
		ix.emitLine(c.id, c.el, c.text, role)
	}
}

func (ix *indexRun) indexParagraph(p *etree.Element, id string) {
	ix.locators[id] = buildLocator(p, ix.body)

	if label := detectComplex(p); label != "" {
		ix.emitComplex(id, p, label)
		return
	}
	ix.emitLine(id, p, elementText(p), "")
}

// emitLine renders one simple element: {id}: "{text}"{hints}{target-marker}
func (ix *indexRun) emitLine(id string, el *etree.Element, text, role string) {
	hints := formattingHints(el, text)
	if role != "" {
		hints = append(hints, role)
	}
	hintStr := ""
	if len(hints) > 0 {
		hintStr = fmt.Sprintf(" [%s]", strings.Join(hints, ", "))
	}
	ix.lines = append(ix.lines, fmt.Sprintf("%s: %q%s%s", id, text, hintStr, targetMarker(text)))
}

// emitComplex renders a complex element as truncated raw markup and records
// its ID so callers know the text line is not a faithful linearisation.
func (ix *indexRun) emitComplex(id string, el *etree.Element, label string) {
	ix.complexID = append(ix.complexID, id)
	raw := document.Truncate(rawMarkup(el), ix.handler.opts.RawSnippetLimit)
	ix.lines = append(ix.lines, fmt.Sprintf("%s: COMPLEX(%s): %s", id, label, raw))
}
