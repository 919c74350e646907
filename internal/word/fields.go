// fields.go detects likely fillable targets by heuristic, without any
// agent involvement: empty table cells adjacent to cells with question
// text, and paragraphs carrying placeholder patterns.

package word

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfill/docfill/internal/document"
)

// Fields returns the code-detected inventory of fillable targets.
func (h *Handler) Fields(fileBytes []byte) ([]document.FormField, error) {
	_, body, err := parseDocument(fileBytes)
	if err != nil {
		return nil, err
	}

	fields, counter := h.emptyCellFields(body, 0)
	fields = append(fields, h.placeholderFields(body, counter)...)
	return fields, nil
}

// emptyCellFields finds the Q/A adjacency pattern: a cell with text
// immediately followed in its row by an empty cell.
func (h *Handler) emptyCellFields(body *etree.Element, startID int) ([]document.FormField, int) {
	var fields []document.FormField
	counter := startID

	walk(body, func(el *etree.Element) {
		if el.FullTag() != "w:tr" {
			return
		}
		var cells []*etree.Element
		for _, ch := range el.ChildElements() {
			if ch.FullTag() == "w:tc" {
				cells = append(cells, ch)
			}
		}
		for i := 0; i+1 < len(cells); i++ {
			question := strings.TrimSpace(contextText(cells[i], h.opts.ContextLimit))
			answer := strings.TrimSpace(contextText(cells[i+1], h.opts.ContextLimit))
			if question != "" && answer == "" {
				counter++
				fields = append(fields, document.FormField{
					FieldID:   fmt.Sprintf("field_%d", counter),
					Label:     question,
					FieldType: "table_cell",
				})
			}
		}
	})
	return fields, counter
}

// placeholderFields finds paragraphs containing placeholder patterns. One
// field per paragraph, keyed on the first pattern hit.
func (h *Handler) placeholderFields(body *etree.Element, startID int) []document.FormField {
	var fields []document.FormField
	counter := startID

	walk(body, func(el *etree.Element) {
		if el.FullTag() != "w:p" {
			return
		}
		text := contextText(el, h.opts.ContextLimit)
		match := document.PlaceholderRe.FindString(text)
		if match == "" {
			return
		}
		counter++
		fields = append(fields, document.FormField{
			FieldID:      fmt.Sprintf("field_%d", counter),
			Label:        strings.TrimSpace(text),
			FieldType:    "placeholder",
			CurrentValue: match,
		})
	})
	return fields
}
