// indexer.go builds the compact indexed representation of a workbook: one
// line per cell with S{sheet}-R{row}-C{col} IDs, formatting and merge
// hints, and answer-target markers on empty cells.

package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docfill/docfill/internal/document"
)

// Index walks every sheet and returns the compact representation. Cell IDs
// are their own locators, and nothing in a spreadsheet is complex enough to
// need a raw-markup fallback.
func (h *Handler) Index(fileBytes []byte) (*document.Structure, error) {
	wb, err := openWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var lines []string
	idToLocator := map[string]string{}

	for sheetIdx, name := range wb.GetSheetList() {
		if err := h.indexSheet(wb, name, sheetIdx+1, &lines, idToLocator); err != nil {
			return nil, err
		}
	}

	return &document.Structure{
		CompactText: strings.Join(lines, "\n"),
		IDToLocator: idToLocator,
		ComplexIDs:  []string{},
	}, nil
}

func (h *Handler) indexSheet(wb *excelize.File, sheet string, sheetIdx int, lines *[]string, idToLocator map[string]string) error {
	*lines = append(*lines, fmt.Sprintf("=== Sheet %d: %q ===", sheetIdx, sheet))

	grid, err := sheetGrid(wb, sheet)
	if err != nil {
		return err
	}
	merged := mergedLookup(wb, sheet)

	for r, row := range grid {
		for c, text := range row {
			id := fmt.Sprintf("S%d-R%d-C%d", sheetIdx, r+1, c+1)
			idToLocator[id] = id
			*lines = append(*lines, h.cellLine(wb, sheet, id, r+1, c+1, text, merged))
		}
	}
	return nil
}

// cellLine renders one compact line for a cell.
func (h *Handler) cellLine(wb *excelize.File, sheet, id string, row, col int, text string, merged map[string]string) string {
	hints := formattingHints(wb, sheet, row, col, text)

	if coord, err := excelize.CoordinatesToCellName(col, row); err == nil {
		if rng, ok := merged[coord]; ok {
			hints = append(hints, "merged: "+rng)
		}
	}

	marker := ""
	if strings.TrimSpace(text) == "" {
		marker = " ← answer target"
	}
	hintStr := ""
	if len(hints) > 0 {
		hintStr = " [" + strings.Join(hints, ", ") + "]"
	}
	return fmt.Sprintf("%s: %q%s%s", id, text, hintStr, marker)
}

// formattingHints detects empty/bold/italic/shaded on a cell. Style lookups
// that fail simply yield no hints.
func formattingHints(wb *excelize.File, sheet string, row, col int, text string) []string {
	var hints []string
	if strings.TrimSpace(text) == "" {
		hints = append(hints, "empty")
	}

	coord, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return hints
	}
	styleID, err := wb.GetCellStyle(sheet, coord)
	if err != nil {
		return hints
	}
	style, err := wb.GetStyle(styleID)
	if err != nil || style == nil {
		return hints
	}

	if style.Font != nil {
		if style.Font.Bold {
			hints = append(hints, "bold")
		}
		if style.Font.Italic {
			hints = append(hints, "italic")
		}
	}
	if isShaded(style.Fill) {
		hints = append(hints, "shaded")
	}
	return hints
}

// isShaded reports a visible fill: a pattern with a colour that is neither
// white nor the zero colour.
func isShaded(fill excelize.Fill) bool {
	if fill.Pattern == 0 || len(fill.Color) == 0 {
		return false
	}
	rgb := strings.ToUpper(strings.TrimPrefix(fill.Color[0], "#"))
	switch rgb {
	case "", "0", "00000000", "FFFFFF", "FFFFFFFF", "00FFFFFF":
		return false
	}
	return true
}

// mergedLookup maps the top-left coordinate of each multi-cell merged range
// to its range string (e.g. "A5" → "A5:B6").
func mergedLookup(wb *excelize.File, sheet string) map[string]string {
	lookup := map[string]string{}
	for _, mc := range mergedRanges(wb, sheet) {
		start, end := mc.GetStartAxis(), mc.GetEndAxis()
		if start == "" || start == end {
			continue
		}
		lookup[start] = start + ":" + end
	}
	return lookup
}
