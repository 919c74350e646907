// writer.go applies answers to workbook cells. Every reference is an
// S{sheet}-R{row}-C{col} ID; insertion modes do not apply to spreadsheet
// cells, where a write always sets the cell value.

package excel

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/docfill/docfill/internal/document"
)

// parseCellID splits a cell ID into its 1-indexed sheet, row, and column.
func parseCellID(id string) (sheet, row, col int, err error) {
	m := document.CellIDRe.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("invalid cell ID %q (expected S{sheet}-R{row}-C{col}, e.g. S1-R2-C3)", id)
	}
	sheet, _ = strconv.Atoi(m[1])
	row, _ = strconv.Atoi(m[2])
	col, _ = strconv.Atoi(m[3])
	return sheet, row, col, nil
}

// sheetByIndex maps a 1-indexed sheet number to its name.
func sheetByIndex(wb *excelize.File, idx int) (string, error) {
	sheets := wb.GetSheetList()
	if idx < 1 || idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range: workbook has %d sheet(s)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}

// cellRef resolves one answer's reference to (sheet name, coordinate).
func cellRef(wb *excelize.File, a document.Answer) (string, string, error) {
	ref := a.Ref
	if ref == "" {
		ref = a.PairID
	}
	sheetIdx, row, col, err := parseCellID(ref)
	if err != nil {
		return "", "", fmt.Errorf("answer %q: %w", a.PairID, err)
	}
	sheet, err := sheetByIndex(wb, sheetIdx)
	if err != nil {
		return "", "", fmt.Errorf("answer %q: %w", a.PairID, err)
	}
	coord, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", "", fmt.Errorf("answer %q: %w", a.PairID, err)
	}
	return sheet, coord, nil
}

// Write sets each answer's cell value and returns the saved workbook bytes.
func (h *Handler) Write(fileBytes []byte, answers []document.Answer) ([]byte, error) {
	wb, err := openWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	for _, a := range answers {
		sheet, coord, err := cellRef(wb, a)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, coord, a.Value); err != nil {
			return nil, fmt.Errorf("answer %q: set %s!%s: %w", a.PairID, sheet, coord, err)
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("save workbook: %w", err)
	}
	return buf.Bytes(), nil
}
