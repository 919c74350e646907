// Package excel implements the spreadsheet (.xlsx) document handler.
//
// Spreadsheets are the simple case of the pipeline: every cell already has
// a stable coordinate, so the S{sheet}-R{row}-C{col} ID doubles as the
// locator and no snippet matching or structural verification is needed —
// the workbook library guarantees well-formed output.

package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/docfill/docfill/internal/document"
)

// Handler implements document.Handler for .xlsx workbooks.
type Handler struct {
	opts document.Options
}

// New returns a spreadsheet handler with the given options applied.
func New(opts document.Options) *Handler {
	return &Handler{opts: opts.Normalised()}
}

// openWorkbook parses raw .xlsx bytes. The caller owns the Close.
func openWorkbook(fileBytes []byte) (*excelize.File, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	return wb, nil
}

// Raw returns the full extraction: every sheet's rectangular cell grid plus
// its merged ranges.
func (h *Handler) Raw(fileBytes []byte) (*document.RawStructure, error) {
	wb, err := openWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var sheets []document.SheetData
	for _, name := range wb.GetSheetList() {
		rows, err := sheetGrid(wb, name)
		if err != nil {
			return nil, err
		}
		var merged []string
		for _, mc := range mergedRanges(wb, name) {
			merged = append(merged, mc.GetStartAxis()+":"+mc.GetEndAxis())
		}
		sheets = append(sheets, document.SheetData{
			Name:   name,
			Rows:   rows,
			Merged: merged,
		})
	}
	return &document.RawStructure{Sheets: sheets}, nil
}

// sheetGrid returns the sheet's cells as a rectangular grid. The row reader
// trims trailing empty cells and rows, but empty cells are exactly where
// answers go, so the grid is padded back out to the sheet's dimension.
func sheetGrid(wb *excelize.File, sheet string) ([][]string, error) {
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	maxRow, maxCol := sheetBounds(wb, sheet, rows)
	grid := make([][]string, maxRow)
	for r := 0; r < maxRow; r++ {
		grid[r] = make([]string, maxCol)
		if r < len(rows) {
			copy(grid[r], rows[r])
		}
	}
	return grid, nil
}

// sheetBounds picks the rectangular extent of a sheet: the declared
// dimension when present, widened to cover whatever the row reader actually
// returned.
func sheetBounds(wb *excelize.File, sheet string, rows [][]string) (maxRow, maxCol int) {
	maxRow = len(rows)
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	if dim, err := wb.GetSheetDimension(sheet); err == nil && dim != "" {
		ref := dim
		if i := bytes.IndexByte([]byte(dim), ':'); i >= 0 {
			ref = dim[i+1:]
		}
		if col, row, err := excelize.CellNameToCoordinates(ref); err == nil {
			if row > maxRow {
				maxRow = row
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}
	return maxRow, maxCol
}

// mergedRanges returns the sheet's merged ranges, empty on any error — the
// hint is advisory and never worth failing an extraction over.
func mergedRanges(wb *excelize.File, sheet string) []excelize.MergeCell {
	merged, err := wb.GetMergeCells(sheet)
	if err != nil {
		return nil
	}
	return merged
}
