// validate.go confirms cell references against the workbook. For
// spreadsheets a location snippet is simply a cell ID, so validation is a
// bounds check plus the same advisory question-cell warning the other
// handlers give when a target already holds text.

package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docfill/docfill/internal/document"
)

// Validate checks each location's cell ID: matched when the sheet exists
// and the cell falls inside its used range, not_found otherwise. Existing
// cell text is surfaced as a warning in the context, never as a status
// change.
func (h *Handler) Validate(fileBytes []byte, locations []document.Location) ([]document.LocationResult, error) {
	wb, err := openWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	results := make([]document.LocationResult, 0, len(locations))
	for _, loc := range locations {
		results = append(results, h.validateCell(wb, loc))
	}
	return results, nil
}

func (h *Handler) validateCell(wb *excelize.File, loc document.Location) document.LocationResult {
	ref := strings.TrimSpace(loc.Snippet)
	if ref == "" {
		ref = loc.PairID
	}

	sheetIdx, row, col, err := parseCellID(ref)
	if err != nil {
		return document.LocationResult{
			PairID:  loc.PairID,
			Status:  document.NotFound,
			Context: err.Error(),
		}
	}
	sheet, err := sheetByIndex(wb, sheetIdx)
	if err != nil {
		return document.LocationResult{
			PairID:  loc.PairID,
			Status:  document.NotFound,
			Context: err.Error(),
		}
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return document.LocationResult{
			PairID:  loc.PairID,
			Status:  document.NotFound,
			Context: err.Error(),
		}
	}
	maxRow, maxCol := sheetBounds(wb, sheet, rows)
	if row > maxRow || col > maxCol {
		return document.LocationResult{
			PairID: loc.PairID,
			Status: document.NotFound,
			Context: fmt.Sprintf("%s is outside the sheet's used range (%d rows x %d columns)",
				ref, maxRow, maxCol),
		}
	}

	coord, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return document.LocationResult{
			PairID:  loc.PairID,
			Status:  document.NotFound,
			Context: err.Error(),
		}
	}

	current, _ := wb.GetCellValue(sheet, coord)
	context := fmt.Sprintf("Current value: %q", document.Truncate(current, h.opts.ContextLimit))
	if strings.TrimSpace(current) != "" {
		context = fmt.Sprintf(
			"WARNING: %s contains existing text: '%s' — this looks like a question cell, not an answer target.",
			ref, document.Truncate(current, h.opts.ContextLimit))
		// The next column is only suggested when it is itself an answer
		// target, so the hint never points at another question cell.
		if col+1 <= maxCol {
			if next, err := excelize.CoordinatesToCellName(col+1, row); err == nil {
				if v, _ := wb.GetCellValue(sheet, next); document.IsAnswerTarget(v) {
					context += fmt.Sprintf(" Did you mean S%d-R%d-C%d?", sheetIdx, row, col+1)
				}
			}
		}
	}

	return document.LocationResult{
		PairID:  loc.PairID,
		Status:  document.Matched,
		Locator: ref,
		Context: context,
	}
}
