// verifier.go re-reads a written workbook and compares cell values to the
// expected answers. Spreadsheets need no structural pass: the workbook
// library cannot produce a malformed .xlsx, so content is the whole check.

package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/docfill/docfill/internal/document"
)

// Verify reads each expected answer's cell and classifies it as matched,
// mismatched, or missing. Per-item outcomes never abort the batch.
func (h *Handler) Verify(fileBytes []byte, expected []document.ExpectedAnswer) (*document.Report, error) {
	wb, err := openWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	results := make([]document.ContentResult, 0, len(expected))
	for _, e := range expected {
		ref := e.Ref
		if ref == "" {
			ref = e.PairID
		}

		sheetIdx, row, col, err := parseCellID(ref)
		if err != nil {
			results = append(results, document.ContentResult{
				PairID:   e.PairID,
				Status:   document.ContentMissing,
				Expected: e.Expected,
				Actual:   fmt.Sprintf("Invalid cell ID: %s", ref),
			})
			continue
		}
		sheet, err := sheetByIndex(wb, sheetIdx)
		if err != nil {
			results = append(results, document.ContentResult{
				PairID:   e.PairID,
				Status:   document.ContentMissing,
				Expected: e.Expected,
			})
			continue
		}

		coord, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			results = append(results, document.ContentResult{
				PairID:   e.PairID,
				Status:   document.ContentMissing,
				Expected: e.Expected,
			})
			continue
		}
		actual, _ := wb.GetCellValue(sheet, coord)

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

	return document.BuildReport(results, expected, nil), nil
}
