// fields.go detects likely fillable targets in a workbook by the Q/A
// adjacency heuristic: a cell holding text immediately followed in its row
// by an empty cell.

package excel

import (
	"fmt"
	"strings"

	"github.com/docfill/docfill/internal/document"
)

// Fields returns the code-detected inventory of fillable cells. The field
// value carries the empty cell's ID so the agent can address it directly.
func (h *Handler) Fields(fileBytes []byte) ([]document.FormField, error) {
	wb, err := openWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var fields []document.FormField
	counter := 0

	for sheetIdx, name := range wb.GetSheetList() {
		grid, err := sheetGrid(wb, name)
		if err != nil {
			return nil, err
		}
		for r, row := range grid {
			for c := 0; c+1 < len(row); c++ {
				question := strings.TrimSpace(row[c])
				answer := strings.TrimSpace(row[c+1])
				if question == "" || answer != "" {
					continue
				}
				counter++
				fields = append(fields, document.FormField{
					FieldID:      fmt.Sprintf("field_%d", counter),
					Label:        document.Truncate(question, h.opts.ContextLimit),
					FieldType:    "spreadsheet_cell",
					CurrentValue: fmt.Sprintf("S%d-R%d-C%d", sheetIdx+1, r+1, c+2),
				})
			}
		}
	}
	return fields, nil
}
