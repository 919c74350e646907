// dryrun.go previews a workbook write without saving anything.

package excel

import (
	"fmt"
	"strings"

	"github.com/docfill/docfill/internal/document"
)

// Preview reports what Write would do to each cell. A reference that does
// not resolve is an error record; a cell that already holds a value gets a
// warning so the agent can catch a wrong-cell answer before committing.
func (h *Handler) Preview(fileBytes []byte, answers []document.Answer) ([]document.Preview, error) {
	wb, err := openWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	previews := make([]document.Preview, 0, len(answers))
	for _, a := range answers {
		ref := a.Ref
		if ref == "" {
			ref = a.PairID
		}

		sheet, coord, err := cellRef(wb, a)
		if err != nil {
			previews = append(previews, document.Preview{
				PairID:     a.PairID,
				Locator:    ref,
				WouldWrite: a.Value,
				Status:     document.PreviewError,
				Message:    err.Error(),
			})
			continue
		}

		current, _ := wb.GetCellValue(sheet, coord)
		p := document.Preview{
			PairID:      a.PairID,
			Locator:     ref,
			CurrentText: current,
			WouldWrite:  a.Value,
			Status:      document.PreviewOK,
		}
		if strings.TrimSpace(current) != "" {
			p.Status = document.PreviewWarning
			p.Message = fmt.Sprintf("Target already contains: '%s'", document.Truncate(current, 60))
		}
		previews = append(previews, p)
	}
	return previews, nil
}
