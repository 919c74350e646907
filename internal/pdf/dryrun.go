// dryrun.go previews a form fill without producing output bytes.

package pdf

import (
	"fmt"
	"strings"

	"github.com/docfill/docfill/internal/document"
)

// Preview reports what Write would do to each field. The real writer skips
// unknown fields silently; the preview surfaces them as warnings so the
// agent sees exactly which answers a fill would drop.
func (h *Handler) Preview(fileBytes []byte, answers []document.Answer) ([]document.Preview, error) {
	fields, err := exportFields(fileBytes)
	if err != nil {
		return nil, err
	}

	previews := make([]document.Preview, 0, len(answers))
	for _, a := range answers {
		ref := a.Ref
		if ref == "" {
			ref = a.PairID
		}

		f, ok := resolveRef(ref, fields)
		if !ok {
			previews = append(previews, document.Preview{
				PairID:     a.PairID,
				Locator:    ref,
				WouldWrite: a.Value,
				Status:     document.PreviewWarning,
				Message:    fmt.Sprintf("no form field matches %q — a write would skip this answer", ref),
			})
			continue
		}

		p := document.Preview{
			PairID:      a.PairID,
			Locator:     f.ID,
			CurrentText: f.Value,
			WouldWrite:  a.Value,
			Status:      document.PreviewOK,
		}
		switch {
		case f.Locked:
			p.Status = document.PreviewWarning
			p.Message = fmt.Sprintf("field %q is read-only", f.Name)
		case strings.TrimSpace(f.Value) != "" && f.Value != "Off":
			p.Status = document.PreviewWarning
			p.Message = fmt.Sprintf("Target already contains: '%s'", document.Truncate(f.Value, 60))
		}
		previews = append(previews, p)
	}
	return previews, nil
}
