// writer.go fills form fields from answers.
//
// An answer naming a field the PDF does not have is skipped silently,
// unlike the Word writer's hard error: PDF answer sets are routinely
// reused across near-identical form revisions where a field may simply
// be absent, and a partial fill is the useful outcome.

package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docfill/docfill/internal/document"
)

// Write fills each answer's field and returns the rewritten PDF bytes.
// With nothing to fill the input bytes come back unchanged.
func (h *Handler) Write(fileBytes []byte, answers []document.Answer) ([]byte, error) {
	fields, err := exportFields(fileBytes)
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	for _, a := range answers {
		ref := a.Ref
		if ref == "" {
			ref = a.PairID
		}
		f, ok := resolveRef(ref, fields)
		if !ok {
			continue
		}
		values[f.ID] = a.Value
	}
	if len(values) == 0 {
		return fileBytes, nil
	}

	payload, err := fillJSON(values, fieldByID(fields))
	if err != nil {
		return nil, fmt.Errorf("build fill payload: %w", err)
	}

	var out bytes.Buffer
	if err := api.FillForm(bytes.NewReader(fileBytes), bytes.NewReader(payload), &out, pdfConfig()); err != nil {
		return nil, fmt.Errorf("fill form: %w", err)
	}
	return out.Bytes(), nil
}
