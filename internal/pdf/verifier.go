// verifier.go re-reads a filled form and compares field values to the
// expected answers. No structural pass: the PDF library owns document
// integrity, so content is the whole check.

package pdf

import (
	"github.com/docfill/docfill/internal/document"
)

// Verify reads each expected answer's field and classifies it as matched,
// mismatched, or missing. An unknown reference is missing, mirroring the
// writer's silent skip.
func (h *Handler) Verify(fileBytes []byte, expected []document.ExpectedAnswer) (*document.Report, error) {
	fields, err := exportFields(fileBytes)
	if err != nil {
		return nil, err
	}

	results := make([]document.ContentResult, 0, len(expected))
	for _, e := range expected {
		ref := e.Ref
		if ref == "" {
			ref = e.PairID
		}

		f, ok := resolveRef(ref, fields)
		if !ok {
			results = append(results, document.ContentResult{
				PairID:   e.PairID,
				Status:   document.ContentMissing,
				Expected: e.Expected,
			})
			continue
		}

		r := document.ContentResult{
			PairID:   e.PairID,
			Expected: e.Expected,
			Actual:   f.Value,
		}
		if document.Matches(e.Expected, f.Value, h.opts.CaseSensitive) {
			r.Status = document.ContentMatched
		} else {
			r.Status = document.ContentMismatched
			r.Diff = document.CompactDiff(e.Expected, f.Value)
		}
		results = append(results, r)
	}

	return document.BuildReport(results, expected, nil), nil
}
