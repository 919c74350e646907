// validate.go confirms field references against the form. A PDF location
// snippet is an F-ID or a native field name.

package pdf

import (
	"fmt"
	"strings"

	"github.com/docfill/docfill/internal/document"
)

// Validate checks each location's reference against the exported field
// list. The context describes the matched field so the agent can confirm
// it picked the right one.
func (h *Handler) Validate(fileBytes []byte, locations []document.Location) ([]document.LocationResult, error) {
	fields, err := exportFields(fileBytes)
	if err != nil {
		return nil, err
	}

	results := make([]document.LocationResult, 0, len(locations))
	for _, loc := range locations {
		ref := strings.TrimSpace(loc.Snippet)
		if ref == "" {
			ref = loc.PairID
		}

		f, ok := resolveRef(ref, fields)
		if !ok {
			results = append(results, document.LocationResult{
				PairID:  loc.PairID,
				Status:  document.NotFound,
				Context: fmt.Sprintf("no form field matches %q", ref),
			})
			continue
		}
		results = append(results, document.LocationResult{
			PairID:  loc.PairID,
			Status:  document.Matched,
			Locator: f.ID,
			Context: fieldLine(f),
		})
	}
	return results, nil
}
