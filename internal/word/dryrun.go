// dryrun.go implements the non-mutating preview of a write: the same
// resolution the writer performs, with a read in place of the mutation.
// The agent reviews the preview to catch right-answer-wrong-cell mistakes
// before committing.

package word

import (
	"fmt"
	"strings"

	"github.com/docfill/docfill/internal/document"
)

// Preview resolves every answer's target and reports what a write would
// do. The input bytes are never touched and no output bytes are produced.
func (h *Handler) Preview(fileBytes []byte, answers []document.Answer) ([]document.Preview, error) {
	_, body, err := parseDocument(fileBytes)
	if err != nil {
		return nil, err
	}

	resolve := h.newResolver(body)
	previews := make([]document.Preview, 0, len(answers))
	for _, a := range answers {
		target, locator, err := resolve(a)
		if err != nil {
			ref := a.Ref
			if ref == "" {
				ref = a.PairID
			}
			previews = append(previews, document.Preview{
				PairID:     a.PairID,
				Locator:    ref,
				WouldWrite: describeWrite(a),
				Mode:       string(a.Mode),
				Status:     document.PreviewError,
				Message:    err.Error(),
			})
			continue
		}

		current := elementText(target)
		p := document.Preview{
			PairID:      a.PairID,
			Locator:     locator,
			CurrentText: current,
			WouldWrite:  describeWrite(a),
			Mode:        string(a.Mode),
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

// describeWrite renders the value a write would insert: the literal text,
// or a length-only descriptor for pre-built structured payloads.
func describeWrite(a document.Answer) string {
	if strings.TrimSpace(a.Value) != "" {
		return a.Value
	}
	if a.InsertionXML != "" {
		return fmt.Sprintf("[pre-built XML: %d chars]", len(a.InsertionXML))
	}
	return "[empty]"
}
