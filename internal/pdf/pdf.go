// Package pdf implements the AcroForm (.pdf) document handler.
//
// PDF forms have native field names, so stable IDs (F1, F2, ...) are
// assigned over the exported field list in a fixed canonical order and the
// ID→name map doubles as the locator map. Flat or scanned PDFs have no
// fields at all; that is a reportable condition, not an error.

package pdf

import (
	"github.com/docfill/docfill/internal/document"
)

// Handler implements document.Handler for PDF forms.
type Handler struct {
	opts document.Options
}

// New returns a PDF handler with the given options applied.
func New(opts document.Options) *Handler {
	return &Handler{opts: opts.Normalised()}
}

// Raw returns the full extraction: the complete field inventory.
func (h *Handler) Raw(fileBytes []byte) (*document.RawStructure, error) {
	fields, err := h.Fields(fileBytes)
	if err != nil {
		return nil, err
	}
	return &document.RawStructure{Fields: fields}, nil
}

// Fields returns every form field as a code-detected fillable target. The
// field ID is the stable F-ID, usable directly as a write reference.
func (h *Handler) Fields(fileBytes []byte) ([]document.FormField, error) {
	fields, err := exportFields(fileBytes)
	if err != nil {
		return nil, err
	}

	out := make([]document.FormField, 0, len(fields))
	for _, f := range fields {
		label := f.Name
		if f.AltName != "" {
			label = f.AltName
		}
		out = append(out, document.FormField{
			FieldID:      f.ID,
			Label:        label,
			FieldType:    f.Type,
			CurrentValue: f.Value,
			Options:      f.Options,
			Page:         f.Page,
			ReadOnly:     f.Locked,
		})
	}
	return out, nil
}
