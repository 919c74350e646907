// indexer.go renders the compact field inventory: a header line, then the
// fields grouped by page with type, options, current value, and the tooltip
// text as context where the form author provided one.

package pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docfill/docfill/internal/document"
)

const flatPDFMessage = "No fillable form fields found. This PDF may be a flat/scanned document."

// Index assigns F-IDs to all form fields and returns the compact
// representation. The ID→locator map carries native field names.
func (h *Handler) Index(fileBytes []byte) (*document.Structure, error) {
	fields, err := exportFields(fileBytes)
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return &document.Structure{
			CompactText: flatPDFMessage,
			IDToLocator: map[string]string{},
			ComplexIDs:  []string{},
		}, nil
	}

	idToLocator := make(map[string]string, len(fields))
	for _, f := range fields {
		idToLocator[f.ID] = f.Name
	}

	return &document.Structure{
		CompactText: strings.Join(compactLines(fields), "\n"),
		IDToLocator: idToLocator,
		ComplexIDs:  []string{},
	}, nil
}

func compactLines(fields []field) []string {
	pageSet := map[int]bool{}
	for _, f := range fields {
		pageSet[f.Page] = true
	}
	pages := make([]int, 0, len(pageSet))
	for p := range pageSet {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	lines := []string{fmt.Sprintf("=== PDF Form: %d field%s across %d page%s ===",
		len(fields), plural(len(fields)), len(pages), plural(len(pages)))}

	for _, page := range pages {
		lines = append(lines, "", fmt.Sprintf("Page %d:", page))
		for _, f := range fields {
			if f.Page != page {
				continue
			}
			lines = append(lines, fieldLine(f))
			if f.AltName != "" {
				lines = append(lines, "    Context: "+f.AltName)
			}
		}
	}
	return lines
}

// fieldLine renders one field, e.g.:
//
//	[F1] "employee_name" (text) — empty
//	[F3] "dept" (dropdown, options: HR | Sales) — "HR"
func fieldLine(f field) string {
	typeStr := f.Type
	if len(f.Options) > 0 {
		typeStr += ", options: " + strings.Join(f.Options, " | ")
	}
	roStr := ""
	if f.Locked {
		roStr = " [read-only]"
	}
	return fmt.Sprintf("[%s] %q (%s) — %s%s", f.ID, f.Name, typeStr, describeValue(f), roStr)
}

func describeValue(f field) string {
	if f.Type == "checkbox" {
		switch f.Value {
		case "", "Off", "No":
			return "unchecked"
		}
		return "checked"
	}
	if f.Value == "" || f.Value == "Off" {
		return "empty"
	}
	return fmt.Sprintf("%q", f.Value)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
