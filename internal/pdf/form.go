// form.go is the bridge to the PDF library's form-JSON interchange format:
// fields are read by exporting the AcroForm to JSON and written by filling
// from the same shape. Working over the interchange format keeps the
// library coupling to two calls, export and fill.
//
// Stable F-IDs are assigned over the exported list in a fixed order: field
// groups in declaration order (text, date, checkbox, radio group, dropdown,
// listbox), document order within each group. Index, write, and verify all
// derive the same numbering from the same bytes, which is the only
// invariant the IDs need.

package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docfill/docfill/internal/document"
)

// field is one form field in canonical order, with its assigned F-ID.
type field struct {
	ID      string
	Name    string
	AltName string
	Type    string
	Value   string
	Options []string
	Page    int
	Locked  bool
}

// Form-JSON shapes. Checkboxes carry a boolean value, list boxes a value
// array; everything else a plain string.
type textEntry struct {
	Pages   []int  `json:"pages,omitempty"`
	Name    string `json:"name"`
	AltName string `json:"altname,omitempty"`
	Value   string `json:"value"`
	Locked  bool   `json:"locked,omitempty"`
}

type checkboxEntry struct {
	Pages   []int  `json:"pages,omitempty"`
	Name    string `json:"name"`
	AltName string `json:"altname,omitempty"`
	Value   bool   `json:"value"`
	Locked  bool   `json:"locked,omitempty"`
}

type choiceEntry struct {
	Pages   []int    `json:"pages,omitempty"`
	Name    string   `json:"name"`
	AltName string   `json:"altname,omitempty"`
	Options []string `json:"options,omitempty"`
	Value   string   `json:"value"`
	Locked  bool     `json:"locked,omitempty"`
}

type listboxEntry struct {
	Pages   []int    `json:"pages,omitempty"`
	Name    string   `json:"name"`
	AltName string   `json:"altname,omitempty"`
	Options []string `json:"options,omitempty"`
	Values  []string `json:"values,omitempty"`
	Locked  bool     `json:"locked,omitempty"`
}

type formEntry struct {
	TextFields  []textEntry     `json:"textfield,omitempty"`
	DateFields  []textEntry     `json:"datefield,omitempty"`
	Checkboxes  []checkboxEntry `json:"checkbox,omitempty"`
	RadioGroups []choiceEntry   `json:"radiobuttongroup,omitempty"`
	Comboboxes  []choiceEntry   `json:"combobox,omitempty"`
	Listboxes   []listboxEntry  `json:"listbox,omitempty"`
}

type formJSON struct {
	Forms []formEntry `json:"forms"`
}

func pdfConfig() *model.Configuration {
	return model.NewDefaultConfiguration()
}

// exportFields exports the AcroForm and returns all fields in canonical
// order with F-IDs assigned. A PDF with no form at all yields an empty
// slice, not an error.
func exportFields(fileBytes []byte) ([]field, error) {
	var buf bytes.Buffer
	if err := api.ExportFormJSON(bytes.NewReader(fileBytes), &buf, "", pdfConfig()); err != nil {
		// A flat or scanned PDF has no AcroForm to export.
		if strings.Contains(err.Error(), "no form") {
			return nil, nil
		}
		return nil, fmt.Errorf("export form: %w", err)
	}

	var fj formJSON
	if err := json.Unmarshal(buf.Bytes(), &fj); err != nil {
		return nil, fmt.Errorf("parse form export: %w", err)
	}

	var fields []field
	add := func(name, altName, ftype, value string, options []string, pages []int, locked bool) {
		f := field{
			Name:    name,
			AltName: altName,
			Type:    ftype,
			Value:   value,
			Options: options,
			Locked:  locked,
		}
		if len(pages) > 0 {
			f.Page = pages[0]
		}
		if f.Name == "" {
			f.Name = fmt.Sprintf("unnamed_%d", len(fields)+1)
		}
		f.ID = fmt.Sprintf("F%d", len(fields)+1)
		fields = append(fields, f)
	}

	for _, form := range fj.Forms {
		for _, e := range form.TextFields {
			add(e.Name, e.AltName, "text", e.Value, nil, e.Pages, e.Locked)
		}
		for _, e := range form.DateFields {
			add(e.Name, e.AltName, "date", e.Value, nil, e.Pages, e.Locked)
		}
		for _, e := range form.Checkboxes {
			v := ""
			if e.Value {
				v = "checked"
			}
			add(e.Name, e.AltName, "checkbox", v, nil, e.Pages, e.Locked)
		}
		for _, e := range form.RadioGroups {
			add(e.Name, e.AltName, "radio", e.Value, e.Options, e.Pages, e.Locked)
		}
		for _, e := range form.Comboboxes {
			add(e.Name, e.AltName, "dropdown", e.Value, e.Options, e.Pages, e.Locked)
		}
		for _, e := range form.Listboxes {
			add(e.Name, e.AltName, "listbox", strings.Join(e.Values, " | "), e.Options, e.Pages, e.Locked)
		}
	}
	return fields, nil
}

// fieldByID builds the F-ID lookup for a field list.
func fieldByID(fields []field) map[string]field {
	index := make(map[string]field, len(fields))
	for _, f := range fields {
		index[f.ID] = f
	}
	return index
}

// truthyValues are the strings a checkbox write treats as checked.
var truthyValues = map[string]bool{
	"true": true, "yes": true, "1": true, "checked": true, "on": true,
}

// fillJSON builds the form-JSON payload setting the given field values.
func fillJSON(values map[string]string, byID map[string]field) ([]byte, error) {
	var entry formEntry
	for id, value := range values {
		f, ok := byID[id]
		if !ok {
			continue
		}
		switch f.Type {
		case "checkbox":
			entry.Checkboxes = append(entry.Checkboxes, checkboxEntry{
				Name:  f.Name,
				Value: truthyValues[strings.ToLower(strings.TrimSpace(value))],
			})
		case "radio":
			entry.RadioGroups = append(entry.RadioGroups, choiceEntry{Name: f.Name, Value: value})
		case "dropdown":
			entry.Comboboxes = append(entry.Comboboxes, choiceEntry{Name: f.Name, Value: value})
		case "listbox":
			entry.Listboxes = append(entry.Listboxes, listboxEntry{Name: f.Name, Values: []string{value}})
		case "date":
			entry.DateFields = append(entry.DateFields, textEntry{Name: f.Name, Value: value})
		default:
			entry.TextFields = append(entry.TextFields, textEntry{Name: f.Name, Value: value})
		}
	}
	return json.Marshal(formJSON{Forms: []formEntry{entry}})
}

// resolveRef maps one answer reference (F-ID, or a native field name) to
// the field it names. The bool reports whether anything matched.
func resolveRef(ref string, fields []field) (field, bool) {
	if document.FieldIDRe.MatchString(ref) {
		for _, f := range fields {
			if f.ID == ref {
				return f, true
			}
		}
		return field{}, false
	}
	for _, f := range fields {
		if f.Name == ref {
			return f, true
		}
	}
	return field{}, false
}
