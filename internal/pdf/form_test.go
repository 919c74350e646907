// Tests run against the form-JSON bridge helpers directly; building real
// AcroForm PDFs in a test fixture is not worth the weight when the library
// boundary is two calls over a documented interchange format.

package pdf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() []field {
	return []field{
		{ID: "F1", Name: "employee_name", AltName: "Full legal name", Type: "text", Page: 1},
		{ID: "F2", Name: "start_date", Type: "date", Page: 1},
		{ID: "F3", Name: "remote", Type: "checkbox", Value: "Off", Page: 2},
		{ID: "F4", Name: "dept", Type: "dropdown", Options: []string{"HR", "Sales"}, Value: "HR", Page: 2},
		{ID: "F5", Name: "langs", Type: "listbox", Options: []string{"Go", "Python"}, Page: 2},
	}
}

func TestFillJSON_RoutesByFieldType(t *testing.T) {
	byID := fieldByID(sampleFields())
	payload, err := fillJSON(map[string]string{
		"F1": "Jane Doe",
		"F2": "2026-02-11",
		"F3": "yes",
		"F4": "Sales",
		"F5": "Go",
	}, byID)
	require.NoError(t, err)

	var fj formJSON
	require.NoError(t, json.Unmarshal(payload, &fj))
	require.Len(t, fj.Forms, 1)
	form := fj.Forms[0]

	require.Len(t, form.TextFields, 1)
	assert.Equal(t, "employee_name", form.TextFields[0].Name)
	assert.Equal(t, "Jane Doe", form.TextFields[0].Value)

	require.Len(t, form.DateFields, 1)
	assert.Equal(t, "2026-02-11", form.DateFields[0].Value)

	require.Len(t, form.Checkboxes, 1)
	assert.True(t, form.Checkboxes[0].Value)

	require.Len(t, form.Comboboxes, 1)
	assert.Equal(t, "Sales", form.Comboboxes[0].Value)

	require.Len(t, form.Listboxes, 1)
	assert.Equal(t, []string{"Go"}, form.Listboxes[0].Values)
}

func TestFillJSON_CheckboxCoercion(t *testing.T) {
	byID := fieldByID(sampleFields())
	for value, want := range map[string]bool{
		"true": true, "Yes": true, "1": true, "checked": true, "on": true,
		"false": false, "no": false, "0": false, "off": false, "": false,
	} {
		payload, err := fillJSON(map[string]string{"F3": value}, byID)
		require.NoError(t, err)

		var fj formJSON
		require.NoError(t, json.Unmarshal(payload, &fj))
		require.Len(t, fj.Forms[0].Checkboxes, 1, "value %q", value)
		assert.Equal(t, want, fj.Forms[0].Checkboxes[0].Value, "value %q", value)
	}
}

func TestFillJSON_UnknownIDSkippedSilently(t *testing.T) {
	payload, err := fillJSON(map[string]string{"F99": "x"}, fieldByID(sampleFields()))
	require.NoError(t, err)

	var fj formJSON
	require.NoError(t, json.Unmarshal(payload, &fj))
	form := fj.Forms[0]
	assert.Empty(t, form.TextFields)
	assert.Empty(t, form.Checkboxes)
}

func TestResolveRef(t *testing.T) {
	fields := sampleFields()

	f, ok := resolveRef("F3", fields)
	require.True(t, ok)
	assert.Equal(t, "remote", f.Name)

	f, ok = resolveRef("employee_name", fields)
	require.True(t, ok)
	assert.Equal(t, "F1", f.ID)

	_, ok = resolveRef("F42", fields)
	assert.False(t, ok)

	_, ok = resolveRef("no_such_field", fields)
	assert.False(t, ok)
}

func TestFieldLine(t *testing.T) {
	assert.Equal(t,
		`[F1] "employee_name" (text) — empty`,
		fieldLine(field{ID: "F1", Name: "employee_name", Type: "text"}))

	assert.Equal(t,
		`[F4] "dept" (dropdown, options: HR | Sales) — "HR"`,
		fieldLine(field{ID: "F4", Name: "dept", Type: "dropdown", Options: []string{"HR", "Sales"}, Value: "HR"}))

	assert.Equal(t,
		`[F7] "ssn" (text) — "123" [read-only]`,
		fieldLine(field{ID: "F7", Name: "ssn", Type: "text", Value: "123", Locked: true}))
}

func TestDescribeValue_Checkbox(t *testing.T) {
	for _, v := range []string{"", "Off", "No"} {
		assert.Equal(t, "unchecked", describeValue(field{Type: "checkbox", Value: v}), "value %q", v)
	}
	assert.Equal(t, "checked", describeValue(field{Type: "checkbox", Value: "Yes"}))
}

func TestCompactLines_GroupedByPage(t *testing.T) {
	lines := compactLines(sampleFields())

	assert.Equal(t, "=== PDF Form: 5 fields across 2 pages ===", lines[0])
	assert.Contains(t, lines, "Page 1:")
	assert.Contains(t, lines, "Page 2:")
	assert.Contains(t, lines, "    Context: Full legal name")

	var page1, page2 int
	for i, l := range lines {
		switch l {
		case "Page 1:":
			page1 = i
		case "Page 2:":
			page2 = i
		}
	}
	assert.Less(t, page1, page2)
}

func TestCompactLines_SingularHeader(t *testing.T) {
	lines := compactLines([]field{{ID: "F1", Name: "only", Type: "text", Page: 1}})
	assert.Equal(t, "=== PDF Form: 1 field across 1 page ===", lines[0])
}

func TestFieldByID(t *testing.T) {
	byID := fieldByID(sampleFields())
	assert.Len(t, byID, 5)
	assert.Equal(t, "dept", byID["F4"].Name)
}
