package excel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfill/docfill/internal/document"
	"github.com/docfill/docfill/internal/excel"
)

func TestWrite_SetsCellValue(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(formWorkbook(t), []document.Answer{
		{PairID: "S1-R1-C2", Value: "Acme Corp"},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `S1-R1-C2: "Acme Corp"`)
	assert.Contains(t, s.CompactText, `S1-R1-C1: "Company Name"`, "untouched cells survive")
}

func TestWrite_RefFieldTakesPrecedence(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(formWorkbook(t), []document.Answer{
		{PairID: "company_name", Ref: "S1-R1-C2", Value: "Acme Corp"},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `S1-R1-C2: "Acme Corp"`)
}

func TestWrite_InsertionModesAreIgnored(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(formWorkbook(t), []document.Answer{
		{PairID: "S1-R2-C2", Value: "replaced", Mode: document.Append},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `S1-R2-C2: "replaced"`, "a cell write always sets the value outright")
}

func TestWrite_GrowsTheSheet(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(formWorkbook(t), []document.Answer{
		{PairID: "S1-R10-C4", Value: "far out"},
	})
	require.NoError(t, err)

	report, err := hdl.Verify(out, []document.ExpectedAnswer{
		{PairID: "S1-R10-C4", Expected: "far out"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Matched)
}

func TestWrite_InvalidCellID(t *testing.T) {
	_, err := newHandler().Write(formWorkbook(t), []document.Answer{
		{PairID: "T1-R1-C1", Value: "x"},
	})
	assert.ErrorContains(t, err, "invalid cell ID")
	assert.ErrorContains(t, err, "S1-R2-C3", "the error teaches the expected format")
}

func TestWrite_SheetOutOfRange(t *testing.T) {
	_, err := newHandler().Write(formWorkbook(t), []document.Answer{
		{PairID: "S5-R1-C1", Value: "x"},
	})
	assert.ErrorContains(t, err, "sheet index 5 out of range")
}

func TestWrite_InputBytesUntouched(t *testing.T) {
	in := formWorkbook(t)
	before := append([]byte(nil), in...)

	_, err := newHandler().Write(in, []document.Answer{
		{PairID: "S1-R1-C2", Value: "Acme Corp"},
	})
	require.NoError(t, err)
	assert.Equal(t, before, in)
}

func TestVerify_Roundtrip(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(formWorkbook(t), []document.Answer{
		{PairID: "S1-R1-C2", Value: "Acme Corp"},
	})
	require.NoError(t, err)

	report, err := hdl.Verify(out, []document.ExpectedAnswer{
		{PairID: "S1-R1-C2", Expected: "acme corp"},
		{PairID: "S1-R2-C2", Expected: "2026-01-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.Matched, "matching is case-insensitive by default")
	assert.Empty(t, report.StructuralIssues)
}

func TestVerify_CaseSensitiveOption(t *testing.T) {
	hdl := excel.New(document.Options{CaseSensitive: true})
	report, err := hdl.Verify(formWorkbook(t), []document.ExpectedAnswer{
		{PairID: "S1-R1-C1", Expected: "company name"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Mismatched)
	assert.NotEmpty(t, report.ContentResults[0].Diff)
}

func TestVerify_InvalidCellIDIsMissing(t *testing.T) {
	report, err := newHandler().Verify(formWorkbook(t), []document.ExpectedAnswer{
		{PairID: "not-an-id", Expected: "x"},
	})
	require.NoError(t, err)

	require.Len(t, report.ContentResults, 1)
	r := report.ContentResults[0]
	assert.Equal(t, document.ContentMissing, r.Status)
	assert.Equal(t, "Invalid cell ID: not-an-id", r.Actual)
}

func TestVerify_SheetOutOfRangeIsMissing(t *testing.T) {
	report, err := newHandler().Verify(formWorkbook(t), []document.ExpectedAnswer{
		{PairID: "S9-R1-C1", Expected: "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, document.ContentMissing, report.ContentResults[0].Status)
}
