package word_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfill/docfill/internal/document"
)

func TestWrite_ReplaceContentByElementID(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "T1-R1-C2", Value: "Acme Corp"},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `T1-R1-C2: "Acme Corp"`)
	assert.Contains(t, s.CompactText, `T1-R1-C1: "Company Name"`, "untouched cells survive")
}

func TestWrite_ReplaceContentByLocator(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "q1", Ref: "./w:tbl/w:tr[1]/w:tc[2]", Value: "Acme Corp"},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `T1-R1-C2: "Acme Corp"`)
}

func TestWrite_ReplaceContentPreservesCellProperties(t *testing.T) {
	body := `<w:tbl><w:tr>` +
		`<w:tc><w:tcPr><w:tcW w:w="2400" w:type="dxa"/></w:tcPr><w:p/></w:tc>` +
		`</w:tr></w:tbl>`
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, body), []document.Answer{
		{PairID: "T1-R1-C1", Value: "filled"},
	})
	require.NoError(t, err)

	raw, err := hdl.Raw(out)
	require.NoError(t, err)
	assert.Contains(t, raw.BodyXML, `<w:tcPr>`, "tcPr must survive replace_content")
	assert.Contains(t, raw.BodyXML, `w:w="2400"`)
	assert.Contains(t, raw.BodyXML, "filled")
}

func TestWrite_RunIntoCellGetsParagraphWrapper(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "T1-R1-C2", Value: "Acme Corp"},
	})
	require.NoError(t, err)

	report, err := hdl.Verify(out, nil)
	require.NoError(t, err)
	assert.Empty(t, report.StructuralIssues, "a bare run must never land directly under w:tc")
}

func TestWrite_AppendMode(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "P1", Value: " (reviewed)", Mode: document.Append},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `P1: "Introduction (reviewed)"`)
}

func TestWrite_ReplacePlaceholderBracket(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "T1-R2-C2", Value: "2026-02-11", Mode: document.ReplacePlaceholder},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `T1-R2-C2: "2026-02-11"`)
}

func TestWrite_ReplacePlaceholderKeepsSurroundingText(t *testing.T) {
	body := `<w:p><w:r><w:t>Date: [Enter date]</w:t></w:r></w:p>`
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, body), []document.Answer{
		{PairID: "P1", Value: "2026-02-11", Mode: document.ReplacePlaceholder},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `P1: "Date: 2026-02-11"`)
}

func TestWrite_ReplacePlaceholderExplicitLiteral(t *testing.T) {
	body := `<w:p><w:r><w:t>Name: ___ of ___</w:t></w:r></w:p>`
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, body), []document.Answer{
		{PairID: "P1", Value: "Jane", Mode: document.ReplacePlaceholder, Placeholder: "___ of ___"},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `P1: "Name: Jane"`)
}

func TestWrite_ReplacePlaceholderMissing(t *testing.T) {
	_, err := newHandler().Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "P1", Value: "x", Mode: document.ReplacePlaceholder},
	})
	assert.ErrorContains(t, err, "no placeholder found in target")
}

func TestWrite_InsertionXML(t *testing.T) {
	hdl := newHandler()
	out, err := hdl.Write(makeDocx(t, formBody), []document.Answer{
		{
			PairID:       "T1-R1-C2",
			InsertionXML: `<w:r><w:rPr><w:b/></w:rPr><w:t>Acme Corp</w:t></w:r>`,
		},
	})
	require.NoError(t, err)

	s, err := hdl.Index(out)
	require.NoError(t, err)
	assert.Contains(t, s.CompactText, `T1-R1-C2: "Acme Corp" [bold]`)
}

func TestWrite_MalformedInsertionXML(t *testing.T) {
	_, err := newHandler().Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "T1-R1-C2", InsertionXML: "<w:r><broken"},
	})
	assert.ErrorContains(t, err, "not well-formed")
}

func TestWrite_UnknownElementID(t *testing.T) {
	_, err := newHandler().Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "T9-R9-C9", Value: "x"},
	})
	assert.ErrorContains(t, err, "element ID T9-R9-C9 not found")
}

func TestWrite_InvalidLocatorGrammar(t *testing.T) {
	_, err := newHandler().Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "q1", Ref: "./w:bogus/w:p", Value: "x"},
	})
	assert.ErrorContains(t, err, "unsupported step")
}

func TestWrite_UnresolvableLocatorIsHardError(t *testing.T) {
	_, err := newHandler().Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "q1", Ref: "./w:tbl/w:tr[9]/w:tc[1]", Value: "x"},
	})
	assert.ErrorContains(t, err, "did not match any element")
}

func TestWrite_PreservesOtherArchiveEntries(t *testing.T) {
	out, err := newHandler().Write(makeDocx(t, formBody), []document.Answer{
		{PairID: "T1-R1-C2", Value: "Acme Corp"},
	})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "[Content_Types].xml")
	assert.Contains(t, names, "word/document.xml")
}

func TestWrite_InputBytesUntouched(t *testing.T) {
	in := makeDocx(t, formBody)
	before := append([]byte(nil), in...)

	_, err := newHandler().Write(in, []document.Answer{
		{PairID: "T1-R1-C2", Value: "Acme Corp"},
	})
	require.NoError(t, err)
	assert.Equal(t, before, in)
}
