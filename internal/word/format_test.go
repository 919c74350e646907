package word_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfill/docfill/internal/word"
)

func TestExtractFormatting_FromRun(t *testing.T) {
	f := word.ExtractFormatting(`<w:r><w:rPr>` +
		`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/>` +
		`<w:b/><w:sz w:val="24"/><w:color w:val="FF0000"/>` +
		`</w:rPr><w:t>x</w:t></w:r>`)
	require.NotNil(t, f)

	assert.Equal(t, "Calibri", f.FontASCII)
	assert.Equal(t, "Calibri", f.FontHAnsi)
	assert.True(t, f.Bold)
	assert.False(t, f.Italic)
	assert.Equal(t, "24", f.Size)
	assert.Equal(t, "FF0000", f.Color)
}

func TestExtractFormatting_FromFirstRunInParagraph(t *testing.T) {
	f := word.ExtractFormatting(`<w:p><w:r><w:rPr><w:i/></w:rPr><w:t>x</w:t></w:r></w:p>`)
	require.NotNil(t, f)
	assert.True(t, f.Italic)
}

func TestExtractFormatting_FallsBackToParagraphProperties(t *testing.T) {
	f := word.ExtractFormatting(`<w:p><w:pPr><w:rPr><w:b/></w:rPr></w:pPr></w:p>`)
	require.NotNil(t, f)
	assert.True(t, f.Bold)
}

func TestExtractFormatting_UnderlineDefaultsToSingle(t *testing.T) {
	f := word.ExtractFormatting(`<w:r><w:rPr><w:u/></w:rPr><w:t>x</w:t></w:r>`)
	require.NotNil(t, f)
	assert.Equal(t, "single", f.Underline)
}

func TestExtractFormatting_NothingFound(t *testing.T) {
	assert.Nil(t, word.ExtractFormatting(`<w:p><w:r><w:t>plain</w:t></w:r></w:p>`))
	assert.Nil(t, word.ExtractFormatting(`<w:r><w:rPr/><w:t>x</w:t></w:r>`), "empty rPr carries no formatting")
	assert.Nil(t, word.ExtractFormatting("<<< not xml"))
}

func TestBuildRunXML_PlainText(t *testing.T) {
	xml := word.BuildRunXML("Acme Corp", nil)
	assert.Equal(t, `<w:r><w:t>Acme Corp</w:t></w:r>`, xml)
}

func TestBuildRunXML_PreservesEdgeSpaces(t *testing.T) {
	xml := word.BuildRunXML(" padded ", nil)
	assert.Contains(t, xml, `xml:space="preserve"`)

	xml = word.BuildRunXML("inner space only", nil)
	assert.NotContains(t, xml, "preserve")
}

func TestBuildRunXML_WithFormatting(t *testing.T) {
	xml := word.BuildRunXML("x", &word.Formatting{
		FontASCII: "Calibri",
		Bold:      true,
		Size:      "24",
		Underline: "single",
	})
	assert.Contains(t, xml, `<w:rFonts w:ascii="Calibri"/>`)
	assert.Contains(t, xml, `<w:b/>`)
	assert.Contains(t, xml, `<w:sz w:val="24"/>`)
	assert.Contains(t, xml, `<w:u w:val="single"/>`)
}

func TestValidateInsertionXML(t *testing.T) {
	assert.NoError(t, word.ValidateInsertionXML(`<w:r><w:rPr><w:b/></w:rPr><w:t>x</w:t></w:r>`))
	assert.NoError(t, word.ValidateInsertionXML(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`))

	assert.ErrorContains(t, word.ValidateInsertionXML("<w:r><broken"), "not well-formed")
	assert.ErrorContains(t, word.ValidateInsertionXML(`<script>x</script>`), "disallowed element: script")
	assert.ErrorContains(t, word.ValidateInsertionXML(`<w:r><w:fldChar/></w:r>`), "disallowed element: fldChar")
	assert.ErrorContains(t, word.ValidateInsertionXML(`<evil:r xmlns:evil="urn:x">x</evil:r>`), "unknown namespace prefix: evil")
}

func TestBuildInsertionXML_PlainTextInheritsContext(t *testing.T) {
	context := `<w:p><w:r><w:rPr><w:b/><w:sz w:val="22"/></w:rPr><w:t>Company Name</w:t></w:r></w:p>`
	res := word.BuildInsertionXML("Acme Corp", context, "plain_text")

	assert.True(t, res.Valid)
	assert.Contains(t, res.InsertionXML, "Acme Corp")
	assert.Contains(t, res.InsertionXML, `<w:b/>`)
	assert.Contains(t, res.InsertionXML, `<w:sz w:val="22"/>`)
}

func TestBuildInsertionXML_PlainTextNoContext(t *testing.T) {
	res := word.BuildInsertionXML("Acme Corp", "", "plain_text")
	assert.True(t, res.Valid)
	assert.Equal(t, `<w:r><w:t>Acme Corp</w:t></w:r>`, res.InsertionXML)
}

func TestBuildInsertionXML_StructuredValidates(t *testing.T) {
	res := word.BuildInsertionXML(`<w:r><w:t>x</w:t></w:r>`, "", "structured")
	assert.True(t, res.Valid)
	assert.Equal(t, `<w:r><w:t>x</w:t></w:r>`, res.InsertionXML)

	res = word.BuildInsertionXML(`<script>x</script>`, "", "structured")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "disallowed element")
}

func TestBuildInsertionXML_UnknownType(t *testing.T) {
	res := word.BuildInsertionXML("x", "", "markdown")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "unknown answer_type")
}
