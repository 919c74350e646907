// fixtures_test.go builds minimal .docx archives in memory for the other
// test files. Bodies are written as compact single-line XML so structural
// snippet comparisons are not polluted by indentation text nodes.

package word_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docfill/docfill/internal/document"
	"github.com/docfill/docfill/internal/word"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

// formBody is the shared fixture: a two-row question/answer table followed
// by a plain paragraph and a placeholder paragraph.
const formBody = `<w:tbl>` +
	`<w:tr><w:tc><w:p><w:r><w:t>Company Name</w:t></w:r></w:p></w:tc><w:tc><w:p/></w:tc></w:tr>` +
	`<w:tr><w:tc><w:p><w:r><w:t>Date</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>[Enter date]</w:t></w:r></w:p></w:tc></w:tr>` +
	`</w:tbl>` +
	`<w:p><w:r><w:t>Introduction</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Signature: ______</w:t></w:r></w:p>`

// makeDocx wraps bodyXML in a w:document/w:body envelope and packages it
// as a ZIP archive with a content-types part.
func makeDocx(t *testing.T, bodyXML string) []byte {
	t.Helper()

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + bodyXML + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct{ name, data string }{
		{"[Content_Types].xml", contentTypesXML},
		{"word/document.xml", documentXML},
	} {
		w, err := zw.Create(entry.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entry.data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newHandler() *word.Handler {
	return word.New(document.Options{})
}
