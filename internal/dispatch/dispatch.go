// Package dispatch selects the per-format document handler. It exists so
// the format packages can all depend on internal/document without the data
// model depending back on any of them.
package dispatch

import (
	"fmt"

	"github.com/docfill/docfill/internal/document"
	"github.com/docfill/docfill/internal/excel"
	"github.com/docfill/docfill/internal/pdf"
	"github.com/docfill/docfill/internal/word"
)

// ForType returns the handler for a file type.
func ForType(ft document.FileType, opts document.Options) (document.Handler, error) {
	switch ft {
	case document.Word:
		return word.New(opts), nil
	case document.Excel:
		return excel.New(opts), nil
	case document.PDF:
		return pdf.New(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", document.ErrUnknownFileType, ft)
}

// ForBytes sniffs the file type from raw bytes and returns its handler.
func ForBytes(fileBytes []byte, opts document.Options) (document.Handler, document.FileType, error) {
	ft, err := document.DetectFileType(fileBytes)
	if err != nil {
		return nil, "", err
	}
	h, err := ForType(ft, opts)
	return h, ft, err
}
