// Package document defines the shared data model for the form-filling
// pipeline: file types, answer payloads, location results, verification
// reports, and the per-format Handler contract.
//
// Nothing in this package holds state between calls. Every pipeline stage
// is a pure function of (document bytes, references); a handler parses the
// bytes fresh on each call and discards the parsed structure on return.
package document

import (
	"bytes"
	"errors"
	"fmt"
)

// FileType identifies the container format of a document.
type FileType string

const (
	Word  FileType = "word"
	Excel FileType = "excel"
	PDF   FileType = "pdf"
)

// ErrUnknownFileType is returned when bytes match no supported format.
var ErrUnknownFileType = errors.New("unknown file type")

// ParseFileType validates a file_type string from a tool request.
func ParseFileType(s string) (FileType, error) {
	switch FileType(s) {
	case Word, Excel, PDF:
		return FileType(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected word, excel, or pdf)", ErrUnknownFileType, s)
}

var (
	zipMagic = []byte("PK\x03\x04")
	pdfMagic = []byte("%PDF-")
)

// DetectFileType sniffs the container format from raw bytes. Both .docx and
// .xlsx are ZIP archives, so they are told apart by their signature internal
// part names.
func DetectFileType(b []byte) (FileType, error) {
	if bytes.HasPrefix(b, pdfMagic) {
		return PDF, nil
	}
	if bytes.HasPrefix(b, zipMagic) {
		if bytes.Contains(b, []byte("word/document.xml")) {
			return Word, nil
		}
		if bytes.Contains(b, []byte("xl/workbook.xml")) {
			return Excel, nil
		}
		return "", fmt.Errorf("%w: ZIP archive is neither .docx nor .xlsx", ErrUnknownFileType)
	}
	return "", fmt.Errorf("%w: bytes are not a ZIP archive or PDF", ErrUnknownFileType)
}

// ExtForFileType maps a FileType to its conventional file extension.
func ExtForFileType(ft FileType) string {
	switch ft {
	case Word:
		return ".docx"
	case Excel:
		return ".xlsx"
	case PDF:
		return ".pdf"
	}
	return ""
}

// FileTypeForExt guesses a FileType from a file extension (with or without
// the leading dot). Returns an error for unrecognised extensions.
func FileTypeForExt(ext string) (FileType, error) {
	switch ext {
	case ".docx", "docx":
		return Word, nil
	case ".xlsx", "xlsx":
		return Excel, nil
	case ".pdf", "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnknownFileType, ext)
}

// Handler is the per-format strategy object. One handler is constructed per
// request with the options the request's declared type selects; handlers
// hold configuration only, never parsed document state.
type Handler interface {
	// Index walks the document and returns the compact indexed structure.
	Index(fileBytes []byte) (*Structure, error)

	// Raw returns the full structure for Q/A pair identification:
	// body XML (Word), sheet grid (Excel), or field list (PDF).
	Raw(fileBytes []byte) (*RawStructure, error)

	// Validate matches each location reference against the document.
	Validate(fileBytes []byte, locations []Location) ([]LocationResult, error)

	// Write applies all answers and returns the modified document bytes.
	Write(fileBytes []byte, answers []Answer) ([]byte, error)

	// Preview is the non-mutating dry run of Write: it resolves every
	// target and reports what would change without touching the bytes.
	Preview(fileBytes []byte, answers []Answer) ([]Preview, error)

	// Verify compares expected text against actual content per reference.
	Verify(fileBytes []byte, expected []ExpectedAnswer) (*Report, error)

	// Fields returns the code-detected inventory of fillable targets.
	Fields(fileBytes []byte) ([]FormField, error)
}

// Options carries the per-call configuration a handler needs. Zero values
// select the defaults from internal/config.
type Options struct {
	// CaseSensitive selects case-sensitive substring matching during
	// verification. Default is case-insensitive.
	CaseSensitive bool

	// RawSnippetLimit caps the raw-markup dump emitted for complex
	// elements, in characters.
	RawSnippetLimit int

	// ContextLimit caps context text returned with validated locations.
	ContextLimit int
}

// Defaults for Options fields left at zero.
const (
	DefaultRawSnippetLimit = 500
	DefaultContextLimit    = 100
)

// Normalised returns a copy of o with zero limits replaced by defaults.
func (o Options) Normalised() Options {
	if o.RawSnippetLimit <= 0 {
		o.RawSnippetLimit = DefaultRawSnippetLimit
	}
	if o.ContextLimit <= 0 {
		o.ContextLimit = DefaultContextLimit
	}
	return o
}
