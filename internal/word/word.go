// Package word implements the tree-shaped document adapter: indexing,
// locator resolution, snippet matching, structure-preserving mutation, and
// post-write verification for .docx files.
//
// The package owns the hardest pipeline in the repository. A .docx body is
// a mutable XML tree, so element addresses are positional and only valid
// against the exact bytes they were computed from; every operation here
// parses fresh from input bytes and holds no state across calls.
package word

import (
	"github.com/docfill/docfill/internal/document"
)

// Handler implements document.Handler for .docx files.
type Handler struct {
	opts document.Options
}

// New returns a Word handler with the given options.
func New(opts document.Options) *Handler {
	return &Handler{opts: opts.Normalised()}
}

// Raw returns the full <w:body> XML for Q/A pair identification. This is
// the fallback for agents with large context windows; Index is the
// primary extraction path.
func (h *Handler) Raw(fileBytes []byte) (*document.RawStructure, error) {
	_, body, err := parseDocument(fileBytes)
	if err != nil {
		return nil, err
	}
	return &document.RawStructure{BodyXML: rawMarkup(body)}, nil
}
