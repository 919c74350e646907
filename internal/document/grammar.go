// grammar.go holds the stable-ID and placeholder grammars.
//
// Both grammars are part of the external interface and must stay bit-exact:
// agents carry IDs between calls, and the placeholder pattern decides which
// cells are answer targets at index time and which spans replace_placeholder
// rewrites at write time.

package document

import (
	"regexp"
	"strings"
)

// Stable element ID grammars. IDs are position-derived, recomputed fresh on
// every index call, and valid only against the byte-identical document they
// were computed from.
var (
	// ElementIDRe matches any Word stable ID: P5 or T1-R2-C2.
	ElementIDRe = regexp.MustCompile(`^(T\d+-R\d+-C\d+|P\d+)$`)

	// TableCellIDRe matches and captures a Word table-cell ID.
	TableCellIDRe = regexp.MustCompile(`^T(\d+)-R(\d+)-C(\d+)$`)

	// ParagraphIDRe matches a Word paragraph ID.
	ParagraphIDRe = regexp.MustCompile(`^P(\d+)$`)

	// CellIDRe matches and captures a spreadsheet cell ID.
	CellIDRe = regexp.MustCompile(`^S(\d+)-R(\d+)-C(\d+)$`)

	// FieldIDRe matches and captures a PDF form field ID.
	FieldIDRe = regexp.MustCompile(`^F(\d+)$`)
)

// PlaceholderRe matches fill-in placeholder text: bracket phrases like
// "[Enter date]" or runs of three or more underscores.
var PlaceholderRe = regexp.MustCompile(`\[Enter[^\]]*\]|_{3,}`)

// IsAnswerTarget reports whether text marks an element as an intended
// fill-in location: empty/whitespace-only, or containing a placeholder.
func IsAnswerTarget(text string) bool {
	stripped := strings.TrimSpace(text)
	return stripped == "" || PlaceholderRe.MatchString(stripped)
}

// Truncate caps s at limit characters, appending an ellipsis marker when
// content was cut. Cuts fall on rune boundaries so multibyte text stays
// valid UTF-8. Used for complex-element raw dumps and context text.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
