// verify.go holds the verification result types and the summary/confidence
// arithmetic shared by all three format verifiers.
//
// Verification outcomes are data, never errors: one unresolvable reference
// in a batch of fifty must not prevent the other forty-nine from being
// checked, so every per-item failure becomes a ContentResult the caller
// branches on.

package document

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ContentStatus classifies one verified reference.
type ContentStatus string

const (
	ContentMatched    ContentStatus = "matched"
	ContentMismatched ContentStatus = "mismatched"
	// ContentMissing means the reference no longer resolves.
	ContentMissing ContentStatus = "missing"
)

// ContentResult is the per-reference verification outcome.
type ContentResult struct {
	PairID   string        `json:"pair_id"`
	Status   ContentStatus `json:"status"`
	Expected string        `json:"expected"`
	Actual   string        `json:"actual"`
	// Diff is a compact expected-vs-actual diff, populated only for
	// mismatches to help the agent see what the write left behind.
	Diff string `json:"diff,omitempty"`
}

// Summary aggregates a verification run.
type Summary struct {
	Total               int    `json:"total"`
	Matched             int    `json:"matched"`
	Mismatched          int    `json:"mismatched"`
	Missing             int    `json:"missing"`
	StructuralIssues    int    `json:"structural_issues"`
	ConfidenceKnown     int    `json:"confidence_known"`
	ConfidenceUncertain int    `json:"confidence_uncertain"`
	ConfidenceUnknown   int    `json:"confidence_unknown"`
	ConfidenceNote      string `json:"confidence_note"`
}

// Report is the full verification output for one document.
type Report struct {
	StructuralIssues []string        `json:"structural_issues"`
	ContentResults   []ContentResult `json:"content_results"`
	Summary          Summary         `json:"summary"`
}

// Matches reports whether expected occurs in actual. Substring rather than
// exact equality: the write step may legitimately preserve surrounding
// boilerplate. Case sensitivity is a configuration knob.
func Matches(expected, actual string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.Contains(actual, expected)
	}
	return strings.Contains(strings.ToLower(actual), strings.ToLower(expected))
}

// CompactDiff renders a short inline diff between expected and actual,
// marking deletions as [-text-] and insertions as [+text+].
func CompactDiff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "[-%s-]", d.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "[+%s+]", d.Text)
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// CountConfidence tallies confidence levels across expected answers and
// builds the human-readable note for the summary.
func CountConfidence(expected []ExpectedAnswer) (known, uncertain, unknown int, note string) {
	for _, a := range expected {
		switch a.Confidence {
		case Uncertain:
			uncertain++
		case Unknown:
			unknown++
		default:
			known++
		}
	}

	var parts []string
	if known > 0 {
		parts = append(parts, fmt.Sprintf("%d known", known))
	}
	if uncertain > 0 {
		parts = append(parts, fmt.Sprintf("%d uncertain", uncertain))
	}
	if unknown > 0 {
		parts = append(parts, fmt.Sprintf("%d unknown", unknown))
	}
	note = strings.Join(parts, ", ")
	if uncertain > 0 || unknown > 0 {
		note += " — manual review needed"
	}
	return known, uncertain, unknown, note
}

// BuildReport assembles a Report from per-item results, the expected
// answers that produced them, and any structural issues.
func BuildReport(results []ContentResult, expected []ExpectedAnswer, structural []string) *Report {
	var matched, mismatched, missing int
	for _, r := range results {
		switch r.Status {
		case ContentMatched:
			matched++
		case ContentMismatched:
			mismatched++
		case ContentMissing:
			missing++
		}
	}

	known, uncertain, unknown, note := CountConfidence(expected)

	if structural == nil {
		structural = []string{}
	}
	if results == nil {
		results = []ContentResult{}
	}

	return &Report{
		StructuralIssues: structural,
		ContentResults:   results,
		Summary: Summary{
			Total:               len(expected),
			Matched:             matched,
			Mismatched:          mismatched,
			Missing:             missing,
			StructuralIssues:    len(structural),
			ConfidenceKnown:     known,
			ConfidenceUncertain: uncertain,
			ConfidenceUnknown:   unknown,
			ConfidenceNote:      note,
		},
	}
}
