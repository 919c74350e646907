// verify.go checks a filled document against expected answers: the CLI
// twin of the docfill_verify_output tool.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docfill/docfill/internal/document"
)

var verifyExpected string

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Verify a filled document against expected answers",
	Long: `Verify structural integrity and content of a filled document.

The expected file holds a JSON array of objects, each with pair_id and
expected_text, optionally a target reference (xpath/cell_id/field_id) and a
confidence (known, uncertain, unknown). Exits non-zero when any expected
answer is mismatched or missing, or structural issues are found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, hdl, _, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		expected, err := loadExpected(verifyExpected)
		if err != nil {
			return err
		}

		report, err := hdl.Verify(raw, expected)
		if err != nil {
			return err
		}
		if err := printJSON(report); err != nil {
			return err
		}

		s := report.Summary
		if s.Mismatched > 0 || s.Missing > 0 || s.StructuralIssues > 0 {
			cmd.SilenceUsage = true
			return fmt.Errorf("verification failed: %d mismatched, %d missing, %d structural issue(s)",
				s.Mismatched, s.Missing, s.StructuralIssues)
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyExpected, "expected", "", "path to the JSON expected-answers file (required)")
	_ = verifyCmd.MarkFlagRequired("expected")
	rootCmd.AddCommand(verifyCmd)
}

// loadExpected reads and normalises a JSON expected-answers file.
func loadExpected(path string) ([]document.ExpectedAnswer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read expected file: %w", err)
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s must contain a JSON array of expected-answer objects: %w", path, err)
	}

	expected := make([]document.ExpectedAnswer, 0, len(items))
	for i, m := range items {
		e, err := document.ExpectedAnswerFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("expected_answers[%d]: %w", i, err)
		}
		expected = append(expected, e)
	}
	return expected, nil
}
