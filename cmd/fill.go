// fill.go writes answers from a JSON file into a document: the CLI twin of
// the docfill_write_answers tool, for scripted and batch use.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docfill/docfill/internal/document"
)

var (
	fillAnswers string
	fillOutput  string
	fillDryRun  bool
)

var fillCmd = &cobra.Command{
	Use:   "fill FILE",
	Short: "Write answers from a JSON file into a document",
	Long: `Write answers into a document and save the result.

The answers file holds a JSON array of answer objects, each with pair_id
plus either answer_text (plain text) or insertion_xml (structured OOXML,
Word only), and an optional mode: replace_content (default), append, or
replace_placeholder.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		raw, hdl, _, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		answers, err := loadAnswers(fillAnswers)
		if err != nil {
			return err
		}

		if fillDryRun {
			previews, err := hdl.Preview(raw, answers)
			if err != nil {
				return err
			}
			return printJSON(previews)
		}

		out, err := hdl.Write(raw, answers)
		if err != nil {
			return err
		}

		dest := fillOutput
		if dest == "" {
			dest = args[0]
		}
		if err := os.WriteFile(dest, out, 0644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		fmt.Printf("wrote %d answer(s) to %s\n", len(answers), dest)
		return nil
	},
}

func init() {
	fillCmd.Flags().StringVar(&fillAnswers, "answers", "", "path to the JSON answers file (required)")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "output path (default: overwrite the input file)")
	fillCmd.Flags().BoolVar(&fillDryRun, "dry-run", false, "preview what each answer would do without writing")
	_ = fillCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(fillCmd)
}

// loadAnswers reads and normalises a JSON answers file.
func loadAnswers(path string) ([]document.Answer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s must contain a JSON array of answer objects: %w", path, err)
	}
	if len(items) > cfg.MaxAnswers() {
		return nil, fmt.Errorf("too many answers (%d), max is %d", len(items), cfg.MaxAnswers())
	}

	answers := make([]document.Answer, 0, len(items))
	for i, m := range items {
		a, err := document.AnswerFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("answers[%d]: %w", i, err)
		}
		answers = append(answers, a)
	}
	return answers, nil
}
