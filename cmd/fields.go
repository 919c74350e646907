// fields.go lists a document's code-detected fillable targets.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docfill/docfill/internal/document"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields FILE",
	Short: "List fillable targets detected in a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		raw, hdl, _, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		fields, err := hdl.Fields(raw)
		if err != nil {
			return err
		}
		if fields == nil {
			fields = []document.FormField{}
		}
		return printJSON(fields)
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
