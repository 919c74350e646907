// inspect.go prints a document's indexed structure, the same view the
// extraction tools give an agent. Useful for checking what IDs a form
// exposes before scripting a fill.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var inspectRaw bool

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the compact indexed structure of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		raw, hdl, _, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		if inspectRaw {
			st, err := hdl.Raw(raw)
			if err != nil {
				return err
			}
			return printJSON(st)
		}

		st, err := hdl.Index(raw)
		if err != nil {
			return err
		}
		fmt.Println(st.CompactText)
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "print the full raw structure as JSON instead of the compact text")
	rootCmd.AddCommand(inspectCmd)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
