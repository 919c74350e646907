// version.go prints build version information.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docfill/docfill/internal/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(_ *cobra.Command, _ []string) error {
		info := version.Get()
		if versionJSON {
			return printJSON(info)
		}
		fmt.Print(info.String())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(versionCmd)
}
