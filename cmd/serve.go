// serve.go starts the MCP server, the primary mode of operation.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docfill/docfill/internal/mcp"
)

var serveHTTP string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio by default)",
	Long: `Start the Model Context Protocol server exposing the form-filling tools.

By default the server speaks JSON-RPC over stdio, the transport MCP clients
spawn directly. With --http it listens on the given address using the
streamable HTTP transport instead.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if serveHTTP != "" {
			return mcp.ServeHTTP(cfg, serveHTTP)
		}
		return mcp.Serve(cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTP, "http", "", "serve over streamable HTTP on this address (e.g. :8080) instead of stdio")
	rootCmd.AddCommand(serveCmd)
}
