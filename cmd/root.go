// root.go defines the root command and CLI execution entry point.
//
// Design: configuration is loaded once in PersistentPreRunE and shared by
// every subcommand. Logging goes to stderr for all commands so stdout stays
// clean for JSON output and, under serve, for MCP JSON-RPC traffic.

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docfill/docfill/internal/config"
	"github.com/docfill/docfill/internal/dispatch"
	"github.com/docfill/docfill/internal/document"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "docfill",
	Short: "Structured form filling for Word, Excel, and PDF documents",
	Long: `An MCP tool-call server and CLI for filling structured forms in Word (.docx),
Excel (.xlsx), and PDF documents: stable element addressing, location
validation, safe writes, and post-write verification.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		return nil
	},
}

// Execute runs the root command. Exit code 1 indicates error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDocument reads a document from disk and selects its handler. The file
// type comes from the extension, falling back to byte sniffing.
func loadDocument(path string) ([]byte, document.Handler, document.FileType, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(raw)) > cfg.MaxFileSize() {
		return nil, nil, "", fmt.Errorf("%s exceeds maximum size (%d bytes)", path, cfg.MaxFileSize())
	}

	ft, err := document.FileTypeForExt(filepath.Ext(path))
	if err != nil {
		if ft, err = document.DetectFileType(raw); err != nil {
			return nil, nil, "", fmt.Errorf("%s: %w", path, err)
		}
	}

	hdl, err := dispatch.ForType(ft, cfg.Options())
	if err != nil {
		return nil, nil, "", err
	}
	return raw, hdl, ft, nil
}
