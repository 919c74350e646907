// files.go resolves document input for tool calls. Tools accept either a
// path on disk (preferred - keeps file bytes out of the agent's context
// window) or base64-encoded bytes, with the file type declared explicitly,
// inferred from the extension, or sniffed from the bytes.

package mcp

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docfill/docfill/internal/document"
)

var errNoFileInput = errors.New("provide either file_path or file_bytes_b64 - neither was supplied")

// fileInput is the resolved document for one tool call.
type fileInput struct {
	bytes    []byte
	fileType document.FileType
	// path is set when the input came from disk, echoed back in results.
	path string
}

// resolveFile resolves the document bytes and type for a tool request.
func (h *handlers) resolveFile(req mcp.CallToolRequest) (fileInput, error) {
	path := strings.TrimSpace(getString(req, "file_path", ""))
	b64 := strings.TrimSpace(getString(req, "file_bytes_b64", ""))
	typeStr := strings.TrimSpace(getString(req, "file_type", ""))

	var in fileInput
	switch {
	case path != "":
		raw, err := h.readFile(path)
		if err != nil {
			return in, err
		}
		in = fileInput{bytes: raw, path: path}
	case b64 != "":
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return in, fmt.Errorf("file_bytes_b64 is not valid base64: %w", err)
		}
		if int64(len(raw)) > h.cfg.MaxFileSize() {
			return in, fmt.Errorf("file exceeds maximum size (%d bytes)", h.cfg.MaxFileSize())
		}
		in = fileInput{bytes: raw}
	default:
		return in, errNoFileInput
	}

	ft, err := h.resolveType(in, typeStr)
	if err != nil {
		return in, err
	}
	in.fileType = ft
	return in, nil
}

// readFile loads document bytes from disk, enforcing the size cap before
// reading so an oversized file never enters memory.
func (h *handlers) readFile(path string) ([]byte, error) {
	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("file not found or not accessible: %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}
	if info.Size() > h.cfg.MaxFileSize() {
		return nil, fmt.Errorf("file exceeds maximum size (%d bytes): %s", h.cfg.MaxFileSize(), path)
	}
	return os.ReadFile(clean)
}

// resolveType picks the file type: explicit declaration first, then the
// path extension, then byte sniffing.
func (h *handlers) resolveType(in fileInput, typeStr string) (document.FileType, error) {
	if typeStr != "" {
		return document.ParseFileType(typeStr)
	}
	if in.path != "" {
		if ft, err := document.FileTypeForExt(filepath.Ext(in.path)); err == nil {
			return ft, nil
		}
	}
	return document.DetectFileType(in.bytes)
}

// writeOutput writes result bytes to output_file_path, creating parent
// directories as needed.
func writeOutput(path string, data []byte) (string, error) {
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(clean, data, 0644); err != nil {
		return "", fmt.Errorf("writing output file: %w", err)
	}
	return clean, nil
}
