// Package mcp implements the Model Context Protocol server, exposing the
// form-filling pipeline to LLM agents: structure extraction, location
// validation, insertion-markup building, answer writing, and output
// verification over Word, Excel, and PDF documents.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docfill/docfill/internal/config"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// handlers provides MCP request handlers with access to configuration.
// Handlers hold no document state: every tool call parses its document
// bytes fresh and discards them on return.
type handlers struct {
	cfg *config.Config
}

func newServer(cfg *config.Config) *server.MCPServer {
	h := &handlers{cfg: cfg}

	s := server.NewMCPServer(
		"docfill",
		Version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, h)
	return s
}

// Serve starts the MCP server over stdio. Uses stdio transport for
// compatibility with Claude Desktop and other MCP clients.
func Serve(cfg *config.Config) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := newServer(cfg)
	slog.Info("docfill MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// ServeHTTP starts the MCP server over streamable HTTP on addr, for clients
// that connect over the network instead of a spawned stdio process.
func ServeHTTP(cfg *config.Config, addr string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := newServer(cfg)
	slog.Info("docfill MCP server ready", "version", Version, "transport", "http", "addr", addr)

	return server.NewStreamableHTTPServer(s).Start(addr)
}

// registerTools exposes the pipeline operations as MCP tools for LLM
// invocation. Descriptions teach the calling agent the intended workflow:
// extract → validate → (dry-run) write → verify.
func registerTools(s *server.MCPServer, h *handlers) {
	// Compact extraction - the primary entry point
	s.AddTool(
		mcp.NewTool("docfill_extract_structure_compact",
			mcp.WithDescription("Return a compact, indexed representation of the document structure. Assigns stable element IDs (T1-R2-C1, P5, S1-R2-C3, F1) with formatting hints, answer targets, and role indicators: [question] for text cells in rows with answer targets, [answer] for empty/placeholder cells. Always write to [answer] cells, never [question] cells. Primary extraction tool. Use on the form being filled, not reference documents."),
			mcp.WithString("file_path", mcp.Description("Path to the document on disk (preferred)")),
			mcp.WithString("file_bytes_b64", mcp.Description("Base64-encoded file bytes (programmatic use)")),
			mcp.WithString("file_type", mcp.Description("Document type: word, excel, or pdf (inferred when omitted)")),
		),
		h.extractStructureCompact,
	)

	// Full extraction
	s.AddTool(
		mcp.NewTool("docfill_extract_structure",
			mcp.WithDescription("Return the full document structure for Q/A pair identification. Word: complete body XML. Excel: sheets/rows/cells. PDF: field list. Large output - prefer docfill_extract_structure_compact."),
			mcp.WithString("file_path", mcp.Description("Path to the document on disk (preferred)")),
			mcp.WithString("file_bytes_b64", mcp.Description("Base64-encoded file bytes (programmatic use)")),
			mcp.WithString("file_type", mcp.Description("Document type: word, excel, or pdf (inferred when omitted)")),
		),
		h.extractStructure,
	)

	// Location validation
	s.AddTool(
		mcp.NewTool("docfill_validate_locations",
			mcp.WithDescription("Confirm that each location actually exists in the document before writing. Returns matched/not_found/ambiguous per location plus a locator usable in docfill_write_answers. If a target cell contains existing text, the context includes a WARNING suggesting the likely answer cell. Advisory, not a hard block."),
			mcp.WithArray("locations", mcp.Required(), mcp.Description("List of {pair_id, snippet} objects. For Word, snippet is a stable ID or an XML snippet; for Excel a cell ID; for PDF a field ID or name.")),
			mcp.WithString("file_path", mcp.Description("Path to the document on disk (preferred)")),
			mcp.WithString("file_bytes_b64", mcp.Description("Base64-encoded file bytes (programmatic use)")),
			mcp.WithString("file_type", mcp.Description("Document type: word, excel, or pdf (inferred when omitted)")),
		),
		h.validateLocations,
	)

	// Insertion markup builder (Word only)
	s.AddTool(
		mcp.NewTool("docfill_build_insertion_xml",
			mcp.WithDescription("Build well-formed OOXML for inserting an answer (Word only). answer_type plain_text: code templates the XML, inheriting formatting from target_context_xml. answer_type structured: validates caller-provided OOXML against an element allow-list."),
			mcp.WithString("answer_text", mcp.Required(), mcp.Description("Plain answer text, or structured OOXML when answer_type is structured")),
			mcp.WithString("target_context_xml", mcp.Description("Raw XML of the target element, used to inherit formatting")),
			mcp.WithString("answer_type", mcp.Required(), mcp.Description("plain_text or structured")),
		),
		h.buildInsertionXML,
	)

	// Field inventory
	s.AddTool(
		mcp.NewTool("docfill_list_form_fields",
			mcp.WithDescription("Return a plain inventory of all fillable targets found by code (not AI): empty cells next to question text, placeholder paragraphs, or PDF form fields. Use on the form being filled, not reference documents."),
			mcp.WithString("file_path", mcp.Description("Path to the document on disk (preferred)")),
			mcp.WithString("file_bytes_b64", mcp.Description("Base64-encoded file bytes (programmatic use)")),
			mcp.WithString("file_type", mcp.Description("Document type: word, excel, or pdf (inferred when omitted)")),
		),
		h.listFormFields,
	)

	// Write
	s.AddTool(
		mcp.NewTool("docfill_write_answers",
			mcp.WithDescription("Write all answers into the document and return the completed file. Each answer: {pair_id, answer_text} for plain text, or {pair_id, xpath, insertion_xml, mode} for structured OOXML. Modes: replace_content (default), append, replace_placeholder. Set dry_run to preview what each answer would do without writing."),
			mcp.WithArray("answers", mcp.Description("Answer objects (inline). Use answers_file_path instead for large payloads (>20 answers).")),
			mcp.WithString("answers_file_path", mcp.Description("Path to a JSON file containing the answers array")),
			mcp.WithString("file_path", mcp.Description("Path to the document on disk (preferred)")),
			mcp.WithString("file_bytes_b64", mcp.Description("Base64-encoded file bytes (programmatic use)")),
			mcp.WithString("file_type", mcp.Description("Document type: word, excel, or pdf (inferred when omitted)")),
			mcp.WithString("output_file_path", mcp.Description("When set, the result is written to this path instead of returned as base64")),
			mcp.WithBoolean("dry_run", mcp.Description("Preview the write without mutating anything")),
		),
		h.writeAnswers,
	)

	// Verify
	s.AddTool(
		mcp.NewTool("docfill_verify_output",
			mcp.WithDescription("Verify structural integrity and content of a filled document. Runs structural validation (Word only) and content verification: expected text vs actual at each reference, substring match. Use after docfill_write_answers to confirm the output is correct."),
			mcp.WithArray("expected_answers", mcp.Required(), mcp.Description("List of {pair_id, expected_text} objects, optionally with xpath/cell_id/field_id and confidence (known/uncertain/unknown)")),
			mcp.WithString("file_path", mcp.Description("Path to the filled document on disk (preferred)")),
			mcp.WithString("file_bytes_b64", mcp.Description("Base64-encoded file bytes (programmatic use)")),
			mcp.WithString("file_type", mcp.Description("Document type: word, excel, or pdf (inferred when omitted)")),
		),
		h.verifyOutput,
	)
}
