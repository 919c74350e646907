// tools_extract.go implements the read-only and transform tools in the
// pipeline: structure extraction, location validation, insertion-markup
// building, and the form-field inventory.
//
// Bad inputs become MCP error results (mcp.NewToolResultError), never
// protocol errors: the calling agent reads the message and retries, and a
// protocol error would abort its whole session instead.

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docfill/docfill/internal/dispatch"
	"github.com/docfill/docfill/internal/document"
	"github.com/docfill/docfill/internal/word"
)

// extractStructureCompact handles docfill_extract_structure_compact.
func (h *handlers) extractStructureCompact(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := h.resolveFile(req)
	if err != nil {
		return inputError("docfill_extract_structure_compact", err), nil
	}
	hdl, err := dispatch.ForType(in.fileType, h.cfg.Options())
	if err != nil {
		return inputError("docfill_extract_structure_compact", err), nil
	}

	st, err := hdl.Index(in.bytes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]any{
		"compact_text":     st.CompactText,
		"id_to_locator":    st.IDToLocator,
		"complex_elements": st.ComplexIDs,
	}
	if in.path != "" {
		result["file_path"] = in.path
	}
	return jsonResult(result)
}

// extractStructure handles docfill_extract_structure.
func (h *handlers) extractStructure(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := h.resolveFile(req)
	if err != nil {
		return inputError("docfill_extract_structure", err), nil
	}
	hdl, err := dispatch.ForType(in.fileType, h.cfg.Options())
	if err != nil {
		return inputError("docfill_extract_structure", err), nil
	}

	raw, err := hdl.Raw(in.bytes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(raw)
}

// validateLocations handles docfill_validate_locations.
func (h *handlers) validateLocations(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := h.resolveFile(req)
	if err != nil {
		return inputError("docfill_validate_locations", err), nil
	}

	rawLocs := getMaps(req, "locations")
	if len(rawLocs) == 0 {
		return inputError("docfill_validate_locations",
			errors.New("locations is required: a list of {pair_id, snippet} objects")), nil
	}
	locations := make([]document.Location, 0, len(rawLocs))
	for i, m := range rawLocs {
		loc := document.Location{
			PairID:  stringField(m, "pair_id"),
			Snippet: stringField(m, "snippet"),
		}
		if loc.PairID == "" && loc.Snippet == "" {
			return inputError("docfill_validate_locations",
				fmt.Errorf("locations[%d] needs pair_id and snippet", i)), nil
		}
		locations = append(locations, loc)
	}

	hdl, err := dispatch.ForType(in.fileType, h.cfg.Options())
	if err != nil {
		return inputError("docfill_validate_locations", err), nil
	}
	validated, err := hdl.Validate(in.bytes, locations)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"validated": validated})
}

// buildInsertionXML handles docfill_build_insertion_xml. Word only: the
// other formats take plain values and have no markup to build.
func (h *handlers) buildInsertionXML(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answerText := getString(req, "answer_text", "")
	if answerText == "" {
		return inputError("docfill_build_insertion_xml", errors.New("answer_text is required")), nil
	}
	answerType := getString(req, "answer_type", "")
	if answerType != "plain_text" && answerType != "structured" {
		return inputError("docfill_build_insertion_xml",
			fmt.Errorf("invalid answer_type %q. Valid values: 'plain_text', 'structured'", answerType)), nil
	}

	result := word.BuildInsertionXML(answerText, getString(req, "target_context_xml", ""), answerType)
	return jsonResult(result)
}

// listFormFields handles docfill_list_form_fields.
func (h *handlers) listFormFields(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := h.resolveFile(req)
	if err != nil {
		return inputError("docfill_list_form_fields", err), nil
	}
	hdl, err := dispatch.ForType(in.fileType, h.cfg.Options())
	if err != nil {
		return inputError("docfill_list_form_fields", err), nil
	}

	fields, err := hdl.Fields(in.bytes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if fields == nil {
		fields = []document.FormField{}
	}
	return jsonResult(map[string]any{"fields": fields})
}

// stringField reads a string value from a raw JSON object.
func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
