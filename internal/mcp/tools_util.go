// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Design: We use permissive extraction (return default on error) rather than
// strict validation because MCP tools should be forgiving - an LLM omitting
// an optional parameter shouldn't cause cryptic errors. Where an input is
// genuinely unusable, the tool returns an error result with the exact
// problem and a usage example so the agent can self-correct in one retry.

package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter, returning the provided default if
// the parameter is missing or not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the raw argument map. JSON
// booleans decode as Go bool values, so a type assertion suffices.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getMaps extracts an array-of-objects parameter. JSON arrays decode as
// []any and objects as map[string]any; elements of any other shape are
// silently skipped. Returns nil when the parameter is absent, letting
// callers distinguish "not provided" from "provided but empty".
func getMaps(req mcp.CallToolRequest, name string) []map[string]any {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	arr, ok := args[name].([]any)
	if !ok {
		return nil
	}
	result := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			result = append(result, m)
		}
	}
	return result
}

// jsonResult serialises any value as pretty-printed JSON and wraps it in an
// MCP text result. Pretty-printing costs a few tokens but LLMs parse
// indented output more reliably than compact JSON.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// usage holds a mini example per tool, appended to input errors so any
// agent can self-correct in one retry.
var usage = map[string]string{
	"docfill_extract_structure_compact": `docfill_extract_structure_compact(file_path="form.docx")`,
	"docfill_extract_structure":         `docfill_extract_structure(file_path="form.docx")`,
	"docfill_validate_locations":        `docfill_validate_locations(file_path="form.docx", locations=[{"pair_id": "q1", "snippet": "<w:t>Company</w:t>"}])`,
	"docfill_build_insertion_xml":       `docfill_build_insertion_xml(answer_text="Acme Corp", target_context_xml="<w:r>...</w:r>", answer_type="plain_text")`,
	"docfill_list_form_fields":          `docfill_list_form_fields(file_path="form.docx")`,
	"docfill_write_answers":             `docfill_write_answers(file_path="form.docx", answers=[{"pair_id": "T1-R2-C2", "answer_text": "Acme Corp"}])`,
	"docfill_verify_output":             `docfill_verify_output(file_path="filled.docx", expected_answers=[{"pair_id": "q1", "expected_text": "Acme Corp"}])`,
}

// inputError builds an MCP error result carrying the problem plus the
// tool's usage example.
func inputError(tool string, err error) *mcp.CallToolResult {
	msg := tool + " error: " + err.Error()
	if ex, ok := usage[tool]; ok {
		msg += "\n  Example: " + ex
	}
	return mcp.NewToolResultError(msg)
}
