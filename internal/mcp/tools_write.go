// tools_write.go implements the write-side tools: answer writing (with its
// dry-run preview) and post-write verification.

package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docfill/docfill/internal/dispatch"
	"github.com/docfill/docfill/internal/document"
)

// writeAnswers handles docfill_write_answers.
func (h *handlers) writeAnswers(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := h.resolveFile(req)
	if errors.Is(err, errNoFileInput) {
		return mcp.NewToolResultError(
			"Missing file_path -- this is the path you passed to docfill_extract_structure_compact"), nil
	}
	if err != nil {
		return inputError("docfill_write_answers", err), nil
	}

	rawAnswers, err := h.resolveAnswersInput(req)
	if err != nil {
		return inputError("docfill_write_answers", err), nil
	}

	answers := make([]document.Answer, 0, len(rawAnswers))
	for i, m := range rawAnswers {
		a, err := document.AnswerFromMap(m)
		if err != nil {
			return inputError("docfill_write_answers",
				fmt.Errorf("answers[%d]: %w", i, err)), nil
		}
		answers = append(answers, a)
	}

	hdl, err := dispatch.ForType(in.fileType, h.cfg.Options())
	if err != nil {
		return inputError("docfill_write_answers", err), nil
	}

	var warnings []string
	if in.fileType == document.Word {
		answers, warnings, err = reconcileAnswers(hdl, in.bytes, answers)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if getBool(req, "dry_run", false) {
		previews, err := hdl.Preview(in.bytes, answers)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{
			"dry_run":  true,
			"previews": previews,
			"warnings": warnings,
		})
	}

	out, err := hdl.Write(in.bytes, answers)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]any{}
	if len(warnings) > 0 {
		result["warnings"] = warnings
	}
	if outPath := getString(req, "output_file_path", ""); outPath != "" {
		written, err := writeOutput(outPath, out)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result["file_path"] = written
	} else {
		result["file_bytes_b64"] = base64.StdEncoding.EncodeToString(out)
	}
	return jsonResult(result)
}

// resolveAnswersInput returns the raw answer objects from the inline
// parameter or a JSON file on disk. The file form exists for large payloads
// (>20 answers) that would otherwise crowd the agent's context window.
func (h *handlers) resolveAnswersInput(req mcp.CallToolRequest) ([]map[string]any, error) {
	if path := getString(req, "answers_file_path", ""); path != "" {
		raw, err := h.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("answers_file_path: %w", err)
		}
		var answers []map[string]any
		if err := json.Unmarshal(raw, &answers); err != nil {
			return nil, fmt.Errorf("answers_file_path must contain a JSON array of answer objects: %w", err)
		}
		return h.checkAnswerCount(answers)
	}

	if answers := getMaps(req, "answers"); len(answers) > 0 {
		return h.checkAnswerCount(answers)
	}
	return nil, errors.New("provide either answers (inline) or answers_file_path - neither was supplied")
}

func (h *handlers) checkAnswerCount(answers []map[string]any) ([]map[string]any, error) {
	if len(answers) > h.cfg.MaxAnswers() {
		return nil, fmt.Errorf("too many answers (%d), max is %d", len(answers), h.cfg.MaxAnswers())
	}
	return answers, nil
}

// verifyOutput handles docfill_verify_output.
func (h *handlers) verifyOutput(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := h.resolveFile(req)
	if err != nil {
		return inputError("docfill_verify_output", err), nil
	}

	rawExpected := getMaps(req, "expected_answers")
	if len(rawExpected) == 0 {
		return inputError("docfill_verify_output",
			errors.New("expected_answers is required: a list of {pair_id, expected_text} objects")), nil
	}
	expected := make([]document.ExpectedAnswer, 0, len(rawExpected))
	for i, m := range rawExpected {
		e, err := document.ExpectedAnswerFromMap(m)
		if err != nil {
			return inputError("docfill_verify_output",
				fmt.Errorf("expected_answers[%d]: %w", i, err)), nil
		}
		expected = append(expected, e)
	}

	hdl, err := dispatch.ForType(in.fileType, h.cfg.Options())
	if err != nil {
		return inputError("docfill_verify_output", err), nil
	}

	var warnings []string
	if in.fileType == document.Word {
		expected, warnings, err = reconcileExpected(hdl, in.bytes, expected)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	report, err := hdl.Verify(in.bytes, expected)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(warnings) == 0 {
		return jsonResult(report)
	}
	return jsonResult(map[string]any{
		"structural_issues": report.StructuralIssues,
		"content_results":   report.ContentResults,
		"summary":           report.Summary,
		"warnings":          warnings,
	})
}
