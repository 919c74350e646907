package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfill/docfill/internal/document"
)

func TestAnswerFromMap_PlainText(t *testing.T) {
	a, err := document.AnswerFromMap(map[string]any{
		"pair_id":     "T1-R2-C2",
		"answer_text": "Acme Corp",
	})
	require.NoError(t, err)

	assert.Equal(t, "T1-R2-C2", a.PairID)
	assert.Equal(t, "Acme Corp", a.Value)
	assert.Equal(t, document.ReplaceContent, a.Mode, "mode defaults to replace_content")
	assert.Equal(t, document.Known, a.Confidence, "confidence defaults to known")
}

func TestAnswerFromMap_RefSpellings(t *testing.T) {
	for _, key := range []string{"xpath", "locator", "cell_id", "field_id"} {
		a, err := document.AnswerFromMap(map[string]any{
			"pair_id": "q1",
			key:       "S1-R2-C3",
			"value":   "42",
		})
		require.NoError(t, err, "key %s", key)
		assert.Equal(t, "S1-R2-C3", a.Ref, "key %s should normalise into Ref", key)
	}
}

func TestAnswerFromMap_ValueAliases(t *testing.T) {
	a, err := document.AnswerFromMap(map[string]any{"pair_id": "q1", "value": "v"})
	require.NoError(t, err)
	assert.Equal(t, "v", a.Value)

	a, err = document.AnswerFromMap(map[string]any{"pair_id": "q1", "answer_text": "v2"})
	require.NoError(t, err)
	assert.Equal(t, "v2", a.Value)
}

func TestAnswerFromMap_MissingTarget(t *testing.T) {
	_, err := document.AnswerFromMap(map[string]any{"value": "orphan"})
	assert.ErrorContains(t, err, "pair_id")
}

func TestAnswerFromMap_MissingValue(t *testing.T) {
	_, err := document.AnswerFromMap(map[string]any{"pair_id": "q1"})
	assert.ErrorContains(t, err, "neither value nor insertion_xml")
}

func TestAnswerFromMap_InvalidMode(t *testing.T) {
	_, err := document.AnswerFromMap(map[string]any{
		"pair_id": "q1",
		"value":   "v",
		"mode":    "overwrite",
	})
	assert.ErrorContains(t, err, "invalid insertion mode")
}

func TestParseInsertionMode(t *testing.T) {
	m, err := document.ParseInsertionMode("")
	require.NoError(t, err)
	assert.Equal(t, document.ReplaceContent, m)

	m, err = document.ParseInsertionMode("append")
	require.NoError(t, err)
	assert.Equal(t, document.Append, m)

	_, err = document.ParseInsertionMode("insert")
	assert.Error(t, err)
}

func TestExpectedAnswerFromMap(t *testing.T) {
	e, err := document.ExpectedAnswerFromMap(map[string]any{
		"pair_id":       "q1",
		"expected_text": "Acme Corp",
		"confidence":    "uncertain",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", e.Expected)
	assert.Equal(t, document.Uncertain, e.Confidence)

	_, err = document.ExpectedAnswerFromMap(map[string]any{"pair_id": "q1"})
	assert.ErrorContains(t, err, "expected_text")
}

func TestInferRelaxedFileType(t *testing.T) {
	assert.Equal(t, document.PDF, document.InferRelaxedFileType([]string{"F3"}))
	assert.Equal(t, document.Excel, document.InferRelaxedFileType([]string{"S1-R2-C3"}))
	assert.Equal(t, document.Excel, document.InferRelaxedFileType([]string{"q1"}), "Excel is the historical default")
}

func TestDetectFileType(t *testing.T) {
	ft, err := document.DetectFileType([]byte("%PDF-1.7 rest"))
	require.NoError(t, err)
	assert.Equal(t, document.PDF, ft)

	docx := append([]byte("PK\x03\x04"), []byte("...word/document.xml...")...)
	ft, err = document.DetectFileType(docx)
	require.NoError(t, err)
	assert.Equal(t, document.Word, ft)

	xlsx := append([]byte("PK\x03\x04"), []byte("...xl/workbook.xml...")...)
	ft, err = document.DetectFileType(xlsx)
	require.NoError(t, err)
	assert.Equal(t, document.Excel, ft)

	_, err = document.DetectFileType([]byte("plain text"))
	assert.ErrorIs(t, err, document.ErrUnknownFileType)
}
