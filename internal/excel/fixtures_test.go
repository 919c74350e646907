// fixtures_test.go builds small in-memory workbooks for the other test
// files.

package excel_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/docfill/docfill/internal/document"
	"github.com/docfill/docfill/internal/excel"
)

func makeWorkbook(t *testing.T, setup func(wb *excelize.File)) []byte {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	if setup != nil {
		setup(wb)
	}
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// formWorkbook is the shared fixture: one question row with an empty answer
// cell, one row already filled in.
func formWorkbook(t *testing.T) []byte {
	return makeWorkbook(t, func(wb *excelize.File) {
		require.NoError(t, wb.SetCellValue("Sheet1", "A1", "Company Name"))
		require.NoError(t, wb.SetCellValue("Sheet1", "A2", "Date"))
		require.NoError(t, wb.SetCellValue("Sheet1", "B2", "2026-01-01"))
	})
}

func newHandler() *excel.Handler {
	return excel.New(document.Options{})
}
