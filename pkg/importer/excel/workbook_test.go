package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func saveWorkbook(t *testing.T, f *excelize.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestSelectSheetPreferred(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet(PreferredSheet)
	require.NoError(t, err)

	wb, err := Open(saveWorkbook(t, f))
	require.NoError(t, err)
	defer wb.Close()

	sheet, fallback := wb.SelectSheet(PreferredSheet)
	assert.Equal(t, PreferredSheet, sheet)
	assert.False(t, fallback)
}

func TestSelectSheetFallback(t *testing.T) {
	f := excelize.NewFile()

	wb, err := Open(saveWorkbook(t, f))
	require.NoError(t, err)
	defer wb.Close()

	sheet, fallback := wb.SelectSheet(PreferredSheet)
	assert.Equal(t, "Sheet1", sheet)
	assert.True(t, fallback)
}

func TestResolveLayoutMatchedSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet(PreferredSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(PreferredSheet, "A1", "محدث بتاريخ 2025-08-01"))
	require.NoError(t, f.SetCellValue(PreferredSheet, "A2", "رقم العقد"))
	require.NoError(t, f.SetCellValue(PreferredSheet, "B2", "الصنف"))
	require.NoError(t, f.SetCellValue(PreferredSheet, "A3", "C-1"))
	require.NoError(t, f.SetCellValue(PreferredSheet, "A4", "C-2"))

	wb, err := Open(saveWorkbook(t, f))
	require.NoError(t, err)
	defer wb.Close()

	layout, err := wb.ResolveLayout(PreferredSheet, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"رقم العقد", "الصنف"}, layout.Headers)
	assert.Equal(t, 3, layout.DataStart)
	require.Len(t, layout.DataRows(), 2)
	assert.Equal(t, "C-1", layout.DataRows()[0][0])
}

func TestResolveLayoutFallbackSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "SN"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Item"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "C-9"))

	wb, err := Open(saveWorkbook(t, f))
	require.NoError(t, err)
	defer wb.Close()

	layout, err := wb.ResolveLayout(sheet, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"SN", "Item"}, layout.Headers)
	assert.Equal(t, 2, layout.DataStart)
	require.Len(t, layout.DataRows(), 1)
}

func TestResolveLayoutMissingHeaderRow(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	wb, err := Open(saveWorkbook(t, f))
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.ResolveLayout(sheet, false)
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("/nonexistent/workbook.xlsx")
	assert.Error(t, err)
}
