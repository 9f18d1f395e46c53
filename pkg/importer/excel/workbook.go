// Package excel reads the follow-up workbook: sheet selection, header/data
// range resolution, raw row access and the fill-based delivered classifier.
package excel

import (
	"fmt"

	"github.com/freightbook/freightbook/pkg/importer/model"
	"github.com/xuri/excelize/v2"
)

// PreferredSheet is the title the operations team gives the follow-up sheet.
const PreferredSheet = "متابعة الشحنات"

type Workbook struct {
	file *excelize.File
}

func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// SelectSheet returns the sheet with the exact preferred title when present,
// otherwise the first sheet of the workbook with the fallback flag set.
// A missing preferred sheet is not an error; fallback is the defined
// behavior and only surfaces in the run summary.
func (wb *Workbook) SelectSheet(preferred string) (string, bool) {
	sheets := wb.file.GetSheetList()
	for _, name := range sheets {
		if name == preferred {
			return name, false
		}
	}
	return sheets[0], true
}

// Layout is the resolved header/data range of a sheet plus its raw rows.
type Layout struct {
	Sheet     string
	Headers   []string
	DataStart int // 1-based index of the first data row
	rows      [][]string
}

// ResolveLayout reads the sheet and locates headers and data. The follow-up
// sheet matched by title carries an as-of date in row 1, headers in row 2 and
// data from row 3. Any other sheet is assumed to start with a plain header
// row. The distinction is driven by how the sheet was selected, never by
// content sniffing.
func (wb *Workbook) ResolveLayout(sheet string, fallback bool) (Layout, error) {
	rows, err := wb.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Layout{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	headerRow := 2
	if fallback {
		headerRow = 1
	}
	if len(rows) < headerRow {
		return Layout{}, fmt.Errorf("sheet %s has %d rows: %w", sheet, len(rows), model.ErrHeaderRowMissing)
	}

	return Layout{
		Sheet:     sheet,
		Headers:   rows[headerRow-1],
		DataStart: headerRow + 1,
		rows:      rows,
	}, nil
}

// DataRows returns the raw data rows in sheet order. The i-th returned row
// lives at 1-based sheet row DataStart+i.
func (l Layout) DataRows() [][]string {
	if len(l.rows) < l.DataStart {
		return nil
	}
	return l.rows[l.DataStart-1:]
}
