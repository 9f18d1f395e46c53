package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// The source workbook marks delivered shipments by greying out the row.
// The fill on the SN and item columns is the reliable carrier of the
// signal, so only those two columns are inspected. The grey shows up
// in three encodings depending on which Excel version last touched the file.
const (
	backgroundTheme   = 0    // theme slot of the white background color
	greyTintThreshold = -0.3 // darker than this counts as grey
)

var greyRGB = map[string]struct{}{
	"D9D9D9": {},
	"BFBFBF": {},
	"A6A6A6": {},
}

var greyPaletteIndexes = map[int]struct{}{
	22: {},
	55: {},
}

type fillColor struct {
	Theme   *int
	Tint    float64
	RGB     string
	Indexed int
}

// RowDelivered reports whether any of the designated columns of the given
// 1-based row carries a grey fill. Columns are 0-based indexes; a row with
// no style metadata on either column is not flagged.
func (wb *Workbook) RowDelivered(sheet string, row int, columns ...int) bool {
	for _, col := range columns {
		if col < 0 {
			continue
		}
		fill, ok := wb.cellFill(sheet, col, row)
		if ok && isGreyFill(fill) {
			return true
		}
	}
	return false
}

// cellFill digs the foreground fill color out of the raw style sheet. The
// high-level style API drops theme and tint information, so this walks
// cellXfs -> fills directly.
func (wb *Workbook) cellFill(sheet string, col, row int) (fillColor, bool) {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return fillColor{}, false
	}
	styleID, err := wb.file.GetCellStyle(sheet, cell)
	if err != nil || styleID < 0 {
		return fillColor{}, false
	}

	styles := wb.file.Styles
	if styles == nil || styles.CellXfs == nil || styleID >= len(styles.CellXfs.Xf) {
		return fillColor{}, false
	}
	xf := styles.CellXfs.Xf[styleID]
	if xf.FillID == nil {
		return fillColor{}, false
	}
	fillID := *xf.FillID
	if styles.Fills == nil || fillID < 0 || fillID >= len(styles.Fills.Fill) {
		return fillColor{}, false
	}
	fill := styles.Fills.Fill[fillID]
	if fill == nil || fill.PatternFill == nil || fill.PatternFill.FgColor == nil {
		return fillColor{}, false
	}

	color := fill.PatternFill.FgColor
	return fillColor{
		Theme:   color.Theme,
		Tint:    color.Tint,
		RGB:     color.RGB,
		Indexed: color.Indexed,
	}, true
}

func isGreyFill(fill fillColor) bool {
	if fill.Theme != nil && *fill.Theme == backgroundTheme && fill.Tint < greyTintThreshold {
		return true
	}
	if _, ok := greyRGB[normalizeRGB(fill.RGB)]; ok {
		return true
	}
	if _, ok := greyPaletteIndexes[fill.Indexed]; ok {
		return true
	}
	return false
}

// normalizeRGB strips the alpha byte excelize keeps on ARGB values.
func normalizeRGB(rgb string) string {
	rgb = strings.ToUpper(strings.TrimPrefix(rgb, "#"))
	if len(rgb) == 8 {
		rgb = rgb[2:]
	}
	return rgb
}
