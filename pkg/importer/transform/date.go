package transform

import (
	"regexp"
	"strconv"
	"time"

	"github.com/freightbook/freightbook/pkg/importer/model"
	"github.com/xuri/excelize/v2"
)

// PlaceholderYear anchors the "شهر N" placeholder the operations team types
// when a contract has a target month but no confirmed date yet.
const PlaceholderYear = 2025

const (
	minDateYear = 2000
	maxDateYear = 2100
)

var (
	monthPlaceholder = regexp.MustCompile(`^شهر\s+(\d{1,2})$`)
	ymdPattern       = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	dmyPattern       = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
)

// ParseDate coerces a raw cell value into a calendar date. Three shapes are
// recognized, tried in order: a numeric spreadsheet serial, the "شهر N"
// month placeholder, and a plain Y-M-D or D-M-Y text date. Anything else is
// absence, never an error.
func ParseDate(raw string) *model.Date {
	value := NormalizeText(raw)
	if value == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		d := model.NewDateFromTime(t)
		return &d
	}

	if m := monthPlaceholder.FindStringSubmatch(value); m != nil {
		month, _ := strconv.Atoi(m[1])
		if month < 1 || month > 12 {
			return nil
		}
		d := model.NewDate(PlaceholderYear, time.Month(month), 1)
		return &d
	}

	if m := ymdPattern.FindStringSubmatch(value); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	if m := dmyPattern.FindStringSubmatch(value); m != nil {
		return buildDate(m[3], m[2], m[1])
	}

	return nil
}

func buildDate(yearStr, monthStr, dayStr string) *model.Date {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	if year < minDateYear || year > maxDateYear {
		return nil
	}
	// time.Date normalizes overflow (month 13 becomes January of the next
	// year), which would accept garbage. Round-trip to reject it.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return nil
	}
	d := model.NewDateFromTime(t)
	return &d
}
