package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/freightbook/freightbook/pkg/importer/model"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)

// BuildRecord normalizes one raw sheet row into a ShipmentRecord. cells is
// positionally aligned with headers; short rows are tolerated. delivered is
// the style classifier verdict for the row and, when true, forces the final
// status regardless of the raw status label.
func BuildRecord(headers []string, cells []string, delivered bool) model.ShipmentRecord {
	values := make(map[string]string, len(headers))
	for _, pair := range lo.Zip2(headers, cells) {
		header := strings.ToLower(NormalizeHeader(pair.A))
		if header == "" {
			continue
		}
		if _, ok := values[header]; !ok {
			values[header] = pair.B
		}
	}

	record := model.ShipmentRecord{Direction: model.DirectionImport}
	seen := make(map[Field]bool, len(HeaderBindings))

	for _, binding := range HeaderBindings {
		raw, ok := values[strings.ToLower(NormalizeHeader(binding.Label))]
		if !ok || NormalizeText(raw) == "" {
			continue
		}
		if seen[binding.Field] {
			continue
		}
		seen[binding.Field] = true
		applyField(&record, binding.Field, raw)
	}

	if record.WeightTon != nil && record.PricePerTon != nil {
		total := record.WeightTon.Mul(*record.PricePerTon)
		record.TotalValue = &total
	}

	if delivered {
		status := model.StatusDelivered
		record.Status = &status
	}

	return record
}

// applyField coerces the raw value into its canonical slot. Unparseable
// numbers, dates and unknown status labels leave the field absent; they are
// data-quality noise, not errors.
func applyField(record *model.ShipmentRecord, field Field, raw string) {
	switch field {
	case FieldSN:
		record.SN = NormalizeText(raw)
	case FieldItem:
		record.Item = textPtr(raw)
	case FieldContainerCount:
		record.ContainerCount = parseCount(raw)
	case FieldPackageCount:
		record.PackageCount = parseCount(raw)
	case FieldWeightTon:
		record.WeightTon = parseAmount(raw)
	case FieldPricePerTon:
		record.PricePerTon = parseAmount(raw)
	case FieldETA:
		record.ETA = ParseDate(raw)
	case FieldDepositDate:
		record.DepositDate = ParseDate(raw)
	case FieldContractShipDate:
		record.ContractShipDate = ParseDate(raw)
	case FieldBLDate:
		record.BLDate = ParseDate(raw)
	case FieldStatus:
		record.Status = MapStatus(raw)
	case FieldBookingNo:
		record.BookingNo = textPtr(raw)
	case FieldBLNo:
		record.BLNo = textPtr(raw)
	case FieldPOL:
		record.POLName = textPtr(raw)
	case FieldPOD:
		record.PODName = textPtr(raw)
	case FieldShippingLine:
		record.ShippingLineName = textPtr(raw)
	}
}

func textPtr(raw string) *string {
	value := NormalizeText(raw)
	if value == "" {
		return nil
	}
	return &value
}

// parseCount parses an integer count. A fractional or non-numeric value
// leaves the field absent, not zero.
func parseCount(raw string) *int {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// parseAmount parses a decimal quantity after stripping currency symbols and
// thousands separators. Values that are not strictly positive are absent.
func parseAmount(raw string) *decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || !d.IsPositive() {
		return nil
	}
	return &d
}
