// Package transform converts raw follow-up sheet rows into normalized
// shipment records. The sheet is bilingual (Arabic/English) and its headers
// drifted over the years, so every canonical field is reachable through
// several source labels.
package transform

import (
	"regexp"
	"strings"
)

// Field is a canonical shipment field addressed by one or more source labels.
type Field string

const (
	FieldSN               Field = "sn"
	FieldItem             Field = "item"
	FieldContainerCount   Field = "container_count"
	FieldPackageCount     Field = "package_count"
	FieldWeightTon        Field = "weight_ton"
	FieldPricePerTon      Field = "price_per_ton"
	FieldETA              Field = "eta"
	FieldDepositDate      Field = "deposit_date"
	FieldContractShipDate Field = "contract_ship_date"
	FieldBLDate           Field = "bl_date"
	FieldStatus           Field = "status"
	FieldBookingNo        Field = "booking_no"
	FieldBLNo             Field = "bl_no"
	FieldPOL              Field = "pol"
	FieldPOD              Field = "pod"
	FieldShippingLine     Field = "shipping_line"
)

// HeaderBinding maps one source column label to a canonical field.
type HeaderBinding struct {
	Label string
	Field Field
}

// HeaderBindings is the full label table in declaration order. When two
// labels bound to the same field are both populated in a row, the earlier
// declared label wins; later synonyms are ignored.
var HeaderBindings = []HeaderBinding{
	{"رقم العقد", FieldSN},
	{"رقم الشحنة", FieldSN},
	{"SN", FieldSN},
	{"الصنف", FieldItem},
	{"البضاعة", FieldItem},
	{"Item", FieldItem},
	{"عدد الحاويات", FieldContainerCount},
	{"الحاويات", FieldContainerCount},
	{"عدد الطرود", FieldPackageCount},
	{"الطرود", FieldPackageCount},
	{"الوزن طن", FieldWeightTon},
	{"الوزن", FieldWeightTon},
	{"Weight", FieldWeightTon},
	{"سعر الطن", FieldPricePerTon},
	{"السعر", FieldPricePerTon},
	{"Price", FieldPricePerTon},
	{"تاريخ الوصول", FieldETA},
	{"ETA", FieldETA},
	{"تاريخ العربون", FieldDepositDate},
	{"تاريخ الشحن حسب العقد", FieldContractShipDate},
	{"تاريخ الشحن", FieldContractShipDate},
	{"تاريخ البوليصة", FieldBLDate},
	{"الحالة", FieldStatus},
	{"الموقف", FieldStatus},
	{"Status", FieldStatus},
	{"رقم الحجز", FieldBookingNo},
	{"Booking No", FieldBookingNo},
	{"رقم البوليصة", FieldBLNo},
	{"BL No", FieldBLNo},
	{"ميناء الشحن", FieldPOL},
	{"POL", FieldPOL},
	{"ميناء الوصول", FieldPOD},
	{"POD", FieldPOD},
	{"الخط الملاحي", FieldShippingLine},
	{"شركة الشحن", FieldShippingLine},
	{"Shipping Line", FieldShippingLine},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeText trims a cell value and collapses internal whitespace runs to
// single spaces.
func NormalizeText(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeHeader prepares a column header for label matching. Trailing
// colons show up in hand-edited header rows.
func NormalizeHeader(s string) string {
	return strings.TrimSuffix(NormalizeText(s), ":")
}

func headerEqual(a, b string) bool {
	return strings.EqualFold(NormalizeHeader(a), NormalizeHeader(b))
}

// FindColumn returns the index of the first header column bound to the given
// field, following binding declaration order.
func FindColumn(headers []string, field Field) (int, bool) {
	for _, binding := range HeaderBindings {
		if binding.Field != field {
			continue
		}
		for idx, header := range headers {
			if headerEqual(header, binding.Label) {
				return idx, true
			}
		}
	}
	return 0, false
}
