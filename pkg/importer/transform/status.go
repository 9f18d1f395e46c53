package transform

import (
	"strings"

	"github.com/freightbook/freightbook/pkg/importer/model"
)

type statusEntry struct {
	Label  string
	Status model.ShipmentStatus
}

// statusEntries is the status vocabulary in declaration order. Matching is
// exact first across the whole table, then a substring scan in this order.
// "وصلت" alone is the terse form for a fully arrived shipment; the longer
// "وصلت الميناء" means the goods only reached the discharge port.
var statusEntries = []statusEntry{
	{"تم الحجز", model.StatusBooked},
	{"تم الشحن", model.StatusShippedOnBoard},
	{"في الطريق", model.StatusOnWater},
	{"في البحر", model.StatusOnWater},
	{"وصلت", model.StatusDelivered},
	{"وصلت الميناء", model.StatusGateIn},
	{"دخل الميناء", model.StatusGateIn},
	{"قيد التخليص", model.StatusUnderClearance},
	{"التخليص الجمركي", model.StatusUnderClearance},
	{"تم التسليم", model.StatusDelivered},
	{"booked", model.StatusBooked},
	{"on board", model.StatusShippedOnBoard},
	{"on water", model.StatusOnWater},
	{"gate in", model.StatusGateIn},
	{"under clearance", model.StatusUnderClearance},
	{"delivered", model.StatusDelivered},
}

// MapStatus translates a free-text status label into the controlled
// vocabulary. An unrecognized label yields nil; the caller must not default
// to any status.
func MapStatus(raw string) *model.ShipmentStatus {
	value := NormalizeText(raw)
	if value == "" {
		return nil
	}

	for _, entry := range statusEntries {
		if strings.EqualFold(value, entry.Label) {
			status := entry.Status
			return &status
		}
	}

	lowered := strings.ToLower(value)
	for _, entry := range statusEntries {
		if strings.Contains(lowered, strings.ToLower(entry.Label)) {
			status := entry.Status
			return &status
		}
	}

	return nil
}
