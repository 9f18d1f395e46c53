// Package model holds the normalized entities produced by the follow-up
// workbook importer.
package model

import (
	"github.com/shopspring/decimal"
)

// ShipmentStatus is the controlled vocabulary for the follow-up status column.
type ShipmentStatus string

const (
	StatusBooked         ShipmentStatus = "booked"
	StatusShippedOnBoard ShipmentStatus = "shipped_on_board"
	StatusOnWater        ShipmentStatus = "on_water"
	StatusGateIn         ShipmentStatus = "gate_in"
	StatusUnderClearance ShipmentStatus = "under_clearance"
	StatusDelivered      ShipmentStatus = "delivered"
)

// DirectionImport marks rows written by this pipeline. The follow-up sheet
// only tracks inbound contracts.
const DirectionImport = "import"

// ShipmentRecord is one normalized row of the follow-up sheet. Every field
// except SN is optional; a nil pointer means the source cell was empty or
// could not be coerced. SN is the natural row key, duplicates are allowed
// because one contract may be split across several physical shipments.
type ShipmentRecord struct {
	SN        string
	Direction string

	Item           *string
	ContainerCount *int
	PackageCount   *int

	WeightTon   *decimal.Decimal
	PricePerTon *decimal.Decimal
	TotalValue  *decimal.Decimal

	ETA              *Date
	DepositDate      *Date
	ContractShipDate *Date
	BLDate           *Date

	Status *ShipmentStatus

	BookingNo *string
	BLNo      *string

	// Normalized source text for master-data resolution. Kept on the record
	// so the resolver can be skipped per field when the cell is empty.
	POLName          *string
	PODName          *string
	ShippingLineName *string

	// Resolved foreign keys.
	POLID          *int64
	PODID          *int64
	ShippingLineID *int64

	// Provenance.
	CreatedBy     string
	ImportBatchID string
}

// Port is a master-data entity keyed by (lowercased name, lowercased country).
type Port struct {
	ID      int64
	Name    string
	Country string
}

// Company is a master-data entity for carriers and other trade parties.
// IsShippingLine is set once the company is referenced as a carrier.
type Company struct {
	ID             int64
	Name           string
	Country        string
	IsShippingLine bool
}
