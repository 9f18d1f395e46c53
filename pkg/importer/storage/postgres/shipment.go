package postgres

import (
	"context"

	"github.com/freightbook/freightbook/pkg/importer/model"
	"github.com/freightbook/freightbook/pkg/importer/storage"
	"github.com/shopspring/decimal"
)

// AddShipment appends one normalized shipment row. The follow-up pipeline
// never updates existing rows; a re-import appends again.
func (s *_Storage) AddShipment(ctx context.Context, tx storage.Tx, ts int64, record model.ShipmentRecord) error {
	if record.SN == "" {
		return model.ErrMissingSN
	}

	query := `
INSERT INTO shipment (
	sn, direction, item, container_count, package_count,
	weight_ton, price_per_ton, total_value,
	eta, deposit_date, contract_ship_date, bl_date,
	"status", booking_no, bl_no,
	pol_id, pod_id, shipping_line_id,
	created_by, import_batch_id, created_at
)
VALUES (
	$1, $2, $3, $4, $5,
	$6, $7, $8,
	$9, $10, $11, $12,
	$13, $14, $15,
	$16, $17, $18,
	$19, $20, $21
)
`
	_, err := tx.Exec(
		ctx,
		query,
		record.SN,
		record.Direction,
		record.Item,
		record.ContainerCount,
		record.PackageCount,
		amountArg(record.WeightTon),
		amountArg(record.PricePerTon),
		amountArg(record.TotalValue),
		dateArg(record.ETA),
		dateArg(record.DepositDate),
		dateArg(record.ContractShipDate),
		dateArg(record.BLDate),
		statusArg(record.Status),
		record.BookingNo,
		record.BLNo,
		record.POLID,
		record.PODID,
		record.ShippingLineID,
		record.CreatedBy,
		record.ImportBatchID,
		ts,
	)
	return err
}

// amountArg sends decimals as text so the server coerces them to NUMERIC
// without loss.
func amountArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func dateArg(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.GetTime()
}

func statusArg(s *model.ShipmentStatus) any {
	if s == nil {
		return nil
	}
	return string(*s)
}
