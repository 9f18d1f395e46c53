// Package pipeline drives the follow-up workbook import: sheet selection,
// row normalization, master-data resolution and the append into the shipment
// table, with row-level error containment.
package pipeline

import (
	"context"
	"time"

	"github.com/freightbook/freightbook/pkg/importer/excel"
	"github.com/freightbook/freightbook/pkg/importer/model"
	"github.com/freightbook/freightbook/pkg/importer/storage"
	"github.com/freightbook/freightbook/pkg/importer/transform"
	"github.com/freightbook/freightbook/pkg/util"
	"github.com/sirupsen/logrus"
)

// CreatedBy tags every row written by this pipeline.
const CreatedBy = "followup-importer"

type Importer struct {
	storage storage.ShipmentStorage
}

func NewImporter(store storage.ShipmentStorage) *Importer {
	return &Importer{storage: store}
}

// RowError records one failed row with its 1-based position in the sheet.
type RowError struct {
	Row int
	Err error
}

// Summary is the externally observable result of a run. Its counts are the
// only success signal besides the database rows themselves.
type Summary struct {
	Sheet         string
	FallbackUsed  bool
	ImportBatchID string
	RowsRead      int
	BlankRows     int
	DeliveredRows int
	RowsWritten   int
	RowErrors     []RowError
}

func (s Summary) ErrorCount() int {
	return len(s.RowErrors)
}

// ImportWorkbook processes every data row of the follow-up sheet. A failing
// row is counted and logged, never aborts the batch. The returned error is
// non-nil only for fatal conditions: unreadable workbook or missing header
// row.
func (im *Importer) ImportWorkbook(ctx context.Context, path string) (Summary, error) {
	wb, err := excel.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if err := wb.Close(); err != nil {
			logrus.Warnf("Fail to close workbook. %v", err)
		}
	}()

	sheet, fallback := wb.SelectSheet(excel.PreferredSheet)
	if fallback {
		logrus.Warnf("Sheet %q not found, falling back to first sheet %q", excel.PreferredSheet, sheet)
	} else {
		logrus.Infof("Processing sheet %q", sheet)
	}

	layout, err := wb.ResolveLayout(sheet, fallback)
	if err != nil {
		return Summary{}, err
	}

	snCol := designatedColumn(layout.Headers, transform.FieldSN)
	itemCol := designatedColumn(layout.Headers, transform.FieldItem)

	summary := Summary{
		Sheet:         sheet,
		FallbackUsed:  fallback,
		ImportBatchID: util.NewUUID(),
	}
	logrus.Infof("Import batch %s: %d data rows found", summary.ImportBatchID, len(layout.DataRows()))

	for i, cells := range layout.DataRows() {
		rowNum := layout.DataStart + i
		summary.RowsRead++

		delivered := wb.RowDelivered(sheet, rowNum, snCol, itemCol)
		if delivered {
			summary.DeliveredRows++
		}

		record := transform.BuildRecord(layout.Headers, cells, delivered)
		if record.SN == "" {
			summary.BlankRows++
			continue
		}
		record.CreatedBy = CreatedBy
		record.ImportBatchID = summary.ImportBatchID

		if err := im.writeRow(ctx, &record); err != nil {
			summary.RowErrors = append(summary.RowErrors, RowError{Row: rowNum, Err: err})
			logrus.Warnf("Row %d (%s): %v", rowNum, record.SN, err)
			continue
		}
		summary.RowsWritten++
	}

	logrus.Infof(
		"Done: %d rows read, %d blank, %d flagged delivered, %d written, %d errors",
		summary.RowsRead, summary.BlankRows, summary.DeliveredRows, summary.RowsWritten, summary.ErrorCount(),
	)
	return summary, nil
}

// writeRow resolves the row's master-data references and appends the
// shipment. Each storage operation runs in its own short transaction;
// nothing ties a row's upserts to its final insert, so a mid-row failure can
// leave a resolved port or line behind. That is accepted; the resolution is
// idempotent and a re-run converges on the same ids.
func (im *Importer) writeRow(ctx context.Context, record *model.ShipmentRecord) error {
	ts := time.Now().Unix()

	if record.POLName != nil {
		id, err := im.resolvePort(ctx, ts, *record.POLName)
		if err != nil {
			return err
		}
		record.POLID = &id
	}
	if record.PODName != nil {
		id, err := im.resolvePort(ctx, ts, *record.PODName)
		if err != nil {
			return err
		}
		record.PODID = &id
	}
	if record.ShippingLineName != nil {
		id, err := im.resolveShippingLine(ctx, ts, *record.ShippingLineName)
		if err != nil {
			return err
		}
		record.ShippingLineID = &id
	}

	return im.withWriteTx(ctx, func(tx storage.Tx) error {
		return im.storage.AddShipment(ctx, tx, ts, *record)
	})
}

func (im *Importer) resolvePort(ctx context.Context, ts int64, name string) (int64, error) {
	var id int64
	err := im.withWriteTx(ctx, func(tx storage.Tx) error {
		var err error
		id, err = im.storage.ResolvePort(ctx, tx, ts, name, "")
		return err
	})
	return id, err
}

func (im *Importer) resolveShippingLine(ctx context.Context, ts int64, name string) (int64, error) {
	var id int64
	err := im.withWriteTx(ctx, func(tx storage.Tx) error {
		var err error
		id, err = im.storage.ResolveShippingLine(ctx, tx, ts, name, "")
		return err
	})
	return id, err
}

func (im *Importer) withWriteTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := im.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// designatedColumn locates a style-carrying column, -1 when the header is
// missing so RowDelivered skips it.
func designatedColumn(headers []string, field transform.Field) int {
	idx, ok := transform.FindColumn(headers, field)
	if !ok {
		return -1
	}
	return idx
}
