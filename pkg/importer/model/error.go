package model

import (
	"errors"
	"fmt"
)

var ErrWorkbookError = errors.New("")   // Base error for workbook access
var ErrMasterDataError = errors.New("") // Base error for master-data resolution
var ErrShipmentError = errors.New("")   // Base error for shipment writes

// Workbook errors
var ErrHeaderRowMissing = fmt.Errorf("header row missing%w", ErrWorkbookError)

// Master-data errors
var ErrEmptyEntityName = fmt.Errorf("entity name is empty%w", ErrMasterDataError)

// Shipment errors
var ErrMissingSN = fmt.Errorf("shipment record has no SN%w", ErrShipmentError)
