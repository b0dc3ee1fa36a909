package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxConfiguration holds one immutable version of the tax rates and the
// liters-to-gallons conversion factor. The record with the highest creation
// time is the active configuration; updates insert a new row, never mutate.
type TaxConfiguration struct {
	ID               int64           `json:"id"`
	IEPS             decimal.Decimal `json:"ieps"`              // per gallon
	IVA              decimal.Decimal `json:"iva"`               // fraction of taxable base
	PVR              decimal.Decimal `json:"pvr"`               // per gallon
	IVAPVR           decimal.Decimal `json:"iva_pvr"`           // fraction of the PVR amount
	ConversionFactor decimal.Decimal `json:"conversion_factor"` // liters -> gallons
	UpdatedBy        *int64          `json:"updated_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
