package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cargo types
const (
	CargoFull        = "full"
	CargoTankerTruck = "tanker_truck"
	CargoBarge       = "barge"
)

// Payment states
const (
	PaymentUnpaid     = "unpaid"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
	PaymentRejected   = "rejected"
)

// Invoice represents a customs fuel-import invoice moving through the
// multi-role approval lifecycle. Derived monetary fields are always recomputed
// from the volume and price inputs, never edited independently.
type Invoice struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"owner_id"`
	SupervisorID *int64 `json:"supervisor_id,omitempty"`
	AdminID      *int64 `json:"admin_id,omitempty"`

	Status            string `json:"status"`
	SuspensionMessage string `json:"suspension_message,omitempty"`

	// Identification
	Importer       string    `json:"importer"`
	TaxID          string    `json:"tax_id"`
	EntryNumber    string    `json:"entry_number"`
	CustomsOffice  string    `json:"customs_office"`
	CustomsLicense string    `json:"customs_license"`
	IssuedAt       time.Time `json:"issued_at"`

	// Payment tracking
	CaptureLine   string `json:"capture_line,omitempty"`
	PaymentStatus string `json:"payment_status"`

	CargoType string `json:"cargo_type"`

	// Volumes in liters
	LitersTrailerOne  decimal.Decimal `json:"liters_trailer1"`
	LitersTrailerTwo  decimal.Decimal `json:"liters_trailer2"`
	LitersTankerTruck decimal.Decimal `json:"liters_tanker_truck"`
	LitersBarge       decimal.Decimal `json:"liters_barge"`

	// Volumes in gallons (derived)
	GallonsTrailerOne  decimal.Decimal `json:"gallons_trailer1"`
	GallonsTrailerTwo  decimal.Decimal `json:"gallons_trailer2"`
	GallonsTankerTruck decimal.Decimal `json:"gallons_tanker_truck"`
	GallonsBarge       decimal.Decimal `json:"gallons_barge"`

	// Financial inputs
	UnitPricePerGallon decimal.Decimal `json:"unit_price_per_gallon"`
	Density            decimal.Decimal `json:"density"`
	GrossWeight        decimal.Decimal `json:"gross_weight"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate"`
	CustomsValue       decimal.Decimal `json:"customs_value"`

	// Computed totals
	TotalGallons decimal.Decimal `json:"total_gallons"`
	InvoiceValue decimal.Decimal `json:"invoice_value"`
	IEPS         decimal.Decimal `json:"ieps"`
	IVA          decimal.Decimal `json:"iva"`
	PVR          decimal.Decimal `json:"pvr"`
	IVAPVR       decimal.Decimal `json:"iva_pvr"`
	TotalTaxes   decimal.Decimal `json:"total_taxes"`
	TotalDue     decimal.Decimal `json:"total_due"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// ValidCargoType returns true for a known cargo type
func ValidCargoType(t string) bool {
	switch t {
	case CargoFull, CargoTankerTruck, CargoBarge:
		return true
	}
	return false
}

// ValidPaymentStatus returns true for a known payment state
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentProcessing, PaymentPaid, PaymentRejected:
		return true
	}
	return false
}
