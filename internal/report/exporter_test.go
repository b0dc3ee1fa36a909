package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
)

func sampleInvoice(id int64) *entity.Invoice {
	approved := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID:            id,
		Status:        "approved",
		Importer:      "Importadora del Golfo",
		TaxID:         "IGO920101AB1",
		EntryNumber:   "24 47 3821 4000123",
		CustomsOffice: "470",
		CargoType:     entity.CargoFull,
		TotalGallons:  decimal.RequireFromString("264.172"),
		InvoiceValue:  decimal.RequireFromString("660.43"),
		IEPS:          decimal.RequireFromString("1212.55"),
		IVA:           decimal.RequireFromString("299.68"),
		PVR:           decimal.RequireFromString("52.83"),
		IVAPVR:        decimal.RequireFromString("8.45"),
		TotalTaxes:    decimal.RequireFromString("1573.51"),
		TotalDue:      decimal.RequireFromString("2233.94"),
		PaymentStatus: entity.PaymentPaid,
		CreatedAt:     time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		ApprovedAt:    &approved,
	}
}

func TestExporter_Build(t *testing.T) {
	exporter := NewExporter("Aduana Fuel SA", zap.NewNop())

	f, err := exporter.Build([]*entity.Invoice{sampleInvoice(1), sampleInvoice(2)})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Aduana Fuel SA - Invoice Export", title)

	header, err := f.GetCellValue(sheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	importer, err := f.GetCellValue(sheetName, "C5")
	require.NoError(t, err)
	assert.Equal(t, "Importadora del Golfo", importer)

	totalDue, err := f.GetCellValue(sheetName, "O6")
	require.NoError(t, err)
	assert.Equal(t, "2233.94", totalDue)

	approvedAt, err := f.GetCellValue(sheetName, "S5")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-15", approvedAt)
}

func TestExporter_BuildEmpty(t *testing.T) {
	exporter := NewExporter("", zap.NewNop())

	f, err := exporter.Build(nil)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice Export", title)
}
