// Package report builds spreadsheet exports of the invoice ledger.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
)

const sheetName = "Invoices"

var headers = []string{
	"ID", "Status", "Importer", "Tax ID", "Entry Number", "Customs Office",
	"Cargo Type", "Total Gallons", "Invoice Value", "IEPS", "IVA", "PVR",
	"IVA PVR", "Total Taxes", "Total Due", "Payment Status", "Capture Line",
	"Created", "Approved",
}

// Exporter renders invoice listings as xlsx workbooks
type Exporter struct {
	companyName string
	logger      *zap.Logger
}

// NewExporter creates a new exporter
func NewExporter(companyName string, logger *zap.Logger) *Exporter {
	return &Exporter{
		companyName: companyName,
		logger:      logger,
	}
}

// Build creates a workbook with one row per invoice. The caller owns the
// returned file and must Close it.
func (e *Exporter) Build(invoices []*entity.Invoice) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	// Title row
	if e.companyName != "" {
		if err := f.SetCellValue(sheetName, "A1", e.companyName+" - Invoice Export"); err != nil {
			return nil, err
		}
	} else {
		if err := f.SetCellValue(sheetName, "A1", "Invoice Export"); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellValue(sheetName, "A2", "Generated "+time.Now().Format("2006-01-02 15:04")); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	const headerRow = 4
	for i, title := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, invoice := range invoices {
		row := headerRow + 1 + rowIdx

		approved := ""
		if invoice.ApprovedAt != nil {
			approved = invoice.ApprovedAt.Format("2006-01-02")
		}

		values := []interface{}{
			invoice.ID,
			invoice.Status,
			invoice.Importer,
			invoice.TaxID,
			invoice.EntryNumber,
			invoice.CustomsOffice,
			invoice.CargoType,
			invoice.TotalGallons.StringFixed(3),
			invoice.InvoiceValue.StringFixed(2),
			invoice.IEPS.StringFixed(2),
			invoice.IVA.StringFixed(2),
			invoice.PVR.StringFixed(2),
			invoice.IVAPVR.StringFixed(2),
			invoice.TotalTaxes.StringFixed(2),
			invoice.TotalDue.StringFixed(2),
			invoice.PaymentStatus,
			invoice.CaptureLine,
			invoice.CreatedAt.Format("2006-01-02"),
			approved,
		}

		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "S", 16); err != nil {
		return nil, err
	}

	e.logger.Info("Invoice export built", zap.Int("invoices", len(invoices)))
	return f, nil
}
