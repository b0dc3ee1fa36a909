package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aduanafuel/invoice-workflow/internal/application/port"
	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
	"github.com/aduanafuel/invoice-workflow/internal/infrastructure/persistence/sqlite"
)

// invoiceColumns is shared by every SELECT so the scan order stays in one place.
const invoiceColumns = `id, owner_id, supervisor_id, admin_id, status, suspension_message,
	importer, tax_id, entry_number, customs_office, customs_license, issued_at,
	capture_line, payment_status, cargo_type,
	liters_trailer1, liters_trailer2, liters_tanker_truck, liters_barge,
	gallons_trailer1, gallons_trailer2, gallons_tanker_truck, gallons_barge,
	unit_price_per_gallon, density, gross_weight, exchange_rate, customs_value,
	total_gallons, invoice_value, ieps, iva, pvr, iva_pvr, total_taxes, total_due,
	created_at, updated_at, approved_at`

// InvoiceRepository implements port.InvoiceRepository
type InvoiceRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sqlite.DB, logger *zap.Logger) port.InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new invoice record
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (
			owner_id, supervisor_id, admin_id, status, suspension_message,
			importer, tax_id, entry_number, customs_office, customs_license, issued_at,
			capture_line, payment_status, cargo_type,
			liters_trailer1, liters_trailer2, liters_tanker_truck, liters_barge,
			gallons_trailer1, gallons_trailer2, gallons_tanker_truck, gallons_barge,
			unit_price_per_gallon, density, gross_weight, exchange_rate, customs_value,
			total_gallons, invoice_value, ieps, iva, pvr, iva_pvr, total_taxes, total_due,
			created_at, updated_at, approved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		invoice.OwnerID,
		invoice.SupervisorID,
		invoice.AdminID,
		invoice.Status,
		invoice.SuspensionMessage,
		invoice.Importer,
		invoice.TaxID,
		invoice.EntryNumber,
		invoice.CustomsOffice,
		invoice.CustomsLicense,
		invoice.IssuedAt,
		invoice.CaptureLine,
		invoice.PaymentStatus,
		invoice.CargoType,
		invoice.LitersTrailerOne,
		invoice.LitersTrailerTwo,
		invoice.LitersTankerTruck,
		invoice.LitersBarge,
		invoice.GallonsTrailerOne,
		invoice.GallonsTrailerTwo,
		invoice.GallonsTankerTruck,
		invoice.GallonsBarge,
		invoice.UnitPricePerGallon,
		invoice.Density,
		invoice.GrossWeight,
		invoice.ExchangeRate,
		invoice.CustomsValue,
		invoice.TotalGallons,
		invoice.InvoiceValue,
		invoice.IEPS,
		invoice.IVA,
		invoice.PVR,
		invoice.IVAPVR,
		invoice.TotalTaxes,
		invoice.TotalDue,
		invoice.CreatedAt,
		invoice.UpdatedAt,
		invoice.ApprovedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create invoice", zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	invoice.ID = id
	return nil
}

// GetByID retrieves an invoice by ID; returns (nil, nil) when absent
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`

	row := r.db.Executor(ctx).QueryRowContext(ctx, query, id)
	invoice, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get invoice by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// Update persists the mutable fields of an invoice
func (r *InvoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET
			supervisor_id = ?, admin_id = ?, status = ?, suspension_message = ?,
			importer = ?, tax_id = ?, entry_number = ?, customs_office = ?, customs_license = ?,
			capture_line = ?, payment_status = ?, cargo_type = ?,
			liters_trailer1 = ?, liters_trailer2 = ?, liters_tanker_truck = ?, liters_barge = ?,
			gallons_trailer1 = ?, gallons_trailer2 = ?, gallons_tanker_truck = ?, gallons_barge = ?,
			unit_price_per_gallon = ?, density = ?, gross_weight = ?, exchange_rate = ?, customs_value = ?,
			total_gallons = ?, invoice_value = ?, ieps = ?, iva = ?, pvr = ?, iva_pvr = ?,
			total_taxes = ?, total_due = ?, updated_at = ?, approved_at = ?
		WHERE id = ?
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		invoice.SupervisorID,
		invoice.AdminID,
		invoice.Status,
		invoice.SuspensionMessage,
		invoice.Importer,
		invoice.TaxID,
		invoice.EntryNumber,
		invoice.CustomsOffice,
		invoice.CustomsLicense,
		invoice.CaptureLine,
		invoice.PaymentStatus,
		invoice.CargoType,
		invoice.LitersTrailerOne,
		invoice.LitersTrailerTwo,
		invoice.LitersTankerTruck,
		invoice.LitersBarge,
		invoice.GallonsTrailerOne,
		invoice.GallonsTrailerTwo,
		invoice.GallonsTankerTruck,
		invoice.GallonsBarge,
		invoice.UnitPricePerGallon,
		invoice.Density,
		invoice.GrossWeight,
		invoice.ExchangeRate,
		invoice.CustomsValue,
		invoice.TotalGallons,
		invoice.InvoiceValue,
		invoice.IEPS,
		invoice.IVA,
		invoice.PVR,
		invoice.IVAPVR,
		invoice.TotalTaxes,
		invoice.TotalDue,
		invoice.UpdatedAt,
		invoice.ApprovedAt,
		invoice.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update invoice", zap.Int64("id", invoice.ID), zap.Error(err))
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("invoice %d not found", invoice.ID)
	}
	return nil
}

// List retrieves invoices matching the filter, newest first
func (r *InvoiceRepository) List(ctx context.Context, filter port.InvoiceFilter) ([]*entity.Invoice, error) {
	var conditions []string
	var args []interface{}

	if filter.OwnerID != 0 {
		conditions = append(conditions, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.SupervisorID != 0 {
		conditions = append(conditions, "supervisor_id = ?")
		args = append(args, filter.SupervisorID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.PaymentStatus != "" {
		conditions = append(conditions, "payment_status = ?")
		args = append(args, filter.PaymentStatus)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(importer LIKE ? OR tax_id LIKE ? OR entry_number LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// CountByStatus returns the number of invoices per workflow state
func (r *InvoiceRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM invoices GROUP BY status`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// ApprovedTotalSince returns the count and summed total_due of invoices
// approved at or after the given time. The sum runs in Go so the decimal
// amounts never pass through SQLite float arithmetic.
func (r *InvoiceRepository) ApprovedTotalSince(ctx context.Context, since time.Time) (int, decimal.Decimal, error) {
	query := `SELECT total_due FROM invoices WHERE status = 'approved' AND approved_at >= ?`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, since)
	if err != nil {
		r.logger.Error("Failed to sum approved invoices", zap.Error(err))
		return 0, decimal.Zero, fmt.Errorf("failed to sum approved invoices: %w", err)
	}
	defer rows.Close()

	count := 0
	total := decimal.Zero
	for rows.Next() {
		var due decimal.Decimal
		if err := rows.Scan(&due); err != nil {
			return 0, decimal.Zero, fmt.Errorf("failed to scan total: %w", err)
		}
		count++
		total = total.Add(due)
	}
	return count, total, rows.Err()
}

// Delete removes an invoice; history rows go with it via ON DELETE CASCADE
func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Executor(ctx).ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete invoice", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("invoice %d not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var invoice entity.Invoice
	var supervisorID, adminID sql.NullInt64
	var approvedAt sql.NullTime

	err := row.Scan(
		&invoice.ID,
		&invoice.OwnerID,
		&supervisorID,
		&adminID,
		&invoice.Status,
		&invoice.SuspensionMessage,
		&invoice.Importer,
		&invoice.TaxID,
		&invoice.EntryNumber,
		&invoice.CustomsOffice,
		&invoice.CustomsLicense,
		&invoice.IssuedAt,
		&invoice.CaptureLine,
		&invoice.PaymentStatus,
		&invoice.CargoType,
		&invoice.LitersTrailerOne,
		&invoice.LitersTrailerTwo,
		&invoice.LitersTankerTruck,
		&invoice.LitersBarge,
		&invoice.GallonsTrailerOne,
		&invoice.GallonsTrailerTwo,
		&invoice.GallonsTankerTruck,
		&invoice.GallonsBarge,
		&invoice.UnitPricePerGallon,
		&invoice.Density,
		&invoice.GrossWeight,
		&invoice.ExchangeRate,
		&invoice.CustomsValue,
		&invoice.TotalGallons,
		&invoice.InvoiceValue,
		&invoice.IEPS,
		&invoice.IVA,
		&invoice.PVR,
		&invoice.IVAPVR,
		&invoice.TotalTaxes,
		&invoice.TotalDue,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
		&approvedAt,
	)
	if err != nil {
		return nil, err
	}

	if supervisorID.Valid {
		invoice.SupervisorID = &supervisorID.Int64
	}
	if adminID.Valid {
		invoice.AdminID = &adminID.Int64
	}
	if approvedAt.Valid {
		invoice.ApprovedAt = &approvedAt.Time
	}
	return &invoice, nil
}

// Verify interface compliance
var _ port.InvoiceRepository = (*InvoiceRepository)(nil)
