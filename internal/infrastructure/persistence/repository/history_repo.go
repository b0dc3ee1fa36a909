package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aduanafuel/invoice-workflow/internal/application/port"
	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
	"github.com/aduanafuel/invoice-workflow/internal/infrastructure/persistence/sqlite"
)

// HistoryRepository implements port.HistoryRepository. The table is
// append-only; there is no update or delete path.
type HistoryRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlite.DB, logger *zap.Logger) port.HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends one audit trail entry
func (r *HistoryRepository) Create(ctx context.Context, entry *entity.HistoryEntry) error {
	query := `
		INSERT INTO invoice_history (invoice_id, actor_id, action, comment, previous_status, new_status, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		entry.InvoiceID,
		entry.ActorID,
		entry.Action,
		entry.Comment,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create history entry", zap.Int64("invoice_id", entry.InvoiceID), zap.Error(err))
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry.ID = id
	return nil
}

// ListByInvoice retrieves an invoice's audit trail, newest first
func (r *HistoryRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, invoice_id, actor_id, action, comment, previous_status, new_status, timestamp
		FROM invoice_history
		WHERE invoice_id = ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, invoiceID)
	if err != nil {
		r.logger.Error("Failed to list history", zap.Int64("invoice_id", invoiceID), zap.Error(err))
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []*entity.HistoryEntry
	for rows.Next() {
		var entry entity.HistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.InvoiceID,
			&entry.ActorID,
			&entry.Action,
			&entry.Comment,
			&entry.PreviousStatus,
			&entry.NewStatus,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// Verify interface compliance
var _ port.HistoryRepository = (*HistoryRepository)(nil)
