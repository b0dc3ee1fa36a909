package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/aduanafuel/invoice-workflow/internal/application/port"
	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
	"github.com/aduanafuel/invoice-workflow/internal/infrastructure/persistence/sqlite"
)

const taxConfigColumns = `id, ieps, iva, pvr, iva_pvr, conversion_factor, updated_by, created_at`

// TaxConfigRepository implements port.TaxConfigRepository
type TaxConfigRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewTaxConfigRepository creates a new tax configuration repository
func NewTaxConfigRepository(db *sqlite.DB, logger *zap.Logger) port.TaxConfigRepository {
	return &TaxConfigRepository{
		db:     db,
		logger: logger,
	}
}

// Current retrieves the most recently created configuration; (nil, nil) when
// no configuration exists yet
func (r *TaxConfigRepository) Current(ctx context.Context) (*entity.TaxConfiguration, error) {
	query := `SELECT ` + taxConfigColumns + ` FROM tax_configurations ORDER BY id DESC LIMIT 1`

	cfg, err := scanTaxConfig(r.db.Executor(ctx).QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get current tax configuration", zap.Error(err))
		return nil, fmt.Errorf("failed to get tax configuration: %w", err)
	}
	return cfg, nil
}

// Insert creates a new configuration version
func (r *TaxConfigRepository) Insert(ctx context.Context, cfg *entity.TaxConfiguration) error {
	query := `
		INSERT INTO tax_configurations (ieps, iva, pvr, iva_pvr, conversion_factor, updated_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		cfg.IEPS,
		cfg.IVA,
		cfg.PVR,
		cfg.IVAPVR,
		cfg.ConversionFactor,
		cfg.UpdatedBy,
		cfg.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert tax configuration", zap.Error(err))
		return fmt.Errorf("failed to insert tax configuration: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	cfg.ID = id
	return nil
}

// History retrieves configuration versions, newest first
func (r *TaxConfigRepository) History(ctx context.Context, limit int) ([]*entity.TaxConfiguration, error) {
	query := `SELECT ` + taxConfigColumns + ` FROM tax_configurations ORDER BY id DESC`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list tax configurations", zap.Error(err))
		return nil, fmt.Errorf("failed to list tax configurations: %w", err)
	}
	defer rows.Close()

	var configs []*entity.TaxConfiguration
	for rows.Next() {
		cfg, err := scanTaxConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax configuration: %w", err)
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

func scanTaxConfig(row rowScanner) (*entity.TaxConfiguration, error) {
	var cfg entity.TaxConfiguration
	var updatedBy sql.NullInt64

	err := row.Scan(
		&cfg.ID,
		&cfg.IEPS,
		&cfg.IVA,
		&cfg.PVR,
		&cfg.IVAPVR,
		&cfg.ConversionFactor,
		&updatedBy,
		&cfg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedBy.Valid {
		cfg.UpdatedBy = &updatedBy.Int64
	}
	return &cfg, nil
}

// Verify interface compliance
var _ port.TaxConfigRepository = (*TaxConfigRepository)(nil)
