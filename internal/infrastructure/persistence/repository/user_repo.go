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

const userColumns = `id, name, email, role, credits, active, created_at, last_seen_at`

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlite.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user by ID; returns (nil, nil) when absent
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListActiveByRole retrieves the active users holding a role
func (r *UserRepository) ListActiveByRole(ctx context.Context, role string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ? AND active = 1 ORDER BY id`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, role)
	if err != nil {
		r.logger.Error("Failed to list users by role", zap.String("role", role), zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DebitCredit atomically consumes one submission credit. The guard in the
// WHERE clause makes the check-and-decrement a single statement, so two
// concurrent submits can never spend the same credit.
func (r *UserRepository) DebitCredit(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE users SET credits = credits - 1 WHERE id = ? AND credits > 0`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to debit credit", zap.Int64("id", id), zap.Error(err))
		return false, fmt.Errorf("failed to debit credit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// AddCredits adds delta credits to the balance
func (r *UserRepository) AddCredits(ctx context.Context, id int64, delta int) error {
	query := `UPDATE users SET credits = credits + ? WHERE id = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, delta, id)
	if err != nil {
		r.logger.Error("Failed to add credits", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to add credits: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

// SetCredits replaces the credit balance
func (r *UserRepository) SetCredits(ctx context.Context, id int64, credits int) error {
	query := `UPDATE users SET credits = ? WHERE id = ?`

	if _, err := r.db.Executor(ctx).ExecContext(ctx, query, credits, id); err != nil {
		r.logger.Error("Failed to set credits", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set credits: %w", err)
	}
	return nil
}

// SetActive flips the active flag
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE users SET active = ? WHERE id = ?`

	if _, err := r.db.Executor(ctx).ExecContext(ctx, query, active, id); err != nil {
		r.logger.Error("Failed to set active flag", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set active flag: %w", err)
	}
	return nil
}

// List retrieves users ordered by ID
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.Credits,
		&user.Active,
		&user.CreatedAt,
		&user.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
