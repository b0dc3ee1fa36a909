package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
)

// InvoiceFilter narrows invoice listings. Zero values mean "no constraint".
type InvoiceFilter struct {
	OwnerID       int64
	SupervisorID  int64
	Status        string
	PaymentStatus string
	Search        string // matches importer, tax id and entry number
	Limit         int
	Offset        int
}

// InvoiceRepository defines persistence operations for Invoice
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	ApprovedTotalSince(ctx context.Context, since time.Time) (int, decimal.Decimal, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	ListActiveByRole(ctx context.Context, role string) ([]*entity.User, error)
	// DebitCredit atomically consumes one submission credit. The bool is
	// false when the balance was already zero and nothing changed.
	DebitCredit(ctx context.Context, id int64) (bool, error)
	AddCredits(ctx context.Context, id int64, delta int) error
	SetCredits(ctx context.Context, id int64, credits int) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}

// TaxConfigRepository defines persistence operations for TaxConfiguration.
// Configurations are versioned by insertion: Current returns the most
// recently created row, or nil when none exists.
type TaxConfigRepository interface {
	Current(ctx context.Context) (*entity.TaxConfiguration, error)
	Insert(ctx context.Context, cfg *entity.TaxConfiguration) error
	History(ctx context.Context, limit int) ([]*entity.TaxConfiguration, error)
}

// HistoryRepository defines persistence operations for the append-only
// invoice audit trail
type HistoryRepository interface {
	Create(ctx context.Context, entry *entity.HistoryEntry) error
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.HistoryEntry, error)
}

// NotificationRepository defines persistence operations for Notification
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
