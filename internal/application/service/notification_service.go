package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aduanafuel/invoice-workflow/internal/application/port"
	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// NotificationService stores workflow notifications for later retrieval.
// Display and read-state toggling belong to the web layer; this service only
// writes rows and lists them for a recipient.
type NotificationService interface {
	Notify(ctx context.Context, recipientID int64, invoiceID *int64, title, message, severity string) error
	NotifyRole(ctx context.Context, role string, invoiceID *int64, title, message, severity string) error
	List(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, recipientID, notificationID int64) error
}

type notificationServiceImpl struct {
	notificationRepo port.NotificationRepository
	userRepo         port.UserRepository
	logger           Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo port.NotificationRepository,
	userRepo port.UserRepository,
	logger Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Notify creates one notification row for the recipient
func (s *notificationServiceImpl) Notify(ctx context.Context, recipientID int64, invoiceID *int64, title, message, severity string) error {
	n := &entity.Notification{
		RecipientID: recipientID,
		InvoiceID:   invoiceID,
		Title:       title,
		Message:     message,
		Severity:    severity,
		CreatedAt:   time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to create notification", "error", err, "recipient_id", recipientID)
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// NotifyRole creates one notification per active user holding the role
func (s *notificationServiceImpl) NotifyRole(ctx context.Context, role string, invoiceID *int64, title, message, severity string) error {
	users, err := s.userRepo.ListActiveByRole(ctx, role)
	if err != nil {
		s.logger.Error("Failed to list recipients for role", "error", err, "role", role)
		return fmt.Errorf("list recipients: %w", err)
	}

	for _, u := range users {
		if err := s.Notify(ctx, u.ID, invoiceID, title, message, severity); err != nil {
			return err
		}
	}
	return nil
}

// List retrieves the recipient's notifications, newest first
func (s *notificationServiceImpl) List(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, recipientID, unreadOnly, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list notifications", "error", err, "recipient_id", recipientID)
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag; only the recipient may do so
func (s *notificationServiceImpl) MarkRead(ctx context.Context, recipientID, notificationID int64) error {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return fmt.Errorf("%w: notification %d", ErrNotFound, notificationID)
	}
	if n.RecipientID != recipientID {
		return fmt.Errorf("%w: notification %d belongs to another user", ErrPermissionDenied, notificationID)
	}

	if err := s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		s.logger.Error("Failed to mark notification read", "error", err, "id", notificationID)
		return err
	}
	return nil
}
