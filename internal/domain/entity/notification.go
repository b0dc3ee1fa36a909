package entity

import "time"

// Notification severities
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notification is a stored message informing a user of a workflow event.
// Delivery is store-for-later-retrieval; only the read flag is mutable, and
// only by the recipient.
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	InvoiceID   *int64    `json:"invoice_id,omitempty"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Severity    string    `json:"severity"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
