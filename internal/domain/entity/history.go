package entity

import "time"

// HistoryEntry represents one line of the append-only audit trail of an
// invoice. Exactly one entry is written per successful state transition.
type HistoryEntry struct {
	ID             int64     `json:"id"`
	InvoiceID      int64     `json:"invoice_id"`
	ActorID        int64     `json:"actor_id"`
	Action         string    `json:"action"`
	Comment        string    `json:"comment,omitempty"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Timestamp      time.Time `json:"timestamp"`
}
