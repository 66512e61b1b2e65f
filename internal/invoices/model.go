package invoices

import "time"

// Invoice status values.
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// Invoice represents a billing record tied to a property.
type Invoice struct {
	ID              string    `json:"id"`
	Reference       string    `json:"reference"`
	PropertyID      string    `json:"property_id"`
	IssuedTo        string    `json:"issued_to"`
	AmountPence     int64     `json:"amount_pence"`
	AmountFormatted string    `json:"amount_formatted"`
	Status          string    `json:"status"`
	DueDate         time.Time `json:"due_date"`
	CreatedAt       time.Time `json:"created_at"`
}
