package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a confirmed client order, optionally originating from a submission.
type Order struct {
	ID           string          `db:"id" json:"id"`
	ClientID     string          `db:"client_id" json:"client_id"`
	SubmissionID *string         `db:"submission_id" json:"submission_id,omitempty"`
	OrderNumber  string          `db:"order_number" json:"order_number"`
	Status       string          `db:"status" json:"status"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
	DueDate      *time.Time      `db:"due_date" json:"due_date,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ArchiveFields
}

// ArchiveState implements Archivable.
func (o *Order) ArchiveState() *ArchiveFields {
	if o == nil {
		return nil
	}
	return &o.ArchiveFields
}

// OrderHistoryEntry is one status change recorded for an order.
type OrderHistoryEntry struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	Status    string    `db:"status" json:"status"`
	ChangedAt time.Time `db:"changed_at" json:"changed_at"`
	ChangedBy *string   `db:"changed_by" json:"changed_by,omitempty"`
	Note      *string   `db:"note" json:"note,omitempty"`
}
