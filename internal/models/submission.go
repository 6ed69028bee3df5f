package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmissionStatus tracks the review state of a sales submission.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Submission is a sales submission filed for a client.
type Submission struct {
	ID          string           `db:"id" json:"id"`
	ClientID    string           `db:"client_id" json:"client_id"`
	Title       string           `db:"title" json:"title"`
	Status      SubmissionStatus `db:"status" json:"status"`
	Amount      decimal.Decimal  `db:"amount" json:"amount"`
	SubmittedAt *time.Time       `db:"submitted_at" json:"submitted_at,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	ArchiveFields
}

// ArchiveState implements Archivable.
func (s *Submission) ArchiveState() *ArchiveFields {
	if s == nil {
		return nil
	}
	return &s.ArchiveFields
}
