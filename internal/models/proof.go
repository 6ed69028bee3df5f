package models

import "time"

// Proof is one version of the artwork proof sent to a client for an order.
type Proof struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	Version   int       `db:"version" json:"version"`
	FileURL   string    `db:"file_url" json:"file_url"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ArchiveFields
}

// ArchiveState implements Archivable.
func (p *Proof) ArchiveState() *ArchiveFields {
	if p == nil {
		return nil
	}
	return &p.ArchiveFields
}

// ProofDetail is a proof joined with its order, as returned by the proof procedures.
type ProofDetail struct {
	Proof
	OrderNumber string  `db:"order_number" json:"order_number"`
	ClientName  *string `db:"client_name" json:"client_name,omitempty"`
}

// ArchiveState implements Archivable.
func (d *ProofDetail) ArchiveState() *ArchiveFields {
	if d == nil {
		return nil
	}
	return &d.ArchiveFields
}
