package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EntityKind identifies an archivable aggregate.
type EntityKind string

const (
	EntityKindSubmission EntityKind = "submission"
	EntityKindOrder      EntityKind = "order"
	EntityKindProof      EntityKind = "proof"
)

// FilterMode selects which slice of a table a listing reads.
type FilterMode string

const (
	FilterActives  FilterMode = "actives"
	FilterArchived FilterMode = "archived"
	FilterAll      FilterMode = "all"
)

// BaseTable names a table whose rows carry archive fields.
type BaseTable string

const (
	TableSubmissions BaseTable = "submissions"
	TableOrders      BaseTable = "orders"
	TableProofs      BaseTable = "proofs"
)

var (
	ErrUnknownEntityKind = errors.New("unknown entity kind")
	ErrUnknownFilterMode = errors.New("unknown filter mode")
	ErrUnknownBaseTable  = errors.New("unknown base table")
)

// EntityKinds lists every archivable kind.
func EntityKinds() []EntityKind {
	return []EntityKind{EntityKindSubmission, EntityKindOrder, EntityKindProof}
}

// ParseEntityKind validates a kind received from an untyped boundary.
func ParseEntityKind(raw string) (EntityKind, error) {
	kind := EntityKind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case EntityKindSubmission, EntityKindOrder, EntityKindProof:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityKind, raw)
	}
}

// Table returns the base table holding rows of the kind.
func (k EntityKind) Table() (BaseTable, error) {
	switch k {
	case EntityKindSubmission:
		return TableSubmissions, nil
	case EntityKindOrder:
		return TableOrders, nil
	case EntityKindProof:
		return TableProofs, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityKind, string(k))
	}
}

// ParseFilterMode validates a filter mode. An empty value selects active rows.
func ParseFilterMode(raw string) (FilterMode, error) {
	mode := FilterMode(strings.ToLower(strings.TrimSpace(raw)))
	switch mode {
	case "":
		return FilterActives, nil
	case FilterActives, FilterArchived, FilterAll:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilterMode, raw)
	}
}

// ParseBaseTable validates a table name against the archivable set.
func ParseBaseTable(raw string) (BaseTable, error) {
	table := BaseTable(strings.ToLower(strings.TrimSpace(raw)))
	switch table {
	case TableSubmissions, TableOrders, TableProofs:
		return table, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBaseTable, raw)
	}
}

// ArchiveFields are the storage-owned columns describing archive state. ArchivedAt is the
// only source of truth; ArchivedBy and ArchiveReason mean something only when it is set.
type ArchiveFields struct {
	ArchivedAt    *time.Time `db:"archived_at" json:"archived_at"`
	ArchivedBy    *string    `db:"archived_by" json:"archived_by"`
	ArchiveReason *string    `db:"archive_reason" json:"archive_reason"`
}

// Archivable is implemented by every record carrying archive fields.
type Archivable interface {
	ArchiveState() *ArchiveFields
}

// ArchiveState lets a bare field set be checked directly.
func (f *ArchiveFields) ArchiveState() *ArchiveFields {
	return f
}

// ArchiveInfo is the badge payload rendered next to archived rows.
type ArchiveInfo struct {
	ArchivedAt    *time.Time `json:"archivedAt"`
	ArchivedBy    *string    `json:"archivedBy"`
	ArchiveReason *string    `json:"archiveReason"`
}

// IsArchived reports whether archived_at is set. Nil entities are active.
func IsArchived(entity Archivable) bool {
	state := archiveState(entity)
	return state != nil && state.ArchivedAt != nil
}

// GetArchiveInfo returns the archive metadata of an archived entity, nil otherwise.
func GetArchiveInfo(entity Archivable) *ArchiveInfo {
	if !IsArchived(entity) {
		return nil
	}
	state := archiveState(entity)
	return &ArchiveInfo{
		ArchivedAt:    state.ArchivedAt,
		ArchivedBy:    state.ArchivedBy,
		ArchiveReason: state.ArchiveReason,
	}
}

func archiveState(entity Archivable) *ArchiveFields {
	if entity == nil {
		return nil
	}
	return entity.ArchiveState()
}
