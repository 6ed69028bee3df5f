package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/bizops-api/internal/models"
)

const (
	argReason = "p_reason"
	argBy     = "p_by"
)

// archiveProcedures names the server-side procedures of one entity kind. The kinds do
// not share a parameter schema, so each keeps its own id argument name.
type archiveProcedures struct {
	archive   string
	unarchive string
	idArg     string
}

var proceduresByKind = map[models.EntityKind]archiveProcedures{
	models.EntityKindSubmission: {archive: "archive_submission", unarchive: "unarchive_submission", idArg: "p_submission_id"},
	models.EntityKindOrder:      {archive: "archive_order", unarchive: "unarchive_order", idArg: "p_order_id"},
	models.EntityKindProof:      {archive: "archive_proof", unarchive: "unarchive_proof", idArg: "p_proof_id"},
}

// ArchiveRepository dispatches archive and unarchive commands to storage procedures.
// It keeps no state: concurrent commands for the same record are settled by the
// procedures' own transactions.
type ArchiveRepository struct {
	caller ProcedureCaller
}

// NewArchiveRepository constructs the repository over an injected procedure transport.
func NewArchiveRepository(caller ProcedureCaller) *ArchiveRepository {
	return &ArchiveRepository{caller: caller}
}

// Archive marks the record archived. Nil reason or actor are sent as SQL null. Errors
// from the transport are returned unchanged.
func (r *ArchiveRepository) Archive(ctx context.Context, kind models.EntityKind, id string, reason, by *string) error {
	procs, err := proceduresFor(kind)
	if err != nil {
		return err
	}
	args := ProcedureArgs{
		{Name: procs.idArg, Value: id},
		{Name: argReason, Value: nullableString(reason)},
		{Name: argBy, Value: nullableString(by)},
	}
	return r.caller.Call(ctx, procs.archive, args, nil)
}

// Unarchive restores the record; storage clears all archive fields.
func (r *ArchiveRepository) Unarchive(ctx context.Context, kind models.EntityKind, id string) error {
	procs, err := proceduresFor(kind)
	if err != nil {
		return err
	}
	return r.caller.Call(ctx, procs.unarchive, ProcedureArgs{{Name: procs.idArg, Value: id}}, nil)
}

func proceduresFor(kind models.EntityKind) (archiveProcedures, error) {
	procs, ok := proceduresByKind[kind]
	if !ok {
		return archiveProcedures{}, fmt.Errorf("%w: %q", models.ErrUnknownEntityKind, string(kind))
	}
	return procs, nil
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
