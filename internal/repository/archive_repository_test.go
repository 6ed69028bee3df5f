package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bizops-api/internal/models"
)

type recordedCall struct {
	name string
	args map[string]interface{}
}

type recordingCaller struct {
	calls []recordedCall
	err   error
}

func (c *recordingCaller) Call(ctx context.Context, name string, args ProcedureArgs, dest interface{}) error {
	c.calls = append(c.calls, recordedCall{name: name, args: args.Map()})
	return c.err
}

func strPtr(v string) *string { return &v }

func TestArchiveRepositoryArchiveProcedures(t *testing.T) {
	cases := []struct {
		kind      models.EntityKind
		procedure string
		idArg     string
	}{
		{models.EntityKindSubmission, "archive_submission", "p_submission_id"},
		{models.EntityKindOrder, "archive_order", "p_order_id"},
		{models.EntityKindProof, "archive_proof", "p_proof_id"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			caller := &recordingCaller{}
			repo := NewArchiveRepository(caller)

			require.NoError(t, repo.Archive(context.Background(), tc.kind, "id-1", strPtr("duplicate"), strPtr("u1")))
			require.Len(t, caller.calls, 1)
			assert.Equal(t, tc.procedure, caller.calls[0].name)
			assert.Equal(t, map[string]interface{}{
				tc.idArg:   "id-1",
				"p_reason": "duplicate",
				"p_by":     "u1",
			}, caller.calls[0].args)
		})
	}
}

func TestArchiveRepositoryOmittedReasonAndActorAreNull(t *testing.T) {
	caller := &recordingCaller{}
	repo := NewArchiveRepository(caller)

	require.NoError(t, repo.Archive(context.Background(), models.EntityKindProof, "p-42", nil, strPtr("u9")))
	require.Len(t, caller.calls, 1)
	assert.Equal(t, "archive_proof", caller.calls[0].name)
	assert.Equal(t, map[string]interface{}{"p_proof_id": "p-42", "p_reason": nil, "p_by": "u9"}, caller.calls[0].args)

	require.NoError(t, repo.Archive(context.Background(), models.EntityKindOrder, "o-1", nil, nil))
	args := caller.calls[1].args
	require.Contains(t, args, "p_reason")
	require.Contains(t, args, "p_by")
	assert.Nil(t, args["p_reason"])
	assert.Nil(t, args["p_by"])
}

func TestArchiveRepositoryUnarchiveSendsOnlyID(t *testing.T) {
	cases := map[models.EntityKind][2]string{
		models.EntityKindSubmission: {"unarchive_submission", "p_submission_id"},
		models.EntityKindOrder:      {"unarchive_order", "p_order_id"},
		models.EntityKindProof:      {"unarchive_proof", "p_proof_id"},
	}
	for kind, expected := range cases {
		caller := &recordingCaller{}
		repo := NewArchiveRepository(caller)

		require.NoError(t, repo.Unarchive(context.Background(), kind, "id-7"))
		require.Len(t, caller.calls, 1)
		assert.Equal(t, expected[0], caller.calls[0].name)
		assert.Equal(t, map[string]interface{}{expected[1]: "id-7"}, caller.calls[0].args)
	}
}

func TestArchiveRepositoryPropagatesRemoteErrorUnchanged(t *testing.T) {
	remoteErr := errors.New("permission denied for function archive_order")
	caller := &recordingCaller{err: remoteErr}
	repo := NewArchiveRepository(caller)

	err := repo.Archive(context.Background(), models.EntityKindOrder, "o-1", nil, nil)
	assert.Same(t, remoteErr, err)

	err = repo.Unarchive(context.Background(), models.EntityKindOrder, "o-1")
	assert.Same(t, remoteErr, err)
}

func TestArchiveRepositoryUnknownKindFailsFast(t *testing.T) {
	caller := &recordingCaller{}
	repo := NewArchiveRepository(caller)

	err := repo.Archive(context.Background(), models.EntityKind("client"), "c-1", nil, nil)
	assert.ErrorIs(t, err, models.ErrUnknownEntityKind)
	err = repo.Unarchive(context.Background(), models.EntityKind(""), "c-1")
	assert.ErrorIs(t, err, models.ErrUnknownEntityKind)
	assert.Empty(t, caller.calls)
}
