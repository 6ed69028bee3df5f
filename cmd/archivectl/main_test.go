package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/service"
)

type fakeArchiver struct {
	action string
	cmd    service.ArchiveCommand
	err    error
}

func (f *fakeArchiver) Archive(_ context.Context, _ service.Actor, cmd service.ArchiveCommand) (*service.ArchiveResult, error) {
	f.action, f.cmd = "archive", cmd
	if f.err != nil {
		return nil, f.err
	}
	return &service.ArchiveResult{Kind: models.EntityKind(cmd.Kind), ID: cmd.ID, Archived: true}, nil
}

func (f *fakeArchiver) Unarchive(_ context.Context, _ service.Actor, cmd service.ArchiveCommand) (*service.ArchiveResult, error) {
	f.action, f.cmd = "unarchive", cmd
	if f.err != nil {
		return nil, f.err
	}
	return &service.ArchiveResult{Kind: models.EntityKind(cmd.Kind), ID: cmd.ID}, nil
}

func execute(t *testing.T, fake *fakeArchiver, args ...string) (string, string, error) {
	t.Helper()
	var transport string
	a := &app{open: func(_ context.Context, tr string) (archiver, func(), error) {
		transport = tr
		return fake, func() {}, nil
	}}
	root := newRootCmd(a)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), transport, err
}

func TestArchiveCommandFlags(t *testing.T) {
	fake := &fakeArchiver{}
	out, transport, err := execute(t, fake, "archive", "proof", "p-1", "--reason", "superseded", "--transport", "supabase")
	require.NoError(t, err)
	assert.Equal(t, "supabase", transport)
	assert.Equal(t, "archive", fake.action)
	require.NotNil(t, fake.cmd.Reason)
	assert.Equal(t, "superseded", *fake.cmd.Reason)
	assert.Nil(t, fake.cmd.By)
	assert.Equal(t, "Archived proof p-1\n", out)
}

func TestArchiveCommandOmittedFlagsStayNil(t *testing.T) {
	fake := &fakeArchiver{}
	_, _, err := execute(t, fake, "archive", "order", "o-1")
	require.NoError(t, err)
	assert.Nil(t, fake.cmd.Reason)
	assert.Nil(t, fake.cmd.By)
}

func TestUnarchiveCommandReturnsError(t *testing.T) {
	fake := &fakeArchiver{err: errors.New("order not found")}
	_, _, err := execute(t, fake, "unarchive", "order", "o-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order not found")
	assert.Equal(t, "unarchive", fake.action)
}

func TestResolveCommand(t *testing.T) {
	out, _, err := execute(t, &fakeArchiver{}, "resolve", "orders", "archived")
	require.NoError(t, err)
	assert.Equal(t, "v_archived_orders\n", out)

	out, _, err = execute(t, &fakeArchiver{}, "resolve", "proofs")
	require.NoError(t, err)
	assert.Equal(t, "v_active_proofs\n", out)

	_, _, err = execute(t, &fakeArchiver{}, "resolve", "clients", "all")
	assert.ErrorIs(t, err, models.ErrUnknownBaseTable)
}
