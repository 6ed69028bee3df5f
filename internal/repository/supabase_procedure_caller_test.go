package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nedpals/supabase-go"
	postgrest "github.com/nedpals/supabase-go/postgrest/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bizops-api/internal/models"
)

type rpcRecorder struct {
	name   string
	params map[string]interface{}
	dest   interface{}
	err    error
}

func (r *rpcRecorder) call(_ context.Context, name string, params map[string]interface{}, dest interface{}) error {
	r.name = name
	r.params = params
	r.dest = dest
	return r.err
}

func TestSupabaseProcedureCallerSendsJSONArgs(t *testing.T) {
	rec := &rpcRecorder{}
	repo := NewArchiveRepository(&SupabaseProcedureCaller{rpc: rec.call})

	require.NoError(t, repo.Archive(context.Background(), models.EntityKindSubmission, "s-1", strPtr("spam"), nil))
	assert.Equal(t, "archive_submission", rec.name)
	assert.Equal(t, map[string]interface{}{"p_submission_id": "s-1", "p_reason": "spam", "p_by": nil}, rec.params)
	assert.IsType(t, &json.RawMessage{}, rec.dest)
}

func TestSupabaseProcedureCallerReturnsRemoteError(t *testing.T) {
	remoteErr := errors.New("new row violates row-level security policy")
	caller := &SupabaseProcedureCaller{rpc: (&rpcRecorder{err: remoteErr}).call}

	err := caller.Call(context.Background(), "archive_order", nil, nil)
	assert.Same(t, remoteErr, err)
}

type rpcServer struct {
	status int
	body   string
	delay  time.Duration
	path   string
	sent   map[string]interface{}
}

func (s *rpcServer) start(t *testing.T) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &s.sent)
		if s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-r.Context().Done():
				return
			}
		}
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
	t.Cleanup(srv.Close)
	return supabase.CreateClient(srv.URL, "service-key")
}

func TestSupabaseProcedureCallerVoidResponses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "ok without body", status: http.StatusOK},
		{name: "ok with null", status: http.StatusOK, body: "null"},
		{name: "no content", status: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := &rpcServer{status: tc.status, body: tc.body}
			repo := NewArchiveRepository(NewSupabaseProcedureCaller(server.start(t)))

			require.NoError(t, repo.Archive(context.Background(), models.EntityKindOrder, "o-1", nil, nil))
			assert.Equal(t, "/rest/v1/rpc/archive_order", server.path)
			assert.Equal(t, map[string]interface{}{"p_order_id": "o-1", "p_reason": nil, "p_by": nil}, server.sent)
		})
	}
}

func TestSupabaseProcedureCallerSurfacesRequestErrors(t *testing.T) {
	server := &rpcServer{status: http.StatusBadRequest, body: `{"code":"P0002","message":"order not found"}`}
	repo := NewArchiveRepository(NewSupabaseProcedureCaller(server.start(t)))

	err := repo.Unarchive(context.Background(), models.EntityKindOrder, "missing")
	var reqErr *postgrest.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "P0002", reqErr.Code)
	assert.Equal(t, http.StatusBadRequest, reqErr.HTTPStatusCode)
}

func TestSupabaseProcedureCallerKeepsEmptyFailuresAsErrors(t *testing.T) {
	server := &rpcServer{status: http.StatusInternalServerError}
	caller := NewSupabaseProcedureCaller(server.start(t))

	require.Error(t, caller.Call(context.Background(), "archive_proof", ProcedureArgs{{Name: "p_proof_id", Value: "p-1"}}, nil))
}

func TestSupabaseProcedureCallerDecodesRows(t *testing.T) {
	server := &rpcServer{status: http.StatusOK, body: `[{"id":"p-1","order_id":"o-1","version":2}]`}
	caller := NewSupabaseProcedureCaller(server.start(t))

	var rows []models.ProofDetail
	require.NoError(t, caller.Call(context.Background(), "get_all_proofs", nil, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "p-1", rows[0].ID)
}

func TestSupabaseProcedureCallerHonoursDeadline(t *testing.T) {
	server := &rpcServer{status: http.StatusOK, delay: 2 * time.Second}
	caller := NewSupabaseProcedureCaller(server.start(t))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := caller.Call(ctx, "archive_order", ProcedureArgs{{Name: "p_order_id", Value: "o-1"}}, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewSupabaseProcedureCallerWrapsTransportOnce(t *testing.T) {
	client := supabase.CreateClient("http://localhost:54321", "service-key")
	NewSupabaseProcedureCaller(client)
	NewSupabaseProcedureCaller(client)

	wrapped, ok := client.DB.Transport.Parent.(emptyBodyAsNull)
	require.True(t, ok)
	_, nested := wrapped.next.(emptyBodyAsNull)
	assert.False(t, nested)
}
