package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/nedpals/supabase-go"
)

type rpcFunc func(ctx context.Context, name string, params map[string]interface{}, dest interface{}) error

// SupabaseProcedureCaller runs procedures through the PostgREST RPC endpoint of a
// hosted Supabase project.
type SupabaseProcedureCaller struct {
	rpc rpcFunc
}

// NewSupabaseProcedureCaller constructs the caller over a service-role client. Void
// procedures may be answered with a 2xx and no body, which the PostgREST client cannot
// decode, so the client's transport is wrapped to present such bodies as JSON null.
func NewSupabaseProcedureCaller(client *supabase.Client) *SupabaseProcedureCaller {
	if t := client.DB.Transport; t != nil {
		if _, wrapped := t.Parent.(emptyBodyAsNull); !wrapped {
			parent := t.Parent
			if parent == nil {
				parent = http.DefaultTransport
			}
			t.Parent = emptyBodyAsNull{next: parent}
		}
	}
	return &SupabaseProcedureCaller{rpc: func(ctx context.Context, name string, params map[string]interface{}, dest interface{}) error {
		return client.DB.Rpc(name, params).ExecuteWithContext(ctx, dest)
	}}
}

// Call posts args as the RPC body. Results are decoded into dest when it is set.
func (c *SupabaseProcedureCaller) Call(ctx context.Context, name string, args ProcedureArgs, dest interface{}) error {
	if dest == nil {
		var sink json.RawMessage
		dest = &sink
	}
	return c.rpc(ctx, name, args.Map(), dest)
}

var jsonNull = []byte("null")

// emptyBodyAsNull rewrites empty successful bodies. Error responses pass through
// untouched so the client still reports them.
type emptyBodyAsNull struct {
	next http.RoundTripper
}

func (t emptyBodyAsNull) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode < 200 || resp.StatusCode >= 300 || resp.StatusCode == http.StatusNoContent {
		return resp, err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = jsonNull
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}
