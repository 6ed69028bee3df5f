package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nedpals/supabase-go"
)

// ProcedureArg is one named argument of a stored procedure call.
type ProcedureArg struct {
	Name  string
	Value interface{}
}

// ProcedureArgs keeps arguments in declaration order so generated SQL is stable.
type ProcedureArgs []ProcedureArg

// Map returns the arguments keyed by name, as sent in an RPC request body.
func (a ProcedureArgs) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(a))
	for _, arg := range a {
		out[arg.Name] = arg.Value
	}
	return out
}

// ProcedureCaller invokes a stored procedure on the storage service. A nil dest means
// the procedure returns nothing of interest. Implementations return the transport's
// error as is.
type ProcedureCaller interface {
	Call(ctx context.Context, name string, args ProcedureArgs, dest interface{}) error
}

// ProcedureObserver receives timing for every procedure call.
type ProcedureObserver interface {
	ObserveProcedure(name string, duration time.Duration, err error)
}

type observedCaller struct {
	next     ProcedureCaller
	observer ProcedureObserver
}

// WithObserver reports each call to observer without altering its result.
func WithObserver(next ProcedureCaller, observer ProcedureObserver) ProcedureCaller {
	if observer == nil {
		return next
	}
	return &observedCaller{next: next, observer: observer}
}

func (c *observedCaller) Call(ctx context.Context, name string, args ProcedureArgs, dest interface{}) error {
	start := time.Now()
	err := c.next.Call(ctx, name, args, dest)
	c.observer.ObserveProcedure(name, time.Since(start), err)
	return err
}

// NewProcedureCaller selects the transport by name: "postgres" calls functions over db,
// "supabase" goes through the PostgREST RPC endpoint of client.
func NewProcedureCaller(transport string, db *sqlx.DB, client *supabase.Client) (ProcedureCaller, error) {
	switch transport {
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres transport requires a database connection")
		}
		return NewPostgresProcedureCaller(db), nil
	case "supabase":
		if client == nil {
			return nil, fmt.Errorf("supabase transport requires a client")
		}
		return NewSupabaseProcedureCaller(client), nil
	default:
		return nil, fmt.Errorf("unknown procedure transport %q", transport)
	}
}
