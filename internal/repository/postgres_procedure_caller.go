package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
)

var sqlIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresProcedureCaller runs procedures over a direct database connection using
// named argument notation, so argument order on the server does not matter.
type PostgresProcedureCaller struct {
	db *sqlx.DB
}

// NewPostgresProcedureCaller constructs the caller.
func NewPostgresProcedureCaller(db *sqlx.DB) *PostgresProcedureCaller {
	return &PostgresProcedureCaller{db: db}
}

// Call executes name(args...). Rows are scanned into dest when it is not nil.
func (c *PostgresProcedureCaller) Call(ctx context.Context, name string, args ProcedureArgs, dest interface{}) error {
	call, values, err := buildProcedureCall(name, args)
	if err != nil {
		return err
	}
	if dest == nil {
		_, err := c.db.ExecContext(ctx, "SELECT "+call, values...)
		return err
	}
	return c.db.SelectContext(ctx, dest, "SELECT * FROM "+call, values...)
}

func buildProcedureCall(name string, args ProcedureArgs) (string, []interface{}, error) {
	if !sqlIdentifier.MatchString(name) {
		return "", nil, fmt.Errorf("invalid procedure name %q", name)
	}
	parts := make([]string, 0, len(args))
	values := make([]interface{}, 0, len(args))
	for i, arg := range args {
		if !sqlIdentifier.MatchString(arg.Name) {
			return "", nil, fmt.Errorf("invalid argument name %q for %s", arg.Name, name)
		}
		parts = append(parts, fmt.Sprintf("%s => $%d", arg.Name, i+1))
		values = append(values, arg.Value)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", ")), values, nil
}
