package pgxdriver

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/relq/relq/pkg/reldriver"
)

// ExecutionError is the single wrapped kind every execution error
// surfaces as: ConnectionFailed, StatementFailed,
// or ConstraintViolation (where distinguishable) plus the PostgreSQL
// SQLSTATE and message for diagnosis. pgx/v5's pool and connection
// methods return *pgconn.PgError, not the lower wire-protocol
// pgproto3.ErrorResponse — classifyError unwraps whichever this pool
// surfaces.
type ExecutionError struct {
	Kind    reldriver.ErrorKind
	SQLCode string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s (sqlstate %s): %s", e.Kind, e.SQLCode, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// constraintViolationClass is SQLSTATE class 23, "integrity constraint
// violation" (not-null, foreign key, unique, check).
const constraintViolationClass = "23"

func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := reldriver.StatementFailed
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == constraintViolationClass {
			kind = reldriver.ConstraintViolation
		}
		return &ExecutionError{Kind: kind, SQLCode: pgErr.Code, Err: err}
	}
	return &ExecutionError{Kind: reldriver.ConnectionFailed, SQLCode: "", Err: err}
}
