// Package reldriver declares the external collaborators this module
// borrows rather than owns: a connection provider, a statement
// executor, and the cursor a query produces. Concrete drivers (e.g.
// internal/pgxdriver) implement these interfaces; the core never
// imports a specific driver package.
package reldriver

import "context"

// ConnProvider scopes acquisition of a connection with guaranteed
// release on all exit paths, including panics unwound through defer in
// the implementation.
type ConnProvider interface {
	// Acquire hands fn a live Conn for the duration of the call and
	// releases it back to the pool (or closes it) once fn returns,
	// regardless of the error it returns.
	Acquire(ctx context.Context, fn func(ctx context.Context, conn Conn) error) error
}

// Conn is an acquired, single-use connection.
type Conn interface {
	// Exec runs sql (an INSERT/UPDATE/DELETE statement) and
	// reports the number of rows affected.
	Exec(ctx context.Context, sql string) (rowsAffected int64, err error)

	// Query runs sql (a SELECT/UNION statement) and returns a Cursor
	// the caller must Close.
	Query(ctx context.Context, sql string) (Cursor, error)
}

// Cursor is a forward-only, single-use position over a result set. It
// is owned by the execution collaborator and only borrowed by the row
// decoder (pkg/relrow) for the duration of row extraction.
type Cursor interface {
	// Next advances to the next row, returning false at end of stream
	// or on error (callers must call Err after a false return).
	Next() bool

	// Err returns the first error encountered advancing the cursor, if
	// any; nil if the stream ended normally.
	Err() error

	// Close releases the cursor. It is safe to call multiple times and
	// must be called on every exit path (including a decode error).
	Close()

	// MetadataColumnCount reports the number of columns in the result.
	MetadataColumnCount() int

	// MetadataColumnName reports the name of the 1-based ordinal
	// column i, as reported by the backend.
	MetadataColumnName(i int) string

	// MetadataColumnType reports the backend's own type code for the
	// 1-based ordinal column i, in whatever textual form the driver
	// uses (a PostgreSQL type OID, say). It is diagnostic only: decode
	// errors quote it as the "actual driverCode" next to the expected
	// tag.
	MetadataColumnType(i int) string

	// Getters below are keyed by 1-based ordinal. A getter may
	// be called only after a successful Next and only once per row per
	// ordinal; behavior of repeated or out-of-order calls on one row is
	// driver-defined.
	GetBool(i int) (value bool, isNull bool, err error)
	GetByte(i int) (value int8, isNull bool, err error)
	GetShort(i int) (value int16, isNull bool, err error)
	GetInt(i int) (value int32, isNull bool, err error)
	GetLong(i int) (value int64, isNull bool, err error)
	GetFloat(i int) (value float32, isNull bool, err error)
	GetDouble(i int) (value float64, isNull bool, err error)
	GetBigDecimal(i int) (value string, isNull bool, err error)
	GetString(i int) (value string, isNull bool, err error)
	GetBytes(i int) (value []byte, isNull bool, err error)
	GetUUID(i int) (value [16]byte, isNull bool, err error)

	// GetTimestamp returns the driver's timestamp primitive: a wall
	// clock reading with an optional UTC offset. Temporal extraction
	// normalizes every temporal Tag through this one getter.
	GetTimestamp(i int) (value Timestamp, isNull bool, err error)
}

// ErrorKind classifies an execution error. Driver errors propagate as
// a single wrapped kind from the executor; the core does not retry.
type ErrorKind string

const (
	ConnectionFailed    ErrorKind = "connection_failed"
	StatementFailed     ErrorKind = "statement_failed"
	ConstraintViolation ErrorKind = "constraint_violation"
)

// Timestamp is the driver-neutral timestamp primitive every temporal
// Tag decodes through. HasOffset/OffsetSeconds are populated only when
// the driver/column reports a timezone; otherwise the local view is
// assumed to be UTC.
type Timestamp struct {
	Year                      int
	Month, Day                int
	Hour, Minute, Second      int
	Nanosecond                int
	HasOffset                 bool
	OffsetSeconds             int
}
