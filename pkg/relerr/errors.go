// Package relerr defines the construction-error taxonomy shared by
// pkg/reltype, pkg/relschema, pkg/relexpr, and pkg/relquery.
//
// Construction errors are programmer errors: they are raised while a
// tree is being built, never while it is executing. Every constructor
// in this module that can fail returns one of the Kind values below,
// wrapped with github.com/pkg/errors so a caller that formats the
// error with "%+v" gets a stack trace pointing at the offending
// builder call.
package relerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the construction-error taxonomy.
type Kind string

const (
	DuplicateColumn        Kind = "duplicate_column"
	UnknownTableColumn      Kind = "unknown_table_column"
	GroupByLegalityViolation Kind = "group_by_legality_violation"
	TypeMismatch            Kind = "type_mismatch"
	ArityMismatch           Kind = "arity_mismatch"
	NullableNesting         Kind = "nullable_nesting"
	UnsupportedForDialect   Kind = "unsupported_for_dialect"

	// InvalidConstruction covers statement-lifecycle violations with no
	// more specific kind of their own: a
	// missing required builder stage (no FROM source), a negative
	// LIMIT/OFFSET, HAVING without GROUP BY, a column assigned twice in
	// one UPDATE, or mismatched row shapes across a set operation or
	// INSERT source.
	InvalidConstruction Kind = "invalid_construction"
)

// ConstructionError is the single error type returned by every builder
// in this module. It is never meant to reach execution: callers are
// expected to treat it as a panic-worthy bug during development, but it
// is returned rather than panicked so build-time validation can be unit
// tested like any other function.
type ConstructionError struct {
	Kind Kind
	Msg  string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds a ConstructionError of the given kind, wrapped with a
// stack trace via github.com/pkg/errors.
func New(kind Kind, format string, args ...any) error {
	return errors.WithStack(&ConstructionError{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// Is reports whether err is a ConstructionError of the given kind,
// unwrapping github.com/pkg/errors stack frames.
func Is(err error, kind Kind) bool {
	var ce *ConstructionError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == kind
}
