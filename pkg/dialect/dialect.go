// Package dialect defines the descriptor surface pkg/relrender
// consumes. The core renderer uses only these hooks and never inspects
// the dialect type further. Concrete dialects live in pkg/dialect/ansi
// and pkg/dialect/postgres.
package dialect

import (
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

// Dialect is the full hook surface a target SQL engine supplies: a
// plain descriptor value holding closures and data rather than a type
// implementing an interface, so a dialect can be assembled or
// overridden field by field.
type Dialect struct {
	// Name identifies the dialect for error messages and
	// DialectSpecific(d) tag matching.
	Name string

	// QuoteIdent quotes and escapes an identifier if it needs
	// quoting (reserved word, non [A-Za-z0-9_] character); returns
	// the identifier unquoted otherwise.
	QuoteIdent func(ident string) string

	// RenderLiteral formats a non-NULL, non-Bool, non-temporal
	// literal value of the given tag. NULL, Bool and temporal
	// literals are dispatched separately (NullLiteral,
	// BooleanLiteral, TemporalLiteral) since every dialect needs to
	// special-case them.
	RenderLiteral func(value any, tag reltype.Tag) string

	// RenderLimit formats the pagination clause; either or both of
	// limit/offset may be nil.
	RenderLimit func(limit, offset *int) string

	// RenderFunction formats a function call given its already
	// rendered arguments, letting a dialect rename or restructure a
	// baseline function (e.g. Substring(s,a,b) -> SUBSTR(s,a,b)).
	RenderFunction func(name string, renderedArgs []string) string

	// BooleanLiteral formats TRUE/FALSE.
	BooleanLiteral func(b bool) string

	// TemporalLiteral formats a temporal value of the given tag,
	// e.g. Postgres's "DATE '2020-01-02'".
	TemporalLiteral func(value any, tag reltype.Tag) string

	// NullLiteral formats the literal NULL keyword; every dialect in
	// this module renders it the same way, but the hook exists so a
	// future dialect isn't forced to share it.
	NullLiteral func() string

	// Functions is this dialect's function registry,
	// normally relexpr.BaselineFunctions() extended with
	// dialect-specific entries.
	Functions *relexpr.FuncRegistry

	// DialectSpecificFeatures names the DialectSpecific(d) features
	// this dialect can render and decode; see
	// pkg/reltype.RegisterDialectExtractor for the decode half.
	DialectSpecificFeatures map[string]bool
}

// SupportsFeature reports whether this dialect has a registered
// renderer for DialectSpecific(d, feature); the renderer raises
// relerr.UnsupportedForDialect when it does not.
func (d Dialect) SupportsFeature(feature string) bool {
	return d.DialectSpecificFeatures[feature]
}
