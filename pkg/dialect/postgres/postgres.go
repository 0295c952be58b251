// Package postgres implements the PostgreSQL dialect descriptor,
// extending pkg/dialect/ansi where Postgres diverges: byte-array
// literals, its function set, and a DialectSpecific("postgres", "jsonb")
// feature wired end to end (rendering here, extraction via
// internal/pgxdriver's registration).
package postgres

import (
	"fmt"
	"strings"

	"github.com/relq/relq/pkg/dialect"
	"github.com/relq/relq/pkg/dialect/ansi"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

func renderLiteral(value any, tag reltype.Tag) string {
	if b, ok := value.([]byte); ok {
		return fmt.Sprintf(`'\x%x'`, b)
	}
	return ansi.Dialect().RenderLiteral(value, tag)
}

func renderFunction(name string, args []string) string {
	switch name {
	case "Length":
		return "LENGTH(" + strings.Join(args, ", ") + ")"
	case "Ln":
		return "LN(" + strings.Join(args, ", ") + ")"
	default:
		return strings.ToUpper(name) + "(" + strings.Join(args, ", ") + ")"
	}
}

// functions extends the baseline registry with Postgres-only functions.
func functions() *relexpr.FuncRegistry {
	base := relexpr.BaselineFunctions()
	pg := relexpr.NewFuncRegistry()
	str := reltype.Base(reltype.String)
	pg.Register(relexpr.FuncSignature{Name: "Initcap", Args: []reltype.Tag{str}, Result: str})
	return base.Extend(pg)
}

// Dialect returns the PostgreSQL descriptor.
func Dialect() dialect.Dialect {
	d := ansi.Dialect()
	d.Name = "postgres"
	d.RenderLiteral = renderLiteral
	d.RenderFunction = renderFunction
	d.Functions = functions()
	d.DialectSpecificFeatures = map[string]bool{"jsonb": true}
	return d
}
