package relquery

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relschema"
	"github.com/relq/relq/pkg/reltype"
)

// Delete is a table plus an optional Boolean restriction.
type Delete struct {
	table relschema.Table
	where relexpr.Expr
}

// DeleteFrom builds a Delete against table, optionally restricted by
// where (which must be Boolean).
func DeleteFrom(table relschema.Table, where relexpr.Expr) (*Delete, error) {
	if where != nil && !where.Tag().Unwrap().Equal(reltype.Base(reltype.Bool)) {
		return nil, relerr.New(relerr.TypeMismatch, "WHERE must be Boolean, got %s", where.Tag())
	}
	return &Delete{table: table, where: where}, nil
}

func (d *Delete) Table() relschema.Table { return d.table }
func (d *Delete) Where() relexpr.Expr    { return d.where }
