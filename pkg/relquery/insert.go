package relquery

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relschema"
	"github.com/relq/relq/pkg/reltype"
)

// Insert writes a row source into named columns of a table: any Read
// — a Select, a Union, or a literal row source built via LiteralRows —
// whose row shape must match columns position-for-position.
type Insert struct {
	table   relschema.Table
	columns []relexpr.ColumnRef
	source  *Read
}

// InsertInto builds an Insert, validating that every named column
// belongs to table and that source's row shape matches columns in
// count and type.
func InsertInto(table relschema.Table, columnNames []string, source *Read) (*Insert, error) {
	columns := make([]relexpr.ColumnRef, len(columnNames))
	for i, name := range columnNames {
		col, err := table.ColByName(name)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	shape := source.SelectionTags()
	if len(shape) != len(columns) {
		return nil, relerr.New(relerr.ArityMismatch, "INSERT lists %d columns but source projects %d", len(columns), len(shape))
	}
	for i, c := range columns {
		if !assignable(c.Typ, shape[i]) {
			return nil, relerr.New(relerr.TypeMismatch, "INSERT column %q has type %s, source column %d has type %s", c.Column, c.Typ, i, shape[i])
		}
	}

	return &Insert{table: table, columns: columns, source: source}, nil
}

func (i *Insert) Table() relschema.Table        { return i.table }
func (i *Insert) Columns() []relexpr.ColumnRef  { return i.columns }
func (i *Insert) Source() *Read                 { return i.source }

// assignable reports whether a value of type exprTag may be written
// into a column declared colTag: types must match once both sides are
// unwrapped, and a non-Nullable expression may be written into a
// Nullable column (a Nullable upcast) but not the reverse.
func assignable(colTag, exprTag reltype.Tag) bool {
	if !colTag.Unwrap().Equal(exprTag.Unwrap()) {
		return false
	}
	if exprTag.IsNullable() && !colTag.IsNullable() {
		return false
	}
	return true
}
