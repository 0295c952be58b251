package relquery

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relschema"
	"github.com/relq/relq/pkg/reltype"
)

// Assignment is one "column = expression" pair inside an UPDATE's SET
// clause.
type Assignment struct {
	Column relexpr.ColumnRef
	Value  relexpr.Expr
}

// Update is a table, its column assignments, and an optional Boolean
// restriction.
type Update struct {
	table       relschema.Table
	assignments []Assignment
	where       relexpr.Expr
}

// UpdateBuilder is the fluent form update(T).set(c, e)....where(p),
// built up one assignment at a time.
type UpdateBuilder struct {
	table       relschema.Table
	assignments []Assignment
	seen        map[string]bool
	where       relexpr.Expr
	err         error
}

func UpdateTable(table relschema.Table) *UpdateBuilder {
	return &UpdateBuilder{table: table, seen: map[string]bool{}}
}

// Set adds one column assignment. Assigning the same column twice in
// one UPDATE is rejected; the error
// surfaces at Build time, matching this builder's "validate once, at
// build" style.
func (b *UpdateBuilder) Set(columnName string, value relexpr.Expr) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	col, err := b.table.ColByName(columnName)
	if err != nil {
		b.err = err
		return b
	}
	if b.seen[columnName] {
		b.err = relerr.New(relerr.InvalidConstruction, "column %q is assigned more than once in this UPDATE", columnName)
		return b
	}
	if !assignable(col.Typ, value.Tag()) {
		b.err = relerr.New(relerr.TypeMismatch, "column %q has type %s, assigned value has type %s", columnName, col.Typ, value.Tag())
		return b
	}
	b.seen[columnName] = true
	b.assignments = append(b.assignments, Assignment{Column: col, Value: value})
	return b
}

func (b *UpdateBuilder) Where(p relexpr.Expr) *UpdateBuilder {
	b.where = p
	return b
}

func (b *UpdateBuilder) Build() (*Update, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.assignments) == 0 {
		return nil, relerr.New(relerr.InvalidConstruction, "UPDATE requires at least one assignment")
	}
	if b.where != nil && !b.where.Tag().Unwrap().Equal(reltype.Base(reltype.Bool)) {
		return nil, relerr.New(relerr.TypeMismatch, "WHERE must be Boolean, got %s", b.where.Tag())
	}
	return &Update{table: b.table, assignments: b.assignments, where: b.where}, nil
}

func (u *Update) Table() relschema.Table       { return u.table }
func (u *Update) Assignments() []Assignment    { return u.assignments }
func (u *Update) Where() relexpr.Expr          { return u.where }
