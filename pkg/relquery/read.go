package relquery

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

// readForm discriminates Read's three constructor shapes: a select, a
// set operation, or a literal row source. Read stays
// one type with an internal tag rather than three exported types so
// relexpr.Subquery and pkg/relrender each have one type to switch on.
type readForm int

const (
	selectForm readForm = iota
	unionForm
	literalForm
)

// Read is a rooted syntax tree denoting a full SELECT statement, a set
// operation between two Reads, or a literal row source.
// Values are built through Select(...).Build() or through Union/
// LiteralRows below; Read itself is immutable once built.
type Read struct {
	form readForm

	// selectForm fields
	selection Selection
	source    TableSource
	where     relexpr.Expr
	groupBy   []relexpr.ColumnRef
	having    relexpr.Expr
	orderBy   []relexpr.OrderKey
	limit     *int
	offset    *int

	// unionForm fields
	left, right *Read
	all         bool

	// literalForm fields
	rows     [][]relexpr.Expr
	rowShape []reltype.Tag
}

// SelectionTags satisfies relexpr.Subquery so any Read — select,
// union, or literal — can appear as the right-hand side of IN
// (subquery).
func (r *Read) SelectionTags() []reltype.Tag {
	switch r.form {
	case selectForm:
		return r.selection.Tags()
	case unionForm:
		return r.left.SelectionTags()
	default:
		return r.rowShape
	}
}

// SelectBuilder is the staged statement builder:
// select(σ).from(source).where(p).groupBy(k*).having(p).orderBy(k*).limit(n).offset(n).
// Every stage is optional and, per the chain's stated grammar, appears
// at most once; illegal orderings (e.g. calling GroupBy twice) simply
// overwrite rather than erroring, since Go has no way to make a stage
// unreachable after it's been called without a distinct type per
// state. All structural validation happens once, in Build, rather
// than in a distinct type per builder stage.
type SelectBuilder struct {
	selection Selection
	source    TableSource
	where     relexpr.Expr
	groupBy   []relexpr.Expr
	having    relexpr.Expr
	orderBy   []relexpr.OrderKey
	limit     *int
	offset    *int
}

// Select starts a SelectBuilder over the given selection.
func Select(sel Selection) *SelectBuilder {
	return &SelectBuilder{selection: sel}
}

func (b *SelectBuilder) From(src TableSource) *SelectBuilder {
	b.source = src
	return b
}

func (b *SelectBuilder) Where(p relexpr.Expr) *SelectBuilder {
	b.where = p
	return b
}

func (b *SelectBuilder) GroupBy(keys ...relexpr.Expr) *SelectBuilder {
	b.groupBy = keys
	return b
}

func (b *SelectBuilder) Having(p relexpr.Expr) *SelectBuilder {
	b.having = p
	return b
}

func (b *SelectBuilder) OrderBy(keys ...relexpr.OrderKey) *SelectBuilder {
	b.orderBy = keys
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = &n
	return b
}

// Build validates and freezes the statement, applying the source's
// outer-join Nullable lifting to every expression position before
// checking scope, WHERE/HAVING Booleanness, and GROUP BY legality.
func (b *SelectBuilder) Build() (*Read, error) {
	if b.source == nil {
		return nil, relerr.New(relerr.InvalidConstruction, "select requires a FROM source")
	}
	if b.having != nil && b.groupBy == nil {
		return nil, relerr.New(relerr.InvalidConstruction, "HAVING is only legal with GROUP BY")
	}
	if b.limit != nil && *b.limit < 0 {
		return nil, relerr.New(relerr.InvalidConstruction, "LIMIT must be >= 0, got %d", *b.limit)
	}
	if b.offset != nil && *b.offset < 0 {
		return nil, relerr.New(relerr.InvalidConstruction, "OFFSET must be >= 0, got %d", *b.offset)
	}

	lifted := nullableRefs(b.source)
	scope := scopeOf(b.source)

	selExprs := make([]relexpr.Expr, len(b.selection.Exprs))
	for i, e := range b.selection.Exprs {
		selExprs[i] = liftColumns(e, lifted)
	}
	selection, err := NewSelection(selExprs...)
	if err != nil {
		return nil, err
	}
	if err := columnScopeViolation(selection.columnsOf(), scope); err != nil {
		return nil, err
	}

	var where relexpr.Expr
	if b.where != nil {
		where = liftColumns(b.where, lifted)
		if !where.Tag().Unwrap().Equal(reltype.Base(reltype.Bool)) {
			return nil, relerr.New(relerr.TypeMismatch, "WHERE must be Boolean, got %s", where.Tag())
		}
		if err := columnScopeViolation(relexpr.ColumnsOf(where), scope); err != nil {
			return nil, err
		}
	}

	var having relexpr.Expr
	if b.having != nil {
		having = liftColumns(b.having, lifted)
		if !having.Tag().Unwrap().Equal(reltype.Base(reltype.Bool)) {
			return nil, relerr.New(relerr.TypeMismatch, "HAVING must be Boolean, got %s", having.Tag())
		}
	}

	var groupBy []relexpr.ColumnRef
	if b.groupBy != nil {
		groupBy = make([]relexpr.ColumnRef, len(b.groupBy))
		for i, k := range b.groupBy {
			lk := liftColumns(k, lifted)
			col, ok := lk.(relexpr.ColumnRef)
			if !ok {
				return nil, relerr.New(relerr.InvalidConstruction, "GROUP BY key %d must be a column reference", i)
			}
			groupBy[i] = col
		}
		if err := groupByLegality(selection, groupBy); err != nil {
			return nil, err
		}
	}

	orderBy := make([]relexpr.OrderKey, len(b.orderBy))
	for i, k := range b.orderBy {
		k.Expr = liftColumns(k.Expr, lifted)
		orderBy[i] = k
		if err := columnScopeViolation(relexpr.ColumnsOf(k.Expr), scope); err != nil {
			return nil, err
		}
	}

	return &Read{
		form:      selectForm,
		selection: selection,
		source:    b.source,
		where:     where,
		groupBy:   groupBy,
		having:    having,
		orderBy:   orderBy,
		limit:     b.limit,
		offset:    b.offset,
	}, nil
}

// groupByLegality enforces the grouping rule: every
// non-aggregated expression in the selection must reference only
// columns in the grouping key set; literals and expressions with no
// column references at all are always legal.
func groupByLegality(sel Selection, keys []relexpr.ColumnRef) error {
	allowed := make(map[string]bool, len(keys))
	for _, k := range keys {
		allowed[groupKeyIdentity(k)] = true
	}
	for _, e := range sel.Exprs {
		if relexpr.IsAggregated(e) {
			continue
		}
		for _, c := range relexpr.ColumnsOf(e) {
			if !allowed[groupKeyIdentity(c)] {
				return relerr.New(relerr.GroupByLegalityViolation, "column %q is neither grouped nor aggregated", c.Column)
			}
		}
	}
	return nil
}

func groupKeyIdentity(c relexpr.ColumnRef) string {
	return c.Column + "\x00" + tableIdentity(c.Table)
}

// Union builds a set operation between two Reads whose row shapes must
// match. all distinguishes UNION ALL (bag semantics) from UNION (set
// semantics); order is preserved relative to the left operand.
func Union(left, right *Read, all bool) (*Read, error) {
	if !SameShape(selectionOf(left), selectionOf(right)) {
		return nil, relerr.New(relerr.InvalidConstruction, "UNION operands must share a row shape")
	}
	return &Read{form: unionForm, left: left, right: right, all: all}, nil
}

func selectionOf(r *Read) Selection {
	if r.form == selectForm {
		return r.selection
	}
	return Selection{Exprs: tagsToLiterals(r.SelectionTags())}
}

// tagsToLiterals stands in for a non-select Read's row shape when
// comparing via SameShape, which only inspects each expression's Tag.
func tagsToLiterals(tags []reltype.Tag) []relexpr.Expr {
	out := make([]relexpr.Expr, len(tags))
	for i, t := range tags {
		out[i] = relexpr.Lit(nil, t)
	}
	return out
}

// LiteralRows builds a Read over an in-memory row source, used as an
// Insert source or a values
// list. Every row must match the first row's column count and
// per-position types.
func LiteralRows(rows [][]relexpr.Expr) (*Read, error) {
	if len(rows) == 0 {
		return nil, relerr.New(relerr.InvalidConstruction, "literal row source must contain at least one row")
	}
	shape := make([]reltype.Tag, len(rows[0]))
	for i, e := range rows[0] {
		shape[i] = e.Tag()
	}
	for ri, row := range rows {
		if len(row) != len(shape) {
			return nil, relerr.New(relerr.ArityMismatch, "row %d has %d columns, expected %d", ri, len(row), len(shape))
		}
		for ci, e := range row {
			if !e.Tag().Unwrap().Equal(shape[ci].Unwrap()) {
				return nil, relerr.New(relerr.TypeMismatch, "row %d column %d has type %s, expected %s", ri, ci, e.Tag(), shape[ci])
			}
		}
	}
	return &Read{form: literalForm, rows: rows, rowShape: shape}, nil
}

// Selection, Source, Where, GroupBy, Having, OrderBy, Limit, Offset,
// IsUnion, IsLiteral and their companions below expose a built Read's
// fields to pkg/relrender without making them public struct fields —
// Read's invariants (Nullable-lifted columns, validated scope) only
// hold once Build has run, so nothing outside this package should be
// able to construct or mutate a Read's fields directly.

func (r *Read) IsSelect() bool  { return r.form == selectForm }
func (r *Read) IsUnion() bool   { return r.form == unionForm }
func (r *Read) IsLiteral() bool { return r.form == literalForm }

func (r *Read) Selection() Selection          { return r.selection }
func (r *Read) Source() TableSource           { return r.source }
func (r *Read) Where() relexpr.Expr           { return r.where }
func (r *Read) GroupBy() []relexpr.ColumnRef  { return r.groupBy }
func (r *Read) Having() relexpr.Expr          { return r.having }
func (r *Read) OrderBy() []relexpr.OrderKey   { return r.orderBy }
func (r *Read) Limit() *int                   { return r.limit }
func (r *Read) Offset() *int                  { return r.offset }
func (r *Read) UnionOperands() (*Read, *Read, bool) { return r.left, r.right, r.all }
func (r *Read) LiteralRows() [][]relexpr.Expr { return r.rows }
