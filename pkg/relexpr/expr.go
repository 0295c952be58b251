// Package relexpr implements the typed expression algebra: literals,
// column references, operators, function and
// aggregation applications, CASE, and the aliasing form legal only at
// a selection's top level. Every node carries its static output Tag;
// composition rules enforce operand type compatibility at construction
// time and report relerr.ConstructionError on violation.
package relexpr

import (
	"github.com/relq/relq/pkg/reltype"
)

// Expr is any node of the expression tree. Concrete node types are
// exported so pkg/relrender can type-switch on them; the unexported
// marker method keeps the set closed to this package.
type Expr interface {
	Tag() reltype.Tag
	exprNode()
}

// TableRef is the identity of one bound occurrence of a table within a
// statement. Two Table bindings of the same relation name (a self
// join) hold distinct *TableRef values, so ColumnRef nodes can be
// matched back to the right branch of a join tree even when names
// collide; the textual alias ("T", "T_2", …) is auto-assigned at
// render time from however many distinct *TableRef the tree holds
// for one name.
type TableRef struct {
	Name string
}

// Literal is a constant of a known type.
type Literal struct {
	Value any
	Typ   reltype.Tag
}

func (l Literal) Tag() reltype.Tag { return l.Typ }
func (Literal) exprNode()          {}

// Lit constructs a Literal, inferring no type beyond what the caller
// supplies; see the typed helpers (LitString, LitInt, ...) in
// literals.go for the common, self-checking case.
func Lit(v any, t reltype.Tag) Literal {
	return Literal{Value: v, Typ: t}
}

// ColumnRef references one column of one bound table occurrence
// of a relation. Table-set construction (pkg/relschema)
// is the only place these are minted; expression builders only consume
// them.
type ColumnRef struct {
	Table  *TableRef
	Column string
	Typ    reltype.Tag
}

func (c ColumnRef) Tag() reltype.Tag { return c.Typ }
func (ColumnRef) exprNode()          {}

// NewColumnRef is called by pkg/relschema.Table when binding a column
// set to a name; it is not meant to be called directly by query authors.
func NewColumnRef(table *TableRef, column string, t reltype.Tag) ColumnRef {
	return ColumnRef{Table: table, Column: column, Typ: t}
}

// Aliased marks an expression with a selection-level label
// ("<expr> AS <label>"). It is legal only at selection top level;
// pkg/relquery's selection builder enforces that placement, since
// Aliased itself is a perfectly ordinary Expr as far as this package
// is concerned.
type Aliased struct {
	Inner Expr
	Label string
}

func (a Aliased) Tag() reltype.Tag { return a.Inner.Tag() }
func (Aliased) exprNode()          {}

// As wraps e with a selection alias.
func As(e Expr, label string) Aliased {
	return Aliased{Inner: e, Label: label}
}

// Unalias strips a top-level Aliased wrapper, returning e unchanged if
// it is not aliased. Used by the "alias-insensitive" shape-equality
// check selections rely on.
func Unalias(e Expr) Expr {
	if a, ok := e.(Aliased); ok {
		return a.Inner
	}
	return e
}

// IsAggregated reports whether e is, or contains, an Aggregation node
// — columns inside an aggregation count as aggregated, a rule used by the
// GROUP BY legality check in pkg/relquery.
func IsAggregated(e Expr) bool {
	switch n := e.(type) {
	case Aggregation:
		return true
	case Unary:
		return IsAggregated(n.Operand)
	case Binary:
		return IsAggregated(n.Left) || IsAggregated(n.Right)
	case FuncCall:
		for _, a := range n.Args {
			if IsAggregated(a) {
				return true
			}
		}
		return false
	case Case:
		for _, b := range n.Branches {
			if IsAggregated(b.Predicate) || IsAggregated(b.Value) {
				return true
			}
		}
		if n.Else != nil && IsAggregated(n.Else) {
			return true
		}
		return false
	case Aliased:
		return IsAggregated(n.Inner)
	case InList:
		if IsAggregated(n.Operand) {
			return true
		}
		for _, v := range n.Values {
			if IsAggregated(v) {
				return true
			}
		}
		return false
	case InSubquery:
		return IsAggregated(n.Operand)
	case Lifted:
		return IsAggregated(n.Inner)
	default:
		return false
	}
}

// ColumnsOf collects every ColumnRef reachable inside e (through
// non-aggregated positions only is the caller's job — see
// pkg/relquery's group-by legality check, which calls this on
// expressions it has already confirmed are not aggregated).
func ColumnsOf(e Expr) []ColumnRef {
	var out []ColumnRef
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case ColumnRef:
			out = append(out, n)
		case Unary:
			walk(n.Operand)
		case Binary:
			walk(n.Left)
			walk(n.Right)
		case FuncCall:
			for _, a := range n.Args {
				walk(a)
			}
		case Aggregation:
			walk(n.Operand)
		case Case:
			for _, b := range n.Branches {
				walk(b.Predicate)
				walk(b.Value)
			}
			if n.Else != nil {
				walk(n.Else)
			}
		case Aliased:
			walk(n.Inner)
		case InList:
			walk(n.Operand)
			for _, v := range n.Values {
				walk(v)
			}
		case InSubquery:
			walk(n.Operand)
		case Lifted:
			walk(n.Inner)
		}
	}
	walk(e)
	return out
}

// Lifted wraps an expression (almost always a ColumnRef) whose static
// type has been widened to Nullable because it was reached through the
// weak side of an outer join.
// Lifted has to live in this package rather than in pkg/relquery
// (which performs the lifting) because Expr's marker method is
// unexported, keeping the node set closed to this package.
type Lifted struct {
	Inner Expr
	Typ   reltype.Tag
}

func (l Lifted) Tag() reltype.Tag { return l.Typ }
func (Lifted) exprNode()          {}

// LiftNullable wraps e so its static Tag becomes Nullable(e.Tag()),
// idempotently: lifting an already-Nullable or already-Lifted
// expression returns it unchanged.
func LiftNullable(e Expr) Expr {
	if e.Tag().IsNullable() {
		return e
	}
	return Lifted{Inner: e, Typ: reltype.Nullable(e.Tag())}
}

// SameShape reports alias-insensitive equality: two expressions are equal
// modulo alias when their Unalias forms carry equal Tags. Only the Tags
// are compared; node kind, column identity and Literal.Value are not, so
// two different columns of one type compare equal. Callers comparing
// rendered SQL text should instead render both (see pkg/relrender) and
// compare modulo alias text.
func SameShape(a, b Expr) bool {
	return Unalias(a).Tag().Equal(Unalias(b).Tag())
}
