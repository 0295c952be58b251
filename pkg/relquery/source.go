package relquery

import (
	"fmt"

	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

// tableIdentity renders a *relexpr.TableRef's pointer identity as a
// map key; two Table bindings of the same name are distinguished by
// identity, not by name text.
func tableIdentity(ref *relexpr.TableRef) string {
	return fmt.Sprintf("%p", ref)
}

// TableSource is either a base relschema.Table or a Join composing two
// further sources. Tables returns every distinct
// table-occurrence identity reachable from this source, leaves first;
// it backs both the scope-legality check (a ColumnRef must name a
// table present in the source) and outer-join Nullable lifting below.
type TableSource interface {
	Tables() []*relexpr.TableRef
}

// JoinKind enumerates the four supported join kinds.
type JoinKind int

const (
	Inner JoinKind = iota
	LeftOuter
	RightOuter
	FullOuter
)

// Join is a table source combining two further sources under a
// Boolean predicate. Left
// and Right may themselves be Joins, so bushy and left-deep trees are
// both representable.
type Join struct {
	Kind        JoinKind
	Left, Right TableSource
	On          relexpr.Expr
}

func (j Join) Tables() []*relexpr.TableRef {
	return append(append([]*relexpr.TableRef{}, j.Left.Tables()...), j.Right.Tables()...)
}

func newJoin(kind JoinKind, left, right TableSource, on relexpr.Expr) (Join, error) {
	if !on.Tag().Unwrap().Equal(reltype.Base(reltype.Bool)) {
		return Join{}, relerr.New(relerr.TypeMismatch, "join predicate must be Boolean, got %s", on.Tag())
	}
	return Join{Kind: kind, Left: left, Right: right, On: on}, nil
}

// InnerJoin, LeftOuterJoin, RightOuterJoin and FullOuterJoin build the
// four join kinds. The predicate is validated
// Boolean at construction.
func InnerJoin(left, right TableSource, on relexpr.Expr) (Join, error) {
	return newJoin(Inner, left, right, on)
}

func LeftOuterJoin(left, right TableSource, on relexpr.Expr) (Join, error) {
	return newJoin(LeftOuter, left, right, on)
}

func RightOuterJoin(left, right TableSource, on relexpr.Expr) (Join, error) {
	return newJoin(RightOuter, left, right, on)
}

func FullOuterJoin(left, right TableSource, on relexpr.Expr) (Join, error) {
	return newJoin(FullOuter, left, right, on)
}

// nullableRefs walks a table source's join tree and returns the set of
// table occurrences that must be read as Nullable downstream — the
// weak side of a left outer (the right branch), a right outer (the
// left branch), or both branches of a full outer.
// Nullability lifted at one join level propagates through any source
// built on top of it, since a weak-side row that didn't match still
// produces NULLs for everything nested under that branch.
func nullableRefs(src TableSource) map[*relexpr.TableRef]bool {
	lifted := map[*relexpr.TableRef]bool{}
	var walk func(TableSource)
	walk = func(s TableSource) {
		j, ok := s.(Join)
		if !ok {
			return
		}
		walk(j.Left)
		walk(j.Right)
		switch j.Kind {
		case LeftOuter:
			for _, ref := range j.Right.Tables() {
				lifted[ref] = true
			}
		case RightOuter:
			for _, ref := range j.Left.Tables() {
				lifted[ref] = true
			}
		case FullOuter:
			for _, ref := range j.Left.Tables() {
				lifted[ref] = true
			}
			for _, ref := range j.Right.Tables() {
				lifted[ref] = true
			}
		}
	}
	walk(src)
	return lifted
}

// scopeOf returns the set of table-occurrence identities a source
// makes available, for the "every ColumnRef refers to a table present
// in scope" invariant.
func scopeOf(src TableSource) map[*relexpr.TableRef]bool {
	scope := map[*relexpr.TableRef]bool{}
	for _, ref := range src.Tables() {
		scope[ref] = true
	}
	return scope
}

// liftColumns rewrites every ColumnRef in e that names a table in
// lifted to a relexpr.Lifted(ColumnRef, Nullable(τ)) node, leaving
// everything else unchanged. It is applied to every expression placed
// against a table source — selection items, WHERE/HAVING predicates,
// ORDER BY keys — so the outer-join Nullable widening is visible at
// every expression position, not only the
// selection.
func liftColumns(e relexpr.Expr, lifted map[*relexpr.TableRef]bool) relexpr.Expr {
	if len(lifted) == 0 {
		return e
	}
	switch n := e.(type) {
	case relexpr.ColumnRef:
		if lifted[n.Table] {
			return relexpr.LiftNullable(n)
		}
		return n
	case relexpr.Unary:
		n.Operand = liftColumns(n.Operand, lifted)
		return n
	case relexpr.Binary:
		n.Left = liftColumns(n.Left, lifted)
		n.Right = liftColumns(n.Right, lifted)
		return n
	case relexpr.FuncCall:
		args := make([]relexpr.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = liftColumns(a, lifted)
		}
		n.Args = args
		return n
	case relexpr.Aggregation:
		if n.Operand != nil {
			n.Operand = liftColumns(n.Operand, lifted)
		}
		return n
	case relexpr.Case:
		branches := make([]relexpr.CaseBranch, len(n.Branches))
		for i, b := range n.Branches {
			branches[i] = relexpr.CaseBranch{
				Predicate: liftColumns(b.Predicate, lifted),
				Value:     liftColumns(b.Value, lifted),
			}
		}
		n.Branches = branches
		if n.Else != nil {
			n.Else = liftColumns(n.Else, lifted)
		}
		return n
	case relexpr.Aliased:
		return relexpr.As(liftColumns(n.Inner, lifted), n.Label)
	case relexpr.InList:
		n.Operand = liftColumns(n.Operand, lifted)
		values := make([]relexpr.Expr, len(n.Values))
		for i, v := range n.Values {
			values[i] = liftColumns(v, lifted)
		}
		n.Values = values
		return n
	case relexpr.InSubquery:
		n.Operand = liftColumns(n.Operand, lifted)
		return n
	default:
		return e
	}
}

// columnScopeViolation returns a relerr.UnknownTableColumn error
// naming the first ColumnRef in cols whose table is absent from
// scope, or nil if every column is in scope.
func columnScopeViolation(cols []relexpr.ColumnRef, scope map[*relexpr.TableRef]bool) error {
	for _, c := range cols {
		if !scope[c.Table] {
			return relerr.New(relerr.UnknownTableColumn, "column %q references a table not present in this statement's source", c.Column)
		}
	}
	return nil
}
