package relexpr

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/reltype"
)

// UnaryOp enumerates the unary operators. Constants
// are named Op* to leave the builder functions below (Not, Neg,
// IsNull, IsNotNull) free to use the operator's natural name.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpIsNull
	OpIsNotNull
)

type Unary struct {
	Op      UnaryOp
	Operand Expr
	Typ     reltype.Tag
}

func (u Unary) Tag() reltype.Tag { return u.Typ }
func (Unary) exprNode()          {}

// Not builds logical negation; operand must be Boolean.
func Not(e Expr) (Expr, error) {
	if !e.Tag().Unwrap().Equal(reltype.Base(reltype.Bool)) {
		return nil, relerr.New(relerr.TypeMismatch, "NOT requires a Boolean operand, got %s", e.Tag())
	}
	return Unary{Op: OpNot, Operand: e, Typ: reltype.Base(reltype.Bool)}, nil
}

// Neg builds arithmetic negation; operand must support arithmetic
// (Double, in the current version).
func Neg(e Expr) (Expr, error) {
	if !e.Tag().SupportsArithmetic() {
		return nil, relerr.New(relerr.TypeMismatch, "unary - requires a Double operand, got %s", e.Tag())
	}
	return Unary{Op: OpNeg, Operand: e, Typ: e.Tag()}, nil
}

// IsNull/IsNotNull accept any Nullable(τ) operand.
func IsNull(e Expr) (Expr, error) {
	if !e.Tag().IsNullable() {
		return nil, relerr.New(relerr.TypeMismatch, "IS NULL requires a Nullable operand, got %s", e.Tag())
	}
	return Unary{Op: OpIsNull, Operand: e, Typ: reltype.Base(reltype.Bool)}, nil
}

func IsNotNull(e Expr) (Expr, error) {
	if !e.Tag().IsNullable() {
		return nil, relerr.New(relerr.TypeMismatch, "IS NOT NULL requires a Nullable operand, got %s", e.Tag())
	}
	return Unary{Op: OpIsNotNull, Operand: e, Typ: reltype.Base(reltype.Bool)}, nil
}

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Neq
	Lt
	Lte
	Gt
	Gte
	And
	Or
	Like
)

type Binary struct {
	Op          BinaryOp
	Left, Right Expr
	Typ         reltype.Tag
}

func (b Binary) Tag() reltype.Tag { return b.Typ }
func (Binary) exprNode()          {}

func arithmetic(op BinaryOp, l, r Expr) (Expr, error) {
	if !l.Tag().SupportsArithmetic() || !r.Tag().SupportsArithmetic() {
		return nil, relerr.New(relerr.TypeMismatch, "arithmetic operator requires Double operands, got %s and %s", l.Tag(), r.Tag())
	}
	return Binary{Op: op, Left: l, Right: r, Typ: reltype.Base(reltype.Double)}, nil
}

// AddE, SubE, MulE, DivE, ModE build the five arithmetic operators.
// The "E" suffix avoids colliding with the BinaryOp constants above
// (Add, Sub, ...), which callers rarely need directly but which
// pkg/relrender switches on when rendering.
func AddE(l, r Expr) (Expr, error) { return arithmetic(Add, l, r) }
func SubE(l, r Expr) (Expr, error) { return arithmetic(Sub, l, r) }
func MulE(l, r Expr) (Expr, error) { return arithmetic(Mul, l, r) }
func DivE(l, r Expr) (Expr, error) { return arithmetic(Div, l, r) }
func ModE(l, r Expr) (Expr, error) { return arithmetic(Mod, l, r) }

func comparison(op BinaryOp, l, r Expr) (Expr, error) {
	lt, rt := l.Tag(), r.Tag()
	if !lt.Unwrap().Equal(rt.Unwrap()) {
		return nil, relerr.New(relerr.TypeMismatch, "comparison operands must share a type, got %s and %s", lt, rt)
	}
	return Binary{Op: op, Left: l, Right: r, Typ: reltype.Base(reltype.Bool)}, nil
}

func EqE(l, r Expr) (Expr, error)  { return comparison(Eq, l, r) }
func NeqE(l, r Expr) (Expr, error) { return comparison(Neq, l, r) }
func LtE(l, r Expr) (Expr, error)  { return comparison(Lt, l, r) }
func LteE(l, r Expr) (Expr, error) { return comparison(Lte, l, r) }
func GtE(l, r Expr) (Expr, error)  { return comparison(Gt, l, r) }
func GteE(l, r Expr) (Expr, error) { return comparison(Gte, l, r) }

func logical(op BinaryOp, l, r Expr) (Expr, error) {
	if !l.Tag().Unwrap().Equal(reltype.Base(reltype.Bool)) || !r.Tag().Unwrap().Equal(reltype.Base(reltype.Bool)) {
		return nil, relerr.New(relerr.TypeMismatch, "logical operator requires Boolean operands, got %s and %s", l.Tag(), r.Tag())
	}
	return Binary{Op: op, Left: l, Right: r, Typ: reltype.Base(reltype.Bool)}, nil
}

func AndE(l, r Expr) (Expr, error) { return logical(And, l, r) }
func OrE(l, r Expr) (Expr, error)  { return logical(Or, l, r) }

// LikeE builds a LIKE comparison; both operands must be String.
func LikeE(l, r Expr) (Expr, error) {
	if !l.Tag().Unwrap().Equal(reltype.Base(reltype.String)) || !r.Tag().Unwrap().Equal(reltype.Base(reltype.String)) {
		return nil, relerr.New(relerr.TypeMismatch, "LIKE requires String operands, got %s and %s", l.Tag(), r.Tag())
	}
	return Binary{Op: Like, Left: l, Right: r, Typ: reltype.Base(reltype.Bool)}, nil
}

// InList is "e IN (v1, v2, ...)". Every value must share
// e's type. When the operand or any value is Nullable the result is
// Nullable(Bool), not Bool: NULL IN (...) is SQL's unknown, never a
// plain false.
type InList struct {
	Operand Expr
	Values  []Expr
	Typ     reltype.Tag
}

func (l InList) Tag() reltype.Tag { return l.Typ }
func (InList) exprNode()          {}

func In(e Expr, values ...Expr) (Expr, error) {
	if len(values) == 0 {
		return nil, relerr.New(relerr.ArityMismatch, "IN requires at least one value")
	}
	typ := reltype.Base(reltype.Bool)
	if e.Tag().IsNullable() {
		typ = reltype.Nullable(typ)
	}
	for _, v := range values {
		if !v.Tag().Unwrap().Equal(e.Tag().Unwrap()) {
			return nil, relerr.New(relerr.TypeMismatch, "IN value type %s does not match operand type %s", v.Tag(), e.Tag())
		}
		if v.Tag().IsNullable() {
			typ = reltype.Nullable(typ)
		}
	}
	return InList{Operand: e, Values: values, Typ: typ}, nil
}

// Subquery is implemented by pkg/relquery.Read so relexpr can express
// "e IN (subquery)" without importing relquery (which itself imports
// relexpr for its selection and predicate expressions).
type Subquery interface {
	SelectionTags() []reltype.Tag
}

// InSubquery is "e IN (SELECT ...)"; the subquery's selection must be
// exactly one column of e's type. As with InList, a
// Nullable operand or subquery column makes the result Nullable(Bool).
type InSubquery struct {
	Operand Expr
	Sub     Subquery
	Typ     reltype.Tag
}

func (s InSubquery) Tag() reltype.Tag { return s.Typ }
func (InSubquery) exprNode()          {}

func InSub(e Expr, sub Subquery) (Expr, error) {
	tags := sub.SelectionTags()
	if len(tags) != 1 {
		return nil, relerr.New(relerr.ArityMismatch, "IN (subquery) requires a single-column selection, got %d columns", len(tags))
	}
	if !tags[0].Unwrap().Equal(e.Tag().Unwrap()) {
		return nil, relerr.New(relerr.TypeMismatch, "IN (subquery) column type %s does not match operand type %s", tags[0], e.Tag())
	}
	typ := reltype.Base(reltype.Bool)
	if e.Tag().IsNullable() || tags[0].IsNullable() {
		typ = reltype.Nullable(typ)
	}
	return InSubquery{Operand: e, Sub: sub, Typ: typ}, nil
}

// Direction is an ORDER BY key's sort direction.
type Direction int

const (
	AscDir Direction = iota
	DescDir
)

// OrderKey pairs an expression with a direction and, optionally, a
// NULLS FIRST/LAST placement.
type OrderKey struct {
	Expr          Expr
	Direction     Direction
	NullsOrdering NullsOrdering
}

type NullsOrdering int

const (
	NullsDefault NullsOrdering = iota
	NullsFirst
	NullsLast
)

func Asc(e Expr) OrderKey  { return OrderKey{Expr: e, Direction: AscDir} }
func Desc(e Expr) OrderKey { return OrderKey{Expr: e, Direction: DescDir} }

// WithNulls returns a copy of k with its NULLS ordering set.
func (k OrderKey) WithNulls(n NullsOrdering) OrderKey {
	k.NullsOrdering = n
	return k
}
