package relexpr

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/reltype"
)

// AggFunc enumerates the aggregation functions.
type AggFunc int

const (
	Sum AggFunc = iota
	Avg
	Count
	Min
	Max
	CountDistinct
	CountStar
)

// Aggregation is an aggregation application. An
// Aggregation node is itself aggregated, and may be aliased like any
// other expression.
type Aggregation struct {
	Func    AggFunc
	Operand Expr // nil only for CountStar
	Typ     reltype.Tag
}

func (a Aggregation) Tag() reltype.Tag { return a.Typ }
func (Aggregation) exprNode()          {}

// SumOf requires a numeric operand and preserves its type.
func SumOf(e Expr) (Expr, error) {
	if !e.Tag().IsNumeric() {
		return nil, relerr.New(relerr.TypeMismatch, "SUM requires a numeric operand, got %s", e.Tag())
	}
	return Aggregation{Func: Sum, Operand: e, Typ: e.Tag()}, nil
}

// AvgOf requires a numeric operand and always returns Double.
func AvgOf(e Expr) (Expr, error) {
	if !e.Tag().IsNumeric() {
		return nil, relerr.New(relerr.TypeMismatch, "AVG requires a numeric operand, got %s", e.Tag())
	}
	return Aggregation{Func: Avg, Operand: e, Typ: reltype.Base(reltype.Double)}, nil
}

// CountOf(e) accepts any expression and returns Long.
func CountOf(e Expr) Expr {
	return Aggregation{Func: Count, Operand: e, Typ: reltype.Base(reltype.Long)}
}

// CountAll is COUNT(*); it returns 0 on empty input rather than NULL.
func CountAll() Expr {
	return Aggregation{Func: CountStar, Operand: nil, Typ: reltype.Base(reltype.Long)}
}

// CountDistinctOf is COUNT(DISTINCT e), returning Long.
func CountDistinctOf(e Expr) Expr {
	return Aggregation{Func: CountDistinct, Operand: e, Typ: reltype.Base(reltype.Long)}
}

// MinOf/MaxOf preserve the operand's type.
func MinOf(e Expr) Expr {
	return Aggregation{Func: Min, Operand: e, Typ: e.Tag()}
}

func MaxOf(e Expr) Expr {
	return Aggregation{Func: Max, Operand: e, Typ: e.Tag()}
}
