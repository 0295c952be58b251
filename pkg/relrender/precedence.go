// Package relrender implements the pure renderer:
// render(tree, dialect) -> text. It walks the trees built by
// pkg/relquery, dispatching identifier quoting, literal formatting,
// and function naming to the supplied pkg/dialect.Dialect, and never
// inspects the dialect beyond that hook surface.
package relrender

import "github.com/relq/relq/pkg/relexpr"

// precedence levels, low to high; used to decide when a child
// expression needs parentheses around it.
const (
	precOr = iota + 1
	precAnd
	precNot
	precComparison // =, <>, <, <=, >, >=, LIKE, IN, IS [NOT] NULL
	precAdditive   // +, -
	precMultiplicative
	precUnaryMinus
	precPrimary // literal, column ref, function call, CASE, aggregation
)

func binaryPrecedence(op relexpr.BinaryOp) int {
	switch op {
	case relexpr.Or:
		return precOr
	case relexpr.And:
		return precAnd
	case relexpr.Add, relexpr.Sub:
		return precAdditive
	case relexpr.Mul, relexpr.Div, relexpr.Mod:
		return precMultiplicative
	default: // Eq, Neq, Lt, Lte, Gt, Gte, Like
		return precComparison
	}
}

func exprPrecedence(e relexpr.Expr) int {
	switch n := e.(type) {
	case relexpr.Binary:
		return binaryPrecedence(n.Op)
	case relexpr.Unary:
		switch n.Op {
		case relexpr.OpNot:
			return precNot
		case relexpr.OpNeg:
			return precUnaryMinus
		default: // OpIsNull, OpIsNotNull
			return precComparison
		}
	case relexpr.InList, relexpr.InSubquery:
		return precComparison
	case relexpr.Aliased:
		return exprPrecedence(n.Inner)
	case relexpr.Lifted:
		return exprPrecedence(n.Inner)
	default:
		return precPrimary
	}
}
