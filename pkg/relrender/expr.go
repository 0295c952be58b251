package relrender

import (
	"strings"

	"github.com/relq/relq/pkg/dialect"
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relquery"
)

// ctx threads the dialect and the self-join alias assignment through
// one render call; it carries no other mutable state, keeping
// rendering pure.
type ctx struct {
	d       dialect.Dialect
	aliases map[*relexpr.TableRef]string
}

func (c ctx) aliasOf(ref *relexpr.TableRef) string {
	if a, ok := c.aliases[ref]; ok {
		return a
	}
	return ref.Name
}

// renderExpr renders e, parenthesizing it if its precedence is lower
// than minPrec (or equal, when onRight marks it as the
// right-hand/non-associative operand), so re-parsing the text under
// standard precedence reproduces the original tree.
func (c ctx) renderExpr(e relexpr.Expr, minPrec int, onRight bool) (string, error) {
	text, prec, err := c.renderExprPrec(e)
	if err != nil {
		return "", err
	}
	if prec < minPrec || (prec == minPrec && onRight) {
		return "(" + text + ")", nil
	}
	return text, nil
}

func (c ctx) renderExprPrec(e relexpr.Expr) (string, int, error) {
	prec := exprPrecedence(e)
	switch n := e.(type) {
	case relexpr.Literal:
		text, err := c.renderLiteral(n)
		return text, prec, err

	case relexpr.ColumnRef:
		return c.aliasOf(n.Table) + "." + c.d.QuoteIdent(n.Column), prec, nil

	case relexpr.Lifted:
		return c.renderExprPrec(n.Inner)

	case relexpr.Aliased:
		inner, err := c.renderExpr(n.Inner, 0, false)
		if err != nil {
			return "", 0, err
		}
		return inner + ` AS "` + strings.ReplaceAll(n.Label, `"`, `""`) + `"`, prec, nil

	case relexpr.Unary:
		return c.renderUnary(n)

	case relexpr.Binary:
		return c.renderBinary(n)

	case relexpr.FuncCall:
		return c.renderFuncCall(n)

	case relexpr.Aggregation:
		return c.renderAggregation(n)

	case relexpr.Case:
		text, err := c.renderCase(n)
		return text, prec, err

	case relexpr.InList:
		text, err := c.renderInList(n)
		return text, prec, err

	case relexpr.InSubquery:
		text, err := c.renderInSubquery(n)
		return text, prec, err

	default:
		return "", 0, relerr.New(relerr.UnsupportedForDialect, "no renderer registered for expression node %T", e)
	}
}

func (c ctx) renderLiteral(n relexpr.Literal) (string, error) {
	if n.Value == nil {
		return c.d.NullLiteral(), nil
	}
	tag := n.Typ.Unwrap()
	if tag.IsDialectSpecific() {
		name, feature := tag.Dialect()
		if name != c.d.Name || !c.d.SupportsFeature(feature) {
			return "", relerr.New(relerr.UnsupportedForDialect, "dialect %s cannot render %s", c.d.Name, tag)
		}
	}
	if tag.Equal(boolTag) {
		return c.d.BooleanLiteral(n.Value.(bool)), nil
	}
	if isTemporalTag(tag) {
		return c.d.TemporalLiteral(n.Value, n.Typ), nil
	}
	return c.d.RenderLiteral(n.Value, n.Typ), nil
}

func (c ctx) renderUnary(n relexpr.Unary) (string, int, error) {
	prec := exprPrecedence(n)
	switch n.Op {
	case relexpr.OpNot:
		operand, err := c.renderExpr(n.Operand, prec, false)
		if err != nil {
			return "", 0, err
		}
		return "NOT " + operand, prec, nil
	case relexpr.OpNeg:
		operand, err := c.renderExpr(n.Operand, prec, false)
		if err != nil {
			return "", 0, err
		}
		return "-" + operand, prec, nil
	case relexpr.OpIsNull:
		operand, err := c.renderExpr(n.Operand, precComparison, false)
		if err != nil {
			return "", 0, err
		}
		return operand + " IS NULL", prec, nil
	default: // OpIsNotNull
		operand, err := c.renderExpr(n.Operand, precComparison, false)
		if err != nil {
			return "", 0, err
		}
		return operand + " IS NOT NULL", prec, nil
	}
}

var binaryOpText = map[relexpr.BinaryOp]string{
	relexpr.Add: "+", relexpr.Sub: "-", relexpr.Mul: "*", relexpr.Div: "/", relexpr.Mod: "%",
	relexpr.Eq: "=", relexpr.Neq: "<>", relexpr.Lt: "<", relexpr.Lte: "<=",
	relexpr.Gt: ">", relexpr.Gte: ">=", relexpr.And: "AND", relexpr.Or: "OR", relexpr.Like: "LIKE",
}

func (c ctx) renderBinary(n relexpr.Binary) (string, int, error) {
	prec := binaryPrecedence(n.Op)
	left, err := c.renderExpr(n.Left, prec, false)
	if err != nil {
		return "", 0, err
	}
	right, err := c.renderExpr(n.Right, prec, true)
	if err != nil {
		return "", 0, err
	}
	return left + " " + binaryOpText[n.Op] + " " + right, prec, nil
}

func (c ctx) renderFuncCall(n relexpr.FuncCall) (string, int, error) {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		text, err := c.renderExpr(a, 0, false)
		if err != nil {
			return "", 0, err
		}
		args[i] = text
	}
	return c.d.RenderFunction(n.Name, args), precPrimary, nil
}

var aggFuncText = map[relexpr.AggFunc]string{
	relexpr.Sum: "SUM", relexpr.Avg: "AVG", relexpr.Count: "COUNT",
	relexpr.Min: "MIN", relexpr.Max: "MAX", relexpr.CountDistinct: "COUNT",
	relexpr.CountStar: "COUNT",
}

func (c ctx) renderAggregation(n relexpr.Aggregation) (string, int, error) {
	name := aggFuncText[n.Func]
	if n.Func == relexpr.CountStar {
		return "COUNT(*)", precPrimary, nil
	}
	operand, err := c.renderExpr(n.Operand, 0, false)
	if err != nil {
		return "", 0, err
	}
	if n.Func == relexpr.CountDistinct {
		return "COUNT(DISTINCT " + operand + ")", precPrimary, nil
	}
	return name + "(" + operand + ")", precPrimary, nil
}

func (c ctx) renderCase(n relexpr.Case) (string, error) {
	var b strings.Builder
	b.WriteString("CASE")
	for _, br := range n.Branches {
		pred, err := c.renderExpr(br.Predicate, 0, false)
		if err != nil {
			return "", err
		}
		val, err := c.renderExpr(br.Value, 0, false)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHEN ")
		b.WriteString(pred)
		b.WriteString(" THEN ")
		b.WriteString(val)
	}
	if n.Else != nil {
		elseText, err := c.renderExpr(n.Else, 0, false)
		if err != nil {
			return "", err
		}
		b.WriteString(" ELSE ")
		b.WriteString(elseText)
	}
	b.WriteString(" END")
	return b.String(), nil
}

func (c ctx) renderInList(n relexpr.InList) (string, error) {
	operand, err := c.renderExpr(n.Operand, precComparison, false)
	if err != nil {
		return "", err
	}
	values := make([]string, len(n.Values))
	for i, v := range n.Values {
		text, err := c.renderExpr(v, 0, false)
		if err != nil {
			return "", err
		}
		values[i] = text
	}
	return operand + " IN (" + strings.Join(values, ", ") + ")", nil
}

func (c ctx) renderInSubquery(n relexpr.InSubquery) (string, error) {
	operand, err := c.renderExpr(n.Operand, precComparison, false)
	if err != nil {
		return "", err
	}
	sub, ok := n.Sub.(*relquery.Read)
	if !ok {
		return "", relerr.New(relerr.UnsupportedForDialect, "IN (subquery) operand is not a renderable Read")
	}
	subText, err := renderReadBody(sub, c.d)
	if err != nil {
		return "", err
	}
	return operand + " IN (" + subText + ")", nil
}
