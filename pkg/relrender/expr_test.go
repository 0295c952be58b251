package relrender

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/pkg/dialect/ansi"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

func TestRenderParenthesizesLowerPrecedenceOperand(t *testing.T) {
	c := ctx{d: ansi.Dialect(), aliases: map[*relexpr.TableRef]string{}}

	sum, err := relexpr.AddE(litD(1), litD(2))
	require.NoError(t, err)
	product, err := relexpr.MulE(sum, litD(3))
	require.NoError(t, err)

	sql, err := c.renderExpr(product, 0, false)
	require.NoError(t, err)
	require.Equal(t, "(1 + 2) * 3", sql)
}

func TestRenderDoesNotParenthesizeSamePrecedenceLeftAssociative(t *testing.T) {
	c := ctx{d: ansi.Dialect(), aliases: map[*relexpr.TableRef]string{}}

	left, err := relexpr.SubE(litD(1), litD(2))
	require.NoError(t, err)
	expr, err := relexpr.AddE(left, litD(3))
	require.NoError(t, err)

	sql, err := c.renderExpr(expr, 0, false)
	require.NoError(t, err)
	require.Equal(t, "1 - 2 + 3", sql)
}

func litD(v float64) relexpr.Expr { return relexpr.Lit(v, reltype.Base(reltype.Double)) }
