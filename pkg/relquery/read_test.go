package relquery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

func TestBuildRequiresFromSource(t *testing.T) {
	sel, err := NewSelection(relexpr.Lit("x", reltype.Base(reltype.String)))
	require.NoError(t, err)
	_, err = Select(sel).Build()
	require.Error(t, err)
}

func TestBuildRejectsHavingWithoutGroupBy(t *testing.T) {
	users := testUsers(t)
	first, err := users.ColByName("first_name")
	require.NoError(t, err)
	sel, err := NewSelection(first)
	require.NoError(t, err)

	pred, err := relexpr.EqE(first, relexpr.Lit("x", reltype.Base(reltype.String)))
	require.NoError(t, err)

	_, err = Select(sel).From(users).Having(pred).Build()
	require.Error(t, err)
}

func TestBuildRejectsNegativeLimitAndOffset(t *testing.T) {
	users := testUsers(t)
	first, err := users.ColByName("first_name")
	require.NoError(t, err)
	sel, err := NewSelection(first)
	require.NoError(t, err)

	_, err = Select(sel).From(users).Limit(-1).Build()
	require.Error(t, err)

	_, err = Select(sel).From(users).Offset(-1).Build()
	require.Error(t, err)
}

func TestGroupByLegalityRejectsUngroupedNonAggregatedColumn(t *testing.T) {
	users := testUsers(t)
	id, err := users.ColByName("usr_id")
	require.NoError(t, err)
	first, err := users.ColByName("first_name")
	require.NoError(t, err)

	countAll := relexpr.CountAll()
	sel, err := NewSelection(first, countAll)
	require.NoError(t, err)

	_, err = Select(sel).From(users).GroupBy(id).Build()
	require.Error(t, err, "first_name is neither grouped nor aggregated")
}

func TestGroupByLegalityAcceptsGroupedAndAggregatedColumns(t *testing.T) {
	users := testUsers(t)
	id, err := users.ColByName("usr_id")
	require.NoError(t, err)
	first, err := users.ColByName("first_name")
	require.NoError(t, err)

	countAll := relexpr.CountAll()
	sel, err := NewSelection(id, first, countAll)
	require.NoError(t, err)

	_, err = Select(sel).From(users).GroupBy(id, first).Build()
	require.NoError(t, err)
}

func TestGroupByKeyMustBeColumnReference(t *testing.T) {
	users := testUsers(t)
	first, err := users.ColByName("first_name")
	require.NoError(t, err)
	sel, err := NewSelection(first)
	require.NoError(t, err)

	_, err = Select(sel).From(users).GroupBy(relexpr.Lit("x", reltype.Base(reltype.String))).Build()
	require.Error(t, err)
}

func TestUnionRequiresMatchingRowShape(t *testing.T) {
	users := testUsers(t)
	first, err := users.ColByName("first_name")
	require.NoError(t, err)
	id, err := users.ColByName("usr_id")
	require.NoError(t, err)

	selA, err := NewSelection(first)
	require.NoError(t, err)
	selB, err := NewSelection(id)
	require.NoError(t, err)

	left, err := Select(selA).From(users).Build()
	require.NoError(t, err)
	right, err := Select(selB).From(users).Build()
	require.NoError(t, err)

	_, err = Union(left, right, false)
	require.Error(t, err)

	right2, err := Select(selA).From(users).Build()
	require.NoError(t, err)
	union, err := Union(left, right2, true)
	require.NoError(t, err)
	require.True(t, union.IsUnion())
}

func TestLiteralRowsRequiresConsistentShape(t *testing.T) {
	strTag := reltype.Base(reltype.String)
	intTag := reltype.Base(reltype.Int)

	_, err := LiteralRows([][]relexpr.Expr{
		{relexpr.Lit("a", strTag)},
		{relexpr.Lit(int32(1), intTag)},
	})
	require.Error(t, err)

	ok, err := LiteralRows([][]relexpr.Expr{
		{relexpr.Lit("a", strTag)},
		{relexpr.Lit("b", strTag)},
	})
	require.NoError(t, err)
	require.True(t, ok.IsLiteral())
}

func TestLiteralRowsRejectsEmpty(t *testing.T) {
	_, err := LiteralRows(nil)
	require.Error(t, err)
}
