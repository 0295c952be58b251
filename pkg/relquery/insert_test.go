package relquery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relschema"
	"github.com/relq/relq/pkg/reltype"
)

func TestInsertIntoValidatesArityAndType(t *testing.T) {
	users := testUsers(t)

	strTag := reltype.Base(reltype.String)
	intTag := reltype.Base(reltype.Int)

	source, err := LiteralRows([][]relexpr.Expr{
		{relexpr.Lit(int32(1), intTag), relexpr.Lit("Ada", strTag)},
	})
	require.NoError(t, err)

	insert, err := InsertInto(users, []string{"usr_id", "first_name"}, source)
	require.NoError(t, err)
	require.Len(t, insert.Columns(), 2)
}

func TestInsertIntoRejectsArityMismatch(t *testing.T) {
	users := testUsers(t)
	strTag := reltype.Base(reltype.String)

	source, err := LiteralRows([][]relexpr.Expr{
		{relexpr.Lit("Ada", strTag)},
	})
	require.NoError(t, err)

	_, err = InsertInto(users, []string{"usr_id", "first_name"}, source)
	require.Error(t, err)
}

func TestInsertIntoRejectsTypeMismatch(t *testing.T) {
	users := testUsers(t)
	strTag := reltype.Base(reltype.String)

	source, err := LiteralRows([][]relexpr.Expr{
		{relexpr.Lit("not an int", strTag), relexpr.Lit("Ada", strTag)},
	})
	require.NoError(t, err)

	_, err = InsertInto(users, []string{"usr_id", "first_name"}, source)
	require.Error(t, err)
}

func TestInsertIntoAllowsNullableUpcastButNotDowncast(t *testing.T) {
	cols, err := relschema.Empty().Add("nickname", reltype.Nullable(reltype.Base(reltype.String)))
	require.NoError(t, err)
	people := cols.Table("people")

	strTag := reltype.Base(reltype.String)
	source, err := LiteralRows([][]relexpr.Expr{{relexpr.Lit("Ada", strTag)}})
	require.NoError(t, err)

	_, err = InsertInto(people, []string{"nickname"}, source)
	require.NoError(t, err, "a non-Nullable String source value upcasts into a Nullable(String) column")

	nullableSource, err := LiteralRows([][]relexpr.Expr{{relexpr.Lit(nil, reltype.Nullable(strTag))}})
	require.NoError(t, err)

	cols2, err := relschema.Empty().Add("first_name", strTag)
	require.NoError(t, err)
	users2 := cols2.Table("users")
	_, err = InsertInto(users2, []string{"first_name"}, nullableSource)
	require.Error(t, err, "a Nullable(String) source value cannot downcast into a non-Nullable column")
}
