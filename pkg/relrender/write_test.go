package relrender

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/internal/demoschema"
	"github.com/relq/relq/pkg/dialect/ansi"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relquery"
	"github.com/relq/relq/pkg/reltype"
)

func TestRenderDeleteWithWhere(t *testing.T) {
	del, err := demoschema.DeleteTerrence()
	require.NoError(t, err)

	sql, err := RenderDelete(del, ansi.Dialect())
	require.NoError(t, err)
	require.Equal(t, `DELETE FROM users WHERE users.first_name = 'Terrence'`, sql)
}

func TestRenderDeleteWithoutWhere(t *testing.T) {
	del, err := relquery.DeleteFrom(demoschema.Users, nil)
	require.NoError(t, err)

	sql, err := RenderDelete(del, ansi.Dialect())
	require.NoError(t, err)
	require.Equal(t, "DELETE FROM users", sql)
}

func TestRenderUpdateJoinsAssignmentsWithCommas(t *testing.T) {
	id, err := demoschema.Users.ColByName("usr_id")
	require.NoError(t, err)
	where, err := relexpr.EqE(id, relexpr.Lit(int32(1), reltype.Base(reltype.Int)))
	require.NoError(t, err)

	update, err := relquery.UpdateTable(demoschema.Users).
		Set("first_name", relexpr.Lit("Ada", reltype.Base(reltype.String))).
		Set("last_name", relexpr.Lit("Lovelace", reltype.Base(reltype.String))).
		Where(where).
		Build()
	require.NoError(t, err)

	sql, err := RenderUpdate(update, ansi.Dialect())
	require.NoError(t, err)
	require.Equal(t, `UPDATE users SET first_name = 'Ada', last_name = 'Lovelace' WHERE users.usr_id = 1`, sql)
}

func TestRenderInsertFromLiteralRows(t *testing.T) {
	intTag := reltype.Base(reltype.Int)
	strTag := reltype.Base(reltype.String)
	source, err := relquery.LiteralRows([][]relexpr.Expr{
		{relexpr.Lit(int32(1), intTag), relexpr.Lit("Ada", strTag)},
	})
	require.NoError(t, err)

	insert, err := relquery.InsertInto(demoschema.Users, []string{"usr_id", "first_name"}, source)
	require.NoError(t, err)

	sql, err := RenderInsert(insert, ansi.Dialect())
	require.NoError(t, err)
	require.Equal(t, `INSERT INTO users (usr_id, first_name) VALUES (1, 'Ada')`, sql)
}
