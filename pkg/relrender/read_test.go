package relrender

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/internal/demoschema"
	"github.com/relq/relq/pkg/dialect/ansi"
	"github.com/relq/relq/pkg/dialect/postgres"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relquery"
	"github.com/relq/relq/pkg/relschema"
	"github.com/relq/relq/pkg/reltype"
)

func testEmployees(t *testing.T) relschema.Table {
	t.Helper()
	cols, err := relschema.Empty().Add("id", reltype.Base(reltype.Int))
	require.NoError(t, err)
	cols, err = cols.Add("manager_id", reltype.Base(reltype.Int))
	require.NoError(t, err)
	return cols.Table("employees")
}

func employeeManagerJoin(t *testing.T, employees, managers relschema.Table) relexpr.Expr {
	t.Helper()
	managerID, err := employees.ColByName("manager_id")
	require.NoError(t, err)
	id, err := managers.ColByName("id")
	require.NoError(t, err)
	on, err := relexpr.EqE(managerID, id)
	require.NoError(t, err)
	return on
}

func TestRenderNamesOnlyProjectsBothColumns(t *testing.T) {
	read, err := demoschema.NamesOnly()
	require.NoError(t, err)

	sql, err := Render(read, ansi.Dialect())
	require.NoError(t, err)
	require.Contains(t, sql, "SELECT")
	require.Contains(t, sql, "first_name")
	require.Contains(t, sql, "last_name")
	require.Contains(t, sql, "FROM")
	require.Contains(t, sql, "users")
}

func TestRenderAliasedNamesEmitsLabels(t *testing.T) {
	read, err := demoschema.AliasedNames()
	require.NoError(t, err)

	sql, err := Render(read, ansi.Dialect())
	require.NoError(t, err)
	require.Contains(t, sql, "AS")
	require.Contains(t, sql, "first")
	require.Contains(t, sql, "last")
}

func TestRenderOrderedNamesEmitsOrderByAndLimit(t *testing.T) {
	read, err := demoschema.OrderedNames()
	require.NoError(t, err)

	sql, err := Render(read, ansi.Dialect())
	require.NoError(t, err)
	require.Contains(t, sql, "ORDER BY")
	require.Contains(t, sql, "DESC")
	require.Contains(t, sql, "ASC")
	require.Contains(t, sql, "LIMIT 2")
}

func TestRenderUsersWithOrdersEmitsLeftOuterJoin(t *testing.T) {
	read, err := demoschema.UsersWithOrders()
	require.NoError(t, err)

	sql, err := Render(read, ansi.Dialect())
	require.NoError(t, err)
	require.Contains(t, sql, "LEFT OUTER JOIN")
	require.Contains(t, sql, "ON")
}

func TestRenderSpendByUserEmitsGroupByAndAggregate(t *testing.T) {
	read, err := demoschema.SpendByUser()
	require.NoError(t, err)

	sql, err := Render(read, ansi.Dialect())
	require.NoError(t, err)
	require.Contains(t, sql, "GROUP BY")
	require.Contains(t, sql, "SUM(")
	require.Contains(t, sql, "total_spend")
}

func TestRenderScenarioSQLText(t *testing.T) {
	cases := []struct {
		name  string
		build func() (*relquery.Read, error)
		want  string
	}{
		{
			"names", demoschema.NamesOnly,
			`SELECT users.first_name, users.last_name FROM users`,
		},
		{
			"aliased-names", demoschema.AliasedNames,
			`SELECT users.first_name AS "first", users.last_name AS "last" FROM users`,
		},
		{
			"ordered-names", demoschema.OrderedNames,
			`SELECT users.first_name, users.last_name FROM users ORDER BY users.last_name ASC, users.first_name DESC LIMIT 2`,
		},
		{
			"users-with-orders", demoschema.UsersWithOrders,
			`SELECT users.first_name, users.last_name, orders.order_date FROM users LEFT OUTER JOIN orders ON orders.usr_id = users.usr_id`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			read, err := tc.build()
			require.NoError(t, err)
			sql, err := Render(read, ansi.Dialect())
			require.NoError(t, err)
			require.Equal(t, tc.want, sql)
		})
	}
}

func TestRenderSelfJoinAssignsNumberedAlias(t *testing.T) {
	employees := testEmployees(t)
	managers := testEmployees(t)
	on := employeeManagerJoin(t, employees, managers)

	join, err := relquery.InnerJoin(employees, managers, on)
	require.NoError(t, err)

	id, err := employees.ColByName("id")
	require.NoError(t, err)
	sel, err := relquery.NewSelection(id)
	require.NoError(t, err)
	read, err := relquery.Select(sel).From(join).Build()
	require.NoError(t, err)

	sql, err := Render(read, ansi.Dialect())
	require.NoError(t, err)
	require.Contains(t, sql, "employees")
	require.Contains(t, sql, "employees_2")
}

func TestRenderIsDeterministic(t *testing.T) {
	read, err := demoschema.SpendByUser()
	require.NoError(t, err)

	first, err := Render(read, ansi.Dialect())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Render(read, ansi.Dialect())
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestAliasedSelectionSharesShapeWithUnaliased(t *testing.T) {
	plain, err := demoschema.NamesOnly()
	require.NoError(t, err)
	aliased, err := demoschema.AliasedNames()
	require.NoError(t, err)

	require.True(t, relquery.SameShape(plain.Selection(), aliased.Selection()),
		"aliases must not change a selection's row shape")

	plainSQL, err := Render(plain, ansi.Dialect())
	require.NoError(t, err)
	aliasedSQL, err := Render(aliased, ansi.Dialect())
	require.NoError(t, err)

	stripped := aliasedSQL
	stripped = strings.ReplaceAll(stripped, ` AS "first"`, "")
	stripped = strings.ReplaceAll(stripped, ` AS "last"`, "")
	require.Equal(t, plainSQL, stripped, "rendering must agree modulo alias text")
}

func TestRenderMatchesAcrossDialectsWithoutDivergentLiterals(t *testing.T) {
	read, err := demoschema.NamesOnly()
	require.NoError(t, err)

	ansiSQL, err := Render(read, ansi.Dialect())
	require.NoError(t, err)
	pgSQL, err := Render(read, postgres.Dialect())
	require.NoError(t, err)

	require.Equal(t, ansiSQL, pgSQL, "this query has no dialect-divergent literals, so both renderings must match")
}
