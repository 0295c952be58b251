package relquery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relschema"
	"github.com/relq/relq/pkg/reltype"
)

func testUsers(t *testing.T) relschema.Table {
	t.Helper()
	cols, err := relschema.Empty().Add("usr_id", reltype.Base(reltype.Int))
	require.NoError(t, err)
	cols, err = cols.Add("first_name", reltype.Base(reltype.String))
	require.NoError(t, err)
	return cols.Table("users")
}

func testOrders(t *testing.T) relschema.Table {
	t.Helper()
	cols, err := relschema.Empty().Add("usr_id", reltype.Base(reltype.Int))
	require.NoError(t, err)
	cols, err = cols.Add("order_date", reltype.Base(reltype.LocalDate))
	require.NoError(t, err)
	return cols.Table("orders")
}

func joinOn(t *testing.T, users, orders relschema.Table) relexpr.Expr {
	t.Helper()
	u, err := users.ColByName("usr_id")
	require.NoError(t, err)
	o, err := orders.ColByName("usr_id")
	require.NoError(t, err)
	on, err := relexpr.EqE(u, o)
	require.NoError(t, err)
	return on
}

func TestNewJoinRejectsNonBooleanPredicate(t *testing.T) {
	users := testUsers(t)
	orders := testOrders(t)
	name, err := users.ColByName("first_name")
	require.NoError(t, err)

	_, err = InnerJoin(users, orders, name)
	require.Error(t, err)
}

func TestLeftOuterJoinLiftsOnlyWeakSideColumns(t *testing.T) {
	users := testUsers(t)
	orders := testOrders(t)
	join, err := LeftOuterJoin(users, orders, joinOn(t, users, orders))
	require.NoError(t, err)

	userFirst, err := users.ColByName("first_name")
	require.NoError(t, err)
	orderDate, err := orders.ColByName("order_date")
	require.NoError(t, err)

	sel, err := NewSelection(userFirst, orderDate)
	require.NoError(t, err)
	read, err := Select(sel).From(join).Build()
	require.NoError(t, err)

	require.False(t, read.Selection().Exprs[0].Tag().IsNullable(), "left side of a LEFT OUTER JOIN keeps its base type")
	require.True(t, read.Selection().Exprs[1].Tag().IsNullable(), "right side of a LEFT OUTER JOIN is lifted to Nullable")
}

func TestFullOuterJoinLiftsBothSides(t *testing.T) {
	users := testUsers(t)
	orders := testOrders(t)
	join, err := FullOuterJoin(users, orders, joinOn(t, users, orders))
	require.NoError(t, err)

	userFirst, err := users.ColByName("first_name")
	require.NoError(t, err)
	orderDate, err := orders.ColByName("order_date")
	require.NoError(t, err)

	sel, err := NewSelection(userFirst, orderDate)
	require.NoError(t, err)
	read, err := Select(sel).From(join).Build()
	require.NoError(t, err)

	require.True(t, read.Selection().Exprs[0].Tag().IsNullable())
	require.True(t, read.Selection().Exprs[1].Tag().IsNullable())
}

func TestSelfJoinKeepsDistinctTableIdentity(t *testing.T) {
	cols, err := relschema.Empty().Add("id", reltype.Base(reltype.Int))
	require.NoError(t, err)
	cols, err = cols.Add("manager_id", reltype.Base(reltype.Int))
	require.NoError(t, err)
	employees := cols.Table("employees")
	employeesAgain := cols.Table("employees")

	managerID, err := employees.ColByName("manager_id")
	require.NoError(t, err)
	id, err := employeesAgain.ColByName("id")
	require.NoError(t, err)
	on, err := relexpr.EqE(managerID, id)
	require.NoError(t, err)

	join, err := InnerJoin(employees, employeesAgain, on)
	require.NoError(t, err)

	tables := join.Tables()
	require.Len(t, tables, 2)
	require.NotSame(t, tables[0], tables[1])
}

func TestColumnScopeViolationRejectsUnrelatedTable(t *testing.T) {
	users := testUsers(t)
	orders := testOrders(t)
	orderDate, err := orders.ColByName("order_date")
	require.NoError(t, err)
	userFirst, err := users.ColByName("first_name")
	require.NoError(t, err)

	sel, err := NewSelection(userFirst, orderDate)
	require.NoError(t, err)

	_, err = Select(sel).From(users).Build()
	require.Error(t, err, "orders.order_date is out of scope when FROM is users alone")
}
