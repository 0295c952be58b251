// Package demoschema declares the users/orders/order_details demo
// schema and the end-to-end scenarios the CLI's render and run
// subcommands exercise, shared with the rendering and driver test
// suites.
package demoschema

import (
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relquery"
	"github.com/relq/relq/pkg/relschema"
	"github.com/relq/relq/pkg/reltype"
)

var (
	Users = relschema.Empty().
		MustAdd("usr_id", reltype.Base(reltype.Int)).
		MustAdd("dob", reltype.Base(reltype.LocalDate)).
		MustAdd("first_name", reltype.Base(reltype.String)).
		MustAdd("last_name", reltype.Base(reltype.String)).
		Table("users")

	Orders = relschema.Empty().
		MustAdd("order_id", reltype.Base(reltype.Int)).
		MustAdd("usr_id", reltype.Base(reltype.Int)).
		MustAdd("order_date", reltype.Base(reltype.LocalDate)).
		Table("orders")

	OrderDetails = relschema.Empty().
		MustAdd("order_id", reltype.Base(reltype.Int)).
		MustAdd("product_id", reltype.Base(reltype.Int)).
		MustAdd("quantity", reltype.Base(reltype.Double)).
		MustAdd("unit_price", reltype.Base(reltype.Double)).
		Table("order_details")
)

func col(t relschema.Table, name string) relexpr.ColumnRef {
	c, err := t.ColByName(name)
	if err != nil {
		panic(err)
	}
	return c
}

// NamesOnly builds S1: select(first_name ++ last_name).from(users).
func NamesOnly() (*relquery.Read, error) {
	sel, err := relquery.NewSelection(col(Users, "first_name"), col(Users, "last_name"))
	if err != nil {
		return nil, err
	}
	return relquery.Select(sel).From(Users).Build()
}

// AliasedNames builds S2: the same projection with selection aliases,
// which must compare equal to NamesOnly under relquery.SameShape.
func AliasedNames() (*relquery.Read, error) {
	sel, err := relquery.NewSelection(
		relexpr.As(col(Users, "first_name"), "first"),
		relexpr.As(col(Users, "last_name"), "last"),
	)
	if err != nil {
		return nil, err
	}
	return relquery.Select(sel).From(Users).Build()
}

// OrderedNames builds S3: ordered and limited.
func OrderedNames() (*relquery.Read, error) {
	sel, err := relquery.NewSelection(col(Users, "first_name"), col(Users, "last_name"))
	if err != nil {
		return nil, err
	}
	return relquery.Select(sel).
		From(Users).
		OrderBy(relexpr.Asc(col(Users, "last_name")), relexpr.Desc(col(Users, "first_name"))).
		Limit(2).
		Build()
}

// DeleteTerrence builds S4: deleteFrom(users).where(first_name = 'Terrence').
func DeleteTerrence() (*relquery.Delete, error) {
	eq, err := relexpr.EqE(col(Users, "first_name"), relexpr.Lit("Terrence", reltype.Base(reltype.String)))
	if err != nil {
		return nil, err
	}
	return relquery.DeleteFrom(Users, eq)
}

// DeleteByNameList builds S5: IN-list deletion.
func DeleteByNameList() (*relquery.Delete, error) {
	strTag := reltype.Base(reltype.String)
	in, err := relexpr.In(col(Users, "first_name"), relexpr.Lit("Fred", strTag), relexpr.Lit("Terrance", strTag))
	if err != nil {
		return nil, err
	}
	return relquery.DeleteFrom(Users, in)
}

// UsersWithOrders builds S6: a left outer join whose order_date
// projection must decode as Nullable.
func UsersWithOrders() (*relquery.Read, error) {
	on, err := relexpr.EqE(col(Orders, "usr_id"), col(Users, "usr_id"))
	if err != nil {
		return nil, err
	}
	join, err := relquery.LeftOuterJoin(Users, Orders, on)
	if err != nil {
		return nil, err
	}
	sel, err := relquery.NewSelection(col(Users, "first_name"), col(Users, "last_name"), col(Orders, "order_date"))
	if err != nil {
		return nil, err
	}
	return relquery.Select(sel).From(join).Build()
}

// SpendByUser builds S7: the grouped total-spend aggregate.
func SpendByUser() (*relquery.Read, error) {
	userOrders, err := relexpr.EqE(col(Users, "usr_id"), col(Orders, "usr_id"))
	if err != nil {
		return nil, err
	}
	inner, err := relquery.InnerJoin(Users, Orders, userOrders)
	if err != nil {
		return nil, err
	}
	orderLines, err := relexpr.EqE(col(Orders, "order_id"), col(OrderDetails, "order_id"))
	if err != nil {
		return nil, err
	}
	full, err := relquery.LeftOuterJoin(inner, OrderDetails, orderLines)
	if err != nil {
		return nil, err
	}

	lineTotal, err := relexpr.MulE(col(OrderDetails, "quantity"), col(OrderDetails, "unit_price"))
	if err != nil {
		return nil, err
	}
	totalSpend, err := relexpr.SumOf(lineTotal)
	if err != nil {
		return nil, err
	}

	sel, err := relquery.NewSelection(
		col(Users, "usr_id"),
		col(Users, "first_name"),
		col(Users, "last_name"),
		relexpr.As(totalSpend, "total_spend"),
	)
	if err != nil {
		return nil, err
	}

	return relquery.Select(sel).
		From(full).
		GroupBy(col(Users, "usr_id"), col(Users, "first_name"), col(Users, "last_name")).
		Build()
}

// Scenario names a built demo query, selected by the scenario
// arguments of the CLI's render and run subcommands.
type Scenario struct {
	Name  string
	Build func() (*relquery.Read, error)
}

var Scenarios = []Scenario{
	{"names", NamesOnly},
	{"aliased-names", AliasedNames},
	{"ordered-names", OrderedNames},
	{"users-with-orders", UsersWithOrders},
	{"spend-by-user", SpendByUser},
}
