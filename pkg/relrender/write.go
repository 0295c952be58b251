package relrender

import (
	"strings"

	"github.com/relq/relq/pkg/dialect"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relquery"
)

// RenderDelete renders "DELETE FROM T WHERE ...".
func RenderDelete(del *relquery.Delete, d dialect.Dialect) (string, error) {
	c := ctx{d: d, aliases: map[*relexpr.TableRef]string{}}
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(d.QuoteIdent(del.Table().Name()))
	if where := del.Where(); where != nil {
		text, err := c.renderExpr(where, 0, false)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(text)
	}
	return b.String(), nil
}

// RenderUpdate renders "UPDATE T SET c1 = e1, c2 = e2 WHERE ...".
func RenderUpdate(u *relquery.Update, d dialect.Dialect) (string, error) {
	c := ctx{d: d, aliases: map[*relexpr.TableRef]string{}}
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(d.QuoteIdent(u.Table().Name()))
	b.WriteString(" SET ")

	assignments := make([]string, len(u.Assignments()))
	for i, a := range u.Assignments() {
		text, err := c.renderExpr(a.Value, 0, false)
		if err != nil {
			return "", err
		}
		assignments[i] = d.QuoteIdent(a.Column.Column) + " = " + text
	}
	b.WriteString(strings.Join(assignments, ", "))

	if where := u.Where(); where != nil {
		text, err := c.renderExpr(where, 0, false)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(text)
	}
	return b.String(), nil
}

// RenderInsert renders "INSERT INTO T (c*) VALUES ..." or "INSERT INTO
// T (c*) <select-text>" depending on whether the source is a literal
// row set or a Read.
func RenderInsert(i *relquery.Insert, d dialect.Dialect) (string, error) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(d.QuoteIdent(i.Table().Name()))
	b.WriteString(" (")

	names := make([]string, len(i.Columns()))
	for idx, col := range i.Columns() {
		names[idx] = d.QuoteIdent(col.Column)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(") ")

	sourceText, err := renderReadBody(i.Source(), d)
	if err != nil {
		return "", err
	}
	b.WriteString(sourceText)
	return b.String(), nil
}
