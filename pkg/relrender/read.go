package relrender

import (
	"strings"

	"github.com/relq/relq/pkg/dialect"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relquery"
)

// Render produces SQL text for a Read (Select/Union/Literal) against
// one dialect. It is pure: same tree, same dialect, same text.
func Render(r *relquery.Read, d dialect.Dialect) (string, error) {
	return renderReadBody(r, d)
}

// renderReadBody renders r without a trailing statement terminator; it
// is reused both as the top-level Render result and, by expr.go, as
// the text of an IN (subquery) operand.
func renderReadBody(r *relquery.Read, d dialect.Dialect) (string, error) {
	switch {
	case r.IsSelect():
		return renderSelect(r, d)
	case r.IsUnion():
		return renderUnion(r, d)
	default:
		return renderLiteralRows(r, d)
	}
}

func renderSelect(r *relquery.Read, d dialect.Dialect) (string, error) {
	c := ctx{d: d, aliases: assignAliases(r.Source())}

	exprs := make([]string, len(r.Selection().Exprs))
	for i, e := range r.Selection().Exprs {
		text, err := c.renderExpr(e, 0, false)
		if err != nil {
			return "", err
		}
		exprs[i] = text
	}

	source, err := c.renderSource(r.Source())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(exprs, ", "))
	b.WriteString(" FROM ")
	b.WriteString(source)

	if where := r.Where(); where != nil {
		text, err := c.renderExpr(where, 0, false)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE ")
		b.WriteString(text)
	}

	if keys := r.GroupBy(); len(keys) > 0 {
		cols := make([]string, len(keys))
		for i, k := range keys {
			text, _, err := c.renderExprPrec(k)
			if err != nil {
				return "", err
			}
			cols[i] = text
		}
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(cols, ", "))
	}

	if having := r.Having(); having != nil {
		text, err := c.renderExpr(having, 0, false)
		if err != nil {
			return "", err
		}
		b.WriteString(" HAVING ")
		b.WriteString(text)
	}

	if keys := r.OrderBy(); len(keys) > 0 {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i], err = c.renderOrderKey(k)
			if err != nil {
				return "", err
			}
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}

	if limitText := d.RenderLimit(r.Limit(), r.Offset()); limitText != "" {
		b.WriteString(" ")
		b.WriteString(limitText)
	}

	return b.String(), nil
}

func (c ctx) renderOrderKey(k relexpr.OrderKey) (string, error) {
	text, err := c.renderExpr(k.Expr, 0, false)
	if err != nil {
		return "", err
	}
	if k.Direction == relexpr.DescDir {
		text += " DESC"
	} else {
		text += " ASC"
	}
	switch k.NullsOrdering {
	case relexpr.NullsFirst:
		text += " NULLS FIRST"
	case relexpr.NullsLast:
		text += " NULLS LAST"
	}
	return text, nil
}

func renderUnion(r *relquery.Read, d dialect.Dialect) (string, error) {
	left, right, all := r.UnionOperands()
	leftText, err := renderReadBody(left, d)
	if err != nil {
		return "", err
	}
	rightText, err := renderReadBody(right, d)
	if err != nil {
		return "", err
	}
	op := "UNION"
	if all {
		op = "UNION ALL"
	}
	return leftText + " " + op + " " + rightText, nil
}

func renderLiteralRows(r *relquery.Read, d dialect.Dialect) (string, error) {
	c := ctx{d: d, aliases: map[*relexpr.TableRef]string{}}
	rows := make([]string, len(r.LiteralRows()))
	for i, row := range r.LiteralRows() {
		values := make([]string, len(row))
		for j, e := range row {
			text, err := c.renderExpr(e, 0, false)
			if err != nil {
				return "", err
			}
			values[j] = text
		}
		rows[i] = "(" + strings.Join(values, ", ") + ")"
	}
	return "VALUES " + strings.Join(rows, ", "), nil
}
