package relrender

import (
	"fmt"

	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relquery"
	"github.com/relq/relq/pkg/relschema"
)

// assignAliases makes self-joins renderable by auto-assigning aliases
// to repeated relation names: the first occurrence of each relation name
// keeps its bare name, every later occurrence of the same name gets a
// numbered suffix, in the order table occurrences are first reached by
// TableSource.Tables().
func assignAliases(src relquery.TableSource) map[*relexpr.TableRef]string {
	assigned := map[*relexpr.TableRef]string{}
	seen := map[string]int{}
	for _, ref := range src.Tables() {
		if _, ok := assigned[ref]; ok {
			continue
		}
		seen[ref.Name]++
		if seen[ref.Name] == 1 {
			assigned[ref] = ref.Name
		} else {
			assigned[ref] = fmt.Sprintf("%s_%d", ref.Name, seen[ref.Name])
		}
	}
	return assigned
}

var joinKeyword = map[relquery.JoinKind]string{
	relquery.Inner:      "INNER",
	relquery.LeftOuter:  "LEFT OUTER",
	relquery.RightOuter: "RIGHT OUTER",
	relquery.FullOuter:  "FULL OUTER",
}

// renderSource renders one table source into FROM-clause text,
// recursing through the join tree: "<left> <KIND> JOIN <right> ON
// <pred>", with nested joins rendered in place.
func (c ctx) renderSource(src relquery.TableSource) (string, error) {
	switch n := src.(type) {
	case relschema.Table:
		text := c.d.QuoteIdent(n.Name())
		if alias := c.aliasOf(n.Ref()); alias != n.Name() {
			text += " AS " + c.d.QuoteIdent(alias)
		}
		return text, nil
	case relquery.Join:
		left, err := c.renderSource(n.Left)
		if err != nil {
			return "", err
		}
		right, err := c.renderSource(n.Right)
		if err != nil {
			return "", err
		}
		on, err := c.renderExpr(n.On, 0, false)
		if err != nil {
			return "", err
		}
		return left + " " + joinKeyword[n.Kind] + " JOIN " + right + " ON " + on, nil
	default:
		return "", relerr.New(relerr.UnsupportedForDialect, "no renderer registered for table source %T", src)
	}
}
