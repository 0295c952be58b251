// Package relquery implements the selection/table-source algebra and
// the four statement trees: Read with its staged
// builder and refinements, and Insert/Update/Delete. It sits above
// pkg/relschema and pkg/relexpr and is in turn consumed by
// pkg/relrender.
package relquery

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

// Selection is the ordered, heterogeneous expression list projected by
// a Read. Its row shape is the right-nested tuple of its
// expressions' types; this implementation realizes that shape at
// runtime as an ordered []reltype.Tag rather than a statically sized
// tuple type: Go generics can express a fixed arity but not an
// arbitrary-length heterogeneous tuple without code generation, and
// this module favors one general Selection over generated
// Selection2/Selection3/... variants.
type Selection struct {
	Exprs []relexpr.Expr
}

// NewSelection builds a Selection. An empty selection is rejected at
// construction.
func NewSelection(exprs ...relexpr.Expr) (Selection, error) {
	if len(exprs) == 0 {
		return Selection{}, relerr.New(relerr.InvalidConstruction, "selection must contain at least one expression")
	}
	cp := make([]relexpr.Expr, len(exprs))
	copy(cp, exprs)
	return Selection{Exprs: cp}, nil
}

// Tags returns the selection's row shape as an ordered tag list.
func (s Selection) Tags() []reltype.Tag {
	tags := make([]reltype.Tag, len(s.Exprs))
	for i, e := range s.Exprs {
		tags[i] = e.Tag()
	}
	return tags
}

// SelectionTags satisfies relexpr.Subquery for a bare Selection. Read
// has its own SelectionTags (read.go), which is what lets a Read be
// the right-hand side of IN (subquery) without living in pkg/relexpr.
func (s Selection) SelectionTags() []reltype.Tag {
	return s.Tags()
}

// SameShape reports alias-insensitive shape equality: two selections project
// equal row shapes when their expressions, compared pairwise after
// stripping any top-level Aliased wrapper, carry equal tags in the
// same order.
func SameShape(a, b Selection) bool {
	if len(a.Exprs) != len(b.Exprs) {
		return false
	}
	for i := range a.Exprs {
		if !relexpr.SameShape(a.Exprs[i], b.Exprs[i]) {
			return false
		}
	}
	return true
}

// columnsOf collects every ColumnRef reachable in the selection's
// expressions, used by the selection's scope-legality check in
// read.go.
func (s Selection) columnsOf() []relexpr.ColumnRef {
	var out []relexpr.ColumnRef
	for _, e := range s.Exprs {
		out = append(out, relexpr.ColumnsOf(e)...)
	}
	return out
}
