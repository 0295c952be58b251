package relschema

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/relexpr"
)

// Table is a column set
// bound to a relation name, exposing each column as a column-reference
// expression pre-qualified by the table's name.
//
// Two Table values produced from the same or different ColumnSets
// always carry distinct identity (Table.ref), even when they share a
// Name — this is what makes self joins well-formed: the join algebra
// and the renderer distinguish "users" from "users" by identity, and
// only assign the textual alias suffix ("T_2", ...) at render time.
type Table struct {
	ref     *relexpr.TableRef
	columns ColumnSet
	binding []relexpr.ColumnRef
	byName  map[string]int
}

// Table binds a column set to a relation name.
func (k ColumnSet) Table(name string) Table {
	ref := &relexpr.TableRef{Name: name}
	binding := make([]relexpr.ColumnRef, len(k.columns))
	byName := make(map[string]int, len(k.columns))
	for i, c := range k.columns {
		binding[i] = relexpr.NewColumnRef(ref, c.Name, c.Type)
		byName[c.Name] = i
	}
	return Table{ref: ref, columns: k, binding: binding, byName: byName}
}

// Name returns the table's declared relation name.
func (t Table) Name() string { return t.ref.Name }

// Ref returns the table's unique identity, used by the join algebra
// and renderer to distinguish repeated occurrences of one relation.
func (t Table) Ref() *relexpr.TableRef { return t.ref }

// Columns returns the underlying column set.
func (t Table) Columns() ColumnSet { return t.columns }

// Col returns the column-reference binding at ordinal i.
func (t Table) Col(i int) relexpr.ColumnRef { return t.binding[i] }

// ColByName looks up a binding by column name, returning a
// relerr.UnknownTableColumn error if name was not declared on this
// table. The "every ColumnRef refers to a table present in scope"
// invariant starts here, at the one place column lookups by name
// happen.
func (t Table) ColByName(name string) (relexpr.ColumnRef, error) {
	idx, ok := t.byName[name]
	if !ok {
		return relexpr.ColumnRef{}, relerr.New(relerr.UnknownTableColumn, "table %q has no column %q", t.Name(), name)
	}
	return t.binding[idx], nil
}

// Bindings returns every column-reference binding, in declared order —
// the shape mirrors Columns().
func (t Table) Bindings() []relexpr.ColumnRef {
	return t.binding
}

// Tables returns this table's single identity ref. It exists so Table
// satisfies pkg/relquery's TableSource interface directly — a bare
// Table is the base case of a table source.
func (t Table) Tables() []*relexpr.TableRef {
	return []*relexpr.TableRef{t.ref}
}
