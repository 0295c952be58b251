// Package relschema implements the column-set/table algebra: an
// append-only builder for ordered, heterogeneous column
// lists, and the ".table(name)" operation that binds a column set to a
// named relation and hands back pre-qualified column references.
package relschema

import (
	"github.com/relq/relq/pkg/relerr"
	"github.com/relq/relq/pkg/reltype"
)

// Column is (name, type) plus the ordinal position fixed at creation
// time, its sole stable identity.
type Column struct {
	Name string
	Type reltype.Tag
	ord  int
}

// Ord returns the column's fixed ordinal position within its ColumnSet.
func (c Column) Ord() int { return c.ord }

// ColumnSet is an ordered, heterogeneous sequence of columns, built by
// repeated Add calls starting from Empty(). It is immutable: Add
// returns a new ColumnSet rather than mutating the receiver.
type ColumnSet struct {
	columns []Column
	names   map[string]struct{}
}

// Empty returns the empty column set, the base case of the
// right-append composition.
func Empty() ColumnSet {
	return ColumnSet{names: map[string]struct{}{}}
}

// Col is a convenience constructor pairing a name with a type tag, for
// use with ColumnSet.Add.
func Col(name string, t reltype.Tag) (string, reltype.Tag) {
	return name, t
}

// Add appends a column to the set. Duplicate column names within one
// set are rejected.
func (k ColumnSet) Add(name string, t reltype.Tag) (ColumnSet, error) {
	if _, dup := k.names[name]; dup {
		return ColumnSet{}, relerr.New(relerr.DuplicateColumn, "column %q already declared in this column set", name)
	}
	names := make(map[string]struct{}, len(k.names)+1)
	for n := range k.names {
		names[n] = struct{}{}
	}
	names[name] = struct{}{}

	columns := make([]Column, len(k.columns), len(k.columns)+1)
	copy(columns, k.columns)
	columns = append(columns, Column{Name: name, Type: t, ord: len(k.columns)})

	return ColumnSet{columns: columns, names: names}, nil
}

// MustAdd is Add but panics on error; useful for package-level schema
// declarations where a duplicate name is a compile-time-obvious bug.
func (k ColumnSet) MustAdd(name string, t reltype.Tag) ColumnSet {
	k2, err := k.Add(name, t)
	if err != nil {
		panic(err)
	}
	return k2
}

// Columns returns the ordered column list.
func (k ColumnSet) Columns() []Column {
	return k.columns
}

// Len returns the number of declared columns.
func (k ColumnSet) Len() int {
	return len(k.columns)
}
