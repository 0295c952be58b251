// Package relrow implements the row-decoder pipeline: given a cursor
// and the ordered tag list a selection projects, it extracts each row
// into a tuple shape. Go's type system cannot express an
// arbitrary-length heterogeneous tuple without code generation, so a
// Row is an ordered []Value, each carrying the reltype.Tag the
// selection statically assigned to that position — the
// construction-time checks in pkg/relquery are what make this shape
// trustworthy, since nothing here re-validates it.
package relrow

import (
	"errors"

	"github.com/relq/relq/pkg/reldriver"
	"github.com/relq/relq/pkg/reltype"
)

// ErrClosed is returned by Next once the cursor has been closed.
var ErrClosed = errors.New("relrow: cursor is closed")

// Value is one decoded cell: the static tag the selection assigned to
// this position, and the extracted value (nil means a Nullable(τ)
// cell that came back NULL).
type Value struct {
	Tag reltype.Tag
	V   any
}

// IsNull reports whether this cell decoded as SQL NULL.
func (v Value) IsNull() bool { return v.V == nil }

// Row is the ordered tuple delivered to the caller's mapper for one
// result row; Values[i] corresponds position-for-position to the
// selection's i-th expression.
type Row struct {
	Values []Value
}

// Get returns the i-th cell (0-based), panicking if i is out of
// range — callers that built the selection know its arity statically.
func (r Row) Get(i int) Value { return r.Values[i] }

// Len returns the number of cells in the row.
func (r Row) Len() int { return len(r.Values) }

// Rows wraps a reldriver.Cursor with the selection's static shape,
// producing a lazy, finite, non-restartable sequence: the producer
// suspends only between Next calls, and Close releases the cursor on
// every exit path.
type Rows struct {
	cursor reldriver.Cursor
	shape  []reltype.Tag
	closed bool
}

// New wraps cursor for decoding against shape, the ordered tag list
// derived from the executed selection.
func New(cursor reldriver.Cursor, shape []reltype.Tag) *Rows {
	return &Rows{cursor: cursor, shape: shape}
}

// Next advances to and decodes the next row. ok is false at normal end
// of stream (err is nil) or once Close has been called (err is
// ErrClosed). A decode error terminates the stream
// immediately with that error — no partial row is returned.
func (r *Rows) Next() (row Row, ok bool, err error) {
	if r.closed {
		return Row{}, false, ErrClosed
	}
	if !r.cursor.Next() {
		return Row{}, false, r.cursor.Err()
	}
	if n := r.cursor.MetadataColumnCount(); n < len(r.shape) {
		return Row{}, false, &reltype.DecodeError{
			Reason: "MissingColumn",
			Column: n + 1,
			Tag:    r.shape[n],
		}
	}
	values := make([]Value, len(r.shape))
	for i, tag := range r.shape {
		v, err := reltype.Extract(tag, r.cursor, i+1)
		if err != nil {
			return Row{}, false, err
		}
		values[i] = Value{Tag: tag, V: v}
	}
	return Row{Values: values}, true, nil
}

// Close releases the cursor. Safe to call more than once.
func (r *Rows) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.cursor.Close()
}

// Each drives the full lazy sequence, calling f for every row and
// guaranteeing the cursor is closed on every exit path — normal
// completion, a decode error, or f returning an error. Cancelling
// consumption releases the cursor; partial consumption is valid.
func Each(cursor reldriver.Cursor, shape []reltype.Tag, f func(Row) error) error {
	rows := New(cursor, shape)
	defer rows.Close()
	for {
		row, ok, err := rows.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := f(row); err != nil {
			return err
		}
	}
}
