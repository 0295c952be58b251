package relrow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relq/relq/pkg/reldriver"
	"github.com/relq/relq/pkg/reltype"
)

// fakeCursor feeds a fixed matrix of column values ([row][col], 0-based
// col) through reldriver.Cursor's getters, exercising relrow without a
// real database.
type fakeCursor struct {
	rows   [][]any
	pos    int
	closed bool
}

func (c *fakeCursor) Next() bool {
	if c.pos >= len(c.rows) {
		return false
	}
	c.pos++
	return true
}

func (c *fakeCursor) Err() error { return nil }
func (c *fakeCursor) Close()     { c.closed = true }

func (c *fakeCursor) MetadataColumnCount() int {
	if len(c.rows) == 0 {
		return 0
	}
	return len(c.rows[0])
}

func (c *fakeCursor) MetadataColumnName(i int) string { return "" }
func (c *fakeCursor) MetadataColumnType(i int) string { return "" }

func (c *fakeCursor) cell(i int) any { return c.rows[c.pos-1][i-1] }

func (c *fakeCursor) GetBool(i int) (bool, bool, error) {
	v := c.cell(i)
	if v == nil {
		return false, true, nil
	}
	return v.(bool), false, nil
}

func (c *fakeCursor) GetByte(i int) (int8, bool, error) { return 0, true, nil }
func (c *fakeCursor) GetShort(i int) (int16, bool, error) { return 0, true, nil }

func (c *fakeCursor) GetInt(i int) (int32, bool, error) {
	v := c.cell(i)
	if v == nil {
		return 0, true, nil
	}
	return v.(int32), false, nil
}

func (c *fakeCursor) GetLong(i int) (int64, bool, error) { return 0, true, nil }
func (c *fakeCursor) GetFloat(i int) (float32, bool, error) { return 0, true, nil }
func (c *fakeCursor) GetDouble(i int) (float64, bool, error) { return 0, true, nil }
func (c *fakeCursor) GetBigDecimal(i int) (string, bool, error) { return "", true, nil }

func (c *fakeCursor) GetString(i int) (string, bool, error) {
	v := c.cell(i)
	if v == nil {
		return "", true, nil
	}
	return v.(string), false, nil
}

func (c *fakeCursor) GetBytes(i int) ([]byte, bool, error) { return nil, true, nil }
func (c *fakeCursor) GetUUID(i int) ([16]byte, bool, error) { return [16]byte{}, true, nil }
func (c *fakeCursor) GetTimestamp(i int) (reldriver.Timestamp, bool, error) {
	return reldriver.Timestamp{}, true, nil
}

func TestEachDecodesEveryRowInOrder(t *testing.T) {
	cursor := &fakeCursor{rows: [][]any{
		{int32(1), "Ada"},
		{int32(2), "Grace"},
	}}
	shape := []reltype.Tag{reltype.Base(reltype.Int), reltype.Base(reltype.String)}

	var names []string
	err := Each(cursor, shape, func(row Row) error {
		require.Equal(t, 2, row.Len())
		names = append(names, row.Get(1).V.(string))
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, []string{"Ada", "Grace"}, names)
}

func TestEachClosesCursorOnCallerError(t *testing.T) {
	cursor := &fakeCursor{rows: [][]any{{int32(1), "Ada"}, {int32(2), "Grace"}}}
	shape := []reltype.Tag{reltype.Base(reltype.Int), reltype.Base(reltype.String)}

	stop := errors.New("stop after first row")
	seen := 0
	err := Each(cursor, shape, func(row Row) error {
		seen++
		return stop
	})

	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, seen)
	require.True(t, cursor.closed)
}

func TestNextReturnsErrClosedAfterClose(t *testing.T) {
	cursor := &fakeCursor{rows: [][]any{{int32(1), "Ada"}}}
	shape := []reltype.Tag{reltype.Base(reltype.Int), reltype.Base(reltype.String)}

	rows := New(cursor, shape)
	rows.Close()

	_, ok, err := rows.Next()
	require.False(t, ok)
	require.ErrorIs(t, err, ErrClosed)
}

func TestNextReportsMissingColumnWhenShapeOutrunsCursor(t *testing.T) {
	cursor := &fakeCursor{rows: [][]any{{int32(1)}}}
	shape := []reltype.Tag{reltype.Base(reltype.Int), reltype.Base(reltype.String)}

	rows := New(cursor, shape)
	_, ok, err := rows.Next()
	require.False(t, ok)

	var de *reltype.DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "MissingColumn", de.Reason)
	require.Equal(t, 2, de.Column)
}

func TestNullableColumnDecodesToNilValue(t *testing.T) {
	cursor := &fakeCursor{rows: [][]any{{int32(1), nil}}}
	shape := []reltype.Tag{reltype.Base(reltype.Int), reltype.Nullable(reltype.Base(reltype.String))}

	err := Each(cursor, shape, func(row Row) error {
		require.True(t, row.Get(1).IsNull())
		return nil
	})
	require.NoError(t, err)
}
