package pgxdriver

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/relq/relq/pkg/reldriver"
)

// Cursor adapts a pgx.Rows into reldriver.Cursor. pgx decodes each
// column into its natural Go representation via Values(); Cursor's
// getters coerce that representation to the type reltype.Extract
// asked for, reporting UnexpectedType through err rather than
// panicking on a bad assertion.
type Cursor struct {
	rows pgx.Rows
	vals []any
	err  error
}

func (c *Cursor) Next() bool {
	if !c.rows.Next() {
		return false
	}
	vals, err := c.rows.Values()
	if err != nil {
		c.err = err
		return false
	}
	c.vals = vals
	return true
}

func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return classifyError(c.rows.Err())
}

func (c *Cursor) Close() { c.rows.Close() }

func (c *Cursor) MetadataColumnCount() int {
	return len(c.rows.FieldDescriptions())
}

func (c *Cursor) MetadataColumnName(i int) string {
	return c.rows.FieldDescriptions()[i-1].Name
}

func (c *Cursor) MetadataColumnType(i int) string {
	return strconv.FormatUint(uint64(c.rows.FieldDescriptions()[i-1].DataTypeOID), 10)
}

func (c *Cursor) cell(i int) any {
	return c.vals[i-1]
}

func (c *Cursor) GetBool(i int) (bool, bool, error) {
	v := c.cell(i)
	if v == nil {
		return false, true, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, false, fmt.Errorf("expected bool, got %T", v)
	}
	return b, false, nil
}

func (c *Cursor) GetByte(i int) (int8, bool, error) {
	n, isNull, err := c.getInt64(i)
	return int8(n), isNull, err
}

func (c *Cursor) GetShort(i int) (int16, bool, error) {
	n, isNull, err := c.getInt64(i)
	return int16(n), isNull, err
}

func (c *Cursor) GetInt(i int) (int32, bool, error) {
	n, isNull, err := c.getInt64(i)
	return int32(n), isNull, err
}

func (c *Cursor) GetLong(i int) (int64, bool, error) {
	return c.getInt64(i)
}

func (c *Cursor) getInt64(i int) (int64, bool, error) {
	v := c.cell(i)
	if v == nil {
		return 0, true, nil
	}
	switch n := v.(type) {
	case int16:
		return int64(n), false, nil
	case int32:
		return int64(n), false, nil
	case int64:
		return n, false, nil
	default:
		return 0, false, fmt.Errorf("expected integer, got %T", v)
	}
}

func (c *Cursor) GetFloat(i int) (float32, bool, error) {
	v := c.cell(i)
	if v == nil {
		return 0, true, nil
	}
	f, ok := v.(float32)
	if !ok {
		return 0, false, fmt.Errorf("expected float4, got %T", v)
	}
	return f, false, nil
}

func (c *Cursor) GetDouble(i int) (float64, bool, error) {
	v := c.cell(i)
	if v == nil {
		return 0, true, nil
	}
	switch n := v.(type) {
	case float64:
		return n, false, nil
	case float32:
		return float64(n), false, nil
	default:
		return 0, false, fmt.Errorf("expected float8, got %T", v)
	}
}

// GetBigDecimal returns the column's exact textual form via
// shopspring/decimal — never through a float64 round-trip, which would
// silently truncate.
func (c *Cursor) GetBigDecimal(i int) (string, bool, error) {
	v := c.cell(i)
	if v == nil {
		return "", true, nil
	}
	switch n := v.(type) {
	case decimal.Decimal:
		return n.String(), false, nil
	case string:
		return n, false, nil
	default:
		return "", false, fmt.Errorf("expected numeric, got %T", v)
	}
}

func (c *Cursor) GetString(i int) (string, bool, error) {
	v := c.cell(i)
	if v == nil {
		return "", true, nil
	}
	switch s := v.(type) {
	case string:
		return s, false, nil
	case []byte:
		// json/jsonb decode to []byte under pgx's default type map.
		return string(s), false, nil
	default:
		return "", false, fmt.Errorf("expected text, got %T", v)
	}
}

func (c *Cursor) GetBytes(i int) ([]byte, bool, error) {
	v := c.cell(i)
	if v == nil {
		return nil, true, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("expected bytea, got %T", v)
	}
	return b, false, nil
}

func (c *Cursor) GetUUID(i int) ([16]byte, bool, error) {
	v := c.cell(i)
	if v == nil {
		return [16]byte{}, true, nil
	}
	u, ok := v.([16]byte)
	if !ok {
		return [16]byte{}, false, fmt.Errorf("expected uuid, got %T", v)
	}
	return u, false, nil
}

// GetTimestamp adapts pgx's time.Time into the driver-neutral
// Timestamp primitive every temporal Tag decodes through. pgx
// normalizes timestamptz to UTC rather than preserving the session's
// original offset, so HasOffset is always false here;
// OffsetDateTime/ZonedDateTime readers fall back to their UTC anchor
// when no offset is reported.
func (c *Cursor) GetTimestamp(i int) (reldriver.Timestamp, bool, error) {
	v := c.cell(i)
	if v == nil {
		return reldriver.Timestamp{}, true, nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return reldriver.Timestamp{}, false, fmt.Errorf("expected timestamp, got %T", v)
	}
	return reldriver.Timestamp{
		Year:       t.Year(),
		Month:      int(t.Month()),
		Day:        t.Day(),
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
	}, false, nil
}
