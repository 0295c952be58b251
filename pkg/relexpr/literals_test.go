package relexpr

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/relq/relq/pkg/reltype"
)

func TestTypedLiteralsPinTheirTag(t *testing.T) {
	require.True(t, LitBool(true).Tag().Equal(reltype.Base(reltype.Bool)))
	require.True(t, LitInt(7).Tag().Equal(reltype.Base(reltype.Int)))
	require.True(t, LitLong(7).Tag().Equal(reltype.Base(reltype.Long)))
	require.True(t, LitDouble(1.5).Tag().Equal(reltype.Base(reltype.Double)))
	require.True(t, LitString("x").Tag().Equal(reltype.Base(reltype.String)))
	require.True(t, LitBytes([]byte("x")).Tag().Equal(reltype.Base(reltype.ByteArray)))
	require.True(t, LitUUID(uuid.New()).Tag().Equal(reltype.Base(reltype.UUID)))
	require.True(t, LitDecimal(decimal.NewFromInt(1)).Tag().Equal(reltype.Base(reltype.BigDecimal)))

	date := reltype.Date{Year: 2024, Month: 1, Day: 2}
	require.True(t, LitLocalDate(date).Tag().Equal(reltype.Base(reltype.LocalDate)))
	require.Equal(t, date, LitLocalDate(date).Value)

	dt := reltype.DateTime{Date: date, Time: reltype.Time{Hour: 3}}
	require.True(t, LitLocalDateTime(dt).Tag().Equal(reltype.Base(reltype.LocalDateTime)))

	instant := reltype.InstantValue{Epoch: 100}
	require.True(t, LitInstant(instant).Tag().Equal(reltype.Base(reltype.Instant)))
}

func TestLitStringsBuildsOneLiteralPerValue(t *testing.T) {
	exprs := LitStrings("Fred", "Terrance")

	require.Len(t, exprs, 2)
	require.Equal(t, LitString("Fred"), exprs[0])
	require.Equal(t, LitString("Terrance"), exprs[1])
}
