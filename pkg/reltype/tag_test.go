package reltype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNullableIsIdempotent(t *testing.T) {
	base := Base(Int)
	once := Nullable(base)
	twice := Nullable(once)

	require.True(t, once.IsNullable())
	require.True(t, twice.Equal(once))
}

func TestUnwrapStripsOneNullableLayer(t *testing.T) {
	base := Base(String)
	wrapped := Nullable(base)

	require.True(t, wrapped.Unwrap().Equal(base))
	require.True(t, base.Unwrap().Equal(base))
}

func TestEqualComparesDialectSpecificPayload(t *testing.T) {
	a := DialectSpecificOf("postgres", "jsonb")
	b := DialectSpecificOf("postgres", "jsonb")
	c := DialectSpecificOf("postgres", "tsvector")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestSupportsArithmeticOnlyAcceptsDouble(t *testing.T) {
	require.True(t, Base(Double).SupportsArithmetic())
	require.False(t, Base(Int).SupportsArithmetic())
	require.False(t, Base(BigDecimal).SupportsArithmetic())
}

func TestIsNumericAcceptsWholeNumericFamily(t *testing.T) {
	for _, k := range []Kind{Byte, Short, Int, Long, Float, Double, BigDecimal} {
		require.True(t, Base(k).IsNumeric(), k)
	}
	require.False(t, Base(String).IsNumeric())
	require.True(t, Nullable(Base(Int)).IsNumeric())
}

func TestBaseRejectsWrapperKinds(t *testing.T) {
	require.Panics(t, func() { Base(dialectSpecific) })
	require.Panics(t, func() { Base(nullable) })
}
