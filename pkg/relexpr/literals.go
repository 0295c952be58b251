package relexpr

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/relq/relq/pkg/reltype"
)

// LitBool, LitString, ... are the self-checking literal constructors:
// each pins the Literal's Tag
// to the Go type it wraps, so callers never have to spell out a
// reltype.Tag for the common scalar case. Lit itself stays the
// general-purpose escape hatch for Nullable literals, NULL (Lit(nil,
// t)), and DialectSpecific values a typed helper has no business
// naming.
func LitBool(v bool) Literal { return Lit(v, reltype.Base(reltype.Bool)) }

func LitInt(v int32) Literal { return Lit(v, reltype.Base(reltype.Int)) }

func LitLong(v int64) Literal { return Lit(v, reltype.Base(reltype.Long)) }

func LitDouble(v float64) Literal { return Lit(v, reltype.Base(reltype.Double)) }

func LitString(v string) Literal { return Lit(v, reltype.Base(reltype.String)) }

func LitBytes(v []byte) Literal { return Lit(v, reltype.Base(reltype.ByteArray)) }

func LitUUID(v uuid.UUID) Literal { return Lit(v, reltype.Base(reltype.UUID)) }

func LitDecimal(v decimal.Decimal) Literal { return Lit(v, reltype.Base(reltype.BigDecimal)) }

func LitLocalDate(v reltype.Date) Literal { return Lit(v, reltype.Base(reltype.LocalDate)) }

func LitLocalDateTime(v reltype.DateTime) Literal {
	return Lit(v, reltype.Base(reltype.LocalDateTime))
}

func LitInstant(v reltype.InstantValue) Literal { return Lit(v, reltype.Base(reltype.Instant)) }

// LitStrings builds one Literal per element of vs, for the common case
// of an IN-list of string constants.
func LitStrings(vs ...string) []Expr {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		out[i] = LitString(v)
	}
	return out
}
