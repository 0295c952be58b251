// Package ansi implements the neutral baseline dialect:
// standard identifier quoting, ISO-8601 temporal literals, and
// "LIMIT n OFFSET m" pagination. Engine-specific dialects (e.g.
// pkg/dialect/postgres) start from Dialect() and override individual
// hooks.
package ansi

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/relq/relq/pkg/dialect"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/reltype"
)

var reservedWords = map[string]bool{
	"select": true, "from": true, "where": true, "group": true, "order": true,
	"having": true, "by": true, "join": true, "inner": true, "outer": true,
	"left": true, "right": true, "full": true, "on": true, "as": true,
	"insert": true, "update": true, "delete": true, "into": true, "values": true,
	"set": true, "and": true, "or": true, "not": true, "null": true, "is": true,
	"in": true, "like": true, "union": true, "all": true, "limit": true, "offset": true,
	"table": true, "true": true, "false": true,
}

func needsQuote(ident string) bool {
	if ident == "" {
		return true
	}
	if reservedWords[strings.ToLower(ident)] {
		return true
	}
	for _, r := range ident {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return true
		}
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

func quoteIdent(ident string) string {
	if !needsQuote(ident) {
		return ident
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func renderLiteral(value any, tag reltype.Tag) string {
	// Char shares Go's int32 with Int, so it is distinguished by tag
	// rather than by the value's dynamic type.
	if tag.Unwrap().Equal(reltype.Base(reltype.Char)) {
		if r, ok := value.(rune); ok {
			return "'" + strings.ReplaceAll(string(r), "'", "''") + "'"
		}
	}
	switch v := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case []byte:
		return "X'" + fmt.Sprintf("%x", v) + "'"
	case float32, float64:
		return strconv.FormatFloat(toFloat64(v), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func renderLimit(limit, offset *int) string {
	var b strings.Builder
	if limit != nil {
		fmt.Fprintf(&b, "LIMIT %d", *limit)
	}
	if offset != nil {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "OFFSET %d", *offset)
	}
	return b.String()
}

func renderFunction(name string, args []string) string {
	return strings.ToUpper(name) + "(" + strings.Join(args, ", ") + ")"
}

func booleanLiteral(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func temporalLiteral(value any, tag reltype.Tag) string {
	kind := tag.Unwrap()
	var keyword string
	switch {
	case kind.Equal(reltype.Base(reltype.LocalDate)):
		keyword = "DATE"
	case kind.Equal(reltype.Base(reltype.LocalTime)):
		keyword = "TIME"
	case kind.Equal(reltype.Base(reltype.LocalDateTime)):
		keyword = "TIMESTAMP"
	case kind.Equal(reltype.Base(reltype.Instant)), kind.Equal(reltype.Base(reltype.ZonedDateTime)),
		kind.Equal(reltype.Base(reltype.OffsetDateTime)):
		keyword = "TIMESTAMP WITH TIME ZONE"
	case kind.Equal(reltype.Base(reltype.OffsetTime)):
		keyword = "TIME WITH TIME ZONE"
	default:
		keyword = "TIMESTAMP"
	}
	if iv, ok := value.(reltype.InstantValue); ok {
		value = time.Unix(iv.Epoch, int64(iv.Nanosecond)).UTC().Format("2006-01-02T15:04:05.999999999Z07:00")
	}
	return fmt.Sprintf("%s '%v'", keyword, value)
}

func nullLiteral() string { return "NULL" }

// Dialect returns the ANSI baseline descriptor.
func Dialect() dialect.Dialect {
	return dialect.Dialect{
		Name:                    "ansi",
		QuoteIdent:              quoteIdent,
		RenderLiteral:           renderLiteral,
		RenderLimit:             renderLimit,
		RenderFunction:          renderFunction,
		BooleanLiteral:          booleanLiteral,
		TemporalLiteral:         temporalLiteral,
		NullLiteral:             nullLiteral,
		Functions:               relexpr.BaselineFunctions(),
		DialectSpecificFeatures: map[string]bool{},
	}
}
