package reltype

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/relq/relq/pkg/reldriver"
)

// DecodeError is the decoding-error taxonomy: UnexpectedNull,
// UnexpectedType, MissingColumn. It is distinct from
// relerr.ConstructionError: decode errors
// happen during execution, against a live cursor, and are delivered in
// the result stream rather than at build time.
type DecodeError struct {
	Reason  string
	Column  int
	Tag     Tag
	Driver  string
}

func (e *DecodeError) Error() string {
	if e.Driver != "" {
		return fmt.Sprintf("column %d (%s): %s: %s", e.Column, e.Tag, e.Reason, e.Driver)
	}
	return fmt.Sprintf("column %d (%s): %s", e.Column, e.Tag, e.Reason)
}

func unexpectedNull(col int, tag Tag) error {
	return &DecodeError{Reason: "UnexpectedNull", Column: col, Tag: tag}
}

func unexpectedType(col int, tag Tag, driverErr error) error {
	return &DecodeError{Reason: "UnexpectedType", Column: col, Tag: tag, Driver: driverErr.Error()}
}

// DialectExtractor decodes a DialectSpecific(d) cell. Registered
// per-dialect via RegisterDialectExtractor.
type DialectExtractor func(cursor reldriver.Cursor, col int, feature string) (value any, isNull bool, err error)

var dialectExtractors = map[string]DialectExtractor{}

// RegisterDialectExtractor installs the extraction primitive for every
// DialectSpecific(dialectName) tag. The driver package for a dialect
// calls this from an init func (internal/pgxdriver does so for
// "postgres").
func RegisterDialectExtractor(dialectName string, fn DialectExtractor) {
	dialectExtractors[dialectName] = fn
}

// Extract is the tag-indexed decode primitive: it reads one cell of
// the cursor as the Go value the tag prescribes. col is the
// 1-based SQL ordinal. The returned value is untyped (any) because Go
// has no way to express "one of nineteen concrete types" statically;
// pkg/relrow wraps this into a Value carrying the same Tag, with the
// decoded value itself still held as `any` (Value.V).
func Extract(tag Tag, cursor reldriver.Cursor, col int) (any, error) {
	if tag.IsNullable() {
		v, err := extractNonNull(tag.Unwrap(), cursor, col)
		if de, ok := err.(*DecodeError); ok && de.Reason == "UnexpectedNull" {
			return nil, nil
		}
		return v, err
	}
	v, err := extractNonNull(tag, cursor, col)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// extractNonNull returns (nil, unexpectedNull) when the cursor cell is
// NULL; callers decide whether that is acceptable (Nullable) or an
// error (everything else).
func extractNonNull(tag Tag, cursor reldriver.Cursor, col int) (any, error) {
	if tag.IsDialectSpecific() {
		dialect, feature := tag.Dialect()
		fn, ok := dialectExtractors[dialect]
		if !ok {
			return nil, &DecodeError{Reason: "UnexpectedType", Column: col, Tag: tag, Driver: "no extractor registered for dialect " + dialect}
		}
		v, isNull, err := fn(cursor, col, feature)
		if err != nil {
			return nil, unexpectedType(col, tag, err)
		}
		if isNull {
			return nil, unexpectedNull(col, tag)
		}
		return v, nil
	}

	switch tag.kind {
	case Bool:
		v, isNull, err := cursor.GetBool(col)
		return checked(v, isNull, err, col, tag)
	case Byte:
		v, isNull, err := cursor.GetByte(col)
		return checked(v, isNull, err, col, tag)
	case Short:
		v, isNull, err := cursor.GetShort(col)
		return checked(v, isNull, err, col, tag)
	case Int:
		v, isNull, err := cursor.GetInt(col)
		return checked(v, isNull, err, col, tag)
	case Long:
		v, isNull, err := cursor.GetLong(col)
		return checked(v, isNull, err, col, tag)
	case Float:
		v, isNull, err := cursor.GetFloat(col)
		return checked(v, isNull, err, col, tag)
	case Double:
		v, isNull, err := cursor.GetDouble(col)
		return checked(v, isNull, err, col, tag)
	case BigDecimal:
		v, isNull, err := cursor.GetBigDecimal(col)
		return checked(v, isNull, err, col, tag)
	case Char:
		v, isNull, err := cursor.GetString(col)
		if err != nil {
			return nil, unexpectedType(col, tag, err)
		}
		if isNull {
			return nil, unexpectedNull(col, tag)
		}
		if len(v) == 0 {
			return rune(0), nil
		}
		return rune(v[0]), nil
	case String:
		v, isNull, err := cursor.GetString(col)
		return checked(v, isNull, err, col, tag)
	case ByteArray:
		v, isNull, err := cursor.GetBytes(col)
		return checked(v, isNull, err, col, tag)
	case UUID:
		v, isNull, err := cursor.GetUUID(col)
		if err != nil {
			return nil, unexpectedType(col, tag, err)
		}
		if isNull {
			return nil, unexpectedNull(col, tag)
		}
		return uuid.UUID(v), nil
	case LocalDate, LocalTime, LocalDateTime, Instant, OffsetTime, OffsetDateTime, ZonedDateTime:
		ts, isNull, err := cursor.GetTimestamp(col)
		if err != nil {
			return nil, unexpectedType(col, tag, err)
		}
		if isNull {
			return nil, unexpectedNull(col, tag)
		}
		return normalizeTemporal(tag.kind, ts), nil
	default:
		return nil, &DecodeError{Reason: "UnexpectedType", Column: col, Tag: tag, Driver: "no extraction primitive for tag"}
	}
}

func checked[T any](v T, isNull bool, err error, col int, tag Tag) (any, error) {
	if err != nil {
		return nil, unexpectedType(col, tag, err)
	}
	if isNull {
		return nil, unexpectedNull(col, tag)
	}
	return v, nil
}

// normalizeTemporal derives the requested temporal shape from the
// driver's single Timestamp primitive: LocalDate/
// LocalTime/LocalDateTime read the local wall-clock view; Instant reads
// the instant view; OffsetDateTime/OffsetTime/ZonedDateTime are
// anchored at UTC unless the driver reported an offset.
func normalizeTemporal(k Kind, ts reldriver.Timestamp) any {
	switch k {
	case LocalDate:
		return Date{Year: ts.Year, Month: ts.Month, Day: ts.Day}
	case LocalTime:
		return Time{Hour: ts.Hour, Minute: ts.Minute, Second: ts.Second, Nanosecond: ts.Nanosecond}
	case LocalDateTime:
		return DateTime{
			Date: Date{Year: ts.Year, Month: ts.Month, Day: ts.Day},
			Time: Time{Hour: ts.Hour, Minute: ts.Minute, Second: ts.Second, Nanosecond: ts.Nanosecond},
		}
	case Instant:
		offset := 0
		if ts.HasOffset {
			offset = ts.OffsetSeconds
		}
		return InstantValue{Epoch: epochSeconds(ts) - int64(offset), Nanosecond: ts.Nanosecond}
	case OffsetTime:
		offset := 0
		if ts.HasOffset {
			offset = ts.OffsetSeconds
		}
		return OffsetTimeValue{
			Time:          Time{Hour: ts.Hour, Minute: ts.Minute, Second: ts.Second, Nanosecond: ts.Nanosecond},
			OffsetSeconds: offset,
		}
	case OffsetDateTime, ZonedDateTime:
		offset := 0
		if ts.HasOffset {
			offset = ts.OffsetSeconds
		}
		return OffsetDateTimeValue{
			DateTime: DateTime{
				Date: Date{Year: ts.Year, Month: ts.Month, Day: ts.Day},
				Time: Time{Hour: ts.Hour, Minute: ts.Minute, Second: ts.Second, Nanosecond: ts.Nanosecond},
			},
			OffsetSeconds: offset,
		}
	default:
		panic("reltype: normalizeTemporal called with non-temporal kind")
	}
}

// epochSeconds is a minimal proleptic-Gregorian civil-to-epoch
// conversion (Howard Hinnant's days_from_civil), used only to derive
// Instant from the driver's local-wall-clock Timestamp view.
func epochSeconds(ts reldriver.Timestamp) int64 {
	y := ts.Year
	if ts.Month <= 2 {
		y--
	}
	era := y
	if era < 0 {
		era -= 399
	}
	era /= 400
	yoe := y - era*400
	mp := (ts.Month + 9) % 12
	doy := (153*mp+2)/5 + ts.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	days := era*146097 + doe - 719468
	return int64(days)*86400 + int64(ts.Hour)*3600 + int64(ts.Minute)*60 + int64(ts.Second)
}
