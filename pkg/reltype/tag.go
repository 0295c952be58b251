// Package reltype defines the closed set of scalar type tags that
// every column, literal, and expression in this module is indexed by.
// A tag doubles as the contract between the renderer (it knows how to
// format a literal of that tag) and the row decoder (it knows how to
// extract a cell of that tag from a cursor); see pkg/relrender and
// pkg/relrow.
package reltype

import "fmt"

// Kind is the closed enumeration of scalar and wrapper tags.
// DialectSpecific and Nullable carry payloads and are
// constructed through the functions below rather than composite
// literals, so construction stays total and Nullable nesting is
// collapsed at the single point that matters.
type Kind int

const (
	Bool Kind = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	BigDecimal
	Char
	String
	ByteArray
	UUID
	LocalDate
	LocalTime
	LocalDateTime
	Instant
	OffsetTime
	OffsetDateTime
	ZonedDateTime
	dialectSpecific
	nullable
)

// Tag is an immutable value: either a base Kind, a DialectSpecific
// wrapper carrying the owning dialect's name and the dialect-defined
// feature name, or a Nullable wrapper around a non-Nullable Tag.
type Tag struct {
	kind Kind

	// set only when kind == dialectSpecific
	dialect, feature string

	// set only when kind == nullable; always a non-nullable tag
	inner *Tag
}

// Base returns the Tag for one of the plain scalar Kinds in the
// enumeration (everything except DialectSpecific and Nullable, which
// have their own constructors).
func Base(k Kind) Tag {
	if k == dialectSpecific || k == nullable {
		panic("reltype: Base does not accept DialectSpecific or Nullable; use DialectSpecificOf/Nullable")
	}
	return Tag{kind: k}
}

// DialectSpecificOf constructs a DialectSpecific(d) tag naming the
// dialect and the feature it denotes (e.g. "postgres", "tsvector").
func DialectSpecificOf(dialect, feature string) Tag {
	return Tag{kind: dialectSpecific, dialect: dialect, feature: feature}
}

// Nullable smart-constructs Nullable(t). Nullable(Nullable(t)) is
// forbidden at construction: wrapping an already-nullable tag returns
// t unchanged, making the wrapper idempotent rather than erroring,
// since callers that upcast defensively (e.g. outer-join lifting,
// see pkg/relquery/source.go) should never have to check first.
func Nullable(t Tag) Tag {
	if t.kind == nullable {
		return t
	}
	inner := t
	return Tag{kind: nullable, inner: &inner}
}

// IsNullable reports whether t is a Nullable(_) wrapper.
func (t Tag) IsNullable() bool {
	return t.kind == nullable
}

// IsDialectSpecific reports whether t is a DialectSpecific(d) tag.
func (t Tag) IsDialectSpecific() bool {
	return t.kind == dialectSpecific
}

// Unwrap returns the tag underneath a Nullable wrapper, or t itself if
// t is not Nullable.
func (t Tag) Unwrap() Tag {
	if t.kind == nullable {
		return *t.inner
	}
	return t
}

// Dialect returns the (dialect, feature) pair of a DialectSpecific tag.
// It panics if t is not DialectSpecific; callers should check
// IsDialectSpecific first.
func (t Tag) Dialect() (dialect, feature string) {
	if t.kind != dialectSpecific {
		panic("reltype: Dialect called on a non-DialectSpecific tag")
	}
	return t.dialect, t.feature
}

// Equal reports structural equality between two tags, including
// Nullable and DialectSpecific payloads.
func (t Tag) Equal(other Tag) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case nullable:
		return t.inner.Equal(*other.inner)
	case dialectSpecific:
		return t.dialect == other.dialect && t.feature == other.feature
	default:
		return true
	}
}

// IsNumeric reports whether t (after stripping one Nullable layer) is
// one of the numeric base kinds. Arithmetic currently
// recognizes only Double as a legal operand (the BigDecimal/Int/Long
// widening gap is left open); IsNumeric itself still reports the full
// numeric family since callers such as aggregation legality checks
// ("Sum/Avg accept a numeric operand") need the wider notion.
func (t Tag) IsNumeric() bool {
	switch t.Unwrap().kind {
	case Byte, Short, Int, Long, Float, Double, BigDecimal:
		return true
	default:
		return false
	}
}

// SupportsArithmetic reports whether t is a legal operand of +,-,*,/,
// mod in the current version's scope: Double only. Int/Long/BigDecimal
// are accepted as column, literal, and selection types but not as
// arithmetic operands until wider numeric promotion lands.
func (t Tag) SupportsArithmetic() bool {
	return t.Unwrap().kind == Double
}

func (t Tag) String() string {
	switch t.kind {
	case nullable:
		return fmt.Sprintf("Nullable(%s)", t.inner.String())
	case dialectSpecific:
		return fmt.Sprintf("DialectSpecific(%s:%s)", t.dialect, t.feature)
	default:
		return kindNames[t.kind]
	}
}

var kindNames = map[Kind]string{
	Bool:           "Bool",
	Byte:           "Byte",
	Short:          "Short",
	Int:            "Int",
	Long:           "Long",
	Float:          "Float",
	Double:         "Double",
	BigDecimal:     "BigDecimal",
	Char:           "Char",
	String:         "String",
	ByteArray:      "ByteArray",
	UUID:           "UUID",
	LocalDate:      "LocalDate",
	LocalTime:      "LocalTime",
	LocalDateTime:  "LocalDateTime",
	Instant:        "Instant",
	OffsetTime:     "OffsetTime",
	OffsetDateTime: "OffsetDateTime",
	ZonedDateTime:  "ZonedDateTime",
}
