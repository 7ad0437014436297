package schema

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultKind identifies the literal variant held by a Default.
type DefaultKind int

const (
	// DefaultText is a text literal.
	DefaultText DefaultKind = iota

	// DefaultInteger is a 64-bit integer literal.
	DefaultInteger

	// DefaultBigInt is a large integer literal, carried as its decimal
	// string to avoid overflow concerns.
	DefaultBigInt

	// DefaultFloat is a single-precision literal.
	DefaultFloat

	// DefaultDouble is a double-precision literal.
	DefaultDouble

	// DefaultBoolean is a boolean literal.
	DefaultBoolean

	// DefaultDate is a date literal.
	DefaultDate

	// DefaultDateTime is a timestamp literal.
	DefaultDateTime

	// DefaultForeign is a reference to another column descriptor.
	DefaultForeign

	// DefaultCustom is a raw fragment used verbatim.
	DefaultCustom
)

// Default is a typed default value for a column. Values outside the
// enumerated literal set have no constructor, so unsupported defaults are
// rejected at compile time rather than at render time.
type Default struct {
	kind DefaultKind

	text string
	i    int64
	big  string
	f32  float32
	f64  float64
	b    bool
	t    time.Time
	col  *Column
}

// Kind returns the literal variant of the default.
func (d Default) Kind() DefaultKind {
	return d.kind
}

// String returns the dialect-neutral rendering of the default value.
// Dates render as 2006-01-02 and timestamps as RFC 3339.
func (d Default) String() string {
	switch d.kind {
	case DefaultText, DefaultCustom:
		return d.text
	case DefaultInteger:
		return strconv.FormatInt(d.i, 10)
	case DefaultBigInt:
		return d.big
	case DefaultFloat:
		return strconv.FormatFloat(float64(d.f32), 'g', -1, 32)
	case DefaultDouble:
		return strconv.FormatFloat(d.f64, 'g', -1, 64)
	case DefaultBoolean:
		return strconv.FormatBool(d.b)
	case DefaultDate:
		return d.t.Format("2006-01-02")
	case DefaultDateTime:
		return d.t.Format(time.RFC3339)
	case DefaultForeign:
		return fmt.Sprintf("%v", d.col.Base())
	default:
		return ""
	}
}

// TextDefault returns a text literal default.
func TextDefault(v string) Default {
	return Default{kind: DefaultText, text: v}
}

// IntegerDefault returns an integer literal default.
func IntegerDefault(v int64) Default {
	return Default{kind: DefaultInteger, i: v}
}

// BigIntDefault returns a large integer literal default from its decimal
// string representation.
func BigIntDefault(decimal string) Default {
	return Default{kind: DefaultBigInt, big: decimal}
}

// FloatDefault returns a single-precision literal default.
func FloatDefault(v float32) Default {
	return Default{kind: DefaultFloat, f32: v}
}

// DoubleDefault returns a double-precision literal default.
func DoubleDefault(v float64) Default {
	return Default{kind: DefaultDouble, f64: v}
}

// BooleanDefault returns a boolean literal default.
func BooleanDefault(v bool) Default {
	return Default{kind: DefaultBoolean, b: v}
}

// DateDefault returns a date literal default.
func DateDefault(v time.Time) Default {
	return Default{kind: DefaultDate, t: v}
}

// DateTimeDefault returns a timestamp literal default.
func DateTimeDefault(v time.Time) Default {
	return Default{kind: DefaultDateTime, t: v}
}

// ForeignDefault returns a default referencing another column descriptor.
func ForeignDefault(col Column) Default {
	return Default{kind: DefaultForeign, col: &col}
}

// CustomDefault returns a raw fragment default, rendered verbatim.
func CustomDefault(sql string) Default {
	return Default{kind: DefaultCustom, text: sql}
}
