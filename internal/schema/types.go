// Package schema defines the in-memory model for relational column types and
// table structure. A Table is built from Column descriptors and rendered to
// DDL text by a dialect Renderer.
package schema

// Kind identifies a base column type variant.
type Kind int

const (
	// KindVarchar is a bounded or unbounded character type.
	KindVarchar Kind = iota

	// KindText is an unbounded text type.
	KindText

	// KindBoolean is a true/false type.
	KindBoolean

	// KindInteger is a 32-bit integer type.
	KindInteger

	// KindBigInt is a 64-bit integer type.
	KindBigInt

	// KindFloat is a single-precision floating-point type.
	KindFloat

	// KindDouble is a double-precision floating-point type.
	KindDouble

	// KindJsonb is a JSON document type.
	KindJsonb

	// KindDate is a date-only type.
	KindDate

	// KindTime is a time-only type.
	KindTime

	// KindDateTime is a timestamp type.
	KindDateTime

	// KindArray is an array of another base type.
	KindArray

	// KindForeign is a foreign key reference to another table.
	KindForeign

	// KindCustom is a raw SQL fragment used verbatim as the type.
	KindCustom

	// KindIndex is a table-level index specification. It has no column-level
	// syntax; rendering it as a column is a programming error.
	KindIndex
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindVarchar:
		return "Varchar"
	case KindText:
		return "Text"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindBigInt:
		return "BigInt"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindJsonb:
		return "Jsonb"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindDateTime:
		return "DateTime"
	case KindArray:
		return "Array"
	case KindForeign:
		return "Foreign"
	case KindCustom:
		return "Custom"
	case KindIndex:
		return "Index"
	default:
		return "Unknown"
	}
}

// BaseType is one variant of the closed column type taxonomy.
// Only the fields relevant to the Kind are set.
type BaseType struct {
	Kind Kind

	// Length is the Varchar length. Zero means unsized (bare VARCHAR).
	Length int

	// Elem is the element type for Array.
	Elem *BaseType

	// Table and Refs describe a Foreign reference: the target table and the
	// ordered referenced column names.
	Table string
	Refs  []string

	// SQL is the raw fragment for Custom.
	SQL string

	// Columns is the ordered column list for Index.
	Columns []string
}

// Column describes a single table column: a base type plus modifiers.
// Columns are built with the constructor functions below and refined with
// chainable modifiers, each of which returns an updated copy:
//
//	col := schema.Varchar(0).Primary(true)
//
// Modifiers are pure and idempotent; they may be chained in any order.
type Column struct {
	inner      BaseType
	nullable   bool
	unique     bool
	primary    bool
	increments bool
	indexed    bool
	size       *int
	def        *Default
}

func newColumn(inner BaseType) Column {
	return Column{inner: inner}
}

// Base returns the column's base type.
func (c Column) Base() BaseType {
	return c.inner
}

// Nullable sets whether the column accepts NULL.
func (c Column) Nullable(v bool) Column {
	c.nullable = v
	return c
}

// IsNullable reports whether the column accepts NULL.
func (c Column) IsNullable() bool {
	return c.nullable
}

// Unique sets whether the column values must be unique.
func (c Column) Unique(v bool) Column {
	c.unique = v
	return c
}

// IsUnique reports whether the column values must be unique.
func (c Column) IsUnique() bool {
	return c.unique
}

// Primary sets whether the column is the primary key.
func (c Column) Primary(v bool) Column {
	c.primary = v
	return c
}

// IsPrimary reports whether the column is the primary key.
func (c Column) IsPrimary() bool {
	return c.primary
}

// Increments sets whether the column auto-increments.
// The Postgres renderer does not emit syntax for this flag; it is tracked
// for dialects that need it.
func (c Column) Increments(v bool) Column {
	c.increments = v
	return c
}

// AutoIncrements reports whether the column auto-increments.
func (c Column) AutoIncrements() bool {
	return c.increments
}

// Indexed sets whether the column carries a single-column index.
// The Postgres renderer does not emit syntax for this flag; use
// Table.AddIndex for rendered indexes.
func (c Column) Indexed(v bool) Column {
	c.indexed = v
	return c
}

// IsIndexed reports whether the column carries a single-column index.
func (c Column) IsIndexed() bool {
	return c.indexed
}

// Size sets an explicit size hint for the column.
func (c Column) Size(v int) Column {
	c.size = &v
	return c
}

// SizeHint returns the explicit size hint, if one was set.
func (c Column) SizeHint() (int, bool) {
	if c.size == nil {
		return 0, false
	}
	return *c.size, true
}

// Default sets the column's default value.
func (c Column) Default(d Default) Column {
	c.def = &d
	return c
}

// DefaultValue returns the column's default value, if one was set.
func (c Column) DefaultValue() (Default, bool) {
	if c.def == nil {
		return Default{}, false
	}
	return *c.def, true
}

// -----------------------------------------------------------------------------
// Constructors - one per base type variant
// -----------------------------------------------------------------------------

// Varchar returns a character column. A length of zero renders as an
// unsized VARCHAR.
func Varchar(length int) Column {
	return newColumn(BaseType{Kind: KindVarchar, Length: length})
}

// Text returns an unbounded text column.
func Text() Column {
	return newColumn(BaseType{Kind: KindText})
}

// Boolean returns a boolean column.
func Boolean() Column {
	return newColumn(BaseType{Kind: KindBoolean})
}

// Integer returns a 32-bit integer column.
func Integer() Column {
	return newColumn(BaseType{Kind: KindInteger})
}

// BigInt returns a 64-bit integer column.
func BigInt() Column {
	return newColumn(BaseType{Kind: KindBigInt})
}

// Float returns a single-precision floating-point column.
func Float() Column {
	return newColumn(BaseType{Kind: KindFloat})
}

// Double returns a double-precision floating-point column.
func Double() Column {
	return newColumn(BaseType{Kind: KindDouble})
}

// Jsonb returns a JSON document column.
func Jsonb() Column {
	return newColumn(BaseType{Kind: KindJsonb})
}

// Date returns a date-only column.
func Date() Column {
	return newColumn(BaseType{Kind: KindDate})
}

// Time returns a time-only column.
func Time() Column {
	return newColumn(BaseType{Kind: KindTime})
}

// DateTime returns a timestamp column.
func DateTime() Column {
	return newColumn(BaseType{Kind: KindDateTime})
}

// Custom returns a column whose type is the given SQL fragment, verbatim.
func Custom(sql string) Column {
	return newColumn(BaseType{Kind: KindCustom, SQL: sql})
}

// Foreign returns a foreign key column referencing one or more columns of the
// target table.
func Foreign(table string, refs ...string) Column {
	return newColumn(BaseType{Kind: KindForeign, Table: table, Refs: refs})
}

// Array returns an array column wrapping the inner column's base type.
// Modifiers on the inner column are discarded; apply them to the array
// column itself.
func Array(inner Column) Column {
	elem := inner.Base()
	return newColumn(BaseType{Kind: KindArray, Elem: &elem})
}

// Index returns a column carrying a table-level index specification.
// It exists for completeness of the type taxonomy: it has no column-level
// rendering, and renderers abort on it. Prefer Table.AddIndex.
func Index(columns ...string) Column {
	return newColumn(BaseType{Kind: KindIndex, Columns: columns})
}
