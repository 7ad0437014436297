package schema

import "strings"

// Renderer translates the table model into dialect-specific DDL text.
// Implementations live in the dialect package; exactly one (Postgres) ships,
// and more are added by implementing this interface.
type Renderer interface {
	// Name returns the dialect name.
	Name() string

	// CreateTable returns the statement prefix and suffix framing the
	// column definitions.
	CreateTable(name string) (prefix, suffix string)

	// CreateColumn renders a single column definition. It panics when the
	// column's base type is KindIndex, which has no column-level syntax.
	CreateColumn(name string, col Column) string

	// CreateIndex renders a table-level index specification as a
	// standalone statement.
	CreateIndex(table string, idx TableIndex) string
}

// TableIndex is a table-level multi-column index specification.
type TableIndex struct {
	Columns []string
	Unique  bool
}

// namedColumn pairs a column with its name, preserving insertion order.
type namedColumn struct {
	name string
	col  Column
}

// Table is a named, ordered collection of uniquely-named columns.
//
// Columns render in first-insertion order. Re-adding an existing name
// overwrites the descriptor in place and keeps the original position, so
// repeated Generate calls are deterministic.
type Table struct {
	name    string
	columns []namedColumn
	byName  map[string]int
	indexes []TableIndex
}

// NewTable creates an empty table with the given name.
func NewTable(name string) *Table {
	return &Table{
		name:   name,
		byName: make(map[string]int),
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of columns.
func (t *Table) Len() int {
	return len(t.columns)
}

// AddColumn inserts a column, or overwrites the existing descriptor in place
// when the name is already present. Returns the table for chaining.
func (t *Table) AddColumn(name string, col Column) *Table {
	if idx, ok := t.byName[name]; ok {
		t.columns[idx].col = col
		return t
	}
	t.byName[name] = len(t.columns)
	t.columns = append(t.columns, namedColumn{name: name, col: col})
	return t
}

// Column returns the descriptor for the given name.
func (t *Table) Column(name string) (Column, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[idx].col, true
}

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// AddIndex records a table-level index over the given columns.
// Returns the table for chaining.
func (t *Table) AddIndex(columns ...string) *Table {
	t.indexes = append(t.indexes, TableIndex{Columns: columns})
	return t
}

// AddUniqueIndex records a table-level unique index over the given columns.
// Returns the table for chaining.
func (t *Table) AddUniqueIndex(columns ...string) *Table {
	t.indexes = append(t.indexes, TableIndex{Columns: columns, Unique: true})
	return t
}

// Indexes returns the recorded table-level index specifications.
func (t *Table) Indexes() []TableIndex {
	return t.indexes
}

// Generate renders the table as DDL text using the given renderer.
// Column definitions are joined with ",\n" with no trailing comma; recorded
// table-level indexes follow as separate statements. Generate does not
// mutate the table and may be repeated.
func (t *Table) Generate(r Renderer) string {
	prefix, suffix := r.CreateTable(t.name)

	var b strings.Builder
	b.WriteString(prefix)

	for i, c := range t.columns {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(r.CreateColumn(c.name, c.col))
	}

	b.WriteString(suffix)

	for _, idx := range t.indexes {
		b.WriteString(";\n")
		b.WriteString(r.CreateIndex(t.name, idx))
	}

	return b.String()
}
