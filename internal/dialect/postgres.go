package dialect

import (
	"fmt"
	"strings"

	"github.com/forcekit/forcesql/internal/schema"
)

// postgres implements schema.Renderer for PostgreSQL.
type postgres struct{}

// Postgres returns the PostgreSQL renderer.
func Postgres() schema.Renderer {
	return &postgres{}
}

func (d *postgres) Name() string {
	return "postgres"
}

// CreateTable returns the CREATE TABLE framing. Column definitions are
// placed between prefix and suffix by the caller.
func (d *postgres) CreateTable(name string) (string, string) {
	return fmt.Sprintf("CREATE TABLE \"%s\" (\n", name), "\n)"
}

// CreateColumn renders a single column definition:
// the quoted name, the type token, then the modifier clauses in fixed order
// (PRIMARY KEY, DEFAULT, NOT NULL, UNIQUE) regardless of the order the
// modifiers were applied.
func (d *postgres) CreateColumn(name string, col schema.Column) string {
	inner := col.Base()
	if inner.Kind == schema.KindIndex {
		panic("dialect: CreateColumn called for an index specification")
	}

	var b strings.Builder
	b.WriteString(`"`)
	b.WriteString(name)
	b.WriteString(`" `)
	b.WriteString(d.stringify(inner))

	if col.IsPrimary() {
		b.WriteString(" PRIMARY KEY")
	}
	if def, ok := col.DefaultValue(); ok {
		b.WriteString(" DEFAULT '")
		b.WriteString(def.String())
		b.WriteString("'")
	}
	if !col.IsNullable() {
		b.WriteString(" NOT NULL")
	}
	if col.IsUnique() {
		b.WriteString(" UNIQUE")
	}

	return b.String()
}

// CreateIndex renders a table-level index as a standalone statement.
func (d *postgres) CreateIndex(table string, idx schema.TableIndex) string {
	var b strings.Builder

	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX \"")
	b.WriteString(indexName(table, idx))
	b.WriteString("\" ON \"")
	b.WriteString(table)
	b.WriteString("\" (")
	for i, col := range idx.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"`)
		b.WriteString(col)
		b.WriteString(`"`)
	}
	b.WriteString(")")

	return b.String()
}

// indexName generates the index name: idx_table_col1_col2 (uniq_ for unique).
func indexName(table string, idx schema.TableIndex) string {
	prefix := "idx_"
	if idx.Unique {
		prefix = "uniq_"
	}
	return prefix + table + "_" + strings.Join(idx.Columns, "_")
}

// stringify maps a base type to its PostgreSQL type token.
func (d *postgres) stringify(tp schema.BaseType) string {
	switch tp.Kind {
	case schema.KindForeign:
		return fmt.Sprintf("VARCHAR REFERENCES \"%s\" (%s)", tp.Table, strings.Join(tp.Refs, ","))
	case schema.KindCustom:
		return tp.SQL
	case schema.KindArray:
		return d.stringify(*tp.Elem) + "[]"
	case schema.KindVarchar:
		if tp.Length > 0 {
			return fmt.Sprintf("VARCHAR(%d)", tp.Length)
		}
		return "VARCHAR"
	case schema.KindBoolean:
		return "BOOLEAN"
	case schema.KindInteger:
		return "INTEGER"
	case schema.KindBigInt:
		return "BIGINT"
	case schema.KindText:
		return "TEXT"
	case schema.KindFloat:
		return "FLOAT"
	case schema.KindDouble:
		return "DOUBLE PRECISION"
	case schema.KindJsonb:
		return "JSONB"
	case schema.KindTime:
		return "TIME"
	case schema.KindDate:
		return "DATE"
	case schema.KindDateTime:
		return "TIMESTAMP"
	default:
		panic(fmt.Sprintf("dialect: no postgres type token for %s", tp.Kind))
	}
}
