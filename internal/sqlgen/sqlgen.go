// Package sqlgen maps Salesforce field metadata onto the schema model and
// renders the resulting table as DDL text.
package sqlgen

import (
	"io"

	"github.com/forcekit/forcesql/internal/force"
	"github.com/forcekit/forcesql/internal/schema"
	"github.com/forcekit/forcesql/internal/sferr"
)

// ColumnFromField maps a single field descriptor to a column.
//
// The mapping is fixed:
//
//	multipicklist -> array of unsized varchar
//	reference     -> foreign key to the related table's Id column
//	id            -> unsized varchar, primary key
//	anyType       -> JSONB
//	boolean, time, date, datetime, double, int, long -> matching scalar
//	everything else -> varchar sized to the field length
//
// The field's nillable and unique flags carry over onto the column.
func ColumnFromField(f force.Field) (schema.Column, error) {
	var col schema.Column

	switch f.Type {
	case force.FieldMultiPicklist:
		col = schema.Array(schema.Varchar(0))
	case force.FieldReference:
		if f.RelationshipName == "" {
			return schema.Column{}, sferr.New(sferr.ErrSchemaInvalid,
				"reference field has no relationship name").
				WithColumn(f.Name)
		}
		col = schema.Foreign(f.RelationshipName, "Id")
	case force.FieldID:
		col = schema.Varchar(0).Primary(true)
	case force.FieldAnyType:
		col = schema.Jsonb()
	case force.FieldBoolean:
		col = schema.Boolean()
	case force.FieldTime:
		col = schema.Time()
	case force.FieldDate:
		col = schema.Date()
	case force.FieldDateTime:
		col = schema.DateTime()
	case force.FieldDouble:
		col = schema.Double()
	case force.FieldInt:
		col = schema.Integer()
	case force.FieldLong:
		col = schema.BigInt()
	default:
		col = schema.Varchar(f.Length)
	}

	return col.Nullable(f.Nillable).Unique(f.Unique), nil
}

// TableFromDescribe builds a table from an object describe response.
// Columns are added in describe field order, which the table preserves
// through rendering.
func TableFromDescribe(desc *force.Describe) (*schema.Table, error) {
	table := schema.NewTable(desc.Name)

	for _, f := range desc.Fields {
		col, err := ColumnFromField(f)
		if err != nil {
			return nil, err
		}
		table.AddColumn(f.Name, col)
	}

	return table, nil
}

// Generate renders a describe response as DDL text for the given dialect.
func Generate(desc *force.Describe, r schema.Renderer) (string, error) {
	table, err := TableFromDescribe(desc)
	if err != nil {
		return "", err
	}
	return table.Generate(r), nil
}

// Write renders a describe response and writes the DDL text to w.
func Write(w io.Writer, desc *force.Describe, r schema.Renderer) error {
	sql, err := Generate(desc, r)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, sql); err != nil {
		return sferr.Wrap(sferr.ErrSQLWrite, err, "failed to write SQL output")
	}
	return nil
}
