package dbase

import (
	"github.com/goccy/go-json"
)

// Row is a struct containing the row Position, deleted flag and data fields
type Row struct {
	handle   *File    // Pointer to the File this row belongs to
	Position uint32   // Position of the row in the file
	Deleted  bool     // Deleted flag, rows stay decoded and are exported separately
	fields   []*Field // Fields in this row
}

// Field is a row data field
type Field struct {
	column *Column // Pointer to the column this field belongs to
	value  Value   // Decoded value of the field
}

// Returns the field at position, nil if out of range
func (row *Row) Field(pos int) *Field {
	if pos < 0 || pos >= len(row.fields) {
		return nil
	}
	return row.fields[pos]
}

// Returns the field of the column with name, nil if not found
func (row *Row) FieldByName(name string) *Field {
	return row.Field(row.handle.ColumnPosByName(name))
}

// Returns all fields of the row
func (row *Row) Fields() []*Field {
	return row.fields
}

// Returns the decoded values in column order
func (row *Row) Values() []Value {
	values := make([]Value, len(row.fields))
	for i, field := range row.fields {
		values[i] = field.value
	}
	return values
}

// Returns the row as map of column name to text
func (row *Row) ToMap() map[string]string {
	out := make(map[string]string, len(row.fields))
	for _, field := range row.fields {
		out[field.Name()] = field.value.Text
	}
	return out
}

// Returns the row as JSON object of column name to text
func (row *Row) ToJSON() ([]byte, error) {
	data, err := json.Marshal(row.ToMap())
	if err != nil {
		return nil, newError("dbase-row-tojson-1", err)
	}
	return data, nil
}

// Returns the column name of the field
func (field *Field) Name() string {
	return field.column.Name()
}

// Returns the type tag of the field's column
func (field *Field) Type() DataType {
	return DataType(field.column.DataType)
}

// Returns the column of the field
func (field *Field) Column() *Column {
	return field.column
}

// Returns the decoded value
func (field *Field) GetValue() Value {
	return field.value
}
