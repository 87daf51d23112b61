package dbase

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Table is a struct containing the table columns and the row pointer
type Table struct {
	columns    []*Column // Columns defined in this table
	nullFlags  *Column   // The _NullFlags system column, if present
	rowPointer uint32    // Internal row pointer, can be moved
}

// Column is a struct containing the column information
type Column struct {
	FieldName [11]byte // Column name with a maximum of 10 characters. If less than 10, it is padded with null characters (0x00).
	DataType  byte     // Column type
	Position  uint32   // Displacement of column in row
	Length    uint8    // Length of column (in bytes)
	Decimals  uint8    // Number of decimal places
	Flag      byte     // Column flag
	Next      uint32   // Value of autoincrement Next value
	Step      uint16   // Value of autoincrement Step value
	Reserved  [7]byte  // Reserved
}

// Returns the name of the column up to the first null byte
func (c *Column) Name() string {
	name := c.FieldName[:]
	if i := bytes.IndexByte(name, byte(Null)); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(string(name))
}

// Returns the type of the column as string (length 1)
func (c *Column) Type() string {
	return string(c.DataType)
}

// Reads the column descriptors starting at byte 32 until the terminator (0x0D) is found.
// Columns without a stored displacement get the running sum of the previous lengths,
// starting at 1 behind the delete flag.
func readColumns(buf []byte) ([]*Column, *Column, error) {
	var nullFlags *Column
	columns := make([]*Column, 0)
	offset := HeaderSize
	displacement := uint32(1)
	for {
		if offset >= len(buf) {
			return nil, nil, newError("dbase-table-readcolumns-1", fmt.Errorf("%w: no column terminator before offset %d", ErrTruncatedHeader, offset))
		}
		if Marker(buf[offset]) == ColumnEnd {
			break
		}
		if offset+ColumnSize > len(buf) {
			return nil, nil, newError("dbase-table-readcolumns-2", fmt.Errorf("%w: column descriptor at offset %d exceeds %d bytes", ErrTruncatedHeader, offset, len(buf)))
		}
		column := &Column{}
		err := binary.Read(bytes.NewReader(buf[offset:offset+ColumnSize]), binary.LittleEndian, column)
		if err != nil {
			return nil, nil, newError("dbase-table-readcolumns-3", err)
		}
		if column.Position == 0 {
			column.Position = displacement
		}
		displacement += uint32(column.Length)
		offset += ColumnSize
		if column.Name() == NullFlagsColumn && DataType(column.DataType) == NullFlags {
			debugf("Found null flag column: %s", column.Name())
			nullFlags = column
			continue
		}
		// Hidden system columns are not part of the row output
		if ColumnFlag(column.Flag)&SystemFlag != 0 {
			debugf("Skipping system column %v of type %v", column.Name(), column.Type())
			continue
		}
		debugf("Found column %v of type %v at offset %d, displacement %d", column.Name(), column.Type(), offset-ColumnSize, column.Position)
		columns = append(columns, column)
	}
	return columns, nullFlags, nil
}

// Checks that every column lies inside a row
func validateColumns(columns []*Column, rowLength uint16) error {
	for _, column := range columns {
		end := uint64(column.Position) + uint64(column.Length)
		if column.Position == 0 || end > uint64(rowLength) {
			return newError("dbase-table-validatecolumns-1", fmt.Errorf("%w: column %v spans bytes %d-%d of a %d byte row", ErrInvalidHeader, column.Name(), column.Position, end, rowLength))
		}
	}
	return nil
}
