package dbase

import (
	"fmt"
)

// File is the main struct to handle a loaded dBase table and its memo file.
// The buffers are only read, rows are views into the table buffer.
type File struct {
	config        *Config           // The config used when working with the table.
	data          []byte            // The complete table file.
	header        *Header           // DBase file header containing relevant information.
	table         *Table            // Containing the columns and internal row pointer.
	memo          *Memo             // Memo resolver, in missing state without memo file.
	converter     EncodingConverter // Converter used for text inside the table buffer.
	memoConverter EncodingConverter // Converter used for memo blobs.
}

// Open parses the table buffer and the optional memo buffer.
// The header, the column descriptors and the bounds of the row area are checked
// before any row is read, the buffers are not modified.
func Open(data []byte, memoData []byte, config *Config) (*File, error) {
	if config == nil {
		config = &Config{}
	}
	header, err := readHeader(data)
	if err != nil {
		return nil, newError("dbase-file-open-1", err)
	}
	columns, nullFlags, err := readColumns(data)
	if err != nil {
		return nil, newError("dbase-file-open-2", err)
	}
	descriptors := len(columns)
	if nullFlags != nil {
		descriptors++
	}
	if err := header.validate(descriptors); err != nil {
		return nil, newError("dbase-file-open-3", err)
	}
	if err := validateColumns(columns, header.RowLength); err != nil {
		return nil, newError("dbase-file-open-4", err)
	}
	end := uint64(header.FirstRow) + uint64(header.RowsCount)*uint64(header.RowLength)
	if end > uint64(len(data)) {
		return nil, newError("dbase-file-open-5", fmt.Errorf("%w: %d rows of %d bytes from offset %d need %d bytes, file has %d", ErrTruncatedRecordArea, header.RowsCount, header.RowLength, header.FirstRow, end, len(data)))
	}
	memo, err := NewMemo(memoData)
	if err != nil {
		return nil, newError("dbase-file-open-6", err)
	}
	if header.HasMemo() && memo.Missing() {
		errorf("Table flags announce a memo file but none was supplied")
	}
	converter := config.Converter
	if converter == nil {
		if config.InterpretCodePage {
			converter = InterpretCodePage(header.CodePage)
		} else {
			converter = ConverterFromCodePage(header.CodePage)
		}
	}
	debugf("Opened table with %d columns and %d rows, code page 0x%02x", len(columns), header.RowsCount, header.CodePage)
	return &File{
		config:        config,
		data:          data,
		header:        header,
		table:         &Table{columns: columns, nullFlags: nullFlags},
		memo:          memo,
		converter:     converter,
		memoConverter: memoConverter(converter),
	}, nil
}

// Returns the dBase table file header struct for inspecting
func (file *File) Header() *Header {
	return file.header
}

// Returns the memo resolver
func (file *File) Memo() *Memo {
	return file.memo
}

// Returns the converter used for text content
func (file *File) Converter() EncodingConverter {
	return file.converter
}

// Returns the config the file was opened with
func (file *File) Config() *Config {
	return file.config
}

// Returns if the internal row pointer is at end of file
func (file *File) EOF() bool {
	return file.table.rowPointer >= file.header.RowsCount
}

// Returns if the internal row pointer is before first row
func (file *File) BOF() bool {
	return file.table.rowPointer == 0
}

// Returns the current row pointer position
func (file *File) Pointer() uint32 {
	return file.table.rowPointer
}

// returns the number of rows
func (file *File) RowsCount() uint32 {
	return file.header.RowsCount
}

// Returns all columns
func (file *File) Columns() []*Column {
	return file.table.columns
}

// Returns the requested column
func (file *File) Column(pos int) *Column {
	if pos < 0 || pos >= len(file.table.columns) {
		return nil
	}
	return file.table.columns[pos]
}

// Returns the number of columns
func (file *File) ColumnsCount() uint16 {
	return uint16(len(file.table.columns))
}

// Returns a slice of all the column names, decoded with the table's converter
func (file *File) ColumnNames() []string {
	names := make([]string, len(file.table.columns))
	for i, column := range file.table.columns {
		names[i] = file.toUTF8String([]byte(column.Name()))
	}
	return names
}

// Returns the column position of a column by name or -1 if not found.
func (file *File) ColumnPosByName(colname string) int {
	for i, column := range file.table.columns {
		if column.Name() == colname {
			return i
		}
	}
	return -1
}

// GoTo sets the internal row pointer to row.
// Returns an EOF error if row is past the last row and positions the pointer at the end.
func (file *File) GoTo(row uint32) error {
	if row > file.header.RowsCount {
		file.table.rowPointer = file.header.RowsCount
		return newError("dbase-file-goto-1", fmt.Errorf("%w, go to %v > %v", ErrEOF, row, file.header.RowsCount))
	}
	debugf("Going to row: %d", row)
	file.table.rowPointer = row
	return nil
}

// Skip adds offset to the internal row pointer.
// The pointer stops at the end of the file or at the first row.
func (file *File) Skip(offset int64) {
	newval := int64(file.table.rowPointer) + offset
	if newval >= int64(file.header.RowsCount) {
		newval = int64(file.header.RowsCount)
	}
	if newval < 0 {
		newval = 0
	}
	file.table.rowPointer = uint32(newval)
}

// Returns the raw bytes of the row at position, a view into the table buffer
func (file *File) readRow(position uint32) ([]byte, error) {
	if position >= file.header.RowsCount {
		return nil, newError("dbase-file-readrow-1", ErrEOF)
	}
	start := uint64(file.header.FirstRow) + uint64(position)*uint64(file.header.RowLength)
	return file.data[start : start+uint64(file.header.RowLength)], nil
}

// Returns the requested row at the internal row pointer.
func (file *File) Row() (*Row, error) {
	data, err := file.readRow(file.table.rowPointer)
	if err != nil {
		return nil, newError("dbase-file-row-1", err)
	}
	return file.BytesToRow(file.table.rowPointer, data)
}

// Reads the row and increments the row pointer by one
func (file *File) Next() (*Row, error) {
	row, err := file.Row()
	file.Skip(1)
	if err != nil {
		return nil, newError("dbase-file-next-1", err)
	}
	return row, nil
}

// Returns all rows from the current row pointer on as a slice
func (file *File) Rows(skipDeleted bool) ([]*Row, error) {
	rows := make([]*Row, 0)
	for !file.EOF() {
		row, err := file.Next()
		if err != nil {
			return nil, newError("dbase-file-rows-1", err)
		}
		if row.Deleted && skipDeleted {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Converts raw row data to a Row struct.
// A row starting with a blank (0x20) is active, any other delete flag marks it deleted.
// If the data points to a memo file, the memo is read as well.
func (file *File) BytesToRow(position uint32, data []byte) (*Row, error) {
	if len(data) < int(file.header.RowLength) {
		return nil, newErrorf("dbase-file-bytestorow-1", "invalid row data size %v Bytes < %v Bytes", len(data), file.header.RowLength)
	}
	row := &Row{
		handle:   file,
		Position: position,
		Deleted:  Marker(data[0]) != Active,
		fields:   make([]*Field, 0, len(file.table.columns)),
	}
	for _, column := range file.table.columns {
		raw := data[column.Position : column.Position+uint32(column.Length)]
		value, err := file.Interpret(raw, column)
		if err != nil {
			return nil, newError("dbase-file-bytestorow-2", fmt.Errorf("row %d: %w", position, err))
		}
		row.fields = append(row.fields, &Field{column: column, value: value})
	}
	return row, nil
}
