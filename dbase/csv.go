package dbase

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Line terminator of the text output
const CRLF = "\r\n"

// CSVWriter serializes rows as separated text lines.
// The header line with the column names is written once, either explicitly with
// WriteHeader or before the first row.
// Values are not escaped, only memo content is quoted.
type CSVWriter struct {
	w         *bufio.Writer
	converter EncodingConverter // Encodes the output, nil writes UTF-8
	separator string
	trailing  bool
	names     []string
	header    bool
	rows      int
}

// NewCSVWriter returns a writer for a stream with the given column names.
// Output is encoded with converter unless config.UTF8 is set or converter is nil.
func NewCSVWriter(w io.Writer, names []string, converter EncodingConverter, config *Config) *CSVWriter {
	writer := &CSVWriter{
		w:         bufio.NewWriter(w),
		converter: converter,
		separator: string(config.separator()),
		names:     names,
	}
	if config != nil {
		writer.trailing = config.TrailingSeparator
		if config.UTF8 {
			writer.converter = nil
		}
	}
	return writer
}

// WriteHeader writes the column names, later calls do nothing
func (c *CSVWriter) WriteHeader() error {
	if c.header {
		return nil
	}
	c.header = true
	return c.writeLine(c.names)
}

// Write writes one line with the CSV text of values
func (c *CSVWriter) Write(values []Value) error {
	if err := c.WriteHeader(); err != nil {
		return err
	}
	texts := make([]string, len(values))
	for i, value := range values {
		texts[i] = value.CSV()
	}
	if err := c.writeLine(texts); err != nil {
		return err
	}
	c.rows++
	return nil
}

// Returns the number of rows written, the header excluded
func (c *CSVWriter) Rows() int {
	return c.rows
}

// Flush writes buffered lines to the underlying writer
func (c *CSVWriter) Flush() error {
	if err := c.w.Flush(); err != nil {
		return newError("dbase-csv-flush-1", err)
	}
	return nil
}

func (c *CSVWriter) writeLine(texts []string) error {
	line := strings.Join(texts, c.separator)
	if c.trailing && len(texts) > 0 {
		line += c.separator
	}
	out := []byte(line + CRLF)
	if c.converter != nil {
		encoded, err := c.converter.Encode(out)
		if err != nil {
			return newError("dbase-csv-writeline-1", err)
		}
		out = encoded
	}
	if _, err := c.w.Write(out); err != nil {
		return newError("dbase-csv-writeline-2", err)
	}
	return nil
}

// Stats counts the rows of both output streams
type Stats struct {
	ActiveRows  int
	DeletedRows int
}

// WriteCSV decodes every row from the start of the table and writes active rows
// to active and deleted rows to deleted. The active stream always gets the header
// line, the deleted stream only when there is at least one deleted row.
// A nil deleted writer drops the deleted stream, the rows are still decoded and counted.
func (file *File) WriteCSV(active io.Writer, deleted io.Writer) (Stats, error) {
	stats := Stats{}
	if err := file.GoTo(0); err != nil {
		return stats, newError("dbase-csv-writecsv-1", err)
	}
	if deleted == nil {
		deleted = io.Discard
	}
	names := file.ColumnNames()
	activeWriter := NewCSVWriter(active, names, file.converter, file.config)
	deletedWriter := NewCSVWriter(deleted, names, file.converter, file.config)
	if err := activeWriter.WriteHeader(); err != nil {
		return stats, newError("dbase-csv-writecsv-2", err)
	}
	for !file.EOF() {
		row, err := file.Next()
		if err != nil {
			return stats, newError("dbase-csv-writecsv-3", err)
		}
		writer := activeWriter
		if row.Deleted {
			writer = deletedWriter
		}
		if err := writer.Write(row.Values()); err != nil {
			return stats, newError("dbase-csv-writecsv-4", fmt.Errorf("row %d: %w", row.Position, err))
		}
	}
	if err := activeWriter.Flush(); err != nil {
		return stats, newError("dbase-csv-writecsv-5", err)
	}
	if err := deletedWriter.Flush(); err != nil {
		return stats, newError("dbase-csv-writecsv-6", err)
	}
	stats.ActiveRows = activeWriter.Rows()
	stats.DeletedRows = deletedWriter.Rows()
	debugf("Wrote %d active and %d deleted rows", stats.ActiveRows, stats.DeletedRows)
	return stats, nil
}

// Result holds both text streams of a conversion
type Result struct {
	Stats
	Active  []byte // Header line and all active rows
	Deleted []byte // Header line and all deleted rows, nil if no row is deleted
}

// Convert decodes a table and its optional memo file into the active and the deleted text stream.
// Either the whole table is decoded or an error is returned, there is no partial result.
func Convert(data []byte, memoData []byte, config *Config) (*Result, error) {
	file, err := Open(data, memoData, config)
	if err != nil {
		return nil, newError("dbase-csv-convert-1", err)
	}
	active := &bytes.Buffer{}
	deleted := &bytes.Buffer{}
	stats, err := file.WriteCSV(active, deleted)
	if err != nil {
		return nil, newError("dbase-csv-convert-2", err)
	}
	result := &Result{Stats: stats, Active: active.Bytes()}
	if stats.DeletedRows > 0 {
		result.Deleted = deleted.Bytes()
	}
	return result, nil
}
