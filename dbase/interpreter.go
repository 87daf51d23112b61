package dbase

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tells how a field value was produced.
type ValueKind uint8

const (
	// Decoded from the row bytes
	TextValue ValueKind = iota
	// Content of a memo blob, quoted in text output
	MemoValue
	// Placeholder for a column type without decoder
	UnsupportedValue
	// Placeholder for a memo reference without memo file
	MissingMemoValue
)

func (k ValueKind) String() string {
	switch k {
	case MemoValue:
		return "memo"
	case UnsupportedValue:
		return "unsupported"
	case MissingMemoValue:
		return "missing-memo"
	default:
		return "text"
	}
}

// Value is the decoded text of one field.
type Value struct {
	Text string
	Kind ValueKind
}

// Placeholder reports if the value stands in for content that could not be decoded
func (v Value) Placeholder() bool {
	return v.Kind == UnsupportedValue || v.Kind == MissingMemoValue
}

// CSV returns the text as written to a delimited line, memo content is quoted
func (v Value) CSV() string {
	if v.Kind == MemoValue {
		return `"` + v.Text + `"`
	}
	return v.Text
}

func (v Value) String() string {
	return v.Text
}

// Interpret converts raw column data to its text representation.
// For C, N, D and M columns a charset conversion is done.
// For M columns the data is read from the memo file.
//
// The decoded column types are:
//
// | Column Type | Column Type Name | Text |
// | ----------- | ---------------- | ---- |
// | C | Character | verbatim |
// | N | Numeric | verbatim |
// | D | Date | DD.MM.YYYY or empty |
// | L | Logical | true, false or empty |
// | I | Integer | unsigned decimal |
// | M | Memo | blob content, quoted in text output |
//
// All other types return a placeholder naming the missing implementation.
// Errors are only returned for memo references outside the memo file.
func (file *File) Interpret(raw []byte, column *Column) (Value, error) {
	if len(raw) != int(column.Length) {
		return Value{}, newErrorf("dbase-interpreter-interpret-1", "invalid length %v Bytes != %v Bytes at column field: %v", len(raw), column.Length, column.Name())
	}
	switch DataType(column.DataType) {
	case Character, Numeric:
		return file.parseCharacter(raw)
	case Date:
		return file.parseDate(raw)
	case Logical:
		return Value{Text: formatLogical(raw)}, nil
	case Integer:
		return file.parseInteger(raw)
	case MemoType:
		return file.parseMemo(raw, column)
	default:
		return placeholder(DataType(column.DataType)), nil
	}
}

func placeholder(dataType DataType) Value {
	text, ok := placeholders[dataType]
	if !ok {
		text = UnknownTypeText
	}
	return Value{Text: text, Kind: UnsupportedValue}
}

// C and N values are stored as text, the returned text is only trimmed if configured
func (file *File) parseCharacter(raw []byte) (Value, error) {
	text := file.toUTF8String(raw)
	if file.config.TrimSpaces {
		text = strings.TrimSpace(text)
	}
	return Value{Text: text}, nil
}

// D values are stored as text in format YYYYMMDD
func (file *File) parseDate(raw []byte) (Value, error) {
	return Value{Text: formatDate(file.toUTF8String(raw))}, nil
}

// I values are stored as 4 byte little endian integers
func (file *File) parseInteger(raw []byte) (Value, error) {
	if len(raw) != 4 {
		return Value{Text: InvalidIntegerText, Kind: UnsupportedValue}, nil
	}
	return Value{Text: strconv.FormatUint(uint64(binary.LittleEndian.Uint32(raw)), 10)}, nil
}

// M values contain the block in the memo file from where to read data
func (file *File) parseMemo(raw []byte, column *Column) (Value, error) {
	block := parseBlockNumber(raw)
	if block == 0 {
		return Value{}, nil
	}
	memo, err := file.memo.Read(block)
	if errors.Is(err, ErrNoMemo) {
		return Value{Text: MissingMemoText, Kind: MissingMemoValue}, nil
	}
	if err != nil {
		return Value{}, newError("dbase-interpreter-parsememo-1", fmt.Errorf("reading memo failed at column field: %v failed with error: %w", column.Name(), err))
	}
	text, err := file.memoConverter.Decode(memo)
	if err != nil {
		errorf("Decoding memo block %d failed, keeping raw bytes: %v", block, err)
		return Value{Text: string(memo), Kind: MemoValue}, nil
	}
	return Value{Text: string(text), Kind: MemoValue}, nil
}

// toUTF8String converts a byte slice to a UTF8 string using the converter.
// Undecodable content is kept byte for byte, one bad field never aborts a conversion.
func (file *File) toUTF8String(raw []byte) string {
	utf8, err := file.converter.Decode(raw)
	if err != nil {
		errorf("Decoding %d bytes failed, keeping raw bytes: %v", len(raw), err)
		return string(raw)
	}
	return string(utf8)
}
