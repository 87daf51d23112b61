package dbase

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

// Containing DBF header information like dBase FileType, last change and rows count.
// https://docs.microsoft.com/en-us/previous-versions/visualstudio/foxpro/st4a0s68(v=vs.80)#table-header-record-structure
type Header struct {
	FileType   byte     // File type flag
	Year       uint8    // Last update year (offset from 1900)
	Month      uint8    // Last update month
	Day        uint8    // Last update day
	RowsCount  uint32   // Number of rows in file
	FirstRow   uint16   // Position of first data row (header length)
	RowLength  uint16   // Length of one data row, including delete flag
	Reserved   [16]byte // Reserved
	TableFlags byte     // Table flags
	CodePage   byte     // Code page mark
	Reserved2  [2]byte  // Reserved
}

// The raw header of the Memo file.
type MemoHeader struct {
	NextFree  uint32  // Location of next free block
	Unused    [2]byte // Unused
	BlockSize uint16  // Block size (bytes per block), zero for fixed block memo files
}

// Parses the year, month and day to time.Time.
// The year is stored as offset to 1900, so 123 is 2023.
func (h *Header) Modified() time.Time {
	return time.Date(1900+int(h.Year), time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}

// Version returns the file type byte as FileVersion
func (h *Header) Version() FileVersion {
	return FileVersion(h.FileType)
}

// Returns the number of columns the header length leaves room for
func (h *Header) ColumnsCount() uint16 {
	if h.FirstRow < HeaderSize+1 {
		return 0
	}
	return (h.FirstRow - HeaderSize - 1) / ColumnSize
}

// Returns the amount of records in the table
func (h *Header) RecordsCount() uint32 {
	return h.RowsCount
}

// Returns the calculated file size based on the header info
func (h *Header) FileSize() int64 {
	return int64(h.FirstRow) + int64(h.RowsCount)*int64(h.RowLength)
}

// HasMemo reports if the table flags announce a memo file
func (h *Header) HasMemo() bool {
	return h.TableFlags&byte(MemoFlag) != 0
}

// Reads the fixed 32 byte header from the start of the table buffer.
// LittleEndian - Integers in table files are stored with the least significant byte first.
func readHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, newError("dbase-header-read-1", fmt.Errorf("%w: %d bytes < %d bytes", ErrTruncatedHeader, len(buf), HeaderSize))
	}
	h := &Header{}
	err := binary.Read(bytes.NewReader(buf[:HeaderSize]), binary.LittleEndian, h)
	if err != nil {
		return nil, newError("dbase-header-read-2", err)
	}
	debugf("Header: type 0x%02x, rows %d, first row %d, row length %d, code page 0x%02x", h.FileType, h.RowsCount, h.FirstRow, h.RowLength, h.CodePage)
	return h, nil
}

// Checks the header values against the parsed columns
func (h *Header) validate(columns int) error {
	if h.RowLength == 0 {
		return newError("dbase-header-validate-1", fmt.Errorf("%w: row length is zero", ErrInvalidHeader))
	}
	minimum := HeaderSize + ColumnSize*columns + 1
	if int(h.FirstRow) < minimum {
		return newError("dbase-header-validate-2", fmt.Errorf("%w: header length %d < %d for %d columns", ErrInvalidHeader, h.FirstRow, minimum, columns))
	}
	return nil
}

// Reads the memo header, the block size is stored big endian at byte 6.
func readMemoHeader(buf []byte) (*MemoHeader, error) {
	if len(buf) < MemoHeaderSize {
		return nil, newError("dbase-header-readmemo-1", fmt.Errorf("%w: memo header %d bytes < %d bytes", ErrMalformedMemoBlock, len(buf), MemoHeaderSize))
	}
	h := &MemoHeader{}
	err := binary.Read(bytes.NewReader(buf[:8]), binary.BigEndian, h)
	if err != nil {
		return nil, newError("dbase-header-readmemo-2", err)
	}
	return h, nil
}
