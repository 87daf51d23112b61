package dbase

import (
	"errors"
	"testing"
	"time"
)

func TestHeaderModified(t *testing.T) {
	header := &Header{
		Year:  123, // 2023
		Month: 4,
		Day:   5,
	}
	expected := time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC)
	if !header.Modified().Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, header.Modified())
	}
}

func TestHeaderVersion(t *testing.T) {
	tests := []struct {
		fileType byte
		expected string
	}{
		{0x03, "FoxBASE+/dBase III plus, no memo"},
		{0x30, "Visual FoxPro"},
		{0x8B, "dBase IV with memo"},
		{0xF5, "FoxPro 2.x with memo"},
		{0x7F, "unknown (0x7f)"},
	}
	for _, tt := range tests {
		header := &Header{FileType: tt.fileType}
		if header.Version().String() != tt.expected {
			t.Errorf("File type 0x%02x: expected %q, got %q", tt.fileType, tt.expected, header.Version().String())
		}
	}
}

func TestReadHeader(t *testing.T) {
	data := buildTable(0x03, []testColumn{
		{name: "NAME", dataType: Character, length: 10},
		{name: "BORN", dataType: Date, length: 8},
	}, buildRow(false, pad("Alice", 10), "20230405"))

	header, err := readHeader(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if header.RowsCount != 1 {
		t.Errorf("Expected 1 row, got %d", header.RowsCount)
	}
	if header.FirstRow != 32+2*32+1 {
		t.Errorf("Expected first row at 97, got %d", header.FirstRow)
	}
	if header.RowLength != 19 {
		t.Errorf("Expected row length 19, got %d", header.RowLength)
	}
	if header.CodePage != 0x03 {
		t.Errorf("Expected code page 0x03, got 0x%02x", header.CodePage)
	}
	if header.ColumnsCount() != 2 {
		t.Errorf("Expected 2 columns, got %d", header.ColumnsCount())
	}
	if header.FileSize() != 97+19 {
		t.Errorf("Expected file size 116, got %d", header.FileSize())
	}
	if header.HasMemo() {
		t.Error("Expected no memo flag")
	}
}

func TestReadHeader_Truncated(t *testing.T) {
	for _, size := range []int{0, 1, 31} {
		_, err := readHeader(make([]byte, size))
		if !errors.Is(err, ErrTruncatedHeader) {
			t.Errorf("Expected ErrTruncatedHeader for %d bytes, got %v", size, err)
		}
	}
}

func TestHeaderValidate(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		columns int
		valid   bool
	}{
		{"valid", Header{FirstRow: 97, RowLength: 10}, 2, true},
		{"no columns", Header{FirstRow: 33, RowLength: 1}, 0, true},
		{"zero row length", Header{FirstRow: 97, RowLength: 0}, 2, false},
		{"header too short", Header{FirstRow: 96, RowLength: 10}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.validate(tt.columns)
			if tt.valid && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("Expected ErrInvalidHeader, got %v", err)
			}
		})
	}
}

func TestReadMemoHeader(t *testing.T) {
	data, _ := buildFPT(64, "x")
	header, err := readMemoHeader(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if header.BlockSize != 64 {
		t.Errorf("Expected block size 64, got %d", header.BlockSize)
	}
	if header.NextFree != 9 {
		t.Errorf("Expected next free block 9, got %d", header.NextFree)
	}

	_, err = readMemoHeader(make([]byte, 100))
	if !errors.Is(err, ErrMalformedMemoBlock) {
		t.Errorf("Expected ErrMalformedMemoBlock, got %v", err)
	}
}
