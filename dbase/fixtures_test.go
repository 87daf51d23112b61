package dbase

import (
	"encoding/binary"
	"strings"
)

type testColumn struct {
	name     string
	dataType DataType
	length   uint8
	position uint32 // 0 leaves the displacement to the reader
	flag     ColumnFlag
}

// Builds a table buffer with the given columns and raw rows, rows include the delete flag.
func buildTable(codePage byte, columns []testColumn, rows ...[]byte) []byte {
	rowLength := 1
	for _, column := range columns {
		rowLength += int(column.length)
	}
	firstRow := HeaderSize + ColumnSize*len(columns) + 1
	buf := make([]byte, firstRow, firstRow+rowLength*len(rows)+1)
	buf[0] = byte(FoxBasePlus)
	buf[1], buf[2], buf[3] = 123, 4, 5
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(rows)))
	binary.LittleEndian.PutUint16(buf[8:10], uint16(firstRow))
	binary.LittleEndian.PutUint16(buf[10:12], uint16(rowLength))
	buf[29] = codePage
	for i, column := range columns {
		descriptor := buf[HeaderSize+i*ColumnSize:]
		copy(descriptor[:11], column.name)
		descriptor[11] = byte(column.dataType)
		binary.LittleEndian.PutUint32(descriptor[12:16], column.position)
		descriptor[16] = column.length
		descriptor[18] = byte(column.flag)
		if column.dataType == MemoType {
			buf[28] |= byte(MemoFlag)
		}
	}
	buf[firstRow-1] = byte(ColumnEnd)
	for _, row := range rows {
		buf = append(buf, row...)
	}
	return append(buf, byte(EOFMarker))
}

// Concatenates the delete flag and the raw field values to a row
func buildRow(deleted bool, fields ...string) []byte {
	flag := byte(Active)
	if deleted {
		flag = byte(Deleted)
	}
	return append([]byte{flag}, strings.Join(fields, "")...)
}

// Pads s with spaces to length n
func pad(s string, n int) string {
	return s + strings.Repeat(" ", n-len(s))
}

// Returns the 4 byte little endian representation of a block number
func blockRef(block uint32) string {
	raw := make([]byte, 4)
	binary.LittleEndian.PutUint32(raw, block)
	return string(raw)
}

// Builds a length prefixed memo file and returns it with the block number of every blob
func buildFPT(blockSize uint16, blobs ...string) ([]byte, []uint32) {
	buf := make([]byte, MemoHeaderSize)
	binary.BigEndian.PutUint16(buf[6:8], blockSize)
	blocks := make([]uint32, 0, len(blobs))
	for _, blob := range blobs {
		blocks = append(blocks, uint32(len(buf)/int(blockSize)))
		sub := make([]byte, MemoBlockHeaderSize)
		binary.BigEndian.PutUint32(sub[0:4], 1)
		binary.BigEndian.PutUint32(sub[4:8], uint32(len(blob)))
		buf = append(buf, sub...)
		buf = append(buf, blob...)
		for len(buf)%int(blockSize) != 0 {
			buf = append(buf, 0)
		}
	}
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(buf)/int(blockSize)))
	return buf, blocks
}

// Builds a fixed block memo file with 512 byte blocks, blobs end with two 0x1A bytes
func buildDBT(blobs ...string) ([]byte, []uint32) {
	buf := make([]byte, MemoHeaderSize)
	blocks := make([]uint32, 0, len(blobs))
	for _, blob := range blobs {
		blocks = append(blocks, uint32(len(buf)/DefaultBlockSize))
		buf = append(buf, blob...)
		buf = append(buf, byte(EOFMarker), byte(EOFMarker))
		for len(buf)%DefaultBlockSize != 0 {
			buf = append(buf, 0)
		}
	}
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(buf)/DefaultBlockSize))
	return buf, blocks
}
