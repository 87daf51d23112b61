package dbase

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// MemoFormat is the block layout of a memo file, determined once from its header.
type MemoFormat uint8

const (
	// No memo file was supplied
	MissingMemo MemoFormat = iota
	// dBase III/IV layout: 512 byte blocks, blobs end at 0x1A
	FixedBlock
	// FoxPro layout: declared block size, blobs carry a big endian length
	LengthPrefixed
)

func (f MemoFormat) String() string {
	switch f {
	case FixedBlock:
		return "fixed-block"
	case LengthPrefixed:
		return "length-prefixed"
	default:
		return "missing"
	}
}

// dBase IV writes this signature in front of blobs in fixed block memo files
var dBaseIVBlockSignature = []byte{0xFF, 0xFF, 0x08, 0x00}

// Memo resolves block numbers to the raw blob bytes of a memo file.
type Memo struct {
	header    *MemoHeader
	data      []byte
	format    MemoFormat
	blockSize uint32
}

// NewMemo reads the memo header and determines format and block size.
// A nil buffer results in a memo without file, lookups then report ErrNoMemo.
func NewMemo(data []byte) (*Memo, error) {
	if data == nil {
		return &Memo{format: MissingMemo}, nil
	}
	header, err := readMemoHeader(data)
	if err != nil {
		return nil, newError("dbase-memo-new-1", err)
	}
	memo := &Memo{
		header:    header,
		data:      data,
		format:    LengthPrefixed,
		blockSize: uint32(header.BlockSize),
	}
	if header.BlockSize == 0 {
		memo.format = FixedBlock
		memo.blockSize = DefaultBlockSize
		// dBase IV stores the block size little endian at byte 20
		declared := binary.LittleEndian.Uint16(data[20:22])
		if declared != 0 && declared%DefaultBlockSize == 0 {
			memo.blockSize = uint32(declared)
		}
	}
	debugf("Memo file: %v format, block size %d, %d bytes", memo.format, memo.blockSize, len(data))
	return memo, nil
}

// Returns the memo layout
func (m *Memo) Format() MemoFormat {
	return m.format
}

// Returns the block size in bytes
func (m *Memo) BlockSize() uint32 {
	return m.blockSize
}

// Returns the raw memo header, nil without memo file
func (m *Memo) Header() *MemoHeader {
	return m.header
}

// Missing reports if no memo file was supplied
func (m *Memo) Missing() bool {
	return m.format == MissingMemo
}

// Read returns the raw content of the blob starting at block.
// Block 0 is the "no blob" reference and always returns an empty slice.
func (m *Memo) Read(block uint32) ([]byte, error) {
	if block == 0 {
		return []byte{}, nil
	}
	if m.Missing() {
		return nil, newError("dbase-memo-read-1", ErrNoMemo)
	}
	offset := uint64(block) * uint64(m.blockSize)
	if offset >= uint64(len(m.data)) {
		return nil, newError("dbase-memo-read-2", fmt.Errorf("%w: block %d at offset %d is past the end of the %d byte memo file", ErrMalformedMemoBlock, block, offset, len(m.data)))
	}
	debugf("Reading memo block %d at position %d", block, offset)
	if m.format == LengthPrefixed {
		return m.readLengthPrefixed(block, offset)
	}
	return m.readFixedBlock(block, offset)
}

// FoxPro blob: 4 byte type signature, 4 byte big endian length, content
func (m *Memo) readLengthPrefixed(block uint32, offset uint64) ([]byte, error) {
	start := offset + MemoBlockHeaderSize
	if start > uint64(len(m.data)) {
		return nil, newError("dbase-memo-readlengthprefixed-1", fmt.Errorf("%w: block header of block %d exceeds the memo file", ErrMalformedMemoBlock, block))
	}
	length := uint64(binary.BigEndian.Uint32(m.data[offset+4 : start]))
	end := start + length
	if end > uint64(len(m.data)) {
		return nil, newError("dbase-memo-readlengthprefixed-2", fmt.Errorf("%w: block %d declares %d bytes, only %d available", ErrMalformedMemoBlock, block, length, uint64(len(m.data))-start))
	}
	return m.data[start:end], nil
}

// dBase blob: content up to the first 0x1A, which must exist, or a dBase IV block with
// little endian length (including the 8 header bytes) behind the signature.
func (m *Memo) readFixedBlock(block uint32, offset uint64) ([]byte, error) {
	content := m.data[offset:]
	if len(content) >= MemoBlockHeaderSize && bytes.Equal(content[:4], dBaseIVBlockSignature) {
		length := uint64(binary.LittleEndian.Uint32(content[4:8]))
		if length < MemoBlockHeaderSize || length > uint64(len(content)) {
			return nil, newError("dbase-memo-readfixedblock-1", fmt.Errorf("%w: block %d declares %d bytes, only %d available", ErrMalformedMemoBlock, block, length, len(content)))
		}
		return content[MemoBlockHeaderSize:length], nil
	}
	if end := bytes.IndexByte(content, byte(EOFMarker)); end >= 0 {
		return content[:end], nil
	}
	return nil, newError("dbase-memo-readfixedblock-2", fmt.Errorf("%w: block %d has no end marker", ErrMalformedMemoBlock, block))
}
