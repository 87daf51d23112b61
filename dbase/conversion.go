package dbase

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
)

// Reformats a YYYYMMDD date to DD.MM.YYYY.
// Anything that is not 8 characters after trimming, blank dates included, is no date.
func formatDate(yyyymmdd string) string {
	date := strings.TrimSpace(yyyymmdd)
	if len(date) != 8 {
		return ""
	}
	return date[6:8] + "." + date[4:6] + "." + date[0:4]
}

// Maps the logical markers y/t and n/f to true and false, everything else is unset
func formatLogical(raw []byte) string {
	value := bytes.TrimSpace(raw)
	if len(value) != 1 {
		return ""
	}
	switch value[0] {
	case 'y', 'Y', 't', 'T':
		return "true"
	case 'n', 'N', 'f', 'F':
		return "false"
	default:
		return ""
	}
}

// Returns the memo block a memo column refers to.
// Four byte columns store the block little endian, older tables store it as decimal text.
// Unparsable text is block 0, the format's own "no blob" reference.
func parseBlockNumber(raw []byte) uint32 {
	if len(raw) == 4 {
		return binary.LittleEndian.Uint32(raw)
	}
	text := strings.TrimSpace(string(bytes.ReplaceAll(raw, []byte{byte(Null)}, nil)))
	block, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(block)
}
