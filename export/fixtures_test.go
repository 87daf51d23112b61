package export

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testRow struct {
	deleted bool
	name    string // 5 bytes
	memo    uint32
}

// Writes a table with a 5 byte character column and a 4 byte memo column
func writeTable(t *testing.T, path string, rows ...testRow) {
	t.Helper()
	const firstRow = 32 + 2*32 + 1
	const rowLength = 1 + 5 + 4
	buf := make([]byte, firstRow)
	buf[0] = 0x30
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(rows)))
	binary.LittleEndian.PutUint16(buf[8:10], firstRow)
	binary.LittleEndian.PutUint16(buf[10:12], rowLength)
	buf[28] = 0x02
	buf[29] = 0x03
	copy(buf[32:], "NAME")
	buf[32+11] = 'C'
	buf[32+16] = 5
	copy(buf[64:], "NOTES")
	buf[64+11] = 'M'
	buf[64+16] = 4
	buf[firstRow-1] = 0x0D
	for _, row := range rows {
		flag := byte(' ')
		if row.deleted {
			flag = '*'
		}
		buf = append(buf, flag)
		buf = append(buf, row.name...)
		buf = binary.LittleEndian.AppendUint32(buf, row.memo)
	}
	buf = append(buf, 0x1A)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf, 0o600))
}

// Writes a FoxPro memo file with 64 byte blocks, the first blob is at block 8
func writeMemo(t *testing.T, path string, blobs ...string) {
	t.Helper()
	buf := make([]byte, 512)
	binary.BigEndian.PutUint16(buf[6:8], 64)
	for _, blob := range blobs {
		buf = binary.BigEndian.AppendUint32(buf, 1)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(blob)))
		buf = append(buf, blob...)
		for len(buf)%64 != 0 {
			buf = append(buf, 0)
		}
	}
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(buf)/64))
	require.NoError(t, os.WriteFile(path, buf, 0o600))
}
