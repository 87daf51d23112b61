package export

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbfkit/go-dbase/dbase"
)

func TestExport(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "Customers.DBF")
	writeTable(t, table,
		testRow{name: "Alice", memo: 8},
		testRow{deleted: true, name: "Bob  "},
		testRow{name: "Carol"},
	)
	writeMemo(t, filepath.Join(dir, "CUSTOMERS.FPT"), "vip; pays late")

	out := filepath.Join(dir, "out")
	exporter := New(Options{OutputDir: out, Table: dbase.Config{TrimSpaces: true}})
	report, err := exporter.Export(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, 2, report.ActiveRows)
	assert.Equal(t, 1, report.DeletedRows)
	assert.Equal(t, 2, report.Columns)
	assert.Equal(t, byte(0x03), report.CodePage)
	assert.Equal(t, "length-prefixed", report.MemoFormat)
	assert.Equal(t, filepath.Join(dir, "CUSTOMERS.FPT"), report.Memo)
	assert.False(t, report.Failed())

	active, err := os.ReadFile(filepath.Join(out, "customers.csv"))
	require.NoError(t, err)
	assert.Equal(t, "NAME;NOTES\r\nAlice;\"vip; pays late\"\r\nCarol;\r\n", string(active))
	assert.Equal(t, filepath.Join(out, "customers.csv"), report.ActiveFile)
	assert.Equal(t, checksum(active), report.ActiveChecksum)

	deleted, err := os.ReadFile(filepath.Join(out, "customers_del.csv"))
	require.NoError(t, err)
	assert.Equal(t, "NAME;NOTES\r\nBob;\r\n", string(deleted))
	assert.Equal(t, checksum(deleted), report.DeletedChecksum)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary files must not be left behind")
}

func TestExport_NoDeletedRows(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "plain.dbf")
	writeTable(t, table, testRow{name: "Alice"})
	stale := filepath.Join(dir, "plain_del.csv")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))

	report, err := New(Options{}).Export(context.Background(), table)
	require.NoError(t, err)
	assert.Empty(t, report.DeletedFile)
	assert.FileExists(t, filepath.Join(dir, "plain.csv"))
	assert.NoFileExists(t, stale)
	assert.Empty(t, report.Memo)
	assert.Equal(t, "missing", report.MemoFormat)
}

func TestExport_MissingMemo(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "nomemo.dbf")
	writeTable(t, table, testRow{name: "Alice", memo: 8})

	_, err := New(Options{}).Export(context.Background(), table)
	require.NoError(t, err)
	active, err := os.ReadFile(filepath.Join(dir, "nomemo.csv"))
	require.NoError(t, err)
	assert.Equal(t, "NAME;NOTES\r\nAlice;memofile missing\r\n", string(active))
}

func TestExport_Failure(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "broken.dbf")
	require.NoError(t, os.WriteFile(table, []byte("short"), 0o600))

	report, err := New(Options{}).Export(context.Background(), table)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbase.ErrTruncatedHeader)
	assert.True(t, report.Failed())
	assert.Equal(t, table, report.Table)
	assert.NoFileExists(t, filepath.Join(dir, "broken.csv"))
}

func TestExport_MalformedMemoLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "bad.dbf")
	writeTable(t, table, testRow{name: "Alice", memo: 8}, testRow{name: "Bob  ", memo: 400})
	writeMemo(t, filepath.Join(dir, "bad.fpt"), "ok")

	_, err := New(Options{}).Export(context.Background(), table)
	assert.ErrorIs(t, err, dbase.ErrMalformedMemoBlock)
	assert.NoFileExists(t, filepath.Join(dir, "bad.csv"))
}

func TestExport_Canceled(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "plain.dbf")
	writeTable(t, table, testRow{name: "Alice"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).Export(ctx, table)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "plain.csv"))
}

func TestExport_Compression(t *testing.T) {
	tests := []struct {
		compression Compression
		extension   string
		decompress  func(t *testing.T, r io.Reader) []byte
	}{
		{Gzip, ".csv.gz", func(t *testing.T, r io.Reader) []byte {
			reader, err := gzip.NewReader(r)
			require.NoError(t, err)
			data, err := io.ReadAll(reader)
			require.NoError(t, err)
			return data
		}},
		{Zstd, ".csv.zst", func(t *testing.T, r io.Reader) []byte {
			decoder, err := zstd.NewReader(r)
			require.NoError(t, err)
			defer decoder.Close()
			data, err := io.ReadAll(decoder)
			require.NoError(t, err)
			return data
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.compression), func(t *testing.T) {
			dir := t.TempDir()
			table := filepath.Join(dir, "plain.dbf")
			writeTable(t, table, testRow{name: "Alice"})

			report, err := New(Options{Compression: tt.compression}).Export(context.Background(), table)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "plain"+tt.extension), report.ActiveFile)

			compressed, err := os.ReadFile(report.ActiveFile)
			require.NoError(t, err)
			data := tt.decompress(t, bytes.NewReader(compressed))
			assert.Equal(t, "NAME;NOTES\r\nAlice;\r\n", string(data))
			assert.Equal(t, checksum(data), report.ActiveChecksum)
		})
	}
}

func TestChecksum(t *testing.T) {
	data := []byte("NAME\r\n")
	assert.Len(t, checksum(data), 16)
	assert.Equal(t, xxhash.Sum64(data), xxhash.Sum64String("NAME\r\n"))
	assert.NotEqual(t, checksum(data), checksum([]byte("NAME\r\nx")))
}

func TestParseCompression(t *testing.T) {
	for name, expected := range map[string]Compression{
		"":     None,
		"none": None,
		"GZIP": Gzip,
		"gz":   Gzip,
		"zstd": Zstd,
		"zst":  Zstd,
	} {
		c, err := ParseCompression(name)
		require.NoError(t, err)
		assert.Equal(t, expected, c)
	}
	_, err := ParseCompression("lz4")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}
