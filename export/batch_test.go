package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	tables := make([]string, 0)
	for i := 0; i < 8; i++ {
		table := filepath.Join(dir, fmt.Sprintf("t%d.dbf", i))
		writeTable(t, table, testRow{name: "Alice"}, testRow{deleted: true, name: "Bob  "})
		tables = append(tables, table)
	}
	broken := filepath.Join(dir, "broken.dbf")
	require.NoError(t, os.WriteFile(broken, []byte{0x30}, 0o600))
	tables = append(tables, broken)

	report, err := Run(context.Background(), tables, Options{Workers: 3, OutputDir: filepath.Join(dir, "out")})
	require.NoError(t, err)
	require.Len(t, report.Files, 9)
	assert.NotEqual(t, uuid.Nil, report.RunID)
	assert.False(t, report.Finished.Before(report.Started))

	for i, file := range report.Files {
		assert.Equal(t, tables[i], file.Table, "reports keep the input order")
	}
	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, broken, failures[0].Table)

	active, deleted := report.Totals()
	assert.Equal(t, 8, active)
	assert.Equal(t, 8, deleted)
	for i := 0; i < 8; i++ {
		assert.FileExists(t, filepath.Join(dir, "out", fmt.Sprintf("t%d.csv", i)))
		assert.FileExists(t, filepath.Join(dir, "out", fmt.Sprintf("t%d_del.csv", i)))
	}
}

func TestRun_Canceled(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "plain.dbf")
	writeTable(t, table, testRow{name: "Alice"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, []string{table}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, report.Files, 1)
	assert.True(t, report.Files[0].Failed())
}

func TestReport_JSON(t *testing.T) {
	report := NewReport()
	report.Files = append(report.Files, &FileReport{Table: "a.dbf", ActiveRows: 2}, &FileReport{Table: "b.dbf", Error: "TRUNCATED_HEADER"})

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report.RunID.String(), decoded["run_id"])
	files, ok := decoded["files"].([]interface{})
	require.True(t, ok)
	assert.Len(t, files, 2)
	assert.Equal(t, "TRUNCATED_HEADER", files[1].(map[string]interface{})["error"])

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.Save(path))
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(saved))
}
