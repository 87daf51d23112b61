// Package export writes the text streams of dBase tables to disk.
//
// Every table is decoded completely in memory before anything is written, and
// every output file is written to a temporary file that is renamed into place.
// A table that fails to decode leaves no output behind.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/dbfkit/go-dbase/dbase"
)

// Suffix of the deleted stream's file name, in front of the extension
const DeletedSuffix = "_del"

// Options configures an export run.
type Options struct {
	OutputDir   string       // Directory for the output files, next to the table if empty.
	Compression Compression  // Compression of the output files.
	Workers     int          // Tables converted in parallel, 1 if not positive.
	Table       dbase.Config // Template for opening tables, Filename is set per table.
	Logger      *slog.Logger // Logger for progress and failures, discarded if nil.
}

// Exporter converts single tables to text files.
type Exporter struct {
	options Options
	logger  *slog.Logger
}

// New returns an exporter for the options
func New(options Options) *Exporter {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{options: options, logger: logger}
}

// OutputPaths returns the paths of the active and the deleted stream of a table
func (e *Exporter) OutputPaths(table string) (string, string) {
	dir := e.options.OutputDir
	if dir == "" {
		dir = filepath.Dir(table)
	}
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(table), filepath.Ext(table)))
	ext := strings.ToLower(string(dbase.CSV)) + e.options.Compression.Extension()
	return filepath.Join(dir, base+ext), filepath.Join(dir, base+DeletedSuffix+ext)
}

// Export converts one table. The returned report is never nil, on failure it
// names the table and carries the error message.
func (e *Exporter) Export(ctx context.Context, table string) (*FileReport, error) {
	started := time.Now()
	report := &FileReport{Table: table}
	err := e.export(ctx, table, report)
	report.Duration = time.Since(started)
	if err != nil {
		report.Error = err.Error()
		e.logger.Error("export failed", "table", table, "error", err, "trace", dbase.GetErrorTrace(err))
		return report, err
	}
	e.logger.Info("exported table",
		"table", table,
		"active_rows", report.ActiveRows,
		"deleted_rows", report.DeletedRows,
		"duration", report.Duration,
	)
	return report, nil
}

func (e *Exporter) export(ctx context.Context, table string, report *FileReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	config := e.options.Table
	config.Filename = table
	file, err := dbase.OpenTable(&config)
	if err != nil {
		return fmt.Errorf("open %s: %w", table, err)
	}
	if config.IO == nil {
		memo, err := dbase.FindMemoFile(table)
		if err != nil {
			return fmt.Errorf("find memo file of %s: %w", table, err)
		}
		report.Memo = memo
	}
	report.MemoFormat = file.Memo().Format().String()
	report.CodePage = file.Header().CodePage
	report.Columns = int(file.ColumnsCount())

	active := &bytes.Buffer{}
	deleted := &bytes.Buffer{}
	stats, err := file.WriteCSV(active, deleted)
	if err != nil {
		return fmt.Errorf("convert %s: %w", table, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	report.ActiveRows = stats.ActiveRows
	report.DeletedRows = stats.DeletedRows

	activePath, deletedPath := e.OutputPaths(table)
	if dir := filepath.Dir(activePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := e.writeFile(activePath, active.Bytes()); err != nil {
		return err
	}
	report.ActiveFile = activePath
	report.ActiveChecksum = checksum(active.Bytes())
	if stats.DeletedRows == 0 {
		// A deleted stream left by an earlier run would no longer match the table
		if err := os.Remove(deletedPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", deletedPath, err)
		}
		return nil
	}
	if err := e.writeFile(deletedPath, deleted.Bytes()); err != nil {
		_ = os.Remove(activePath)
		report.ActiveFile = ""
		report.ActiveChecksum = ""
		return err
	}
	report.DeletedFile = deletedPath
	report.DeletedChecksum = checksum(deleted.Bytes())
	return nil
}

// Writes data compressed to a temporary file in the target directory and renames it to path
func (e *Exporter) writeFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	writer, err := e.options.Compression.NewWriter(tmp)
	if err != nil {
		return err
	}
	if _, err = writer.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	e.logger.Debug("wrote output file", "path", path, "bytes", len(data), "compression", string(e.options.Compression))
	return nil
}

// xxhash64 of the uncompressed stream as hex
func checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
