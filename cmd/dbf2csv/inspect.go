package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/dbfkit/go-dbase/dbase"
)

type columnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Position uint32 `json:"position"`
	Length   uint8  `json:"length"`
	Decimals uint8  `json:"decimals"`
}

type tableInfo struct {
	Table       string       `json:"table"`
	Memo        string       `json:"memo,omitempty"`
	MemoFormat  string       `json:"memo_format"`
	BlockSize   uint32       `json:"block_size,omitempty"`
	Version     byte         `json:"version"`
	VersionName string       `json:"version_name"`
	Modified    string       `json:"modified"`
	Rows        uint32       `json:"rows"`
	FirstRow    uint16       `json:"first_row"`
	RowLength   uint16       `json:"row_length"`
	CodePage    byte         `json:"code_page"`
	Columns     []columnInfo `json:"columns"`
}

func inspectCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header and the columns of a table",
		ArgsUsage: "<table>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print as JSON", Destination: &asJSON},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			logger := newLogger(os.Stderr, logLevel, logFormat, debug)
			if c.Args().Len() != 1 {
				return cli.Exit("error: inspect needs exactly one table", 1)
			}
			info, err := inspectTable(c.Args().First(), interpretCodePage)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			logger.Debug("inspected table", "table", info.Table, "version", info.VersionName, "columns", len(info.Columns))
			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(info)
			}
			return printTable(os.Stdout, info)
		},
	}
}

func inspectTable(path string, interpret bool) (*tableInfo, error) {
	file, err := dbase.OpenTable(&dbase.Config{Filename: path, InterpretCodePage: interpret})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	memo, err := dbase.FindMemoFile(path)
	if err != nil {
		return nil, err
	}
	header := file.Header()
	info := &tableInfo{
		Table:       path,
		Memo:        memo,
		MemoFormat:  file.Memo().Format().String(),
		BlockSize:   file.Memo().BlockSize(),
		Version:     header.FileType,
		VersionName: header.Version().String(),
		Modified:    header.Modified().Format("2006-01-02"),
		Rows:        header.RowsCount,
		FirstRow:    header.FirstRow,
		RowLength:   header.RowLength,
		CodePage:    header.CodePage,
		Columns:     make([]columnInfo, 0, file.ColumnsCount()),
	}
	names := file.ColumnNames()
	for i, column := range file.Columns() {
		info.Columns = append(info.Columns, columnInfo{
			Name:     names[i],
			Type:     column.Type(),
			Position: column.Position,
			Length:   column.Length,
			Decimals: column.Decimals,
		})
	}
	return info, nil
}

func printTable(w io.Writer, info *tableInfo) error {
	fmt.Fprintf(w, "Table:     %s\n", info.Table)
	fmt.Fprintf(w, "Version:   0x%02x %s\n", info.Version, info.VersionName)
	fmt.Fprintf(w, "Modified:  %s\n", info.Modified)
	fmt.Fprintf(w, "Rows:      %d (first at %d, %d bytes each)\n", info.Rows, info.FirstRow, info.RowLength)
	fmt.Fprintf(w, "Code page: 0x%02x\n", info.CodePage)
	if info.Memo != "" {
		fmt.Fprintf(w, "Memo:      %s (%s, %d byte blocks)\n", info.Memo, info.MemoFormat, info.BlockSize)
	} else {
		fmt.Fprintf(w, "Memo:      none\n")
	}
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tPOS\tLEN\tDEC")
	for _, column := range info.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", column.Name, column.Type, column.Position, column.Length, column.Decimals)
	}
	return tw.Flush()
}
