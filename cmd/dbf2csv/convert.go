package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dbfkit/go-dbase/dbase"
	"github.com/dbfkit/go-dbase/export"
)

func convertAction(ctx context.Context, c *cli.Command) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: load config: %v", err), 1)
	}
	applyConfig(c, cfg)
	logger := newLogger(os.Stderr, logLevel, logFormat, debug)

	if c.Args().Len() == 0 {
		return cli.ShowAppHelp(c)
	}
	options, err := exportOptions(logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	tables, err := export.Discover(c.Args().Slice(), recursive)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	if len(tables) == 0 {
		logger.Warn("no tables found", "paths", c.Args().Slice())
		return nil
	}

	report, runErr := export.Run(ctx, tables, options)
	if reportPath != "" {
		if err := report.Save(reportPath); err != nil {
			return cli.Exit(fmt.Sprintf("error: %v", err), 1)
		}
		logger.Info("wrote report", "path", reportPath)
	}
	if runErr != nil {
		return cli.Exit(fmt.Sprintf("error: %v", runErr), 1)
	}
	if failures := report.Failures(); len(failures) > 0 {
		return cli.Exit(fmt.Sprintf("error: %d of %d tables failed", len(failures), len(tables)), 1)
	}
	return nil
}

// exportOptions builds the export options from the flag variables
func exportOptions(logger *slog.Logger) (export.Options, error) {
	comp, err := export.ParseCompression(compression)
	if err != nil {
		return export.Options{}, err
	}
	if len(separator) != 1 {
		return export.Options{}, fmt.Errorf("separator must be a single byte, got %q", separator)
	}
	return export.Options{
		OutputDir:   outputDir,
		Compression: comp,
		Workers:     workers,
		Logger:      logger,
		Table: dbase.Config{
			TrimSpaces:        trimSpaces,
			InterpretCodePage: interpretCodePage,
			Separator:         separator[0],
			TrailingSeparator: trailingSeparator,
			UTF8:              utf8Output,
		},
	}, nil
}
