package main

import "github.com/urfave/cli/v3"

var (
	outputDir         string
	recursive         bool
	workers           int
	compression       string
	separator         string
	trailingSeparator bool
	utf8Output        bool
	interpretCodePage bool
	trimSpaces        bool
	reportPath        string
	configFile        string
	logLevel          string
	logFormat         string
	debug             bool
)

func convertFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "recursive",
			Aliases:     []string{"r"},
			Usage:       "also convert tables in subdirectories",
			Destination: &recursive,
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "directory for the csv files (default: next to each table)",
			Destination: &outputDir,
		},
		&cli.IntFlag{
			Name:        "workers",
			Aliases:     []string{"j"},
			Usage:       "tables converted in parallel",
			Value:       1,
			Destination: &workers,
		},
		&cli.StringFlag{
			Name:        "compress",
			Usage:       "compress output files (none, gzip, zstd)",
			Value:       "none",
			Destination: &compression,
		},
		&cli.StringFlag{
			Name:        "separator",
			Usage:       "field separator, a single byte",
			Value:       ";",
			Destination: &separator,
		},
		&cli.BoolFlag{
			Name:        "trailing-separator",
			Usage:       "terminate every field with the separator",
			Destination: &trailingSeparator,
		},
		&cli.BoolFlag{
			Name:        "utf8",
			Usage:       "write UTF-8 instead of the table's code page",
			Destination: &utf8Output,
		},
		&cli.BoolFlag{
			Name:        "interpret-codepage",
			Usage:       "map every known code page mark instead of assuming Windows-1252",
			Destination: &interpretCodePage,
		},
		&cli.BoolFlag{
			Name:        "trim",
			Usage:       "trim spaces of character and numeric values",
			Destination: &trimSpaces,
		},
		&cli.StringFlag{
			Name:        "report",
			Usage:       "write a JSON run report to this file",
			Destination: &reportPath,
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to the YAML config file (default: user config dir)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "debug logging, including the table decoder",
			Destination: &debug,
		},
	}
}
