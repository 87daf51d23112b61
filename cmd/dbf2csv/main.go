package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:      "dbf2csv",
		Usage:     "Convert dBase and FoxPro tables to CSV",
		ArgsUsage: "<file-or-dir>...",
		Flags:     append(convertFlags(), commonFlags()...),
		Action:    convertAction,
		Commands: []*cli.Command{
			inspectCmd(),
		},
	}
}
