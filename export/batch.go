package export

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run exports every table with up to options.Workers tables in parallel.
// A failing table is recorded in the report and does not stop the others.
// The error is only set if ctx was canceled.
func Run(ctx context.Context, tables []string, options Options) (*Report, error) {
	exporter := New(options)
	report := NewReport()
	report.Files = make([]*FileReport, len(tables))
	workers := options.Workers
	if workers < 1 {
		workers = 1
	}
	exporter.logger.Info("starting export", "run_id", report.RunID, "tables", len(tables), "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, table := range tables {
		g.Go(func() error {
			// Per-table errors are kept in the report
			report.Files[i], _ = exporter.Export(gctx, table)
			return nil
		})
	}
	_ = g.Wait()
	report.Finished = time.Now()

	active, deleted := report.Totals()
	exporter.logger.Info("export finished",
		"run_id", report.RunID,
		"tables", len(tables),
		"failed", len(report.Failures()),
		"active_rows", active,
		"deleted_rows", deleted,
		"duration", report.Finished.Sub(report.Started),
	)
	return report, ctx.Err()
}
