package pipeline

import (
	"context"
	"time"

	"github.com/backmassage/convlog/internal/display"
)

// Run processes years sequentially and logs a summary. Per-ID and per-file
// failures are reflected in the returned stats, never as an error.
func (b *Batch) Run(ctx context.Context, years []int) RunStats {
	var stats RunStats
	start := time.Now()

	b.Log.Info("Starting conversion for years: %v", years)
	for _, y := range years {
		if ctx.Err() != nil {
			b.Log.Warn("Interrupted")
			break
		}
		stats.Years++
		for _, fs := range b.ProcessYear(ctx, y) {
			stats.Add(fs)
		}
	}

	stats.Elapsed = time.Since(start)
	b.logSummary(&stats)
	return stats
}

func (b *Batch) logSummary(stats *RunStats) {
	b.Log.Info("==============================")
	summary := b.Log.Success
	if !stats.Clean() {
		summary = b.Log.Warn
	}
	summary("Done: %d converted, %d failed, %d skipped",
		stats.Converted, stats.Failed+stats.WriteErrors, stats.Skipped)
	b.Log.Info("Summary report:")
	b.Log.Info("  Years: %d, index files: %d (%d skipped)", stats.Years, stats.IndexFiles, stats.FileErrors)
	b.Log.Info("  IDs found: %d", stats.IDs)
	if stats.WriteErrors > 0 {
		b.Log.Info("  Write errors: %d", stats.WriteErrors)
	}
	if b.DryRun {
		b.Log.Info("  Bytes written: n/a (dry run)")
	} else {
		b.Log.Info("  Bytes written: %s", display.FormatBytes(stats.BytesWritten))
	}
	b.Log.Info("  Elapsed: %s", display.FormatDuration(stats.Elapsed))
}
