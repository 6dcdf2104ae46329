package pipeline

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/convlog/internal/config"
	"github.com/backmassage/convlog/internal/index"
	"github.com/backmassage/convlog/internal/naming"
	"github.com/backmassage/convlog/internal/progress"
)

// Logger is the subset of logging.Logger the pipeline needs.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Converter turns one archive ID into mjai text. *convert.Converter
// satisfies it.
type Converter interface {
	Convert(ctx context.Context, id string) (string, error)
}

// Batch converts the IDs of index files and writes the results under
// OutputDir. Index files are processed one at a time; IDs within a file
// run concurrently, bounded by Workers.
type Batch struct {
	InputDir     string
	OutputDir    string
	Workers      int
	AllFiles     bool
	DryRun       bool
	SkipExisting bool

	Converter Converter
	Progress  *progress.Tracker
	Log       Logger
}

// NewBatch builds a Batch from the run configuration. A nil tracker is
// replaced by one without sinks.
func NewBatch(cfg *config.Config, conv Converter, tracker *progress.Tracker, log Logger) *Batch {
	if tracker == nil {
		tracker = progress.NewTracker("", nil)
	}
	return &Batch{
		InputDir:     cfg.InputDir,
		OutputDir:    cfg.OutputDir,
		Workers:      cfg.Workers,
		AllFiles:     cfg.AllFiles,
		DryRun:       cfg.DryRun,
		SkipExisting: cfg.SkipExisting,
		Converter:    conv,
		Progress:     tracker,
		Log:          log,
	}
}

type result struct {
	id   string
	text string
	err  error
}

// ProcessIndexFile reads the eligible IDs of one index archive, converts
// them concurrently and writes each result to
// <OutputDir>/<year>/<date>/<id>.json, overwriting any existing file.
//
// Results are written by a single goroutine in completion order. A failed
// ID or write is logged and counted; it never stops the rest of the file.
// A file with no eligible IDs creates no directory.
func (b *Batch) ProcessIndexFile(ctx context.Context, indexPath string) FileStats {
	stats := FileStats{Path: indexPath}

	ids := index.ExtractIDs(indexPath, b.Log)
	stats.IDs = len(ids)
	if len(ids) == 0 {
		b.Log.Info("No valid Tenhou IDs found in %s. Skipping.", indexPath)
		return stats
	}

	part, err := naming.PartitionFor(indexPath)
	if err != nil {
		b.Log.Error("Cannot derive output directory for %s: %v", indexPath, err)
		stats.Err = err
		return stats
	}
	stem := part.Stem
	outDir := naming.OutputDir(b.OutputDir, part)

	if b.DryRun {
		for _, id := range ids {
			b.Log.Info("[DRY] Would convert %s -> %s", id, naming.OutputPath(b.OutputDir, part, id))
		}
		b.Log.Success("[DRY] %s: %d IDs", stem, len(ids))
		stats.Converted = len(ids)
		return stats
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		b.Log.Error("Failed to create output directory for %s: %v", indexPath, err)
		stats.Err = err
		return stats
	}

	pending := ids
	if b.SkipExisting {
		pending = pending[:0:0]
		for _, id := range ids {
			if _, err := os.Stat(naming.OutputPath(b.OutputDir, part, id)); err == nil {
				b.Log.Debug("Skip (exists): %s", id)
				stats.Skipped++
				continue
			}
			pending = append(pending, id)
		}
		if stats.Skipped > 0 {
			b.Log.Info("Skipping %d already converted IDs in %s", stats.Skipped, stem)
		}
	}

	b.Progress.Start(stem, len(pending))
	defer b.Progress.Finish()

	for r := range b.convertAll(ctx, pending) {
		ok := b.write(part, r, &stats)
		b.Progress.Advance(ok)
	}

	if ctx.Err() != nil {
		b.Log.Warn("Interrupted while converting %s", stem)
	}
	b.Log.Info("Finished %s: %d converted, %d failed", stem, stats.Converted, stats.Failed+stats.WriteErrors)
	return stats
}

// convertAll fans ids out to at most Workers concurrent conversions and
// returns a channel of results that is closed once every submitted task
// has finished. Submission stops when ctx is done.
func (b *Batch) convertAll(ctx context.Context, ids []string) <-chan result {
	results := make(chan result)

	var g errgroup.Group
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	go func() {
		defer close(results)
		for _, id := range ids {
			if ctx.Err() != nil {
				break
			}
			id := id
			g.Go(func() error {
				text, err := b.Converter.Convert(ctx, id)
				results <- result{id: id, text: text, err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()
	return results
}

// write persists one result and updates stats. It reports whether the ID
// ended up on disk.
func (b *Batch) write(part naming.Partition, r result, stats *FileStats) bool {
	if r.err != nil {
		stats.Failed++
		if errors.Is(r.err, context.Canceled) {
			b.Log.Debug("Conversion of %s canceled", r.id)
		}
		return false
	}

	path := naming.OutputPath(b.OutputDir, part, r.id)
	if err := os.WriteFile(path, []byte(r.text), 0o644); err != nil {
		b.Log.Error("Failed to write mjai log for ID %s to %s: %v", r.id, path, err)
		stats.WriteErrors++
		return false
	}
	b.Log.Success("Successfully converted and saved %s to %s", r.id, path)
	stats.Converted++
	stats.Bytes += int64(len(r.text))
	return true
}
