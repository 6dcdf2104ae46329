package pipeline

import "context"

// ProcessYear matches the index archives of one year and processes them
// in name order. Only the first archive is processed unless AllFiles is
// set.
func (b *Batch) ProcessYear(ctx context.Context, year int) []FileStats {
	pattern, files, err := MatchIndexFiles(b.InputDir, year)
	if err != nil {
		b.Log.Error("Cannot list index files for year %d: %v", year, err)
		return nil
	}
	if len(files) == 0 {
		b.Log.Warn("No .gz files found for year %d with pattern %s", year, pattern)
		return nil
	}

	b.Log.Info("Processing %d .gz files for year %d", len(files), year)
	if !b.AllFiles && len(files) > 1 {
		b.Log.Info("Only the first file is converted; use --all-files for the other %d", len(files)-1)
		files = files[:1]
	}

	var out []FileStats
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		out = append(out, b.ProcessIndexFile(ctx, f))
	}
	return out
}
