package pipeline

import "time"

// FileStats holds the outcome of one index file.
type FileStats struct {
	Path        string
	IDs         int // Eligible IDs read from the index.
	Converted   int
	Failed      int // Conversion failures (exhausted, empty output, interrupted).
	Skipped     int // Existing outputs left alone by --skip-existing.
	WriteErrors int
	Bytes       int64
	Err         error // Set when the whole file was skipped.
}

// RunStats tracks aggregate counters across a run.
type RunStats struct {
	Years        int
	IndexFiles   int
	FileErrors   int
	IDs          int
	Converted    int
	Failed       int
	Skipped      int
	WriteErrors  int
	BytesWritten int64
	Elapsed      time.Duration
}

// Add folds one file's outcome into the totals.
func (s *RunStats) Add(f FileStats) {
	s.IndexFiles++
	if f.Err != nil {
		s.FileErrors++
	}
	s.IDs += f.IDs
	s.Converted += f.Converted
	s.Failed += f.Failed
	s.Skipped += f.Skipped
	s.WriteErrors += f.WriteErrors
	s.BytesWritten += f.Bytes
}

// Clean reports whether every attempted ID was written.
func (s *RunStats) Clean() bool {
	return s.Failed == 0 && s.WriteErrors == 0 && s.FileErrors == 0
}
