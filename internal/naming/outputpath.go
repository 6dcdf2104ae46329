package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	datePrefixLen = 3 // len("scc")
	yearEnd       = 7 // datePrefixLen + len("YYYY")
	outputExt     = ".json"
)

// ErrShortStem is returned when a date stem is too short to hold the
// "scc" prefix and a four-digit year.
var ErrShortStem = errors.New("date stem too short")

// Partition is the output location derived from one index file.
type Partition struct {
	Stem string // e.g. "scc20230101.html"
	Year string // e.g. "2023"
	Date string // e.g. "20230101.html"
}

// DateStem returns the index file's base name with its last extension
// removed, so "/in/2023/scc20230101.html.gz" yields "scc20230101.html".
func DateStem(indexPath string) string {
	base := filepath.Base(indexPath)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// ParseDateStem slices a date stem into its year and date components. The
// slicing is by code point to match the legacy tool on any input.
func ParseDateStem(stem string) (Partition, error) {
	r := []rune(stem)
	if len(r) < yearEnd {
		return Partition{}, fmt.Errorf("%w: %q", ErrShortStem, stem)
	}
	return Partition{
		Stem: stem,
		Year: string(r[datePrefixLen:yearEnd]),
		Date: string(r[datePrefixLen:]),
	}, nil
}

// PartitionFor is DateStem followed by ParseDateStem.
func PartitionFor(indexPath string) (Partition, error) {
	return ParseDateStem(DateStem(indexPath))
}

// OutputDir returns <outputDir>/<year>/<date>.
func OutputDir(outputDir string, p Partition) string {
	return filepath.Join(outputDir, p.Year, p.Date)
}

// OutputPath returns <outputDir>/<year>/<date>/<id>.json.
func OutputPath(outputDir string, p Partition, id string) string {
	return filepath.Join(OutputDir(outputDir, p), id+outputExt)
}
