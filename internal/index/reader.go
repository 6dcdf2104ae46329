package index

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// maxLineSize bounds a single index line. Rows are short HTML fragments; a
// megabyte leaves plenty of headroom.
const maxLineSize = 1 << 20

// Logger is the minimal logging interface needed by the reader.
type Logger interface {
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// ExtractIDs returns the archive IDs of eligible records in the gzip index
// file at path, in file order and without deduplication. Any file-level
// failure (open, decompress, read, invalid UTF-8) is logged and yields an
// empty result; callers treat that as "nothing to do".
func ExtractIDs(path string, log Logger) []string {
	ids, err := ReadIDs(path, log)
	if err != nil {
		log.Error("Error reading gz file %s: %v", path, err)
		return nil
	}
	return ids
}

// ReadIDs is ExtractIDs with the file-level error returned instead of
// logged. Per-line problems are still logged and skipped.
func ReadIDs(path string, log Logger) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gzip header: %w", err)
	}
	defer zr.Close()

	return ScanIDs(zr, log)
}

// ScanIDs reads decompressed index lines from r.
func ScanIDs(r io.Reader, log Logger) ([]string, error) {
	var ids []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: invalid UTF-8", lineNo)
		}

		rec, ok := ParseRecord(line)
		if !ok || !rec.Eligible() {
			continue
		}
		id, err := ExtractID(rec.IDField)
		if err != nil {
			log.Warn("Failed to extract Tenhou ID from line: %s", strings.TrimSpace(line))
			continue
		}
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
