package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// indexGlob matches daily index archives inside a year directory.
const indexGlob = "scc*.html.gz"

// DiscoverYears returns the purely numeric subdirectory names of inputDir
// as years, sorted ascending.
func DiscoverYears(inputDir string) ([]int, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}
	var years []int
	for _, e := range entries {
		if !e.IsDir() || !isDigits(e.Name()) {
			continue
		}
		y, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// MatchIndexFiles lists the index archives for one year, sorted by name.
// It returns the pattern it matched against for logging. A missing year
// directory yields no files and no error.
//
// Matching is done on directory entries rather than with filepath.Glob on
// the joined path so that glob metacharacters in inputDir are taken
// literally.
func MatchIndexFiles(inputDir string, year int) (pattern string, files []string, err error) {
	dir := filepath.Join(inputDir, strconv.Itoa(year))
	pattern = filepath.Join(dir, indexGlob)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return pattern, nil, nil
		}
		return pattern, nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(indexGlob, e.Name())
		if err != nil {
			return pattern, nil, err
		}
		if ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return pattern, files, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
