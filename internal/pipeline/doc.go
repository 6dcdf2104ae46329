// Package pipeline drives a conversion run: year discovery, index-file
// matching per year, and the per-file batch that converts every eligible
// ID concurrently and writes the results.
//
// Layout: discover.go (years and index files), batch.go (one index file),
// year.go (one year), runner.go (all years and the summary), stats.go.
package pipeline
