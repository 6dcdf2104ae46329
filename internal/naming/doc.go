// Package naming maps index files and archive IDs onto the output tree.
//
// Index files are named scc<YYYYMMDD>.html.gz. The date stem is the base
// name minus its last extension ("scc20230101.html"), and the partition is
// derived from fixed code-point offsets into it:
//
//	Year: stem[3:7]  -> "2023"
//	Date: stem[3:]   -> "20230101.html"
//
// so the file for ID X lands at <output>/2023/20230101.html/X.json. The
// offsets are kept exactly as the legacy tool used them; every caller goes
// through [ParseDateStem] so the filename grammar lives in one place.
package naming
