// Package convert runs the external mjai-reviewer converter for one archive
// ID at a time, with a fixed-delay retry loop.
//
// The converter is opaque: success means exit status 0 and non-empty
// stdout, and stdout is returned verbatim apart from trailing whitespace.
// Stderr is captured separately for diagnostics and never mixed into the
// result.
//
// Files: builder.go (argument list), executor.go (process runner),
// retry.go (Converter and its attempt loop), errors.go (sentinels).
package convert
