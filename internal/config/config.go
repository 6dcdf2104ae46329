// Package config holds runtime configuration: defaults, environment seeding,
// CLI flag parsing, and validation. Defaults match the legacy
// tenhou_convlog.py script for parity.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// LogLevel is the minimum severity written to a log sink.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// seeded from the environment and then mutated by [ParseFlags] before being
// passed (by pointer) to packages that need it.
type Config struct {
	// Paths.
	ToolPath  string // mjai-reviewer executable. Required.
	InputDir  string // Root holding <year>/scc*.html.gz. Required.
	OutputDir string // Default: "tenhou_mjailog".
	EnvFile   string // Default: ".env" (optional when missing).

	// Selection.
	Years    []int // Empty means auto-discover numeric subdirectories.
	AllFiles bool  // Process every index file per year, not just the first.

	// Conversion.
	Workers    int           // Default: 4. Pool size per index file.
	Retries    int           // Default: 3. Total attempts per ID.
	RetryDelay time.Duration // Default: 2s. Fixed delay between attempts.
	Timeout    time.Duration // Default: 0 (no per-invocation timeout).

	// Behavior flags.
	DryRun       bool
	SkipExisting bool // Default: false. Every run reconverts every ID.

	// Progress reporting.
	ShowProgress bool   // Default: true. Cleared by --no-progress.
	RedisAddr    string // Optional host:port for progress snapshots.
	RedisKey     string // Default: "convlog:progress".

	// Display and logging.
	ColorMode    ColorMode // Default: "auto".
	LogFile      string    // Default: "conversion.log". Empty disables the file sink.
	FileLevel    LogLevel  // Default: "info".
	ConsoleLevel LogLevel  // Default: "warn".
	CheckOnly    bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// script. Used as the base before [ParseFlags] applies overrides.
func DefaultConfig() Config {
	return Config{
		OutputDir:    "tenhou_mjailog",
		EnvFile:      ".env",
		Workers:      4,
		Retries:      3,
		RetryDelay:   2 * time.Second,
		ShowProgress: true,
		RedisKey:     "convlog:progress",
		ColorMode:    ColorAuto,
		LogFile:      "conversion.log",
		FileLevel:    LevelInfo,
		ConsoleLevel: LevelWarn,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks numeric bounds and enum fields. When not in CheckOnly mode
// it also requires the tool path and input directory to be set; existence is
// checked later by the check package once a logger is available.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if !validLevel(c.FileLevel) {
		return fmt.Errorf("invalid log level %q (use debug, info, warn or error)", c.FileLevel)
	}
	if !validLevel(c.ConsoleLevel) {
		return fmt.Errorf("invalid console level %q (use debug, info, warn or error)", c.ConsoleLevel)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	if c.Retries < 1 {
		return fmt.Errorf("retries must be at least 1 (got %d)", c.Retries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must not be negative (got %s)", c.RetryDelay)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (got %s)", c.Timeout)
	}
	for _, y := range c.Years {
		if y <= 0 {
			return fmt.Errorf("invalid year %d", y)
		}
	}

	if c.ToolPath == "" {
		return errors.New("--mjai-reviewer is required")
	}
	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("--input-dir is required")
	}
	if c.OutputDir == "" {
		return errors.New("--output-dir must not be empty")
	}
	return nil
}

func validLevel(l LogLevel) bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}
