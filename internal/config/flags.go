package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, selection, conversion, behavior, display, and utility.
// Negated flags (e.g. --no-progress) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// ErrExit is returned by ParseFlags after --help or --version has been
// printed. Callers should exit successfully.
var ErrExit = errors.New("exit requested")

// ParseFlags seeds cfg from the env file and CONVLOG_* variables, then parses
// args (without the program name) into cfg. On --help or --version it prints
// and returns [ErrExit]. On error it returns non-nil (e.g. unknown flag,
// non-numeric year).
func ParseFlags(cfg *Config, args []string, version string) error {
	envFile, explicit := envFileFromArgs(args, cfg.EnvFile)
	if err := LoadEnvFile(envFile, explicit); err != nil {
		return err
	}
	cfg.EnvFile = envFile
	if err := ApplyEnv(cfg); err != nil {
		return err
	}

	fs := pflag.NewFlagSet("convlog", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var negated negatedFlags

	definePathFlags(fs, cfg)
	defineSelectionFlags(fs, cfg)
	defineConversionFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(os.Stderr, version)
		return ErrExit
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "convlog v"+version)
		return ErrExit
	}

	if err := parsePositionalYears(fs, cfg); err != nil {
		return err
	}
	cfg.InputDir = NormalizeDirArg(cfg.InputDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	return nil
}

// envFileFromArgs pre-scans args for --env-file so the file can seed
// defaults before the real flag set is built. Unknown flags are ignored here.
func envFileFromArgs(args []string, def string) (string, bool) {
	fs := pflag.NewFlagSet("convlog-env", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("env-file", def, "")
	_ = fs.Parse(args)
	return *path, fs.Changed("env-file")
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noProgress -> ShowProgress=false) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noProgress  bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers -m/--mjai-reviewer, -i/--input-dir, -o/--output-dir, --env-file.
func definePathFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.ToolPath, "mjai-reviewer", "m", cfg.ToolPath, "Path to the mjai-reviewer executable")
	fs.StringVarP(&cfg.InputDir, "input-dir", "i", cfg.InputDir, "Directory holding <year>/scc*.html.gz index files")
	fs.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "Base directory for converted mjai JSON files")
	fs.String("env-file", cfg.EnvFile, "KEY=VALUE file seeding CONVLOG_* defaults")
}

// defineSelectionFlags registers -y/--year and --all-files.
func defineSelectionFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntSliceVarP(&cfg.Years, "year", "y", cfg.Years, "Years to process (repeatable or comma-separated); default: all")
	fs.BoolVar(&cfg.AllFiles, "all-files", cfg.AllFiles, "Process every index file of a year, not only the first")
}

// defineConversionFlags registers -w/--workers, --retries, --retry-delay, --timeout.
func defineConversionFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Parallel conversions per index file")
	fs.IntVar(&cfg.Retries, "retries", cfg.Retries, "Attempts per ID before giving up")
	fs.DurationVar(&cfg.RetryDelay, "retry-delay", cfg.RetryDelay, "Fixed delay between attempts")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-invocation timeout (0 = none)")
}

// defineBehaviorFlags registers dry-run, skip-existing, progress and Redis settings.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", cfg.DryRun, "List IDs and targets; do not run the converter")
	fs.BoolVar(&cfg.SkipExisting, "skip-existing", cfg.SkipExisting, "Do not reconvert IDs whose output file exists")
	fs.BoolVar(&n.noProgress, "no-progress", false, "Hide the console progress bar")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Publish progress snapshots to this Redis host:port")
	fs.StringVar(&cfg.RedisKey, "redis-key", cfg.RedisKey, "Redis key for progress snapshots")
}

// defineDisplayFlags registers --color, --no-color, --log, --log-level, --console-level, --check.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append logs to file (empty disables)")
	fs.Var(&levelValue{&cfg.FileLevel}, "log-level", "Minimum level written to the log file")
	fs.Var(&levelValue{&cfg.ConsoleLevel}, "console-level", "Minimum level written to the console")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Run diagnostics and exit")
}

// defineUtilityFlags registers --version and --help.
func defineUtilityFlags(fs *pflag.FlagSet, n *negatedFlags) {
	fs.BoolVarP(&n.showVersion, "version", "V", false, "Print version and exit")
	fs.BoolVarP(&n.showHelp, "help", "h", false, "Show this help and exit")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noProgress {
		cfg.ShowProgress = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalYears appends trailing integer arguments to Years so the
// legacy form "-y 2023 2024" keeps working.
func parsePositionalYears(fs *pflag.FlagSet, cfg *Config) error {
	for _, a := range fs.Args() {
		y, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return fmt.Errorf("unexpected argument %q (years must be whole numbers)", a)
		}
		cfg.Years = append(cfg.Years, y)
	}
	return nil
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "convlog v" + version + " - batch convert Tenhou logs to mjai JSON"},
		{"", ""},
		{"  convlog -m <mjai-reviewer> -i <input_dir> [OPTIONS] [year...]", ""},
		{"", ""},
		{"Paths", ""},
		{"  -m, --mjai-reviewer <path>", "mjai-reviewer executable (required)"},
		{"  -i, --input-dir <dir>", "Index root with <year>/scc*.html.gz (required)"},
		{"  -o, --output-dir <dir>", "Output base (default: tenhou_mjailog)"},
		{"  --env-file <path>", "Seed CONVLOG_* defaults (default: .env)"},
		{"", ""},
		{"Selection", ""},
		{"  -y, --year <year>", "Year to process; repeatable (default: all)"},
		{"  --all-files", "Process every index file per year"},
		{"", ""},
		{"Conversion", ""},
		{"  -w, --workers <n>", "Parallel conversions per file (default: 4)"},
		{"  --retries <n>", "Attempts per ID (default: 3)"},
		{"  --retry-delay <dur>", "Delay between attempts (default: 2s)"},
		{"  --timeout <dur>", "Per-invocation timeout (default: none)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -d, --dry-run", "List IDs and targets only"},
		{"  --skip-existing", "Keep existing output files"},
		{"  --no-progress", "Hide the progress bar"},
		{"  --redis-addr <host:port>", "Publish progress snapshots to Redis"},
		{"  --redis-key <key>", "Snapshot key (default: convlog:progress)"},
		{"", ""},
		{"Display", ""},
		{"  -l, --log <path>", "Log file (default: conversion.log)"},
		{"  --log-level <level>", "File threshold (default: info)"},
		{"  --console-level <level>", "Console threshold (default: warn)"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"", ""},
		{"Utility", ""},
		{"  -c, --check", "Diagnostics (tool, input, output)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// pflag.Value adapter so LogLevel can be used with fs.Var.

type levelValue struct{ p *LogLevel }

func (v *levelValue) String() string { return string(*v.p) }
func (v *levelValue) Type() string   { return "level" }
func (v *levelValue) Set(s string) error {
	l := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if l == "warning" {
		l = LevelWarn
	}
	if !validLevel(l) {
		return fmt.Errorf("invalid level %q (use debug, info, warn or error)", s)
	}
	*v.p = l
	return nil
}
