// Package check provides pre-run validation of the converter binary and
// input tree, and the informational --check mode.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/backmassage/convlog/internal/config"
	"github.com/backmassage/convlog/internal/pipeline"
)

// Sentinel errors returned by the validators.
var (
	ErrToolNotFound  = errors.New("mjai-reviewer not found")
	ErrToolIsDir     = errors.New("mjai-reviewer path is a directory")
	ErrInputNotFound = errors.New("input directory does not exist")
	ErrInputNotDir   = errors.New("input path is not a directory")
)

const versionTimeout = 10 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// ValidateTool verifies that path names an existing regular file.
// Executability is left to the first invocation.
func ValidateTool(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, path)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrToolIsDir, path)
	}
	return nil
}

// ValidateInputDir verifies that dir exists and is a directory.
func ValidateInputDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInputNotFound, dir)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrInputNotDir, dir)
	}
	return nil
}

// RunCheck runs the --check flow: converter binary, input tree and output
// root. It reports whether everything needed for a run is in place; it
// never converts anything.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(cfg.ToolPath, log)
	if cfg.InputDir != "" {
		ok = checkInput(cfg.InputDir, cfg.Years, log) && ok
	} else {
		log.Warn("Input directory not set; skipping index checks")
	}
	ok = checkOutput(cfg.OutputDir, log) && ok

	if ok {
		log.Success("All checks passed")
	} else {
		log.Error("Some checks failed")
	}
	return ok
}

// checkTool validates the converter path and logs the first line of its
// --version output when it has one.
func checkTool(path string, log Logger) bool {
	if err := ValidateTool(path); err != nil {
		log.Error("%v", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		log.Warn("mjai-reviewer found but --version failed: %v", err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("mjai-reviewer: %s", firstLine)
	return true
}

// checkInput lists the years that would be processed with their index-file
// counts.
func checkInput(dir string, years []int, log Logger) bool {
	if err := ValidateInputDir(dir); err != nil {
		log.Error("%v", err)
		return false
	}
	if len(years) == 0 {
		found, err := pipeline.DiscoverYears(dir)
		if err != nil {
			log.Error("Cannot list %s: %v", dir, err)
			return false
		}
		if len(found) == 0 {
			log.Error("No year directories found in %s", dir)
			return false
		}
		years = found
	}

	for _, y := range years {
		_, files, err := pipeline.MatchIndexFiles(dir, y)
		switch {
		case err != nil:
			log.Warn("  %d: %v", y, err)
		case len(files) == 0:
			log.Warn("  %d: no index files", y)
		default:
			log.Info("  %d: %d index files", y, len(files))
		}
	}
	return true
}

// checkOutput verifies that the output root can be created and written to.
func checkOutput(dir string, log Logger) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("Cannot create output directory %s: %v", dir, err)
		return false
	}
	f, err := os.CreateTemp(dir, ".convlog-check-*")
	if err != nil {
		log.Error("Output directory %s is not writable: %v", dir, err)
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	log.Success("Output directory writable: %s", dir)
	return true
}
