// Command convlog converts Tenhou daily game indexes into per-game mjai
// event logs by driving an external mjai-reviewer binary.
//
// It parses flags, validates the converter and input tree, and either runs
// diagnostics (--check) or converts every selected year.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/backmassage/convlog/internal/check"
	"github.com/backmassage/convlog/internal/config"
	"github.com/backmassage/convlog/internal/convert"
	"github.com/backmassage/convlog/internal/display"
	"github.com/backmassage/convlog/internal/logging"
	"github.com/backmassage/convlog/internal/pipeline"
	"github.com/backmassage/convlog/internal/progress"
	"github.com/backmassage/convlog/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. Errors go straight to stderr until the logger
	// exists.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		if errors.Is(err, config.ErrExit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "convlog: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "convlog: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convlog: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	if term.IsTerminal(os.Stdout) {
		display.PrintBanner(version)
	}

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	if err := check.ValidateTool(cfg.ToolPath); err != nil {
		log.Error("%v", err)
		return 1
	}
	if err := check.ValidateInputDir(cfg.InputDir); err != nil {
		log.Error("%v", err)
		return 1
	}
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory %s: %v", cfg.OutputDir, err)
			return 1
		}
	}

	years := cfg.Years
	if len(years) == 0 {
		years, err = pipeline.DiscoverYears(cfg.InputDir)
		if err != nil {
			log.Error("Cannot list input directory %s: %v", cfg.InputDir, err)
			return 1
		}
		if len(years) == 0 {
			log.Error("No year directories found in input directory: %s", cfg.InputDir)
			return 1
		}
	}

	runID := uuid.NewString()
	log.Info("=== convlog v%s (%s) run %s ===", version, commit, runID)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	log.Info("Tool: %s (workers %d, %d attempts, %s delay)", cfg.ToolPath, cfg.Workers, cfg.Retries, cfg.RetryDelay)
	if cfg.DryRun {
		log.Warn("DRY RUN: nothing will be converted or written")
	}

	// Phase 3: Signal handling. Cancellation kills in-flight converter
	// processes and stops new submissions; finished results are still
	// written.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping after in-flight conversions")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Progress sinks and the run itself.
	var sinks []progress.Sink
	if cfg.ShowProgress && term.IsTerminal(os.Stderr) {
		sinks = append(sinks, progress.NewConsoleBar(os.Stderr))
	}
	if cfg.RedisAddr != "" {
		rs, err := progress.NewRedisSink(ctx, cfg.RedisAddr, cfg.RedisKey)
		if err != nil {
			log.Warn("Progress publishing disabled: %v", err)
		} else {
			defer rs.Close()
			sinks = append(sinks, rs)
			log.Info("Publishing progress to redis %s key %s", cfg.RedisAddr, cfg.RedisKey)
		}
	}
	tracker := progress.NewTracker(runID, log, sinks...)

	batch := pipeline.NewBatch(&cfg, convert.New(&cfg, log), tracker, log)
	batch.Run(ctx, years)

	// Per-ID failures are reported in the summary and the log file; they
	// do not change the exit status.
	return 0
}
