// Package logging provides the run's leveled logger. It writes to two sinks,
// the console and an optional append-only log file, each with its own
// minimum level. One Logger is built in main and passed to every component;
// there is no package-level logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/backmassage/convlog/internal/config"
	"github.com/backmassage/convlog/internal/term"
)

// Level orders log severities. SUCCESS sits between INFO and WARN so that a
// finished conversion is visible on a WARN-level console only when asked.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel maps a configured level name to a Level. Unknown names fall
// back to INFO; config.Validate rejects them before we get here.
func ParseLevel(l config.LogLevel) Level {
	switch l {
	case config.LevelDebug:
		return LevelDebug
	case config.LevelWarn:
		return LevelWarn
	case config.LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// Options configures a Logger built with [New]. Nil writers disable the
// corresponding sink.
type Options struct {
	Stdout       io.Writer // Console sink for DEBUG..WARN.
	Stderr       io.Writer // Console sink for ERROR.
	File         io.Writer // Plain-text file sink.
	ConsoleLevel Level
	FileLevel    Level
	Color        bool
}

// Logger provides leveled, optionally colored logging with independent
// console and file thresholds. All methods are goroutine-safe.
type Logger struct {
	mu           sync.Mutex
	stdout       io.Writer
	stderr       io.Writer
	file         io.Writer
	closer       io.Closer
	consoleLevel Level
	fileLevel    Level
	color        bool
	now          func() time.Time
}

// New builds a Logger from explicit sinks. Tests use it with buffers.
func New(opts Options) *Logger {
	return &Logger{
		stdout:       opts.Stdout,
		stderr:       opts.Stderr,
		file:         opts.File,
		consoleLevel: opts.ConsoleLevel,
		fileLevel:    opts.FileLevel,
		color:        opts.Color,
		now:          time.Now,
	}
}

// NewLogger initializes colors from cfg and opens cfg.LogFile for append
// when set. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := New(Options{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		ConsoleLevel: ParseLevel(cfg.ConsoleLevel),
		FileLevel:    ParseLevel(cfg.FileLevel),
		Color:        term.Enabled(),
	})

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		l.closer = f
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		err := l.closer.Close()
		l.closer = nil
		l.file = nil
		return err
	}
	return nil
}

// Enabled reports whether a message at level would reach any sink. Callers
// use it to skip building expensive debug output.
func (l *Logger) Enabled(level Level) bool {
	return l.consoleEnabled(level) || (l.file != nil && level >= l.fileLevel)
}

func (l *Logger) consoleEnabled(level Level) bool {
	return l.stdout != nil && level >= l.consoleLevel
}

func (l *Logger) line(level Level, color, text string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	name := level.String()
	plain := ts + " [" + name + "] " + text + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()

	if level >= l.consoleLevel {
		out := l.stdout
		if level == LevelError && l.stderr != nil {
			out = l.stderr
		}
		if out != nil {
			if l.color && color != "" {
				_, _ = io.WriteString(out, ts+" "+color+"["+name+"]"+term.NC+" "+text+"\n")
			} else {
				_, _ = io.WriteString(out, plain)
			}
		}
	}
	if l.file != nil && level >= l.fileLevel {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Debug logs at DEBUG level (cyan).
func (l *Logger) Debug(format string, args ...interface{}) {
	l.line(LevelDebug, term.Cyan, fmt.Sprintf(format, args...))
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(LevelInfo, term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(LevelSuccess, term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(LevelWarn, term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr on the console.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(LevelError, term.Red, fmt.Sprintf(format, args...))
}
