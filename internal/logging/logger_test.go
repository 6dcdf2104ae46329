package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/convlog/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Warn("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.ConsoleLevel = config.LevelError
	cfg.LogFile = filepath.Join(dir, "nested", "conversion.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	l.Debug("below file threshold")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("[INFO] to file")) {
		t.Errorf("log file content: %s", string(b))
	}
	if bytes.Contains(b, []byte("below file threshold")) {
		t.Errorf("debug line leaked into INFO-level file: %s", string(b))
	}
}

func TestLogger_IndependentThresholds(t *testing.T) {
	var stdout, stderr, file bytes.Buffer
	l := New(Options{
		Stdout:       &stdout,
		Stderr:       &stderr,
		File:         &file,
		ConsoleLevel: LevelWarn,
		FileLevel:    LevelInfo,
	})

	l.Debug("d")
	l.Info("i")
	l.Success("s")
	l.Warn("w")
	l.Error("e")

	if got := stdout.String(); strings.Contains(got, "[INFO]") || strings.Contains(got, "[SUCCESS]") || !strings.Contains(got, "[WARN] w") {
		t.Errorf("console stdout = %q, want only WARN", got)
	}
	if got := stderr.String(); !strings.Contains(got, "[ERROR] e") {
		t.Errorf("console stderr = %q, want ERROR line", got)
	}
	if strings.Contains(stdout.String(), "[ERROR]") {
		t.Error("ERROR should go to stderr, not stdout")
	}

	f := file.String()
	for _, want := range []string{"[INFO] i", "[SUCCESS] s", "[WARN] w", "[ERROR] e"} {
		if !strings.Contains(f, want) {
			t.Errorf("file sink missing %q: %q", want, f)
		}
	}
	if strings.Contains(f, "[DEBUG]") {
		t.Errorf("file sink should drop DEBUG at INFO level: %q", f)
	}
}

func TestLogger_Enabled(t *testing.T) {
	var out bytes.Buffer
	l := New(Options{Stdout: &out, ConsoleLevel: LevelWarn})
	if l.Enabled(LevelInfo) {
		t.Error("INFO should be disabled with WARN console and no file")
	}
	if !l.Enabled(LevelError) {
		t.Error("ERROR should be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   config.LogLevel
		want Level
	}{
		{config.LevelDebug, LevelDebug},
		{config.LevelInfo, LevelInfo},
		{config.LevelWarn, LevelWarn},
		{config.LevelError, LevelError},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
