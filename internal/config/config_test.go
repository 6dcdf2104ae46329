package config

import (
	"testing"
	"time"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/data/tenhou", "/data/tenhou"},
		{"single trailing slash", "/data/tenhou/", "/data/tenhou"},
		{"multiple trailing slashes", "/data/tenhou///", "/data/tenhou"},
		{"root path", "/", "/"},
		{"relative path", "tenhou_mjailog", "tenhou_mjailog"},
		{"relative with slash", "tenhou_mjailog/", "tenhou_mjailog"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.ToolPath = "/opt/mjai-reviewer"
	cfg.InputDir = "/data/tenhou"
	return cfg
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"one worker", func(c *Config) { c.Workers = 1 }, false},
		{"zero retries", func(c *Config) { c.Retries = 0 }, true},
		{"negative delay", func(c *Config) { c.RetryDelay = -time.Second }, true},
		{"zero delay", func(c *Config) { c.RetryDelay = 0 }, false},
		{"negative timeout", func(c *Config) { c.Timeout = -1 }, true},
		{"bad year", func(c *Config) { c.Years = []int{2023, 0} }, true},
		{"bad color", func(c *Config) { c.ColorMode = "rainbow" }, true},
		{"bad file level", func(c *Config) { c.FileLevel = "trace" }, true},
		{"bad console level", func(c *Config) { c.ConsoleLevel = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without a tool path")
	}

	cfg.ToolPath = "/opt/mjai-reviewer"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without an input dir")
	}

	cfg.InputDir = "/data/tenhou"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_CheckOnlySkipsInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.ToolPath = "/opt/mjai-reviewer"

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass without input dir when CheckOnly is true, got: %v", err)
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OutputDir != "tenhou_mjailog" {
		t.Errorf("default OutputDir = %q, want tenhou_mjailog", cfg.OutputDir)
	}
	if cfg.Workers != 4 {
		t.Errorf("default Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Retries != 3 {
		t.Errorf("default Retries = %d, want 3", cfg.Retries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("default RetryDelay = %s, want 2s", cfg.RetryDelay)
	}
	if cfg.Timeout != 0 {
		t.Errorf("default Timeout = %s, want 0", cfg.Timeout)
	}
	if cfg.FileLevel != LevelInfo || cfg.ConsoleLevel != LevelWarn {
		t.Errorf("default levels = %q/%q, want info/warn", cfg.FileLevel, cfg.ConsoleLevel)
	}
	if cfg.LogFile != "conversion.log" {
		t.Errorf("default LogFile = %q, want conversion.log", cfg.LogFile)
	}
	if cfg.SkipExisting {
		t.Error("default SkipExisting should be false")
	}
	if cfg.AllFiles {
		t.Error("default AllFiles should be false")
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
}
