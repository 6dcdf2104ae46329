package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that seed defaults before flags are parsed.
// Flags always win over the environment.
const (
	EnvToolPath   = "CONVLOG_MJAI_REVIEWER"
	EnvInputDir   = "CONVLOG_INPUT_DIR"
	EnvOutputDir  = "CONVLOG_OUTPUT_DIR"
	EnvWorkers    = "CONVLOG_WORKERS"
	EnvRetries    = "CONVLOG_RETRIES"
	EnvRetryDelay = "CONVLOG_RETRY_DELAY"
	EnvLogFile    = "CONVLOG_LOG"
	EnvRedisAddr  = "CONVLOG_REDIS_ADDR"
	EnvRedisKey   = "CONVLOG_REDIS_KEY"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set in the environment are not overridden. A missing
// file is only an error when required is true (the user named it explicitly).
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies CONVLOG_* variables into cfg. Malformed numeric values are
// reported rather than silently ignored.
func ApplyEnv(cfg *Config) error {
	cfg.ToolPath = envStr(EnvToolPath, cfg.ToolPath)
	cfg.InputDir = NormalizeDirArg(envStr(EnvInputDir, cfg.InputDir))
	cfg.OutputDir = NormalizeDirArg(envStr(EnvOutputDir, cfg.OutputDir))
	cfg.LogFile = envStr(EnvLogFile, cfg.LogFile)
	cfg.RedisAddr = envStr(EnvRedisAddr, cfg.RedisAddr)
	cfg.RedisKey = envStr(EnvRedisKey, cfg.RedisKey)

	var err error
	if cfg.Workers, err = envInt(EnvWorkers, cfg.Workers); err != nil {
		return err
	}
	if cfg.Retries, err = envInt(EnvRetries, cfg.Retries); err != nil {
		return err
	}
	if cfg.RetryDelay, err = envDuration(EnvRetryDelay, cfg.RetryDelay); err != nil {
		return err
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a whole number (got %q)", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a duration such as 2s (got %q)", key, v)
	}
	return d, nil
}
