package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/backmassage/convlog/internal/config"
)

// Logger is the subset of logging.Logger the converter needs.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// SleepFunc waits for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Converter turns one archive ID into mjai text by invoking the external
// tool. Retries is the total number of attempts (not the number of
// retries after the first). A Converter is safe for concurrent use as long
// as its Runner is.
type Converter struct {
	ToolPath string
	Retries  int
	Delay    time.Duration
	Timeout  time.Duration // Per attempt; 0 disables.

	Runner Runner
	Sleep  SleepFunc
	Log    Logger
}

// New builds a Converter from the run configuration, using ExecRunner and
// a real sleep.
func New(cfg *config.Config, log Logger) *Converter {
	return &Converter{
		ToolPath: cfg.ToolPath,
		Retries:  cfg.Retries,
		Delay:    cfg.RetryDelay,
		Timeout:  cfg.Timeout,
		Runner:   ExecRunner{},
		Sleep:    Sleep,
		Log:      log,
	}
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Convert runs the tool for id and returns its stdout with trailing
// whitespace removed.
//
// A non-zero exit, a spawn failure, a per-attempt timeout or non-UTF-8
// output fails the attempt; the loop then sleeps Delay and tries again, up
// to Retries attempts, with no sleep after the last one. Exhaustion
// returns an error wrapping ErrExhausted. A successful run with empty
// output returns ErrEmptyOutput at once without retrying. Cancellation of
// ctx stops the loop and returns ctx.Err().
func (c *Converter) Convert(ctx context.Context, id string) (string, error) {
	args := Args(c.ToolPath, id)
	attempts := c.Retries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		c.Log.Debug("Running: %s (attempt %d/%d)", strings.Join(args, " "), attempt, attempts)

		out, err := c.attempt(ctx, args)
		if err == nil {
			if out == "" {
				c.Log.Warn("Converter returned empty output for ID %s", id)
				return "", ErrEmptyOutput
			}
			return out, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		lastErr = err
		c.Log.Error("get_mjai_log failed for ID %s on attempt %d: %v", id, attempt, err)

		if attempt < attempts {
			c.Log.Info("Retrying in %s...", c.Delay)
			if err := c.sleep(ctx, c.Delay); err != nil {
				return "", err
			}
		}
	}

	c.Log.Error("All %d attempts failed for ID %s", attempts, id)
	return "", fmt.Errorf("%w for ID %s: %v", ErrExhausted, id, lastErr)
}

// attempt performs one invocation and classifies its result.
func (c *Converter) attempt(ctx context.Context, args []string) (string, error) {
	actx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	res := c.Runner.Run(actx, args)
	if res.Err != nil {
		if ctx.Err() == nil && errors.Is(actx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("timed out after %s", c.Timeout)
		}
		if code := exitCode(res.Err); code >= 0 {
			return "", fmt.Errorf("exit status %d: %s", code, strings.TrimSpace(res.Stderr))
		}
		return "", res.Err
	}
	if !utf8.Valid(res.Stdout) {
		return "", errInvalidUTF8
	}
	return strings.TrimRightFunc(string(res.Stdout), unicode.IsSpace), nil
}

func (c *Converter) sleep(ctx context.Context, d time.Duration) error {
	if c.Sleep == nil {
		return Sleep(ctx, d)
	}
	return c.Sleep(ctx, d)
}
