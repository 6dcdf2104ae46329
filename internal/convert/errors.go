package convert

import (
	"errors"
	"os/exec"
)

// Sentinel errors returned by Convert. Both mean "skip this ID"; neither
// should abort the batch.
var (
	ErrExhausted   = errors.New("all attempts failed")
	ErrEmptyOutput = errors.New("converter produced no output")
	errInvalidUTF8 = errors.New("converter output is not valid UTF-8")
)

// exitCode returns the process exit status carried by err, or -1 when err
// did not come from a process that ran and exited.
func exitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
