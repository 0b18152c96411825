// Package procexec runs external commands and captures their combined output.
package procexec

import (
	"context"
	"errors"
	"os/exec"
)

// Result is the outcome of a command that started. A non-zero ExitCode is not an error.
type Result struct {
	Output   []byte
	ExitCode int
}

// Runner starts name with args. The error reports only failures to start or wait.
type Runner func(ctx context.Context, name string, args ...string) (Result, error)

// Exec is the Runner backed by os/exec.
func Exec(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return Result{Output: out, ExitCode: ee.ExitCode()}, nil
		}
		return Result{Output: out, ExitCode: -1}, err
	}
	return Result{Output: out}, nil
}
