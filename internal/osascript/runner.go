// Package osascript runs AppleScript source through the macOS osascript
// interpreter and reports exit status, stdout and stderr.
package osascript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultBinary is the interpreter looked up on PATH when no path is configured.
const DefaultBinary = "osascript"

// ErrTimeout is returned when the script did not finish before the context deadline.
var ErrTimeout = errors.New("osascript timed out")

// Result holds the outcome of a finished script. A non-zero ExitCode is not
// an error by itself; callers classify it from Stderr.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the script exited with status zero.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Diagnostic returns trimmed stderr, falling back to stdout when stderr is empty.
func (r Result) Diagnostic() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}

// Runner executes one AppleScript program.
type Runner interface {
	Run(ctx context.Context, script string) (Result, error)
}

// ExecRunner runs scripts with os/exec. Each call is passed as a single -e
// argument; stdin is not connected.
type ExecRunner struct {
	// Binary is the interpreter path; empty means DefaultBinary.
	Binary string
}

// NewExecRunner returns a runner for the given interpreter path.
func NewExecRunner(binary string) *ExecRunner {
	return &ExecRunner{Binary: binary}
}

// commandContext is swapped in tests.
var commandContext = exec.CommandContext

// waitDelay bounds how long Run waits for output pipes after the process is killed.
const waitDelay = 2 * time.Second

// Run executes script and waits for it. The error is non-nil only when the
// interpreter could not be started, was killed by ctx, or failed in a way
// that yields no exit status.
func (r *ExecRunner) Run(ctx context.Context, script string) (Result, error) {
	bin := DefaultBinary
	if r != nil && strings.TrimSpace(r.Binary) != "" {
		bin = r.Binary
	}

	var stdout, stderr bytes.Buffer
	cmd := commandContext(ctx, bin, "-e", script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return res, fmt.Errorf("%w: %s", ErrTimeout, bin)
		}
		return res, ctxErr
	}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, fmt.Errorf("run %s: %w", bin, err)
}
