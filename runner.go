package web2pdf

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/alnah/go-web2pdf/internal/process"
)

// waitDelay bounds how long Wait blocks on output pipes after the process
// group has been killed.
const waitDelay = 5 * time.Second

// passRunner executes one compiler invocation with a bounded deadline.
type passRunner interface {
	Run(ctx context.Context, name string, args []string, dir string, timeout time.Duration) PassResult
}

// toolChecker verifies the compiler binary is invocable.
type toolChecker interface {
	Available(ctx context.Context) bool
}

// Compile-time interface checks.
var (
	_ passRunner  = (*execRunner)(nil)
	_ toolChecker = (*execChecker)(nil)
)

// execRunner runs external processes via os/exec. It spawns, captures,
// and kills; it has no filesystem side effects of its own.
type execRunner struct {
	classifier *logClassifier
}

// Run spawns one process with stdout and stderr merged into a single
// ordered buffer, and enforces a hard wall-clock timeout. On expiry the
// whole process group is killed so no compiler children survive holding
// file locks, and the result carries whatever output was captured.
func (r *execRunner) Run(ctx context.Context, name string, args []string, dir string, timeout time.Duration) PassResult {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = nil

	// Sharing one buffer keeps the relative emission order of stdout and
	// stderr; exec serializes writes to a common writer.
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillProcessGroup(cmd.Process.Pid)
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := PassResult{
		Output:   buf.String(),
		Duration: elapsed,
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.ExitCode = -1
		result.Outcome = OutcomeTimedOut
	case isToolMissing(err):
		result.ExitCode = -1
		result.Outcome = OutcomeToolMissing
	default:
		result.ExitCode = exitCode(cmd, err)
		result.Outcome = r.classifier.Classify(result.ExitCode, result.Output)
	}
	return result
}

// isToolMissing reports whether the spawn itself failed because the binary
// does not exist or is not executable.
func isToolMissing(err error) bool {
	if err == nil {
		return false
	}
	var execErr *exec.Error
	return errors.Is(err, exec.ErrNotFound) || errors.As(err, &execErr)
}

// exitCode extracts the process exit status after Run returned.
func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

// probeTimeout bounds the availability check so a wedged binary cannot
// stall the whole request.
const probeTimeout = 5 * time.Second

// execChecker probes the compiler binary with a version query.
type execChecker struct {
	binary string
}

// Available returns false on: binary not found, non-zero exit, or timeout.
// Absence of the tool is an ordinary negative result, never an error.
func (c *execChecker) Available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, c.binary, "--version")
	cmd.Stdin = nil
	return cmd.Run() == nil
}
