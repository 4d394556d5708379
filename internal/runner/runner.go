package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/Tomas-vilte/diffclip/internal/logger"
)

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes an external program with a discrete argument vector.
// A non-nil error means the program could not be started or exited non-zero;
// Result is still filled with whatever was captured.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error)
}

// ExecRunner runs programs through os/exec. Nothing goes through a shell.
type ExecRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	log.Debug("command finished",
		"cmd", name,
		"args", strings.Join(args, " "),
		"exit_code", res.ExitCode,
		"size", len(res.Stdout),
		"duration_ms", time.Since(start).Milliseconds())

	return res, err
}

// IsNotFound reports whether err means the executable is missing from PATH.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
