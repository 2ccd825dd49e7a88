package env

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Result holds the outcome of a finished command.
// A non-zero exit is reported here, not as an error.
type Result struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs an external command to completion and captures its output.
// It returns an error only when the command could not be run at all
// (binary missing, context cancelled before start).
type Runner interface {
	Run(ctx context.Context, args []string) (*Result, error)
}

// Streamer is implemented by runners that can connect a command's output
// to writers as it is produced. The returned Result leaves Stdout and
// Stderr empty.
type Streamer interface {
	Stream(ctx context.Context, args []string, stdout, stderr io.Writer) (*Result, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	// ExtraEnv is appended to the current process environment
	ExtraEnv map[string]string
}

// NewExecRunner creates a runner that inherits the current environment
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes args[0] with args[1:] and waits for it to exit
func (r *ExecRunner) Run(ctx context.Context, args []string) (*Result, error) {
	var stdout, stderr bytes.Buffer
	result, err := r.Stream(ctx, args, &stdout, &stderr)
	if err != nil {
		return nil, err
	}
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result, nil
}

// Stream executes args[0] with its output written to stdout and stderr
func (r *ExecRunner) Stream(ctx context.Context, args []string, stdout, stderr io.Writer) (*Result, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command given")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if len(r.ExtraEnv) > 0 {
		cmdEnv := os.Environ()
		for key, value := range r.ExtraEnv {
			cmdEnv = append(cmdEnv, key+"="+value)
		}
		cmd.Env = cmdEnv
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	result := &Result{Args: args}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", args[0], err)
	}

	return result, nil
}
