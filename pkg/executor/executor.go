// Package executor runs a challenge's test command as a child
// process and reports the outcome. A failing test is a normal
// Result; only an unspawnable or timed-out command is an error.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrorKind classifies execution failures.
type ErrorKind string

const (
	// KindSpawn means the command could not be started at all:
	// empty command line, missing binary, permission problem.
	KindSpawn ErrorKind = "spawn"
	// KindTimeout means the command ran past the configured
	// timeout and was killed.
	KindTimeout ErrorKind = "timeout"
)

// ExecError reports a platform-level execution failure, as
// opposed to a test that ran and failed.
type ExecError struct {
	Kind    ErrorKind
	Command string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf(
		"execute %q: %s: %v", e.Command, e.Kind, e.Err,
	)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Result captures one completed test run.
type Result struct {
	Command  string        `json:"command"`
	ExitCode int           `json:"exit_code"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	Passed   bool          `json:"passed"`
	Duration time.Duration `json:"duration"`
}

// Executor runs whitespace-separated command lines in a given
// working directory. The zero value runs without a timeout.
type Executor struct {
	// Timeout bounds a single run. Zero means no limit.
	Timeout time.Duration

	// Env holds extra KEY=VALUE pairs appended to the child's
	// environment.
	Env []string
}

// New creates an Executor with the given timeout.
func New(timeout time.Duration) *Executor {
	return &Executor{Timeout: timeout}
}

// Run executes command inside dir, blocking until it exits,
// captures both output streams, and derives Passed from a zero
// exit code. A non-zero exit is a normal failed Result. A command
// that cannot be spawned, or that exceeds the timeout, yields a
// *ExecError.
func (e *Executor) Run(
	ctx context.Context,
	command, dir string,
) (*Result, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil, &ExecError{
			Kind:    KindSpawn,
			Command: command,
			Err:     errors.New("empty command"),
		}
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.WaitDelay = 2 * time.Second
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return nil, &ExecError{
			Kind:    KindTimeout,
			Command: command,
			Err:     ctx.Err(),
		}
	}

	result := &Result{
		Command:  command,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &ExecError{
				Kind:    KindSpawn,
				Command: command,
				Err:     err,
			}
		}
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.Passed = true
	return result, nil
}

// InstallDeps installs workspace dependencies when a manifest is
// present: requirements.txt via pip, package.json via npm. Install
// failures are advisory; the returned error is for reporting only
// and callers proceed to the test run regardless.
func (e *Executor) InstallDeps(
	ctx context.Context,
	files map[string]string,
	dir string,
) error {
	var command string
	switch {
	case hasFile(files, "requirements.txt"):
		command = "python -m pip install -r requirements.txt -q"
	case hasFile(files, "package.json"):
		command = "npm install --silent"
	default:
		return nil
	}

	result, err := e.Run(ctx, command, dir)
	if err != nil {
		return fmt.Errorf("install dependencies: %w", err)
	}
	if !result.Passed {
		return fmt.Errorf(
			"install dependencies: %q exited with code %d",
			command, result.ExitCode,
		)
	}
	return nil
}

func hasFile(files map[string]string, name string) bool {
	_, ok := files[name]
	return ok
}
