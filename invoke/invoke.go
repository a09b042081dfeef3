// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Command describes one invocation of the external tool.
type Command struct {
	// Path is the executable to run, absolute or resolvable via PATH.
	Path string

	// Args is the argument vector, not including the executable name.
	Args []string

	// Dir is the working directory. Required: the harness always runs
	// the tool inside a workspace generation.
	Dir string

	// Env is the complete child environment. Nil inherits the parent
	// environment.
	Env []string

	// Logger for invocation lifecycle events. Nil means slog.Default().
	Logger *slog.Logger
}

// Result is the captured outcome of a completed invocation. Immutable
// once returned; it is owned by the caller that ran the command.
type Result struct {
	// ExitCode is the process exit status. Zero denotes success.
	ExitCode int

	// Stdout holds the standard-output lines in emission order.
	Stdout []string

	// Stderr holds the standard-error lines in emission order.
	Stderr []string
}

// Success reports whether the invocation exited zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// LaunchError reports a process that could not be started at all.
// Distinct from a nonzero exit code: with a LaunchError the tool never
// ran. Callers can use errors.As:
//
//	var launchErr *invoke.LaunchError
//	if errors.As(err, &launchErr) { ... }
type LaunchError struct {
	// Path is the executable that failed to start.
	Path string
	// Err is the underlying failure (not found, permission denied, ...).
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("invoke: launching %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsLaunchError reports whether err is (or wraps) a *LaunchError.
func IsLaunchError(err error) bool {
	var launchErr *LaunchError
	return errors.As(err, &launchErr)
}

// Run executes the command and blocks until it exits with both output
// streams fully drained. The two pipes are read by concurrent
// goroutines so a full OS pipe buffer can never deadlock the child.
// Output is never truncated.
func Run(ctx context.Context, command Command) (*Result, error) {
	logger := command.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.CommandContext(ctx, command.Path, command.Args...)
	cmd.Dir = command.Dir
	if command.Env != nil {
		cmd.Env = command.Env
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("create stderr pipe: %w", err)
	}

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Path: command.Path, Err: err}
	}

	var waitGroup sync.WaitGroup
	var stdoutLines, stderrLines []string
	var stdoutErr, stderrErr error
	waitGroup.Add(2)
	go func() {
		defer waitGroup.Done()
		stdoutLines, stdoutErr = drainLines(stdout)
	}()
	go func() {
		defer waitGroup.Done()
		stderrLines, stderrErr = drainLines(stderr)
	}()

	// Both pipes must reach EOF before Wait: Wait closes the pipes
	// and would race the readers otherwise.
	waitGroup.Wait()

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("waiting for %s: %w", command.Path, err)
		}
		exitCode = exitErr.ExitCode()
	}

	if stdoutErr != nil {
		return nil, fmt.Errorf("draining stdout of %s: %w", command.Path, stdoutErr)
	}
	if stderrErr != nil {
		return nil, fmt.Errorf("draining stderr of %s: %w", command.Path, stderrErr)
	}

	logger.Debug("tool invocation complete",
		"path", command.Path,
		"args", command.Args,
		"dir", command.Dir,
		"exit_code", exitCode,
		"stdout_lines", len(stdoutLines),
		"stderr_lines", len(stderrLines),
		"duration", time.Since(startTime))

	return &Result{
		ExitCode: exitCode,
		Stdout:   stdoutLines,
		Stderr:   stderrLines,
	}, nil
}

// MergedEnv builds a child environment from the parent environment
// plus explicit overrides, in override-wins order.
func MergedEnv(overrides map[string]string) []string {
	env := os.Environ()
	for name, value := range overrides {
		env = append(env, name+"="+value)
	}
	return env
}

// drainLines reads r to EOF, splitting into lines. Newlines are not
// part of the captured lines. Lines of any length are captured whole;
// nothing is ever truncated.
func drainLines(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
	}
}
