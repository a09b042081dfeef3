// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/buildtest/diagnose"
	"github.com/bureau-foundation/buildtest/invoke"
	"github.com/bureau-foundation/buildtest/snapshot"
	"github.com/bureau-foundation/buildtest/workspace"
)

// Harness is the per-test-case context for driving the tool under
// test. It owns exactly one workspace generation at a time and is not
// safe for concurrent use; parallel test cases each construct their
// own Harness.
type Harness struct {
	config    Config
	workspace *workspace.Workspace
	logger    *slog.Logger
}

// Options holds optional harness construction parameters.
type Options struct {
	// Logger for harness operations. Nil means slog.Default().
	Logger *slog.Logger
}

// New creates a harness with a fresh, empty workspace.
func New(config Config, options Options) (*Harness, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ws, err := workspace.New(workspace.Config{
		Root:   config.WorkspaceRoot,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating harness workspace: %w", err)
	}

	return &Harness{
		config:    config,
		workspace: ws,
		logger:    logger,
	}, nil
}

// Workspace returns the harness's workspace for scratch and copy
// operations.
func (h *Harness) Workspace() *workspace.Workspace {
	return h.workspace
}

// Config returns the harness configuration.
func (h *Harness) Config() Config {
	return h.config
}

// Tool runs the configured build tool with the given arguments. The
// working directory is the current workspace root and the environment
// is the inherited one plus the configured overrides. A nonzero exit
// code is a normal result; only a launch failure is an error.
func (h *Harness) Tool(ctx context.Context, args ...string) (*invoke.Result, error) {
	return invoke.Run(ctx, invoke.Command{
		Path:   h.config.Tool,
		Args:   args,
		Dir:    h.workspace.Root(),
		Env:    invoke.MergedEnv(h.config.Environment),
		Logger: h.logger,
	})
}

// FailureReport builds the composite diagnostic report for a failed
// invocation: raw stderr, workspace listing, and the contents of every
// secondary log referenced from stderr. Never fails.
func (h *Harness) FailureReport(result *invoke.Result) string {
	return diagnose.BuildReport(result, h.workspace)
}

// Snapshot archives the current workspace and the invocation result
// for post-mortem inspection, returning the archive path. Returns an
// error if snapshots are not configured; callers log snapshot errors
// rather than letting them replace the failure being preserved.
func (h *Harness) Snapshot(result *invoke.Result) (string, error) {
	if h.config.Snapshot.Dir == "" {
		return "", fmt.Errorf("snapshot directory not configured")
	}
	return snapshot.Write(h.workspace, result, snapshot.Config{
		Dir:     h.config.Snapshot.Dir,
		Exclude: h.config.Snapshot.Exclude,
		Logger:  h.logger,
	})
}

// Reset discards the workspace contents and starts a fresh, empty
// generation, keeping the same harness.
func (h *Harness) Reset() error {
	return h.workspace.Reset()
}

// Close removes the workspace. The harness is unusable afterwards.
func (h *Harness) Close() error {
	return h.workspace.Remove()
}
