// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bureau-foundation/buildtest/diagnose"
	"github.com/bureau-foundation/buildtest/invoke"
	"github.com/bureau-foundation/buildtest/workspace"
)

// ToolBinary resolves a pre-built tool binary from an environment
// variable. When RUNFILES_DIR is set the variable's value is treated
// as a runfiles-relative location and resolved against it; otherwise
// it is taken as a direct filesystem path.
//
// Fails the test if the variable is empty or the binary does not exist
// at the resolved path.
func ToolBinary(t *testing.T, envVariable string) string {
	t.Helper()

	value := os.Getenv(envVariable)
	if value == "" {
		t.Fatalf("%s not set (point it at the tool binary under test)", envVariable)
	}

	path := value
	if runfilesDirectory := os.Getenv("RUNFILES_DIR"); runfilesDirectory != "" && !filepath.IsAbs(value) {
		path = filepath.Join(runfilesDirectory, value)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("binary from %s not found at %s: %v", envVariable, path, err)
	}
	return path
}

// FindPath returns the first entry of paths ending with suffix, and
// whether one was found. Workspace listings are root-relative, so an
// exact relative path works as the suffix.
func FindPath(paths []string, suffix string) (string, bool) {
	for _, path := range paths {
		if strings.HasSuffix(path, suffix) {
			return path, true
		}
	}
	return "", false
}

// RequireExitCode asserts that the invocation exited with the wanted
// code. On mismatch it fails the test with the full diagnostic report
// so the evidence is in the test output.
func RequireExitCode(t *testing.T, ws *workspace.Workspace, result *invoke.Result, want int) {
	t.Helper()
	if result.ExitCode != want {
		t.Fatalf("exit code = %d, want %d\n%s", result.ExitCode, want, diagnose.BuildReport(result, ws))
	}
}

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use it for scratch paths and
// target names that must be distinguishable across test cases.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
