// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"context"
	"path/filepath"
	"slices"
	"strconv"
	"testing"

	"github.com/bureau-foundation/buildtest/workspace"
)

// scratchScript writes an executable shell script into a fresh
// workspace and returns its absolute path plus the workspace root.
func scratchScript(t *testing.T, lines ...string) (string, string) {
	t.Helper()
	ws, err := workspace.New(workspace.Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	script, err := ws.ScratchExecutableFile("tool.sh", append([]string{"#!/bin/sh"}, lines...)...)
	if err != nil {
		t.Fatalf("ScratchExecutableFile: %v", err)
	}
	return script, ws.Root()
}

func TestRunCapturesBothStreams(t *testing.T) {
	script, dir := scratchScript(t,
		`echo "out one"`,
		`echo "err one" >&2`,
		`echo "out two"`,
		`echo "err two" >&2`,
	)

	result, err := Run(context.Background(), Command{Path: script, Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Success() {
		t.Errorf("exit code = %d, want 0", result.ExitCode)
	}
	if want := []string{"out one", "out two"}; !slices.Equal(result.Stdout, want) {
		t.Errorf("Stdout = %v, want %v", result.Stdout, want)
	}
	if want := []string{"err one", "err two"}; !slices.Equal(result.Stderr, want) {
		t.Errorf("Stderr = %v, want %v", result.Stderr, want)
	}
}

func TestRunNonzeroExitIsNotAnError(t *testing.T) {
	script, dir := scratchScript(t, "exit 7")

	result, err := Run(context.Background(), Command{Path: script, Dir: dir})
	if err != nil {
		t.Fatalf("Run returned error for nonzero exit: %v", err)
	}
	if result.ExitCode != 7 {
		t.Errorf("exit code = %d, want 7", result.ExitCode)
	}
	if result.Success() {
		t.Error("Success() = true for exit code 7")
	}
}

func TestRunMissingExecutableIsLaunchError(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(context.Background(), Command{
		Path: filepath.Join(dir, "does-not-exist"),
		Dir:  dir,
	})
	if !IsLaunchError(err) {
		t.Errorf("err = %v, want *LaunchError", err)
	}
}

func TestRunNonExecutableIsLaunchError(t *testing.T) {
	ws, err := workspace.New(workspace.Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	// Plain scratch file: no execute bit.
	plain, err := ws.ScratchFile("not-a-tool", "just text")
	if err != nil {
		t.Fatalf("ScratchFile: %v", err)
	}

	_, err = Run(context.Background(), Command{Path: plain, Dir: ws.Root()})
	if !IsLaunchError(err) {
		t.Errorf("err = %v, want *LaunchError", err)
	}
}

func TestRunDrainsLargeOutputWithoutDeadlock(t *testing.T) {
	// Far beyond the 64 KiB OS pipe buffer on both streams at once.
	// Sequential draining would deadlock here.
	const lineCount = 20000
	script, dir := scratchScript(t,
		`i=0`,
		`while [ $i -lt `+strconv.Itoa(lineCount)+` ]; do`,
		`  echo "stdout line $i"`,
		`  echo "stderr line $i" >&2`,
		`  i=$((i+1))`,
		`done`,
	)

	result, err := Run(context.Background(), Command{Path: script, Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Stdout) != lineCount {
		t.Errorf("captured %d stdout lines, want %d", len(result.Stdout), lineCount)
	}
	if len(result.Stderr) != lineCount {
		t.Errorf("captured %d stderr lines, want %d", len(result.Stderr), lineCount)
	}
	if result.Stdout[0] != "stdout line 0" {
		t.Errorf("first stdout line = %q", result.Stdout[0])
	}
	if last := result.Stdout[lineCount-1]; last != "stdout line "+strconv.Itoa(lineCount-1) {
		t.Errorf("last stdout line = %q", last)
	}
}

func TestRunWorkingDirectory(t *testing.T) {
	script, dir := scratchScript(t, "pwd")

	result, err := Run(context.Background(), Command{Path: script, Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Stdout) != 1 {
		t.Fatalf("Stdout = %v, want a single pwd line", result.Stdout)
	}
	got, err := filepath.EvalSymlinks(result.Stdout[0])
	if err != nil {
		t.Fatalf("resolving reported pwd: %v", err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("resolving workspace root: %v", err)
	}
	if got != want {
		t.Errorf("child pwd = %q, want %q", got, want)
	}
}

func TestRunExplicitEnvironment(t *testing.T) {
	script, dir := scratchScript(t, `echo "marker=$BUILDTEST_MARKER"`)

	result, err := Run(context.Background(), Command{
		Path: script,
		Dir:  dir,
		Env:  MergedEnv(map[string]string{"BUILDTEST_MARKER": "present"}),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if want := []string{"marker=present"}; !slices.Equal(result.Stdout, want) {
		t.Errorf("Stdout = %v, want %v", result.Stdout, want)
	}
}
