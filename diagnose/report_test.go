// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diagnose

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/buildtest/invoke"
	"github.com/bureau-foundation/buildtest/workspace"
)

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(workspace.Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	return ws
}

func TestLogReferences(t *testing.T) {
	stderr := []string{
		"INFO: analyzed 3 targets",
		"//:FirstTest FAILED in 0.4s (see /tmp/first/test.log)",
		"no reference on this line",
		"//:SecondTest FAILED in 1.2s (see /tmp/second/test.log)",
	}
	want := []string{"/tmp/first/test.log", "/tmp/second/test.log"}
	if got := LogReferences(stderr); !slices.Equal(got, want) {
		t.Errorf("LogReferences = %v, want %v", got, want)
	}
}

func TestLogReferencesIgnoresMalformed(t *testing.T) {
	stderr := []string{
		"unterminated (see /tmp/never/closed",
		"empty reference (see )",
	}
	if got := LogReferences(stderr); got != nil {
		t.Errorf("LogReferences = %v, want none", got)
	}
}

func TestLogReferencesOrderIsTextual(t *testing.T) {
	stderr := []string{
		"(see /tmp/b.log)",
		"(see /tmp/a.log)",
	}
	want := []string{"/tmp/b.log", "/tmp/a.log"}
	if got := LogReferences(stderr); !slices.Equal(got, want) {
		t.Errorf("LogReferences = %v, want %v (stderr order, not sorted)", got, want)
	}
}

func TestBuildReportInlinesReferencedLog(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "x")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	logPath := filepath.Join(logDir, "test.log")
	if err := os.WriteFile(logPath, []byte("boom\n"), 0o644); err != nil {
		t.Fatalf("writing log fixture: %v", err)
	}

	ws := newTestWorkspace(t)
	if _, err := ws.ScratchFile("BUILD", "# build file"); err != nil {
		t.Fatalf("scratch: %v", err)
	}

	result := &invoke.Result{
		ExitCode: 1,
		Stderr:   []string{"//:Failing FAILED in 0.1s (see " + logPath + ")"},
	}

	report := BuildReport(result, ws)
	if !strings.Contains(report, logPath) {
		t.Errorf("report does not name the referenced log path %s:\n%s", logPath, report)
	}
	if !strings.Contains(report, "boom") {
		t.Errorf("report does not inline the log contents:\n%s", report)
	}
	if !strings.Contains(report, "BUILD") {
		t.Errorf("report does not list workspace contents:\n%s", report)
	}
	if !strings.Contains(report, "//:Failing FAILED") {
		t.Errorf("report does not include raw stderr:\n%s", report)
	}
}

func TestBuildReportMissingLogDegrades(t *testing.T) {
	ws := newTestWorkspace(t)
	missing := filepath.Join(t.TempDir(), "gone", "test.log")
	result := &invoke.Result{
		ExitCode: 1,
		Stderr:   []string{"FAILED (see " + missing + ")"},
	}

	report := BuildReport(result, ws)
	if !strings.Contains(report, missing) {
		t.Errorf("report does not name the missing log:\n%s", report)
	}
	if !strings.Contains(report, "unavailable") {
		t.Errorf("report does not note the unreadable log:\n%s", report)
	}
}

func TestBuildReportOnSuccessResultDoesNotPanic(t *testing.T) {
	ws := newTestWorkspace(t)
	result := &invoke.Result{ExitCode: 0, Stdout: []string{"ok"}}

	report := BuildReport(result, ws)
	if !strings.Contains(report, "std-error:") {
		t.Errorf("report missing stderr header:\n%s", report)
	}
}

func TestBuildReportDoesNotMutateResult(t *testing.T) {
	ws := newTestWorkspace(t)
	stderr := []string{"line one", "line two"}
	result := &invoke.Result{ExitCode: 1, Stderr: slices.Clone(stderr)}

	_ = BuildReport(result, ws)

	if !slices.Equal(result.Stderr, stderr) {
		t.Error("BuildReport mutated the result's stderr")
	}
}
