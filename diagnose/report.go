// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diagnose

import (
	"os"
	"strings"

	"github.com/bureau-foundation/buildtest/invoke"
	"github.com/bureau-foundation/buildtest/workspace"
)

// logReferenceMarker introduces a secondary log path in a stderr line.
// The path runs from the marker to the next closing parenthesis.
const logReferenceMarker = "(see "

// LogReferences extracts secondary log paths from captured stderr
// lines, in the order their markers appear. A line may contain at most
// one reference; lines without the marker are ignored.
func LogReferences(stderrLines []string) []string {
	var paths []string
	for _, line := range stderrLines {
		start := strings.Index(line, logReferenceMarker)
		if start < 0 {
			continue
		}
		rest := line[start+len(logReferenceMarker):]
		end := strings.Index(rest, ")")
		if end < 0 {
			continue
		}
		if path := rest[:end]; path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// BuildReport assembles the failure report for a completed invocation:
// the raw stderr lines, the workspace's recursive file listing, and the
// full contents of every secondary log referenced from stderr. It
// mutates neither argument and never fails; an unreadable log or an
// unlistable workspace degrades to a note inside the report.
func BuildReport(result *invoke.Result, ws *workspace.Workspace) string {
	var report strings.Builder

	report.WriteString("std-error:\n")
	for _, line := range result.Stderr {
		report.WriteString(line)
		report.WriteString("\n")
	}

	report.WriteString("\nworkspace contents:\n")
	contents, err := ws.Contents()
	if err != nil {
		report.WriteString("  (workspace listing unavailable: " + err.Error() + ")\n")
	}
	for _, path := range contents {
		report.WriteString("  " + path + "\n")
	}

	for _, logPath := range LogReferences(result.Stderr) {
		report.WriteString("\nlog path:\n")
		report.WriteString(logPath + "\n")
		data, err := os.ReadFile(logPath)
		if err != nil {
			// A missing secondary log is itself diagnostic information;
			// never let it mask the failure being reported.
			report.WriteString("log contents:\n")
			report.WriteString("  (unavailable: " + err.Error() + ")\n")
			continue
		}
		report.WriteString("log contents:\n")
		for _, line := range splitLogLines(string(data)) {
			report.WriteString("  " + line + "\n")
		}
	}

	return report.String()
}

// splitLogLines splits file content into lines without inventing a
// trailing empty line for newline-terminated files.
func splitLogLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
