// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// buildtool-mock is a stand-in build tool exercised by the harness's
// end-to-end tests. It speaks just enough of a real build tool's
// surface to drive every harness code path: version reporting, a test
// command that consults workspace files, and secondary failure logs
// referenced from stderr with the "(see <path>)" convention.
//
// Usage:
//
//	buildtool-mock [flags] info release
//	buildtool-mock [flags] test <name>
//	buildtool-mock [flags] build
//
// The test command reads <name>.result in the working directory. A
// first line of "pass" succeeds; anything else fails, with the
// remaining lines written to a per-target test.log that stderr points
// at. A missing result file is a usage error (exit 2).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/buildtest/lib/process"
)

const defaultVersion = "99.0.0-mock"

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("BUILDTEST_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	flagSet := pflag.NewFlagSet("buildtool-mock", pflag.ContinueOnError)
	version := flagSet.String("version", "", "version string reported by 'info release' (default from BUILDTOOL_MOCK_VERSION)")
	logDir := flagSet.String("log-dir", "", "directory for per-target test logs (default under the system temp directory)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		process.Usage("buildtool-mock: %v", err)
	}

	if *version == "" {
		*version = os.Getenv("BUILDTOOL_MOCK_VERSION")
	}
	if *version == "" {
		*version = defaultVersion
	}

	args := flagSet.Args()
	if len(args) == 0 {
		process.Usage("buildtool-mock: no command (want info, test, or build)")
	}

	switch args[0] {
	case "info":
		if len(args) != 2 || args[1] != "release" {
			process.Usage("buildtool-mock: info supports only 'info release'")
		}
		fmt.Println("release " + *version)
	case "test":
		if len(args) != 2 {
			process.Usage("buildtool-mock: test takes exactly one target name")
		}
		os.Exit(runTest(args[1], *logDir, logger))
	case "build":
		fmt.Println("Build completed successfully")
	default:
		process.Usage("buildtool-mock: unknown command %q", args[0])
	}
}

// runTest evaluates one test target against its .result file in the
// working directory and returns the process exit code.
func runTest(name, logDir string, logger *slog.Logger) int {
	resultPath := name + ".result"
	data, err := os.ReadFile(resultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no such target: %s (%v)\n", name, err)
		return 2
	}

	verdict, detail := splitVerdict(string(data))
	logger.Debug("evaluating test target", "name", name, "verdict", verdict)

	if verdict == "pass" {
		fmt.Printf("//%s: PASSED\n", name)
		return 0
	}

	if logDir == "" {
		logDir = filepath.Join(os.TempDir(), fmt.Sprintf("buildtool-mock-%d", os.Getpid()))
	}
	logPath := filepath.Join(logDir, name, "test.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		process.Fatal(fmt.Errorf("creating log directory: %w", err))
	}
	if err := os.WriteFile(logPath, []byte(detail), 0o644); err != nil {
		process.Fatal(fmt.Errorf("writing test log: %w", err))
	}

	fmt.Fprintf(os.Stderr, "//%s: FAILED (see %s)\n", name, logPath)
	return 1
}

// splitVerdict separates the first line of a .result file from the
// remainder, which becomes the failure log body.
func splitVerdict(content string) (verdict, detail string) {
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			return content[:i], content[i+1:]
		}
	}
	return content, ""
}
