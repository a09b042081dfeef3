// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package invoke runs the external tool under test and captures its
// output as structured line sequences.
//
// [Run] spawns the command, blocks until it exits, and returns a
// [Result] holding the exit code and the complete stdout and stderr
// streams as ordered lines. A nonzero exit code is a normal Result, not
// an error: calling test code decides whether a given scenario expects
// success or failure. Only a process that could not be started at all
// (missing executable, permission denied) returns an error, as a
// [*LaunchError], so callers can distinguish "tool ran and failed" from
// "tool never ran".
//
// Both output pipes are drained by concurrent goroutines while waiting
// for process exit. Draining sequentially would deadlock the child once
// an OS pipe buffer fills; this is the one place the harness uses real
// concurrency, and it completes before Run returns.
package invoke
