// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared helpers for tests built on the
// buildtest harness.
//
// [ToolBinary] resolves a pre-built tool binary from an environment
// variable, honoring the runfiles convention when a build system
// prepared the binary as a data dependency. This avoids calling
// "go build" from tests and keeps binary provenance in the build
// graph.
//
// [FindPath] performs the suffix lookup test code uses to locate a
// scratch file in a workspace listing.
//
// [RequireExitCode] asserts on an invocation's exit code and, on
// mismatch, fails the test with the full diagnostic report (stderr,
// workspace listing, referenced secondary logs) so the interesting
// evidence is in the test output, not in a file somewhere.
//
// [UniqueID] generates monotonically increasing identifiers for
// disambiguating scratch paths and target names across cases sharing
// a workspace anchor.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
