// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot archives a failed test's workspace for post-mortem
// inspection.
//
// A failure report (package diagnose) answers "what happened" at the
// moment of failure; a snapshot preserves the evidence. [Write]
// produces a single zstd-compressed tar archive containing the full
// workspace tree, a CBOR record of the captured invocation (exit code
// and both output streams), and a manifest listing every archived file
// with its size and BLAKE3 digest. [Read] reverses the process.
//
// Exclusion patterns in gitignore syntax keep tool-generated bulk
// (output trees, caches, convenience symlink directories) out of the
// archive; the workspace itself is never modified.
//
// Snapshot failures never mask the test failure being preserved: the
// caller logs the returned error and proceeds with the original
// diagnosis.
package snapshot
