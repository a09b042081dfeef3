// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package runfiles resolves build-time-prepared test resources to
// filesystem paths and copies them into workspaces.
//
// Resources are addressed by a logical name: a root (the workspace or
// repository name the resource was declared under) plus relative path
// segments. [Resolve] maps a logical name to an absolute path inside
// the runfiles tree the build system prepared before the test run,
// checking RUNFILES_DIR first and falling back to TEST_SRCDIR. Tests
// therefore never hardcode build-output layout; the only coupling is
// the logical name.
//
// A resource that does not resolve to an existing path is a
// [*NotFoundError]. This is always a test-setup defect: it is surfaced
// immediately and never retried.
package runfiles
