// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace manages disposable scratch directories for build-tool
// integration tests.
//
// The central type is [Workspace], a single sandbox directory tree that a
// test case populates with scratch files before invoking the tool under
// test. Each workspace owns one "generation" directory at a time:
// [Workspace.Reset] discards the current generation wholesale and creates
// a fresh, empty one, so a test suite can reuse a workspace across cases
// without inheriting state. The generation directory always exists and is
// empty immediately after New or Reset.
//
// Scratch paths are always interpreted relative to the current generation
// root. Absolute paths and paths that escape the root via ".." are
// rejected with an [*IOError]. [Workspace.Contents] returns the recursive
// file listing as root-relative paths, so callers can match a scratch
// file by exact relative-path equality rather than suffix heuristics.
//
// Workspaces are not safe for concurrent use. Each test case must own an
// independent Workspace; parallel cases with disjoint roots need no
// locking.
package workspace
