// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides BLAKE3 content hashing for harness artifacts.
//
// The harness records content digests in two places: when a runfile is
// copied into a workspace (so a failing test's setup is attributable to
// exact input bytes) and in snapshot archive manifests (so an archived
// workspace can be audited after the fact). Both uses stream the file
// through the hash with constant memory usage.
//
// This package has no dependencies on other buildtest packages.
package digest
