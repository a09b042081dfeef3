// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package harness ties workspace, invoke, diagnose, and snapshot into a
// per-test-case context for driving an external build tool.
//
// One [Harness] is constructed per test case and owns exactly one
// workspace generation; Close tears it down. There is no ambient or
// global workspace state: parallel test cases each construct their own
// Harness with disjoint roots and need no locking.
//
// The tool under test is named by [Config], loaded from a single YAML
// file via the BUILDTEST_CONFIG environment variable or an explicit
// path. The config also carries the expected tool version string (for
// "info release" assertions) and snapshot settings. There are no
// fallbacks or discovery; an unset BUILDTEST_CONFIG with no explicit
// path is an error, which keeps test configuration deterministic and
// auditable.
//
// A typical test case:
//
//	h, err := harness.New(config, harness.Options{})
//	defer h.Close()
//	h.Workspace().ScratchFile("BUILD", ...)
//	result, err := h.Tool(ctx, "test", "//:Target")
//	if !result.Success() {
//	    t.Fatalf("tool failed:\n%s", h.FailureReport(result))
//	}
package harness
