// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package diagnose assembles human-readable failure reports from
// captured tool output.
//
// Build tools often point at secondary log files instead of inlining
// the interesting failure detail: a stderr line such as
//
//	//:SomeTest FAILED in 0.4s (see /tmp/.../test.log)
//
// names the file that actually explains the failure. [LogReferences]
// extracts those paths by scanning stderr for the literal "(see "
// marker, and [BuildReport] inlines each referenced file's contents
// into a single report alongside the raw stderr and the workspace's
// recursive file listing. The marker text and parenthesis delimiters
// are the one piece of wire-format coupling to the tool's output and
// are confined to this package, so a structured replacement would not
// touch callers.
//
// Report construction is a pure function of the command result and
// workspace state and never fails: an unreadable referenced log is
// itself diagnostic information and degrades to an "unavailable" note
// rather than masking the original failure with a new error.
package diagnose
