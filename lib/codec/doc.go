// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides deterministic CBOR encoding for snapshot
// records.
//
// Snapshot archives embed machine-readable records (the invocation
// result, the file manifest) so a failing test's inputs and outputs can
// be inspected programmatically after the fact. Records use CBOR with
// Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items. Same logical
// data always produces identical bytes, so archived records are
// byte-comparable across runs.
//
// Consumers import only this package, never fxamacker/cbor directly.
package codec
