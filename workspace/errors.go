// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"errors"
	"fmt"
)

// IOError reports a failed filesystem operation on a workspace. Callers
// can use errors.As to distinguish workspace I/O failures from other
// error classes:
//
//	var ioErr *workspace.IOError
//	if errors.As(err, &ioErr) { ... }
//
// Workspace I/O failures are setup defects, never retried.
type IOError struct {
	// Op names the operation that failed ("write scratch file",
	// "create generation directory", ...).
	Op string
	// Path is the path involved, as the caller supplied it.
	Path string
	// Err is the underlying failure.
	Err error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("workspace: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("workspace: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err is (or wraps) a workspace *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
