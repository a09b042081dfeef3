// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runfiles

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/buildtest/lib/digest"
	"github.com/bureau-foundation/buildtest/workspace"
)

// NotFoundError reports a logical resource that did not resolve to an
// existing filesystem path. Callers can use errors.As:
//
//	var notFound *runfiles.NotFoundError
//	if errors.As(err, &notFound) { ... }
type NotFoundError struct {
	// Logical is the slash-joined logical name that failed to resolve.
	Logical string
	// Err is the underlying cause (typically a stat error, or a
	// missing runfiles tree).
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("runfiles: %s not found: %v", e.Logical, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is (or wraps) a *NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// Resolve maps a logical resource name (root plus path segments) to
// the absolute path of the prepared resource. The runfiles tree is
// located through RUNFILES_DIR, then TEST_SRCDIR. The resolved path
// must exist; a missing resource is a *NotFoundError.
func Resolve(root string, segments ...string) (string, error) {
	logical := strings.Join(append([]string{root}, segments...), "/")

	tree := os.Getenv("RUNFILES_DIR")
	if tree == "" {
		tree = os.Getenv("TEST_SRCDIR")
	}
	if tree == "" {
		return "", &NotFoundError{Logical: logical, Err: fmt.Errorf("neither RUNFILES_DIR nor TEST_SRCDIR is set")}
	}

	resolved := filepath.Join(append([]string{tree, root}, segments...)...)
	if _, err := os.Stat(resolved); err != nil {
		return "", &NotFoundError{Logical: logical, Err: err}
	}
	return resolved, nil
}

// CopyInto resolves the slash-separated logical source path and copies
// its bytes verbatim into the workspace at the destination relative
// path, creating parent directories as needed. The copied content's
// BLAKE3 digest is logged at debug level so failing-test inputs are
// attributable to exact bytes.
func CopyInto(ws *workspace.Workspace, logicalSourcePath, destinationRelativePath string) error {
	parts := strings.Split(logicalSourcePath, "/")
	source, err := Resolve(parts[0], parts[1:]...)
	if err != nil {
		return err
	}

	file, err := os.Open(source)
	if err != nil {
		return &workspace.IOError{Op: "open runfile", Path: source, Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return &workspace.IOError{Op: "read runfile", Path: source, Err: err}
	}

	if _, err := ws.ScratchFileBytes(destinationRelativePath, data); err != nil {
		return err
	}

	slog.Debug("runfile copied into workspace",
		"logical", logicalSourcePath,
		"destination", destinationRelativePath,
		"bytes", len(data),
		"blake3", digest.Format(digest.Bytes(data)))
	return nil
}
