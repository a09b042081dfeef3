// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Workspace is a disposable sandbox directory tree. The zero value is
// not usable; construct with [New].
type Workspace struct {
	// base is the stable anchor directory. Generation directories are
	// created underneath it so Reset can atomically switch to a fresh
	// root while the old tree is removed.
	base       string
	generation int
	root       string
	logger     *slog.Logger
}

// Config holds configuration for creating a new Workspace.
type Config struct {
	// Root is the anchor directory for workspace generations. Empty
	// means a fresh directory under the system temp directory.
	Root string

	// Logger for workspace operations. Nil means slog.Default().
	Logger *slog.Logger
}

// New creates a workspace with one fresh, empty generation directory.
func New(config Config) (*Workspace, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := config.Root
	if base == "" {
		directory, err := os.MkdirTemp("", "buildtest-workspace-*")
		if err != nil {
			return nil, &IOError{Op: "create workspace base", Path: "", Err: err}
		}
		base = directory
	} else {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return nil, &IOError{Op: "create workspace base", Path: base, Err: err}
		}
	}

	workspace := &Workspace{base: base, logger: logger}
	if err := workspace.newGeneration(); err != nil {
		return nil, err
	}
	return workspace, nil
}

// Root returns the absolute path of the current generation directory.
// All scratch paths are interpreted relative to it, and it is the
// default working directory for tool invocations.
func (w *Workspace) Root() string {
	return w.root
}

// Generation returns the monotonic generation counter. It starts at 1
// and increments on every Reset.
func (w *Workspace) Generation() int {
	return w.generation
}

// ScratchFile writes lines joined with newlines to path under the
// workspace root, creating parent directories as needed and overwriting
// any existing file. Zero lines produce an empty file. Returns the
// absolute path written.
func (w *Workspace) ScratchFile(path string, lines ...string) (string, error) {
	return w.ScratchFileBytes(path, []byte(joinLines(lines)))
}

// ScratchFileBytes writes a raw byte payload to path under the
// workspace root. Semantics otherwise match ScratchFile.
func (w *Workspace) ScratchFileBytes(path string, data []byte) (string, error) {
	return w.write(path, data, 0o644)
}

// ScratchExecutableFile writes lines to path as ScratchFile does, then
// marks the file executable. The permission is a real mode bit, so the
// result passes OS-level executability checks and can be exec'd
// directly.
func (w *Workspace) ScratchExecutableFile(path string, lines ...string) (string, error) {
	return w.write(path, []byte(joinLines(lines)), 0o755)
}

func (w *Workspace) write(path string, data []byte, mode fs.FileMode) (string, error) {
	absolute, err := w.resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(absolute), 0o755); err != nil {
		return "", &IOError{Op: "create parent directories", Path: path, Err: err}
	}
	if err := os.WriteFile(absolute, data, mode); err != nil {
		return "", &IOError{Op: "write scratch file", Path: path, Err: err}
	}
	// WriteFile does not update the mode of a pre-existing file, and a
	// restrictive umask can strip bits on creation.
	if err := os.Chmod(absolute, mode); err != nil {
		return "", &IOError{Op: "set scratch file mode", Path: path, Err: err}
	}
	w.logger.Debug("scratch file written",
		"path", path,
		"bytes", len(data),
		"mode", mode.String(),
		"generation", w.generation)
	return absolute, nil
}

// Path resolves a root-relative path to an absolute path inside the
// current generation. The file need not exist.
func (w *Workspace) Path(relative string) (string, error) {
	return w.resolve(relative)
}

// resolve validates that path stays inside the workspace root and
// returns its absolute form.
func (w *Workspace) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return "", &IOError{Op: "resolve scratch path", Path: path, Err: fmt.Errorf("absolute paths are not allowed in a workspace")}
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", &IOError{Op: "resolve scratch path", Path: path, Err: fmt.Errorf("path escapes workspace root")}
	}
	return filepath.Join(w.root, cleaned), nil
}

// Reset discards the current generation directory and creates a new,
// empty one. Safe to call mid-suite: the new generation is created
// before the old tree is removed, so the workspace root is always
// valid. Removal failure of the old tree is reported but the workspace
// remains usable with the fresh generation.
func (w *Workspace) Reset() error {
	previous := w.root
	if err := w.newGeneration(); err != nil {
		return err
	}
	if err := os.RemoveAll(previous); err != nil {
		return &IOError{Op: "remove previous generation", Path: previous, Err: err}
	}
	return nil
}

func (w *Workspace) newGeneration() error {
	w.generation++
	root := filepath.Join(w.base, fmt.Sprintf("gen-%d", w.generation))
	// Anchor roots are reused across runs (the root is a persistent
	// config value, and a crashed run never removes its tree). A
	// leftover generation directory must not leak into the fresh
	// workspace: the root must be empty immediately after creation.
	if err := os.RemoveAll(root); err != nil {
		return &IOError{Op: "clear stale generation directory", Path: root, Err: err}
	}
	if err := os.Mkdir(root, 0o755); err != nil {
		return &IOError{Op: "create generation directory", Path: root, Err: err}
	}
	w.root = root
	w.logger.Debug("workspace generation created", "root", root, "generation", w.generation)
	return nil
}

// Contents returns the recursive listing of all regular files under the
// workspace root as sorted root-relative slash paths. A scratch file
// written at path p always appears as exactly p.
func (w *Workspace) Contents() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		relative, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(relative))
		return nil
	})
	if err != nil {
		return nil, &IOError{Op: "list workspace contents", Path: w.root, Err: err}
	}
	sort.Strings(paths)
	return paths, nil
}

// Remove deletes the workspace base directory and everything under it.
// The workspace is unusable afterwards.
func (w *Workspace) Remove() error {
	if err := os.RemoveAll(w.base); err != nil {
		return &IOError{Op: "remove workspace", Path: w.base, Err: err}
	}
	return nil
}

// joinLines joins scratch-file lines with newlines. A single empty
// call produces empty content, matching "an empty file, not an error".
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}
