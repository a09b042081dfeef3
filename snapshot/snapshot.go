// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/bureau-foundation/buildtest/invoke"
	"github.com/bureau-foundation/buildtest/lib/codec"
	"github.com/bureau-foundation/buildtest/lib/digest"
	"github.com/bureau-foundation/buildtest/workspace"
)

// Archive member names for the embedded records. Workspace files are
// archived under workspacePrefix with their root-relative paths.
const (
	invocationMember = "invocation.cbor"
	manifestMember   = "manifest.cbor"
	workspacePrefix  = "workspace/"
)

// Config holds configuration for writing a snapshot.
type Config struct {
	// Dir is the directory the archive is written into. Created if
	// absent.
	Dir string

	// Name is the archive base name. Empty derives
	// "workspace-gen<generation>" from the workspace.
	Name string

	// Exclude holds gitignore-syntax patterns for workspace paths to
	// omit from the archive (tool output trees, caches).
	Exclude []string

	// Logger for snapshot operations. Nil means slog.Default().
	Logger *slog.Logger
}

// InvocationRecord is the CBOR-encoded command result embedded in an
// archive.
type InvocationRecord struct {
	ExitCode int      `cbor:"exit_code"`
	Stdout   []string `cbor:"stdout"`
	Stderr   []string `cbor:"stderr"`
}

// ManifestEntry describes one archived workspace file.
type ManifestEntry struct {
	// Path is the workspace-root-relative slash path.
	Path string `cbor:"path"`
	// Size is the file size in bytes.
	Size int64 `cbor:"size"`
	// Blake3 is the hex-encoded BLAKE3 digest of the file content.
	Blake3 string `cbor:"blake3"`
}

// Write archives the workspace tree and the invocation result into
// <dir>/<name>.tar.zst and returns the archive path. The workspace is
// read but never modified.
func Write(ws *workspace.Workspace, result *invoke.Result, config Config) (string, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := config.Name
	if name == "" {
		name = fmt.Sprintf("workspace-gen%d", ws.Generation())
	}

	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}

	var excluder *ignore.GitIgnore
	if len(config.Exclude) > 0 {
		excluder = ignore.CompileIgnoreLines(config.Exclude...)
	}

	contents, err := ws.Contents()
	if err != nil {
		return "", fmt.Errorf("listing workspace: %w", err)
	}

	archivePath := filepath.Join(config.Dir, name+".tar.zst")
	file, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("creating snapshot archive: %w", err)
	}
	defer file.Close()

	compressor, err := zstd.NewWriter(file)
	if err != nil {
		return "", fmt.Errorf("initializing zstd writer: %w", err)
	}
	tarWriter := tar.NewWriter(compressor)

	var manifest []ManifestEntry
	archived := 0
	for _, relative := range contents {
		if excluder != nil && excluder.MatchesPath(relative) {
			continue
		}
		absolute, err := ws.Path(relative)
		if err != nil {
			return "", err
		}
		entry, err := archiveFile(tarWriter, absolute, relative)
		if err != nil {
			return "", err
		}
		manifest = append(manifest, entry)
		archived++
	}

	record := InvocationRecord{
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}
	if err := archiveRecord(tarWriter, invocationMember, record); err != nil {
		return "", err
	}
	if err := archiveRecord(tarWriter, manifestMember, manifest); err != nil {
		return "", err
	}

	if err := tarWriter.Close(); err != nil {
		return "", fmt.Errorf("finalizing tar stream: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return "", fmt.Errorf("finalizing zstd stream: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing snapshot archive: %w", err)
	}

	logger.Info("workspace snapshot written",
		"path", archivePath,
		"files", archived,
		"excluded", len(contents)-archived,
		"exit_code", result.ExitCode)
	return archivePath, nil
}

// archiveFile streams one workspace file into the tar and returns its
// manifest entry.
func archiveFile(tarWriter *tar.Writer, absolute, relative string) (ManifestEntry, error) {
	info, err := os.Stat(absolute)
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("stat %s: %w", relative, err)
	}
	fileDigest, err := digest.File(absolute)
	if err != nil {
		return ManifestEntry{}, err
	}

	header := &tar.Header{
		Name:    workspacePrefix + relative,
		Mode:    int64(info.Mode().Perm()),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := tarWriter.WriteHeader(header); err != nil {
		return ManifestEntry{}, fmt.Errorf("writing tar header for %s: %w", relative, err)
	}
	file, err := os.Open(absolute)
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("opening %s: %w", relative, err)
	}
	defer file.Close()
	if _, err := io.Copy(tarWriter, file); err != nil {
		return ManifestEntry{}, fmt.Errorf("archiving %s: %w", relative, err)
	}

	return ManifestEntry{
		Path:   relative,
		Size:   info.Size(),
		Blake3: digest.Format(fileDigest),
	}, nil
}

// archiveRecord CBOR-encodes a record and writes it as a tar member.
func archiveRecord(tarWriter *tar.Writer, member string, value any) error {
	data, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", member, err)
	}
	header := &tar.Header{
		Name:    member,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: time.Now(),
	}
	if err := tarWriter.WriteHeader(header); err != nil {
		return fmt.Errorf("writing tar header for %s: %w", member, err)
	}
	if _, err := tarWriter.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", member, err)
	}
	return nil
}

// Contents is a decoded snapshot archive.
type Contents struct {
	// Invocation is the captured command result.
	Invocation InvocationRecord
	// Manifest lists the archived workspace files.
	Manifest []ManifestEntry
	// Files maps workspace-relative paths to archived content.
	Files map[string][]byte
}

// Read decodes an archive written by [Write].
func Read(archivePath string) (*Contents, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot archive: %w", err)
	}
	defer file.Close()

	decompressor, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("initializing zstd reader: %w", err)
	}
	defer decompressor.Close()

	contents := &Contents{Files: make(map[string][]byte)}
	tarReader := tar.NewReader(decompressor)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar stream: %w", err)
		}
		var buffer bytes.Buffer
		if _, err := io.Copy(&buffer, tarReader); err != nil {
			return nil, fmt.Errorf("reading archive member %s: %w", header.Name, err)
		}
		switch {
		case header.Name == invocationMember:
			if err := codec.Unmarshal(buffer.Bytes(), &contents.Invocation); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", invocationMember, err)
			}
		case header.Name == manifestMember:
			if err := codec.Unmarshal(buffer.Bytes(), &contents.Manifest); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", manifestMember, err)
			}
		case len(header.Name) > len(workspacePrefix) && header.Name[:len(workspacePrefix)] == workspacePrefix:
			contents.Files[header.Name[len(workspacePrefix):]] = buffer.Bytes()
		}
	}
	return contents, nil
}
