// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Size is the digest length in bytes.
const Size = 32

// File computes the BLAKE3 digest of the file at path. The file is
// streamed through the hash function in chunks (via io.Copy) to keep
// memory usage constant regardless of file size.
func File(path string) ([Size]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return [Size]byte{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()
	return Reader(file)
}

// Reader computes the BLAKE3 digest of everything readable from r.
func Reader(r io.Reader) ([Size]byte, error) {
	hasher := blake3.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return [Size]byte{}, fmt.Errorf("hashing: %w", err)
	}
	var digest [Size]byte
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// Bytes computes the BLAKE3 digest of data.
func Bytes(data []byte) [Size]byte {
	return blake3.Sum256(data)
}

// Format returns the hex-encoded string representation of a digest.
// This is the canonical form used in snapshot manifests and log output.
func Format(digest [Size]byte) string {
	return hex.EncodeToString(digest[:])
}

// Parse parses a hex-encoded digest string into a 32-byte array.
// Returns an error if the string is not a valid 64-character hex
// encoding of 32 bytes.
func Parse(hexString string) ([Size]byte, error) {
	var digest [Size]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(digest[:], decoded)
	return digest, nil
}
