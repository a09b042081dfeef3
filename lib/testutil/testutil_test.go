// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"
)

func TestFindPath(t *testing.T) {
	paths := []string{"a.txt", "dir/some/nested.txt", "dir/other.txt"}

	if found, ok := FindPath(paths, "some/nested.txt"); !ok || found != "dir/some/nested.txt" {
		t.Errorf("FindPath = %q, %v", found, ok)
	}
	if _, ok := FindPath(paths, "absent.txt"); ok {
		t.Error("FindPath found a nonexistent suffix")
	}
}

func TestUniqueIDMonotonic(t *testing.T) {
	first := UniqueID("target")
	second := UniqueID("target")
	if first == second {
		t.Errorf("UniqueID returned %q twice", first)
	}
}
