// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

type record struct {
	Name     string   `cbor:"name"`
	ExitCode int      `cbor:"exit_code"`
	Lines    []string `cbor:"lines"`
}

func TestMarshalIsDeterministic(t *testing.T) {
	value := map[string]any{"zebra": 1, "alpha": 2, "mid": 3}
	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical values produced different encodings")
	}
}

func TestRoundTrip(t *testing.T) {
	original := record{Name: "invocation", ExitCode: 1, Lines: []string{"a", "b"}}
	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded record
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Name != original.Name || decoded.ExitCode != original.ExitCode || len(decoded.Lines) != 2 {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}

func TestAnyTargetDecodesToStringKeyedMap(t *testing.T) {
	data, err := Marshal(map[string]any{"key": "value"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := decoded.(map[string]any); !ok {
		t.Errorf("decoded type = %T, want map[string]any", decoded)
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, name := range []string{"first", "second"} {
		if err := encoder.Encode(record{Name: name}); err != nil {
			t.Fatalf("Encode %s: %v", name, err)
		}
	}
	decoder := NewDecoder(&buffer)
	for _, want := range []string{"first", "second"} {
		var decoded record
		if err := decoder.Decode(&decoded); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if decoded.Name != want {
			t.Errorf("decoded name = %q, want %q", decoded.Name, want)
		}
	}
}
