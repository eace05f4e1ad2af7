// util/cache_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"maps"
	"path/filepath"
	"testing"
)

func TestEncodeCompressed(t *testing.T) {
	in := map[string]float64{"47.00000,8.00000": 1378.2, "47.01000,8.00000": 1402.5}

	var buf bytes.Buffer
	if err := EncodeCompressed(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var out map[string]float64
	if err := DecodeCompressed(&buf, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !maps.Equal(in, out) {
		t.Errorf("got %v, expected %v", out, in)
	}
}

func TestStoreRetrieveObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "elevations.msgpack.zst")

	in := []int{1, 2, 3}
	if err := StoreObject(path, in); err != nil {
		t.Fatalf("store: %v", err)
	}

	var out []int
	if err := RetrieveObject(path, &out); err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(out) != 3 || out[2] != 3 {
		t.Errorf("got %v", out)
	}

	if err := RetrieveObject(filepath.Join(t.TempDir(), "missing"), &out); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestDecodeCompressedGarbage(t *testing.T) {
	var out []int
	if err := DecodeCompressed(bytes.NewReader([]byte("not zstd")), &out); err == nil {
		t.Errorf("expected error decoding garbage")
	}
}
