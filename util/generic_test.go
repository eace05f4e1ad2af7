// util/generic_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"testing"
)

func TestMapSlice(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	b := MapSlice(a, func(i int) float64 { return 2 * float64(i) })
	if !slices.Equal(b, []float64{2, 4, 6, 8, 10}) {
		t.Errorf("MapSlice gave %v", b)
	}
	if MapSlice([]int(nil), func(i int) int { return i }) != nil {
		t.Errorf("expected nil result for nil input")
	}
}

func TestFilterSlice(t *testing.T) {
	a := []int{1, 2, 3, 4, 5, 6}
	even := FilterSlice(a, func(i int) bool { return i%2 == 0 })
	if !slices.Equal(even, []int{2, 4, 6}) {
		t.Errorf("FilterSlice gave %v", even)
	}
}

func TestChunk(t *testing.T) {
	type testCase struct {
		n       int
		len     int
		lengths []int
	}
	for _, tc := range []testCase{
		{n: 50, len: 0, lengths: nil},
		{n: 50, len: 1, lengths: []int{1}},
		{n: 50, len: 50, lengths: []int{50}},
		{n: 50, len: 51, lengths: []int{50, 1}},
		{n: 50, len: 121, lengths: []int{50, 50, 21}},
		{n: 0, len: 3, lengths: []int{1, 1, 1}},
	} {
		s := make([]int, tc.len)
		for i := range s {
			s[i] = i
		}

		chunks := Chunk(s, tc.n)
		if lengths := MapSlice(chunks, func(c []int) int { return len(c) }); !slices.Equal(lengths, tc.lengths) {
			t.Errorf("Chunk(%d, %d) gave lengths %v, expected %v", tc.len, tc.n, lengths, tc.lengths)
		}
		if flat := slices.Concat(chunks...); len(s) > 0 && !slices.Equal(flat, s) {
			t.Errorf("Chunk(%d, %d) did not preserve order", tc.len, tc.n)
		}
	}
}

func TestSliceMax(t *testing.T) {
	if _, ok := SliceMax([]float64{}); ok {
		t.Errorf("expected !ok for empty slice")
	}
	if m, ok := SliceMax([]float64{3, -1, 7.5, 2}); !ok || m != 7.5 {
		t.Errorf("SliceMax gave %v %v", m, ok)
	}
}
