// util/generic.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"golang.org/x/exp/constraints"
)

// MapSlice returns the slice that is the result of applying the provided
// xform function to all the elements of the given slice.
func MapSlice[F, T any](from []F, xform func(F) T) []T {
	var to []T
	for _, item := range from {
		to = append(to, xform(item))
	}
	return to
}

// FilterSlice applies the given filter function pred to the given slice,
// returning a new slice that only contains elements where pred returned
// true.
func FilterSlice[V any](s []V, pred func(V) bool) []V {
	var filtered []V
	for _, item := range s {
		if pred(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Chunk splits s into consecutive sub-slices holding at most n elements
// each. The sub-slices alias s.
func Chunk[V any](s []V, n int) [][]V {
	if n <= 0 {
		n = 1
	}
	var chunks [][]V
	for start := 0; start < len(s); start += n {
		chunks = append(chunks, s[start:min(start+n, len(s))])
	}
	return chunks
}

// SliceMax returns the largest value in s and false if s is empty.
func SliceMax[V constraints.Ordered](s []V) (V, bool) {
	var m V
	if len(s) == 0 {
		return m, false
	}
	m = s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return m, true
}
