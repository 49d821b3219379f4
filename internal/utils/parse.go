// Package utils holds small helpers for parsing query parameters.
package utils

import (
	"cmp"
	"strconv"
)

// AtoiDefault parses s as a base-10 int, returning def when s is empty or
// not a number. Surrounding spaces are not trimmed.
func AtoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
