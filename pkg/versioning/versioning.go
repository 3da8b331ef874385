// Package versioning compares IOCCC tool-version strings: dot-separated
// sequences of non-negative integers, tokenized after trimming any leading
// non-digit prefix, and compared as integer tuples with no zero-padding —
// "1.2" is less than "1.2.0" because it has fewer segments, not because any
// segment differs.
package versioning

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Comparison is the three-way result of comparing two versions.
type Comparison int

const (
	ComparisonUnknown Comparison = iota
	ComparisonLess
	ComparisonEqual
	ComparisonGreater
)

// Compare tokenizes a and b by '.', trimming any leading non-digit prefix
// from the whole string first, and compares the resulting integer tuples
// lexicographically. A tuple that is a strict prefix of the other compares
// as less: it is not padded with trailing zeros.
func Compare(a, b string) (Comparison, error) {
	at, err := parseTuple(a)
	if err != nil {
		return ComparisonUnknown, fmt.Errorf("invalid version '%s': %w", a, err)
	}
	bt, err := parseTuple(b)
	if err != nil {
		return ComparisonUnknown, fmt.Errorf("invalid version '%s': %w", b, err)
	}

	limit := len(at)
	if len(bt) < limit {
		limit = len(bt)
	}
	for i := 0; i < limit; i++ {
		if at[i] < bt[i] {
			return ComparisonLess, nil
		}
		if at[i] > bt[i] {
			return ComparisonGreater, nil
		}
	}
	if len(at) < len(bt) {
		return ComparisonLess, nil
	}
	if len(at) > len(bt) {
		return ComparisonGreater, nil
	}
	return ComparisonEqual, nil
}

// parseTuple trims any leading non-digit prefix, then splits on '.' and
// parses each segment as a non-negative integer.
func parseTuple(v string) ([]int, error) {
	trimmed := strings.TrimSpace(v)
	i := 0
	for i < len(trimmed) && (trimmed[i] < '0' || trimmed[i] > '9') {
		i++
	}
	trimmed = trimmed[i:]
	if trimmed == "" {
		return nil, errors.New("no digits found in version")
	}

	parts := strings.Split(trimmed, ".")
	tuple := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid segment '%s'", part)
		}
		tuple[i] = n
	}
	return tuple, nil
}

// MeetsMinimum reports whether actual is >= minimum and is not present
// (case-insensitively) in the poison list.
func MeetsMinimum(actual, minimum string, poison []string) (bool, error) {
	for _, p := range poison {
		if strings.EqualFold(strings.TrimSpace(p), strings.TrimSpace(actual)) {
			return false, nil
		}
	}
	if minimum == "" {
		return true, nil
	}
	cmp, err := Compare(actual, minimum)
	if err != nil {
		return false, err
	}
	return cmp == ComparisonEqual || cmp == ComparisonGreater, nil
}
