/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package exitcode

import "testing"

func TestExitCodeConstants(t *testing.T) {
	cases := map[string]struct {
		code, want int
	}{
		"Success":          {Success, 0},
		"NotRelative":      {NotRelative, 1},
		"PathTooLong":      {PathTooLong, 4},
		"NameTooLong":      {NameTooLong, 5},
		"PathTooDeep":      {PathTooDeep, 6},
		"NotPosixSafe":     {NotPosixSafe, 7},
		"DotDotOverTopDir": {DotDotOverTopDir, 8},
		"PathEmpty":        {PathEmpty, 9},
		"PathIsNull":       {PathIsNull, 10},
		"Malloc":           {Malloc, 11},
		"NullComponent":    {NullComponent, 12},
		"WrongLen":         {WrongLen, 13},
	}
	for name, tc := range cases {
		if tc.code != tc.want {
			t.Errorf("%s = %d, want %d", name, tc.code, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{NotRelative, "Path is not relative"},
		{PathTooLong, "Path exceeds maximum length"},
		{DotDotOverTopDir, "Path attempts to climb above the top directory"},
		{999, "Unknown error"},
	}
	for _, test := range tests {
		if got := String(test.code); got != test.expected {
			t.Errorf("String(%d) = %v, want %v", test.code, got, test.expected)
		}
	}
}

func TestExitCodeUniqueness(t *testing.T) {
	codes := []int{
		Success, NotRelative, PathTooLong, NameTooLong, PathTooDeep,
		NotPosixSafe, DotDotOverTopDir, PathEmpty, PathIsNull, Malloc,
		NullComponent, WrongLen,
	}
	seen := make(map[int]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("exit code %d is not unique", code)
		}
		seen[code] = true
	}
}
