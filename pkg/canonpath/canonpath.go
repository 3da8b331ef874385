// Package canonpath normalizes raw path strings into portability-safe,
// policy-constrained canonical paths and classifies every failure mode.
//
// The canonicalizer never touches the filesystem: it is a pure, byte-level
// transformation over the input string under an explicit Policy.
package canonpath

import (
	"regexp"
	"strings"

	"github.com/ioccc-src/submitcheck/pkg/exitcode"
)

// Sanity is the closed set of outcomes canonicalization can report.
type Sanity int

const (
	OK Sanity = iota
	PathTooLong
	NotRelative
	NameTooLong
	PathTooDeep
	NotPosixSafe
	DotDotOverTopDir
	PathEmpty
	PathIsNull
	Malloc
	NullComponent
	WrongLen
)

var sanityNames = map[Sanity]string{
	OK:               "OK",
	PathTooLong:      "path too long",
	NotRelative:      "path is not relative",
	NameTooLong:      "filename component too long",
	PathTooDeep:      "path too deep",
	NotPosixSafe:     "path component is not POSIX-safe",
	DotDotOverTopDir: "'..' climbs above the top directory",
	PathEmpty:        "path is empty",
	PathIsNull:       "path is null",
	Malloc:           "allocation failure",
	NullComponent:    "internal error: null path component",
	WrongLen:         "internal error: computed length mismatch",
}

// String renders the fixed human-readable description for the sanity code.
func (s Sanity) String() string {
	if name, ok := sanityNames[s]; ok {
		return name
	}
	return "unknown sanity code"
}

// ExitCode maps the sanity code to the cpath front end's stable CLI exit code.
func (s Sanity) ExitCode() int {
	switch s {
	case OK:
		return exitcode.Success
	case NotRelative:
		return exitcode.NotRelative
	case PathTooLong:
		return exitcode.PathTooLong
	case NameTooLong:
		return exitcode.NameTooLong
	case PathTooDeep:
		return exitcode.PathTooDeep
	case NotPosixSafe:
		return exitcode.NotPosixSafe
	case DotDotOverTopDir:
		return exitcode.DotDotOverTopDir
	case PathEmpty:
		return exitcode.PathEmpty
	case PathIsNull:
		return exitcode.PathIsNull
	case Malloc:
		return exitcode.Malloc
	case NullComponent:
		return exitcode.NullComponent
	case WrongLen:
		return exitcode.WrongLen
	default:
		return exitcode.WrongLen
	}
}

// Policy configures the canonicalization constraints. Zero values for the
// numeric caps mean "unconstrained" (matches the C convention of 0 == no cap).
type Policy struct {
	MaxPathLen     int
	MaxFilenameLen int
	MaxDepth       int
	OnlyRelative   bool
	AnyCase        bool
	SafeChk        bool
}

// Result is the outcome of a canonicalization attempt.
type Result struct {
	Path   string
	Sanity Sanity
	Length int
	Depth  int
}

// safeComponent matches the POSIX-safe component charset: must start with an
// alphanumeric, dot, or underscore; subsequent characters may additionally be
// '+' or '-'.
var safeComponent = regexp.MustCompile(`^[0-9A-Za-z._][0-9A-Za-z._+-]*$`)

// Canonicalize normalizes input under policy and classifies the result.
//
// input is a pointer so that a caller can distinguish "no path supplied"
// (nil, -> PathIsNull) from "the empty string" (-> PathEmpty); Go has no
// built-in null string, so this is the idiomatic stand-in for the C API's
// NULL-vs-empty distinction.
func Canonicalize(input *string, policy Policy) Result {
	if input == nil {
		return Result{Sanity: PathIsNull}
	}
	raw := *input
	if raw == "" {
		return Result{Sanity: PathEmpty}
	}

	absolute := strings.HasPrefix(raw, "/")
	if policy.OnlyRelative && absolute {
		return Result{Sanity: NotRelative}
	}

	segments := strings.Split(raw, "/")
	stack := make([]string, 0, len(segments))

	for _, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		if seg == ".." {
			if len(stack) > 0 && stack[len(stack)-1] != ".." {
				stack = stack[:len(stack)-1]
				continue
			}
			if absolute {
				return Result{Sanity: DotDotOverTopDir}
			}
			stack = append(stack, "..")
			continue
		}

		comp := seg
		if !policy.AnyCase {
			comp = lowerASCII(comp)
		}
		if policy.SafeChk && !safeComponent.MatchString(comp) {
			return Result{Sanity: NotPosixSafe}
		}
		stack = append(stack, comp)
	}

	if policy.MaxFilenameLen > 0 {
		for _, comp := range stack {
			if len(comp) > policy.MaxFilenameLen {
				return Result{Sanity: NameTooLong}
			}
		}
	}

	var joined string
	switch {
	case len(stack) == 0 && absolute:
		joined = "/"
	case len(stack) == 0:
		joined = "."
	case absolute:
		joined = "/" + strings.Join(stack, "/")
	default:
		joined = strings.Join(stack, "/")
	}

	if policy.MaxPathLen > 0 && len(joined) > policy.MaxPathLen {
		return Result{Sanity: PathTooLong}
	}

	depth := 0
	if len(stack) > 0 {
		depth = len(stack) - 1
	}
	if policy.MaxDepth > 0 && depth > policy.MaxDepth {
		return Result{Sanity: PathTooDeep}
	}

	return Result{Path: joined, Sanity: OK, Length: len(joined), Depth: depth}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
