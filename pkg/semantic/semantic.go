// Package semantic walks a jsonnode tree against a declarative schema — the
// semantic table — accumulating count errors (a node kind/cardinality was
// violated) and validation errors (a matched node's value failed its
// validator) rather than failing fast on the first problem.
package semantic

import (
	"fmt"

	"github.com/ioccc-src/submitcheck/pkg/jsonnode"
)

// Validator inspects a matched node and reports a failure. Depth and entry
// are supplied so the validator can reference its own table position when
// composing a diagnostic.
type Validator func(node *jsonnode.Node, depth int, entry *Entry) error

// Entry is one row of a semantic table: a lookup key of (depth, Kind,
// optional member name) plus cardinality bounds and an optional validator.
// Max == 0 means unbounded. Count and SemIndex are runtime state reset at
// the start of every Walk; a table must not be shared between concurrent
// walks.
type Entry struct {
	Depth     int
	Kind      jsonnode.Kind
	Name      string // empty matches any member name at this depth/kind
	Min       int
	Max       int
	Validator Validator

	Count    int
	SemIndex int
}

// Table is an ordered list of Entry; table order is match priority ("first
// match wins"). A Table is not terminated by a sentinel the way the C
// original is — Go slices carry their own length — but Walk otherwise
// follows the same algorithm.
type Table []Entry

// CountErrorKind discriminates why a count error was raised.
type CountErrorKind int

const (
	BadMin CountErrorKind = iota
	BadMax
	UnknownNode
)

func (k CountErrorKind) String() string {
	switch k {
	case BadMin:
		return "too few"
	case BadMax:
		return "too many"
	case UnknownNode:
		return "unknown node"
	default:
		return "unknown count error kind"
	}
}

// CountError reports a cardinality violation: either a table entry's
// observed count fell outside [Min, Max], or a node in the tree matched no
// table entry at all.
type CountError struct {
	Kind       CountErrorKind
	Depth      int
	Name       string
	SemIndex   int
	Diagnostic string
}

func (e CountError) Error() string {
	return e.Diagnostic
}

// Result collects everything a Walk produced.
type Result struct {
	CountErrors      []CountError
	ValidationErrors []jsonnode.ValidationError
}

// TotalErrors is the combined error count across both accumulated streams.
func (r Result) TotalErrors() int {
	return len(r.CountErrors) + len(r.ValidationErrors)
}

// Walk performs a deterministic depth-first pre-order traversal of root
// against table, mutating table's runtime Count/SemIndex fields in place.
// maxDepth bounds recursion; a node found deeper than maxDepth is treated as
// an unknown node rather than recursed into.
func Walk(root *jsonnode.Node, table Table, maxDepth int) Result {
	for i := range table {
		table[i].Count = 0
		table[i].SemIndex = i
	}

	var res Result
	walk(root, table, maxDepth, &res)

	for i := range table {
		e := &table[i]
		if e.Count < e.Min {
			res.CountErrors = append(res.CountErrors, CountError{
				Kind:     BadMin,
				Depth:    e.Depth,
				Name:     e.Name,
				SemIndex: e.SemIndex,
				Diagnostic: fmt.Sprintf(
					"table entry %d (depth %d, %s, name %q): expected at least %d, saw %d",
					e.SemIndex, e.Depth, e.Kind, e.Name, e.Min, e.Count),
			})
		}
		if e.Max > 0 && e.Count > e.Max {
			res.CountErrors = append(res.CountErrors, CountError{
				Kind:     BadMax,
				Depth:    e.Depth,
				Name:     e.Name,
				SemIndex: e.SemIndex,
				Diagnostic: fmt.Sprintf(
					"table entry %d (depth %d, %s, name %q): expected at most %d, saw %d",
					e.SemIndex, e.Depth, e.Kind, e.Name, e.Max, e.Count),
			})
		}
	}

	return res
}

func walk(n *jsonnode.Node, table Table, maxDepth int, res *Result) {
	if n == nil {
		return
	}
	if maxDepth > 0 && n.Depth > maxDepth {
		res.CountErrors = append(res.CountErrors, CountError{
			Kind:       UnknownNode,
			Depth:      n.Depth,
			Diagnostic: fmt.Sprintf("node at depth %d exceeds maximum recursion depth %d", n.Depth, maxDepth),
		})
		return
	}

	name := ""
	if n.Kind == jsonnode.Member {
		name, _ = jsonnode.MemberNameStr(n, nil)
	}

	idx := match(table, n.Depth, n.Kind, name)
	if idx < 0 {
		diag := fmt.Sprintf("unknown node at depth %d, kind %s", n.Depth, n.Kind)
		if n.Kind == jsonnode.Member {
			diag = fmt.Sprintf("unknown member %q at depth %d", name, n.Depth)
		}
		res.CountErrors = append(res.CountErrors, CountError{
			Kind:       UnknownNode,
			Depth:      n.Depth,
			Name:       name,
			SemIndex:   -1,
			Diagnostic: diag,
		})
	} else {
		entry := &table[idx]
		entry.Count++
		if entry.Validator != nil {
			if err := entry.Validator(n, n.Depth, entry); err != nil {
				res.ValidationErrors = append(res.ValidationErrors, jsonnode.ValidationError{
					Node:       n,
					Depth:      n.Depth,
					SemIndex:   entry.SemIndex,
					Diagnostic: err.Error(),
				})
			}
		}
	}

	walkChildren(n, table, maxDepth, res)
}

func walkChildren(n *jsonnode.Node, table Table, maxDepth int, res *Result) {
	switch n.Kind {
	case jsonnode.Object:
		for _, member := range n.Members {
			walk(member, table, maxDepth, res)
		}
	case jsonnode.Member:
		walk(n.MemberValue, table, maxDepth, res)
	case jsonnode.Array, jsonnode.Elements:
		for _, child := range n.Elements {
			walk(child, table, maxDepth, res)
		}
	}
}

// match returns the index of the first table entry matching (depth, kind,
// name), or -1 if none does. An entry with an empty Name matches any member
// at that depth/kind; an entry's Name is only consulted when kind is Member.
func match(table Table, depth int, kind jsonnode.Kind, name string) int {
	for i, e := range table {
		if e.Depth != depth || e.Kind != kind {
			continue
		}
		if kind == jsonnode.Member && e.Name != "" && e.Name != name {
			continue
		}
		return i
	}
	return -1
}
