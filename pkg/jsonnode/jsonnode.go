// Package jsonnode provides a tagged-sum view over already-decoded JSON
// values and a set of "node guard" accessors that return structured errors
// instead of panicking on a type mismatch.
//
// The package does not parse JSON text itself; it adapts the output of
// encoding/json (decoded with UseNumber so integers survive round-trip) into
// a Node tree shaped for depth-first semantic validation. Validators accumulate
// ValidationError values into a caller-owned slice rather than returning or
// panicking on the first mismatch, so a single walk can report every problem
// in a submission instead of stopping at the first one.
package jsonnode

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind discriminates the variant a Node holds.
type Kind int

const (
	Unset Kind = iota
	Number
	String
	Bool
	Null
	Member
	Object
	Array
	Elements
)

func (k Kind) String() string {
	switch k {
	case Unset:
		return "unset"
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Null:
		return "null"
	case Member:
		return "member"
	case Object:
		return "object"
	case Array:
		return "array"
	case Elements:
		return "elements"
	default:
		return "unknown"
	}
}

// Node is a single element of the decoded JSON tree. Only the fields that
// apply to Kind are meaningful; the rest are left at their zero value.
type Node struct {
	Kind      Kind
	Converted bool

	// String / Member name payload.
	StrValue string

	// Bool payload.
	BoolValue bool

	// Number payload. IntValue/HasInt hold the value when the source text
	// parsed as an integer; FloatValue/HasFloat hold it as a float64 in
	// every case, integers included.
	IntValue   int64
	HasInt     bool
	FloatValue float64
	HasFloat   bool

	// Width-fit flags, computed once at construction so callers performing
	// range checks never need to repeat the arithmetic.
	FitsInt8  bool
	FitsInt16 bool
	FitsInt32 bool
	FitsInt64 bool
	FitsUint  bool // fits a non-negative size_t/off_t style field

	// Member holds a name/value pair; MemberName.Kind is always String.
	MemberName  *Node
	MemberValue *Node

	// Object holds Member children; Array/Elements hold arbitrary children.
	Members  []*Node
	Elements []*Node

	Parent *Node
	Depth  int
}

// ValidationError is a single accumulated validation failure. Node is the
// offending node when one is available; SemIndex is the index into a
// semantic table entry slice the caller was consulting, or -1 when the
// error is not table-driven.
type ValidationError struct {
	Node       *Node
	Depth      int
	SemIndex   int
	Diagnostic string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("depth %d: %s", e.Depth, e.Diagnostic)
}

func newError(n *Node, diagnostic string) ValidationError {
	depth := -1
	if n != nil {
		depth = n.Depth
	}
	return ValidationError{Node: n, Depth: depth, SemIndex: -1, Diagnostic: diagnostic}
}

func record(errs *[]ValidationError, e ValidationError) {
	if errs != nil {
		*errs = append(*errs, e)
	}
}

// FromAny builds a Node tree from a value produced by encoding/json.Unmarshal
// (or json.Decoder.Decode) called with UseNumber, so integer members survive
// without floating-point rounding.
func FromAny(v interface{}) (*Node, error) {
	n, err := fromAny(v, nil, 0)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func fromAny(v interface{}, parent *Node, depth int) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return &Node{Kind: Null, Converted: true, Parent: parent, Depth: depth}, nil
	case bool:
		return &Node{Kind: Bool, Converted: true, BoolValue: t, Parent: parent, Depth: depth}, nil
	case string:
		return &Node{Kind: String, Converted: true, StrValue: t, Parent: parent, Depth: depth}, nil
	case json.Number:
		return numberNode(t, parent, depth)
	case float64:
		return numberNode(json.Number(fmt.Sprintf("%g", t)), parent, depth)
	case map[string]interface{}:
		obj := &Node{Kind: Object, Converted: true, Parent: parent, Depth: depth}
		obj.Members = make([]*Node, 0, len(t))
		for name, raw := range t {
			valueNode, err := fromAny(raw, obj, depth+1)
			if err != nil {
				return nil, err
			}
			member := &Node{
				Kind:      Member,
				Converted: true,
				MemberName: &Node{
					Kind: String, Converted: true, StrValue: name, Depth: depth + 1,
				},
				MemberValue: valueNode,
				Parent:      obj,
				Depth:       depth + 1,
			}
			valueNode.Parent = member
			obj.Members = append(obj.Members, member)
		}
		return obj, nil
	case []interface{}:
		arr := &Node{Kind: Array, Converted: true, Parent: parent, Depth: depth}
		arr.Elements = make([]*Node, 0, len(t))
		for _, raw := range t {
			child, err := fromAny(raw, arr, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, child)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("jsonnode: unsupported decoded type %T", v)
	}
}

func numberNode(num json.Number, parent *Node, depth int) (*Node, error) {
	n := &Node{Kind: Number, Converted: true, Parent: parent, Depth: depth}
	if i, err := num.Int64(); err == nil {
		n.HasInt = true
		n.IntValue = i
		n.FitsInt8 = i >= math.MinInt8 && i <= math.MaxInt8
		n.FitsInt16 = i >= math.MinInt16 && i <= math.MaxInt16
		n.FitsInt32 = i >= math.MinInt32 && i <= math.MaxInt32
		n.FitsInt64 = true
		n.FitsUint = i >= 0
		n.FloatValue = float64(i)
		n.HasFloat = true
		return n, nil
	}
	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("jsonnode: invalid number literal %q", num.String())
	}
	n.HasFloat = true
	n.FloatValue = f
	return n, nil
}

// NewString builds a converted String node. Exposed for tests and for
// callers assembling fixtures without going through FromAny.
func NewString(s string) *Node {
	return &Node{Kind: String, Converted: true, StrValue: s}
}

// NodeValidConverted reports whether n is non-nil, Converted, and carries
// the substructure its Kind requires (e.g. an Object must have a non-nil
// Members slice). It both returns the error and — when errs is non-nil —
// appends it, so callers can use it either as a guard or as a silent check.
func NodeValidConverted(n *Node, errs *[]ValidationError) error {
	if n == nil {
		e := newError(nil, "node is nil")
		record(errs, e)
		return e
	}
	if !n.Converted {
		e := newError(n, fmt.Sprintf("%s node was never converted", n.Kind))
		record(errs, e)
		return e
	}
	switch n.Kind {
	case Member:
		if n.MemberName == nil || n.MemberValue == nil {
			e := newError(n, "member node missing name or value")
			record(errs, e)
			return e
		}
	case Object:
		if n.Members == nil {
			e := newError(n, "object node has nil members")
			record(errs, e)
			return e
		}
	case Array, Elements:
		if n.Elements == nil {
			e := newError(n, fmt.Sprintf("%s node has nil elements", n.Kind))
			record(errs, e)
			return e
		}
	}
	return nil
}

// MemberName returns n.MemberName after validating n is a converted Member.
func MemberName(n *Node, errs *[]ValidationError) *Node {
	if err := NodeValidConverted(n, errs); err != nil {
		return nil
	}
	if n.Kind != Member {
		record(errs, newError(n, "node is not a member"))
		return nil
	}
	return n.MemberName
}

// MemberValue returns n.MemberValue after validating n is a converted Member.
func MemberValue(n *Node, errs *[]ValidationError) *Node {
	if err := NodeValidConverted(n, errs); err != nil {
		return nil
	}
	if n.Kind != Member {
		record(errs, newError(n, "node is not a member"))
		return nil
	}
	return n.MemberValue
}

// DecodedStr returns n's string payload, requiring n to be a converted
// String node.
func DecodedStr(n *Node, errs *[]ValidationError) (string, bool) {
	if err := NodeValidConverted(n, errs); err != nil {
		return "", false
	}
	if n.Kind != String {
		record(errs, newError(n, fmt.Sprintf("expected string, found %s", n.Kind)))
		return "", false
	}
	return n.StrValue, true
}

// MemberNameStr is a convenience combining MemberName and DecodedStr.
func MemberNameStr(n *Node, errs *[]ValidationError) (string, bool) {
	name := MemberName(n, errs)
	if name == nil {
		return "", false
	}
	return DecodedStr(name, errs)
}

// MemberValueStr is a convenience combining MemberValue and DecodedStr.
func MemberValueStr(n *Node, errs *[]ValidationError) (string, bool) {
	val := MemberValue(n, errs)
	if val == nil {
		return "", false
	}
	return DecodedStr(val, errs)
}

// MemberValueStrOrNull accepts a member whose value is either a String or
// JSON null, the common "field withheld" shape in submission documents. ok
// is false only on a structural problem (wrong node kind entirely); a JSON
// null value yields ("", true, true).
func MemberValueStrOrNull(n *Node, errs *[]ValidationError) (value string, isNull bool, ok bool) {
	val := MemberValue(n, errs)
	if val == nil {
		return "", false, false
	}
	if val.Kind == Null {
		return "", true, true
	}
	s, ok := DecodedStr(val, errs)
	return s, false, ok
}

// DecodedBool returns n's bool payload, requiring n to be a converted Bool
// node.
func DecodedBool(n *Node, errs *[]ValidationError) (bool, bool) {
	if err := NodeValidConverted(n, errs); err != nil {
		return false, false
	}
	if n.Kind != Bool {
		record(errs, newError(n, fmt.Sprintf("expected bool, found %s", n.Kind)))
		return false, false
	}
	return n.BoolValue, true
}

// MemberValueBool is a convenience combining MemberValue and DecodedBool.
func MemberValueBool(n *Node, errs *[]ValidationError) (bool, bool) {
	val := MemberValue(n, errs)
	if val == nil {
		return false, false
	}
	return DecodedBool(val, errs)
}

// DecodedInt returns n's integer payload, requiring n to be a converted
// Number node whose literal parsed as an integer.
func DecodedInt(n *Node, errs *[]ValidationError) (int64, bool) {
	if err := NodeValidConverted(n, errs); err != nil {
		return 0, false
	}
	if n.Kind != Number || !n.HasInt {
		record(errs, newError(n, "expected integer number"))
		return 0, false
	}
	return n.IntValue, true
}

// MemberValueInt is a convenience combining MemberValue and DecodedInt.
func MemberValueInt(n *Node, errs *[]ValidationError) (int64, bool) {
	val := MemberValue(n, errs)
	if val == nil {
		return 0, false
	}
	return DecodedInt(val, errs)
}

// DecodedSizeT returns n's integer payload, additionally requiring it to be
// non-negative — the JSON stand-in for a C size_t field.
func DecodedSizeT(n *Node, errs *[]ValidationError) (int64, bool) {
	v, ok := DecodedInt(n, errs)
	if !ok {
		return 0, false
	}
	if v < 0 {
		record(errs, newError(n, "expected non-negative size_t value"))
		return 0, false
	}
	return v, true
}

// MemberValueSizeT is a convenience combining MemberValue and DecodedSizeT.
func MemberValueSizeT(n *Node, errs *[]ValidationError) (int64, bool) {
	val := MemberValue(n, errs)
	if val == nil {
		return 0, false
	}
	return DecodedSizeT(val, errs)
}

// DecodedTimeT returns n's integer payload interpreted as a Unix epoch
// second count (a C time_t). Negative values (pre-1970) are accepted; the
// domain layer, not this package, enforces a minimum timestamp.
func DecodedTimeT(n *Node, errs *[]ValidationError) (int64, bool) {
	return DecodedInt(n, errs)
}

// MemberValueTimeT is a convenience combining MemberValue and DecodedTimeT.
func MemberValueTimeT(n *Node, errs *[]ValidationError) (int64, bool) {
	val := MemberValue(n, errs)
	if val == nil {
		return 0, false
	}
	return DecodedTimeT(val, errs)
}

// ObjectFindName performs a linear scan of obj's members for one whose name
// decodes to name, returning its Member node.
func ObjectFindName(obj *Node, name string, errs *[]ValidationError) (*Node, bool) {
	if err := NodeValidConverted(obj, errs); err != nil {
		return nil, false
	}
	if obj.Kind != Object {
		record(errs, newError(obj, "node is not an object"))
		return nil, false
	}
	for _, member := range obj.Members {
		memberName, ok := MemberNameStr(member, nil)
		if ok && memberName == name {
			return member, true
		}
	}
	return nil, false
}
