package kdl

import (
	"fmt"
	"math"
	"math/big"
)

// ValueKind identifies which alternative of the Value tagged union is
// populated.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindNull
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a KDL scalar: a string, a signed integer of arbitrary
// precision, a 64-bit float (which may be an infinity or NaN), a
// boolean, or null.
type Value struct {
	kind ValueKind
	str  string
	int  *big.Int
	flt  float64
	boo  bool
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, boo: b} }
func NullValue() Value           { return Value{kind: KindNull} }
func FloatValue(f float64) Value { return Value{kind: KindFloat, flt: f} }

// IntValue builds an integer Value from an arbitrary-precision integer.
func IntValue(i *big.Int) Value { return Value{kind: KindInt, int: i} }

// IntValueFromInt64 is a convenience constructor for the common case.
func IntValueFromInt64(i int64) Value { return Value{kind: KindInt, int: big.NewInt(i)} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) Int() (*big.Int, bool) {
	if v.kind != KindInt {
		return nil, false
	}
	return v.int, true
}

func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.flt, true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.boo, true
}

func (v Value) IsNull() bool { return v.kind == KindNull }

// Equal reports whether two Values carry the same kind and payload. NaN
// is equal to NaN here, matching KDL's notion of value identity rather
// than IEEE-754 comparison semantics.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.int.Cmp(o.int) == 0
	case KindFloat:
		if math.IsNaN(v.flt) && math.IsNaN(o.flt) {
			return true
		}
		return v.flt == o.flt
	case KindBool:
		return v.boo == o.boo
	case KindNull:
		return true
	}
	return false
}

func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("kdl.StringValue(%q)", v.str)
	case KindInt:
		return fmt.Sprintf("kdl.IntValue(%s)", v.int.String())
	case KindFloat:
		return fmt.Sprintf("kdl.FloatValue(%v)", v.flt)
	case KindBool:
		return fmt.Sprintf("kdl.BoolValue(%v)", v.boo)
	default:
		return "kdl.NullValue()"
	}
}

// ValueTransform is invoked by the parser for a value bearing a type
// annotation present in the parser's type map, in place of the default
// untransformed Value. It is the callback half of the schema-binding
// collaborator interface; the collaborator itself is out of scope here.
type ValueTransform func(tag string, v Value) (Value, error)

// NodeConstructor is invoked by the parser for a node name present in the
// parser's node map, in place of default Node construction.
type NodeConstructor func(n *Node) (*Node, error)
