package treesearch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the JSON null.
	KindNull Kind = iota
	// KindBool is true or false.
	KindBool
	// KindNumber is an integer or floating-point number.
	KindNumber
	// KindString is a UTF-8 string.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is an ordered mapping of unique string keys to values.
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

type numberRepr uint8

const (
	reprInt numberRepr = iota
	reprUint
	reprFloat
)

// Number is a JSON number that remembers whether it was written as an
// integer or as a float. Two numbers are equal only when both the
// representation and the value agree, so Int(1) and Float(1) differ.
type Number struct {
	repr numberRepr
	i    int64
	u    uint64
	f    float64
}

// IsInteger reports whether n holds an integer.
func (n Number) IsInteger() bool {
	return n.repr != reprFloat
}

// Float64 returns n converted to float64.
func (n Number) Float64() float64 {
	switch n.repr {
	case reprInt:
		return float64(n.i)
	case reprUint:
		return float64(n.u)
	default:
		return n.f
	}
}

// Int64 returns n as an int64 and whether the conversion is exact.
func (n Number) Int64() (int64, bool) {
	switch n.repr {
	case reprInt:
		return n.i, true
	case reprUint:
		return 0, false
	default:
		if n.f == math.Trunc(n.f) && n.f >= math.MinInt64 && n.f <= math.MaxInt64 {
			return int64(n.f), true
		}
		return 0, false
	}
}

// Equal reports whether n and other have the same representation and value.
func (n Number) Equal(other Number) bool {
	if n.repr != other.repr {
		return false
	}
	switch n.repr {
	case reprInt:
		return n.i == other.i
	case reprUint:
		return n.u == other.u
	default:
		return n.f == other.f
	}
}

// String formats n the way the codec writes it.
func (n Number) String() string {
	switch n.repr {
	case reprInt:
		return strconv.FormatInt(n.i, 10)
	case reprUint:
		return strconv.FormatUint(n.u, 10)
	default:
		s := strconv.FormatFloat(n.f, 'g', -1, 64)
		if n.f == math.Trunc(n.f) && !math.IsInf(n.f, 0) && !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	}
}

// ParseNumber parses JSON number text. Text without '.', 'e' or 'E' is an
// integer; everything else is a float. Text outside the JSON number
// grammar, such as "01", "1.", "+1" or "Inf", is rejected.
func ParseNumber(s string) (Number, error) {
	if !validNumber(s) {
		return Number{}, &Error{Code: ErrInvalidInput, Message: fmt.Sprintf("invalid number %q", s)}
	}
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Number{repr: reprInt, i: i}, nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return Number{repr: reprUint, u: u}, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, &Error{Code: ErrInvalidInput, Message: fmt.Sprintf("invalid number %q", s), Cause: err}
	}
	return Number{repr: reprFloat, f: f}, nil
}

// validNumber reports whether s matches
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func validNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		i = skipDigits(s, i)
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		j := skipDigits(s, i+1)
		if j == i+1 {
			return false
		}
		i = j
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := skipDigits(s, i)
		if j == i {
			return false
		}
		i = j
	}
	return i == len(s)
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// Member is a single key/value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Value is a node of a JSON-like tree: a scalar (null, bool, number,
// string) or a container (array, object). The zero Value is Null.
//
// Values are immutable once built. Copying a Value is cheap and shares the
// underlying containers.
type Value struct {
	kind Kind
	b    bool
	n    Number
	s    string
	arr  []Value
	obj  []Member
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer number.
func Int(i int64) Value {
	return Value{kind: KindNumber, n: Number{repr: reprInt, i: i}}
}

// Uint returns an unsigned integer number. Values that fit in int64 are
// stored as signed integers, so Uint(1) equals Int(1).
func Uint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return Value{kind: KindNumber, n: Number{repr: reprUint, u: u}}
}

// Float returns a floating-point number.
func Float(f float64) Value {
	return Value{kind: KindNumber, n: Number{repr: reprFloat, f: f}}
}

// Num wraps a Number.
func Num(n Number) Value { return Value{kind: KindNumber, n: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array holding items in order.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Object returns an object holding members in order. A repeated key keeps
// the position of its first occurrence and the value of its last one.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	var seen map[string]int
	if len(members) > 8 {
		seen = make(map[string]int, len(members))
	}
	for _, m := range members {
		idx := -1
		if seen != nil {
			if i, ok := seen[m.Key]; ok {
				idx = i
			}
		} else {
			for i := range out {
				if out[i].Key == m.Key {
					idx = i
					break
				}
			}
		}
		if idx >= 0 {
			out[idx].Value = m.Value
			continue
		}
		if seen != nil {
			seen[m.Key] = len(out)
		}
		out = append(out, m)
	}
	return Value{kind: KindObject, obj: out}
}

// M is shorthand for a Member literal.
func M(key string, v Value) Member { return Member{Key: key, Value: v} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool {
	return v.kind == KindArray || v.kind == KindObject
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (Number, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Items returns the elements of an array, or nil for any other kind.
// The slice is shared with v and must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Members returns the entries of an object, or nil for any other kind.
// The slice is shared with v and must not be modified.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Len returns the number of elements or members of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether v and other are structurally equal. Kinds must
// match, numbers must share a representation, and objects must hold the
// same keys with equal values regardless of member order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n.Equal(other.n)
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for _, m := range v.obj {
			ov, ok := other.Get(m.Key)
			if !ok || !m.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("treesearch: unhandled kind %v", v.kind))
	}
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	b, err := Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.kind, err)
	}
	return string(b)
}
