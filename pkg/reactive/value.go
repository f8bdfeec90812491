package reactive

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindUndefined is the sentinel produced by resolving a missing path.
	KindUndefined Kind = iota

	// KindPrimitive is a null, bool, number or string leaf.
	KindPrimitive

	// KindObject is a nested *Object (arrays included).
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	default:
		return "undefined"
	}
}

// Value is a node in a reactive data graph.
// The set of implementations is closed: Primitive, *Object and Undefined.
type Value interface {
	Kind() Kind
	isValue()
}

type undefined struct{}

func (undefined) Kind() Kind { return KindUndefined }
func (undefined) isValue()   {}

// Undefined is returned wherever a path segment does not exist.
var Undefined Value = undefined{}

// Primitive is an immutable leaf value. The zero Primitive is null.
type Primitive struct {
	// raw is nil, bool, float64 or string.
	raw any
}

func (Primitive) Kind() Kind { return KindPrimitive }
func (Primitive) isValue()   {}

// Null returns the null primitive.
func Null() Primitive { return Primitive{} }

// String returns a string primitive.
func String(s string) Primitive { return Primitive{raw: s} }

// Number returns a numeric primitive.
func Number(f float64) Primitive { return Primitive{raw: f} }

// Int returns a numeric primitive holding an integer.
func Int(i int) Primitive { return Primitive{raw: float64(i)} }

// Bool returns a boolean primitive.
func Bool(b bool) Primitive { return Primitive{raw: b} }

// Interface returns the underlying Go value: nil, bool, float64 or string.
func (p Primitive) Interface() any { return p.raw }

// IsNull reports whether p is null.
func (p Primitive) IsNull() bool { return p.raw == nil }

// Text formats the primitive the way a browser stringifies it.
func (p Primitive) Text() string {
	switch v := p.raw.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-7 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Exponent form without zero padding: 1e-7, 1.5e+21.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// Same reports whether a and b are the same value: pointer identity for
// objects, value equality for primitives.
func Same(a, b Value) bool {
	switch av := a.(type) {
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	case Primitive:
		bv, ok := b.(Primitive)
		if !ok {
			return false
		}
		// NaN !== NaN
		if af, ok := av.raw.(float64); ok && math.IsNaN(af) {
			return false
		}
		return av.raw == bv.raw
	case nil:
		return b == nil
	default:
		return b != nil && b.Kind() == KindUndefined
	}
}

// Text renders any value as display text. Property reads performed while
// rendering objects are untracked.
func Text(v Value) string {
	switch t := v.(type) {
	case Primitive:
		return t.Text()
	case *Object:
		if !t.IsArray() {
			return "[object Object]"
		}
		parts := make([]string, 0, t.Len())
		for _, k := range t.Keys() {
			item := t.peek(k)
			// null and undefined elements render empty, as Array.prototype.join does
			if p, ok := item.(Primitive); ok && p.IsNull() {
				parts = append(parts, "")
				continue
			}
			if item.Kind() == KindUndefined {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, Text(item))
		}
		return strings.Join(parts, ",")
	default:
		return "undefined"
	}
}
