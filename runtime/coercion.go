package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber implements the ECMAScript ToNumber abstract operation.
func (v *Value) ToNumber() float64 {
	switch v.Type {
	case TypeUndefined:
		return math.NaN()
	case TypeNull:
		return 0
	case TypeBoolean:
		if v.Bool {
			return 1
		}
		return 0
	case TypeNumber:
		return v.Number
	case TypeString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0
		}
		if s == "Infinity" || s == "+Infinity" {
			return math.Inf(1)
		}
		if s == "-Infinity" {
			return math.Inf(-1)
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	case TypeObject, TypeHostOpaque:
		return math.NaN()
	default:
		return math.NaN()
	}
}

// ToInt32 implements the ECMAScript ToInt32 abstract operation, used by
// the bitwise operators.
func (v *Value) ToInt32() int32 {
	n := v.ToNumber()
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int32(uint32(int64(n)))
}

// ToUint32 implements the ECMAScript ToUint32 abstract operation.
func (v *Value) ToUint32() uint32 {
	n := v.ToNumber()
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return uint32(int64(n))
}

// StrictEquals implements ===.
func StrictEquals(a, b *Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean:
		return a.Bool == b.Bool
	case TypeNumber:
		if math.IsNaN(a.Number) || math.IsNaN(b.Number) {
			return false
		}
		return a.Number == b.Number
	case TypeString:
		return a.Str == b.Str
	case TypeObject:
		return a.Object == b.Object
	case TypeHostOpaque:
		return a.HostData == b.HostData
	default:
		return false
	}
}

// AbstractEquals implements this implementation's == comparison. Per
// the documented divergence from real ES5 abstract equality (no cross-
// type coercion: Number/String/Boolean mixes, and null/undefined
// mixes, all compare unequal unless the types already match), == and
// != behave exactly as === and !== here.
func AbstractEquals(a, b *Value) bool {
	return StrictEquals(a, b)
}

func NewErrorObject(proto *Object, message string) *Object {
	obj := &Object{
		OType:      ObjTypeError,
		Properties: make(map[string]*Property),
		Prototype:  proto,
	}
	obj.Set("message", NewString(message))
	obj.Set("name", NewString("Error"))
	return obj
}
