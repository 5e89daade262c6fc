// Package runtime implements the value, object, and scope model the
// interpreter evaluates against: a tagged-union Value, a prototype-chain
// Object with insertion-ordered properties, and a lexical Environment
// chain.
package runtime

import (
	"fmt"
	"math"
)

// ValueType identifies which arm of the tagged union a Value occupies.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
	// TypeHostOpaque wraps a Go value the host handed in that the
	// evaluator never interprets, only carries and hands back.
	TypeHostOpaque
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "object" // typeof null === "object"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeHostOpaque:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged union every expression evaluates to.
type Value struct {
	Type   ValueType
	Bool   bool
	Number float64
	Str    string
	Object *Object

	// HostData holds the payload of a TypeHostOpaque value: a Go value
	// supplied by the host that passes through script untouched (e.g. a
	// capability handle). Script can hold it, pass it around, and hand
	// it back to a host callable, but cannot read or synthesize one.
	HostData interface{}
}

var (
	Undefined = &Value{Type: TypeUndefined}
	Null      = &Value{Type: TypeNull}
	True      = &Value{Type: TypeBoolean, Bool: true}
	False     = &Value{Type: TypeBoolean, Bool: false}
	NaN       = &Value{Type: TypeNumber, Number: math.NaN()}
	PosInf    = &Value{Type: TypeNumber, Number: math.Inf(1)}
	NegInf    = &Value{Type: TypeNumber, Number: math.Inf(-1)}
	Zero      = &Value{Type: TypeNumber, Number: 0}
)

func NewNumber(n float64) *Value { return &Value{Type: TypeNumber, Number: n} }

func NewString(s string) *Value { return &Value{Type: TypeString, Str: s} }

func NewBool(b bool) *Value {
	if b {
		return True
	}
	return False
}

func NewObject(obj *Object) *Value { return &Value{Type: TypeObject, Object: obj} }

func NewHostOpaque(data interface{}) *Value { return &Value{Type: TypeHostOpaque, HostData: data} }

// ToBoolean implements the ECMAScript ToBoolean abstract operation.
func (v *Value) ToBoolean() bool {
	switch v.Type {
	case TypeUndefined, TypeNull:
		return false
	case TypeBoolean:
		return v.Bool
	case TypeNumber:
		return v.Number != 0 && !math.IsNaN(v.Number)
	case TypeString:
		return len(v.Str) > 0
	case TypeObject, TypeHostOpaque:
		return true
	default:
		return false
	}
}

// ToString implements the ECMAScript ToString abstract operation.
func (v *Value) ToString() string {
	switch v.Type {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeNumber:
		return formatNumber(v.Number)
	case TypeString:
		return v.Str
	case TypeObject:
		return v.Object.toStringTag()
	case TypeHostOpaque:
		return fmt.Sprintf("%v", v.HostData)
	default:
		return "undefined"
	}
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if n == 0 {
		return "0"
	}
	return fmt.Sprintf("%g", n)
}

// IsNullOrUndefined reports whether v is one of the two nullish values.
func (v *Value) IsNullOrUndefined() bool {
	return v.Type == TypeUndefined || v.Type == TypeNull
}

// ObjectType distinguishes the handful of object shapes the core cares
// about; everything else (Date, RegExp internals, Map/Set, ...) is an
// ordinary object carrying Internal slots, per §3's data model.
type ObjectType int

const (
	ObjTypeOrdinary ObjectType = iota
	ObjTypeArray
	ObjTypeFunction
	ObjTypeRegExp
	ObjTypeError
)

// Object is a JavaScript object: a prototype-linked, insertion-ordered
// property bag. Insertion order is preserved in keyOrder so that
// `for...in` iterates in definition order, per §3's invariant.
type Object struct {
	OType      ObjectType
	Properties map[string]*Property
	keyOrder   []string
	Prototype  *Object

	// Callable is non-nil when this object can be invoked as a function;
	// Constructor is non-nil when it can additionally be used with `new`.
	// A non-arrow script function sets both to an adapter that re-enters
	// the evaluator (an arrow or bound function sets only Callable); a
	// host native sets them directly to the host's Go func.
	Callable    CallableFunc
	Constructor CallableFunc

	// Script carries the closure data for a function object created from
	// a FunctionExpression/FunctionDeclaration/ArrowFunctionExpression,
	// or only the Target/BoundThis/BoundArgs of a function produced by
	// bind(); nil for host natives.
	Script *ScriptFunction

	// Internal holds engine- or defaults-package-private slots (e.g. a
	// Date's epoch millis, a RegExp's compiled pattern) keyed by name,
	// never exposed to script property lookup.
	Internal map[string]interface{}

	// ArrayData backs an ObjTypeArray object's indexed elements directly
	// rather than through the Properties map.
	ArrayData []*Value
}

// Property is a property descriptor: either a data property (Value) or
// an accessor property (Getter/Setter), matching the distinction the
// interpreter's property-reference evaluator must honor.
type Property struct {
	Value        *Value
	Getter       *Value
	Setter       *Value
	IsAccessor   bool
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// CallableFunc is the Go-level call signature for anything invocable
// from script: a host native or the host-bridge adapter over a
// ScriptFunction. It returns a Go error both for host-side faults and
// for script exceptions, which the interpreter carries as its own
// *scriptError error type (see the interpreter's signal.go).
type CallableFunc func(this *Value, args []*Value) (*Value, error)

func NewOrdinaryObject(proto *Object) *Object {
	return &Object{
		OType:      ObjTypeOrdinary,
		Properties: make(map[string]*Property),
		Prototype:  proto,
	}
}

func NewArrayObject(proto *Object, elements []*Value) *Object {
	obj := &Object{
		OType:      ObjTypeArray,
		Properties: make(map[string]*Property),
		Prototype:  proto,
		ArrayData:  elements,
	}
	return obj
}

func NewFunctionObject(proto *Object, callable CallableFunc) *Object {
	return &Object{
		OType:      ObjTypeFunction,
		Properties: make(map[string]*Property),
		Prototype:  proto,
		Callable:   callable,
	}
}

// Get retrieves a property's value, walking the prototype chain, and
// invoking an accessor getter (bound to o as `this`) if present. Array
// index reads against ArrayData and "length" are resolved here too.
func (o *Object) Get(name string) *Value {
	if o.OType == ObjTypeArray {
		if name == "length" {
			return NewNumber(float64(len(o.ArrayData)))
		}
		if idx, ok := arrayIndex(name); ok {
			if idx < len(o.ArrayData) && o.ArrayData[idx] != nil {
				return o.ArrayData[idx]
			}
			if idx < len(o.ArrayData) {
				return Undefined
			}
		}
	}
	if prop, ok := o.Properties[name]; ok {
		if prop.IsAccessor {
			if prop.Getter == nil || prop.Getter.Object == nil || prop.Getter.Object.Callable == nil {
				return Undefined
			}
			val, err := prop.Getter.Object.Callable(NewObject(o), nil)
			if err != nil || val == nil {
				return Undefined
			}
			return val
		}
		return prop.Value
	}
	if o.Prototype != nil {
		return o.Prototype.Get(name)
	}
	return Undefined
}

// Set assigns a property, walking the prototype chain only to find an
// inherited accessor's setter; a plain data write always lands on o
// itself (no implicit shadowing search beyond accessors).
func (o *Object) Set(name string, val *Value) {
	if o.OType == ObjTypeArray {
		if name == "length" {
			o.setArrayLength(int(val.ToNumber()))
			return
		}
		if idx, ok := arrayIndex(name); ok {
			o.setArrayIndex(idx, val)
			return
		}
	}
	if owner := o.findAccessorOwner(name); owner != nil {
		prop := owner.Properties[name]
		if prop.Setter != nil && prop.Setter.Object != nil && prop.Setter.Object.Callable != nil {
			prop.Setter.Object.Callable(NewObject(o), []*Value{val})
		}
		return
	}
	if prop, ok := o.Properties[name]; ok {
		if !prop.Writable {
			return
		}
		prop.Value = val
		return
	}
	o.defineOwn(name, &Property{Value: val, Writable: true, Enumerable: true, Configurable: true})
}

func (o *Object) findAccessorOwner(name string) *Object {
	if prop, ok := o.Properties[name]; ok {
		if prop.IsAccessor {
			return o
		}
		return nil
	}
	if o.Prototype != nil {
		return o.Prototype.findAccessorOwner(name)
	}
	return nil
}

func (o *Object) setArrayLength(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(o.ArrayData) {
		o.ArrayData = o.ArrayData[:n]
		return
	}
	for len(o.ArrayData) < n {
		o.ArrayData = append(o.ArrayData, nil)
	}
}

func (o *Object) setArrayIndex(idx int, val *Value) {
	for len(o.ArrayData) <= idx {
		o.ArrayData = append(o.ArrayData, nil)
	}
	o.ArrayData[idx] = val
}

func arrayIndex(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	n := 0
	for _, r := range name {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if name == "0" || name[0] != '0' {
		return n, true
	}
	return 0, false
}

// DefineProperty installs a full descriptor, used by host/defaults code
// that needs control over Writable/Enumerable/Configurable rather than
// Set's default-data-property behavior.
func (o *Object) DefineProperty(name string, prop *Property) {
	o.defineOwn(name, prop)
}

func (o *Object) defineOwn(name string, prop *Property) {
	if o.Properties == nil {
		o.Properties = make(map[string]*Property)
	}
	if _, exists := o.Properties[name]; !exists {
		o.keyOrder = append(o.keyOrder, name)
	}
	o.Properties[name] = prop
}

// DeleteProperty removes an own property, preserving the insertion
// order of what remains.
func (o *Object) DeleteProperty(name string) bool {
	prop, ok := o.Properties[name]
	if !ok {
		return true
	}
	if !prop.Configurable {
		return false
	}
	delete(o.Properties, name)
	for i, k := range o.keyOrder {
		if k == name {
			o.keyOrder = append(o.keyOrder[:i], o.keyOrder[i+1:]...)
			break
		}
	}
	return true
}

func (o *Object) HasProperty(name string) bool {
	if o.OType == ObjTypeArray {
		if name == "length" {
			return true
		}
		if idx, ok := arrayIndex(name); ok {
			return idx < len(o.ArrayData)
		}
	}
	if _, ok := o.Properties[name]; ok {
		return true
	}
	if o.Prototype != nil {
		return o.Prototype.HasProperty(name)
	}
	return false
}

func (o *Object) HasOwnProperty(name string) bool {
	if o.OType == ObjTypeArray {
		if name == "length" {
			return true
		}
		if idx, ok := arrayIndex(name); ok {
			return idx < len(o.ArrayData)
		}
	}
	_, ok := o.Properties[name]
	return ok
}

// OwnEnumerableKeys returns own enumerable keys in insertion order,
// array indices first in numeric order, then named properties — the
// order `for...in`, Object.keys and JSON.stringify rely on.
func (o *Object) OwnEnumerableKeys() []string {
	var keys []string
	if o.OType == ObjTypeArray {
		for i := range o.ArrayData {
			if o.ArrayData[i] != nil {
				keys = append(keys, fmt.Sprintf("%d", i))
			}
		}
	}
	for _, k := range o.keyOrder {
		if prop, ok := o.Properties[k]; ok && prop.Enumerable {
			keys = append(keys, k)
		}
	}
	return keys
}

func (o *Object) toStringTag() string {
	if o.OType == ObjTypeError {
		name := o.Get("name")
		msg := o.Get("message")
		nameStr := "Error"
		if name.Type == TypeString && name.Str != "" {
			nameStr = name.Str
		}
		msgStr := ""
		if msg.Type == TypeString {
			msgStr = msg.Str
		}
		if msgStr == "" {
			return nameStr
		}
		return nameStr + ": " + msgStr
	}
	if o.OType == ObjTypeArray {
		parts := make([]string, len(o.ArrayData))
		for i, v := range o.ArrayData {
			if v == nil || v.IsNullOrUndefined() {
				parts[i] = ""
				continue
			}
			parts[i] = v.ToString()
		}
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += ","
			}
			out += p
		}
		return out
	}
	if o.OType == ObjTypeFunction {
		name := o.Get("name")
		if name.Type == TypeString && name.Str != "" {
			return fmt.Sprintf("function %s() { [native code] }", name.Str)
		}
		return "function () { [native code] }"
	}
	return "[object Object]"
}
