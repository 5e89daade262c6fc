package defaults

import (
	"math"
	"strconv"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// registerNumber wires Number.prototype and the Number constructor,
// grounded on the teacher's createNumberConstructor.
func registerNumber(in *interpreter.Interpreter) *runtime.Object {
	proto := runtime.NewOrdinaryObject(in.ObjectPrototype)

	numberOf := func(this *runtime.Value) float64 {
		if this.Type == runtime.TypeNumber {
			return this.Number
		}
		if this.Type == runtime.TypeObject && this.Object != nil {
			if iv, ok := this.Object.Internal["NumberData"]; ok {
				if n, ok := iv.(float64); ok {
					return n
				}
			}
		}
		return this.ToNumber()
	}

	setMethod(in, proto, "toFixed", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		n := numberOf(this)
		digits := int(argAt(args, 0).ToNumber())
		if digits < 0 || digits > 100 {
			return nil, in.ThrowError("RangeError", "toFixed() digits argument must be between 0 and 100")
		}
		return runtime.NewString(strconv.FormatFloat(n, 'f', digits, 64)), nil
	})
	setMethod(in, proto, "toPrecision", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		n := numberOf(this)
		if len(args) == 0 || args[0].Type == runtime.TypeUndefined {
			return runtime.NewString(runtime.NewNumber(n).ToString()), nil
		}
		prec := int(args[0].ToNumber())
		if prec < 1 || prec > 100 {
			return nil, in.ThrowError("RangeError", "toPrecision() argument must be between 1 and 100")
		}
		return runtime.NewString(strconv.FormatFloat(n, 'g', prec, 64)), nil
	})
	setMethod(in, proto, "toString", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		n := numberOf(this)
		radix := 10
		if len(args) > 0 && args[0].Type != runtime.TypeUndefined {
			radix = int(args[0].ToNumber())
		}
		if radix < 2 || radix > 36 {
			return nil, in.ThrowError("RangeError", "toString() radix must be between 2 and 36")
		}
		if math.IsNaN(n) {
			return runtime.NewString("NaN"), nil
		}
		if radix == 10 {
			return runtime.NewString(runtime.NewNumber(n).ToString()), nil
		}
		return runtime.NewString(strconv.FormatInt(int64(n), radix)), nil
	})
	setMethod(in, proto, "valueOf", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(numberOf(this)), nil
	})

	ctor := in.NewNativeFunction("Number", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if len(args) == 0 {
			return runtime.Zero, nil
		}
		return runtime.NewNumber(args[0].ToNumber()), nil
	})
	ctor.Constructor = func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		n := 0.0
		if len(args) > 0 {
			n = args[0].ToNumber()
		}
		obj := runtime.NewOrdinaryObject(proto)
		obj.Internal = map[string]interface{}{"NumberData": n}
		return runtime.NewObject(obj), nil
	}
	ctor.Prototype = proto

	setMethod(in, ctor, "isInteger", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		a := argAt(args, 0)
		return runtime.NewBool(a.Type == runtime.TypeNumber && !math.IsNaN(a.Number) && !math.IsInf(a.Number, 0) && a.Number == math.Trunc(a.Number)), nil
	})
	setMethod(in, ctor, "isFinite", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		a := argAt(args, 0)
		return runtime.NewBool(a.Type == runtime.TypeNumber && !math.IsNaN(a.Number) && !math.IsInf(a.Number, 0)), nil
	})
	setMethod(in, ctor, "isNaN", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		a := argAt(args, 0)
		return runtime.NewBool(a.Type == runtime.TypeNumber && math.IsNaN(a.Number)), nil
	})

	setDataProp(ctor, "EPSILON", runtime.NewNumber(math.SmallestNonzeroFloat64*math.Pow(2, 1022)), false, false, false)
	setDataProp(ctor, "MAX_SAFE_INTEGER", runtime.NewNumber(9007199254740991), false, false, false)
	setDataProp(ctor, "MIN_SAFE_INTEGER", runtime.NewNumber(-9007199254740991), false, false, false)
	setDataProp(ctor, "MAX_VALUE", runtime.NewNumber(math.MaxFloat64), false, false, false)
	setDataProp(ctor, "MIN_VALUE", runtime.NewNumber(math.SmallestNonzeroFloat64), false, false, false)
	setDataProp(ctor, "NaN", runtime.NaN, false, false, false)
	setDataProp(ctor, "POSITIVE_INFINITY", runtime.PosInf, false, false, false)
	setDataProp(ctor, "NEGATIVE_INFINITY", runtime.NegInf, false, false, false)

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}
