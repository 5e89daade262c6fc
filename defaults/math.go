package defaults

import (
	"math"
	"math/rand"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// buildMath builds the Math global, grounded on the teacher's
// createMathObject.
func buildMath(in *interpreter.Interpreter) *runtime.Object {
	m := runtime.NewOrdinaryObject(in.ObjectPrototype)

	setDataProp(m, "PI", runtime.NewNumber(math.Pi), false, false, false)
	setDataProp(m, "E", runtime.NewNumber(math.E), false, false, false)
	setDataProp(m, "LN2", runtime.NewNumber(math.Ln2), false, false, false)
	setDataProp(m, "LN10", runtime.NewNumber(math.Log(10)), false, false, false)
	setDataProp(m, "LOG2E", runtime.NewNumber(math.Log2E), false, false, false)
	setDataProp(m, "LOG10E", runtime.NewNumber(math.Log10E), false, false, false)
	setDataProp(m, "SQRT2", runtime.NewNumber(math.Sqrt2), false, false, false)
	setDataProp(m, "SQRT1_2", runtime.NewNumber(1.0/math.Sqrt2), false, false, false)

	unary := func(fn func(float64) float64) runtime.CallableFunc {
		return func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
			return runtime.NewNumber(fn(argAt(args, 0).ToNumber())), nil
		}
	}

	setMethod(in, m, "abs", 1, unary(math.Abs))
	setMethod(in, m, "ceil", 1, unary(math.Ceil))
	setMethod(in, m, "floor", 1, unary(math.Floor))
	setMethod(in, m, "round", 1, unary(math.Round))
	setMethod(in, m, "trunc", 1, unary(math.Trunc))
	setMethod(in, m, "sign", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		n := argAt(args, 0).ToNumber()
		switch {
		case math.IsNaN(n):
			return runtime.NaN, nil
		case n > 0:
			return runtime.NewNumber(1), nil
		case n < 0:
			return runtime.NewNumber(-1), nil
		default:
			return runtime.NewNumber(n), nil
		}
	})
	setMethod(in, m, "sqrt", 1, unary(math.Sqrt))
	setMethod(in, m, "cbrt", 1, unary(math.Cbrt))
	setMethod(in, m, "log", 1, unary(math.Log))
	setMethod(in, m, "log2", 1, unary(math.Log2))
	setMethod(in, m, "log10", 1, unary(math.Log10))
	setMethod(in, m, "exp", 1, unary(math.Exp))
	setMethod(in, m, "sin", 1, unary(math.Sin))
	setMethod(in, m, "cos", 1, unary(math.Cos))
	setMethod(in, m, "tan", 1, unary(math.Tan))
	setMethod(in, m, "asin", 1, unary(math.Asin))
	setMethod(in, m, "acos", 1, unary(math.Acos))
	setMethod(in, m, "atan", 1, unary(math.Atan))
	setMethod(in, m, "atan2", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(math.Atan2(argAt(args, 0).ToNumber(), argAt(args, 1).ToNumber())), nil
	})
	setMethod(in, m, "pow", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(math.Pow(argAt(args, 0).ToNumber(), argAt(args, 1).ToNumber())), nil
	})
	setMethod(in, m, "max", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if len(args) == 0 {
			return runtime.NegInf, nil
		}
		best := math.Inf(-1)
		for _, a := range args {
			n := a.ToNumber()
			if math.IsNaN(n) {
				return runtime.NaN, nil
			}
			if n > best {
				best = n
			}
		}
		return runtime.NewNumber(best), nil
	})
	setMethod(in, m, "min", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if len(args) == 0 {
			return runtime.PosInf, nil
		}
		best := math.Inf(1)
		for _, a := range args {
			n := a.ToNumber()
			if math.IsNaN(n) {
				return runtime.NaN, nil
			}
			if n < best {
				best = n
			}
		}
		return runtime.NewNumber(best), nil
	})
	setMethod(in, m, "hypot", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		sum := 0.0
		for _, a := range args {
			n := a.ToNumber()
			sum += n * n
		}
		return runtime.NewNumber(math.Sqrt(sum)), nil
	})
	setMethod(in, m, "random", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(rand.Float64()), nil
	})

	setDataProp(m, "@@toStringTag", runtime.NewString("Math"), false, false, false)
	return m
}
