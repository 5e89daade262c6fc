// Package defaults builds the capability table §4.7 and the
// Interpreter constructor in §6 reference: the nine named host
// constructors the reflective-access filter recognises
// (Object/Array/String/Number/Boolean/Function/RegExp/Date/Error plus
// six Error subtypes), a neutralized Function constructor, the eval
// primitive, and the Math/JSON/console globals supplementing them.
package defaults

import (
	"math"
	"strconv"
	"strings"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// Register wires the full default capability table into in, in
// dependency order, grounded on the teacher's builtins.RegisterAll:
// Object first (every other prototype chains off it), then Function
// (so every subsequently created native is linked to Function.prototype),
// Array/String/Number/Boolean/RegExp/Date, then Error and its six
// subtypes, then the Math/JSON/console globals and the top-level
// parseInt/parseFloat/isNaN/isFinite functions.
func Register(in *interpreter.Interpreter) {
	RegisterWithPolicy(in, nil)
}

// RegisterWithPolicy wires the default capability table like Register,
// but only exposes a constructor or global under the name an embedder's
// policy allows (see the config package). Prototypes are always built
// regardless of allow, since String/Array/etc. all chain off
// Object.prototype structurally whether or not Object itself is
// exposed to script; allow gates only the script-visible binding. A
// nil allow exposes everything, matching Register. What
// registerGlobalFunctions declares (parseInt, parseFloat, isNaN,
// isFinite, undefined, NaN, Infinity) is declared whatever allow
// says.
func RegisterWithPolicy(in *interpreter.Interpreter, allow func(name string) bool) {
	if allow == nil {
		allow = func(string) bool { return true }
	}
	expose := func(name string, ctor *runtime.Object) {
		if allow(name) {
			in.RegisterConstructor(name, ctor)
		}
	}
	exposeGlobal := func(name string, v *runtime.Value) {
		if allow(name) {
			in.DeclareGlobal(name, v)
		}
	}

	expose("Object", registerObject(in))
	expose("Function", registerFunction(in))
	expose("Array", registerArray(in))
	expose("String", registerString(in))
	expose("Number", registerNumber(in))
	expose("Boolean", registerBoolean(in))
	expose("RegExp", registerRegExp(in))
	expose("Date", registerDate(in))

	for name, ctor := range registerErrors(in) {
		expose(name, ctor)
	}

	exposeGlobal("Math", runtime.NewObject(buildMath(in)))
	exposeGlobal("JSON", runtime.NewObject(buildJSON(in)))
	exposeGlobal("console", runtime.NewObject(buildConsole(in)))

	registerGlobalFunctions(in)
}

// registerGlobalFunctions wires parseInt/parseFloat/isNaN/isFinite
// directly onto the global scope, grounded on the teacher's
// registerGlobalFunctions.
func registerGlobalFunctions(in *interpreter.Interpreter) {
	in.DeclareGlobal("parseInt", runtime.NewObject(in.NewNativeFunction("parseInt", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := strings.TrimSpace(argAt(args, 0).ToString())
		radix := 10
		if len(args) > 1 && args[1].Type != runtime.TypeUndefined {
			radix = int(args[1].ToNumber())
			if radix == 0 {
				radix = 10
			}
		}
		neg := false
		if strings.HasPrefix(s, "-") {
			neg = true
			s = s[1:]
		} else if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		if (radix == 16 || radix == 10) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			s = s[2:]
			radix = 16
		}
		end := 0
		for end < len(s) && isDigitInRadix(s[end], radix) {
			end++
		}
		if end == 0 {
			return runtime.NaN, nil
		}
		n, err := strconv.ParseInt(s[:end], radix, 64)
		if err != nil {
			return runtime.NaN, nil
		}
		if neg {
			n = -n
		}
		return runtime.NewNumber(float64(n)), nil
	})))

	in.DeclareGlobal("parseFloat", runtime.NewObject(in.NewNativeFunction("parseFloat", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := strings.TrimSpace(argAt(args, 0).ToString())
		end := len(s)
		for end > 0 {
			if _, err := strconv.ParseFloat(s[:end], 64); err == nil {
				break
			}
			end--
		}
		if end == 0 {
			return runtime.NaN, nil
		}
		n, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return runtime.NaN, nil
		}
		return runtime.NewNumber(n), nil
	})))

	in.DeclareGlobal("isNaN", runtime.NewObject(in.NewNativeFunction("isNaN", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewBool(math.IsNaN(argAt(args, 0).ToNumber())), nil
	})))

	in.DeclareGlobal("isFinite", runtime.NewObject(in.NewNativeFunction("isFinite", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		n := argAt(args, 0).ToNumber()
		return runtime.NewBool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
	})))

	in.DeclareGlobal("undefined", runtime.Undefined)
	in.DeclareGlobal("NaN", runtime.NaN)
	in.DeclareGlobal("Infinity", runtime.PosInf)
}

func isDigitInRadix(c byte, radix int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < radix
}
