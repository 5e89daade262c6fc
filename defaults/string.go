package defaults

import (
	"strings"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// registerString wires String.prototype and the String constructor,
// grounded on the teacher's createStringConstructor; trimmed to the
// core ES5 surface and dropping its Annex B HTML-wrapper methods
// (anchor/big/blink/bold/...), which nothing in SPEC_FULL.md exercises.
func registerString(in *interpreter.Interpreter) *runtime.Object {
	proto := runtime.NewOrdinaryObject(in.ObjectPrototype)

	stringOf := func(this *runtime.Value) string {
		if this.Type == runtime.TypeString {
			return this.Str
		}
		if this.Type == runtime.TypeObject && this.Object != nil {
			if iv, ok := this.Object.Internal["StringData"]; ok {
				if s, ok := iv.(string); ok {
					return s
				}
			}
		}
		return this.ToString()
	}

	setMethod(in, proto, "charAt", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := []rune(stringOf(this))
		idx := int(argAt(args, 0).ToNumber())
		if idx < 0 || idx >= len(s) {
			return runtime.NewString(""), nil
		}
		return runtime.NewString(string(s[idx])), nil
	})
	setMethod(in, proto, "charCodeAt", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := []rune(stringOf(this))
		idx := int(argAt(args, 0).ToNumber())
		if idx < 0 || idx >= len(s) {
			return runtime.NaN, nil
		}
		return runtime.NewNumber(float64(s[idx])), nil
	})
	setMethod(in, proto, "indexOf", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := stringOf(this)
		search := argAt(args, 0).ToString()
		pos := 0
		if len(args) > 1 {
			pos = clampIndex(int(args[1].ToNumber()), len(s))
		}
		if pos > len(s) {
			return runtime.NewNumber(-1), nil
		}
		idx := strings.Index(s[pos:], search)
		if idx == -1 {
			return runtime.NewNumber(-1), nil
		}
		return runtime.NewNumber(float64(idx + pos)), nil
	})
	setMethod(in, proto, "lastIndexOf", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := stringOf(this)
		search := argAt(args, 0).ToString()
		return runtime.NewNumber(float64(strings.LastIndex(s, search))), nil
	})
	setMethod(in, proto, "includes", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewBool(strings.Contains(stringOf(this), argAt(args, 0).ToString())), nil
	})
	setMethod(in, proto, "startsWith", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewBool(strings.HasPrefix(stringOf(this), argAt(args, 0).ToString())), nil
	})
	setMethod(in, proto, "endsWith", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewBool(strings.HasSuffix(stringOf(this), argAt(args, 0).ToString())), nil
	})
	setMethod(in, proto, "slice", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := stringOf(this)
		start, end := sliceRange(len(s), args)
		return runtime.NewString(s[start:end]), nil
	})
	setMethod(in, proto, "substring", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := stringOf(this)
		n := len(s)
		start := boundIndex(int(argAt(args, 0).ToNumber()), n)
		end := n
		if len(args) > 1 && args[1].Type != runtime.TypeUndefined {
			end = boundIndex(int(args[1].ToNumber()), n)
		}
		if start > end {
			start, end = end, start
		}
		return runtime.NewString(s[start:end]), nil
	})
	setMethod(in, proto, "toUpperCase", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(strings.ToUpper(stringOf(this))), nil
	})
	setMethod(in, proto, "toLowerCase", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(strings.ToLower(stringOf(this))), nil
	})
	setMethod(in, proto, "trim", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(strings.TrimSpace(stringOf(this))), nil
	})
	setMethod(in, proto, "repeat", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		n := int(argAt(args, 0).ToNumber())
		if n < 0 {
			return nil, in.ThrowError("RangeError", "Invalid count value")
		}
		return runtime.NewString(strings.Repeat(stringOf(this), n)), nil
	})
	setMethod(in, proto, "padStart", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(pad(stringOf(this), args, true)), nil
	})
	setMethod(in, proto, "padEnd", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(pad(stringOf(this), args, false)), nil
	})
	setMethod(in, proto, "split", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := stringOf(this)
		if len(args) == 0 || args[0].Type == runtime.TypeUndefined {
			return runtime.NewObject(runtime.NewArrayObject(in.ArrayPrototype, []*runtime.Value{runtime.NewString(s)})), nil
		}
		sep := args[0].ToString()
		var parts []string
		if sep == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		vals := make([]*runtime.Value, len(parts))
		for i, p := range parts {
			vals[i] = runtime.NewString(p)
		}
		return runtime.NewObject(runtime.NewArrayObject(in.ArrayPrototype, vals)), nil
	})
	setMethod(in, proto, "replace", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := stringOf(this)
		search := argAt(args, 0).ToString()
		replArg := argAt(args, 1)
		if replArg.Type == runtime.TypeObject && replArg.Object != nil && replArg.Object.Callable != nil {
			idx := strings.Index(s, search)
			if idx == -1 {
				return runtime.NewString(s), nil
			}
			r, err := replArg.Object.Callable(runtime.Undefined, []*runtime.Value{
				runtime.NewString(search), runtime.NewNumber(float64(idx)), runtime.NewString(s),
			})
			if err != nil {
				return nil, err
			}
			return runtime.NewString(s[:idx] + r.ToString() + s[idx+len(search):]), nil
		}
		return runtime.NewString(strings.Replace(s, search, replArg.ToString(), 1)), nil
	})
	setMethod(in, proto, "concat", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := stringOf(this)
		for _, a := range args {
			s += a.ToString()
		}
		return runtime.NewString(s), nil
	})
	setMethod(in, proto, "toString", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(stringOf(this)), nil
	})
	setMethod(in, proto, "valueOf", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(stringOf(this)), nil
	})

	ctor := in.NewNativeFunction("String", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if len(args) == 0 {
			return runtime.NewString(""), nil
		}
		return runtime.NewString(args[0].ToString()), nil
	})
	ctor.Constructor = func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		s := ""
		if len(args) > 0 {
			s = args[0].ToString()
		}
		obj := runtime.NewOrdinaryObject(proto)
		obj.Internal = map[string]interface{}{"StringData": s}
		return runtime.NewObject(obj), nil
	}
	ctor.Prototype = proto

	setMethod(in, ctor, "fromCharCode", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		var b strings.Builder
		for _, a := range args {
			b.WriteRune(rune(int(a.ToNumber())))
		}
		return runtime.NewString(b.String()), nil
	})

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}

func pad(s string, args []*runtime.Value, start bool) string {
	target := int(argAt(args, 0).ToNumber())
	if target <= len(s) {
		return s
	}
	filler := " "
	if len(args) > 1 && args[1].Type != runtime.TypeUndefined {
		filler = args[1].ToString()
	}
	if filler == "" {
		return s
	}
	need := target - len(s)
	var b strings.Builder
	for b.Len() < need {
		b.WriteString(filler)
	}
	padding := b.String()[:need]
	if start {
		return padding + s
	}
	return s + padding
}

func boundIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
