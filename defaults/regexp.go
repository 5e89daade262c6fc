package defaults

import (
	"regexp"
	"strings"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// registerRegExp wires a minimal RegExp constructor and prototype,
// grounded on the teacher's createRegExpConstructor; test/exec/toString only
// (no compile/match-group-name machinery), using Go's regexp package
// directly rather than translating ES5 pattern syntax — the same
// simplification the teacher's jsRegexpToGo already makes explicit.
func registerRegExp(in *interpreter.Interpreter) *runtime.Object {
	proto := runtime.NewOrdinaryObject(in.ObjectPrototype)
	proto.OType = runtime.ObjTypeRegExp
	in.RegExpPrototype = proto

	getRe := func(this *runtime.Value) *regexp.Regexp {
		obj := toObject(this)
		if obj == nil || obj.Internal == nil {
			return nil
		}
		re, _ := obj.Internal["regexp"].(*regexp.Regexp)
		return re
	}

	setMethod(in, proto, "test", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		re := getRe(this)
		if re == nil {
			return runtime.False, nil
		}
		return runtime.NewBool(re.MatchString(argAt(args, 0).ToString())), nil
	})
	setMethod(in, proto, "exec", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		re := getRe(this)
		if re == nil {
			return runtime.Null, nil
		}
		s := argAt(args, 0).ToString()
		m := re.FindStringSubmatch(s)
		if m == nil {
			return runtime.Null, nil
		}
		vals := make([]*runtime.Value, len(m))
		for i, g := range m {
			vals[i] = runtime.NewString(g)
		}
		arr := runtime.NewArrayObject(in.ArrayPrototype, vals)
		loc := re.FindStringIndex(s)
		arr.Set("index", runtime.NewNumber(float64(loc[0])))
		arr.Set("input", runtime.NewString(s))
		return runtime.NewObject(arr), nil
	})
	setMethod(in, proto, "toString", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		if obj == nil {
			return runtime.NewString("/(?:)/"), nil
		}
		pattern, _ := obj.Internal["pattern"].(string)
		flags, _ := obj.Internal["flags"].(string)
		return runtime.NewString("/" + pattern + "/" + flags), nil
	})

	ctor := in.NewNativeFunction("RegExp", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return makeRegExp(in, proto, args)
	})
	ctor.Constructor = ctor.Callable
	ctor.Prototype = proto

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}

func makeRegExp(in *interpreter.Interpreter, proto *runtime.Object, args []*runtime.Value) (*runtime.Value, error) {
	pattern := ""
	flags := ""
	if len(args) > 0 && args[0].Type != runtime.TypeUndefined {
		pattern = args[0].ToString()
	}
	if len(args) > 1 && args[1].Type != runtime.TypeUndefined {
		flags = args[1].ToString()
	}
	goPattern := pattern
	if strings.Contains(flags, "i") {
		goPattern = "(?i)" + goPattern
	}
	if strings.Contains(flags, "s") {
		goPattern = "(?s)" + goPattern
	}
	re, err := regexp.Compile(goPattern)
	if err != nil {
		return nil, in.ThrowError("SyntaxError", "Invalid regular expression: %s", err)
	}
	obj := &runtime.Object{
		OType:      runtime.ObjTypeRegExp,
		Properties: make(map[string]*runtime.Property),
		Prototype:  proto,
		Internal:   map[string]interface{}{"regexp": re, "pattern": pattern, "flags": flags},
	}
	setDataProp(obj, "source", runtime.NewString(pattern), false, false, true)
	setDataProp(obj, "flags", runtime.NewString(flags), false, false, true)
	setDataProp(obj, "global", runtime.NewBool(strings.Contains(flags, "g")), false, false, true)
	setDataProp(obj, "ignoreCase", runtime.NewBool(strings.Contains(flags, "i")), false, false, true)
	setDataProp(obj, "multiline", runtime.NewBool(strings.Contains(flags, "m")), false, false, true)
	obj.Set("lastIndex", runtime.Zero)
	return runtime.NewObject(obj), nil
}
