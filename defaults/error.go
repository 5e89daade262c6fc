package defaults

import (
	"fmt"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// subtypeErrors lists the six ES5 Error subtypes the reflective-access
// filter and Interpreter.throwError recognise by name alongside the
// base Error constructor, grounded on the teacher's createErrorSubtype.
var subtypeErrors = []string{"TypeError", "ReferenceError", "SyntaxError", "RangeError", "URIError", "EvalError"}

// registerErrors wires the Error constructor and its six subtypes,
// grounded on the teacher's createErrorConstructor/createErrorSubtype.
// Returns the constructors keyed by name ("Error" and each subtype); the
// map carries no order.
func registerErrors(in *interpreter.Interpreter) map[string]*runtime.Object {
	proto := runtime.NewOrdinaryObject(in.ObjectPrototype)
	proto.OType = runtime.ObjTypeError
	in.ErrorPrototype = proto
	proto.Set("name", runtime.NewString("Error"))
	proto.Set("message", runtime.NewString(""))

	toStr := func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		if obj == nil {
			return runtime.NewString("Error"), nil
		}
		name := obj.Get("name").ToString()
		msg := obj.Get("message").ToString()
		if name == "" {
			return runtime.NewString(msg), nil
		}
		if msg == "" {
			return runtime.NewString(name), nil
		}
		return runtime.NewString(fmt.Sprintf("%s: %s", name, msg)), nil
	}
	setMethod(in, proto, "toString", 0, toStr)

	makeErrorValue := func(name string, args []*runtime.Value, p *runtime.Object) *runtime.Value {
		obj := &runtime.Object{
			OType:      runtime.ObjTypeError,
			Properties: make(map[string]*runtime.Property),
			Prototype:  p,
		}
		msg := ""
		if len(args) > 0 && args[0].Type != runtime.TypeUndefined {
			msg = args[0].ToString()
		}
		obj.Set("name", runtime.NewString(name))
		obj.Set("message", runtime.NewString(msg))
		obj.Set("stack", runtime.NewString(fmt.Sprintf("%s: %s", name, msg)))
		return runtime.NewObject(obj)
	}

	ctor := in.NewNativeFunction("Error", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return makeErrorValue("Error", args, proto), nil
	})
	ctor.Constructor = ctor.Callable
	ctor.Prototype = proto
	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	out := map[string]*runtime.Object{"Error": ctor}

	for _, name := range subtypeErrors {
		name := name
		subProto := runtime.NewOrdinaryObject(proto)
		subProto.OType = runtime.ObjTypeError
		subProto.Set("name", runtime.NewString(name))
		subProto.Set("message", runtime.NewString(""))

		subCtor := in.NewNativeFunction(name, 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
			return makeErrorValue(name, args, subProto), nil
		})
		subCtor.Constructor = subCtor.Callable
		subCtor.Prototype = subProto
		setDataProp(subCtor, "prototype", runtime.NewObject(subProto), false, false, false)
		setDataProp(subProto, "constructor", runtime.NewObject(subCtor), true, false, true)

		out[name] = subCtor
	}

	return out
}
