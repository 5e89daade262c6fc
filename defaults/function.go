package defaults

import (
	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// registerFunction wires Function.prototype only. The Function
// constructor itself is neutralized, grounded on the teacher's
// functionConstructorCall (which already rejects dynamic function
// creation outright): the reflective-access filter treats Function
// as one of the nine named constructors, but `new Function(...)`
// always throws rather than compiling script source at runtime,
// since this module has no parser of its own to hand it to.
func registerFunction(in *interpreter.Interpreter) *runtime.Object {
	proto := runtime.NewOrdinaryObject(in.ObjectPrototype)
	proto.OType = runtime.ObjTypeFunction
	in.FunctionPrototype = proto

	setMethod(in, proto, "toString", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(this.ToString()), nil
	})

	ctor := in.NewNativeFunction("Function", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return nil, in.ThrowError("TypeError", "Function constructor is not supported")
	})
	ctor.Constructor = ctor.Callable
	ctor.Prototype = proto

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}
