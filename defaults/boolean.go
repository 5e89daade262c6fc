package defaults

import (
	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// registerBoolean wires Boolean.prototype and the Boolean constructor,
// grounded on the teacher's createBooleanConstructor.
func registerBoolean(in *interpreter.Interpreter) *runtime.Object {
	proto := runtime.NewOrdinaryObject(in.ObjectPrototype)

	boolOf := func(this *runtime.Value) bool {
		if this.Type == runtime.TypeBoolean {
			return this.Bool
		}
		if this.Type == runtime.TypeObject && this.Object != nil {
			if iv, ok := this.Object.Internal["BooleanData"]; ok {
				if b, ok := iv.(bool); ok {
					return b
				}
			}
		}
		return this.ToBoolean()
	}

	setMethod(in, proto, "toString", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(runtime.NewBool(boolOf(this)).ToString()), nil
	})
	setMethod(in, proto, "valueOf", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewBool(boolOf(this)), nil
	})

	ctor := in.NewNativeFunction("Boolean", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewBool(argAt(args, 0).ToBoolean()), nil
	})
	ctor.Constructor = func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := runtime.NewOrdinaryObject(proto)
		obj.Internal = map[string]interface{}{"BooleanData": argAt(args, 0).ToBoolean()}
		return runtime.NewObject(obj), nil
	}
	ctor.Prototype = proto

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}
