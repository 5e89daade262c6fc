package defaults

import (
	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

func setMethod(in *interpreter.Interpreter, obj *runtime.Object, name string, length int, fn runtime.CallableFunc) {
	f := in.NewNativeFunction(name, length, fn)
	obj.DefineProperty(name, &runtime.Property{Value: runtime.NewObject(f), Writable: true, Enumerable: false, Configurable: true})
}

func setDataProp(obj *runtime.Object, name string, val *runtime.Value, writable, enumerable, configurable bool) {
	obj.DefineProperty(name, &runtime.Property{Value: val, Writable: writable, Enumerable: enumerable, Configurable: configurable})
}

func argAt(args []*runtime.Value, i int) *runtime.Value {
	if i < len(args) {
		return args[i]
	}
	return runtime.Undefined
}

func toObject(v *runtime.Value) *runtime.Object {
	if v != nil && v.Type == runtime.TypeObject {
		return v.Object
	}
	return nil
}
