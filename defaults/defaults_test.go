package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

func newTestInterpreter() *interpreter.Interpreter {
	in := interpreter.New()
	Register(in)
	return in
}

func callMethod(t *testing.T, obj *runtime.Object, name string, this *runtime.Value, args ...*runtime.Value) *runtime.Value {
	t.Helper()
	fn := obj.Get(name)
	require.Equal(t, runtime.TypeObject, fn.Type)
	require.NotNil(t, fn.Object.Callable)
	v, err := fn.Object.Callable(this, args)
	require.NoError(t, err)
	return v
}

func TestArrayPushPopRoundtrip(t *testing.T) {
	in := newTestInterpreter()
	arr := runtime.NewObject(runtime.NewArrayObject(in.ArrayPrototype, nil))

	length := callMethod(t, in.ArrayPrototype, "push", arr, runtime.NewNumber(1), runtime.NewNumber(2))
	assert.Equal(t, float64(2), length.Number)

	popped := callMethod(t, in.ArrayPrototype, "pop", arr)
	assert.Equal(t, float64(2), popped.Number)
}

func TestArrayMapFilter(t *testing.T) {
	in := newTestInterpreter()
	arr := runtime.NewObject(runtime.NewArrayObject(in.ArrayPrototype, []*runtime.Value{
		runtime.NewNumber(1), runtime.NewNumber(2), runtime.NewNumber(3),
	}))

	double := in.NewNativeFunction("", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(args[0].ToNumber() * 2), nil
	})
	mapped := callMethod(t, in.ArrayPrototype, "map", arr, runtime.NewObject(double))
	mappedObj := mapped.Object
	require.Len(t, mappedObj.ArrayData, 3)
	assert.Equal(t, float64(2), mappedObj.ArrayData[0].Number)
	assert.Equal(t, float64(6), mappedObj.ArrayData[2].Number)

	isEven := in.NewNativeFunction("", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewBool(int(args[0].ToNumber())%2 == 0), nil
	})
	filtered := callMethod(t, in.ArrayPrototype, "filter", arr, runtime.NewObject(isEven))
	require.Len(t, filtered.Object.ArrayData, 1)
	assert.Equal(t, float64(2), filtered.Object.ArrayData[0].Number)
}

func TestObjectKeysPreservesOrder(t *testing.T) {
	in := newTestInterpreter()
	obj := runtime.NewObject(runtime.NewOrdinaryObject(in.ObjectPrototype))
	obj.Object.Set("b", runtime.NewNumber(1))
	obj.Object.Set("a", runtime.NewNumber(2))

	ctorV, err := in.Global().Get("Object")
	require.NoError(t, err)
	keys := callMethod(t, ctorV.Object, "keys", runtime.Undefined, obj)
	require.Len(t, keys.Object.ArrayData, 2)
	assert.Equal(t, "b", keys.Object.ArrayData[0].Str)
	assert.Equal(t, "a", keys.Object.ArrayData[1].Str)
}

func TestStringSliceAndToUpperCase(t *testing.T) {
	in := newTestInterpreter()
	s := runtime.NewString("hello")
	ctorV, err := in.Global().Get("String")
	require.NoError(t, err)
	proto := ctorV.Object.Get("prototype").Object

	upper := callMethod(t, proto, "toUpperCase", s)
	assert.Equal(t, "HELLO", upper.Str)

	sliced := callMethod(t, proto, "slice", s, runtime.NewNumber(1), runtime.NewNumber(3))
	assert.Equal(t, "el", sliced.Str)
}

func TestMathFunctions(t *testing.T) {
	in := newTestInterpreter()
	mathV, err := in.Global().Get("Math")
	require.NoError(t, err)

	result := callMethod(t, mathV.Object, "max", runtime.Undefined, runtime.NewNumber(1), runtime.NewNumber(5), runtime.NewNumber(3))
	assert.Equal(t, float64(5), result.Number)

	floor := callMethod(t, mathV.Object, "floor", runtime.Undefined, runtime.NewNumber(3.7))
	assert.Equal(t, float64(3), floor.Number)
}

func TestJSONStringifyAndParseRoundtrip(t *testing.T) {
	in := newTestInterpreter()
	jsonV, err := in.Global().Get("JSON")
	require.NoError(t, err)

	obj := runtime.NewObject(runtime.NewOrdinaryObject(in.ObjectPrototype))
	obj.Object.Set("a", runtime.NewNumber(1))

	str := callMethod(t, jsonV.Object, "stringify", runtime.Undefined, obj)
	assert.Equal(t, `{"a":1}`, str.Str)

	parsed := callMethod(t, jsonV.Object, "parse", runtime.Undefined, str)
	require.Equal(t, runtime.TypeObject, parsed.Type)
	assert.Equal(t, float64(1), parsed.Object.Get("a").Number)
}

func TestFunctionConstructorIsNeutralized(t *testing.T) {
	in := newTestInterpreter()
	ctorV, err := in.Global().Get("Function")
	require.NoError(t, err)
	_, err = ctorV.Object.Constructor(runtime.Undefined, nil)
	assert.Error(t, err)
}

func TestErrorSubtypesRegistered(t *testing.T) {
	in := newTestInterpreter()
	for _, name := range []string{"Error", "TypeError", "RangeError", "ReferenceError", "SyntaxError", "URIError", "EvalError"} {
		_, ok := in.NamedConstructors[name]
		assert.True(t, ok, "%s should be a registered named constructor", name)
	}
}

func TestPolicyRestrictsExposedGlobals(t *testing.T) {
	in := interpreter.New()
	RegisterWithPolicy(in, func(name string) bool { return name == "Object" })

	_, err := in.Global().Get("Object")
	assert.NoError(t, err)

	_, err = in.Global().Get("Array")
	assert.Error(t, err, "Array should not be exposed under a policy that only allows Object")
}
