package defaults

import (
	"sort"
	"strings"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// registerArray wires Array.prototype and the Array constructor,
// grounded on the teacher's createArrayConstructor; trimmed to the
// methods the scenarios of §8 exercise (map, join, push/pop, forEach,
// filter, reduce, indexOf, slice) plus a few obvious companions, all
// still dispatched through the same host-bridge call path as any
// embedder-supplied native rather than special-cased in the evaluator.
func registerArray(in *interpreter.Interpreter) *runtime.Object {
	proto := runtime.NewOrdinaryObject(in.ObjectPrototype)
	proto.OType = runtime.ObjTypeArray
	in.ArrayPrototype = proto

	call := func(fn *runtime.Value, this *runtime.Value, args ...*runtime.Value) (*runtime.Value, error) {
		if fn.Type != runtime.TypeObject || fn.Object == nil || fn.Object.Callable == nil {
			return nil, in.ThrowError("TypeError", "callback is not a function")
		}
		return fn.Object.Callable(this, args)
	}

	setMethod(in, proto, "push", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		obj.ArrayData = append(obj.ArrayData, args...)
		return runtime.NewNumber(float64(len(obj.ArrayData))), nil
	})
	setMethod(in, proto, "pop", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		if len(obj.ArrayData) == 0 {
			return runtime.Undefined, nil
		}
		last := obj.ArrayData[len(obj.ArrayData)-1]
		obj.ArrayData = obj.ArrayData[:len(obj.ArrayData)-1]
		return last, nil
	})
	setMethod(in, proto, "shift", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		if len(obj.ArrayData) == 0 {
			return runtime.Undefined, nil
		}
		first := obj.ArrayData[0]
		obj.ArrayData = obj.ArrayData[1:]
		return first, nil
	})
	setMethod(in, proto, "unshift", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		obj.ArrayData = append(append([]*runtime.Value{}, args...), obj.ArrayData...)
		return runtime.NewNumber(float64(len(obj.ArrayData))), nil
	})
	setMethod(in, proto, "slice", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		start, end := sliceRange(len(obj.ArrayData), args)
		out := append([]*runtime.Value{}, obj.ArrayData[start:end]...)
		return runtime.NewObject(runtime.NewArrayObject(proto, out)), nil
	})
	setMethod(in, proto, "splice", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		n := len(obj.ArrayData)
		start := clampIndex(int(argAt(args, 0).ToNumber()), n)
		deleteCount := n - start
		if len(args) > 1 {
			deleteCount = int(args[1].ToNumber())
			if deleteCount < 0 {
				deleteCount = 0
			}
			if start+deleteCount > n {
				deleteCount = n - start
			}
		}
		removed := append([]*runtime.Value{}, obj.ArrayData[start:start+deleteCount]...)
		inserted := args[minInt(2, len(args)):]
		rest := append([]*runtime.Value{}, obj.ArrayData[start+deleteCount:]...)
		obj.ArrayData = append(append(obj.ArrayData[:start], inserted...), rest...)
		return runtime.NewObject(runtime.NewArrayObject(proto, removed)), nil
	})
	setMethod(in, proto, "concat", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		out := append([]*runtime.Value{}, obj.ArrayData...)
		for _, a := range args {
			if ao := toObject(a); ao != nil && ao.OType == runtime.ObjTypeArray {
				out = append(out, ao.ArrayData...)
			} else {
				out = append(out, a)
			}
		}
		return runtime.NewObject(runtime.NewArrayObject(proto, out)), nil
	})
	setMethod(in, proto, "join", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		sep := ","
		if len(args) > 0 && args[0].Type != runtime.TypeUndefined {
			sep = args[0].ToString()
		}
		parts := make([]string, len(obj.ArrayData))
		for i, v := range obj.ArrayData {
			if v == nil || v.IsNullOrUndefined() {
				parts[i] = ""
			} else {
				parts[i] = v.ToString()
			}
		}
		return runtime.NewString(strings.Join(parts, sep)), nil
	})
	setMethod(in, proto, "indexOf", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		target := argAt(args, 0)
		for i, v := range obj.ArrayData {
			if v != nil && runtime.StrictEquals(v, target) {
				return runtime.NewNumber(float64(i)), nil
			}
		}
		return runtime.NewNumber(-1), nil
	})
	setMethod(in, proto, "includes", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		target := argAt(args, 0)
		for _, v := range obj.ArrayData {
			if v != nil && runtime.StrictEquals(v, target) {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	})
	setMethod(in, proto, "forEach", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		fn := argAt(args, 0)
		thisArg := argAt(args, 1)
		for i, v := range obj.ArrayData {
			if _, err := call(fn, thisArg, elem(v), runtime.NewNumber(float64(i)), this); err != nil {
				return nil, err
			}
		}
		return runtime.Undefined, nil
	})
	setMethod(in, proto, "map", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		fn := argAt(args, 0)
		thisArg := argAt(args, 1)
		out := make([]*runtime.Value, len(obj.ArrayData))
		for i, v := range obj.ArrayData {
			r, err := call(fn, thisArg, elem(v), runtime.NewNumber(float64(i)), this)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return runtime.NewObject(runtime.NewArrayObject(proto, out)), nil
	})
	setMethod(in, proto, "filter", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		fn := argAt(args, 0)
		thisArg := argAt(args, 1)
		var out []*runtime.Value
		for i, v := range obj.ArrayData {
			r, err := call(fn, thisArg, elem(v), runtime.NewNumber(float64(i)), this)
			if err != nil {
				return nil, err
			}
			if r.ToBoolean() {
				out = append(out, v)
			}
		}
		return runtime.NewObject(runtime.NewArrayObject(proto, out)), nil
	})
	setMethod(in, proto, "find", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		fn := argAt(args, 0)
		thisArg := argAt(args, 1)
		for i, v := range obj.ArrayData {
			r, err := call(fn, thisArg, elem(v), runtime.NewNumber(float64(i)), this)
			if err != nil {
				return nil, err
			}
			if r.ToBoolean() {
				return elem(v), nil
			}
		}
		return runtime.Undefined, nil
	})
	setMethod(in, proto, "findIndex", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		fn := argAt(args, 0)
		thisArg := argAt(args, 1)
		for i, v := range obj.ArrayData {
			r, err := call(fn, thisArg, elem(v), runtime.NewNumber(float64(i)), this)
			if err != nil {
				return nil, err
			}
			if r.ToBoolean() {
				return runtime.NewNumber(float64(i)), nil
			}
		}
		return runtime.NewNumber(-1), nil
	})
	setMethod(in, proto, "reduce", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return arrayReduce(call, this, args, false)
	})
	setMethod(in, proto, "reduceRight", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return arrayReduce(call, this, args, true)
	})
	setMethod(in, proto, "every", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		fn := argAt(args, 0)
		thisArg := argAt(args, 1)
		for i, v := range obj.ArrayData {
			r, err := call(fn, thisArg, elem(v), runtime.NewNumber(float64(i)), this)
			if err != nil {
				return nil, err
			}
			if !r.ToBoolean() {
				return runtime.False, nil
			}
		}
		return runtime.True, nil
	})
	setMethod(in, proto, "some", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		fn := argAt(args, 0)
		thisArg := argAt(args, 1)
		for i, v := range obj.ArrayData {
			r, err := call(fn, thisArg, elem(v), runtime.NewNumber(float64(i)), this)
			if err != nil {
				return nil, err
			}
			if r.ToBoolean() {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	})
	setMethod(in, proto, "sort", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		fn := argAt(args, 0)
		var sortErr error
		sort.SliceStable(obj.ArrayData, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			a, b := obj.ArrayData[i], obj.ArrayData[j]
			if fn.Type == runtime.TypeObject && fn.Object != nil && fn.Object.Callable != nil {
				r, err := call(fn, runtime.Undefined, elem(a), elem(b))
				if err != nil {
					sortErr = err
					return false
				}
				return r.ToNumber() < 0
			}
			return a.ToString() < b.ToString()
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return this, nil
	})
	setMethod(in, proto, "reverse", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		for i, j := 0, len(obj.ArrayData)-1; i < j; i, j = i+1, j-1 {
			obj.ArrayData[i], obj.ArrayData[j] = obj.ArrayData[j], obj.ArrayData[i]
		}
		return this, nil
	})
	setMethod(in, proto, "toString", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(this.ToString()), nil
	})

	ctor := in.NewNativeFunction("Array", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if len(args) == 1 && args[0].Type == runtime.TypeNumber {
			n := int(args[0].Number)
			if n < 0 || float64(n) != args[0].Number {
				return nil, in.ThrowError("RangeError", "Invalid array length")
			}
			return runtime.NewObject(runtime.NewArrayObject(proto, make([]*runtime.Value, n))), nil
		}
		return runtime.NewObject(runtime.NewArrayObject(proto, append([]*runtime.Value{}, args...))), nil
	})
	ctor.Constructor = ctor.Callable
	ctor.Prototype = proto

	setMethod(in, ctor, "isArray", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(argAt(args, 0))
		return runtime.NewBool(obj != nil && obj.OType == runtime.ObjTypeArray), nil
	})
	setMethod(in, ctor, "from", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		arg := argAt(args, 0)
		obj := toObject(arg)
		if obj == nil {
			return runtime.NewObject(runtime.NewArrayObject(proto, nil)), nil
		}
		var data []*runtime.Value
		if obj.OType == runtime.ObjTypeArray {
			data = append([]*runtime.Value{}, obj.ArrayData...)
		} else {
			n := int(obj.Get("length").ToNumber())
			for i := 0; i < n; i++ {
				data = append(data, obj.Get(runtime.NewNumber(float64(i)).ToString()))
			}
		}
		return runtime.NewObject(runtime.NewArrayObject(proto, data)), nil
	})

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}

func elem(v *runtime.Value) *runtime.Value {
	if v == nil {
		return runtime.Undefined
	}
	return v
}

func arrayReduce(call func(fn, this *runtime.Value, args ...*runtime.Value) (*runtime.Value, error), this *runtime.Value, args []*runtime.Value, right bool) (*runtime.Value, error) {
	obj := toObject(this)
	fn := argAt(args, 0)
	data := obj.ArrayData
	indices := make([]int, len(data))
	for i := range indices {
		if right {
			indices[i] = len(data) - 1 - i
		} else {
			indices[i] = i
		}
	}
	var acc *runtime.Value
	start := 0
	if len(args) > 1 {
		acc = args[1]
	} else {
		if len(indices) == 0 {
			return nil, nil
		}
		acc = elem(data[indices[0]])
		start = 1
	}
	for _, idx := range indices[start:] {
		r, err := call(fn, runtime.Undefined, acc, elem(data[idx]), runtime.NewNumber(float64(idx)), runtime.NewObject(obj))
		if err != nil {
			return nil, err
		}
		acc = r
	}
	return acc, nil
}

func sliceRange(n int, args []*runtime.Value) (int, int) {
	start := 0
	end := n
	if len(args) > 0 && args[0].Type != runtime.TypeUndefined {
		start = clampIndex(int(args[0].ToNumber()), n)
	}
	if len(args) > 1 && args[1].Type != runtime.TypeUndefined {
		end = clampIndex(int(args[1].ToNumber()), n)
	}
	if end < start {
		end = start
	}
	return start, end
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
