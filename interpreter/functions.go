package interpreter

import (
	"github.com/badlogic/jailjs/ast"
	"github.com/badlogic/jailjs/runtime"
)

// makeFunction builds a function Object from a FunctionDeclaration's or
// FunctionExpression's parts: a ScriptFunction closure over scope,
// wired so that calling or constructing it re-enters the evaluator.
func (in *Interpreter) makeFunction(name string, params []*ast.Identifier, body *ast.BlockStatement, scope *runtime.Environment, isArrow bool) *runtime.Object {
	sf := &runtime.ScriptFunction{
		Name:    name,
		Params:  params,
		Body:    body,
		Env:     scope,
		IsArrow: isArrow,
	}
	obj := &runtime.Object{
		OType:      runtime.ObjTypeFunction,
		Properties: make(map[string]*runtime.Property),
		Prototype:  in.FunctionPrototype,
		Script:     sf,
	}
	obj.Callable = func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return in.invokeScript(obj, this, args)
	}
	if !isArrow {
		obj.Constructor = obj.Callable
		protoObj := runtime.NewOrdinaryObject(in.ObjectPrototype)
		protoObj.DefineProperty("constructor", &runtime.Property{
			Value: runtime.NewObject(obj), Writable: true, Enumerable: false, Configurable: true,
		})
		obj.DefineProperty("prototype", &runtime.Property{
			Value: runtime.NewObject(protoObj), Writable: true, Enumerable: false, Configurable: false,
		})
	}
	obj.DefineProperty("name", &runtime.Property{
		Value: runtime.NewString(name), Writable: false, Enumerable: false, Configurable: true,
	})
	obj.DefineProperty("length", &runtime.Property{
		Value: runtime.NewNumber(float64(len(params))), Writable: false, Enumerable: false, Configurable: true,
	})
	in.installFunctionMethods(obj)
	return obj
}

func (in *Interpreter) makeArrowFunction(n *ast.ArrowFunctionExpression, scope *runtime.Environment) *runtime.Object {
	sf := &runtime.ScriptFunction{
		Params:  n.Params,
		Body:    n.Body,
		Env:     scope,
		IsArrow: true,
	}
	obj := &runtime.Object{
		OType:      runtime.ObjTypeFunction,
		Properties: make(map[string]*runtime.Property),
		Prototype:  in.FunctionPrototype,
		Script:     sf,
	}
	obj.Callable = func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return in.invokeScript(obj, this, args)
	}
	obj.DefineProperty("name", &runtime.Property{Value: runtime.NewString(""), Writable: false, Enumerable: false, Configurable: true})
	obj.DefineProperty("length", &runtime.Property{Value: runtime.NewNumber(float64(len(n.Params))), Writable: false, Enumerable: false, Configurable: true})
	in.installFunctionMethods(obj)
	return obj
}

// invokeScript runs a ScriptFunction's body in a fresh call frame: a
// bound function first forwards to its Target with its own BoundThis
// and BoundArgs prepended (never re-binding `this` on a second bind,
// per §8's invariant), and an arrow function ignores the `this` it was
// invoked with, inheriting the one captured at its creation scope
// instead, and receives no `arguments` object of its own.
func (in *Interpreter) invokeScript(fn *runtime.Object, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	sf := fn.Script
	if sf.IsBound() {
		allArgs := make([]*runtime.Value, 0, len(sf.BoundArgs)+len(args))
		allArgs = append(allArgs, sf.BoundArgs...)
		allArgs = append(allArgs, args...)
		return in.callObject(sf.Target, sf.BoundThis, allArgs)
	}

	callEnv := runtime.NewEnvironment(sf.Env, false)
	if !sf.IsArrow {
		callEnv.Declare("this", "const", this)
		argsObj := in.makeArgumentsObject(args)
		callEnv.Declare("arguments", "var", runtime.NewObject(argsObj))
	}
	for i, p := range sf.Params {
		var v *runtime.Value = runtime.Undefined
		if i < len(args) {
			v = args[i]
		}
		callEnv.Declare(p.Name, "var", v)
	}

	switch body := sf.Body.(type) {
	case *ast.BlockStatement:
		if err := in.hoist(body.Body, callEnv); err != nil {
			return nil, err
		}
		_, sig, err := in.execStatements(body.Body, callEnv)
		if err != nil {
			return nil, err
		}
		if sig.kind == sigReturn {
			return sig.value, nil
		}
		return runtime.Undefined, nil
	case ast.Expression:
		return in.eval(body, callEnv)
	default:
		return runtime.Undefined, nil
	}
}

// makeArgumentsObject builds the array-like (but not Array-typed)
// `arguments` object ES5 functions see: indexed own properties plus
// "length", none of it backed by ArrayData or Array.prototype.
func (in *Interpreter) makeArgumentsObject(args []*runtime.Value) *runtime.Object {
	obj := runtime.NewOrdinaryObject(in.ObjectPrototype)
	obj.Set("length", runtime.NewNumber(float64(len(args))))
	for i, a := range args {
		obj.Set(runtime.NewNumber(float64(i)).ToString(), a)
	}
	return obj
}

// installFunctionMethods wires call/apply/bind directly onto each
// function object rather than through a shared FunctionPrototype
// lookup, so these adapters work identically whether the embedder
// registered a Function prototype chain or not (the core evaluator
// must not depend on the defaults package being present).
func (in *Interpreter) installFunctionMethods(fn *runtime.Object) {
	fn.DefineProperty("call", &runtime.Property{
		Value: runtime.NewObject(in.nativeFunc("call", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
			target := this.Object
			thisArg := argOr(args, 0, runtime.Undefined)
			callArgs := restArgs(args, 1)
			return in.callObject(target, thisArg, callArgs)
		})),
		Writable: true, Enumerable: false, Configurable: true,
	})
	fn.DefineProperty("apply", &runtime.Property{
		Value: runtime.NewObject(in.nativeFunc("apply", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
			target := this.Object
			thisArg := argOr(args, 0, runtime.Undefined)
			var callArgs []*runtime.Value
			arr := argOr(args, 1, runtime.Undefined)
			if arr.Type == runtime.TypeObject && arr.Object != nil && arr.Object.OType == runtime.ObjTypeArray {
				callArgs = arr.Object.ArrayData
			}
			return in.callObject(target, thisArg, callArgs)
		})),
		Writable: true, Enumerable: false, Configurable: true,
	})
	fn.DefineProperty("bind", &runtime.Property{
		Value: runtime.NewObject(in.nativeFunc("bind", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
			return in.bindFunction(this.Object, args)
		})),
		Writable: true, Enumerable: false, Configurable: true,
	})
}

// bindFunction implements Function.prototype.bind: binding an already-
// bound function forwards to its original Target with its original
// BoundThis, appending the new call's bound arguments after the
// existing ones — bind never re-binds `this` a second time.
func (in *Interpreter) bindFunction(target *runtime.Object, args []*runtime.Value) (*runtime.Value, error) {
	thisArg := argOr(args, 0, runtime.Undefined)
	boundArgs := restArgs(args, 1)

	realTarget := target
	realThis := thisArg
	allBoundArgs := boundArgs
	if target.Script != nil && target.Script.IsBound() {
		realTarget = target.Script.Target
		realThis = target.Script.BoundThis
		allBoundArgs = append(append([]*runtime.Value{}, target.Script.BoundArgs...), boundArgs...)
	}

	sf := &runtime.ScriptFunction{
		Target:    realTarget,
		BoundThis: realThis,
		BoundArgs: allBoundArgs,
	}
	obj := &runtime.Object{
		OType:      runtime.ObjTypeFunction,
		Properties: make(map[string]*runtime.Property),
		Prototype:  in.FunctionPrototype,
		Script:     sf,
	}
	obj.Callable = func(this *runtime.Value, callArgs []*runtime.Value) (*runtime.Value, error) {
		return in.invokeScript(obj, this, callArgs)
	}
	// Bound functions are non-constructible: Constructor stays nil so
	// evalNew's Constructor == nil check rejects `new (fn.bind(...))()`
	// instead of forwarding to Target and discarding the new instance.
	name := "bound "
	if nameVal := realTarget.Get("name"); nameVal.Type == runtime.TypeString {
		name += nameVal.Str
	}
	obj.DefineProperty("name", &runtime.Property{Value: runtime.NewString(name), Writable: false, Enumerable: false, Configurable: true})
	in.installFunctionMethods(obj)
	return runtime.NewObject(obj), nil
}

// nativeFunc wraps a Go closure as a callable host Object — the same
// shape call/apply/bind and the defaults package's constructors use, so
// a native and a script function are indistinguishable from script.
func (in *Interpreter) nativeFunc(name string, length int, fn runtime.CallableFunc) *runtime.Object {
	obj := &runtime.Object{
		OType:      runtime.ObjTypeFunction,
		Properties: make(map[string]*runtime.Property),
		Prototype:  in.FunctionPrototype,
		Callable:   fn,
	}
	obj.DefineProperty("name", &runtime.Property{Value: runtime.NewString(name), Writable: false, Enumerable: false, Configurable: true})
	obj.DefineProperty("length", &runtime.Property{Value: runtime.NewNumber(float64(length)), Writable: false, Enumerable: false, Configurable: true})
	return obj
}

func argOr(args []*runtime.Value, i int, def *runtime.Value) *runtime.Value {
	if i < len(args) {
		return args[i]
	}
	return def
}

func restArgs(args []*runtime.Value, from int) []*runtime.Value {
	if from >= len(args) {
		return nil
	}
	return args[from:]
}
