package interpreter

import (
	"math"
	"strings"

	"github.com/badlogic/jailjs/ast"
	"github.com/badlogic/jailjs/runtime"
)

func (in *Interpreter) eval(e ast.Expression, env *runtime.Environment) (*runtime.Value, error) {
	if err := in.tick(); err != nil {
		return nil, err
	}

	switch n := e.(type) {
	case *ast.NumericLiteral:
		return runtime.NewNumber(n.Value), nil
	case *ast.StringLiteral:
		return runtime.NewString(n.Value), nil
	case *ast.BooleanLiteral:
		return runtime.NewBool(n.Value), nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.RegExpLiteral:
		return in.evalRegExpLiteral(n)
	case *ast.ThisExpression:
		v, ok := env.Resolve("this")
		if !ok {
			return runtime.Undefined, nil
		}
		return v, nil
	case *ast.Identifier:
		v, err := env.Get(n.Name)
		if err != nil {
			return nil, in.throwError("ReferenceError", "%s is not defined", n.Name)
		}
		return v, nil
	case *ast.ArrayExpression:
		return in.evalArrayExpression(n, env)
	case *ast.ObjectExpression:
		return in.evalObjectExpression(n, env)
	case *ast.FunctionExpression:
		return in.evalFunctionExpression(n, env)
	case *ast.ArrowFunctionExpression:
		return runtime.NewObject(in.makeArrowFunction(n, env)), nil
	case *ast.UnaryExpression:
		return in.evalUnary(n, env)
	case *ast.UpdateExpression:
		return in.evalUpdate(n, env)
	case *ast.BinaryExpression:
		return in.evalBinary(n, env)
	case *ast.LogicalExpression:
		return in.evalLogical(n, env)
	case *ast.AssignmentExpression:
		return in.evalAssignment(n, env)
	case *ast.SequenceExpression:
		var v *runtime.Value
		for _, expr := range n.Expressions {
			var err error
			v, err = in.eval(expr, env)
			if err != nil {
				return nil, err
			}
		}
		return v, nil
	case *ast.ConditionalExpression:
		test, err := in.eval(n.Test, env)
		if err != nil {
			return nil, err
		}
		if test.ToBoolean() {
			return in.eval(n.Consequent, env)
		}
		return in.eval(n.Alternate, env)
	case *ast.MemberExpression:
		_, v, err := in.evalMember(n, env)
		return v, err
	case *ast.CallExpression:
		return in.evalCall(n, env)
	case *ast.NewExpression:
		return in.evalNew(n, env)
	default:
		return nil, in.throwError("SyntaxError", "Unhandled node type: %s", e.Type())
	}
}

func (in *Interpreter) evalRegExpLiteral(n *ast.RegExpLiteral) (*runtime.Value, error) {
	obj := &runtime.Object{
		OType:      runtime.ObjTypeRegExp,
		Properties: make(map[string]*runtime.Property),
		Prototype:  in.ObjectPrototype,
		Internal:   map[string]interface{}{"source": n.Pattern, "flags": n.Flags},
	}
	obj.Set("source", runtime.NewString(n.Pattern))
	obj.Set("flags", runtime.NewString(n.Flags))
	return runtime.NewObject(obj), nil
}

func (in *Interpreter) evalArrayExpression(n *ast.ArrayExpression, env *runtime.Environment) (*runtime.Value, error) {
	elems := make([]*runtime.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		if el == nil {
			elems = append(elems, nil)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			sv, err := in.eval(spread.Argument, env)
			if err != nil {
				return nil, err
			}
			if sv.Type == runtime.TypeObject && sv.Object != nil && sv.Object.OType == runtime.ObjTypeArray {
				elems = append(elems, sv.Object.ArrayData...)
			}
			continue
		}
		v, err := in.eval(el, env)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return runtime.NewObject(runtime.NewArrayObject(in.ArrayPrototype, elems)), nil
}

func (in *Interpreter) evalObjectExpression(n *ast.ObjectExpression, env *runtime.Environment) (*runtime.Value, error) {
	obj := runtime.NewOrdinaryObject(in.ObjectPrototype)
	for _, p := range n.Properties {
		switch prop := p.(type) {
		case *ast.SpreadElement:
			sv, err := in.eval(prop.Argument, env)
			if err != nil {
				return nil, err
			}
			if sv.Type == runtime.TypeObject && sv.Object != nil {
				for _, k := range sv.Object.OwnEnumerableKeys() {
					obj.Set(k, sv.Object.Get(k))
				}
			}
		case *ast.ObjectProperty:
			key, err := in.propertyKeyName(prop.Key, prop.Computed, env)
			if err != nil {
				return nil, err
			}
			val, err := in.eval(prop.Value, env)
			if err != nil {
				return nil, err
			}
			switch prop.Kind {
			case "get":
				in.defineAccessor(obj, key, val, nil)
			case "set":
				in.defineAccessor(obj, key, nil, val)
			default:
				obj.Set(key, val)
			}
		case *ast.ObjectMethod:
			key, err := in.propertyKeyName(prop.Key, prop.Computed, env)
			if err != nil {
				return nil, err
			}
			fnObj := in.makeFunction(key, prop.Params, prop.Body, env, false)
			fnVal := runtime.NewObject(fnObj)
			switch prop.Kind {
			case "get":
				in.defineAccessor(obj, key, fnVal, nil)
			case "set":
				in.defineAccessor(obj, key, nil, fnVal)
			default:
				obj.Set(key, fnVal)
			}
		}
	}
	return runtime.NewObject(obj), nil
}

func (in *Interpreter) defineAccessor(obj *runtime.Object, key string, getter, setter *runtime.Value) {
	existing, ok := obj.Properties[key]
	if ok && existing.IsAccessor {
		if getter != nil {
			existing.Getter = getter
		}
		if setter != nil {
			existing.Setter = setter
		}
		return
	}
	obj.DefineProperty(key, &runtime.Property{
		IsAccessor:   true,
		Getter:       getter,
		Setter:       setter,
		Enumerable:   true,
		Configurable: true,
	})
}

func (in *Interpreter) propertyKeyName(key ast.Expression, computed bool, env *runtime.Environment) (string, error) {
	if !computed {
		switch k := key.(type) {
		case *ast.Identifier:
			return k.Name, nil
		case *ast.StringLiteral:
			return k.Value, nil
		case *ast.NumericLiteral:
			return runtime.NewNumber(k.Value).ToString(), nil
		}
	}
	v, err := in.eval(key, env)
	if err != nil {
		return "", err
	}
	return v.ToString(), nil
}

func (in *Interpreter) evalFunctionExpression(n *ast.FunctionExpression, env *runtime.Environment) (*runtime.Value, error) {
	name := ""
	if n.Id != nil {
		name = n.Id.Name
	}
	if n.Id == nil {
		fn := in.makeFunction(name, n.Params, n.Body, env, false)
		return runtime.NewObject(fn), nil
	}
	// Named function expression: its own name is bound inside a wrapper
	// scope so the function can reference itself recursively, without
	// leaking that binding into the enclosing scope.
	selfEnv := runtime.NewEnvironment(env, true)
	fn := in.makeFunction(name, n.Params, n.Body, selfEnv, false)
	fnVal := runtime.NewObject(fn)
	selfEnv.Declare(name, "const", fnVal)
	return fnVal, nil
}

// typeofValue reports "function" for any callable object, script or
// host-native, before falling back to ValueType.String.
func typeofValue(v *runtime.Value) string {
	if v.Type == runtime.TypeObject && v.Object != nil && v.Object.Callable != nil {
		return "function"
	}
	return v.Type.String()
}

func (in *Interpreter) evalUnary(n *ast.UnaryExpression, env *runtime.Environment) (*runtime.Value, error) {
	if n.Operator == "typeof" {
		if id, ok := n.Argument.(*ast.Identifier); ok {
			if v, found := env.Resolve(id.Name); found {
				return runtime.NewString(typeofValue(v)), nil
			}
			return runtime.NewString("undefined"), nil
		}
	}
	if n.Operator == "delete" {
		if mem, ok := n.Argument.(*ast.MemberExpression); ok {
			objVal, err := in.eval(mem.Object, env)
			if err != nil {
				return nil, err
			}
			key, err := in.memberKey(mem, env)
			if err != nil {
				return nil, err
			}
			if objVal.Type != runtime.TypeObject || objVal.Object == nil {
				return runtime.True, nil
			}
			return runtime.NewBool(objVal.Object.DeleteProperty(key)), nil
		}
		return runtime.True, nil
	}

	v, err := in.eval(n.Argument, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "typeof":
		return runtime.NewString(typeofValue(v)), nil
	case "void":
		return runtime.Undefined, nil
	case "!":
		return runtime.NewBool(!v.ToBoolean()), nil
	case "-":
		return runtime.NewNumber(-v.ToNumber()), nil
	case "+":
		return runtime.NewNumber(v.ToNumber()), nil
	case "~":
		return runtime.NewNumber(float64(^v.ToInt32())), nil
	default:
		return nil, in.throwError("SyntaxError", "Unhandled unary operator: %s", n.Operator)
	}
}

func (in *Interpreter) evalUpdate(n *ast.UpdateExpression, env *runtime.Environment) (*runtime.Value, error) {
	old, err := in.eval(n.Argument, env)
	if err != nil {
		return nil, err
	}
	oldNum := old.ToNumber()
	var newNum float64
	if n.Operator == "++" {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	newVal := runtime.NewNumber(newNum)
	if err := in.assignTo(n.Argument, newVal, env); err != nil {
		return nil, err
	}
	if n.Prefix {
		return newVal, nil
	}
	return runtime.NewNumber(oldNum), nil
}

func (in *Interpreter) evalLogical(n *ast.LogicalExpression, env *runtime.Environment) (*runtime.Value, error) {
	left, err := in.eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "&&":
		if !left.ToBoolean() {
			return left, nil
		}
		return in.eval(n.Right, env)
	case "||":
		if left.ToBoolean() {
			return left, nil
		}
		return in.eval(n.Right, env)
	default:
		return nil, in.throwError("SyntaxError", "Unhandled logical operator: %s", n.Operator)
	}
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpression, env *runtime.Environment) (*runtime.Value, error) {
	left, err := in.eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	return in.applyBinary(n.Operator, left, right)
}

func (in *Interpreter) applyBinary(op string, left, right *runtime.Value) (*runtime.Value, error) {
	switch op {
	case "+":
		if left.Type == runtime.TypeString || right.Type == runtime.TypeString ||
			left.Type == runtime.TypeObject || right.Type == runtime.TypeObject {
			return runtime.NewString(left.ToString() + right.ToString()), nil
		}
		return runtime.NewNumber(left.ToNumber() + right.ToNumber()), nil
	case "-":
		return runtime.NewNumber(left.ToNumber() - right.ToNumber()), nil
	case "*":
		return runtime.NewNumber(left.ToNumber() * right.ToNumber()), nil
	case "/":
		return runtime.NewNumber(left.ToNumber() / right.ToNumber()), nil
	case "%":
		return runtime.NewNumber(math.Mod(left.ToNumber(), right.ToNumber())), nil
	case "**":
		return runtime.NewNumber(math.Pow(left.ToNumber(), right.ToNumber())), nil
	case "==":
		return runtime.NewBool(runtime.AbstractEquals(left, right)), nil
	case "!=":
		return runtime.NewBool(!runtime.AbstractEquals(left, right)), nil
	case "===":
		return runtime.NewBool(runtime.StrictEquals(left, right)), nil
	case "!==":
		return runtime.NewBool(!runtime.StrictEquals(left, right)), nil
	case "<", ">", "<=", ">=":
		return in.compare(op, left, right)
	case "&":
		return runtime.NewNumber(float64(left.ToInt32() & right.ToInt32())), nil
	case "|":
		return runtime.NewNumber(float64(left.ToInt32() | right.ToInt32())), nil
	case "^":
		return runtime.NewNumber(float64(left.ToInt32() ^ right.ToInt32())), nil
	case "<<":
		return runtime.NewNumber(float64(left.ToInt32() << (uint32(right.ToInt32()) & 31))), nil
	case ">>":
		return runtime.NewNumber(float64(left.ToInt32() >> (uint32(right.ToInt32()) & 31))), nil
	case ">>>":
		return runtime.NewNumber(float64(left.ToUint32() >> (uint32(right.ToInt32()) & 31))), nil
	case "instanceof":
		return in.evalInstanceof(left, right)
	case "in":
		if right.Type != runtime.TypeObject || right.Object == nil {
			return nil, in.throwError("TypeError", "Cannot use 'in' operator to search for '%s' in non-object", left.ToString())
		}
		return runtime.NewBool(right.Object.HasProperty(left.ToString())), nil
	default:
		return nil, in.throwError("SyntaxError", "Unhandled binary operator: %s", op)
	}
}

func (in *Interpreter) compare(op string, left, right *runtime.Value) (*runtime.Value, error) {
	if left.Type == runtime.TypeString && right.Type == runtime.TypeString {
		var result bool
		switch op {
		case "<":
			result = left.Str < right.Str
		case ">":
			result = left.Str > right.Str
		case "<=":
			result = left.Str <= right.Str
		case ">=":
			result = left.Str >= right.Str
		}
		return runtime.NewBool(result), nil
	}
	ln, rn := left.ToNumber(), right.ToNumber()
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return runtime.False, nil
	}
	var result bool
	switch op {
	case "<":
		result = ln < rn
	case ">":
		result = ln > rn
	case "<=":
		result = ln <= rn
	case ">=":
		result = ln >= rn
	}
	return runtime.NewBool(result), nil
}

func (in *Interpreter) evalInstanceof(left, right *runtime.Value) (*runtime.Value, error) {
	if right.Type != runtime.TypeObject || right.Object == nil || right.Object.Callable == nil {
		return nil, in.throwError("TypeError", "Right-hand side of 'instanceof' is not callable")
	}
	if left.Type != runtime.TypeObject || left.Object == nil {
		return runtime.False, nil
	}
	protoVal := right.Object.Get("prototype")
	if protoVal.Type != runtime.TypeObject || protoVal.Object == nil {
		return runtime.False, nil
	}
	for cur := left.Object.Prototype; cur != nil; cur = cur.Prototype {
		if cur == protoVal.Object {
			return runtime.True, nil
		}
	}
	return runtime.False, nil
}

func (in *Interpreter) evalAssignment(n *ast.AssignmentExpression, env *runtime.Environment) (*runtime.Value, error) {
	if n.Operator == "=" {
		v, err := in.eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		if err := in.assignTo(n.Left, v, env); err != nil {
			return nil, err
		}
		return v, nil
	}
	op := strings.TrimSuffix(n.Operator, "=")
	cur, err := in.eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	result, err := in.applyBinary(op, cur, rhs)
	if err != nil {
		return nil, err
	}
	if err := in.assignTo(n.Left, result, env); err != nil {
		return nil, err
	}
	return result, nil
}

// assignTo writes v to the location an Identifier or MemberExpression
// denotes. Set on an unresolved identifier creates the binding in the
// frame where the assignment statement runs, not global — see
// DESIGN.md's Open Question decision; runtime.Environment.Set
// implements that fallback directly.
func (in *Interpreter) assignTo(target ast.Expression, v *runtime.Value, env *runtime.Environment) error {
	switch t := target.(type) {
	case *ast.Identifier:
		return env.Set(t.Name, v)
	case *ast.MemberExpression:
		objVal, err := in.eval(t.Object, env)
		if err != nil {
			return err
		}
		key, err := in.memberKey(t, env)
		if err != nil {
			return err
		}
		if objVal.Type != runtime.TypeObject || objVal.Object == nil {
			return in.throwError("TypeError", "Cannot set properties of %s (setting '%s')", objVal.ToString(), key)
		}
		objVal.Object.Set(key, v)
		return nil
	default:
		return in.throwError("SyntaxError", "Invalid assignment target")
	}
}

func (in *Interpreter) memberKey(n *ast.MemberExpression, env *runtime.Environment) (string, error) {
	if !n.Computed {
		id, ok := n.Property.(*ast.Identifier)
		if !ok {
			return "", in.throwError("SyntaxError", "Invalid member property")
		}
		return id.Name, nil
	}
	v, err := in.eval(n.Property, env)
	if err != nil {
		return "", err
	}
	return v.ToString(), nil
}

// evalMember returns the receiver object the access was made through
// (for a subsequent call's `this`) along with the resolved value,
// applying the reflective-access filter of §4.7 before the read.
func (in *Interpreter) evalMember(n *ast.MemberExpression, env *runtime.Environment) (*runtime.Value, *runtime.Value, error) {
	objVal, err := in.eval(n.Object, env)
	if err != nil {
		return nil, nil, err
	}
	key, err := in.memberKey(n, env)
	if err != nil {
		return nil, nil, err
	}
	if objVal.IsNullOrUndefined() {
		return nil, nil, in.throwError("TypeError", "Cannot read properties of %s (reading '%s')", objVal.ToString(), key)
	}
	if objVal.Type != runtime.TypeObject || objVal.Object == nil {
		// Primitive member access (e.g. "abc".length) still needs a
		// prototype to resolve against; without one it's simply undefined.
		return objVal, runtime.Undefined, nil
	}
	if blocked, replacement := in.filterReflectiveAccess(objVal.Object, key); blocked {
		return objVal, replacement, nil
	}
	return objVal, objVal.Object.Get(key), nil
}

func (in *Interpreter) evalCall(n *ast.CallExpression, env *runtime.Environment) (*runtime.Value, error) {
	var thisVal *runtime.Value = runtime.Undefined
	var calleeVal *runtime.Value
	var err error

	if mem, ok := n.Callee.(*ast.MemberExpression); ok {
		thisVal, calleeVal, err = in.evalMember(mem, env)
		if err != nil {
			return nil, err
		}
	} else {
		calleeVal, err = in.eval(n.Callee, env)
		if err != nil {
			return nil, err
		}
	}

	args, err := in.evalArguments(n.Arguments, env)
	if err != nil {
		return nil, err
	}

	if calleeVal.Type != runtime.TypeObject || calleeVal.Object == nil || calleeVal.Object.Callable == nil {
		return nil, in.throwError("TypeError", "%s is not a function", describeCallee(n.Callee))
	}
	return in.callObject(calleeVal.Object, thisVal, args)
}

func describeCallee(e ast.Expression) string {
	switch c := e.(type) {
	case *ast.Identifier:
		return c.Name
	case *ast.MemberExpression:
		if id, ok := c.Property.(*ast.Identifier); ok && !c.Computed {
			return describeCallee(c.Object) + "." + id.Name
		}
	}
	return "value"
}

func (in *Interpreter) evalArguments(argExprs []ast.Expression, env *runtime.Environment) ([]*runtime.Value, error) {
	args := make([]*runtime.Value, 0, len(argExprs))
	for _, a := range argExprs {
		if spread, ok := a.(*ast.SpreadElement); ok {
			sv, err := in.eval(spread.Argument, env)
			if err != nil {
				return nil, err
			}
			if sv.Type == runtime.TypeObject && sv.Object != nil && sv.Object.OType == runtime.ObjTypeArray {
				args = append(args, sv.Object.ArrayData...)
			}
			continue
		}
		v, err := in.eval(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// callObject invokes a callable Object, converting a host-side Go error
// into the corresponding script exception; a *scriptError from a
// reentrant script call passes through unchanged so the original
// throw's value survives crossing the host bridge.
func (in *Interpreter) callObject(obj *runtime.Object, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	v, err := obj.Callable(this, args)
	if err == nil {
		return v, nil
	}
	if _, ok := asScriptError(err); ok {
		return nil, err
	}
	return nil, in.throwError("Error", "%s", err.Error())
}

func (in *Interpreter) evalNew(n *ast.NewExpression, env *runtime.Environment) (*runtime.Value, error) {
	calleeVal, err := in.eval(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := in.evalArguments(n.Arguments, env)
	if err != nil {
		return nil, err
	}
	if calleeVal.Type != runtime.TypeObject || calleeVal.Object == nil || calleeVal.Object.Constructor == nil {
		return nil, in.throwError("TypeError", "%s is not a constructor", describeCallee(n.Callee))
	}
	return in.construct(calleeVal.Object, args)
}

// construct implements `new`: a fresh instance prototype-linked to the
// constructor's own "prototype" property, invoked with that instance as
// `this`; if the constructor returns an object, that replaces the
// instance, but a primitive result (including null, which is primitive
// and therefore discarded here) is ignored in favor of the instance —
// see DESIGN.md's Open Question decision on null's classification.
func (in *Interpreter) construct(ctor *runtime.Object, args []*runtime.Value) (*runtime.Value, error) {
	protoVal := ctor.Get("prototype")
	var proto *runtime.Object
	if protoVal.Type == runtime.TypeObject {
		proto = protoVal.Object
	} else {
		proto = in.ObjectPrototype
	}
	instance := runtime.NewOrdinaryObject(proto)
	instanceVal := runtime.NewObject(instance)

	result, err := ctor.Constructor(instanceVal, args)
	if err != nil {
		if _, ok := asScriptError(err); !ok {
			err = in.throwError("Error", "%s", err.Error())
		}
		return nil, err
	}
	if result != nil && result.Type == runtime.TypeObject && result.Object != nil {
		return result, nil
	}
	return instanceVal, nil
}
