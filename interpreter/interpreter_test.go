package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badlogic/jailjs/ast"
	"github.com/badlogic/jailjs/runtime"
)

func num(n float64) *ast.NumericLiteral { return &ast.NumericLiteral{Value: n} }
func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }
func exprStmt(e ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: e}
}
func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Body: stmts}
}
func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Body: stmts}
}

func evalProgram(t *testing.T, p *ast.Program) (*runtime.Value, error) {
	t.Helper()
	in := New()
	return in.Evaluate(p)
}

// Arithmetic precedence: 2 + 3 * 4 === 14.
func TestArithmeticPrecedence(t *testing.T) {
	expr := &ast.BinaryExpression{
		Operator: "+",
		Left:     num(2),
		Right: &ast.BinaryExpression{
			Operator: "*",
			Left:     num(3),
			Right:    num(4),
		},
	}
	v, err := evalProgram(t, program(exprStmt(expr)))
	require.NoError(t, err)
	assert.Equal(t, float64(14), v.Number)
}

// function fib(n) { if (n < 2) return n; return fib(n-1) + fib(n-2); } fib(10)
func TestFibonacci(t *testing.T) {
	n := ident("n")
	fibCall := func(arg ast.Expression) *ast.CallExpression {
		return &ast.CallExpression{Callee: ident("fib"), Arguments: []ast.Expression{arg}}
	}
	body := block(
		&ast.IfStatement{
			Test:       &ast.BinaryExpression{Operator: "<", Left: n, Right: num(2)},
			Consequent: &ast.ReturnStatement{Argument: n},
		},
		&ast.ReturnStatement{Argument: &ast.BinaryExpression{
			Operator: "+",
			Left:     fibCall(&ast.BinaryExpression{Operator: "-", Left: n, Right: num(1)}),
			Right:    fibCall(&ast.BinaryExpression{Operator: "-", Left: n, Right: num(2)}),
		}},
	)
	fibDecl := &ast.FunctionDeclaration{Id: ident("fib"), Params: []*ast.Identifier{n}, Body: body}
	prog := program(fibDecl, exprStmt(fibCall(num(10))))
	v, err := evalProgram(t, prog)
	require.NoError(t, err)
	assert.Equal(t, float64(55), v.Number)
}

// function makeCounter() { var c = 0; return function() { c = c + 1; return c; }; }
// var next = makeCounter(); next(); next(); next() === 3
func TestCounterClosure(t *testing.T) {
	inner := &ast.FunctionExpression{
		Body: block(
			&ast.ExpressionStatement{Expression: &ast.AssignmentExpression{
				Operator: "=", Left: ident("c"),
				Right: &ast.BinaryExpression{Operator: "+", Left: ident("c"), Right: num(1)},
			}},
			&ast.ReturnStatement{Argument: ident("c")},
		),
	}
	makeCounter := &ast.FunctionDeclaration{
		Id: ident("makeCounter"),
		Body: block(
			&ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
				{Id: ident("c"), Init: num(0)},
			}},
			&ast.ReturnStatement{Argument: inner},
		),
	}
	callNext := exprStmt(&ast.CallExpression{Callee: ident("next")})
	prog := program(
		makeCounter,
		&ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
			{Id: ident("next"), Init: &ast.CallExpression{Callee: ident("makeCounter")}},
		}},
		callNext, callNext,
		exprStmt(&ast.CallExpression{Callee: ident("next")}),
	)
	v, err := evalProgram(t, prog)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v.Number)
}

// try { throw "boom"; } catch (e) { var s = e; } finally { s = s + "!"; } s
func TestTryCatchFinallyAccumulates(t *testing.T) {
	tryStmt := &ast.TryStatement{
		Block: block(&ast.ThrowStatement{Argument: &ast.StringLiteral{Value: "boom"}}),
		Handler: &ast.CatchClause{
			Param: ident("e"),
			Body: block(&ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
				{Id: ident("s"), Init: ident("e")},
			}}),
		},
		Finalizer: block(exprStmt(&ast.AssignmentExpression{
			Operator: "=", Left: ident("s"),
			Right: &ast.BinaryExpression{Operator: "+", Left: ident("s"), Right: &ast.StringLiteral{Value: "!"}},
		})),
	}
	prog := program(tryStmt, exprStmt(ident("s")))
	v, err := evalProgram(t, prog)
	require.NoError(t, err)
	assert.Equal(t, "boom!", v.Str)
}

// outer: for (var i = 0; i < 5; i = i + 1) { if (i === 3) break outer; }  i === 3
func TestLabeledBreak(t *testing.T) {
	loop := &ast.ForStatement{
		Init: &ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
			{Id: ident("i"), Init: num(0)},
		}},
		Test:   &ast.BinaryExpression{Operator: "<", Left: ident("i"), Right: num(5)},
		Update: &ast.AssignmentExpression{Operator: "=", Left: ident("i"), Right: &ast.BinaryExpression{Operator: "+", Left: ident("i"), Right: num(1)}},
		Body: block(&ast.IfStatement{
			Test:       &ast.BinaryExpression{Operator: "===", Left: ident("i"), Right: num(3)},
			Consequent: &ast.BreakStatement{Label: ident("outer")},
		}),
	}
	labeled := &ast.LabeledStatement{Label: ident("outer"), Body: loop}
	prog := program(labeled, exprStmt(ident("i")))
	v, err := evalProgram(t, prog)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v.Number)
}

// Operation-count guard aborts a runaway loop.
func TestMaxOpsTimeout(t *testing.T) {
	loop := &ast.WhileStatement{Test: &ast.BooleanLiteral{Value: true}, Body: block()}
	in := New(WithMaxOps(50))
	_, err := in.Evaluate(program(loop))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Execution timeout")
}

// eval() fails with a stable error when no ParseFunc is wired.
func TestEvalWithoutParseFails(t *testing.T) {
	in := New()
	_, err := in.EvalSource("1+1", in.Global())
	require.Error(t, err)
}

// eval() succeeds once a ParseFunc is wired.
func TestEvalWithParse(t *testing.T) {
	in := New(WithParse(func(source string) (*ast.Program, error) {
		return program(exprStmt(num(42))), nil
	}))
	v, err := in.EvalSource("anything", in.Global())
	require.NoError(t, err)
	assert.Equal(t, float64(42), v.Number)
}

// The reflective-access filter blocks reads of .constructor when it
// resolves to a registered named host constructor.
func TestReflectiveFilterBlocksConstructorRead(t *testing.T) {
	in := New()
	ctor := runtime.NewFunctionObject(nil, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.Undefined, nil
	})
	in.RegisterConstructor("Array", ctor)
	obj := runtime.NewOrdinaryObject(nil)
	obj.DefineProperty("constructor", &runtime.Property{Value: runtime.NewObject(ctor), Enumerable: true, Writable: true, Configurable: true})

	blocked, val := in.filterReflectiveAccess(obj, "constructor")
	assert.True(t, blocked)
	assert.Equal(t, runtime.Undefined, val)
}

// __proto__ reads are always blocked, regardless of any actual
// prototype link on the object.
func TestReflectiveFilterBlocksProtoRead(t *testing.T) {
	in := New()
	obj := runtime.NewOrdinaryObject(runtime.NewOrdinaryObject(nil))

	blocked, val := in.filterReflectiveAccess(obj, "__proto__")
	assert.True(t, blocked)
	assert.Equal(t, runtime.Undefined, val)
}

// "prototype" is blocked on a non-function object but left alone on a
// function, whose own "prototype" data property is not filtered.
func TestReflectiveFilterBlocksPrototypeOnNonFunctionOnly(t *testing.T) {
	in := New()
	obj := runtime.NewOrdinaryObject(nil)
	obj.DefineProperty("prototype", &runtime.Property{Value: runtime.NewString("nope"), Enumerable: true, Writable: true, Configurable: true})
	blocked, val := in.filterReflectiveAccess(obj, "prototype")
	assert.True(t, blocked)
	assert.Equal(t, runtime.Undefined, val)

	fn := runtime.NewFunctionObject(in.FunctionPrototype, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.Undefined, nil
	})
	fn.DefineProperty("prototype", &runtime.Property{Value: runtime.NewObject(runtime.NewOrdinaryObject(nil)), Enumerable: false, Writable: true, Configurable: false})
	blocked, _ = in.filterReflectiveAccess(fn, "prototype")
	assert.False(t, blocked)
}

// typeof reports "function" for both script and native callables, not
// the "object" a bare ValueType.String() would give every TypeObject.
func TestTypeofReportsFunctionForCallables(t *testing.T) {
	fnDecl := &ast.FunctionDeclaration{Id: ident("f"), Body: block()}
	prog := program(fnDecl,
		exprStmt(&ast.UnaryExpression{Operator: "typeof", Argument: ident("f")}),
	)
	v, err := evalProgram(t, prog)
	require.NoError(t, err)
	assert.Equal(t, "function", v.Str)
}

// typeof on a non-identifier expression (the generic-eval path) also
// special-cases callables.
func TestTypeofGenericExpressionReportsFunction(t *testing.T) {
	fnExpr := &ast.FunctionExpression{Body: block()}
	prog := program(exprStmt(&ast.UnaryExpression{Operator: "typeof", Argument: fnExpr}))
	v, err := evalProgram(t, prog)
	require.NoError(t, err)
	assert.Equal(t, "function", v.Str)
}

func TestTypeofPrimitivesAndObjects(t *testing.T) {
	prog := program(
		exprStmt(&ast.UnaryExpression{Operator: "typeof", Argument: num(1)}),
		exprStmt(&ast.UnaryExpression{Operator: "typeof", Argument: &ast.StringLiteral{Value: "s"}}),
		exprStmt(&ast.UnaryExpression{Operator: "typeof", Argument: &ast.ObjectExpression{}}),
	)
	in := New()
	for i, want := range []string{"number", "string", "object"} {
		v, err := in.Evaluate(&ast.Program{Body: []ast.Statement{prog.Body[i]}})
		require.NoError(t, err)
		assert.Equal(t, want, v.Str)
	}
}

// Binding a function never makes it constructible: `new` on a bound
// function must throw, not silently forward `this` to the unbound
// original and discard the freshly built instance.
func TestNewOnBoundFunctionThrows(t *testing.T) {
	ctorDecl := &ast.FunctionDeclaration{
		Id: ident("C"),
		Body: block(exprStmt(&ast.AssignmentExpression{
			Operator: "=",
			Left:     &ast.MemberExpression{Object: &ast.ThisExpression{}, Property: ident("tag"), Computed: false},
			Right:    num(1),
		})),
	}
	bound := &ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
		{Id: ident("Bound"), Init: &ast.CallExpression{
			Callee:    &ast.MemberExpression{Object: ident("C"), Property: ident("bind"), Computed: false},
			Arguments: []ast.Expression{&ast.NullLiteral{}},
		}},
	}}
	prog := program(ctorDecl, bound, exprStmt(&ast.NewExpression{Callee: ident("Bound")}))
	_, err := evalProgram(t, prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a constructor")
}

// A bound function still calls through to the original Target with the
// bound `this`, it just can't be used as a constructor.
func TestBoundFunctionForwardsCallToTarget(t *testing.T) {
	greet := &ast.FunctionDeclaration{
		Id:   ident("greet"),
		Body: block(&ast.ReturnStatement{Argument: &ast.MemberExpression{Object: &ast.ThisExpression{}, Property: ident("name"), Computed: false}}),
	}
	receiver := &ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
		{Id: ident("r"), Init: &ast.ObjectExpression{Properties: []ast.ObjectExpressionProperty{
			&ast.ObjectProperty{Key: &ast.StringLiteral{Value: "name"}, Value: &ast.StringLiteral{Value: "ok"}, Kind: "init"},
		}}},
	}}
	bound := &ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
		{Id: ident("bg"), Init: &ast.CallExpression{
			Callee:    &ast.MemberExpression{Object: ident("greet"), Property: ident("bind"), Computed: false},
			Arguments: []ast.Expression{ident("r")},
		}},
	}}
	prog := program(greet, receiver, bound, exprStmt(&ast.CallExpression{Callee: ident("bg")}))
	v, err := evalProgram(t, prog)
	require.NoError(t, err)
	assert.Equal(t, "ok", v.Str)
}

// instanceof walks the prototype chain against the constructor's own
// "prototype" property.
func TestInstanceofWalksPrototypeChain(t *testing.T) {
	ctorDecl := &ast.FunctionDeclaration{Id: ident("C"), Body: block()}
	prog := program(
		ctorDecl,
		&ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
			{Id: ident("c"), Init: &ast.NewExpression{Callee: ident("C")}},
		}},
		exprStmt(&ast.BinaryExpression{Operator: "instanceof", Left: ident("c"), Right: ident("C")}),
	)
	v, err := evalProgram(t, prog)
	require.NoError(t, err)
	assert.True(t, v.ToBoolean())
}

// A named function expression can reference itself by name recursively
// without that name leaking into the enclosing scope.
func TestNamedFunctionExpressionSelfReference(t *testing.T) {
	selfCall := &ast.CallExpression{Callee: ident("fact"), Arguments: []ast.Expression{
		&ast.BinaryExpression{Operator: "-", Left: ident("n"), Right: num(1)},
	}}
	nfe := &ast.FunctionExpression{
		Id:     ident("fact"),
		Params: []*ast.Identifier{ident("n")},
		Body: block(&ast.IfStatement{
			Test:       &ast.BinaryExpression{Operator: "<=", Left: ident("n"), Right: num(1)},
			Consequent: &ast.ReturnStatement{Argument: num(1)},
			Alternate: &ast.ReturnStatement{Argument: &ast.BinaryExpression{
				Operator: "*", Left: ident("n"), Right: selfCall,
			}},
		}),
	}
	assign := &ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
		{Id: ident("f"), Init: nfe},
	}}
	prog := program(assign,
		exprStmt(&ast.CallExpression{Callee: ident("f"), Arguments: []ast.Expression{num(5)}}),
		exprStmt(&ast.UnaryExpression{Operator: "typeof", Argument: ident("fact")}),
	)
	in := New()
	v, err := in.Evaluate(&ast.Program{Body: prog.Body[:2]})
	require.NoError(t, err)
	assert.Equal(t, float64(120), v.Number)

	// "fact" must not have leaked into the enclosing scope: typeof on an
	// unresolved identifier reports "undefined" rather than throwing.
	tv, err := in.Evaluate(&ast.Program{Body: []ast.Statement{prog.Body[2]}})
	require.NoError(t, err)
	assert.Equal(t, "undefined", tv.Str)
}
