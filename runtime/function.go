package runtime

import "github.com/badlogic/jailjs/ast"

// ScriptFunction is the closure data behind a function Object created
// from a FunctionDeclaration, FunctionExpression, or
// ArrowFunctionExpression. The interpreter owns evaluation; this
// package only carries what a call needs to re-enter it: the captured
// scope, the formal parameters, and the body.
//
// A function produced by .bind() sets Target/BoundThis/BoundArgs
// instead of Params/Body/Env — it has no body of its own, only a
// forwarding relationship to the function it wraps. Binding a bound
// function again must still forward to the original Target with the
// original BoundThis, never re-binding `this` a second time.
type ScriptFunction struct {
	Name    string
	Params  []*ast.Identifier
	Body    ast.Node // *ast.BlockStatement, or an Expression for an arrow's concise body
	Env     *Environment
	IsArrow bool

	Target    *Object
	BoundThis *Value
	BoundArgs []*Value
}

// IsBound reports whether this function object forwards to another via
// .bind() rather than carrying its own body.
func (f *ScriptFunction) IsBound() bool {
	return f.Target != nil
}
