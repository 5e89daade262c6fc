package interpreter

import (
	"github.com/badlogic/jailjs/ast"
	"github.com/badlogic/jailjs/runtime"
)

// hoist runs the pre-pass §4.3 describes before a function or program
// body executes any statement: var names (collected recursively through
// nested blocks, loops, switches, try/catch/finally, and labels, but
// never across a nested function boundary) are pre-declared as
// Undefined at the function frame, and function declarations at the
// immediate statement-list level are declared and bound to their
// function value — so a reference to either, before the declaring
// statement runs, observes Undefined (var) or the function itself
// (function declaration) rather than a ReferenceError.
func (in *Interpreter) hoist(body []ast.Statement, env *runtime.Environment) error {
	fnScope := env.GetFunctionScope()
	collectVarNames(body, fnScope)
	return in.hoistFunctionDeclarations(body, env)
}

// collectVarNames walks recursively into nested statement bodies
// (blocks, if/else, loops, switch cases, try/catch/finally, labels) but
// stops at a FunctionDeclaration/FunctionExpression boundary, since
// that function's own var names belong to its own frame, hoisted when
// it is called.
func collectVarNames(stmts []ast.Statement, fnScope *runtime.Environment) {
	for _, s := range stmts {
		collectVarNamesStmt(s, fnScope)
	}
}

func collectVarNamesStmt(s ast.Statement, fnScope *runtime.Environment) {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		if n.Kind == "var" {
			for _, d := range n.Declarations {
				fnScope.DeclareIfAbsent(d.Id.Name)
			}
		}
	case *ast.BlockStatement:
		collectVarNames(n.Body, fnScope)
	case *ast.IfStatement:
		collectVarNamesStmt(n.Consequent, fnScope)
		if n.Alternate != nil {
			collectVarNamesStmt(n.Alternate, fnScope)
		}
	case *ast.WhileStatement:
		collectVarNamesStmt(n.Body, fnScope)
	case *ast.DoWhileStatement:
		collectVarNamesStmt(n.Body, fnScope)
	case *ast.ForStatement:
		if decl, ok := n.Init.(*ast.VariableDeclaration); ok && decl.Kind == "var" {
			for _, d := range decl.Declarations {
				fnScope.DeclareIfAbsent(d.Id.Name)
			}
		}
		collectVarNamesStmt(n.Body, fnScope)
	case *ast.ForInStatement:
		if decl, ok := n.Left.(*ast.VariableDeclaration); ok && decl.Kind == "var" {
			for _, d := range decl.Declarations {
				fnScope.DeclareIfAbsent(d.Id.Name)
			}
		}
		collectVarNamesStmt(n.Body, fnScope)
	case *ast.SwitchStatement:
		for _, c := range n.Cases {
			collectVarNames(c.Consequent, fnScope)
		}
	case *ast.TryStatement:
		collectVarNames(n.Block.Body, fnScope)
		if n.Handler != nil {
			collectVarNames(n.Handler.Body.Body, fnScope)
		}
		if n.Finalizer != nil {
			collectVarNames(n.Finalizer.Body, fnScope)
		}
	case *ast.LabeledStatement:
		collectVarNamesStmt(n.Body, fnScope)
	case *ast.WithStatement:
		collectVarNamesStmt(n.Body, fnScope)
	case *ast.FunctionDeclaration:
		// Hoisted separately by hoistFunctionDeclarations; its own body
		// is a new function frame, not walked here.
	}
}

// hoistFunctionDeclarations binds each FunctionDeclaration that is an
// immediate statement of body to its function value, closing over env
// and binding it in env's nearest function frame. hoist runs it over a
// function or program body; execStatements runs it again over every
// block body it enters, so a block-nested declaration is bound in the
// enclosing function frame when its block is entered.
func (in *Interpreter) hoistFunctionDeclarations(body []ast.Statement, env *runtime.Environment) error {
	for _, s := range body {
		decl, ok := s.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		fn := in.makeFunction(decl.Id.Name, decl.Params, decl.Body, env, false)
		env.GetFunctionScope().SetInCurrentScope(decl.Id.Name, runtime.NewObject(fn))
	}
	return nil
}
