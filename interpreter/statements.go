package interpreter

import (
	"github.com/badlogic/jailjs/ast"
	"github.com/badlogic/jailjs/runtime"
)

// execStatement evaluates one statement, returning its completion value
// (an ExpressionStatement's value; block, if, loop, switch, try and
// labeled statements pass on the last value their body produced; other
// statements return nil),
// any non-local control-flow signal it produced or is propagating, and
// an error — a *scriptError for a thrown value, anything else for a
// host/engine fault.
func (in *Interpreter) execStatement(s ast.Statement, env *runtime.Environment) (*runtime.Value, signal, error) {
	if err := in.tick(); err != nil {
		return nil, noSignal, err
	}

	switch n := s.(type) {
	case *ast.EmptyStatement, *ast.FunctionDeclaration, *ast.Directive:
		// Function declarations were already bound by the hoisting
		// pre-pass; directives are read-and-ignored (§1).
		return nil, noSignal, nil

	case *ast.ExpressionStatement:
		v, err := in.eval(n.Expression, env)
		if err != nil {
			return nil, noSignal, err
		}
		return v, noSignal, nil

	case *ast.VariableDeclaration:
		return nil, noSignal, in.execVariableDeclaration(n, env)

	case *ast.BlockStatement:
		return in.execBlock(n, env)

	case *ast.IfStatement:
		test, err := in.eval(n.Test, env)
		if err != nil {
			return nil, noSignal, err
		}
		if test.ToBoolean() {
			return in.execStatement(n.Consequent, env)
		}
		if n.Alternate != nil {
			return in.execStatement(n.Alternate, env)
		}
		return nil, noSignal, nil

	case *ast.WhileStatement:
		return in.execWhile(n, env, "")

	case *ast.DoWhileStatement:
		return in.execDoWhile(n, env, "")

	case *ast.ForStatement:
		return in.execFor(n, env, "")

	case *ast.ForInStatement:
		return in.execForIn(n, env, "")

	case *ast.SwitchStatement:
		return in.execSwitch(n, env, "")

	case *ast.BreakStatement:
		label := ""
		if n.Label != nil {
			label = n.Label.Name
		}
		return nil, breakSignal(label), nil

	case *ast.ContinueStatement:
		label := ""
		if n.Label != nil {
			label = n.Label.Name
		}
		return nil, continueSignal(label), nil

	case *ast.ReturnStatement:
		var v *runtime.Value = runtime.Undefined
		if n.Argument != nil {
			var err error
			v, err = in.eval(n.Argument, env)
			if err != nil {
				return nil, noSignal, err
			}
		}
		return nil, returnSignal(v), nil

	case *ast.LabeledStatement:
		return in.execLabeled(n, env)

	case *ast.ThrowStatement:
		v, err := in.eval(n.Argument, env)
		if err != nil {
			return nil, noSignal, err
		}
		return nil, noSignal, throwValue(v)

	case *ast.TryStatement:
		return in.execTry(n, env)

	case *ast.WithStatement:
		return nil, noSignal, in.throwError("SyntaxError", "with statement is not supported")

	default:
		return nil, noSignal, in.throwError("SyntaxError", "Unhandled node type: %s", s.Type())
	}
}

func (in *Interpreter) execVariableDeclaration(n *ast.VariableDeclaration, env *runtime.Environment) error {
	for _, d := range n.Declarations {
		var val *runtime.Value = runtime.Undefined
		if d.Init != nil {
			v, err := in.eval(d.Init, env)
			if err != nil {
				return err
			}
			val = v
		}
		switch n.Kind {
		case "var":
			if d.Init != nil {
				env.GetFunctionScope().SetInCurrentScope(d.Id.Name, val)
			} else {
				// Already pre-declared as Undefined by hoisting; a bare
				// `var x;` must not clobber a value a prior statement set.
				env.GetFunctionScope().DeclareIfAbsent(d.Id.Name)
			}
		default: // "let", "const"
			if err := env.Declare(d.Id.Name, n.Kind, val); err != nil {
				return err
			}
		}
	}
	return nil
}

// execBlock runs a block in a fresh block frame, chained under env.
func (in *Interpreter) execBlock(n *ast.BlockStatement, env *runtime.Environment) (*runtime.Value, signal, error) {
	blockEnv := runtime.NewEnvironment(env, true)
	return in.execStatements(n.Body, blockEnv)
}

func (in *Interpreter) execStatements(body []ast.Statement, env *runtime.Environment) (*runtime.Value, signal, error) {
	if err := in.hoistFunctionDeclarations(body, env); err != nil {
		return nil, noSignal, err
	}
	var completion *runtime.Value
	for _, stmt := range body {
		v, sig, err := in.execStatement(stmt, env)
		if err != nil {
			return nil, noSignal, err
		}
		if v != nil {
			completion = v
		}
		if sig.kind != sigNone {
			return completion, sig, nil
		}
	}
	return completion, noSignal, nil
}

func (in *Interpreter) execWhile(n *ast.WhileStatement, env *runtime.Environment, label string) (*runtime.Value, signal, error) {
	var completion *runtime.Value
	for {
		if err := in.tick(); err != nil {
			return nil, noSignal, err
		}
		test, err := in.eval(n.Test, env)
		if err != nil {
			return nil, noSignal, err
		}
		if !test.ToBoolean() {
			return completion, noSignal, nil
		}
		v, sig, err := in.execStatement(n.Body, env)
		if err != nil {
			return nil, noSignal, err
		}
		if v != nil {
			completion = v
		}
		if stop, sig2, err2 := handleLoopSignal(sig, label); err2 != nil || stop {
			return completion, sig2, err2
		}
	}
}

func (in *Interpreter) execDoWhile(n *ast.DoWhileStatement, env *runtime.Environment, label string) (*runtime.Value, signal, error) {
	var completion *runtime.Value
	for {
		if err := in.tick(); err != nil {
			return nil, noSignal, err
		}
		v, sig, err := in.execStatement(n.Body, env)
		if err != nil {
			return nil, noSignal, err
		}
		if v != nil {
			completion = v
		}
		if stop, sig2, err2 := handleLoopSignal(sig, label); err2 != nil || stop {
			return completion, sig2, err2
		}
		test, err := in.eval(n.Test, env)
		if err != nil {
			return nil, noSignal, err
		}
		if !test.ToBoolean() {
			return completion, noSignal, nil
		}
	}
}

func (in *Interpreter) execFor(n *ast.ForStatement, env *runtime.Environment, label string) (*runtime.Value, signal, error) {
	forEnv := runtime.NewEnvironment(env, true)
	if n.Init != nil {
		switch init := n.Init.(type) {
		case *ast.VariableDeclaration:
			if err := in.execVariableDeclaration(init, forEnv); err != nil {
				return nil, noSignal, err
			}
		case ast.Expression:
			if _, err := in.eval(init, forEnv); err != nil {
				return nil, noSignal, err
			}
		}
	}
	var completion *runtime.Value
	for {
		if err := in.tick(); err != nil {
			return nil, noSignal, err
		}
		if n.Test != nil {
			test, err := in.eval(n.Test, forEnv)
			if err != nil {
				return nil, noSignal, err
			}
			if !test.ToBoolean() {
				return completion, noSignal, nil
			}
		}
		v, sig, err := in.execStatement(n.Body, forEnv)
		if err != nil {
			return nil, noSignal, err
		}
		if v != nil {
			completion = v
		}
		if stop, sig2, err2 := handleLoopSignal(sig, label); err2 != nil || stop {
			return completion, sig2, err2
		}
		if n.Update != nil {
			if _, err := in.eval(n.Update, forEnv); err != nil {
				return nil, noSignal, err
			}
		}
	}
}

func (in *Interpreter) execForIn(n *ast.ForInStatement, env *runtime.Environment, label string) (*runtime.Value, signal, error) {
	right, err := in.eval(n.Right, env)
	if err != nil {
		return nil, noSignal, err
	}
	if right.IsNullOrUndefined() {
		return nil, noSignal, nil
	}
	obj := right.Object
	if right.Type != runtime.TypeObject || obj == nil {
		return nil, noSignal, nil
	}

	bindName := func(loopEnv *runtime.Environment, key string) error {
		switch left := n.Left.(type) {
		case *ast.VariableDeclaration:
			if left.Kind == "var" {
				loopEnv.GetFunctionScope().SetInCurrentScope(left.Declarations[0].Id.Name, runtime.NewString(key))
			} else {
				if err := loopEnv.Declare(left.Declarations[0].Id.Name, left.Kind, runtime.NewString(key)); err != nil {
					return err
				}
			}
		case ast.Expression:
			return in.assignTo(left, runtime.NewString(key), loopEnv)
		}
		return nil
	}

	var completion *runtime.Value
	seen := make(map[string]bool)
	for cur := obj; cur != nil; cur = cur.Prototype {
		for _, key := range cur.OwnEnumerableKeys() {
			if seen[key] {
				continue
			}
			seen[key] = true
			if err := in.tick(); err != nil {
				return nil, noSignal, err
			}
			loopEnv := runtime.NewEnvironment(env, true)
			if err := bindName(loopEnv, key); err != nil {
				return nil, noSignal, err
			}
			v, sig, err := in.execStatement(n.Body, loopEnv)
			if err != nil {
				return nil, noSignal, err
			}
			if v != nil {
				completion = v
			}
			if stop, sig2, err2 := handleLoopSignal(sig, label); err2 != nil || stop {
				return completion, sig2, err2
			}
		}
	}
	return completion, noSignal, nil
}

// handleLoopSignal interprets a signal a loop body produced: an
// unlabeled or same-label break/continue is consumed here (stop==true
// for break, stop==false with the loop continuing for continue);
// anything else (return, or break/continue addressed to an outer
// label) is reported back to the caller via stop==true, sig2 set to
// propagate further up.
func handleLoopSignal(sig signal, label string) (stop bool, sig2 signal, err error) {
	switch sig.kind {
	case sigNone:
		return false, noSignal, nil
	case sigBreak:
		if sig.label == "" || sig.label == label {
			return true, noSignal, nil
		}
		return true, sig, nil
	case sigContinue:
		if sig.label == "" || sig.label == label {
			return false, noSignal, nil
		}
		return true, sig, nil
	case sigReturn:
		return true, sig, nil
	}
	return false, noSignal, nil
}

func (in *Interpreter) execSwitch(n *ast.SwitchStatement, env *runtime.Environment, label string) (*runtime.Value, signal, error) {
	disc, err := in.eval(n.Discriminant, env)
	if err != nil {
		return nil, noSignal, err
	}
	switchEnv := runtime.NewEnvironment(env, true)

	matchIdx := -1
	defaultIdx := -1
	for i, c := range n.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		tv, err := in.eval(c.Test, switchEnv)
		if err != nil {
			return nil, noSignal, err
		}
		if runtime.StrictEquals(disc, tv) {
			matchIdx = i
			break
		}
	}
	if matchIdx == -1 {
		matchIdx = defaultIdx
	}
	if matchIdx == -1 {
		return nil, noSignal, nil
	}

	var completion *runtime.Value
	for i := matchIdx; i < len(n.Cases); i++ {
		v, sig, err := in.execStatements(n.Cases[i].Consequent, switchEnv)
		if err != nil {
			return nil, noSignal, err
		}
		if v != nil {
			completion = v
		}
		if sig.kind == sigBreak && (sig.label == "" || sig.label == label) {
			return completion, noSignal, nil
		}
		if sig.kind != sigNone {
			return completion, sig, nil
		}
	}
	return completion, noSignal, nil
}

func (in *Interpreter) execLabeled(n *ast.LabeledStatement, env *runtime.Environment) (*runtime.Value, signal, error) {
	label := n.Label.Name
	var v *runtime.Value
	var sig signal
	var err error

	switch body := n.Body.(type) {
	case *ast.WhileStatement:
		v, sig, err = in.execWhile(body, env, label)
	case *ast.DoWhileStatement:
		v, sig, err = in.execDoWhile(body, env, label)
	case *ast.ForStatement:
		v, sig, err = in.execFor(body, env, label)
	case *ast.ForInStatement:
		v, sig, err = in.execForIn(body, env, label)
	case *ast.SwitchStatement:
		v, sig, err = in.execSwitch(body, env, label)
	default:
		v, sig, err = in.execStatement(n.Body, env)
	}
	if err != nil {
		return nil, noSignal, err
	}
	if sig.kind == sigBreak && sig.label == label {
		return v, noSignal, nil
	}
	return v, sig, nil
}

func (in *Interpreter) execTry(n *ast.TryStatement, env *runtime.Environment) (*runtime.Value, signal, error) {
	runFinally := func(v *runtime.Value, sig signal, err error) (*runtime.Value, signal, error) {
		if n.Finalizer == nil {
			return v, sig, err
		}
		fv, fsig, ferr := in.execBlock(n.Finalizer, env)
		if ferr != nil {
			return nil, noSignal, ferr
		}
		if fsig.kind != sigNone {
			// The finally block's own control flow overrides whatever
			// the try/catch produced, per §4.7/§8's control-flow rules.
			return fv, fsig, nil
		}
		return v, sig, err
	}

	v, sig, err := in.execBlock(n.Block, env)
	if err == nil {
		return runFinally(v, sig, nil)
	}

	thrown, isScript := asScriptError(err)
	if !isScript || n.Handler == nil {
		return runFinally(nil, noSignal, err)
	}

	catchEnv := runtime.NewEnvironment(env, true)
	if n.Handler.Param != nil {
		catchEnv.Declare(n.Handler.Param.Name, "catch", thrown)
	}
	cv, csig, cerr := in.execBlock(n.Handler.Body, catchEnv)
	return runFinally(cv, csig, cerr)
}
