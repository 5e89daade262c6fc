package interpreter

import "github.com/badlogic/jailjs/runtime"

// EvalSource implements the `eval()` primitive: parsing source via the
// ParseFunc supplied through WithParse, then evaluating the resulting
// program in env (global eval uses the Interpreter's global scope;
// direct eval from within a function would use that call's own scope,
// but this module only supports the global form). Without a ParseFunc,
// eval always fails — parsing is out of this module's scope and is not
// silently skipped.
func (in *Interpreter) EvalSource(source string, env *runtime.Environment) (*runtime.Value, error) {
	if in.parse == nil {
		return nil, in.throwError("EvalError", "eval() is not supported without a parser")
	}
	program, err := in.parse(source)
	if err != nil {
		return nil, in.throwError("SyntaxError", "%s", err.Error())
	}
	if err := in.hoist(program.Body, env); err != nil {
		return nil, err
	}
	var completion *runtime.Value = runtime.Undefined
	for _, stmt := range program.Body {
		v, sig, err := in.execStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		if sig.kind != sigNone {
			break
		}
		if v != nil {
			completion = v
		}
	}
	return completion, nil
}
