// Package interpreter implements the tree-walking evaluator: hoisting,
// statement/expression evaluation, control-flow signalling, function
// invocation, the reflective-access filter, and the operation-count
// guard described by §4 of the specification this module implements.
package interpreter

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/badlogic/jailjs/ast"
	"github.com/badlogic/jailjs/runtime"
)

// ParseFunc parses script source into a Program, the signature an
// embedder supplies to unlock `eval()` (see EvalSource in eval.go).
// Parsing itself is out of this module's scope; ParseFunc is the seam
// an embedder's own parser plugs into.
type ParseFunc func(source string) (*ast.Program, error)

// Interpreter holds everything a single embedding needs to evaluate
// programs against: the global scope, the prototypes the reflective
// filter and `new` recognise, the operation ceiling, and the optional
// logging/eval hooks.
type Interpreter struct {
	global *runtime.Environment

	ObjectPrototype   *runtime.Object
	FunctionPrototype *runtime.Object
	ArrayPrototype    *runtime.Object
	ErrorPrototype    *runtime.Object
	RegExpPrototype   *runtime.Object
	DatePrototype     *runtime.Object

	// NamedConstructors is the set of host constructors the reflective-
	// access filter recognises by identity when resolving `.constructor`
	// on a value (§4.7): every constructor passed to RegisterConstructor.
	// The defaults package registers Object, Array, String, Number,
	// Boolean, Function, RegExp, Date, Error and the six Error subtypes;
	// a name that was never registered has no entry.
	NamedConstructors map[string]*runtime.Object

	maxOps   int
	opCount  int
	logger   commonlog.Logger
	parse    ParseFunc
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithMaxOps sets the operation ceiling Evaluate enforces per top-level
// call (§4.9). A value <= 0 disables the guard.
func WithMaxOps(n int) Option {
	return func(in *Interpreter) { in.maxOps = n }
}

// WithLogger installs a structured logger; omitted, the interpreter
// logs to commonlog's null logger and stays silent.
func WithLogger(l commonlog.Logger) Option {
	return func(in *Interpreter) { in.logger = l }
}

// WithParse wires the optional `eval()` backend. Without it, `eval()`
// fails with a stable error rather than silently no-oping.
func WithParse(p ParseFunc) Option {
	return func(in *Interpreter) { in.parse = p }
}

const defaultMaxOps = 10_000_000

// New constructs an Interpreter with an empty global scope and no
// registered constructors — an embedder wires in a capability table
// (see the defaults package) by declaring globals on Global() and
// setting the *Prototype/NamedConstructors fields afterward.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		global:            runtime.NewEnvironment(nil, false),
		NamedConstructors: make(map[string]*runtime.Object),
		maxOps:            defaultMaxOps,
		logger:            commonlog.NewBackendLogger(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Global returns the top-level scope, for an embedder to declare
// globals into before evaluating anything.
func (in *Interpreter) Global() *runtime.Environment { return in.global }

func (in *Interpreter) SetLogger(l commonlog.Logger) { in.logger = l }

// LogInfo/LogWarning/LogError let host-native code (the defaults
// package's console implementation) route script output through the
// same structured logger the interpreter itself uses, rather than
// writing to stdout/stderr directly.
func (in *Interpreter) LogInfo(msg string)    { in.logger.Info(msg) }
func (in *Interpreter) LogWarning(msg string) { in.logger.Warning(msg) }
func (in *Interpreter) LogError(msg string)   { in.logger.Error(msg) }

// RegisterConstructor declares ctor as a global named name and records
// it in NamedConstructors so the reflective-access filter (§4.7)
// recognises it. Used by an embedder's capability table (e.g. the
// defaults package) for each host constructor it exposes.
func (in *Interpreter) RegisterConstructor(name string, ctor *runtime.Object) {
	in.NamedConstructors[name] = ctor
	in.global.Declare(name, "var", runtime.NewObject(ctor))
}

// DeclareGlobal installs a capability-table entry under name without
// recording it in NamedConstructors (for Math,
// JSON, console, and any other host global an embedder wires in).
func (in *Interpreter) DeclareGlobal(name string, v *runtime.Value) {
	in.global.Declare(name, "var", v)
}

// NewNativeFunction wraps a Go closure as a callable host Object with
// the same call/apply/bind surface a script-defined function gets, so
// script cannot distinguish a host native from one it defined itself.
func (in *Interpreter) NewNativeFunction(name string, length int, fn runtime.CallableFunc) *runtime.Object {
	obj := in.nativeFunc(name, length, fn)
	in.installFunctionMethods(obj)
	return obj
}

// ThrowError raises a script-catchable exception of the given kind
// (e.g. "TypeError", "RangeError") for use by host code (the defaults
// package's native functions) that needs to signal a script-visible
// fault rather than a host one.
func (in *Interpreter) ThrowError(kind, format string, a ...interface{}) error {
	return in.throwError(kind, format, a...)
}

// Evaluate runs a program to completion, returning the completion value
// of its last non-empty statement (the script-completion-value
// convention §6 describes for the top-level entry point). The
// operation counter resets at the start of every Evaluate call — a
// long-lived Interpreter evaluating many programs gets a fresh budget
// each time, not a cumulative one.
func (in *Interpreter) Evaluate(program *ast.Program) (*runtime.Value, error) {
	in.opCount = 0
	if err := in.hoist(program.Body, in.global); err != nil {
		return nil, err
	}
	completion := runtime.Undefined
	for _, stmt := range program.Body {
		val, sig, err := in.execStatement(stmt, in.global)
		if err != nil {
			if sv, ok := asScriptError(err); ok {
				return nil, fmt.Errorf("uncaught exception: %s", sv.ToString())
			}
			return nil, err
		}
		if sig.kind != sigNone {
			// return/break/continue with no enclosing loop/function at
			// top level: ignored, matching a script's implicit top-level
			// completion rather than faulting the whole evaluation.
			continue
		}
		if val != nil {
			completion = val
		}
	}
	return completion, nil
}

// tick increments the operation counter and aborts with a stable
// timeout error once it exceeds maxOps (§4.9). Called once per
// statement and once per expression node evaluated.
func (in *Interpreter) tick() error {
	if in.maxOps <= 0 {
		return nil
	}
	in.opCount++
	if in.opCount > in.maxOps {
		in.logger.Warning("operation ceiling exceeded")
		return fmt.Errorf("Execution timeout: maximum operations exceeded")
	}
	return nil
}

// throwError raises a host-observed error condition (e.g. "x is not
// defined") as a script-catchable exception, using the registered
// constructor for kind if the embedder wired one in, or falling back to
// a bare error object tagged with kind as its name otherwise.
func (in *Interpreter) throwError(kind, format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	if ctor, ok := in.NamedConstructors[kind]; ok && ctor != nil && ctor.Constructor != nil {
		v, err := ctor.Constructor(runtime.Undefined, []*runtime.Value{runtime.NewString(msg)})
		if err == nil && v != nil {
			return throwValue(v)
		}
	}
	obj := &runtime.Object{
		OType:      runtime.ObjTypeError,
		Properties: make(map[string]*runtime.Property),
		Prototype:  in.ErrorPrototype,
	}
	obj.Set("name", runtime.NewString(kind))
	obj.Set("message", runtime.NewString(msg))
	return throwValue(runtime.NewObject(obj))
}

// hostFault wraps a Go-level error from host code (a native callable
// fault, a misuse of the embedding API) with a stack trace for the
// embedder's logs. It is never catchable from script — see scriptError
// for the type that is.
func hostFault(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, context)
}
