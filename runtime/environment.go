package runtime

import "fmt"

// Environment is one frame of the lexical scope chain: a function frame
// (created per call) or a block frame (created per block/loop body),
// per §4.2. Hoisting targets var/function declarations at the nearest
// function frame; let/const/catch bindings land in the current frame,
// whichever kind it is.
type Environment struct {
	store   map[string]*Binding
	outer   *Environment
	isBlock bool
}

type Binding struct {
	Value   *Value
	Mutable bool
	Kind    string // "var", "let", "const", "function", "param", "catch"
}

func NewEnvironment(outer *Environment, isBlock bool) *Environment {
	return &Environment{
		store:   make(map[string]*Binding),
		outer:   outer,
		isBlock: isBlock,
	}
}

// Declare installs a new binding in the current frame. A duplicate
// let/const in the same frame is a SyntaxError; any other re-declaration
// is allowed and replaces the earlier binding.
func (e *Environment) Declare(name string, kind string, value *Value) error {
	if kind == "let" || kind == "const" {
		if _, exists := e.store[name]; exists {
			return fmt.Errorf("SyntaxError: Identifier '%s' has already been declared", name)
		}
	}
	e.store[name] = &Binding{
		Value:   value,
		Mutable: kind != "const",
		Kind:    kind,
	}
	return nil
}

// Get resolves name by walking outward through the scope chain.
func (e *Environment) Get(name string) (*Value, error) {
	if binding, ok := e.store[name]; ok {
		return binding.Value, nil
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, fmt.Errorf("ReferenceError: %s is not defined", name)
}

// Resolve reports whether name is bound anywhere in the chain, without
// the ReferenceError Get raises — used by `typeof` and `in`-adjacent
// checks that must not throw on an unresolved identifier.
func (e *Environment) Resolve(name string) (*Value, bool) {
	if binding, ok := e.store[name]; ok {
		return binding.Value, true
	}
	if e.outer != nil {
		return e.outer.Resolve(name)
	}
	return nil, false
}

// Set assigns to the frame where name was declared. If name is not
// declared anywhere in the chain, it is created in the frame where Set
// was originally invoked (the originating frame, not global) — see
// DESIGN.md's Open Question decision on this fallback.
func (e *Environment) Set(name string, value *Value) error {
	return e.setFrom(e, name, value)
}

func (e *Environment) setFrom(origin *Environment, name string, value *Value) error {
	if binding, ok := e.store[name]; ok {
		if !binding.Mutable {
			return fmt.Errorf("TypeError: Assignment to constant variable '%s'", name)
		}
		binding.Value = value
		return nil
	}
	if e.outer != nil {
		return e.outer.setFrom(origin, name, value)
	}
	origin.store[name] = &Binding{Value: value, Mutable: true, Kind: "var"}
	return nil
}

// SetInCurrentScope installs or overwrites a binding directly in this
// frame, bypassing the outward walk — how function-declaration hoisting,
// a var declaration's initializer and a for-in var binding write into
// the function frame.
func (e *Environment) SetInCurrentScope(name string, value *Value) {
	if binding, ok := e.store[name]; ok {
		binding.Value = value
		return
	}
	e.store[name] = &Binding{Value: value, Mutable: true, Kind: "var"}
}

// DeclareIfAbsent seeds name as Undefined in this frame unless already
// bound here — the hoisting pre-pass's primitive for var names (also
// used for a var declared without an initializer), which must not
// clobber a binding a preceding statement already installed.
func (e *Environment) DeclareIfAbsent(name string) {
	if _, exists := e.store[name]; exists {
		return
	}
	e.store[name] = &Binding{Value: Undefined, Mutable: true, Kind: "var"}
}

// GetFunctionScope walks outward to the nearest non-block frame — the
// hoisting target for var and function declarations.
func (e *Environment) GetFunctionScope() *Environment {
	if !e.isBlock {
		return e
	}
	if e.outer != nil {
		return e.outer.GetFunctionScope()
	}
	return e
}

func (e *Environment) IsBlock() bool { return e.isBlock }

func (e *Environment) Outer() *Environment { return e.outer }
