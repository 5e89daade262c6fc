package interpreter

import "github.com/badlogic/jailjs/runtime"

// signalKind distinguishes the non-local control-flow outcomes a
// statement evaluation can produce. Control flow is carried entirely
// out-of-band from script-level exceptions: a `throw` is reported as a
// Go error (*scriptError) so that `return`/`break`/`continue`
// propagating through a `try` block's evaluation never gets caught by
// its own `catch` clause — only a thrown value can reach a catch.
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
)

// signal is returned alongside a Go error by every statement evaluator.
// A zero signal (sigNone) means normal completion; callers that
// establish a loop or switch boundary inspect and consume sigBreak/
// sigContinue addressed to their own label (or no label), and re-
// propagate anything else unchanged.
type signal struct {
	kind  signalKind
	label string       // target label for break/continue; "" means unlabeled
	value *runtime.Value // return value for sigReturn
}

var noSignal = signal{kind: sigNone}

func returnSignal(v *runtime.Value) signal { return signal{kind: sigReturn, value: v} }
func breakSignal(label string) signal      { return signal{kind: sigBreak, label: label} }
func continueSignal(label string) signal   { return signal{kind: sigContinue, label: label} }

// scriptError wraps a thrown runtime.Value so it can travel as a Go
// error through the call stack without being confused with a host-side
// fault. It is the ONLY error type `try/catch` unwraps; any other error
// returned by an evaluator function (the operation-ceiling timeout, a
// const-assignment or duplicate let/const fault from
// runtime.Environment) is a host/engine fault that a catch clause does
// not receive. callObject turns such an error, like any Go error a
// native callable returns, into a script Error once it comes back out
// of a call, and from there it is catchable.
type scriptError struct {
	Value *runtime.Value
}

func (e *scriptError) Error() string {
	return "uncaught exception: " + e.Value.ToString()
}

func throwValue(v *runtime.Value) error {
	return &scriptError{Value: v}
}

// asScriptError extracts the thrown value if err originated from a
// script `throw` (or an internal abstract operation modeled as one),
// distinguishing it from a host-side Go error.
func asScriptError(err error) (*runtime.Value, bool) {
	se, ok := err.(*scriptError)
	if !ok {
		return nil, false
	}
	return se.Value, true
}
