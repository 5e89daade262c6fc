package defaults

import (
	"strings"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// buildConsole builds the console global, grounded on the teacher's
// createConsoleObject; routed through the interpreter's structured
// logger (§ ambient logging) rather than writing to stdout/stderr
// directly, since a host embedding a capability-restricted interpreter
// wants script output captured the same way as the engine's own.
func buildConsole(in *interpreter.Interpreter) *runtime.Object {
	console := runtime.NewOrdinaryObject(in.ObjectPrototype)

	setMethod(in, console, "log", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		in.LogInfo(formatArgs(args))
		return runtime.Undefined, nil
	})
	setMethod(in, console, "info", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		in.LogInfo(formatArgs(args))
		return runtime.Undefined, nil
	})
	setMethod(in, console, "warn", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		in.LogWarning(formatArgs(args))
		return runtime.Undefined, nil
	})
	setMethod(in, console, "error", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		in.LogError(formatArgs(args))
		return runtime.Undefined, nil
	})

	return console
}

func formatArgs(args []*runtime.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatValue(a)
	}
	return strings.Join(parts, " ")
}

func formatValue(v *runtime.Value) string {
	if v == nil {
		return "undefined"
	}
	if v.Type == runtime.TypeObject && v.Object != nil && v.Object.OType == runtime.ObjTypeArray {
		parts := make([]string, len(v.Object.ArrayData))
		for i, item := range v.Object.ArrayData {
			if item == nil || item.Type == runtime.TypeUndefined {
				parts[i] = ""
			} else {
				parts[i] = formatValue(item)
			}
		}
		return "[ " + strings.Join(parts, ", ") + " ]"
	}
	return v.ToString()
}
