package interpreter

import "github.com/badlogic/jailjs/runtime"

// filterReflectiveAccess implements §4.7's reflective-access filter.
// It blocks READS only (never writes — a script assigning to
// `obj.constructor` or `obj.__proto__` goes through unfiltered) of:
//
//   - "__proto__": always reports Undefined, regardless of any actual
//     prototype link, so script cannot walk the prototype chain by name.
//   - "prototype" on an object that is not itself a function: always
//     Undefined (a function's own "prototype" property is NOT filtered —
//     only a non-function object's happens-to-be-named "prototype" data
//     property is).
//   - "constructor" when it resolves (via the normal prototype-chain
//     walk) to any constructor recorded in NamedConstructors (with the
//     defaults package: Object, Array, String, Number, Boolean, Function,
//     RegExp, Date, Error and the six Error subtypes): reports Undefined
//     instead of handing back a live reference to that constructor.
//
// Returns (true, replacement) when the read is blocked, (false, nil)
// otherwise — the caller should then perform the normal Get.
func (in *Interpreter) filterReflectiveAccess(obj *runtime.Object, key string) (bool, *runtime.Value) {
	switch key {
	case "__proto__":
		return true, runtime.Undefined
	case "prototype":
		if obj.OType != runtime.ObjTypeFunction {
			return true, runtime.Undefined
		}
		return false, nil
	case "constructor":
		resolved := obj.Get("constructor")
		if resolved.Type != runtime.TypeObject || resolved.Object == nil {
			return false, nil
		}
		for _, named := range in.NamedConstructors {
			if named == resolved.Object {
				return true, runtime.Undefined
			}
		}
		return false, nil
	default:
		return false, nil
	}
}
