package defaults

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// buildJSON builds the JSON global, grounded on the teacher's
// createJSONObject; reviver/replacer-function support dropped (the
// teacher's reviveValue/stringifyValue's function-argument path),
// keeping stringify's array-replacer and the space argument.
func buildJSON(in *interpreter.Interpreter) *runtime.Object {
	j := runtime.NewOrdinaryObject(in.ObjectPrototype)

	setMethod(in, j, "parse", 2, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		text := argAt(args, 0).ToString()
		var raw interface{}
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, in.ThrowError("SyntaxError", "JSON.parse: %v", err)
		}
		return goToJSValue(in, raw), nil
	})
	setMethod(in, j, "stringify", 3, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		val := argAt(args, 0)
		var replacerKeys []string
		if len(args) > 1 && args[1].Type == runtime.TypeObject && args[1].Object != nil && args[1].Object.OType == runtime.ObjTypeArray {
			for _, v := range args[1].Object.ArrayData {
				replacerKeys = append(replacerKeys, v.ToString())
			}
		}
		indent := ""
		if len(args) > 2 {
			sp := args[2]
			if sp.Type == runtime.TypeNumber {
				n := minInt(int(sp.Number), 10)
				if n > 0 {
					indent = strings.Repeat(" ", n)
				}
			} else if sp.Type == runtime.TypeString {
				indent = sp.Str
				if len(indent) > 10 {
					indent = indent[:10]
				}
			}
		}
		result, ok := stringifyValue(val, replacerKeys, indent, "")
		if !ok {
			return runtime.Undefined, nil
		}
		return runtime.NewString(result), nil
	})

	setDataProp(j, "@@toStringTag", runtime.NewString("JSON"), false, false, false)
	return j
}

func goToJSValue(in *interpreter.Interpreter, v interface{}) *runtime.Value {
	if v == nil {
		return runtime.Null
	}
	switch val := v.(type) {
	case bool:
		return runtime.NewBool(val)
	case float64:
		return runtime.NewNumber(val)
	case string:
		return runtime.NewString(val)
	case []interface{}:
		data := make([]*runtime.Value, len(val))
		for i, item := range val {
			data[i] = goToJSValue(in, item)
		}
		return runtime.NewObject(runtime.NewArrayObject(in.ArrayPrototype, data))
	case map[string]interface{}:
		obj := runtime.NewOrdinaryObject(in.ObjectPrototype)
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			obj.Set(k, goToJSValue(in, val[k]))
		}
		return runtime.NewObject(obj)
	}
	return runtime.Undefined
}

func stringifyValue(val *runtime.Value, replacerKeys []string, indent, currentIndent string) (string, bool) {
	if val == nil || val.Type == runtime.TypeUndefined {
		return "", false
	}
	if val.Type == runtime.TypeObject && val.Object != nil && val.Object.Callable != nil {
		return "", false
	}
	switch val.Type {
	case runtime.TypeNull:
		return "null", true
	case runtime.TypeBoolean:
		return val.ToString(), true
	case runtime.TypeNumber:
		if val.Number != val.Number {
			return "null", true
		}
		return fmt.Sprintf("%g", val.Number), true
	case runtime.TypeString:
		b, _ := json.Marshal(val.Str)
		return string(b), true
	}
	obj := val.Object
	if obj == nil {
		return "", false
	}
	nextIndent := currentIndent + indent
	sep := ","
	open, close := "", ""
	colon := ":"
	if indent != "" {
		sep = ",\n" + nextIndent
		open = "\n" + nextIndent
		close = "\n" + currentIndent
		colon = ": "
	}
	if obj.OType == runtime.ObjTypeArray {
		if len(obj.ArrayData) == 0 {
			return "[]", true
		}
		parts := make([]string, len(obj.ArrayData))
		for i, v := range obj.ArrayData {
			s, ok := stringifyValue(v, replacerKeys, indent, nextIndent)
			if !ok {
				s = "null"
			}
			parts[i] = s
		}
		return "[" + open + strings.Join(parts, sep) + close + "]", true
	}
	keys := obj.OwnEnumerableKeys()
	if replacerKeys != nil {
		keys = replacerKeys
	}
	var parts []string
	for _, k := range keys {
		v := obj.Get(k)
		s, ok := stringifyValue(v, replacerKeys, indent, nextIndent)
		if !ok {
			continue
		}
		kb, _ := json.Marshal(k)
		parts = append(parts, string(kb)+colon+s)
	}
	if len(parts) == 0 {
		return "{}", true
	}
	return "{" + open + strings.Join(parts, sep) + close + "}", true
}
