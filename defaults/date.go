package defaults

import (
	"time"

	"github.com/badlogic/jailjs/interpreter"
	"github.com/badlogic/jailjs/runtime"
)

// registerDate wires a minimal Date constructor and prototype storing
// epoch milliseconds in an Internal slot, grounded on the teacher's
// createDateConstructor; trimmed to the getters/setters and the
// now()/toISOString() surface a host embedding is likely to exercise,
// dropping its locale-formatting and Annex B getYear/setYear methods.
func registerDate(in *interpreter.Interpreter) *runtime.Object {
	proto := runtime.NewOrdinaryObject(in.ObjectPrototype)
	in.DatePrototype = proto

	millisOf := func(this *runtime.Value) float64 {
		obj := toObject(this)
		if obj == nil || obj.Internal == nil {
			return 0
		}
		ms, _ := obj.Internal["millis"].(float64)
		return ms
	}
	timeOf := func(this *runtime.Value) time.Time {
		return time.UnixMilli(int64(millisOf(this))).UTC()
	}

	setMethod(in, proto, "getTime", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(millisOf(this)), nil
	})
	setMethod(in, proto, "valueOf", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(millisOf(this)), nil
	})
	setMethod(in, proto, "getFullYear", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(timeOf(this).Year())), nil
	})
	setMethod(in, proto, "getMonth", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(timeOf(this).Month() - 1)), nil
	})
	setMethod(in, proto, "getDate", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(timeOf(this).Day())), nil
	})
	setMethod(in, proto, "getDay", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(timeOf(this).Weekday())), nil
	})
	setMethod(in, proto, "getHours", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(timeOf(this).Hour())), nil
	})
	setMethod(in, proto, "getMinutes", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(timeOf(this).Minute())), nil
	})
	setMethod(in, proto, "getSeconds", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(timeOf(this).Second())), nil
	})
	setMethod(in, proto, "getMilliseconds", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(timeOf(this).Nanosecond() / 1e6)), nil
	})
	setMethod(in, proto, "setTime", 1, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		obj := toObject(this)
		ms := argAt(args, 0).ToNumber()
		obj.Internal["millis"] = ms
		return runtime.NewNumber(ms), nil
	})
	setMethod(in, proto, "toISOString", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(timeOf(this).Format("2006-01-02T15:04:05.000Z")), nil
	})
	setMethod(in, proto, "toString", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(timeOf(this).Format("Mon Jan 02 2006 15:04:05 GMT+0000 (UTC)")), nil
	})

	ctor := in.NewNativeFunction("Date", 7, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewString(time.Now().UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (UTC)")), nil
	})
	ctor.Constructor = func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		var ms float64
		switch len(args) {
		case 0:
			ms = float64(time.Now().UnixMilli())
		case 1:
			if args[0].Type == runtime.TypeString {
				t, err := time.Parse(time.RFC3339, args[0].Str)
				if err != nil {
					ms = 0
				} else {
					ms = float64(t.UnixMilli())
				}
			} else {
				ms = args[0].ToNumber()
			}
		default:
			year := int(argAt(args, 0).ToNumber())
			month := int(argAt(args, 1).ToNumber())
			day := 1
			if len(args) > 2 {
				day = int(args[2].ToNumber())
			}
			hour, minute, sec, nsec := 0, 0, 0, 0
			if len(args) > 3 {
				hour = int(args[3].ToNumber())
			}
			if len(args) > 4 {
				minute = int(args[4].ToNumber())
			}
			if len(args) > 5 {
				sec = int(args[5].ToNumber())
			}
			if len(args) > 6 {
				nsec = int(args[6].ToNumber()) * 1e6
			}
			t := time.Date(year, time.Month(month+1), day, hour, minute, sec, nsec, time.UTC)
			ms = float64(t.UnixMilli())
		}
		obj := runtime.NewOrdinaryObject(proto)
		obj.Internal = map[string]interface{}{"millis": ms}
		return runtime.NewObject(obj), nil
	}
	ctor.Prototype = proto

	setMethod(in, ctor, "now", 0, func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return runtime.NewNumber(float64(time.Now().UnixMilli())), nil
	})

	setDataProp(ctor, "prototype", runtime.NewObject(proto), false, false, false)
	setDataProp(proto, "constructor", runtime.NewObject(ctor), true, false, true)

	return ctor
}
