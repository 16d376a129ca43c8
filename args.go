package delegate

import (
	"reflect"

	"github.com/miruken-go/delegate/internal"
)

// bindArgs converts args into call values for the parameters of fun
// starting at skip.  A variadic parameter is bound from a single slice
// argument.  A nil argument stands for the zero value of a nillable
// parameter.  ok is false if args do not fit the parameters.
func bindArgs(
	fun  reflect.Type,
	skip int,
	args []any,
) (in []reflect.Value, ok bool) {
	if fun.NumIn()-skip != len(args) {
		return nil, false
	}
	in = make([]reflect.Value, len(args))
	for i, arg := range args {
		typ := fun.In(i + skip)
		if arg == nil {
			if !internal.Nillable(typ) {
				return nil, false
			}
			in[i] = reflect.Zero(typ)
			continue
		}
		val := reflect.ValueOf(arg)
		if !val.Type().AssignableTo(typ) {
			return nil, false
		}
		in[i] = val
	}
	return in, true
}

// results converts call results into their interface values.
func results(out []reflect.Value) []any {
	if len(out) == 0 {
		return nil
	}
	res := make([]any, len(out))
	for i, o := range out {
		res[i] = o.Interface()
	}
	return res
}
