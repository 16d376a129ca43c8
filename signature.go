package delegate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/miruken-go/delegate/internal/slices"
)

// Signature identifies a method by name and ordered parameter types.
// Result types, variadic-ness and the declaring type are not part of
// the identity, so two methods with the same name and parameters share
// a Signature even when declared by unrelated interfaces.
type Signature struct {
	Name string
	In   reflect.Type
}

// SignatureOf returns the Signature of a method named name with
// function type fun.  skip leading parameters are ignored, which is
// 1 for methods obtained from a concrete type (the receiver) and
// 0 for methods obtained from an interface type.
func SignatureOf(
	name string,
	fun  reflect.Type,
	skip int,
) Signature {
	if fun == nil || fun.Kind() != reflect.Func {
		panic("fun must be a function type")
	}
	n  := fun.NumIn()
	in := make([]reflect.Type, 0, max(n-skip, 0))
	for i := skip; i < n; i++ {
		in = append(in, fun.In(i))
	}
	return Signature{name, reflect.FuncOf(in, nil, false)}
}

// NumIn returns the number of parameters.
func (s Signature) NumIn() int {
	if s.In == nil {
		return 0
	}
	return s.In.NumIn()
}

// Params returns the ordered parameter types.
func (s Signature) Params() []reflect.Type {
	params := make([]reflect.Type, s.NumIn())
	for i := range params {
		params[i] = s.In.In(i)
	}
	return params
}

func (s Signature) String() string {
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(
		slices.Map[reflect.Type, string](s.Params(), reflect.Type.String), ", "))
}
