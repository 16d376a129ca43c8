package delegate

import (
	"reflect"
	"runtime"
)

// link wraps a backing object with an index of its
// exported methods keyed by Signature.
type link struct {
	value   reflect.Value
	typ     reflect.Type
	methods map[Signature]reflect.Method
	absent  map[string]struct{}
}

func newLink(object any) *link {
	value   := reflect.ValueOf(object)
	typ     := value.Type()
	methods := make(map[Signature]reflect.Method, typ.NumMethod())
	absent  := make(map[string]struct{})
	for i := 0; i < typ.NumMethod(); i++ {
		method := typ.Method(i)
		if !method.IsExported() {
			continue
		}
		if promotedFromNil(value, method.Name) {
			absent[method.Name] = struct{}{}
			continue
		}
		methods[SignatureOf(method.Name, method.Type, 1)] = method
	}
	return &link{value, typ, methods, absent}
}

func (l *link) lookup(sig Signature) (reflect.Method, bool) {
	method, ok := l.methods[sig]
	return method, ok
}

// implements reports if the backing object can answer every
// method of iface.
func (l *link) implements(iface reflect.Type) bool {
	if !l.typ.Implements(iface) {
		return false
	}
	for i := 0; i < iface.NumMethod(); i++ {
		if !l.callable(iface.Method(i).Name) {
			return false
		}
	}
	return true
}

// callable reports if the method named name can be called without
// going through an embedded interface left nil.
func (l *link) callable(name string) bool {
	_, ok := l.absent[name]
	return !ok
}

// loose finds an exported method named name whose parameters
// accept args, even if their types differ from the requested ones.
func (l *link) loose(
	name string,
	args []any,
) (reflect.Method, []reflect.Value, bool) {
	method, ok := l.typ.MethodByName(name)
	if !ok || !method.IsExported() || !l.callable(name) {
		return method, nil, false
	}
	in, ok := bindArgs(method.Type, 1, args)
	return method, in, ok
}

func (l *link) object() reflect.Value {
	return l.value
}

func (l *link) call(
	method reflect.Method,
	args   []reflect.Value,
) []reflect.Value {
	in := make([]reflect.Value, 0, len(args)+1)
	in  = append(in, l.object())
	in  = append(in, args...)
	if method.Type.IsVariadic() {
		return method.Func.CallSlice(in)
	}
	return method.Func.Call(in)
}

// promotedFromNil reports if the method named name of value is
// promoted from an embedded interface field holding nil.
func promotedFromNil(value reflect.Value, name string) bool {
	for {
		typ := value.Type()
		if declares(typ, name) {
			return false
		}
		for value.Kind() == reflect.Ptr {
			if value.IsNil() {
				return false
			}
			value = value.Elem()
		}
		if value.Kind() != reflect.Struct {
			return false
		}
		field, ok := promoter(value, name)
		if !ok {
			return false
		}
		if field.Kind() == reflect.Interface {
			return field.IsNil()
		}
		value = field
	}
}

// promoter returns the single embedded field of the struct value
// that provides the method named name.
func promoter(value reflect.Value, name string) (reflect.Value, bool) {
	var found reflect.Value
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.Anonymous || !hasMethod(field.Type, name) {
			continue
		}
		if found.IsValid() {
			return reflect.Value{}, false
		}
		found = value.Field(i)
	}
	return found, found.IsValid()
}

func hasMethod(typ reflect.Type, name string) bool {
	if _, ok := typ.MethodByName(name); ok {
		return true
	}
	if typ.Kind() != reflect.Ptr && typ.Kind() != reflect.Interface {
		_, ok := reflect.PointerTo(typ).MethodByName(name)
		return ok
	}
	return false
}

// declares reports if typ declares the method named name itself
// rather than promoting it from an embedded field.  Promoted
// methods are compiler generated wrappers.
func declares(typ reflect.Type, name string) bool {
	if typ.Kind() == reflect.Interface {
		return false
	}
	if typ.Kind() == reflect.Ptr {
		if _, ok := typ.Elem().MethodByName(name); ok {
			return declares(typ.Elem(), name)
		}
	}
	method, ok := typ.MethodByName(name)
	if !ok {
		return false
	}
	pc := method.Func.Pointer()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return true
	}
	file, _ := fn.FileLine(pc)
	return file != "<autogenerated>"
}
