package delegate

import (
	"fmt"
	"reflect"
)

// Method is a capability interface method requested through a composite.
// Iface is the interface the method was requested from and plays the
// role of the declaring interface during dispatch.
type Method struct {
	reflect.Method
	Iface reflect.Type
	sig   Signature
}

// NewMethod returns the Method named name declared by iface.
// It panics if iface is not an interface or has no such method.
func NewMethod(iface reflect.Type, name string) Method {
	if iface == nil {
		panic("iface cannot be nil")
	}
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("%v is not an interface", iface))
	}
	method, ok := iface.MethodByName(name)
	if !ok {
		panic(fmt.Sprintf("interface %v has no method %q", iface, name))
	}
	return newMethod(iface, method)
}

// MethodOf returns the Method named name declared by interface I.
func MethodOf[I any](name string) Method {
	return NewMethod(reflect.TypeFor[I](), name)
}

// MethodsOf returns every Method declared by iface.
func MethodsOf(iface reflect.Type) []Method {
	if iface == nil || iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("%v is not an interface", iface))
	}
	methods := make([]Method, iface.NumMethod())
	for i := range methods {
		methods[i] = newMethod(iface, iface.Method(i))
	}
	return methods
}

func newMethod(iface reflect.Type, method reflect.Method) Method {
	return Method{
		Method: method,
		Iface:  iface,
		sig:    SignatureOf(method.Name, method.Type, 0),
	}
}

// Signature returns the name and parameter identity of the method.
func (m Method) Signature() Signature {
	return m.sig
}

func (m Method) String() string {
	return fmt.Sprintf("%v.%v", m.Iface, m.sig)
}
