package delegate

import (
	"reflect"

	"github.com/hashicorp/go-multierror"
	"github.com/miruken-go/delegate/internal/slices"
)

// Coverage describes the delegate answering an advertised method.
type Coverage struct {
	Method Method
	Target Target
	Found  bool
}

// Coverage reports the delegate answering each method of every
// interface the chain advertises, ordered by interface name.
// A method only answerable by a loose match is reported with
// PassLoose when its parameter types accept the requested ones.
func (c *Chain) Coverage() []Coverage {
	var coverage []Coverage
	for _, iface := range c.ifaces.Types() {
		for _, m := range MethodsOf(iface) {
			if target, ok := c.Resolve(m); ok {
				coverage = append(coverage, Coverage{m, target, true})
			} else if target, ok := c.looseCandidate(m); ok {
				coverage = append(coverage, Coverage{m, target, true})
			} else {
				coverage = append(coverage, Coverage{Method: m})
			}
		}
	}
	return coverage
}

// Verify checks every method of every advertised interface has
// a delegate.  The result is a *VerifyError holding one
// *UnsupportedCapabilityError per missing method.
func (c *Chain) Verify() error {
	var missing error
	for _, cov := range slices.Filter(c.Coverage(), func(cov Coverage) bool {
		return !cov.Found
	}) {
		m := cov.Method
		missing = multierror.Append(missing, &UnsupportedCapabilityError{m.Iface, m.Signature()})
	}
	if missing != nil {
		return &VerifyError{missing}
	}
	return nil
}

func (c *Chain) looseCandidate(m Method) (Target, bool) {
	params := m.Signature().Params()
	for i, l := range c.links {
		method, ok := l.typ.MethodByName(m.Name)
		if !ok || !method.IsExported() || !l.callable(m.Name) ||
			method.Type.NumIn()-1 != len(params) {
			continue
		}
		if assignableParams(params, method.Type) {
			return Target{i, PassLoose, l.typ, l, method}, true
		}
	}
	return Target{}, false
}

func assignableParams(params []reflect.Type, fun reflect.Type) bool {
	for i, param := range params {
		if !param.AssignableTo(fun.In(i + 1)) {
			return false
		}
	}
	return true
}
