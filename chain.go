package delegate

import (
	"fmt"
	"reflect"
	"time"

	"github.com/miruken-go/delegate/internal"
)

type (
	// Chain composes unrelated objects into a chain of responsibility.
	// Objects are consulted in the order they were added, so the
	// first object added has the highest priority.
	// A Chain is built once and must not be modified after it has
	// been published.  Dispatch requires no locking.
	Chain struct {
		settings settings
		links    []*link
		ifaces   CapabilitySet
	}

	// Pass identifies the resolution pass that selected a delegate.
	Pass uint8

	// Target is the delegate selected to answer a method.
	Target struct {
		Index  int
		Pass   Pass
		Type   reflect.Type
		link   *link
		method reflect.Method
	}
)

const (
	// PassDeclared selects a delegate implementing the declaring interface.
	PassDeclared Pass = iota + 1
	// PassShape selects a delegate with a method of the same signature
	// that does not implement the declaring interface.
	PassShape
	// PassLoose selects a delegate with a method of the same name
	// whose parameters accept the actual arguments.
	PassLoose
)

const durationFormat = "15:04:05.000000"  // microseconds

func (p Pass) String() string {
	switch p {
	case PassDeclared: return "declared"
	case PassShape:    return "shape"
	case PassLoose:    return "loose"
	default:           return fmt.Sprintf("Pass(%d)", uint8(p))
	}
}

// NewChain returns an empty Chain.
func NewChain(opts ...Option) *Chain {
	return &Chain{
		settings: newSettings(opts),
		ifaces:   make(CapabilitySet),
	}
}

// NewChainOf returns a Chain of objects in priority order.
func NewChainOf(objects ...any) *Chain {
	return NewChain().Add(objects...)
}

// Add appends objects to the end of the chain and includes
// every capability interface they satisfy.  Nil objects are
// ignored.
func (c *Chain) Add(objects ...any) *Chain {
	for _, object := range objects {
		if internal.IsNil(object) {
			continue
		}
		l := newLink(object)
		c.links = append(c.links, l)
		resolved := c.settings.registry.Resolve(l.typ)
		c.ifaces.Union(resolved)
		c.settings.logger.V(1).Info("link added",
			"index", len(c.links)-1,
			"type", l.typ,
			"methods", len(l.methods),
			"capabilities", resolved.Len())
	}
	return c
}

// AddInterface includes iface even if no object satisfies it.
func (c *Chain) AddInterface(iface reflect.Type) *Chain {
	if iface == nil || iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("capability %v is not an interface", iface))
	}
	c.ifaces.Add(iface)
	return c
}

// AddInterfaces includes all ifaces.
func (c *Chain) AddInterfaces(ifaces ...reflect.Type) *Chain {
	for _, iface := range ifaces {
		c.AddInterface(iface)
	}
	return c
}

// Interfaces returns every capability interface advertised.
func (c *Chain) Interfaces() CapabilitySet {
	return c.ifaces.Clone()
}

// Len returns the number of objects in the chain.
func (c *Chain) Len() int {
	return len(c.links)
}

// Options returns the effective options.
func (c *Chain) Options() Options {
	return c.settings.Options
}

// Resolve returns the delegate that answers m without invoking it.
// Delegates are consulted in priority order.  A delegate implementing
// the declaring interface is called through it, otherwise a method of
// the same signature is used.
func (c *Chain) Resolve(m Method) (Target, bool) {
	sig := m.Signature()
	for i, l := range c.links {
		if l.implements(m.Iface) {
			if method, ok := l.typ.MethodByName(m.Name); ok {
				return Target{i, PassDeclared, l.typ, l, method}, true
			}
		}
		if method, ok := l.lookup(sig); ok {
			return Target{i, PassShape, l.typ, l, method}, true
		}
	}
	return Target{}, false
}

// Invoke dispatches m with args to the first delegate able to
// answer it and returns the delegate's results unchanged.
// Arguments are supplied one per parameter, with a slice for a
// variadic parameter.  If no delegate answers m an
// *UnsupportedCapabilityError is returned.  Args that do not fit
// m panic with an *ArgumentError.
func (c *Chain) Invoke(m Method, args ...any) ([]any, error) {
	in, ok := bindArgs(m.Type, 0, args)
	if !ok {
		panic(&ArgumentError{m, args})
	}
	if target, ok := c.Resolve(m); ok {
		return c.call(m, target, in), nil
	}
	for i, l := range c.links {
		if method, in, ok := l.loose(m.Name, args); ok {
			return c.call(m, Target{i, PassLoose, l.typ, l, method}, in), nil
		}
	}
	err := &UnsupportedCapabilityError{m.Iface, m.Signature()}
	c.settings.logger.V(c.settings.Verbosity).Error(err, "unsupported", "method", m.String())
	return nil, err
}

func (c *Chain) call(
	m      Method,
	target Target,
	in     []reflect.Value,
) []any {
	logger := c.settings.logger.V(c.settings.Verbosity)
	if !logger.Enabled() {
		return results(target.link.call(target.method, in))
	}
	logger.Info("dispatching",
		"method", m.String(),
		"pass", target.Pass,
		"index", target.Index,
		"type", target.Type)
	start := time.Now()
	out := results(target.link.call(target.method, in))
	elapsed := time.Time{}.Add(time.Since(start))
	logger.Info("completed",
		"method", m.String(),
		"duration", elapsed.Format(durationFormat))
	return out
}
