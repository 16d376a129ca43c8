package delegate

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/miruken-go/delegate/internal"
)

type (
	// Proxy dispatches the methods of forwarding types to a Chain.
	// Forwarding types embed *Proxy and implement each interface
	// method by calling one of the Call helpers.
	Proxy struct {
		chain *Chain
	}

	// Synthesizers creates composites for capability interfaces
	// from registered forwarding type factories.
	// It is safe for concurrent use.
	Synthesizers struct {
		lock      sync.RWMutex
		factories map[reflect.Type]func(*Proxy) any
	}
)

// DefaultSynthesizers holds the factories registered by Synthesize.
var DefaultSynthesizers = &Synthesizers{}

var ErrNoSynthesizer = errors.New("no synthesizer registered")


// Proxy

// NewProxy returns a Proxy dispatching to chain.
func NewProxy(chain *Chain) *Proxy {
	if chain == nil {
		panic("chain cannot be nil")
	}
	return &Proxy{chain}
}

// Chain returns the Chain calls are dispatched to.
func (p *Proxy) Chain() *Chain {
	return p.chain
}

// Invoke dispatches m to the chain.
func (p *Proxy) Invoke(m Method, args ...any) ([]any, error) {
	return p.chain.Invoke(m, args...)
}


// Synthesizers

// Register adds the forwarding type factory for iface.
func (s *Synthesizers) Register(
	iface   reflect.Type,
	factory func(*Proxy) any,
) {
	if iface == nil || iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("capability %v is not an interface", iface))
	}
	if factory == nil {
		panic("factory cannot be nil")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.factories == nil {
		s.factories = make(map[reflect.Type]func(*Proxy) any)
	}
	s.factories[iface] = factory
}

// Synthesize returns a composite for iface dispatching to proxy.
func (s *Synthesizers) Synthesize(
	iface reflect.Type,
	proxy *Proxy,
) (any, error) {
	s.lock.RLock()
	factory, ok := s.factories[iface]
	s.lock.RUnlock()
	if !ok {
		return nil, &SynthesisError{iface, ErrNoSynthesizer}
	}
	composite := factory(proxy)
	if internal.IsNil(composite) || !reflect.TypeOf(composite).Implements(iface) {
		return nil, &SynthesisError{iface, fmt.Errorf(
			"factory returned %T which does not implement %v", composite, iface)}
	}
	return composite, nil
}

// Synthesize registers the forwarding type factory for interface I
// and makes I a known capability of the DefaultRegistry.
func Synthesize[I any](factory func(*Proxy) I) {
	iface := reflect.TypeFor[I]()
	DefaultRegistry.Register(iface)
	DefaultSynthesizers.Register(iface, func(p *Proxy) any {
		return factory(p)
	})
}

// New returns a composite implementing I backed by chain.
// I is added to the interfaces the chain advertises.
func New[I any](chain *Chain) (I, error) {
	var zero I
	if chain == nil {
		panic("chain cannot be nil")
	}
	iface := reflect.TypeFor[I]()
	chain.AddInterface(iface)
	if chain.settings.IsStrict() {
		if err := chain.Verify(); err != nil {
			return zero, err
		}
	}
	composite, err := DefaultSynthesizers.Synthesize(iface, NewProxy(chain))
	if err != nil {
		return zero, err
	}
	return composite.(I), nil
}

// As views composite as I.  If composite does not implement I
// but its chain advertises I, a composite for I over the same
// chain is returned.
func As[I any](composite any) (I, bool) {
	if i, ok := composite.(I); ok {
		return i, true
	}
	var zero I
	chained, ok := composite.(interface{ Chain() *Chain })
	if !ok {
		return zero, false
	}
	chain := chained.Chain()
	iface := reflect.TypeFor[I]()
	if chain == nil || !chain.ifaces.Contains(iface) {
		return zero, false
	}
	other, err := DefaultSynthesizers.Synthesize(iface, NewProxy(chain))
	if err != nil {
		return zero, false
	}
	return other.(I), true
}


// Call helpers used by forwarding types.

// Call0 dispatches a method without results.
// It panics if no delegate answers m.
func Call0(p *Proxy, m Method, args ...any) {
	must(p.Invoke(m, args...))
}

// Call1 dispatches a method with a single result.
// It panics if no delegate answers m.
func Call1[R any](p *Proxy, m Method, args ...any) R {
	return Result[R](must(p.Invoke(m, args...)), 0)
}

// Call2 dispatches a method with two results.
// It panics if no delegate answers m.
func Call2[R1, R2 any](p *Proxy, m Method, args ...any) (R1, R2) {
	out := must(p.Invoke(m, args...))
	return Result[R1](out, 0), Result[R2](out, 1)
}

// CallN dispatches a method with any number of results.
// It panics if no delegate answers m.
func CallN(p *Proxy, m Method, args ...any) []any {
	return must(p.Invoke(m, args...))
}

// CallErr dispatches a method whose only result is an error.
// A dispatch failure is returned as the error.
func CallErr(p *Proxy, m Method, args ...any) error {
	out, err := p.Invoke(m, args...)
	if err != nil {
		return err
	}
	return Result[error](out, 0)
}

// Call1Err dispatches a method returning a result and an error.
// A dispatch failure is returned as the error.
func Call1Err[R any](p *Proxy, m Method, args ...any) (R, error) {
	out, err := p.Invoke(m, args...)
	if err != nil {
		var zero R
		return zero, err
	}
	return Result[R](out, 0), Result[error](out, 1)
}

// Result returns out[i] as R or the zero R if it is nil or absent.
// It panics if out[i] is not an R.
func Result[R any](out []any, i int) R {
	var zero R
	if i >= len(out) || out[i] == nil {
		return zero
	}
	if r, ok := out[i].(R); ok {
		return r
	}
	panic(fmt.Sprintf("result %d is %T, not %v", i, out[i], reflect.TypeFor[R]()))
}

func must(out []any, err error) []any {
	if err != nil {
		panic(err)
	}
	return out
}
