package delegate

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

type (
	// CapabilitySet is a set of capability interfaces.
	CapabilitySet map[reflect.Type]struct{}

	// Registry tracks the capability interfaces known to a process.
	// Go types never declare the interfaces they satisfy, so
	// resolution tests a type against the registered interfaces.
	// It is safe for concurrent use.
	Registry struct {
		lock   sync.RWMutex
		ifaces []reflect.Type
		index  map[reflect.Type]struct{}
	}
)

// DefaultRegistry is the process-wide Registry.
var DefaultRegistry = NewRegistry()


// CapabilitySet

// NewCapabilitySet returns a CapabilitySet holding ifaces.
func NewCapabilitySet(ifaces ...reflect.Type) CapabilitySet {
	set := make(CapabilitySet, len(ifaces))
	for _, iface := range ifaces {
		set.Add(iface)
	}
	return set
}

// Add adds iface and reports if it was not already present.
func (s CapabilitySet) Add(iface reflect.Type) bool {
	if _, ok := s[iface]; ok {
		return false
	}
	s[iface] = struct{}{}
	return true
}

// Union adds all the interfaces in other.
func (s CapabilitySet) Union(other CapabilitySet) {
	for iface := range other {
		s[iface] = struct{}{}
	}
}

func (s CapabilitySet) Contains(iface reflect.Type) bool {
	_, ok := s[iface]
	return ok
}

func (s CapabilitySet) Len() int {
	return len(s)
}

func (s CapabilitySet) Clone() CapabilitySet {
	clone := make(CapabilitySet, len(s))
	clone.Union(s)
	return clone
}

// Types returns the interfaces ordered by name.
func (s CapabilitySet) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(s))
	for iface := range s {
		types = append(types, iface)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}


// Registry

// NewRegistry returns a Registry initialized with ifaces.
func NewRegistry(ifaces ...reflect.Type) *Registry {
	r := &Registry{index: make(map[reflect.Type]struct{})}
	return r.Register(ifaces...)
}

// Register adds capability interfaces.  Registering the same
// interface more than once has no effect.
func (r *Registry) Register(ifaces ...reflect.Type) *Registry {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, iface := range ifaces {
		if iface == nil || iface.Kind() != reflect.Interface {
			panic(fmt.Sprintf("capability %v is not an interface", iface))
		}
		if _, ok := r.index[iface]; !ok {
			r.index[iface] = struct{}{}
			r.ifaces = append(r.ifaces, iface)
		}
	}
	return r
}

// Interfaces returns a snapshot of the registered interfaces.
func (r *Registry) Interfaces() []reflect.Type {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]reflect.Type(nil), r.ifaces...)
}

// Resolve returns the capability interfaces satisfied by typ.
// These are the registered interfaces it implements, interfaces it
// declares by embedding them, the same for every type it embeds,
// and every registered interface those interfaces extend.
func (r *Registry) Resolve(typ reflect.Type) CapabilitySet {
	set := make(CapabilitySet)
	if typ != nil {
		res := resolver{known: r.Interfaces(), set: set}
		res.walkType(typ, make(map[reflect.Type]struct{}))
	}
	return set
}

// Register adds interface I to the DefaultRegistry.
func Register[I any]() {
	DefaultRegistry.Register(reflect.TypeFor[I]())
}

// Resolve returns the capability interfaces satisfied by typ
// using the DefaultRegistry.
func Resolve(typ reflect.Type) CapabilitySet {
	return DefaultRegistry.Resolve(typ)
}


// resolver walks a type graph collecting capability interfaces.
type resolver struct {
	known []reflect.Type
	set   CapabilitySet
}

func (r *resolver) walkType(
	typ     reflect.Type,
	visited map[reflect.Type]struct{},
) {
	if _, ok := visited[typ]; ok {
		return
	}
	visited[typ] = struct{}{}

	if typ.Kind() == reflect.Interface {
		r.addInterface(typ)
		return
	}
	for _, iface := range r.known {
		if typ.Implements(iface) {
			r.addInterface(iface)
		}
	}

	// embedded fields play the part of super types
	st, addressable := typ, false
	if st.Kind() == reflect.Ptr {
		st, addressable = st.Elem(), true
	}
	if st.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.Anonymous {
			continue
		}
		ft := field.Type
		if addressable && ft.Kind() != reflect.Ptr && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}
		r.walkType(ft, visited)
	}
}

func (r *resolver) addInterface(iface reflect.Type) {
	if !r.set.Add(iface) {
		return
	}
	for _, known := range r.known {
		if known != iface && iface.Implements(known) {
			r.addInterface(known)
		}
	}
}
