package delegate

import (
	"container/list"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"github.com/miruken-go/delegate/internal"
)

// Builder orchestrates the construction of a Chain.
// The wrapper, if any, always has the highest priority followed
// by the delegates in the order supplied.
type Builder struct {
	wrapper   any
	delegates []any
	ifaces    []reflect.Type
	options   []Option
	features  []Feature
	tags      map[any]struct{}
}

// Setup returns a new Builder with initial Feature's.
func Setup(features ...Feature) *Builder {
	return &Builder{features: features}
}

func (b *Builder) Wrapper(
	wrapper any,
) *Builder {
	b.wrapper = wrapper
	return b
}

func (b *Builder) Delegates(
	delegates ...any,
) *Builder {
	b.delegates = append(b.delegates, delegates...)
	return b
}

func (b *Builder) Interfaces(
	ifaces ...reflect.Type,
) *Builder {
	b.ifaces = append(b.ifaces, ifaces...)
	return b
}

func (b *Builder) Options(
	options ...Option,
) *Builder {
	b.options = append(b.options, options...)
	return b
}

func (b *Builder) Features(
	features ...Feature,
) *Builder {
	b.features = append(b.features, features...)
	return b
}

// Tag marks a Feature as installed and reports if it was not before.
func (b *Builder) Tag(tag any) bool {
	if tags := b.tags; tags == nil {
		b.tags = map[any]struct{}{tag: {}}
		return true
	} else if _, found := tags[tag]; !found {
		tags[tag] = struct{}{}
		return true
	}
	return false
}

// Chain installs the features and builds the Chain.
// The wrapper contributes the interfaces returned by its
// AdditionalInterfaces method if it has one.
func (b *Builder) Chain() (*Chain, error) {
	buildErrors := b.installGraph(b.features)

	chain := NewChain(b.options...)
	if err := chain.settings.Validate(); err != nil {
		buildErrors = multierror.Append(buildErrors, err)
	}
	if !internal.IsNil(b.wrapper) {
		chain.Add(b.wrapper)
		if extra, ok := b.wrapper.(interface {
			AdditionalInterfaces() []reflect.Type
		}); ok {
			chain.AddInterfaces(extra.AdditionalInterfaces()...)
		}
	}
	chain.Add(b.delegates...)
	chain.AddInterfaces(b.ifaces...)
	return chain, buildErrors
}

func (b *Builder) installGraph(
	features []Feature,
) (err error) {
	// traverse level-order so dependencies install after dependents
	queue := list.New()
	for _, feature := range features {
		if !internal.IsNil(feature) {
			queue.PushBack(feature)
		}
	}
	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		feature := front.Value.(Feature)
		if dependsOn, ok := feature.(interface{
			DependsOn() []Feature
		}); ok {
			for _, dep := range dependsOn.DependsOn() {
				if !internal.IsNil(dep) {
					queue.PushBack(dep)
				}
			}
		}
		if ie := feature.Install(b); ie != nil {
			err = multierror.Append(err, ie)
		}
	}
	return err
}

// Build builds the Chain and synthesizes a composite implementing I.
func Build[I any](b *Builder) (I, error) {
	if b == nil {
		panic("builder cannot be nil")
	}
	chain, err := b.Chain()
	if err != nil {
		var zero I
		return zero, err
	}
	return New[I](chain)
}
