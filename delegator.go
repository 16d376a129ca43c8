package delegate

import "reflect"

// Wrap returns a composite implementing I that answers calls with
// the methods of wrapper first and wrapped otherwise.  Neither is
// required to implement I, their methods are matched by signature.
// wrapped may be nil.
func Wrap[I any](
	wrapper any,
	wrapped any,
	extra   ...reflect.Type,
) (I, error) {
	return WrapWith[I](Setup(), wrapper, wrapped, extra...)
}

// WrapWith is Wrap building the chain with b, so its options
// and features apply.
func WrapWith[I any](
	b       *Builder,
	wrapper any,
	wrapped any,
	extra   ...reflect.Type,
) (I, error) {
	return Build[I](b.
		Wrapper(wrapper).
		Delegates(wrapped).
		Interfaces(extra...))
}

// Implement returns a composite implementing I from the methods of
// delegates in priority order.
func Implement[I any](delegates ...any) (I, error) {
	return ImplementWith[I](Setup(), delegates...)
}

// ImplementWith is Implement building the chain with b.
func ImplementWith[I any](b *Builder, delegates ...any) (I, error) {
	return Build[I](b.Delegates(delegates...))
}

// Coerce views object as I by matching the methods of I.
func Coerce[I any](object any) (I, error) {
	return Implement[I](object)
}

// CoerceWith is Coerce building the chain with b.
func CoerceWith[I any](b *Builder, object any) (I, error) {
	return ImplementWith[I](b, object)
}

// Delegator is embedded by wrapper types overriding some of the
// methods of I while the rest are answered by Wrapped.
//
//	type QuietDuck struct {
//		delegate.Delegator[Duck]
//	}
//
//	func (q *QuietDuck) Speak() string { return "..." }
//
//	q := &QuietDuck{delegate.Delegator[Duck]{Wrapped: duck}}
//	d, err := q.Proxy(q)
type Delegator[I any] struct {
	Wrapped I
	self    I
}

// Proxy returns a composite implementing I answered first by
// wrapper, which is typically the type embedding the Delegator,
// and then by Wrapped.
func (d *Delegator[I]) Proxy(
	wrapper any,
	opts    ...Option,
) (I, error) {
	self, err := Build[I](Setup().
		Wrapper(wrapper).
		Delegates(any(d.Wrapped)).
		Options(opts...))
	if err == nil {
		d.self = self
	}
	return self, err
}

// Self returns the composite created by the last call to Proxy.
// Wrappers pass it where they would otherwise pass themselves.
func (d *Delegator[I]) Self() I {
	return d.self
}
