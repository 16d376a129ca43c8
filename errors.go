package delegate

import (
	"fmt"
	"reflect"
)

type (
	// UnsupportedCapabilityError reports no delegate in a
	// Chain can answer a requested method.
	UnsupportedCapabilityError struct {
		Iface     reflect.Type
		Signature Signature
	}

	// ArgumentError reports arguments that do not fit the
	// parameters of the requested method.
	ArgumentError struct {
		Method Method
		Args   []any
	}

	// SynthesisError reports a composite could not be created.
	SynthesisError struct {
		Iface  reflect.Type
		Reason error
	}

	// VerifyError reports the methods of a Chain without a delegate.
	VerifyError struct {
		Cause error
	}

	// OptionsError reports an invalid option value.
	OptionsError struct {
		Field  string
		Reason string
	}
)


// UnsupportedCapabilityError

func (e *UnsupportedCapabilityError) Error() string {
	return fmt.Sprintf("unsupported capability: no delegate answers %v.%v", e.Iface, e.Signature)
}


// ArgumentError

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments %v for method %v", e.Args, e.Method)
}


// SynthesisError

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("unable to synthesize %v: %v", e.Iface, e.Reason)
}

func (e *SynthesisError) Unwrap() error {
	return e.Reason
}


// VerifyError

func (e *VerifyError) Error() string {
	return fmt.Sprintf("incomplete chain: %v", e.Cause)
}

func (e *VerifyError) Unwrap() error {
	return e.Cause
}


// OptionsError

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid option %v: %v", e.Field, e.Reason)
}
