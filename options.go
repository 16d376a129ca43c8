package delegate

import (
	"github.com/go-logr/logr"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	play "github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	"github.com/hashicorp/go-multierror"
	"github.com/imdario/mergo"
)

// OptionBool should be used in option structs instead of bool to
// be able to represent a bool not set.  Otherwise, the Zero value
// for of a bool cannot be distinguished from false.
type OptionBool byte
const (
	OptionNone OptionBool = iota
	OptionFalse
	OptionTrue
)

func (b OptionBool) Bool() bool {
	switch b {
	case OptionFalse: return false
	case OptionTrue: return true
	default:
		panic("only OptionFalse and OptionTrue can convert to a bool")
	}
}

// AsOptionBool converts b into an OptionBool.
func AsOptionBool(b bool) OptionBool {
	if b {
		return OptionTrue
	}
	return OptionFalse
}

type (
	// Options control how a Chain is built and dispatched.
	Options struct {
		// Verbosity is the logr level dispatch decisions log at.
		Verbosity int `validate:"gte=0,lte=10"`

		// Strict verifies every advertised method has a
		// delegate before a composite is synthesized.
		Strict OptionBool `validate:"lte=2"`
	}

	// Option configures a Chain.
	Option func(*settings)

	settings struct {
		Options
		logger   logr.Logger
		registry *Registry
	}
)

// IsStrict reports if Strict is enabled.
func (o Options) IsStrict() bool {
	return o.Strict == OptionTrue
}

// Validate checks the Options are within range.
func (o Options) Validate() (err error) {
	if verr := validate.Struct(o); verr != nil {
		if errs, ok := verr.(play.ValidationErrors); ok {
			for _, fe := range errs {
				err = multierror.Append(err, &OptionsError{fe.Field(), fe.Translate(translator)})
			}
			return
		}
		return verr
	}
	return nil
}

// MergeOptions copies the set values of from into into.
// Values already set in into are overridden.
func MergeOptions(from, into *Options) bool {
	return mergo.Merge(into, from, mergo.WithOverride) == nil
}

// WithOptions applies options over any previously set.
func WithOptions(options Options) Option {
	return func(s *settings) {
		MergeOptions(&options, &s.Options)
	}
}

// Verbosity sets the level dispatch decisions are logged at.
func Verbosity(verbosity int) Option {
	return func(s *settings) {
		s.Verbosity = verbosity
	}
}

// Strict requires every advertised method to have a delegate.
func Strict(s *settings) {
	s.Strict = OptionTrue
}

// WithLogger logs chain activity to logger.
func WithLogger(logger logr.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithRegistry resolves capabilities using registry
// instead of the DefaultRegistry.
func WithRegistry(registry *Registry) Option {
	if registry == nil {
		panic("registry cannot be nil")
	}
	return func(s *settings) {
		s.registry = registry
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: logr.Discard(), registry: DefaultRegistry}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

var (
	validate   = play.New()
	translator ut.Translator
)

func init() {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	if err := entrans.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}
}
