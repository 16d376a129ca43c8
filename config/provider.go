package config

import (
	"fmt"

	"github.com/miruken-go/delegate"
	"github.com/miruken-go/delegate/internal"
)

type (
	// Provider defines the api to allow configuration
	// providers to expose their configuration information.
	Provider interface {
		Unmarshal(path string, flat bool, output any) error
	}

	// Settings is the configured form of delegate.Options.
	Settings struct {
		Verbosity int   `path:"verbosity"`
		Strict    *bool `path:"strict"`
	}

	// Installer applies configured options to a Builder.
	Installer struct {
		provider Provider
		path     string
	}
)

// Options converts the settings into delegate.Options.
// Settings not configured are left unset.
func (s Settings) Options() delegate.Options {
	options := delegate.Options{Verbosity: s.Verbosity}
	if s.Strict != nil {
		options.Strict = delegate.AsOptionBool(*s.Strict)
	}
	return options
}

// Load returns the validated delegate.Options found at path.
func Load(provider Provider, path string) (delegate.Options, error) {
	var settings Settings
	if err := provider.Unmarshal(path, false, &settings); err != nil {
		return delegate.Options{}, fmt.Errorf("config: %w", err)
	}
	options := settings.Options()
	if err := options.Validate(); err != nil {
		return delegate.Options{}, fmt.Errorf("config: %w", err)
	}
	return options, nil
}

func (v *Installer) Install(b *delegate.Builder) error {
	if b.Tag(&featureTag) {
		options, err := Load(v.provider, v.path)
		if err != nil {
			return err
		}
		b.Options(delegate.WithOptions(options))
	}
	return nil
}

// Path sets the configuration path options are loaded from.
func Path(path string) func(*Installer) {
	return func(installer *Installer) {
		installer.path = path
	}
}

// Feature creates and configures configuration support
// using the supplied configuration Provider.
func Feature(
	provider Provider,
	config ...func(*Installer),
) delegate.Feature {
	if internal.IsNil(provider) {
		panic("provider cannot be nil")
	}
	installer := &Installer{provider: provider, path: "delegate"}
	for _, configure := range config {
		if configure != nil {
			configure(installer)
		}
	}
	return installer
}

var featureTag byte
