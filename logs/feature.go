package logs

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/miruken-go/delegate"
)

// Installer configures chain logging.
type Installer struct {
	root      logr.Logger
	verbosity int
}

func (v *Installer) SetVerbosity(verbosity int) {
	v.verbosity = verbosity
}

func (v *Installer) Install(b *delegate.Builder) error {
	if b.Tag(&featureTag) {
		if v.verbosity < 0 {
			return fmt.Errorf("logs: invalid verbosity %d", v.verbosity)
		}
		b.Options(
			delegate.WithLogger(v.root.WithName("delegate")),
			delegate.Verbosity(v.verbosity))
	}
	return nil
}

// Verbosity sets the level dispatch decisions are logged at.
func Verbosity(verbosity int) func(installer *Installer) {
	return func(installer *Installer) {
		installer.SetVerbosity(verbosity)
	}
}

// Feature creates and configures logging support.
func Feature(
	rootLogger logr.Logger,
	config     ...func(installer *Installer),
) delegate.Feature {
	installer := &Installer{root: rootLogger}
	for _, configure := range config {
		if configure != nil {
			configure(installer)
		}
	}
	return installer
}

var featureTag byte
