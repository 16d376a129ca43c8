package koanf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/miruken-go/delegate/config"
)

// EnvPrefix marks environment variables overriding file settings.
// DELEGATE_STRICT=true sets delegate.strict.
const EnvPrefix = "DELEGATE_"

// provider of configurations populated by the koanf library.
// https://github.com/knadh/koanf
type provider struct {
	k *koanf.Koanf
}

func (f *provider) Unmarshal(path string, flat bool, output any) error {
	return f.k.UnmarshalWithConf(path, output,
		koanf.UnmarshalConf{Tag: "path", FlatPaths: flat})
}

// P returns a config.Provider using the Koanf instance.
func P(k *koanf.Koanf) config.Provider {
	if k == nil {
		panic("k cannot be nil")
	}
	return &provider{k}
}

// Load returns a Koanf instance populated from the json or yaml
// files in paths followed by DELEGATE_ environment variables.
func Load(paths ...string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	for _, path := range paths {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			parser = json.Parser()
		case ".yaml", ".yml":
			parser = yaml.Parser()
		default:
			return nil, fmt.Errorf("config: unsupported file %q", path)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return k, nil
}

// envKey maps DELEGATE_STRICT to delegate.strict.
func envKey(s string) string {
	return "delegate." + strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}
