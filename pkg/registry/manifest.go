package registry

import (
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/agentstation/acgen/pkg/errors"
)

// LoadManifest reads a YAML registry manifest from fsys.
func LoadManifest(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	cfg, err := ParseManifest(data)
	if err != nil {
		if perr, ok := err.(*errors.ParseError); ok {
			perr.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// ParseManifest decodes and validates a YAML registry manifest.
// Flag names default to their map key and flag types default to boolean.
func ParseManifest(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}

	for pi := range cfg.Plugins {
		for ci := range cfg.Plugins[pi].Commands {
			cmd := &cfg.Plugins[pi].Commands[ci]
			for name, f := range cmd.Flags {
				if f.Name == "" {
					f.Name = name
				}
				if f.Type == "" {
					f.Type = FlagBoolean
				}
				cmd.Flags[name] = f
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MarshalManifest encodes cfg in the manifest format read by ParseManifest.
func MarshalManifest(cfg *Config) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(cfg,
		yaml.Indent(2),
		yaml.IndentSequence(false),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return data, nil
}
