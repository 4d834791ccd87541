// Package tcconfig loads the ambient configuration for the cmd/typecheck
// front-end from an optional YAML file. Never consulted by the checker
// packages themselves — only by the CLI that drives them.
package tcconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxImplicitChain bounds the implicit-generation loop when no
// config file overrides it (SPEC_FULL §4.8).
const DefaultMaxImplicitChain = 64

// Config is the CLI's ambient configuration, loaded from
// `.typecheckrc.yaml` in the working directory if present.
type Config struct {
	TraceUnification bool `yaml:"trace_unification"`
	Color            bool `yaml:"color"`
	MaxImplicitChain int  `yaml:"max_implicit_chain"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{Color: true, MaxImplicitChain: DefaultMaxImplicitChain}
}

// Load reads path, falling back to Default() when it does not exist.
// A present-but-malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.MaxImplicitChain <= 0 {
		cfg.MaxImplicitChain = DefaultMaxImplicitChain
	}
	return cfg, nil
}
