// Package config loads the fleet configuration: a TOML file merged over
// built-in defaults. The command layer's --config flag only selects which
// file is read; no flag or environment variable overrides a fleet value.
package config

import (
	"os"

	"dario.cat/mergo"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/nexuscli/nexus/internal/transport"
)

// ConfigFileName is the on-disk name resolved under the XDG config
// directory (e.g. ~/.config/nexus/fleet.toml).
const ConfigFileName = "nexus/fleet.toml"

// Fleet is the frozen configuration value the core reads; it never
// writes this back.
type Fleet struct {
	Nodes            []string `toml:"nodes"`
	DefaultNode      string   `toml:"default_node"`
	DefaultCmd       string   `toml:"default_cmd"`
	MaxConcurrentSSH int      `toml:"max_concurrent_ssh"`
	AutoReapOnExit   bool     `toml:"auto_reap_clean_exit"`
}

// Defaults returns the built-in default configuration. local is always
// present in Nodes.
func Defaults() Fleet {
	return Fleet{
		Nodes:            []string{transport.LocalNode},
		DefaultNode:      transport.LocalNode,
		DefaultCmd:       "",
		MaxConcurrentSSH: 16,
		AutoReapOnExit:   false,
	}
}

// Load resolves the fleet config file and merges it over Defaults,
// returning the result. overridePath, when non-empty, is read directly
// (e.g. from the --config flag); otherwise the file is resolved via
// XDG search. A missing config file is not an error: the defaults are
// returned unchanged. default_cmd's environment-variable expansion
// happens here, so the core always receives an already-expanded value.
func Load(overridePath string) (Fleet, error) {
	cfg := Defaults()

	path := overridePath
	if path == "" {
		found, err := xdg.SearchConfigFile(ConfigFileName)
		if err != nil {
			// Not found anywhere on the XDG search path: defaults stand.
			return cfg, nil
		}
		path = found
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var loaded Fleet
	if err := toml.Unmarshal(raw, &loaded); err != nil {
		return cfg, err
	}

	if err := mergo.Merge(&cfg, loaded, mergo.WithOverride); err != nil {
		return cfg, err
	}

	cfg.DefaultCmd = os.ExpandEnv(cfg.DefaultCmd)
	if !containsLocal(cfg.Nodes) {
		cfg.Nodes = append(cfg.Nodes, transport.LocalNode)
	}

	return cfg, nil
}

func containsLocal(nodes []string) bool {
	for _, n := range nodes {
		if n == transport.LocalNode {
			return true
		}
	}
	return false
}
