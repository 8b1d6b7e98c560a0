// Package ioalias loads user-provided template parameter aliases from
// aliases.yaml and merges them into the attribute registry.
package ioalias

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reinderien/mycota/pkg/config"
	"github.com/reinderien/mycota/pkg/schema"
)

// AliasConfig represents the complete aliases.yaml file.
type AliasConfig struct {
	Aliases []AliasEntry `yaml:"aliases"`
}

// AliasEntry maps one raw template parameter stem onto an attribute.
type AliasEntry struct {
	// Param is the raw parameter stem, matched case-insensitively.
	Param string `yaml:"param"`

	// Attribute is the canonical attribute key the parameter
	// resolves to.
	Attribute string `yaml:"attribute"`
}

// LoadRegistry builds the attribute registry: built-in attributes plus
// the aliases from aliases.yaml in the config directory. A missing
// file yields the built-in registry; a malformed file or entry is an
// error so silent misconfiguration cannot shift record semantics.
func LoadRegistry(cfg *config.Config) (*schema.Registry, error) {
	reg := schema.NewRegistry()

	path := config.AliasFilePath(cfg.HomeDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, AliasFileError(path, err)
	}

	var ac AliasConfig
	if err := yaml.Unmarshal(data, &ac); err != nil {
		return nil, AliasFileError(path, err)
	}

	for _, entry := range ac.Aliases {
		if err := reg.AddAlias(entry.Param, entry.Attribute); err != nil {
			return nil, AliasEntryError(entry.Param, entry.Attribute, err)
		}
	}

	if len(ac.Aliases) > 0 {
		slog.Info("Merged parameter aliases",
			"file", path,
			"count", len(ac.Aliases),
		)
	}

	return reg, nil
}
