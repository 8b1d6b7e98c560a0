// Package iofs prepares the application's directories and default
// configuration files on first run.
package iofs

import (
	_ "embed"
	"os"

	"github.com/reinderien/mycota/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed aliases.yaml
var AliasesYAML string

// EnsureDirs creates the config, cache and log directories when they
// do not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded default config.yaml to the
// config directory unless one already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureAliasFile writes the embedded default aliases.yaml to the
// config directory unless one already exists. Users extend it to map
// historical or misspelled template parameters onto attributes.
func EnsureAliasFile(homeDir string) error {
	aliasPath := config.AliasFilePath(homeDir)

	if _, err := os.Stat(aliasPath); err == nil {
		return nil
	}

	if err := os.WriteFile(aliasPath, []byte(AliasesYAML), 0644); err != nil {
		return CopyFileError(aliasPath, err)
	}

	return nil
}
