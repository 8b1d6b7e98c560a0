package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "mycota"

	// DBFile is the live store file name inside CacheDir.
	DBFile = "mycota.db"

	// DBStagingFile is the staging store a build writes before the
	// atomic rename over DBFile.
	DBStagingFile = "mycota.db.build"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/mycota by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for the store and cache files.
// Returns ~/.cache/mycota by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/mycota/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/mycota/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// AliasFilePath returns the full path to the aliases.yaml file that
// maps historical template parameter names to attributes.
func AliasFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "aliases.yaml")
}

// DBPath returns the full path to the live store file.
func DBPath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), DBFile)
}

// DBStagingPath returns the full path to the staging store file.
func DBStagingPath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), DBStagingFile)
}
