// Package config provides configuration management for mycota.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions via Update()
// - Invalid options are rejected with gn.Warn() - config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Wiki: api_url, template, list_chunk, page_chunk
//   - DB: batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Build.InputFile (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use MYCOTA_ prefix with underscores for nesting:
//
//	MYCOTA_WIKI_API_URL=https://en.wikipedia.org/w/api.php
//	MYCOTA_DB_BATCH_SIZE=500
//	MYCOTA_LOG_LEVEL=info
//	MYCOTA_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete mycota configuration.
type Config struct {
	// Wiki contains MediaWiki API settings for the record source.
	Wiki WikiConfig `mapstructure:"wiki" yaml:"wiki"`

	// DB contains settings for the embedded SQLite store.
	DB DBConfig `mapstructure:"db" yaml:"db"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Build contains settings specific to the build command.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	// JobsNumber is the number of concurrent workers for parsing and
	// normalizing articles. Defaults to the number of CPU threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. Set by the CLI during init; no default value.
	HomeDir string
}

// WikiConfig contains MediaWiki API parameters.
type WikiConfig struct {
	// APIURL is the endpoint queried for transclusions and revisions.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// Template is the infobox template whose transclusions define the
	// record set.
	Template string `mapstructure:"template" yaml:"template"`

	// ListChunk is the page count per transclusion-list request.
	// The API caps it at 500.
	ListChunk int `mapstructure:"list_chunk" yaml:"list_chunk"`

	// PageChunk is the page count per revision-content request.
	// The API caps it at 50.
	PageChunk int `mapstructure:"page_chunk" yaml:"page_chunk"`
}

// DBConfig contains settings for the embedded store.
type DBConfig struct {
	// BatchSize is the number of rows inserted per statement batch
	// during the persist phase.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// BuildConfig contains settings specific to the build command.
type BuildConfig struct {
	// InputFile reads pages from a local JSON dump instead of the
	// MediaWiki API. Runtime-only, set by the --input flag.
	InputFile string `mapstructure:"input_file" yaml:"input_file"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or
	// STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Wiki: WikiConfig{
			APIURL:    "https://en.wikipedia.org/w/api.php",
			Template:  "Mycomorphbox",
			ListChunk: 500,
			PageChunk: 50,
		},
		DB: DBConfig{
			BatchSize: 500,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now the file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
