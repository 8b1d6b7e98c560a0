package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptWikiAPIURL sets the MediaWiki API endpoint.
func OptWikiAPIURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wiki API URL", s) {
			c.Wiki.APIURL = s
		}
	}
}

// OptWikiTemplate sets the infobox template name whose transclusions
// define the record set.
func OptWikiTemplate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wiki Template", s) {
			c.Wiki.Template = s
		}
	}
}

// OptWikiListChunk sets the page count per transclusion-list request.
func OptWikiListChunk(i int) Option {
	return func(c *Config) {
		if isValidInt("Wiki List Chunk", i) {
			c.Wiki.ListChunk = i
		}
	}
}

// OptWikiPageChunk sets the page count per revision-content request.
func OptWikiPageChunk(i int) Option {
	return func(c *Config) {
		if isValidInt("Wiki Page Chunk", i) {
			c.Wiki.PageChunk = i
		}
	}
}

// OptDBBatchSize sets the number of rows per insert batch during the
// persist phase.
func OptDBBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("DB Batch Size", i) {
			c.DB.BatchSize = i
		}
	}
}

// OptBuildInputFile sets a local JSON page dump as the record source
// instead of the MediaWiki API.
// Runtime-only field - not in ToOptions().
func OptBuildInputFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Build Input File", s) {
			c.Build.InputFile = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parsing and
// normalizing articles.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory used to derive config, cache and
// log paths. Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
