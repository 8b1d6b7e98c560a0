package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in a
// valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Build.InputFile).
// Used for round-tripping config.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Wiki.APIURL
	if s != "" {
		res = append(res, OptWikiAPIURL(s))
	}
	s = c.Wiki.Template
	if s != "" {
		res = append(res, OptWikiTemplate(s))
	}
	i = c.Wiki.ListChunk
	if i > 0 {
		res = append(res, OptWikiListChunk(i))
	}
	i = c.Wiki.PageChunk
	if i > 0 {
		res = append(res, OptWikiPageChunk(i))
	}

	i = c.DB.BatchSize
	if i > 0 {
		res = append(res, OptDBBatchSize(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}

	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
