package ioalias

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/reinderien/mycota/pkg/errcode"
)

// AliasFileError creates an error for an unreadable or malformed
// aliases.yaml.
func AliasFileError(path string, err error) error {
	msg := `Cannot load parameter aliases from <em>%s</em>

<em>How to fix:</em>
  1. Check the file is valid YAML
  2. See the embedded default for the expected shape`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.AliasFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load aliases: %w", err),
	}
}

// AliasEntryError creates an error for an alias entry that does not
// resolve to a known attribute or collides with another one.
func AliasEntryError(param, attribute string, err error) error {
	msg := `Invalid alias <em>%s</em> -> <em>%s</em> in aliases.yaml`
	vars := []any{param, attribute}

	return &gn.Error{
		Code: errcode.AliasEntryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid alias entry: %w", err),
	}
}
