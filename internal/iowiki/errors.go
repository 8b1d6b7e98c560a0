package iowiki

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/reinderien/mycota/pkg/errcode"
)

// RequestError creates an error for a failed API request.
func RequestError(apiURL string, err error) error {
	msg := `Cannot reach the MediaWiki API

<em>Endpoint:</em> %s

<em>Possible causes:</em>
  - No network connectivity
  - Endpoint misconfigured (wiki.api_url)

<em>How to fix:</em>
  1. Check network connectivity
  2. Verify wiki.api_url in config.yaml`

	vars := []any{apiURL}

	return &gn.Error{
		Code: errcode.WikiRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("API request failed: %w", err),
	}
}

// ResponseError creates an error for an unusable API response.
func ResponseError(apiURL string, err error) error {
	msg := `The MediaWiki API returned an unusable response

<em>Endpoint:</em> %s`

	vars := []any{apiURL}

	return &gn.Error{
		Code: errcode.WikiResponseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("API response invalid: %w", err),
	}
}

// NoTransclusionsError creates an error for when the template listing
// comes back empty.
func NoTransclusionsError(template string) error {
	msg := `No articles transclude <em>Template:%s</em>

<em>How to fix:</em>
  1. Verify wiki.template in config.yaml
  2. Check the template exists on the configured wiki`

	vars := []any{template}

	return &gn.Error{
		Code: errcode.WikiResponseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no transclusions for template %q", template),
	}
}

// DumpReadError creates an error for an unreadable or malformed page
// dump file.
func DumpReadError(path string, err error) error {
	msg := `Cannot read page dump <em>%s</em>

<em>Possible causes:</em>
  - File missing or unreadable
  - Not a JSON array of {pageid, title, text} objects`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.WikiDumpReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read page dump: %w", err),
	}
}
