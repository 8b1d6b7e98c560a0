// Package infobox extracts the species infobox template from raw
// article wikitext. It locates the template invocation, walks its
// parameters with full awareness of nested braces and links, resolves
// historical parameter aliases, and strips inline markup from values.
//
// This is a pure package - no I/O.
package infobox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reinderien/mycota/pkg/schema"
)

// TemplateName is the infobox template matched in article text.
// Matching is case-insensitive: transclusions are inconsistent about
// the leading capital.
const TemplateName = "Mycomorphbox"

var (
	// ErrNotFound reports that an article carries no recognized
	// infobox. Expected for disambiguation and genus-level pages.
	ErrNotFound = errors.New("no infobox template in article")

	// ErrMalformed reports template syntax the parser cannot walk,
	// such as unterminated braces. The caller skips the record.
	ErrMalformed = errors.New("malformed template markup")
)

// Parser extracts infoboxes for one attribute registry. Safe for
// concurrent use; the registry is read-only after construction.
type Parser struct {
	reg      *schema.Registry
	template string
}

// NewParser returns a parser recognizing the Mycomorphbox template
// against the given attribute registry.
func NewParser(reg *schema.Registry) *Parser {
	return &Parser{reg: reg, template: strings.ToLower(TemplateName)}
}

// Parse scans the page's wikitext for the infobox template and
// returns its parameters resolved to attributes. Unrecognized
// parameters are ignored for forward compatibility with template
// schema drift. Empty parameter values yield no entry, so absence
// stays distinct from literal tokens like "unknown".
func (p *Parser) Parse(page *schema.Page) (*schema.RawInfobox, error) {
	body, err := p.findTemplate(page.Text)
	if err != nil {
		return nil, err
	}

	parts, err := splitParts(body)
	if err != nil {
		return nil, err
	}

	box := &schema.RawInfobox{
		PageID: page.PageID,
		Title:  page.Title,
		Params: make(map[schema.ParamKey]string),
	}

	// parts[0] is the template name itself.
	for _, part := range parts[1:] {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			// Positional parameter; the template has none.
			continue
		}
		name = strings.TrimSpace(name)
		value = StripMarkup(value)
		if value == "" {
			continue
		}

		if strings.EqualFold(name, "name") {
			box.Name = value
			continue
		}

		attr, ordinal, ok := p.reg.Resolve(name)
		if !ok {
			continue
		}
		box.Params[schema.ParamKey{Attr: attr.Key, Ordinal: ordinal}] = value
	}

	if box.Name == "" {
		// The template names the organism; fall back to the title.
		box.Name = page.Title
	}

	return box, nil
}

// findTemplate returns the body of the first matching template
// invocation, without the surrounding braces.
func (p *Parser) findTemplate(text string) (string, error) {
	for i := 0; i < len(text); {
		start := strings.Index(text[i:], "{{")
		if start < 0 {
			return "", ErrNotFound
		}
		start += i

		body, err := matchBraces(text, start)
		if err != nil {
			return "", err
		}

		name, _, _ := strings.Cut(body, "|")
		if strings.ToLower(strings.TrimSpace(name)) == p.template {
			return body, nil
		}

		// Not ours; resume after this invocation's opening braces so
		// nested matches are still visited.
		i = start + 2
	}
	return "", ErrNotFound
}

// matchBraces walks the text from an opening "{{" to its matching
// "}}", tracking nested templates, and returns the enclosed body.
func matchBraces(text string, start int) (string, error) {
	depth := 0
	i := start
	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], "{{"):
			depth++
			i += 2
		case strings.HasPrefix(text[i:], "}}"):
			depth--
			i += 2
			if depth == 0 {
				return text[start+2 : i-2], nil
			}
			if depth < 0 {
				return "", fmt.Errorf(
					"%w: unbalanced braces at offset %d", ErrMalformed, i,
				)
			}
		default:
			i++
		}
	}
	return "", fmt.Errorf("%w: unterminated template", ErrMalformed)
}

// splitParts splits a template body on top-level pipes. Pipes inside
// nested templates or links belong to those constructs and are kept.
func splitParts(body string) ([]string, error) {
	var (
		parts      []string
		braceDepth int
		linkDepth  int
		last       int
	)

	for i := 0; i < len(body); {
		switch {
		case strings.HasPrefix(body[i:], "{{"):
			braceDepth++
			i += 2
		case strings.HasPrefix(body[i:], "}}"):
			braceDepth--
			i += 2
		case strings.HasPrefix(body[i:], "[["):
			linkDepth++
			i += 2
		case strings.HasPrefix(body[i:], "]]"):
			linkDepth--
			i += 2
		case body[i] == '|' && braceDepth == 0 && linkDepth == 0:
			parts = append(parts, body[last:i])
			last = i + 1
			i++
		default:
			i++
		}
	}
	if braceDepth != 0 || linkDepth != 0 {
		return nil, fmt.Errorf("%w: unbalanced markup in template body", ErrMalformed)
	}
	parts = append(parts, body[last:])
	return parts, nil
}
